package examine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/resolve"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
)

func fixtureAccessor(t *testing.T) *accessor.Accessor {
	t.Helper()
	world := &state.World{
		Locations: []state.Location{{ID: "kitchen", Name: "Kitchen", Description: "A small kitchen."}},
		Actors: map[ids.ActorID]*state.Actor{
			"player": {Location: "kitchen"},
		},
		ActorOrder: []ids.ActorID{"player"},
	}
	return accessor.New(world, nil)
}

func TestExamineUniversalSurfaceWordSucceeds(t *testing.T) {
	acc := fixtureAccessor(t)
	resolver := resolve.New(16)
	handler := handleExamine(resolver)

	result, err := handler(acc, action.Action{ActorID: "player", Verb: "examine", Object: &action.Word{Word: "ceiling"}})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Contains(t, result.Message, "ceiling")
	require.NotContains(t, result.Message, "don't see")
}

func TestExamineUnknownObjectFails(t *testing.T) {
	acc := fixtureAccessor(t)
	resolver := resolve.New(16)
	handler := handleExamine(resolver)

	result, err := handler(acc, action.Action{ActorID: "player", Verb: "examine", Object: &action.Word{Word: "dragon"}})
	require.NoError(t, err)
	require.False(t, result.Success)
}
