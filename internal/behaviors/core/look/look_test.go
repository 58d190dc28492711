package look

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

func TestLookAtUniversalSurfaceWordSucceeds(t *testing.T) {
	acc := fixtureAccessor(t)
	resolver := resolve.New(16)
	handler := handleLook(resolver)

	result, err := handler(acc, action.Action{ActorID: "player", Verb: "look", Object: &action.Word{Word: "floor"}})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Contains(t, result.Message, "floor")
}

func TestLookAroundDescribesLocation(t *testing.T) {
	acc := fixtureAccessor(t)
	resolver := resolve.New(16)
	handler := handleLook(resolver)

	result, err := handler(acc, action.Action{ActorID: "player", Verb: "look"})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Contains(t, result.Message, "Kitchen")
}
