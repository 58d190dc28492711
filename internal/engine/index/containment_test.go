package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
)

func fixtureWorld() *state.World {
	return &state.World{
		Items: []state.Item{
			{ID: "lamp", Location: "kitchen"},
			{ID: "key", Location: "kitchen"},
			{ID: "coin", Location: "__consumed_by_player__"},
		},
		Actors: map[ids.ActorID]*state.Actor{
			"player": {Location: "kitchen"},
		},
		ActorOrder: []ids.ActorID{"player"},
	}
}

func TestBuildContainmentExcludesRemovalSentinels(t *testing.T) {
	c := BuildContainment(fixtureWorld())

	entities := c.EntitiesAt("kitchen")
	require.ElementsMatch(t, []ids.EntityID{"lamp", "key", "player"}, entities)

	_, ok := c.EntityWhere("coin")
	require.False(t, ok)
}

func TestContainmentMoveUpdatesBothDirections(t *testing.T) {
	c := BuildContainment(fixtureWorld())

	c.Move("lamp", "player")

	require.ElementsMatch(t, []ids.EntityID{"key", "player"}, c.EntitiesAt("kitchen"))
	require.ElementsMatch(t, []ids.EntityID{"lamp"}, c.EntitiesAt("player"))

	container, ok := c.EntityWhere("lamp")
	require.True(t, ok)
	require.Equal(t, ids.EntityID("player"), container)
}

func TestContainmentMoveToRemovalSentinelDropsEntity(t *testing.T) {
	c := BuildContainment(fixtureWorld())

	c.Move("lamp", "__destroyed__")

	require.NotContains(t, c.EntitiesAt("kitchen"), ids.EntityID("lamp"))
	_, ok := c.EntityWhere("lamp")
	require.False(t, ok)
}

func TestContainmentInsertIsIdempotent(t *testing.T) {
	c := BuildContainment(fixtureWorld())

	c.Move("lamp", "kitchen") // already there; re-inserting must not duplicate

	entities := c.EntitiesAt("kitchen")
	count := 0
	for _, e := range entities {
		if e == "lamp" {
			count++
		}
	}
	require.Equal(t, 1, count)
}
