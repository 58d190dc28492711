package lock

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
	door := state.Item{ID: "door", Name: "door", Location: "hallway"}
	door.SetDoor(state.DoorProps{Open: false, Locked: true, LockID: "door_lock"})

	key := state.Item{ID: "brass_key", Name: "key", Location: ""}

	lockItem := state.Lock{
		ID:         "door_lock",
		Name:       "door lock",
		Properties: state.Properties{"opens_with": []any{"brass_key"}, "fail_message": "The key doesn't fit the lock."},
	}

	world := &state.World{
		Items: []state.Item{door, key},
		Locks: []state.Lock{lockItem},
		Actors: map[ids.ActorID]*state.Actor{
			"player": {Location: "hallway", Inventory: []ids.EntityID{"brass_key"}},
		},
		ActorOrder: []ids.ActorID{"player"},
	}
	return accessor.New(world, nil)
}

func unlockAction(indirect *action.Word) action.Action {
	return action.Action{
		ActorID:        "player",
		Verb:           "unlock",
		Object:         &action.Word{Word: "door"},
		IndirectObject: indirect,
	}
}

func TestUnlockWithHeldKeyButNoIndirectObjectSucceeds(t *testing.T) {
	acc := fixtureAccessor(t)
	resolver := resolve.New(16)
	handler := handleLock(resolver, false)

	result, err := handler(acc, unlockAction(nil))
	require.NoError(t, err)
	require.True(t, result.Success)

	item, err := acc.GetItem("door")
	require.NoError(t, err)
	require.False(t, item.DoorLocked())
}

func TestUnlockWithoutKeyFailsMentioningKey(t *testing.T) {
	acc := fixtureAccessor(t)
	actor, err := acc.GetActor("player")
	require.NoError(t, err)
	actor.Inventory = nil // key removed from inventory

	resolver := resolve.New(16)
	handler := handleLock(resolver, false)

	result, err := handler(acc, unlockAction(nil))
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Contains(t, result.Message, "key")
}

func TestUnlockWithExplicitKeyStillWorks(t *testing.T) {
	acc := fixtureAccessor(t)
	resolver := resolve.New(16)
	handler := handleLock(resolver, false)

	result, err := handler(acc, unlockAction(&action.Word{Word: "key"}))
	require.NoError(t, err)
	require.True(t, result.Success)
}
