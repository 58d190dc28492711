// Package lock implements "lock" and "unlock", matching a held key item
// against a door or container's lock (§3 "Lock", §4.4).
package lock

import (
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
	"github.com/sbenjam1n/ifengine/internal/engine/resolve"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
	"github.com/sbenjam1n/ifengine/internal/engine/vocab"
)

// NewModule builds the lock/unlock module.
func NewModule(resolver *resolve.Resolver) registry.ModuleDef {
	return registry.ModuleDef{
		Path:       "core.lock",
		SourceType: registry.SourceCore,
		Vocabulary: vocab.Vocabulary{
			Verbs: []vocab.Verb{
				{Word: "lock", ObjectRequired: true, Preposition: "with"},
				{Word: "unlock", ObjectRequired: true, Preposition: "with"},
			},
		},
		Handlers: map[string]registry.HandlerFunc{
			"lock":   handleLock(resolver, true),
			"unlock": handleLock(resolver, false),
		},
	}
}

func handleLock(resolver *resolve.Resolver, wantLocked bool) registry.HandlerFunc {
	verb := "unlock"
	if wantLocked {
		verb = "lock"
	}
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		if act.Object == nil || act.Object.Word == "" {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("%s what?", capitalize(verb))}, nil
		}
		targetID, err := resolver.Resolve(acc, act.ActorID, act.Object.Word, act.AllAdjectives())
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't see any %s here.", act.Object.Word)}, nil
		}
		item, err := acc.GetItem(targetID)
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You can't %s that.", verb)}, nil
		}

		lockID := lockIDOf(item)
		if lockID == "" {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("The %s doesn't have a lock.", item.Name)}, nil
		}
		l, err := acc.GetLock(lockID)
		if err != nil {
			return nil, err
		}

		var keyID ids.EntityID
		if act.IndirectObject != nil && act.IndirectObject.Word != "" {
			keyID, err = resolver.Resolve(acc, act.ActorID, act.IndirectObject.Word, nil)
			if err != nil {
				return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't have any %s.", act.IndirectObject.Word)}, nil
			}
		} else {
			keyID = findKeyInInventory(acc, act.ActorID, l)
		}
		if !keyMatches(l, keyID) {
			if msg := l.FailMessage(); msg != "" {
				return &action.HandlerResult{Success: false, Message: msg}, nil
			}
			return &action.HandlerResult{Success: false, Message: "You don't have the right key."}, nil
		}

		setLockState(item, wantLocked)
		return &action.HandlerResult{Success: true, Message: fmt.Sprintf("You %s the %s.", verb, item.Name)}, nil
	}
}

func lockIDOf(item *state.Item) ids.EntityID {
	if item.IsDoor() {
		return item.DoorLockID()
	}
	if c, ok := item.Container(); ok {
		return c.LockID
	}
	return ""
}

// findKeyInInventory searches actorID's inventory for an item that opens l,
// so "unlock door" succeeds without naming the key when the actor is
// already carrying it, matching the original handle_unlock's bare-form
// behavior.
func findKeyInInventory(acc *accessor.Accessor, actorID ids.ActorID, l *state.Lock) ids.EntityID {
	actor, err := acc.GetActor(actorID)
	if err != nil {
		return ""
	}
	for _, id := range l.OpensWith() {
		for _, held := range actor.Inventory {
			if held == id {
				return id
			}
		}
	}
	return ""
}

func keyMatches(l *state.Lock, keyID ids.EntityID) bool {
	if keyID == "" {
		return len(l.OpensWith()) == 0
	}
	for _, id := range l.OpensWith() {
		if id == keyID {
			return true
		}
	}
	return false
}

func setLockState(item *state.Item, locked bool) {
	if item.IsDoor() {
		door, _ := item.Door()
		door.Locked = locked
		item.SetDoor(door)
		return
	}
	container, _ := item.Container()
	container.Locked = locked
	item.SetContainer(container)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-32) + s[1:]
}
