// Package openclose implements "open" and "close" for doors and
// containers, including lock checks and the implicit-positioning consult
// (§3 "Door items", §4.4).
package openclose

import (
	"fmt"
	"strings"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/dispatch"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
	"github.com/sbenjam1n/ifengine/internal/engine/resolve"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
	"github.com/sbenjam1n/ifengine/internal/engine/vocab"
)

// NewModule builds the open/close module.
func NewModule(resolver *resolve.Resolver) registry.ModuleDef {
	return registry.ModuleDef{
		Path:       "core.openclose",
		SourceType: registry.SourceCore,
		Vocabulary: vocab.Vocabulary{
			Verbs: []vocab.Verb{
				{Word: "open", ObjectRequired: true},
				{Word: "close", Synonyms: []string{"shut"}, ObjectRequired: true},
			},
		},
		Handlers: map[string]registry.HandlerFunc{
			"open":  handleOpen(resolver),
			"close": handleClose(resolver),
		},
	}
}

func handleOpen(resolver *resolve.Resolver) registry.HandlerFunc {
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		item, beat, result := resolveTarget(acc, resolver, act, "Open what?")
		if result != nil {
			return result, nil
		}

		if !item.IsDoor() {
			if container, isContainer := item.Container(); isContainer {
				if container.IsOpen {
					return &action.HandlerResult{Success: false, Message: fmt.Sprintf("The %s is already open.", item.Name)}, nil
				}
				if container.Locked {
					return &action.HandlerResult{Success: false, Message: lockFailMessage(acc, container.LockID, item.Name)}, nil
				}
				container.IsOpen = true
				item.SetContainer(container)
				return withBeat(beat, fmt.Sprintf("You open the %s.", item.Name)), nil
			}
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You can't open the %s.", item.Name)}, nil
		}

		door, _ := item.Door()
		if door.Open {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("The %s is already open.", item.Name)}, nil
		}
		if door.Locked {
			return &action.HandlerResult{Success: false, Message: lockFailMessage(acc, door.LockID, item.Name)}, nil
		}
		door.Open = true
		item.SetDoor(door)

		reaction, err := acc.Update(item, map[string]any{}, "open")
		if err != nil {
			return nil, err
		}
		message := fmt.Sprintf("You open the %s.", item.Name)
		if reaction != nil && reaction.Message != "" {
			message += " " + reaction.Message
		}
		return withBeat(beat, message), nil
	}
}

func handleClose(resolver *resolve.Resolver) registry.HandlerFunc {
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		item, beat, result := resolveTarget(acc, resolver, act, "Close what?")
		if result != nil {
			return result, nil
		}

		if !item.IsDoor() {
			if container, isContainer := item.Container(); isContainer {
				if !container.IsOpen {
					return &action.HandlerResult{Success: false, Message: fmt.Sprintf("The %s is already closed.", item.Name)}, nil
				}
				container.IsOpen = false
				item.SetContainer(container)
				return withBeat(beat, fmt.Sprintf("You close the %s.", item.Name)), nil
			}
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You can't close the %s.", item.Name)}, nil
		}

		door, _ := item.Door()
		if !door.Open {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("The %s is already closed.", item.Name)}, nil
		}
		door.Open = false
		item.SetDoor(door)

		reaction, err := acc.Update(item, map[string]any{}, "close")
		if err != nil {
			return nil, err
		}
		message := fmt.Sprintf("You close the %s.", item.Name)
		if reaction != nil && reaction.Message != "" {
			message += " " + reaction.Message
		}
		return withBeat(beat, message), nil
	}
}

// resolveTarget resolves act.Object to an item, applying the implicit
// positioning consult when the item is declared "near". result is non-nil
// only when resolution or the positioning consult failed and the caller
// should return early.
func resolveTarget(acc *accessor.Accessor, resolver *resolve.Resolver, act action.Action, emptyMessage string) (*state.Item, string, *action.HandlerResult) {
	if act.Object == nil || act.Object.Word == "" {
		return nil, "", &action.HandlerResult{Success: false, Message: emptyMessage}
	}
	id, err := resolver.Resolve(acc, act.ActorID, act.Object.Word, act.AllAdjectives())
	if err != nil {
		return nil, "", &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't see any %s here.", act.Object.Word)}
	}
	if loc, locErr := acc.GetCurrentLocation(act.ActorID); locErr == nil {
		if candidates := doorsNamed(acc, loc.ID, act.Object.Word); len(candidates) > 1 {
			if picked, ok := resolve.SelectDoor(acc, loc, candidates, act.AllAdjectives()); ok {
				id = picked
			}
		}
	}
	item, err := acc.GetItem(id)
	if err != nil {
		return nil, "", &action.HandlerResult{Success: false, Message: fmt.Sprintf("You can't do that to %s.", act.Object.Word)}
	}

	var beat string
	if dispatch.InteractionDistanceOf(item) == "near" {
		beat, err = dispatch.ApplyImplicitPositioning(acc, act.ActorID, id, item.Name, "near")
		if err != nil {
			return nil, "", &action.HandlerResult{Success: false, Message: err.Error()}
		}
	}
	return item, beat, nil
}

// doorsNamed collects every door item reachable via the exits of locID
// whose name matches word, so resolveTarget can hand resolve.SelectDoor a
// real candidate set when more than one door answers to the same noun.
func doorsNamed(acc *accessor.Accessor, locID ids.EntityID, word string) []ids.EntityID {
	var out []ids.EntityID
	for _, exit := range acc.GetExitsFromLocation(locID) {
		if exit.DoorID == "" {
			continue
		}
		door, err := acc.GetDoorItem(exit.DoorID)
		if err != nil || !strings.EqualFold(door.Name, word) {
			continue
		}
		out = append(out, door.ID)
	}
	return out
}

func withBeat(beat, message string) *action.HandlerResult {
	if beat != "" {
		message = beat + " " + message
	}
	return &action.HandlerResult{Success: true, Message: message}
}

// lockFailMessage prefers a lock's custom fail_message, falling back to a
// generic "X is locked." narration when lockID names no Lock entity or
// carries none.
func lockFailMessage(acc *accessor.Accessor, lockID ids.EntityID, itemName string) string {
	if lockID != "" {
		if lock, err := acc.GetLock(lockID); err == nil {
			if msg := lock.FailMessage(); msg != "" {
				return msg
			}
		}
	}
	return fmt.Sprintf("The %s is locked.", itemName)
}
