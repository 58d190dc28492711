// Package movement implements the "go" verb and its bare direction
// synonyms (north, south, ...), resolving both the legacy per-location
// exit map and first-class Exit entities (§3 Entities table, §4.4).
package movement

import (
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
	"github.com/sbenjam1n/ifengine/internal/engine/vocab"
)

var directions = []string{
	"north", "south", "east", "west", "up", "down",
	"northeast", "northwest", "southeast", "southwest", "in", "out",
}

// NewModule builds the movement module: "go" plus every compass/in/out
// direction registered as its own bare-command verb (§4.7 "directions are
// regular nouns... they appear in the verbs list since they can be used
// as bare commands").
func NewModule() registry.ModuleDef {
	handlers := map[string]registry.HandlerFunc{
		"go": handleGo,
	}
	verbs := []vocab.Verb{{Word: "go", Synonyms: []string{"walk", "move"}}}
	for _, dir := range directions {
		dir := dir
		handlers[dir] = func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
			return move(acc, act.ActorID, dir)
		}
		verbs = append(verbs, vocab.Verb{Word: dir})
	}

	return registry.ModuleDef{
		Path:       "core.movement",
		SourceType: registry.SourceCore,
		Vocabulary: vocab.Vocabulary{Verbs: verbs},
		Handlers:   handlers,
	}
}

func handleGo(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
	if act.Object == nil || act.Object.Word == "" {
		return &action.HandlerResult{Success: false, Message: "Go where?"}, nil
	}
	return move(acc, act.ActorID, act.Object.Word)
}

func move(acc *accessor.Accessor, actorID ids.ActorID, direction string) (*action.HandlerResult, error) {
	loc, err := acc.GetCurrentLocation(actorID)
	if err != nil {
		return nil, err
	}

	dest, doorID, blocked, ok := resolveExit(acc, loc, direction)
	if !ok {
		return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You can't go %s from here.", direction)}, nil
	}
	if blocked {
		return &action.HandlerResult{Success: false, Message: "The way is blocked."}, nil
	}
	if doorID != "" {
		door, err := acc.GetDoorItem(doorID)
		if err == nil {
			if !door.DoorOpen() {
				return &action.HandlerResult{Success: false, Message: fmt.Sprintf("The %s is closed.", door.Name)}, nil
			}
		}
	}

	actor, err := acc.GetActor(actorID)
	if err != nil {
		return nil, err
	}
	if err := acc.SetEntityWhere(ids.EntityID(actorID), dest); err != nil {
		return nil, err
	}
	if _, err := acc.Update(actor, map[string]any{"posture": nil}, ""); err != nil {
		return nil, err
	}

	destLoc, err := acc.GetLocation(dest)
	if err != nil {
		return nil, err
	}
	return &action.HandlerResult{Success: true, Message: fmt.Sprintf("You go %s to %s.", direction, destLoc.Name)}, nil
}

// resolveExit checks first-class Exit entities first, then the legacy
// per-location ExitDescriptor map, for direction leaving loc (§9 Open
// Question (a) doesn't apply here: this is about exit sources, not the
// virtual-location id form).
func resolveExit(acc *accessor.Accessor, loc *state.Location, direction string) (dest ids.EntityID, doorID ids.EntityID, blocked bool, ok bool) {
	for _, exit := range acc.GetExitsFromLocation(loc.ID) {
		if exit.Direction != direction {
			continue
		}
		connected := acc.GetExitConnections(exit.ID)
		if len(connected) == 0 {
			continue
		}
		other, err := acc.GetExit(connected[0])
		if err != nil {
			continue
		}
		return other.Location, exit.DoorID, false, true
	}

	if desc, exists := loc.Exits[direction]; exists {
		return desc.To, desc.DoorID, desc.Blocked, true
	}

	return "", "", false, false
}
