// Package look implements bare "look" (room description) and "look at
// <object>" (an alias for examine's implicit-positioning consult), §4.4.
package look

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

// NewModule builds the look module.
func NewModule(resolver *resolve.Resolver) registry.ModuleDef {
	return registry.ModuleDef{
		Path:       "core.look",
		SourceType: registry.SourceCore,
		Vocabulary: vocab.Vocabulary{
			Verbs: []vocab.Verb{{Word: "look", Synonyms: []string{"l"}}},
		},
		Handlers: map[string]registry.HandlerFunc{
			"look": handleLook(resolver),
		},
	}
}

func handleLook(resolver *resolve.Resolver) registry.HandlerFunc {
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		if act.Object != nil && act.Object.Word != "" {
			return lookAt(acc, resolver, act)
		}
		return lookAround(acc, act)
	}
}

func lookAt(acc *accessor.Accessor, resolver *resolve.Resolver, act action.Action) (*action.HandlerResult, error) {
	id, err := resolver.Resolve(acc, act.ActorID, act.Object.Word, act.AllAdjectives())
	if err != nil {
		return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't see any %s here.", act.Object.Word)}, nil
	}
	if _, word, ok := ids.ParseVirtualSurface(id); ok {
		return &action.HandlerResult{Success: true, Message: ids.UniversalSurfaceWords[word]}, nil
	}
	entity, err := acc.GetEntity(id)
	if err != nil {
		return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't see any %s here.", act.Object.Word)}, nil
	}

	var beat string
	if dispatch.InteractionDistanceOf(entity) == "near" {
		beat, err = dispatch.ApplyImplicitPositioning(acc, act.ActorID, id, nameOf(entity), "near")
		if err != nil {
			return nil, err
		}
	}

	message := descriptionOf(entity)
	if beat != "" {
		message = beat + " " + message
	}
	return &action.HandlerResult{Success: true, Message: message}, nil
}

func lookAround(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
	loc, err := acc.GetCurrentLocation(act.ActorID)
	if err != nil {
		return nil, err
	}

	var lines []string
	lines = append(lines, loc.Name)
	lines = append(lines, loc.Description)

	var itemNames []string
	for _, id := range acc.GetEntitiesAt(loc.ID, accessor.KindItem) {
		item, err := acc.GetItem(id)
		if err != nil || item.IsDoor() || item.Hidden() {
			continue
		}
		itemNames = append(itemNames, item.Name)
	}
	if len(itemNames) > 0 {
		lines = append(lines, "You see: "+strings.Join(itemNames, ", ")+".")
	}

	var actorNames []string
	for _, id := range acc.GetEntitiesAt(loc.ID, accessor.KindActor) {
		if ids.ActorID(id) == act.ActorID {
			continue
		}
		actor, err := acc.GetActor(ids.ActorID(id))
		if err != nil {
			continue
		}
		actorNames = append(actorNames, actor.Name)
	}
	if len(actorNames) > 0 {
		lines = append(lines, "Also here: "+strings.Join(actorNames, ", ")+".")
	}

	var exitDirs []string
	for _, exit := range acc.GetExitsFromLocation(loc.ID) {
		if exit.Direction != "" {
			exitDirs = append(exitDirs, exit.Direction)
		}
	}
	for dir := range loc.Exits {
		exitDirs = append(exitDirs, dir)
	}
	if len(exitDirs) > 0 {
		lines = append(lines, "Exits: "+strings.Join(exitDirs, ", ")+".")
	}

	return &action.HandlerResult{Success: true, Message: strings.Join(lines, "\n")}, nil
}

func nameOf(entity any) string {
	switch e := entity.(type) {
	case *state.Item:
		return e.Name
	case *state.Actor:
		return e.Name
	case *state.Location:
		return e.Name
	case *state.Lock:
		return e.Name
	case *state.Part:
		return e.Name
	case *state.Exit:
		return e.Name
	default:
		return fmt.Sprintf("%v", entity)
	}
}

func descriptionOf(entity any) string {
	switch e := entity.(type) {
	case *state.Item:
		return e.Description
	case *state.Actor:
		return e.Description
	case *state.Location:
		return e.Description
	case *state.Lock:
		return e.Description
	default:
		return "You see nothing special."
	}
}
