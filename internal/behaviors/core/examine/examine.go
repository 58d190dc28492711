// Package examine implements "examine"/"look at", including the §4.4
// implicit-positioning consult and the entity serializer for its result
// data (§4.8).
package examine

import (
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/dispatch"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
	"github.com/sbenjam1n/ifengine/internal/engine/resolve"
	"github.com/sbenjam1n/ifengine/internal/engine/serialize"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
	"github.com/sbenjam1n/ifengine/internal/engine/vocab"
)

// NewModule builds the examine module.
func NewModule(resolver *resolve.Resolver) registry.ModuleDef {
	return registry.ModuleDef{
		Path:       "core.examine",
		SourceType: registry.SourceCore,
		Vocabulary: vocab.Vocabulary{
			Verbs: []vocab.Verb{
				{Word: "examine", Synonyms: []string{"x", "inspect", "look at"}, ObjectRequired: true},
			},
		},
		Handlers: map[string]registry.HandlerFunc{
			"examine": handleExamine(resolver),
		},
	}
}

func handleExamine(resolver *resolve.Resolver) registry.HandlerFunc {
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		if act.Object == nil || act.Object.Word == "" {
			return &action.HandlerResult{Success: false, Message: "Examine what?"}, nil
		}

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
			name := nameOf(entity)
			beat, err = dispatch.ApplyImplicitPositioning(acc, act.ActorID, id, name, "near")
			if err != nil {
				return nil, err
			}
		}

		actor, err := acc.GetActor(act.ActorID)
		if err != nil {
			return nil, err
		}
		pc := &serialize.PlayerContext{Posture: actor.Posture(), FocusedOn: actor.FocusedOn()}
		dict := serialize.EntityToDict(acc, entity, serialize.Options{PlayerContext: pc})

		message := descriptionOf(entity)
		if beat != "" {
			message = beat + " " + message
		}
		return &action.HandlerResult{Success: true, Message: message, Data: dict}, nil
	}
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
