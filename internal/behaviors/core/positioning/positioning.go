// Package positioning implements "approach", the one verb whose entire
// job is the §4.4 implicit-positioning consult: the other interaction
// handlers run it as a side effect only for targets whose
// interaction_distance is "near" (a target with "any" leaves focused_on
// unchanged there), this one runs it as the command itself.
package positioning

import (
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/dispatch"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
	"github.com/sbenjam1n/ifengine/internal/engine/resolve"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
	"github.com/sbenjam1n/ifengine/internal/engine/vocab"
)

// NewModule builds the approach module.
func NewModule(resolver *resolve.Resolver) registry.ModuleDef {
	return registry.ModuleDef{
		Path:       "core.positioning",
		SourceType: registry.SourceCore,
		Vocabulary: vocab.Vocabulary{
			Verbs: []vocab.Verb{{Word: "approach", Synonyms: []string{"go to", "move to"}, ObjectRequired: true}},
		},
		Handlers: map[string]registry.HandlerFunc{
			"approach": handleApproach(resolver),
		},
	}
}

func handleApproach(resolver *resolve.Resolver) registry.HandlerFunc {
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		if act.Object == nil || act.Object.Word == "" {
			return &action.HandlerResult{Success: false, Message: "Approach what?"}, nil
		}
		id, err := resolver.Resolve(acc, act.ActorID, act.Object.Word, act.AllAdjectives())
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't see any %s here.", act.Object.Word)}, nil
		}
		entity, err := acc.GetEntity(id)
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't see any %s here.", act.Object.Word)}, nil
		}

		name := nameOf(entity)
		beat, err := dispatch.ApplyImplicitPositioning(acc, act.ActorID, id, name, "near")
		if err != nil {
			return nil, err
		}
		if beat == "" {
			return &action.HandlerResult{Success: true, Message: fmt.Sprintf("You are already near %s.", name)}, nil
		}
		return &action.HandlerResult{Success: true, Message: beat}, nil
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
