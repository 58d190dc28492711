// Package takedrop implements "take" and "drop", including take's
// implicit-positioning consult (§4.4) and its portable precondition;
// hidden items never reach the handler because the resolver skips them.
package takedrop

import (
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/dispatch"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
	"github.com/sbenjam1n/ifengine/internal/engine/resolve"
	"github.com/sbenjam1n/ifengine/internal/engine/vocab"
)

// NewModule builds the take/drop module, bound to resolver for noun
// resolution.
func NewModule(resolver *resolve.Resolver) registry.ModuleDef {
	return registry.ModuleDef{
		Path:       "core.takedrop",
		SourceType: registry.SourceCore,
		Vocabulary: vocab.Vocabulary{
			Verbs: []vocab.Verb{
				{Word: "take", Synonyms: []string{"get", "grab", "pick"}, ObjectRequired: true},
				{Word: "drop", Synonyms: []string{"discard"}, ObjectRequired: true},
			},
		},
		Handlers: map[string]registry.HandlerFunc{
			"take": handleTake(resolver),
			"drop": handleDrop(resolver),
		},
	}
}

func handleTake(resolver *resolve.Resolver) registry.HandlerFunc {
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		if act.Object == nil || act.Object.Word == "" {
			return &action.HandlerResult{Success: false, Message: "Take what?"}, nil
		}

		id, err := resolver.Resolve(acc, act.ActorID, act.Object.Word, act.AllAdjectives())
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't see any %s here.", act.Object.Word)}, nil
		}
		item, err := acc.GetItem(id)
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You can't take %s.", act.Object.Word)}, nil
		}
		if !item.Portable() {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You can't take the %s.", item.Name)}, nil
		}
		if containerID, ok := acc.GetEntityWhere(id); ok && containerID == ids.EntityID(act.ActorID) {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You already have the %s.", item.Name)}, nil
		}

		var beat string
		if dispatch.InteractionDistanceOf(item) == "near" {
			beat, err = dispatch.ApplyImplicitPositioning(acc, act.ActorID, id, item.Name, "near")
			if err != nil {
				return nil, err
			}
		}

		if err := acc.SetEntityWhere(id, ids.EntityID(act.ActorID)); err != nil {
			return nil, err
		}
		result, err := acc.Update(item, map[string]any{}, "take")
		if err != nil {
			return nil, err
		}

		message := fmt.Sprintf("You take the %s.", item.Name)
		if beat != "" {
			message = beat + " " + message
		}
		if result != nil && result.Message != "" {
			message = message + " " + result.Message
		}
		return &action.HandlerResult{Success: true, Message: message}, nil
	}
}

func handleDrop(resolver *resolve.Resolver) registry.HandlerFunc {
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		if act.Object == nil || act.Object.Word == "" {
			return &action.HandlerResult{Success: false, Message: "Drop what?"}, nil
		}

		id, err := resolver.Resolve(acc, act.ActorID, act.Object.Word, act.AllAdjectives())
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You aren't carrying any %s.", act.Object.Word)}, nil
		}
		item, err := acc.GetItem(id)
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You aren't carrying any %s.", act.Object.Word)}, nil
		}
		if containerID, ok := acc.GetEntityWhere(id); !ok || containerID != ids.EntityID(act.ActorID) {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You aren't carrying the %s.", item.Name)}, nil
		}

		actor, err := acc.GetActor(act.ActorID)
		if err != nil {
			return nil, err
		}
		if err := acc.SetEntityWhere(id, actor.Location); err != nil {
			return nil, err
		}
		result, err := acc.Update(item, map[string]any{}, "drop")
		if err != nil {
			return nil, err
		}

		message := fmt.Sprintf("You drop the %s.", item.Name)
		if result != nil && result.Message != "" {
			message = message + " " + result.Message
		}
		return &action.HandlerResult{Success: true, Message: message}, nil
	}
}
