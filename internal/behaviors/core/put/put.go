// Package put implements "put <item> in/on <container>", including the
// implicit-positioning consult on the destination and the actor-inventory
// consistency SetEntityWhere now enforces (§4.4, §9 Open Question (c)).
package put

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

// NewModule builds the put module.
func NewModule(resolver *resolve.Resolver) registry.ModuleDef {
	return registry.ModuleDef{
		Path:       "core.put",
		SourceType: registry.SourceCore,
		Vocabulary: vocab.Vocabulary{
			Verbs: []vocab.Verb{{Word: "put", Synonyms: []string{"place", "insert"}, ObjectRequired: true, Preposition: "in"}},
		},
		Handlers: map[string]registry.HandlerFunc{
			"put": handlePut(resolver),
		},
	}
}

func handlePut(resolver *resolve.Resolver) registry.HandlerFunc {
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		if act.Object == nil || act.Object.Word == "" {
			return &action.HandlerResult{Success: false, Message: "Put what?"}, nil
		}
		if act.IndirectObject == nil || act.IndirectObject.Word == "" {
			return &action.HandlerResult{Success: false, Message: "Put it where?"}, nil
		}

		itemID, err := resolver.Resolve(acc, act.ActorID, act.Object.Word, act.AllAdjectives())
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You aren't carrying any %s.", act.Object.Word)}, nil
		}
		item, err := acc.GetItem(itemID)
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You aren't carrying any %s.", act.Object.Word)}, nil
		}
		if holder, ok := acc.GetEntityWhere(itemID); !ok || holder != ids.EntityID(act.ActorID) {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You aren't carrying the %s.", item.Name)}, nil
		}

		destID, err := resolver.Resolve(acc, act.ActorID, act.IndirectObject.Word, []string{act.IndirectAdjective})
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You don't see any %s here.", act.IndirectObject.Word)}, nil
		}
		dest, err := acc.GetItem(destID)
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You can't put anything in the %s.", act.IndirectObject.Word)}, nil
		}
		container, isContainer := dest.Container()
		if !isContainer {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("You can't put anything in the %s.", dest.Name)}, nil
		}
		if !container.IsSurface && !container.IsOpen {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("The %s is closed.", dest.Name)}, nil
		}
		if destID == itemID {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("INCONSISTENT STATE: %s cannot contain itself.", item.Name)}, nil
		}

		var beat string
		if dispatch.InteractionDistanceOf(dest) == "near" {
			beat, err = dispatch.ApplyImplicitPositioning(acc, act.ActorID, destID, dest.Name, "near")
			if err != nil {
				return nil, err
			}
		}

		if err := acc.SetEntityWhere(itemID, destID); err != nil {
			return nil, err
		}
		preposition := "in"
		if container.IsSurface {
			preposition = "on"
		}
		message := fmt.Sprintf("You put the %s %s the %s.", item.Name, preposition, dest.Name)
		if beat != "" {
			message = beat + " " + message
		}
		return &action.HandlerResult{Success: true, Message: message}, nil
	}
}
