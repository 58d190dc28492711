// Package meta implements the housekeeping verbs that stay reachable even
// after state_corrupted latches: save, load, quit, help, plus inventory
// and wait (§4.6 "{save, quit, help, load}").
package meta

import (
	"fmt"
	"strings"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
	"github.com/sbenjam1n/ifengine/internal/engine/vocab"
)

const helpText = "Try actions like go, take, drop, open, close, examine, look, lock, unlock, craft, inventory, wait, save, load, or quit."

// NewModule builds the meta module. save/load are wired to the supplied
// callbacks so the module stays storage-agnostic; the host binds them to
// its persistence layer.
func NewModule(save func() (string, error), load func() error) registry.ModuleDef {
	return registry.ModuleDef{
		Path:       "core.meta",
		SourceType: registry.SourceCore,
		Vocabulary: vocab.Vocabulary{
			Verbs: []vocab.Verb{
				{Word: "inventory", Synonyms: []string{"i", "inv"}},
				{Word: "wait", Synonyms: []string{"z"}},
				{Word: "save"},
				{Word: "load", Synonyms: []string{"restore"}},
				{Word: "quit", Synonyms: []string{"q", "exit"}},
				{Word: "help"},
			},
		},
		Handlers: map[string]registry.HandlerFunc{
			"inventory": handleInventory,
			"wait":      handleWait,
			"save":      handleSave(save),
			"load":      handleLoad(load),
			"quit":      handleQuit,
			"help":      handleHelp,
		},
	}
}

func handleInventory(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
	actor, err := acc.GetActor(act.ActorID)
	if err != nil {
		return nil, err
	}
	if len(actor.Inventory) == 0 {
		return &action.HandlerResult{Success: true, Message: "You aren't carrying anything."}, nil
	}
	var names []string
	for _, id := range actor.Inventory {
		item, err := acc.GetItem(id)
		if err != nil {
			continue
		}
		names = append(names, item.Name)
	}
	return &action.HandlerResult{Success: true, Message: "You are carrying: " + strings.Join(names, ", ") + "."}, nil
}

func handleWait(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
	return &action.HandlerResult{Success: true, Message: "Time passes."}, nil
}

func handleSave(save func() (string, error)) registry.HandlerFunc {
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		if save == nil {
			return &action.HandlerResult{Success: false, Message: "Saving isn't available right now."}, nil
		}
		slot, err := save()
		if err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("Save failed: %v", err)}, nil
		}
		return &action.HandlerResult{Success: true, Message: fmt.Sprintf("Game saved (%s).", slot)}, nil
	}
}

func handleLoad(load func() error) registry.HandlerFunc {
	return func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
		if load == nil {
			return &action.HandlerResult{Success: false, Message: "Loading isn't available right now."}, nil
		}
		if err := load(); err != nil {
			return &action.HandlerResult{Success: false, Message: fmt.Sprintf("Load failed: %v", err)}, nil
		}
		return &action.HandlerResult{Success: true, Message: "Game loaded."}, nil
	}
}

func handleQuit(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
	return &action.HandlerResult{Success: true, Message: "Goodbye."}, nil
}

func handleHelp(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
	return &action.HandlerResult{Success: true, Message: helpText}, nil
}
