package dispatch

import (
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
)

// TurnResult is what one HandleCommand call produces: the verb handler's
// outcome plus whatever the turn-phase scheduler narrated, if the command
// succeeded (§4.4, §4.5).
type TurnResult struct {
	Handler           *action.HandlerResult
	TurnPhaseMessages []string
}

// HandleCommand runs the full per-turn pipeline (§4.4 "A verb message
// travels..."): look up and invoke the verb's action handler, and on
// success, increment the turn counter and run the turn-phase scheduler.
// Implicit positioning and entity on_<verb> reactions are the handler's
// own responsibility (via ApplyImplicitPositioning and accessor.Update).
func HandleCommand(reg *registry.Registry, sched *Scheduler, acc *accessor.Accessor, act action.Action) (*TurnResult, error) {
	if !reg.HasHandler(act.Verb) {
		return nil, fmt.Errorf("dispatch: no handler registered for verb %q", act.Verb)
	}

	result, err := reg.InvokeHandler(act.Verb, acc, act)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("dispatch: handler for verb %q returned a nil result", act.Verb)
	}

	tr := &TurnResult{Handler: result}
	if !result.Success {
		return tr, nil
	}

	acc.World.IncrementTurn()
	if sched != nil {
		messages, err := sched.Run(acc, string(act.ActorID))
		if err != nil {
			return tr, err
		}
		tr.TurnPhaseMessages = messages
	}
	return tr, nil
}
