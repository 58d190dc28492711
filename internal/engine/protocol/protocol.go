package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/dispatch"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
	"github.com/sbenjam1n/ifengine/internal/engine/resolve"
)

// MetaCommands names the verbs that still run after the corruption latch
// trips (§4.6 "{save, quit, help, load}").
var MetaCommands = map[string]struct{}{
	"save": {}, "quit": {}, "help": {}, "load": {},
}

// Handler owns the corruption latch and the turn-phase driver for exactly
// one world (§5 "Shared resources... owned exclusively by one
// protocol-handler instance").
type Handler struct {
	Acc       *accessor.Accessor
	Reg       *registry.Registry
	Resolver  *resolve.Resolver
	Scheduler *dispatch.Scheduler

	corrupted bool
}

// New builds a Handler bound to one world's accessor, registry, resolver
// and turn-phase scheduler.
func New(acc *accessor.Accessor, reg *registry.Registry, resolver *resolve.Resolver, sched *dispatch.Scheduler) *Handler {
	return &Handler{Acc: acc, Reg: reg, Resolver: resolver, Scheduler: sched}
}

// Corrupted reports whether a prior command latched state_corrupted.
func (h *Handler) Corrupted() bool { return h.corrupted }

// HandleMessage parses raw and routes it by "type" (§4.6).
func (h *Handler) HandleMessage(raw json.RawMessage) map[string]any {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return errorReply(fmt.Sprintf("invalid message: %v", err))
	}

	switch msg.Type {
	case "command":
		return h.handleCommand(msg)
	case "query":
		return h.handleQuery(msg)
	default:
		return errorReply(fmt.Sprintf("unknown message type: %q", msg.Type))
	}
}

func errorReply(message string) map[string]any {
	return map[string]any{"type": "error", "message": message}
}

// handleCommand implements §4.6's command branch.
func (h *Handler) handleCommand(msg Message) map[string]any {
	if msg.Action == nil || msg.Action.Verb == "" {
		return errorReply("missing required field: action")
	}
	verb := msg.Action.Verb

	if h.corrupted {
		if _, ok := MetaCommands[verb]; !ok {
			return resultError(verb, "Game state is corrupted. Please save and restart.", true)
		}
	}

	if !h.Reg.HasHandler(verb) {
		return resultError(verb, fmt.Sprintf("I don't understand %q. Try actions like go, take, open, or examine.", verb), false)
	}

	act, err := msg.Action.toAction()
	if err != nil {
		return resultError(verb, fmt.Sprintf("malformed action: %v", err), false)
	}

	tr, err := dispatch.HandleCommand(h.Reg, h.Scheduler, h.Acc, act)
	if err != nil {
		return resultError(verb, err.Error(), false)
	}
	if h.Resolver != nil {
		h.Resolver.Invalidate()
	}

	result := tr.Handler
	if !result.Success && hasInconsistentPrefix(result.Message) {
		h.corrupted = true
		return resultError(verb, result.Message, true)
	}
	if !result.Success {
		return resultError(verb, result.Message, false)
	}

	reply := map[string]any{
		"type":    "result",
		"success": true,
		"action":  verb,
		"message": result.Message,
	}
	if result.Data != nil {
		reply["data"] = result.Data
	}
	if len(tr.TurnPhaseMessages) > 0 {
		reply["turn_phase_messages"] = tr.TurnPhaseMessages
	}
	return reply
}

func hasInconsistentPrefix(message string) bool {
	return len(message) >= len(ids.InconsistentStatePrefix) && message[:len(ids.InconsistentStatePrefix)] == ids.InconsistentStatePrefix
}

func resultError(verb, message string, fatal bool) map[string]any {
	errObj := map[string]any{"message": message}
	if fatal {
		errObj["fatal"] = true
	}
	return map[string]any{
		"type":    "result",
		"success": false,
		"action":  verb,
		"error":   errObj,
	}
}
