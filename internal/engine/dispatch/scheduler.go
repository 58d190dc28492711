// Package dispatch implements the turn-phase scheduler (§4.5): the fixed
// base sequence of turn hooks, game-declared extra phases honoring an
// "after" dependency graph, and per-turn invocation through the registry.
package dispatch

import (
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/registry"
)

// BaseTurnPhaseHooks is the fixed sequence of world-scoped hooks that fire
// after every successful command (§4.5 step 1).
var BaseTurnPhaseHooks = []string{
	"turn_npc_action",
	"turn_environmental_effect",
	"turn_condition_tick",
	"turn_death_check",
}

// Scheduler holds the finalised, topologically sorted turn-phase order for
// one world, computed once and reused every turn (§9 "Turn-phase
// dependencies... compute a topological order at finalisation, cache it").
type Scheduler struct {
	reg   *registry.Registry
	order []string
}

// NewScheduler computes the ordered hook list from extraTurnPhases (world
// metadata) prepended to BaseTurnPhaseHooks, honoring each turn-phase
// hook's "after" dependencies via a stable topological sort. A dependency
// cycle is a fatal startup error (§4.5 step 1, §9).
func NewScheduler(reg *registry.Registry, extraTurnPhases []string) (*Scheduler, error) {
	declared := dedupe(append(append([]string{}, extraTurnPhases...), BaseTurnPhaseHooks...))

	deps := make(map[string][]string, len(declared))
	declaredSet := make(map[string]struct{}, len(declared))
	for _, h := range declared {
		declaredSet[h] = struct{}{}
	}
	for _, def := range reg.HookDefinitions() {
		if _, ok := declaredSet[def.Hook]; !ok {
			continue
		}
		for _, dep := range def.After {
			if _, ok := declaredSet[dep]; ok {
				deps[def.Hook] = append(deps[def.Hook], dep)
			}
		}
	}

	order, err := stableTopoSort(declared, deps)
	if err != nil {
		return nil, fmt.Errorf("dispatch: turn-phase schedule: %w", err)
	}

	return &Scheduler{reg: reg, order: order}, nil
}

// stableTopoSort orders items so that every dependency in deps precedes
// its dependent, preserving the relative order of items among themselves
// wherever "after" doesn't force a swap (Kahn's algorithm, ties broken by
// declaration order).
func stableTopoSort(items []string, deps map[string][]string) ([]string, error) {
	indegree := make(map[string]int, len(items))
	dependents := make(map[string][]string)
	for _, item := range items {
		indegree[item] = 0
	}
	for item, depsOf := range deps {
		indegree[item] += len(depsOf)
		for _, dep := range depsOf {
			dependents[dep] = append(dependents[dep], item)
		}
	}

	var ready []string
	for _, item := range items {
		if indegree[item] == 0 {
			ready = append(ready, item)
		}
	}

	var order []string
	visited := make(map[string]struct{})
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		if _, done := visited[next]; done {
			continue
		}
		visited[next] = struct{}{}
		order = append(order, next)
		for _, dependent := range dependents[next] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != len(items) {
		return nil, fmt.Errorf("cycle detected among turn-phase hooks")
	}
	return order, nil
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Run fires every scheduled hook in order, looking up the event registered
// for each (if any) and invoking it with a phase context (§4.5 step 3).
// It returns the narration messages from every hook that produced one, in
// schedule order. Every registered handler runs; there is no
// short-circuit within or across phases (§4.5 "Within a phase...").
func (s *Scheduler) Run(acc *accessor.Accessor, actorID string) ([]string, error) {
	var messages []string
	for _, hook := range s.order {
		eventName, ok := s.reg.GetEventForHook(hook)
		if !ok {
			continue
		}
		context := map[string]any{"hook": hook, "actor_id": actorID}
		result, err := s.reg.InvokeBehavior(nil, eventName, acc, context)
		if err != nil {
			return messages, err
		}
		if result != nil && result.Message != "" {
			messages = append(messages, result.Message)
		}
	}
	return messages, nil
}
