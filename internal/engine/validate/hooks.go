package validate

import (
	"fmt"
	"sort"
	"strings"
)

// Invocation is the scope a hook fires in: turn-phase hooks are
// world-scoped and fire once per turn; entity hooks fire as a side effect
// of dispatch on a single entity (§4.2, glossary).
type Invocation string

const (
	TurnPhase Invocation = "turn_phase"
	Entity    Invocation = "entity"
)

// HookDefinition mirrors a module's declared hook_definitions entry
// (§4.2, §6 "Behavior module contract").
type HookDefinition struct {
	Hook       string
	Invocation Invocation
	After      []string
	DefinedBy  string // module path/name that declared this hook
}

// EventRegistration mirrors one (event_name, hook) pair a module declared
// while registering its vocabulary (§4.2 Phase 1).
type EventRegistration struct {
	EventName string
	Hook      string // may be empty: not every event is tied to a hook
}

// Hooks runs the five hook validators from §4.3 against the registry's
// accumulated definitions, event registrations, and per-entity behavior
// module lists. It returns an aggregated error, or nil if sound.
func Hooks(defs []HookDefinition, events []EventRegistration, entityBehaviors map[string][]string) error {
	var agg Errors

	defined := make(map[string]HookDefinition, len(defs))
	for _, d := range defs {
		defined[d.Hook] = d // last one wins for lookups; consistency is checked separately below
	}

	agg.Merge(checkPrefixes(defs))
	agg.Merge(checkDependencies(defs, defined))
	agg.Merge(checkHooksAreDefined(events, defined))
	agg.Merge(checkTurnPhaseNotOnEntities(defs, entityBehaviors))
	agg.Merge(checkInvocationConsistency(defs))

	return agg.AsError()
}

func checkPrefixes(defs []HookDefinition) []string {
	var errs []string
	for _, d := range defs {
		switch d.Invocation {
		case TurnPhase:
			if !strings.HasPrefix(d.Hook, "turn_") {
				errs = append(errs, fmt.Sprintf("hook '%s' (defined by %s) is invocation turn_phase but does not start with 'turn_'", d.Hook, d.DefinedBy))
			}
		case Entity:
			if !strings.HasPrefix(d.Hook, "entity_") {
				errs = append(errs, fmt.Sprintf("hook '%s' (defined by %s) is invocation entity but does not start with 'entity_'", d.Hook, d.DefinedBy))
			}
		default:
			errs = append(errs, fmt.Sprintf("hook '%s' (defined by %s) has unknown invocation '%s'", d.Hook, d.DefinedBy, d.Invocation))
		}
	}
	return errs
}

func checkDependencies(defs []HookDefinition, defined map[string]HookDefinition) []string {
	var errs []string
	for _, d := range defs {
		if d.Invocation != TurnPhase {
			continue
		}
		for _, dep := range d.After {
			depDef, ok := defined[dep]
			if !ok {
				errs = append(errs, fmt.Sprintf("turn-phase hook '%s' depends on undefined hook '%s'", d.Hook, dep))
				continue
			}
			if depDef.Invocation != TurnPhase {
				errs = append(errs, fmt.Sprintf("turn-phase hook '%s' depends on '%s' which is not a turn-phase hook", d.Hook, dep))
			}
		}
	}
	return errs
}

func checkHooksAreDefined(events []EventRegistration, defined map[string]HookDefinition) []string {
	var errs []string
	for _, e := range events {
		if e.Hook == "" {
			continue
		}
		if _, ok := defined[e.Hook]; !ok {
			errs = append(errs, fmt.Sprintf("event '%s' references undefined hook '%s'", e.EventName, e.Hook))
		}
	}
	return errs
}

func checkTurnPhaseNotOnEntities(defs []HookDefinition, entityBehaviors map[string][]string) []string {
	var errs []string
	turnPhaseModules := make(map[string]struct{})
	for _, d := range defs {
		if d.Invocation == TurnPhase {
			turnPhaseModules[d.DefinedBy] = struct{}{}
		}
	}
	entityIDs := make([]string, 0, len(entityBehaviors))
	for id := range entityBehaviors {
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)
	for _, entityID := range entityIDs {
		for _, module := range entityBehaviors[entityID] {
			if _, ok := turnPhaseModules[module]; ok {
				errs = append(errs, fmt.Sprintf("entity '%s' lists turn-phase module '%s' in its behaviors (turn-phase hooks are world-scoped)", entityID, module))
			}
		}
	}
	return errs
}

func checkInvocationConsistency(defs []HookDefinition) []string {
	var errs []string
	seen := make(map[string]Invocation)
	flagged := make(map[string]struct{})
	for _, d := range defs {
		prior, ok := seen[d.Hook]
		if ok && prior != d.Invocation {
			if _, already := flagged[d.Hook]; !already {
				errs = append(errs, fmt.Sprintf("hook '%s' is declared with inconsistent invocations (%s vs %s)", d.Hook, prior, d.Invocation))
				flagged[d.Hook] = struct{}{}
			}
			continue
		}
		seen[d.Hook] = d.Invocation
	}
	return errs
}
