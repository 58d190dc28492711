package registry

import (
	"fmt"
	"sort"

	"github.com/sbenjam1n/ifengine/internal/engine/validate"
	"github.com/sbenjam1n/ifengine/internal/engine/vocab"
)

type handlerEntry struct {
	module string
	fn     HandlerFunc
}

type eventEntry struct {
	module    string
	eventName string
	hook      string
	fn        EventFunc
}

// Registry is the finalised behavior registry: every verb handler, event
// registration, and hook definition from every loaded module, plus the
// merged vocabulary handed to the external parser.
type Registry struct {
	handlers map[string]handlerEntry
	events   []eventEntry
	hookDefs []validate.HookDefinition

	moduleNames   []string // discovery order, core -> library -> game
	mergedVocab   vocab.Vocabulary
	vocabComputed bool
}

// Load runs both registration phases against modules (already ordered by
// the caller: sorted by path within each source tier, core first) and
// entityBehaviors (entity id -> behavior module list, used by hook
// validator check 4). It returns the finalised Registry, or a wrapped
// error: the registration-time rejection of a hook declared with
// conflicting invocations, or the aggregated *validate.Errors from
// finalisation.
func Load(modules []ModuleDef, entityBehaviors map[string][]string) (*Registry, error) {
	r := &Registry{handlers: make(map[string]handlerEntry)}

	if err := r.register(modules); err != nil {
		return nil, fmt.Errorf("registry: registration: %w", err)
	}

	events := make([]validate.EventRegistration, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, validate.EventRegistration{EventName: e.eventName, Hook: e.hook})
	}
	if err := validate.Hooks(r.hookDefs, events, entityBehaviors); err != nil {
		return nil, fmt.Errorf("registry: finalisation: %w", err)
	}

	return r, nil
}

// register implements Phase 1: for each module, register its vocabulary,
// handlers, event triples, and hook definitions. Duplicate hook names
// declared with conflicting invocations are rejected immediately, per
// §4.2 "Duplicate hook names with different invocations are rejected at
// registration time".
func (r *Registry) register(modules []ModuleDef) error {
	invocationOf := make(map[string]validate.Invocation)

	for _, m := range modules {
		r.moduleNames = append(r.moduleNames, m.Path)

		for verb, fn := range m.Handlers {
			r.handlers[verb] = handlerEntry{module: m.Path, fn: fn}
		}

		eventNames := make([]string, 0, len(m.EventHandlers))
		for name := range m.EventHandlers {
			eventNames = append(eventNames, name)
		}
		sort.Strings(eventNames)

		hookForEvent := make(map[string]string, len(m.Vocabulary.Events))
		for _, spec := range m.Vocabulary.Events {
			hookForEvent[spec.EventName] = spec.Hook
		}

		for _, name := range eventNames {
			r.events = append(r.events, eventEntry{
				module:    m.Path,
				eventName: name,
				hook:      hookForEvent[name],
				fn:        m.EventHandlers[name],
			})
		}

		for _, def := range m.Vocabulary.HookDefinitions {
			invocation := validate.Invocation(def.Invocation)
			if prior, seen := invocationOf[def.Hook]; seen && prior != invocation {
				return fmt.Errorf("hook %q declared with invocation %q by %s conflicts with prior invocation %q", def.Hook, invocation, m.Path, prior)
			}
			invocationOf[def.Hook] = invocation
			r.hookDefs = append(r.hookDefs, validate.HookDefinition{
				Hook:       def.Hook,
				Invocation: invocation,
				After:      def.After,
				DefinedBy:  m.Path,
			})
		}
	}

	r.mergedVocab = vocab.Merge(append([]vocab.Vocabulary{vocab.DefaultBase()}, vocabLayersOf(modules)...)...)
	r.vocabComputed = true

	return nil
}

func vocabLayersOf(modules []ModuleDef) []vocab.Vocabulary {
	layers := make([]vocab.Vocabulary, len(modules))
	for i, m := range modules {
		layers[i] = m.Vocabulary
	}
	return layers
}

// MergedVocabulary returns the vocabulary handed to the external parser
// (§4.2 "Merging vocabulary").
func (r *Registry) MergedVocabulary() vocab.Vocabulary {
	return r.mergedVocab
}

// ModuleNames returns the discovery-ordered list of loaded module paths.
func (r *Registry) ModuleNames() []string {
	out := make([]string, len(r.moduleNames))
	copy(out, r.moduleNames)
	return out
}

// HookDefinitions exposes the accumulated hook definitions, e.g. for a
// `validate` CLI subcommand to print them.
func (r *Registry) HookDefinitions() []validate.HookDefinition {
	out := make([]validate.HookDefinition, len(r.hookDefs))
	copy(out, r.hookDefs)
	return out
}
