package registry

import (
	"fmt"
	"strings"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
)

// HasHandler reports whether verb has a registered action handler.
func (r *Registry) HasHandler(verb string) bool {
	_, ok := r.handlers[verb]
	return ok
}

// InvokeHandler runs verb's registered action handler.
func (r *Registry) InvokeHandler(verb string, acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error) {
	entry, ok := r.handlers[verb]
	if !ok {
		return nil, fmt.Errorf("registry: no handler registered for verb %q", verb)
	}
	return entry.fn(acc, act)
}

// InvokeBehavior runs every handler registered for eventName whose module
// is attached to entity, in the order the modules appear in the entity's
// behaviors list (§4.4 "Entity reaction", glossary "Entity hook"). When
// entity is nil (a turn-phase invocation has no single entity target),
// every handler registered for eventName runs regardless of attachment,
// since turn-phase hooks are world-scoped (§4.5).
func (r *Registry) InvokeBehavior(entity accessor.Entity, eventName string, acc *accessor.Accessor, context map[string]any) (*accessor.EventResult, error) {
	if entity == nil {
		return r.invokeWorldScoped(eventName, acc, context)
	}

	modules := entity.BehaviorModules()
	var messages []string
	data := map[string]any{}
	fired := false

	for _, module := range modules {
		for _, e := range r.events {
			if e.module != module || e.eventName != eventName {
				continue
			}
			fired = true
			result, err := e.fn(acc, context)
			if err != nil {
				return nil, err
			}
			if result == nil {
				continue
			}
			if result.Message != "" {
				messages = append(messages, result.Message)
			}
			for k, v := range result.Data {
				data[k] = v
			}
		}
	}

	if !fired {
		return nil, nil
	}
	return &accessor.EventResult{Message: strings.Join(messages, " "), Data: data}, nil
}

func (r *Registry) invokeWorldScoped(eventName string, acc *accessor.Accessor, context map[string]any) (*accessor.EventResult, error) {
	var messages []string
	data := map[string]any{}
	fired := false

	for _, e := range r.events {
		if e.eventName != eventName {
			continue
		}
		fired = true
		result, err := e.fn(acc, context)
		if err != nil {
			return nil, err
		}
		if result == nil {
			continue
		}
		if result.Message != "" {
			messages = append(messages, result.Message)
		}
		for k, v := range result.Data {
			data[k] = v
		}
	}

	if !fired {
		return nil, nil
	}
	return &accessor.EventResult{Message: strings.Join(messages, " "), Data: data}, nil
}

// GetEventForHook reverse-looks-up the event name registered for hook, the
// lookup the turn-phase driver uses (§4.2 "GetEventForHook").
func (r *Registry) GetEventForHook(hook string) (string, bool) {
	for _, e := range r.events {
		if e.hook == hook {
			return e.eventName, true
		}
	}
	return "", false
}
