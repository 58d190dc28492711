// Package registry implements the behavior registry and loader: module
// discovery ordering, vocabulary/handler/event registration, the five
// hook validators, and the invocation surface dispatch relies on (§4.2).
package registry

import (
	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/vocab"
)

// SourceType ranks where a module came from; later tiers override earlier
// ones on verb/vocabulary collision (§4.2 "later sources override
// earlier").
type SourceType int

const (
	SourceCore SourceType = iota
	SourceLibrary
	SourceGame
)

// HandlerFunc is a verb's action handler: given the accessor and the
// parsed command, it resolves nouns, checks preconditions, mutates
// through the accessor, and composes narration (§4.4).
type HandlerFunc func(acc *accessor.Accessor, act action.Action) (*action.HandlerResult, error)

// EventFunc is an entity- or turn-phase-scoped event handler (§4.2,
// "Zero or more on_<event> functions").
type EventFunc func(acc *accessor.Accessor, context map[string]any) (*accessor.EventResult, error)

// ModuleDef is what a behavior module exports: its path (used for
// discovery ordering and as the "defined_by"/behaviors-list identity),
// its vocabulary, its handle_<verb> functions, and its on_<event>
// functions keyed by event name (§4.2, §6 "Behavior module contract").
//
// Go has no runtime reflection-based `handle_<verb>` discovery (§9
// "Dynamic dispatch" redesign note): a module is an explicit table of
// {name, function pointer} built by its package's constructor function.
type ModuleDef struct {
	Path          string
	SourceType    SourceType
	Vocabulary    vocab.Vocabulary
	Handlers      map[string]HandlerFunc
	EventHandlers map[string]EventFunc // event name -> handler
}
