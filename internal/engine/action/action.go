// Package action defines the wire shapes that travel between the external
// parser and the dispatch pipeline: the parsed command (Action), its word
// entries, and the result a verb handler returns (§6 "Command / query
// protocol", §4.4 Dispatch).
package action

import (
	"strings"

	"github.com/sbenjam1n/ifengine/internal/engine/ids"
)

// WordType classifies a Word entry the parser hands to a handler.
type WordType string

const (
	WordTypeNoun      WordType = "noun"
	WordTypeAdjective WordType = "adjective"
	WordTypeVerb      WordType = "verb"
)

// Word is a parsed surface word with its synonyms, as the external
// tokeniser/parser produces it (§6 "A word record is
// {word, word_type, synonyms[]}").
type Word struct {
	Word     string   `json:"word"`
	WordType WordType `json:"word_type,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// Action is the parsed command handed to a verb handler. The parser
// guarantees Object/IndirectObject are *Word (or nil) by the time a
// handler sees them; the protocol layer is responsible for promoting bare
// strings into Word records before dispatch (§6 "A word record...
// Bare strings are promoted to word records by the handler").
type Action struct {
	ActorID           ids.ActorID
	Verb              string
	Object            *Word
	Adjective         string
	Adjectives        []string // supplements Adjective: see §3 supplemented-features note 1
	IndirectObject    *Word
	IndirectAdjective string
	Preposition       string
}

// AllAdjectives normalizes Adjective/Adjectives into one ordered, deduped
// lower-cased list (§3 supplemented-features note 1).
func (a Action) AllAdjectives() []string {
	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = strings.ToLower(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, a := range a.Adjectives {
		add(a)
	}
	if a.Adjective != "" {
		for _, word := range strings.Fields(a.Adjective) {
			add(word)
		}
	}
	return out
}

// HandlerResult is what a verb's action handler returns (§4.4 "Action
// handler"): success/failure, narration, optional structured data, and
// any narration beats an implicit-positioning step queued up.
type HandlerResult struct {
	Success bool
	Message string
	Data    map[string]any
	Beats   []string
}
