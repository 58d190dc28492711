// Package consoleinput implements the minimal whitespace tokenizer the
// terminal front ends (cmd/ifengine's play subcommand, cmd/ifplay) use to
// turn a typed line into a protocol command message. It is deliberately
// not a natural-language parser — SPEC_FULL's cmd/ifplay note is explicit
// that the demo narrator proves HandleMessage end-to-end "without
// embedding a real NL parser" — so multi-word nouns split on a fixed set
// of prepositions and a trailing noun, nothing smarter.
package consoleinput

import (
	"encoding/json"
	"strings"
)

var articles = map[string]struct{}{"the": {}, "a": {}, "an": {}}
var prepositions = []string{"with", "in", "into", "on", "onto", "to", "at"}

// commandMessage mirrors protocol.Message/ActionWire's JSON shape without
// importing the protocol package, so this package carries no dependency
// on the engine's internals — it only ever produces raw JSON bytes.
type commandMessage struct {
	Type   string      `json:"type"`
	Action *actionWire `json:"action"`
}

type actionWire struct {
	Verb              string   `json:"verb"`
	Object            string   `json:"object,omitempty"`
	Adjectives        []string `json:"adjectives,omitempty"`
	IndirectObject    string   `json:"indirect_object,omitempty"`
	IndirectAdjective string   `json:"indirect_adjective,omitempty"`
	Preposition       string   `json:"preposition,omitempty"`
}

// ParseLine turns a typed line into the raw JSON bytes for a "command"
// protocol message: the first word is the verb, the remainder is split on
// the first recognised preposition into an object phrase and an indirect
// object phrase, and each phrase's last word becomes the noun with any
// leading words (after dropping articles) becoming adjectives.
func ParseLine(line string) json.RawMessage {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return nil
	}

	verb := strings.ToLower(fields[0])
	rest := fields[1:]

	objectWords, preposition, indirectWords := splitOnPreposition(rest)

	act := &actionWire{Verb: verb, Preposition: preposition}
	act.Object, act.Adjectives = lastAsNoun(objectWords)
	indirectNoun, indirectAdjectives := lastAsNoun(indirectWords)
	act.IndirectObject = indirectNoun
	if len(indirectAdjectives) > 0 {
		act.IndirectAdjective = strings.Join(indirectAdjectives, " ")
	}

	raw, err := json.Marshal(commandMessage{Type: "command", Action: act})
	if err != nil {
		return nil
	}
	return raw
}

func splitOnPreposition(words []string) (object []string, preposition string, indirect []string) {
	for i, w := range words {
		lw := strings.ToLower(w)
		for _, p := range prepositions {
			if lw == p {
				return dropArticles(words[:i]), lw, dropArticles(words[i+1:])
			}
		}
	}
	return dropArticles(words), "", nil
}

func dropArticles(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, isArticle := articles[strings.ToLower(w)]; isArticle {
			continue
		}
		out = append(out, w)
	}
	return out
}

func lastAsNoun(words []string) (noun string, adjectives []string) {
	if len(words) == 0 {
		return "", nil
	}
	noun = strings.ToLower(words[len(words)-1])
	for _, w := range words[:len(words)-1] {
		adjectives = append(adjectives, strings.ToLower(w))
	}
	return noun, adjectives
}
