// Package protocol implements the JSON command/query protocol handler: the
// corruption latch, message-type dispatch, bare-string-to-word promotion,
// and the query_type sub-dispatch (§4.6, §6).
package protocol

import (
	"encoding/json"

	"github.com/sbenjam1n/ifengine/internal/engine/action"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
)

// ActionWire is the wire shape of a command message's "action" field.
// Object/IndirectObject accept either a bare string or a full word-entry
// object; decodeWord promotes a bare string to {word, word_type: noun}
// (§6 "Bare strings are promoted to word records").
type ActionWire struct {
	ActorID           string          `json:"actor_id,omitempty"`
	Verb              string          `json:"verb"`
	Object            json.RawMessage `json:"object,omitempty"`
	Adjective         string          `json:"adjective,omitempty"`
	Adjectives        []string        `json:"adjectives,omitempty"`
	IndirectObject    json.RawMessage `json:"indirect_object,omitempty"`
	IndirectAdjective string          `json:"indirect_adjective,omitempty"`
	Preposition       string          `json:"preposition,omitempty"`
}

// Message is the envelope for both command and query messages; unused
// fields are simply absent from the incoming JSON.
type Message struct {
	Type       string      `json:"type"`
	Action     *ActionWire `json:"action,omitempty"`
	QueryType  string      `json:"query_type,omitempty"`
	ActorID    string      `json:"actor_id,omitempty"`
	EntityType string      `json:"entity_type,omitempty"`
	EntityID   string      `json:"entity_id,omitempty"`
	LocationID string      `json:"location_id,omitempty"`
	Include    []string    `json:"include,omitempty"`
}

// toAction converts the wire action into the dispatch-ready action.Action,
// defaulting ActorID to "player" (§4.6 "fill in actor_id = 'player'
// default").
func (w *ActionWire) toAction() (action.Action, error) {
	actorID := w.ActorID
	if actorID == "" {
		actorID = "player"
	}

	obj, err := decodeWord(w.Object)
	if err != nil {
		return action.Action{}, err
	}
	indirectObj, err := decodeWord(w.IndirectObject)
	if err != nil {
		return action.Action{}, err
	}

	return action.Action{
		ActorID:           ids.ActorID(actorID),
		Verb:              w.Verb,
		Object:            obj,
		Adjective:         w.Adjective,
		Adjectives:        w.Adjectives,
		IndirectObject:    indirectObj,
		IndirectAdjective: w.IndirectAdjective,
		Preposition:       w.Preposition,
	}, nil
}

func decodeWord(raw json.RawMessage) (*action.Word, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return &action.Word{Word: bare, WordType: action.WordTypeNoun}, nil
	}
	var w action.Word
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return &w, nil
}
