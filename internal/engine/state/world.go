// Package state defines the tagged-variant entity model (Location, Item,
// Actor, Lock, Part, Exit), the open Properties extensibility bag, and the
// World aggregate with its JSON load/save (§3, §9 "Open properties dict").
//
// Indices (containment, exit-connection) are derived and live in the
// sibling index package: they are never persisted and are rebuilt on every
// load (§3 "Indices (derived, never persisted)").
package state

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/ids"
)

// World is the full, in-memory state of one game: every entity plus
// world-level bookkeeping. It carries no derived index — those are built
// by the index package from a *World snapshot.
type World struct {
	Metadata Metadata

	Locations []Location
	Items     []Item
	Locks     []Lock
	Parts     []Part
	Exits     []Exit

	// Actors is keyed by actor id for O(1) lookup; ActorOrder preserves the
	// order ids first appeared in the source JSON object, since Go map
	// iteration order is randomized and the turn-phase scheduler must visit
	// actors deterministically (§5 "iterates entities in deterministic
	// (insertion) order over the actors map").
	Actors     map[ids.ActorID]*Actor
	ActorOrder []ids.ActorID

	// Extra carries behavior-scoped payloads not modeled structurally
	// (e.g. "recipes", "item_templates") (§6 world-file schema).
	Extra map[string]any

	TurnCount int
}

type wireWorld struct {
	Metadata  Metadata                   `json:"metadata"`
	Locations []Location                 `json:"locations"`
	Items     []Item                     `json:"items"`
	Locks     []Lock                     `json:"locks"`
	Parts     []Part                     `json:"parts,omitempty"`
	Exits     []Exit                     `json:"exits,omitempty"`
	Extra     map[string]json.RawMessage `json:"extra,omitempty"`
	TurnCount int                        `json:"turn_count,omitempty"`
}

// LoadWorld parses a world-file JSON document into a World. It performs no
// validation beyond what is required to decode the shape — structural and
// hook validation is the caller's responsibility (the validate package),
// run after loading per §3's Load lifecycle.
func LoadWorld(data []byte) (*World, error) {
	var wire wireWorld
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("state: decode world: %w", err)
	}

	actors, order, err := decodeOrderedActors(data)
	if err != nil {
		return nil, fmt.Errorf("state: decode actors: %w", err)
	}

	extra := make(map[string]any, len(wire.Extra))
	for k, raw := range wire.Extra {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("state: decode extra[%s]: %w", k, err)
		}
		extra[k] = v
	}

	return &World{
		Metadata:   wire.Metadata,
		Locations:  wire.Locations,
		Items:      wire.Items,
		Locks:      wire.Locks,
		Parts:      wire.Parts,
		Exits:      wire.Exits,
		Actors:     actors,
		ActorOrder: order,
		Extra:      extra,
		TurnCount:  wire.TurnCount,
	}, nil
}

// decodeOrderedActors walks the "actors" object of a world document token
// by token to recover the source key order, since encoding/json's map
// decode is order-blind.
func decodeOrderedActors(data []byte) (map[ids.ActorID]*Actor, []ids.ActorID, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, nil, err
	}
	raw, ok := outer["actors"]
	if !ok {
		return map[ids.ActorID]*Actor{}, nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("actors must be a JSON object")
	}

	actors := make(map[ids.ActorID]*Actor)
	var order []ids.ActorID
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("actor key must be a string")
		}
		var actor Actor
		if err := dec.Decode(&actor); err != nil {
			return nil, nil, fmt.Errorf("actor %q: %w", key, err)
		}
		actor.ID = ids.ActorID(key)
		actors[actor.ID] = &actor
		order = append(order, actor.ID)
	}
	return actors, order, nil
}

// SaveWorld serializes w back to a world-file JSON document. turn_count is
// dropped from the output when it is zero, matching the source's
// save-side suppression (§6 "drops any turn_count == 0").
func SaveWorld(w *World) ([]byte, error) {
	actorsOut := make(map[string]json.RawMessage, len(w.ActorOrder))
	for _, id := range w.ActorOrder {
		actor, ok := w.Actors[id]
		if !ok {
			continue
		}
		encoded, err := json.Marshal(actor)
		if err != nil {
			return nil, fmt.Errorf("state: encode actor %s: %w", id, err)
		}
		actorsOut[string(id)] = encoded
	}

	extraOut := make(map[string]json.RawMessage, len(w.Extra))
	for k, v := range w.Extra {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("state: encode extra[%s]: %w", k, err)
		}
		extraOut[k] = encoded
	}

	doc := map[string]any{
		"metadata":  w.Metadata,
		"locations": w.Locations,
		"items":     w.Items,
		"actors":    actorsOut,
	}
	if len(w.Locks) > 0 {
		doc["locks"] = w.Locks
	}
	if len(w.Parts) > 0 {
		doc["parts"] = w.Parts
	}
	if len(w.Exits) > 0 {
		doc["exits"] = w.Exits
	}
	if len(extraOut) > 0 {
		doc["extra"] = extraOut
	}
	if w.TurnCount != 0 {
		doc["turn_count"] = w.TurnCount
	}
	return json.MarshalIndent(doc, "", "  ")
}

// IncrementTurn advances the world's turn counter by one (§3 Turn
// lifecycle: "on success, turn counter increments").
func (w *World) IncrementTurn() { w.TurnCount++ }
