package state

import "encoding/json"

// Properties is the open, per-entity extensibility bag (§3 "Properties").
// The loader promotes any JSON field that doesn't match a structural
// attribute into Properties; the serializer flattens it back to the top
// level on save. Nested maps (container, door, states, llm_context) are
// preserved verbatim.
type Properties map[string]any

// Clone returns a shallow copy of p. Callers that need to mutate a nested
// map (e.g. the "door" sub-map) should fetch, copy, and re-store it rather
// than mutating a shared reference, since Properties values may be read
// concurrently by the serializer.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// subMap fetches key as a map[string]any, returning nil if absent or of
// the wrong shape.
func (p Properties) subMap(key string) map[string]any {
	v, ok := p[key]
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m
}

func (p Properties) bool(key string) bool {
	v, ok := p[key]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func (p Properties) str(key string) string {
	v, ok := p[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// decodeKnownFields splits raw JSON object bytes into a struct-shaped known
// portion (via dst, a pointer to a struct whose json tags name the
// structural allowlist) and the remainder as Properties. known lists the
// JSON field names dst's tags consume, so they are excluded from the
// remainder even if dst chooses not to populate every one of them (e.g. an
// omitted pointer field).
func decodeKnownFields(raw []byte, dst any, known []string) (Properties, error) {
	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, err
	}
	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[k] = struct{}{}
	}
	props := Properties{}
	for k, v := range all {
		if _, isKnown := knownSet[k]; isKnown {
			continue
		}
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return nil, err
		}
		props[k] = decoded
	}
	return props, nil
}

// encodeWithProperties flattens props onto the JSON object produced from
// known (a struct with the structural allowlist as tags), so properties
// round-trip to top-level fields on save (§6 "Save-side serialisation
// flattens properties back to the top level").
func encodeWithProperties(known any, props Properties) ([]byte, error) {
	knownBytes, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(knownBytes, &merged); err != nil {
		return nil, err
	}
	for k, v := range props {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = encoded
	}
	return json.Marshal(merged)
}
