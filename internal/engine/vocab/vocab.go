// Package vocab defines the vocabulary shape a behavior module exports
// (verbs, nouns, adjectives, prepositions, directions, events, hook
// definitions) and the merge rule the registry applies across modules
// (§4.2 "Merging vocabulary").
package vocab

// Verb describes one command word a module's vocabulary exposes to the
// external parser.
type Verb struct {
	Word            string   `json:"word"`
	Synonyms        []string `json:"synonyms,omitempty"`
	ObjectRequired  bool     `json:"object_required,omitempty"`
	Preposition     string   `json:"preposition,omitempty"`
}

// HookDefinitionSpec is the wire shape of a module's hook_definitions
// entry (§6 "Behavior module contract").
type HookDefinitionSpec struct {
	Hook        string   `json:"hook"`
	Invocation  string   `json:"invocation"`
	After       []string `json:"after,omitempty"`
	Description string   `json:"description,omitempty"`
}

// EventSpec ties an event name to the hook it participates in (empty Hook
// means the event is not part of the turn-phase/entity-hook system, e.g. a
// purely informational event some handlers fire for logging narration).
type EventSpec struct {
	EventName string `json:"event_name"`
	Hook      string `json:"hook,omitempty"`
}

// Vocabulary is what a behavior module exports (§4.2).
type Vocabulary struct {
	Verbs           []Verb               `json:"verbs,omitempty"`
	Nouns           []string             `json:"nouns,omitempty"`
	Adjectives      []string             `json:"adjectives,omitempty"`
	Prepositions    []string             `json:"prepositions,omitempty"`
	Directions      []string             `json:"directions,omitempty"`
	Events          []EventSpec          `json:"events,omitempty"`
	HookDefinitions []HookDefinitionSpec `json:"hook_definitions,omitempty"`
}

// DefaultBase returns the engine-default vocabulary (verbs, prepositions,
// articles) merged as the base layer before any module's vocabulary, the
// Go-literal equivalent of the source's vocabulary.json asset.
func DefaultBase() Vocabulary {
	return Vocabulary{
		Verbs: []Verb{
			{Word: "look", Synonyms: []string{"l"}},
			{Word: "inventory", Synonyms: []string{"i", "inv"}},
			{Word: "wait", Synonyms: []string{"z"}},
			{Word: "save"},
			{Word: "load", Synonyms: []string{"restore"}},
			{Word: "quit", Synonyms: []string{"q", "exit"}},
			{Word: "help"},
		},
		Prepositions: []string{"in", "on", "under", "with", "to", "from", "at", "through"},
		Directions:   []string{"north", "south", "east", "west", "up", "down", "northeast", "northwest", "southeast", "southwest", "in", "out"},
	}
}

// Merge produces the merged view handed to the external parser (§4.2):
// verb lists concatenate, noun/adjective lists dedupe, and synonyms /
// object_required from later modules win on name collision.
func Merge(layers ...Vocabulary) Vocabulary {
	var merged Vocabulary
	verbIndex := make(map[string]int)

	for _, layer := range layers {
		for _, v := range layer.Verbs {
			if i, ok := verbIndex[v.Word]; ok {
				merged.Verbs[i] = v // later module wins on collision
				continue
			}
			verbIndex[v.Word] = len(merged.Verbs)
			merged.Verbs = append(merged.Verbs, v)
		}
		merged.Nouns = dedupeAppend(merged.Nouns, layer.Nouns)
		merged.Adjectives = dedupeAppend(merged.Adjectives, layer.Adjectives)
		merged.Prepositions = dedupeAppend(merged.Prepositions, layer.Prepositions)
		merged.Directions = dedupeAppend(merged.Directions, layer.Directions)
		merged.Events = append(merged.Events, layer.Events...)
		merged.HookDefinitions = append(merged.HookDefinitions, layer.HookDefinitions...)
	}
	return merged
}

func dedupeAppend(dst []string, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, s := range dst {
		seen[s] = struct{}{}
	}
	for _, s := range src {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		dst = append(dst, s)
	}
	return dst
}
