package vocab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeConcatenatesVerbsAndDedupesWords(t *testing.T) {
	base := Vocabulary{
		Verbs:      []Verb{{Word: "look"}},
		Nouns:      []string{"lamp", "key"},
		Adjectives: []string{"brass"},
	}
	module := Vocabulary{
		Verbs:      []Verb{{Word: "take", ObjectRequired: true}},
		Nouns:      []string{"key", "box"},
		Adjectives: []string{"brass", "wooden"},
	}

	merged := Merge(base, module)

	require.Len(t, merged.Verbs, 2)
	require.Equal(t, []string{"lamp", "key", "box"}, merged.Nouns)
	require.Equal(t, []string{"brass", "wooden"}, merged.Adjectives)
}

func TestMergeLaterModuleWinsOnVerbCollision(t *testing.T) {
	base := Vocabulary{Verbs: []Verb{{Word: "open", ObjectRequired: false}}}
	override := Vocabulary{Verbs: []Verb{{Word: "open", ObjectRequired: true, Preposition: "with"}}}

	merged := Merge(base, override)

	require.Len(t, merged.Verbs, 1)
	require.True(t, merged.Verbs[0].ObjectRequired)
	require.Equal(t, "with", merged.Verbs[0].Preposition)
}

func TestMergeConcatenatesEventsAndHooks(t *testing.T) {
	a := Vocabulary{
		Events:          []EventSpec{{EventName: "on_take"}},
		HookDefinitions: []HookDefinitionSpec{{Hook: "before_take"}},
	}
	b := Vocabulary{
		Events:          []EventSpec{{EventName: "on_drop"}},
		HookDefinitions: []HookDefinitionSpec{{Hook: "after_drop", After: []string{"before_take"}}},
	}

	merged := Merge(a, b)

	require.Len(t, merged.Events, 2)
	require.Len(t, merged.HookDefinitions, 2)
}

func TestDefaultBaseIncludesMetaVerbs(t *testing.T) {
	base := DefaultBase()
	words := make(map[string]struct{}, len(base.Verbs))
	for _, v := range base.Verbs {
		words[v.Word] = struct{}{}
	}
	require.Contains(t, words, "look")
	require.Contains(t, words, "save")
	require.Contains(t, words, "quit")
	require.NotEmpty(t, base.Directions)
}
