package narration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncateTextWithinBudgetIsUnchanged(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	text := "a short line"
	require.Equal(t, text, tr.TruncateText(text, 100))
}

func TestTruncateTextOverBudgetShortens(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	text := "the quick brown fox jumps over the lazy dog and keeps running"
	truncated := tr.TruncateText(text, 3)
	require.Less(t, len(truncated), len(text))
}

func TestTruncateTraitsDropsTrailingOverBudget(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	traits := []string{"dusty", "ancient", "glowing faintly with arcane light"}
	out := tr.TruncateTraits(traits, 2)
	require.LessOrEqual(t, len(out), len(traits))
	require.Equal(t, traits[:len(out)], out)
}

func TestTruncateReplyMessageLeavesNonStringMessageAlone(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	reply := map[string]any{"message": 42}
	out := TruncateReplyMessage(reply, tr, 10)
	require.Equal(t, 42, out["message"])
}

func TestTruncateReplyMessageTruncatesString(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	reply := map[string]any{"message": "the quick brown fox jumps over the lazy dog"}
	out := TruncateReplyMessage(reply, tr, 3)
	msg, ok := out["message"].(string)
	require.True(t, ok)
	require.Less(t, len(msg), len("the quick brown fox jumps over the lazy dog"))
}
