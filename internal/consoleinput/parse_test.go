package consoleinput

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw json.RawMessage) commandMessage {
	t.Helper()
	var msg commandMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestParseLineEmpty(t *testing.T) {
	require.Nil(t, ParseLine(""))
	require.Nil(t, ParseLine("   "))
}

func TestParseLineVerbOnly(t *testing.T) {
	msg := decode(t, ParseLine("look"))
	require.Equal(t, "command", msg.Type)
	require.Equal(t, "look", msg.Action.Verb)
	require.Empty(t, msg.Action.Object)
}

func TestParseLineObjectWithAdjectives(t *testing.T) {
	msg := decode(t, ParseLine("take the rusty key"))
	require.Equal(t, "take", msg.Action.Verb)
	require.Equal(t, "key", msg.Action.Object)
	require.Equal(t, []string{"rusty"}, msg.Action.Adjectives)
}

func TestParseLineWithPreposition(t *testing.T) {
	msg := decode(t, ParseLine("put the small key in the wooden box"))
	require.Equal(t, "put", msg.Action.Verb)
	require.Equal(t, "key", msg.Action.Object)
	require.Equal(t, []string{"small"}, msg.Action.Adjectives)
	require.Equal(t, "in", msg.Action.Preposition)
	require.Equal(t, "box", msg.Action.IndirectObject)
	require.Equal(t, "wooden", msg.Action.IndirectAdjective)
}

func TestParseLineUnlockWithKey(t *testing.T) {
	msg := decode(t, ParseLine("unlock door with brass key"))
	require.Equal(t, "unlock", msg.Action.Verb)
	require.Equal(t, "door", msg.Action.Object)
	require.Equal(t, "with", msg.Action.Preposition)
	require.Equal(t, "key", msg.Action.IndirectObject)
	require.Equal(t, "brass", msg.Action.IndirectAdjective)
}

func TestParseLineIsCaseInsensitive(t *testing.T) {
	msg := decode(t, ParseLine("TAKE THE Key"))
	require.Equal(t, "take", msg.Action.Verb)
	require.Equal(t, "key", msg.Action.Object)
}
