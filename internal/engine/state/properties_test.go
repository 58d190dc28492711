package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPropertiesClone(t *testing.T) {
	var nilProps Properties
	require.Nil(t, nilProps.Clone())

	p := Properties{"weight": 3.0}
	clone := p.Clone()
	clone["weight"] = 9.0
	require.Equal(t, 3.0, p["weight"])
	require.Equal(t, 9.0, clone["weight"])
}

func TestPropertiesAccessors(t *testing.T) {
	p := Properties{
		"locked": true,
		"label":  "brass plate",
		"door":   map[string]any{"open": false},
	}
	require.True(t, p.bool("locked"))
	require.False(t, p.bool("missing"))
	require.Equal(t, "brass plate", p.str("label"))
	require.Equal(t, "", p.str("missing"))
	require.Equal(t, map[string]any{"open": false}, p.subMap("door"))
	require.Nil(t, p.subMap("label"))
}

type fixtureKnown struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestDecodeKnownFieldsSplitsRemainder(t *testing.T) {
	raw := []byte(`{"id":"lamp","name":"brass lamp","weight":2.5,"portable":true}`)
	var known fixtureKnown
	props, err := decodeKnownFields(raw, &known, []string{"id", "name"})
	require.NoError(t, err)
	require.Equal(t, "lamp", known.ID)
	require.Equal(t, "brass lamp", known.Name)
	require.Equal(t, 2.5, props["weight"])
	require.Equal(t, true, props["portable"])
	require.NotContains(t, props, "id")
	require.NotContains(t, props, "name")
}

func TestEncodeWithPropertiesFlattensToTopLevel(t *testing.T) {
	known := fixtureKnown{ID: "lamp", Name: "brass lamp"}
	props := Properties{"weight": 2.5}

	out, err := encodeWithProperties(known, props)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, "lamp", decoded["id"])
	require.Equal(t, "brass lamp", decoded["name"])
	require.Equal(t, 2.5, decoded["weight"])
}
