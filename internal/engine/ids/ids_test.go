package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsReservedActorName(t *testing.T) {
	require.True(t, IsReservedActorName("Player"))
	require.True(t, IsReservedActorName("SELF"))
	require.False(t, IsReservedActorName("wizard"))
}

func TestIsRemovalSentinel(t *testing.T) {
	require.True(t, IsRemovalSentinel("__consumed_by_player__"))
	require.False(t, IsRemovalSentinel("kitchen"))
}

func TestVirtualExitLocationRoundTrip(t *testing.T) {
	id := VirtualExitLocation("kitchen", "north")
	require.Equal(t, EntityID("exit:kitchen:north"), id)
	require.True(t, IsVirtualExitLocation(id))

	loc, dir, ok := ParseVirtualExitLocation(id)
	require.True(t, ok)
	require.Equal(t, EntityID("kitchen"), loc)
	require.Equal(t, "north", dir)
}

func TestParseVirtualExitLocationRejectsMalformed(t *testing.T) {
	_, _, ok := ParseVirtualExitLocation("exit::north")
	require.False(t, ok)

	_, _, ok = ParseVirtualExitLocation("kitchen")
	require.False(t, ok)
}

func TestIsUniversalSurfaceWord(t *testing.T) {
	require.True(t, IsUniversalSurfaceWord("Ceiling"))
	require.False(t, IsUniversalSurfaceWord("table"))
}

func TestVirtualSurfaceIDRoundTrip(t *testing.T) {
	id := VirtualSurfaceID("kitchen", "Ceiling")
	require.Equal(t, EntityID("surface:kitchen:ceiling"), id)
	require.True(t, IsVirtualSurface(id))

	loc, word, ok := ParseVirtualSurface(id)
	require.True(t, ok)
	require.Equal(t, EntityID("kitchen"), loc)
	require.Equal(t, "ceiling", word)
}
