// Package ids defines the core identifier types and reserved-name rules
// shared by every other engine package (state, index, accessor, registry).
package ids

import (
	"errors"
	"strings"
)

// EntityID is the string identity of any entity in a world: a location,
// item, actor, lock, part, or exit. IDs are globally unique within a world.
type EntityID string

// ActorID narrows EntityID to the set of ids that name an actor. The
// reserved value "player" always names the viewpoint actor.
type ActorID string

const (
	// Player is the one reserved entity id (§3, §6).
	Player ActorID = "player"

	// removalPrefix marks a container id as a removal sentinel: the record
	// is retained for audit but excluded from both containment indices.
	removalPrefix = "__"

	// exitPrefix marks a virtual location denoting a door's slot in an
	// exit: "exit:<loc>:<direction>".
	exitPrefix = "exit:"

	// surfacePrefix marks a synthesized id the resolver returns for a
	// universal surface word with no backing Part entity.
	surfacePrefix = "surface:"
)

// ReservedActorNames is the case-insensitive set of names no actor may use,
// because they collide with self-reference vocabulary or the viewpoint
// actor itself (§3 invariants).
var ReservedActorNames = map[string]struct{}{
	"player": {}, "npc": {}, "self": {}, "me": {}, "myself": {},
}

// IsReservedActorName reports whether name collides with a reserved word,
// case-insensitively.
func IsReservedActorName(name string) bool {
	_, ok := ReservedActorNames[strings.ToLower(name)]
	return ok
}

// IsRemovalSentinel reports whether containerID marks an entity as
// logically destroyed ("__consumed_by_player__" and similar).
func IsRemovalSentinel(containerID EntityID) bool {
	return strings.HasPrefix(string(containerID), removalPrefix)
}

// IsVirtualExitLocation reports whether id has the synthesized
// "exit:<loc>:<dir>" shape used as a door item's location.
func IsVirtualExitLocation(id EntityID) bool {
	return strings.HasPrefix(string(id), exitPrefix)
}

// ParseVirtualExitLocation splits "exit:<loc>:<dir>" into its location id
// and direction token. ok is false if id is not a well-formed virtual
// location (the prefix, a non-empty loc, and a non-empty dir; everything
// after the second colon, further colons included, is the dir).
func ParseVirtualExitLocation(id EntityID) (loc EntityID, direction string, ok bool) {
	if !IsVirtualExitLocation(id) {
		return "", "", false
	}
	parts := strings.SplitN(string(id), ":", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return EntityID(parts[1]), parts[2], true
}

// VirtualExitLocation builds the canonical "exit:<loc>:<dir>" id for a
// door's slot in an exit. This is the one canonical form both validators
// and serializers use (§9 Open Question (a)).
func VirtualExitLocation(loc EntityID, direction string) EntityID {
	return EntityID(exitPrefix + string(loc) + ":" + direction)
}

// UniversalSurfaceWords is the fixed set of surface words every location
// implicitly has, even without a backing Part entity (§4.7 "Universal
// surface words").
var UniversalSurfaceWords = map[string]string{
	"ceiling": "You see nothing remarkable about the ceiling.",
	"floor":   "You see nothing remarkable about the floor.",
	"walls":   "You see nothing remarkable about the walls.",
	"ground":  "You see nothing remarkable about the ground.",
	"sky":     "You see nothing remarkable about the sky.",
}

// IsUniversalSurfaceWord reports whether word names one of the five
// always-present surface words.
func IsUniversalSurfaceWord(word string) bool {
	_, ok := UniversalSurfaceWords[strings.ToLower(word)]
	return ok
}

// VirtualSurfaceID builds the synthesized id the resolver returns for a
// universal surface word with no explicit Part in locID (e.g.
// "surface:kitchen:ceiling").
func VirtualSurfaceID(locID EntityID, word string) EntityID {
	return EntityID(surfacePrefix + string(locID) + ":" + strings.ToLower(word))
}

// IsVirtualSurface reports whether id has the synthesized
// "surface:<loc>:<word>" shape.
func IsVirtualSurface(id EntityID) bool {
	return strings.HasPrefix(string(id), surfacePrefix)
}

// ParseVirtualSurface splits "surface:<loc>:<word>" into its location id
// and surface word.
func ParseVirtualSurface(id EntityID) (loc EntityID, word string, ok bool) {
	if !IsVirtualSurface(id) {
		return "", "", false
	}
	parts := strings.SplitN(string(id), ":", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return EntityID(parts[1]), parts[2], true
}

// Sentinel errors returned by accessor lookups and mutators (§4.1 failure
// modes, §7 error kinds).
var (
	// ErrNotFound is returned by a typed getter (GetItem, GetActor, ...)
	// when no entity of that kind has the requested id.
	ErrNotFound = errors.New("entity not found")

	// ErrContainerNotFound is returned by SetEntityWhere when the target
	// container id does not name any known entity.
	ErrContainerNotFound = errors.New("container not found")

	// ErrEntityNotFound is returned when a handler operates on a stale
	// entity id; surfaces to the protocol layer as an inconsistency.
	ErrEntityNotFound = errors.New("entity not found for mutation")

	// ErrInconsistentState marks a structural violation a handler detected
	// mid-mutation (e.g. putting an item inside itself). Its message,
	// prefixed "INCONSISTENT STATE:", is how handlers trip the corruption
	// latch (§4.1, §7).
	ErrInconsistentState = errors.New("inconsistent state")
)

// InconsistentStatePrefix is the exact message prefix the protocol handler
// watches for to latch state_corrupted (§3 Turn lifecycle, §4.6).
const InconsistentStatePrefix = "INCONSISTENT STATE:"
