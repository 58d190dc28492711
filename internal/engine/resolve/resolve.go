// Package resolve implements the noun/adjective resolver (§4.7): turning a
// parsed surface word into an entity id by searching the actor's
// inventory, then their current location, then one level into open or
// surface containers.
package resolve

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sbenjam1n/ifengine/internal/engine/accessor"
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
)

// ErrNoMatch is returned when no candidate in the search order matches.
var ErrNoMatch = fmt.Errorf("resolve: no entity matches")

// cacheKey is (actor, word) scoped to one accessor generation; callers
// that mutate the world between turns get a fresh Resolver per turn, or
// call Invalidate.
type cacheKey struct {
	actor ids.ActorID
	word  string
	adj   string
}

// Resolver wraps the search with a small bounded cache (SPEC_FULL §2 Domain Stack:
// "bounded cache of (actorID, verbless surface word) -> resolved id").
type Resolver struct {
	cache *lru.Cache[cacheKey, ids.EntityID]
}

// New builds a Resolver with a cache capacity of size entries.
func New(size int) *Resolver {
	cache, _ := lru.New[cacheKey, ids.EntityID](size)
	return &Resolver{cache: cache}
}

// Invalidate drops every cached resolution. Callers should do this after
// any mutation that could change what a word resolves to (an item moving,
// being hidden, or being destroyed).
func (r *Resolver) Invalidate() {
	if r.cache != nil {
		r.cache.Purge()
	}
}

// Resolve finds the entity word (with optional adjectives) names for
// actorID, searching inventory, then location contents, then one level
// into open/surface containers (§4.7).
func (r *Resolver) Resolve(acc *accessor.Accessor, actorID ids.ActorID, word string, adjectives []string) (ids.EntityID, error) {
	key := cacheKey{actor: actorID, word: strings.ToLower(word), adj: strings.Join(adjectives, " ")}
	if r.cache != nil {
		if id, ok := r.cache.Get(key); ok {
			if _, err := acc.GetEntity(id); err == nil {
				return id, nil
			}
			r.cache.Remove(key)
		}
	}

	id, err := search(acc, actorID, word, adjectives)
	if err != nil {
		return "", err
	}
	if r.cache != nil {
		r.cache.Add(key, id)
	}
	return id, nil
}

func search(acc *accessor.Accessor, actorID ids.ActorID, word string, adjectives []string) (ids.EntityID, error) {
	actor, err := acc.GetActor(actorID)
	if err != nil {
		return "", err
	}

	// 1. inventory
	for _, id := range actor.Inventory {
		if matches(acc, id, word, adjectives, false) {
			return id, nil
		}
	}

	// 2. current location contents: items, other actors, exits, doors,
	// visible parts.
	locID := actor.Location
	for _, id := range acc.GetEntitiesAt(locID, accessor.KindAny) {
		if matches(acc, id, word, adjectives, false) {
			return id, nil
		}
	}
	for _, exit := range acc.GetExitsFromLocation(locID) {
		if matches(acc, exit.ID, word, adjectives, false) {
			return exit.ID, nil
		}
		if exit.DoorID != "" && matches(acc, exit.DoorID, word, adjectives, false) {
			return exit.DoorID, nil
		}
	}
	for _, part := range acc.GetPartsOf(locID) {
		if matches(acc, part.ID, word, adjectives, false) {
			return part.ID, nil
		}
	}

	// 3. containers that are open or surface-type, one level deep.
	for _, id := range append(append([]ids.EntityID{}, actor.Inventory...), acc.GetEntitiesAt(locID, accessor.KindItem)...) {
		item, err := acc.GetItem(id)
		if err != nil {
			continue
		}
		c, ok := item.Container()
		if !ok || !(c.IsOpen || c.IsSurface) {
			continue
		}
		for _, innerID := range acc.GetEntitiesAt(id, accessor.KindAny) {
			if matches(acc, innerID, word, adjectives, false) {
				return innerID, nil
			}
		}
	}

	// Universal surface words fall back to a synthesized id when no
	// explicit Part matched above.
	if ids.IsUniversalSurfaceWord(word) {
		return ids.VirtualSurfaceID(locID, word), nil
	}

	return "", ErrNoMatch
}

// matches applies the §4.7 matching rule: surface word equals name or a
// declared synonym; if adjectives are supplied every one must appear in
// the entity's description or adjective list. Hidden entities are
// skipped unless byID is true (a direct id lookup, never produced by
// Resolve itself but available to callers that already hold an id).
func matches(acc *accessor.Accessor, id ids.EntityID, word string, adjectives []string, byID bool) bool {
	entity, err := acc.GetEntity(id)
	if err != nil {
		return false
	}

	name, description, synonyms, entityAdjectives, hidden := describe(entity)
	if hidden && !byID {
		return false
	}

	lword := strings.ToLower(word)
	if !nameMatches(lword, name, synonyms) {
		return false
	}
	return adjectivesMatch(adjectives, description, entityAdjectives)
}

func nameMatches(word, name string, synonyms []string) bool {
	if strings.ToLower(name) == word {
		return true
	}
	for _, syn := range synonyms {
		if strings.ToLower(syn) == word {
			return true
		}
	}
	return false
}

func adjectivesMatch(adjectives []string, description string, entityAdjectives []string) bool {
	if len(adjectives) == 0 {
		return true
	}
	lowerDesc := strings.ToLower(description)
	adjSet := make(map[string]struct{}, len(entityAdjectives))
	for _, a := range entityAdjectives {
		adjSet[strings.ToLower(a)] = struct{}{}
	}
	for _, adj := range adjectives {
		adj = strings.ToLower(adj)
		if strings.Contains(lowerDesc, adj) {
			continue
		}
		if _, ok := adjSet[adj]; ok {
			continue
		}
		return false
	}
	return true
}

// SelectDoor picks one door item from candidates that all match the same
// noun, using the supplied adjectives first (description match, then
// direction-as-adjective against loc's exits), and otherwise preferring a
// locked or closed door over an open one (SPEC_FULL §3 supplemented feature 2,
// "_select_door").
func SelectDoor(acc *accessor.Accessor, loc *state.Location, candidates []ids.EntityID, adjectives []string) (ids.EntityID, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	doors := make([]*state.Item, 0, len(candidates))
	for _, id := range candidates {
		if item, err := acc.GetItem(id); err == nil && item.IsDoor() {
			doors = append(doors, item)
		}
	}
	if len(doors) == 0 {
		return "", false
	}

	if len(adjectives) > 0 {
		for _, door := range doors {
			if adjectivesMatch(adjectives, door.Description, stringList(door.Properties, "adjectives")) {
				return door.ID, true
			}
		}
		for _, door := range doors {
			for direction, exit := range loc.Exits {
				if exit.DoorID == door.ID && containsFold(adjectives, direction) {
					return door.ID, true
				}
			}
		}
	}

	for _, door := range doors {
		if door.DoorLocked() || !door.DoorOpen() {
			return door.ID, true
		}
	}
	return doors[0].ID, true
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

// describe extracts the fields the matcher needs from any entity kind,
// reading "synonyms"/"adjectives" properties where present (§4.7).
func describe(entity any) (name, description string, synonyms, adjectives []string, hidden bool) {
	switch e := entity.(type) {
	case *state.Item:
		return e.Name, e.Description, stringList(e.Properties, "synonyms"), stringList(e.Properties, "adjectives"), e.Hidden()
	case *state.Actor:
		return e.Name, e.Description, stringList(e.Properties, "synonyms"), stringList(e.Properties, "adjectives"), false
	case *state.Location:
		return e.Name, e.Description, stringList(e.Properties, "synonyms"), stringList(e.Properties, "adjectives"), false
	case *state.Lock:
		return e.Name, e.Description, stringList(e.Properties, "synonyms"), stringList(e.Properties, "adjectives"), false
	case *state.Exit:
		return e.Name, "", stringList(e.Properties, "synonyms"), nil, false
	case *state.Part:
		return e.Name, "", stringList(e.Properties, "synonyms"), stringList(e.Properties, "adjectives"), isHiddenProps(e.Properties)
	default:
		return "", "", nil, nil, false
	}
}

func isHiddenProps(props state.Properties) bool {
	v, ok := props["states"]
	if !ok {
		return false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	h, _ := m["hidden"].(bool)
	return h
}

func stringList(props state.Properties, key string) []string {
	raw, ok := props[key]
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
