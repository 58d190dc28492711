// Package index builds and maintains the derived containment and
// exit-connection indices described in §3. Indices are never persisted:
// they are rebuilt from a *state.World at load and afterward mutated only
// through the accessor's SetEntityWhere / ConnectExits / DisconnectExits.
package index

import (
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
)

// Containment is the bidirectional map between a container id and the
// entities located there (§3 "entities_at / entity_where").
type Containment struct {
	forward map[ids.EntityID][]ids.EntityID // container -> ordered, deduped contents
	reverse map[ids.EntityID]ids.EntityID   // entity -> its current container
}

// BuildContainment constructs the containment index from every item and
// actor in w. Entities whose location begins with "__" are excluded from
// both maps (§3 Indices).
func BuildContainment(w *state.World) *Containment {
	c := &Containment{
		forward: make(map[ids.EntityID][]ids.EntityID),
		reverse: make(map[ids.EntityID]ids.EntityID),
	}
	for i := range w.Items {
		item := &w.Items[i]
		if item.Location == "" || ids.IsRemovalSentinel(item.Location) {
			continue
		}
		c.insert(item.Location, item.ID)
		c.reverse[item.ID] = item.Location
	}
	for _, actorID := range w.ActorOrder {
		actor := w.Actors[actorID]
		if actor == nil || actor.Location == "" || ids.IsRemovalSentinel(actor.Location) {
			continue
		}
		entID := ids.EntityID(actorID)
		c.insert(actor.Location, entID)
		c.reverse[entID] = actor.Location
	}
	return c
}

func (c *Containment) insert(container, entity ids.EntityID) {
	for _, existing := range c.forward[container] {
		if existing == entity {
			return
		}
	}
	c.forward[container] = append(c.forward[container], entity)
}

func (c *Containment) remove(container, entity ids.EntityID) {
	list := c.forward[container]
	for i, existing := range list {
		if existing == entity {
			c.forward[container] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// EntitiesAt returns the ids currently located at containerID, in the
// stable order they were inserted.
func (c *Containment) EntitiesAt(containerID ids.EntityID) []ids.EntityID {
	out := make([]ids.EntityID, len(c.forward[containerID]))
	copy(out, c.forward[containerID])
	return out
}

// EntityWhere returns the container currently holding entityID, and
// whether entityID is tracked at all (it is absent if it was never placed
// or was moved to a removal sentinel).
func (c *Containment) EntityWhere(entityID ids.EntityID) (ids.EntityID, bool) {
	container, ok := c.reverse[entityID]
	return container, ok
}

// Move relocates entityID from its current container (if any) to
// newContainer. Passing a removal-sentinel newContainer removes entityID
// from both maps (§4.1 SetEntityWhere).
func (c *Containment) Move(entityID, newContainer ids.EntityID) {
	if old, ok := c.reverse[entityID]; ok {
		c.remove(old, entityID)
	}
	if ids.IsRemovalSentinel(newContainer) {
		delete(c.reverse, entityID)
		return
	}
	c.insert(newContainer, entityID)
	c.reverse[entityID] = newContainer
}
