// Package accessor implements the single legal path by which behavior
// handlers read and mutate world state (§4.1, §9 "Accessor as
// interface / trait"). It is the capability set behaviors depend on,
// rather than the concrete world.
package accessor

import (
	"fmt"

	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/index"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
)

// Entity is any world object a behavior module can be attached to: it
// names its own id and the list of behavior modules registered on it.
type Entity interface {
	EntityID() ids.EntityID
	BehaviorModules() []string
}

// EventResult is what an entity-scoped or turn-phase behavior handler
// returns (§4.2 "InvokeBehavior").
type EventResult struct {
	Message string
	Data    map[string]any
}

// BehaviorInvoker is the slice of the behavior registry the accessor needs
// to fire entity reactions during Update. Implemented by
// internal/engine/registry.Registry; declared here (not imported) to avoid
// a cycle, since the registry's InvokeHandler takes an Accessor.
type BehaviorInvoker interface {
	InvokeBehavior(entity Entity, eventName string, acc *Accessor, context map[string]any) (*EventResult, error)
}

// Accessor is the capability object handlers receive: typed lookups,
// containment/exit queries, and the only supported mutation paths
// (SetEntityWhere, Update, ConnectExits/DisconnectExits).
type Accessor struct {
	World       *state.World
	Containment *index.Containment
	Connections *index.Connections
	Behaviors   BehaviorInvoker
}

// New builds an Accessor over world, with containment and connection
// indices built from it (§3 "Indices (derived, never persisted)").
func New(world *state.World, behaviors BehaviorInvoker) *Accessor {
	return &Accessor{
		World:       world,
		Containment: index.BuildContainment(world),
		Connections: index.BuildConnections(world),
		Behaviors:   behaviors,
	}
}

// GetItem returns the item with id, or ids.ErrNotFound.
func (a *Accessor) GetItem(id ids.EntityID) (*state.Item, error) {
	for i := range a.World.Items {
		if a.World.Items[i].ID == id {
			return &a.World.Items[i], nil
		}
	}
	return nil, ids.ErrNotFound
}

// GetActor returns the actor with id, or ids.ErrNotFound.
func (a *Accessor) GetActor(id ids.ActorID) (*state.Actor, error) {
	if actor, ok := a.World.Actors[id]; ok {
		return actor, nil
	}
	return nil, ids.ErrNotFound
}

// GetLocation returns the location with id, or ids.ErrNotFound.
func (a *Accessor) GetLocation(id ids.EntityID) (*state.Location, error) {
	for i := range a.World.Locations {
		if a.World.Locations[i].ID == id {
			return &a.World.Locations[i], nil
		}
	}
	return nil, ids.ErrNotFound
}

// GetLock returns the lock with id, or ids.ErrNotFound.
func (a *Accessor) GetLock(id ids.EntityID) (*state.Lock, error) {
	for i := range a.World.Locks {
		if a.World.Locks[i].ID == id {
			return &a.World.Locks[i], nil
		}
	}
	return nil, ids.ErrNotFound
}

// GetExit returns the exit with id, or ids.ErrNotFound.
func (a *Accessor) GetExit(id ids.EntityID) (*state.Exit, error) {
	for i := range a.World.Exits {
		if a.World.Exits[i].ID == id {
			return &a.World.Exits[i], nil
		}
	}
	return nil, ids.ErrNotFound
}

// GetPart returns the part with id, or ids.ErrNotFound.
func (a *Accessor) GetPart(id ids.EntityID) (*state.Part, error) {
	for i := range a.World.Parts {
		if a.World.Parts[i].ID == id {
			return &a.World.Parts[i], nil
		}
	}
	return nil, ids.ErrNotFound
}

// GetEntity searches every kind for id and returns whichever entity
// matches (§4.1 "GetEntity (the last searches all kinds)").
func (a *Accessor) GetEntity(id ids.EntityID) (any, error) {
	if item, err := a.GetItem(id); err == nil {
		return item, nil
	}
	if id == ids.EntityID(ids.Player) {
		if actor, err := a.GetActor(ids.Player); err == nil {
			return actor, nil
		}
	}
	if actor, ok := a.World.Actors[ids.ActorID(id)]; ok {
		return actor, nil
	}
	if loc, err := a.GetLocation(id); err == nil {
		return loc, nil
	}
	if lock, err := a.GetLock(id); err == nil {
		return lock, nil
	}
	if exit, err := a.GetExit(id); err == nil {
		return exit, nil
	}
	if part, err := a.GetPart(id); err == nil {
		return part, nil
	}
	return nil, ids.ErrNotFound
}

// EntityKind filters GetEntitiesAt to one kind of entity.
type EntityKind int

const (
	KindAny EntityKind = iota
	KindItem
	KindActor
)

// GetEntitiesAt returns the entities located at containerID, optionally
// filtered to one kind.
func (a *Accessor) GetEntitiesAt(containerID ids.EntityID, kindFilter EntityKind) []ids.EntityID {
	all := a.Containment.EntitiesAt(containerID)
	if kindFilter == KindAny {
		return all
	}
	out := make([]ids.EntityID, 0, len(all))
	for _, id := range all {
		switch kindFilter {
		case KindItem:
			if _, err := a.GetItem(id); err == nil {
				out = append(out, id)
			}
		case KindActor:
			if _, ok := a.World.Actors[ids.ActorID(id)]; ok {
				out = append(out, id)
			}
		}
	}
	return out
}

// GetEntityWhere returns the container currently holding id.
func (a *Accessor) GetEntityWhere(id ids.EntityID) (ids.EntityID, bool) {
	return a.Containment.EntityWhere(id)
}

// GetItemsAtPart returns items whose location is partID (parts can hold
// items the way locations and containers do, e.g. "items on a shelf part").
func (a *Accessor) GetItemsAtPart(partID ids.EntityID) []*state.Item {
	var out []*state.Item
	for _, id := range a.Containment.EntitiesAt(partID) {
		if item, err := a.GetItem(id); err == nil {
			out = append(out, item)
		}
	}
	return out
}

// GetPartsOf returns every part whose part_of is parentID.
func (a *Accessor) GetPartsOf(parentID ids.EntityID) []*state.Part {
	var out []*state.Part
	for i := range a.World.Parts {
		if a.World.Parts[i].PartOf == parentID {
			out = append(out, &a.World.Parts[i])
		}
	}
	return out
}

// GetCurrentLocation returns the location actorID currently occupies.
func (a *Accessor) GetCurrentLocation(actorID ids.ActorID) (*state.Location, error) {
	actor, err := a.GetActor(actorID)
	if err != nil {
		return nil, err
	}
	return a.GetLocation(actor.Location)
}

// GetExitConnections returns the exit ids exitID opens onto.
func (a *Accessor) GetExitConnections(exitID ids.EntityID) []ids.EntityID {
	return a.Connections.ConnectedTo(exitID)
}

// GetExitsFromLocation returns every Exit entity whose Location is locID.
func (a *Accessor) GetExitsFromLocation(locID ids.EntityID) []*state.Exit {
	var out []*state.Exit
	for i := range a.World.Exits {
		if a.World.Exits[i].Location == locID {
			out = append(out, &a.World.Exits[i])
		}
	}
	return out
}

// ConnectExits links exit a to exit b. Callers that want a bidirectional
// passage call it twice with the arguments swapped.
func (a *Accessor) ConnectExits(from, to ids.EntityID) {
	a.Connections.Connect(from, to)
}

// DisconnectExits removes the link from exit a to exit b.
func (a *Accessor) DisconnectExits(from, to ids.EntityID) {
	a.Connections.Disconnect(from, to)
}

// GetDoorForExit finds the door item (if any) gating the exit leaving locID
// in direction, via the legacy ExitDescriptor form.
func (a *Accessor) GetDoorForExit(locID ids.EntityID, direction string) (*state.Item, error) {
	loc, err := a.GetLocation(locID)
	if err != nil {
		return nil, err
	}
	exit, ok := loc.Exits[direction]
	if !ok || exit.DoorID == "" {
		return nil, ids.ErrNotFound
	}
	return a.GetDoorItem(exit.DoorID)
}

// GetDoorItem returns the door item with id, failing if the item exists
// but is not a door.
func (a *Accessor) GetDoorItem(id ids.EntityID) (*state.Item, error) {
	item, err := a.GetItem(id)
	if err != nil {
		return nil, err
	}
	if !item.IsDoor() {
		return nil, fmt.Errorf("%w: %s is not a door", ids.ErrNotFound, id)
	}
	return item, nil
}

// SetEntityWhere is the only supported way to move an item or actor. It
// updates the entity's Location field, removes it from the old forward
// index set, inserts it into the new, and refreshes the reverse index.
// Moves to a "__"-prefixed container remove the entity from both indices.
// Any target that is not a known entity id (and not a removal sentinel)
// fails with ids.ErrContainerNotFound (§4.1).
func (a *Accessor) SetEntityWhere(entityID, newContainerID ids.EntityID) error {
	if !ids.IsRemovalSentinel(newContainerID) {
		if newContainerID != ids.EntityID(ids.Player) {
			if _, err := a.GetEntity(newContainerID); err != nil {
				return fmt.Errorf("%w: %s", ids.ErrContainerNotFound, newContainerID)
			}
		}
	}

	if item, err := a.GetItem(entityID); err == nil {
		a.dropFromHolder(entityID, item.Location)
		item.Location = newContainerID
		a.Containment.Move(entityID, newContainerID)
		a.addToHolder(entityID, newContainerID)
		return nil
	}
	if actor, ok := a.World.Actors[ids.ActorID(entityID)]; ok {
		actor.Location = newContainerID
		a.Containment.Move(entityID, newContainerID)
		return nil
	}
	return fmt.Errorf("%w: %s", ids.ErrEntityNotFound, entityID)
}

// dropFromHolder removes itemID from holderID's Inventory list, if
// holderID names an actor (§9 Open Question (c): keep actor-inventory and
// item-location in agreement rather than leaving them historically able
// to disagree).
func (a *Accessor) dropFromHolder(itemID, holderID ids.EntityID) {
	actor, ok := a.World.Actors[ids.ActorID(holderID)]
	if !ok {
		return
	}
	for i, id := range actor.Inventory {
		if id == itemID {
			actor.Inventory = append(actor.Inventory[:i], actor.Inventory[i+1:]...)
			return
		}
	}
}

// addToHolder appends itemID to holderID's Inventory list, if holderID
// names an actor and doesn't already list it (§9 Open Question (c)).
func (a *Accessor) addToHolder(itemID, holderID ids.EntityID) {
	actor, ok := a.World.Actors[ids.ActorID(holderID)]
	if !ok {
		return
	}
	for _, id := range actor.Inventory {
		if id == itemID {
			return
		}
	}
	actor.Inventory = append(actor.Inventory, itemID)
}

// Update applies fields to entity's Properties and, when verb is non-empty,
// invokes every entity-scoped behavior registered for "on_<verb>" on that
// entity (§4.1 "Generic attribute update").
func (a *Accessor) Update(entity Entity, fields map[string]any, verb string) (*EventResult, error) {
	if err := mergeProperties(entity, fields); err != nil {
		return nil, err
	}
	if verb == "" || a.Behaviors == nil {
		return nil, nil
	}
	return a.Behaviors.InvokeBehavior(entity, "on_"+verb, a, map[string]any{"verb": verb})
}

func mergeProperties(entity Entity, fields map[string]any) error {
	switch e := entity.(type) {
	case *state.Item:
		e.Properties = mergeInto(e.Properties, fields)
	case *state.Actor:
		e.Properties = mergeInto(e.Properties, fields)
	case *state.Location:
		e.Properties = mergeInto(e.Properties, fields)
	case *state.Part:
		e.Properties = mergeInto(e.Properties, fields)
	default:
		return fmt.Errorf("accessor: Update: unsupported entity type %T", entity)
	}
	return nil
}

func mergeInto(props state.Properties, fields map[string]any) state.Properties {
	out := props.Clone()
	if out == nil {
		out = state.Properties{}
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}
