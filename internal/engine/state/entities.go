package state

import "github.com/sbenjam1n/ifengine/internal/engine/ids"

// ExitDescriptor is the legacy per-direction exit shape embedded directly
// on a Location. Newer worlds prefer first-class Exit entities connected
// via Exit.Connections; ExitDescriptor may be empty (§3 Entities table).
type ExitDescriptor struct {
	To      ids.EntityID `json:"to,omitempty"`
	Type    string       `json:"type,omitempty"` // "door" or "" for a plain passage
	DoorID  ids.EntityID `json:"door_id,omitempty"`
	Blocked bool         `json:"blocked,omitempty"`
}

// Location is a place an actor or item can occupy.
type Location struct {
	ID          ids.EntityID              `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Exits       map[string]ExitDescriptor `json:"exits,omitempty"`
	Behaviors   []string                  `json:"behaviors,omitempty"`
	Properties  Properties                `json:"-"`
}

var locationKnownFields = []string{"id", "name", "description", "exits", "behaviors"}

func (l *Location) UnmarshalJSON(raw []byte) error {
	type shadow Location
	var s shadow
	props, err := decodeKnownFields(raw, &s, locationKnownFields)
	if err != nil {
		return err
	}
	*l = Location(s)
	l.Properties = props
	return nil
}

func (l Location) MarshalJSON() ([]byte, error) {
	type shadow Location
	return encodeWithProperties(shadow(l), l.Properties)
}

// EntityID satisfies accessor.Entity.
func (l *Location) EntityID() ids.EntityID { return l.ID }

// BehaviorModules satisfies accessor.Entity.
func (l *Location) BehaviorModules() []string { return l.Behaviors }

// DoorProps is the strongly-typed view of an Item's "door" sub-map (§3
// "Door items", §9 "Derived flags"). The authoritative form stays in
// Properties["door"] so save/load remains symmetrical; these are read
// on demand rather than cached on the struct.
type DoorProps struct {
	Open   bool         `json:"open"`
	Locked bool         `json:"locked"`
	LockID ids.EntityID `json:"lock_id,omitempty"`
}

// ContainerProps is the strongly-typed view of an Item's "container"
// sub-map: a container or surface that can hold other items.
type ContainerProps struct {
	IsSurface bool         `json:"is_surface,omitempty"`
	IsOpen    bool         `json:"open,omitempty"`
	LockID    ids.EntityID `json:"lock_id,omitempty"`
	Locked    bool         `json:"locked,omitempty"`
}

// Item is a portable or fixed object. A door is not a distinct type: it is
// an Item whose Properties carry a "door" sub-map and whose Location is a
// virtual exit slot (§3 "Door items").
type Item struct {
	ID          ids.EntityID `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Location    ids.EntityID `json:"location"`
	Behaviors   []string     `json:"behaviors,omitempty"`
	Properties  Properties   `json:"-"`
}

var itemKnownFields = []string{"id", "name", "description", "location", "behaviors"}

func (i *Item) UnmarshalJSON(raw []byte) error {
	type shadow Item
	var s shadow
	props, err := decodeKnownFields(raw, &s, itemKnownFields)
	if err != nil {
		return err
	}
	*i = Item(s)
	i.Properties = props
	return nil
}

func (i Item) MarshalJSON() ([]byte, error) {
	type shadow Item
	return encodeWithProperties(shadow(i), i.Properties)
}

// IsDoor reports whether this item carries a "door" sub-map.
func (i *Item) IsDoor() bool { return i.Properties.subMap("door") != nil }

// Door returns the item's door sub-record and whether it is present.
func (i *Item) Door() (DoorProps, bool) {
	m := i.Properties.subMap("door")
	if m == nil {
		return DoorProps{}, false
	}
	d := DoorProps{}
	if v, ok := m["open"].(bool); ok {
		d.Open = v
	}
	if v, ok := m["locked"].(bool); ok {
		d.Locked = v
	}
	if v, ok := m["lock_id"].(string); ok {
		d.LockID = ids.EntityID(v)
	}
	return d, true
}

// DoorOpen returns whether an item that IsDoor is currently open.
func (i *Item) DoorOpen() bool { d, _ := i.Door(); return d.Open }

// DoorLocked returns whether an item that IsDoor is currently locked.
func (i *Item) DoorLocked() bool { d, _ := i.Door(); return d.Locked }

// DoorLockID returns the lock guarding this door item, if any.
func (i *Item) DoorLockID() ids.EntityID { d, _ := i.Door(); return d.LockID }

// SetDoor writes a new door sub-record into Properties, preserving every
// other property. This is the only supported way to flip open/locked so
// save/load stays symmetrical (§9 "Derived flags").
func (i *Item) SetDoor(d DoorProps) {
	props := i.Properties.Clone()
	if props == nil {
		props = Properties{}
	}
	props["door"] = map[string]any{
		"open":   d.Open,
		"locked": d.Locked,
		"lock_id": func() any {
			if d.LockID == "" {
				return nil
			}
			return string(d.LockID)
		}(),
	}
	i.Properties = props
}

// Container returns the item's container sub-record and whether it is
// present (an item is a container or surface when this is set).
func (i *Item) Container() (ContainerProps, bool) {
	m := i.Properties.subMap("container")
	if m == nil {
		return ContainerProps{}, false
	}
	c := ContainerProps{}
	if v, ok := m["is_surface"].(bool); ok {
		c.IsSurface = v
	}
	if v, ok := m["open"].(bool); ok {
		c.IsOpen = v
	}
	if v, ok := m["lock_id"].(string); ok {
		c.LockID = ids.EntityID(v)
	}
	if v, ok := m["locked"].(bool); ok {
		c.Locked = v
	}
	return c, true
}

// SetContainer writes a new container sub-record into Properties,
// preserving every other property (the container analogue of SetDoor).
func (i *Item) SetContainer(c ContainerProps) {
	props := i.Properties.Clone()
	if props == nil {
		props = Properties{}
	}
	props["container"] = map[string]any{
		"is_surface": c.IsSurface,
		"open":       c.IsOpen,
		"locked":     c.Locked,
		"lock_id": func() any {
			if c.LockID == "" {
				return nil
			}
			return string(c.LockID)
		}(),
	}
	i.Properties = props
}

// Portable reports whether the item can be picked up (defaults to false
// when the property is absent, matching the Python source's explicit
// opt-in model).
func (i *Item) Portable() bool { return i.Properties.bool("portable") }

// Hidden reports whether this item is excluded from resolution and
// location queries (§4.7 "Hidden entities").
func (i *Item) Hidden() bool {
	states := i.Properties.subMap("states")
	if states == nil {
		return false
	}
	h, _ := states["hidden"].(bool)
	return h
}

// EntityID satisfies accessor.Entity.
func (i *Item) EntityID() ids.EntityID { return i.ID }

// BehaviorModules satisfies accessor.Entity.
func (i *Item) BehaviorModules() []string { return i.Behaviors }

// InteractionDistance returns the item's positioning requirement for
// interaction handlers: "near" or "any" (default "any", §4.4).
func (i *Item) InteractionDistance() string {
	if v := i.Properties.str("interaction_distance"); v != "" {
		return v
	}
	return "any"
}

// Actor is a player or NPC occupying a location with an ordered inventory.
type Actor struct {
	ID          ids.ActorID    `json:"-"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Location    ids.EntityID   `json:"location"`
	Inventory   []ids.EntityID `json:"inventory,omitempty"`
	Behaviors   []string       `json:"behaviors,omitempty"`
	Properties  Properties     `json:"-"`
}

var actorKnownFields = []string{"name", "description", "location", "inventory", "behaviors"}

func (a *Actor) UnmarshalJSON(raw []byte) error {
	type shadow struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Location    ids.EntityID   `json:"location"`
		Inventory   []ids.EntityID `json:"inventory,omitempty"`
		Behaviors   []string       `json:"behaviors,omitempty"`
	}
	var s shadow
	props, err := decodeKnownFields(raw, &s, actorKnownFields)
	if err != nil {
		return err
	}
	a.Name = s.Name
	a.Description = s.Description
	a.Location = s.Location
	a.Inventory = s.Inventory
	a.Behaviors = s.Behaviors
	a.Properties = props
	return nil
}

func (a Actor) MarshalJSON() ([]byte, error) {
	type shadow struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Location    ids.EntityID   `json:"location"`
		Inventory   []ids.EntityID `json:"inventory,omitempty"`
		Behaviors   []string       `json:"behaviors,omitempty"`
	}
	return encodeWithProperties(shadow{
		Name:        a.Name,
		Description: a.Description,
		Location:    a.Location,
		Inventory:   a.Inventory,
		Behaviors:   a.Behaviors,
	}, a.Properties)
}

// EntityID satisfies accessor.Entity.
func (a *Actor) EntityID() ids.EntityID { return ids.EntityID(a.ID) }

// BehaviorModules satisfies accessor.Entity.
func (a *Actor) BehaviorModules() []string { return a.Behaviors }

// FocusedOn returns the entity id the actor is currently focused on, or ""
// (§4.4 "Posture and focus").
func (a *Actor) FocusedOn() ids.EntityID { return ids.EntityID(a.Properties.str("focused_on")) }

// Posture returns the actor's current posture string, or "" (free-form:
// "cover", "concealed", "climbing", "on_surface", ...).
func (a *Actor) Posture() string { return a.Properties.str("posture") }

// Lock gates a door or container; opens_with names the key items that
// satisfy it.
type Lock struct {
	ID          ids.EntityID `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Properties  Properties   `json:"-"`
}

var lockKnownFields = []string{"id", "name", "description"}

func (l *Lock) UnmarshalJSON(raw []byte) error {
	type shadow Lock
	var s shadow
	props, err := decodeKnownFields(raw, &s, lockKnownFields)
	if err != nil {
		return err
	}
	*l = Lock(s)
	l.Properties = props
	return nil
}

func (l Lock) MarshalJSON() ([]byte, error) {
	type shadow Lock
	return encodeWithProperties(shadow(l), l.Properties)
}

// OpensWith returns the set of item ids that satisfy this lock.
func (l *Lock) OpensWith() []ids.EntityID {
	raw, ok := l.Properties["opens_with"]
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]ids.EntityID, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, ids.EntityID(s))
		}
	}
	return out
}

// FailMessage returns the lock's custom failure narration, if any.
func (l *Lock) FailMessage() string { return l.Properties.str("fail_message") }

// Part is a sub-object of a location or item (e.g. a wall, a drawer) that
// is never itself the parent of another part (§3 Entities table).
type Part struct {
	ID         ids.EntityID `json:"id"`
	Name       string       `json:"name"`
	PartOf     ids.EntityID `json:"part_of"`
	Behaviors  []string     `json:"behaviors,omitempty"`
	Properties Properties   `json:"-"`
}

var partKnownFields = []string{"id", "name", "part_of", "behaviors"}

func (p *Part) UnmarshalJSON(raw []byte) error {
	type shadow Part
	var s shadow
	props, err := decodeKnownFields(raw, &s, partKnownFields)
	if err != nil {
		return err
	}
	*p = Part(s)
	p.Properties = props
	return nil
}

func (p Part) MarshalJSON() ([]byte, error) {
	type shadow Part
	return encodeWithProperties(shadow(p), p.Properties)
}

// EntityID satisfies accessor.Entity.
func (p *Part) EntityID() ids.EntityID { return p.ID }

// BehaviorModules satisfies accessor.Entity.
func (p *Part) BehaviorModules() []string { return p.Behaviors }

// Exit is a first-class connector between locations, optionally gated by a
// door item (§3 Entities table).
type Exit struct {
	ID         ids.EntityID   `json:"id"`
	Name       string         `json:"name"`
	Location   ids.EntityID   `json:"location"`
	Direction  string         `json:"direction,omitempty"` // "" for a portal
	Connects   []ids.EntityID `json:"connections,omitempty"`
	DoorID     ids.EntityID   `json:"door_id,omitempty"`
	Properties Properties     `json:"-"`
}

var exitKnownFields = []string{"id", "name", "location", "direction", "connections", "door_id"}

func (e *Exit) UnmarshalJSON(raw []byte) error {
	type shadow Exit
	var s shadow
	props, err := decodeKnownFields(raw, &s, exitKnownFields)
	if err != nil {
		return err
	}
	*e = Exit(s)
	e.Properties = props
	return nil
}

func (e Exit) MarshalJSON() ([]byte, error) {
	type shadow Exit
	return encodeWithProperties(shadow(e), e.Properties)
}

// Metadata describes world-level bookkeeping.
type Metadata struct {
	Title            string   `json:"title"`
	Version          string   `json:"version,omitempty"`
	Description      string   `json:"description,omitempty"`
	StartLocation    ids.EntityID `json:"start_location"`
	ExtraTurnPhases  []string `json:"extra_turn_phases,omitempty"`
}
