package index

import (
	"github.com/sbenjam1n/ifengine/internal/engine/ids"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
)

// Connections is the derived map from an exit id to the set of exit ids it
// opens onto (§3 "connected_to"). Symmetry between connected exits is
// recommended in data but not enforced at load time (§3, §9 Open
// Question (c)).
type Connections struct {
	connectedTo map[ids.EntityID][]ids.EntityID
}

// BuildConnections constructs the connection index from every Exit entity
// in w.
func BuildConnections(w *state.World) *Connections {
	c := &Connections{connectedTo: make(map[ids.EntityID][]ids.EntityID)}
	for i := range w.Exits {
		exit := &w.Exits[i]
		c.connectedTo[exit.ID] = append([]ids.EntityID(nil), exit.Connects...)
	}
	return c
}

// ConnectedTo returns the exit ids exitID opens onto.
func (c *Connections) ConnectedTo(exitID ids.EntityID) []ids.EntityID {
	out := make([]ids.EntityID, len(c.connectedTo[exitID]))
	copy(out, c.connectedTo[exitID])
	return out
}

// Connect adds a one-directional edge from a to b. Callers that want a
// symmetric connection call Connect twice.
func (c *Connections) Connect(a, b ids.EntityID) {
	for _, existing := range c.connectedTo[a] {
		if existing == b {
			return
		}
	}
	c.connectedTo[a] = append(c.connectedTo[a], b)
}

// Disconnect removes the edge from a to b, if present.
func (c *Connections) Disconnect(a, b ids.EntityID) {
	list := c.connectedTo[a]
	for i, existing := range list {
		if existing == b {
			c.connectedTo[a] = append(list[:i], list[i+1:]...)
			return
		}
	}
}
