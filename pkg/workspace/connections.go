package workspace

import "github.com/leapstack-labs/leapblocks/pkg/core"

// ConnectionSet is an ordered multiset of directed edges.
// It accepts self-loops and duplicates.
type ConnectionSet struct {
	edges []core.Connection
}

// Connect appends the edge start -> end.
func (c *ConnectionSet) Connect(start, end core.BlockID) {
	c.edges = append(c.edges, core.Connection{Start: start, End: end})
}

// DisconnectAll removes every edge touching id and returns how many were removed.
func (c *ConnectionSet) DisconnectAll(id core.BlockID) int {
	kept := c.edges[:0]
	for _, e := range c.edges {
		if !e.Touches(id) {
			kept = append(kept, e)
		}
	}
	removed := len(c.edges) - len(kept)
	c.edges = kept
	return removed
}

// Clear removes all edges.
func (c *ConnectionSet) Clear() {
	c.edges = nil
}

// List returns the edges in insertion order.
func (c *ConnectionSet) List() []core.Connection {
	out := make([]core.Connection, len(c.edges))
	copy(out, c.edges)
	return out
}

// Len returns the number of edges.
func (c *ConnectionSet) Len() int {
	return len(c.edges)
}
