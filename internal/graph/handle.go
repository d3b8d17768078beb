package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// Handle references a node of a specific arena.
// The zero Handle references nothing.
type Handle struct {
	graph uuid.UUID
	id    NodeID
}

// ID returns the node index.
func (h Handle) ID() NodeID { return h.id }

// Graph returns the identity of the arena that issued the handle.
func (h Handle) Graph() uuid.UUID { return h.graph }

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.graph == uuid.Nil }

// String implements fmt.Stringer.
func (h Handle) String() string {
	if h.IsZero() {
		return "node(nil)"
	}
	return fmt.Sprintf("node(%d@%s)", h.id, h.graph.String()[:8])
}
