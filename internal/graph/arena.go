package graph

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Arena owns every node of one computation graph.
// It only grows: nodes are never removed and their structural fields never change.
//
// Arena is not safe for concurrent use.
type Arena struct {
	id      uuid.UUID
	nodes   []Node
	inputs  int // Counter behind x1, x2, ...
	derived int // Counter behind v1, v2, ...
}

// NewArena creates an empty arena with room for capacity nodes.
func NewArena(capacity int) *Arena {
	return &Arena{
		id:    uuid.New(),
		nodes: make([]Node, 0, max(capacity, 0)),
	}
}

// ID returns the arena identity carried by every Handle it issues.
func (a *Arena) ID() uuid.UUID { return a.id }

// Len returns the number of nodes.
func (a *Arena) Len() int { return len(a.nodes) }

// Node returns the node at id. id must come from Resolve or from another
// node of this arena.
func (a *Arena) Node(id NodeID) *Node { return &a.nodes[id] }

// Handle returns a handle for id.
func (a *Arena) Handle(id NodeID) Handle {
	return Handle{graph: a.id, id: id}
}

// Resolve validates that h was issued by this arena and names an existing node.
func (a *Arena) Resolve(h Handle) (NodeID, error) {
	switch {
	case h.IsZero():
		return 0, &ConsistencyError{Graph: a.id, Node: -1, Reason: "zero handle"}
	case h.graph != a.id:
		return 0, &ConsistencyError{
			Graph:  a.id,
			Node:   h.id,
			Reason: fmt.Sprintf("handle belongs to graph %s", h.graph),
		}
	case h.id < 0 || int(h.id) >= len(a.nodes):
		return 0, &ConsistencyError{Graph: a.id, Node: h.id, Reason: "node does not exist"}
	}
	return h.id, nil
}

// AddInput appends an input node holding value.
func (a *Arena) AddInput(value float64) NodeID {
	a.inputs++
	return a.push(Node{
		value: value,
		op:    InputOp,
		label: "x" + strconv.Itoa(a.inputs),
	})
}

// AddDerived appends a node produced by op from parents.
// partials must align with parents, and every parent must already exist.
// The new node is registered as a child of each parent, once per operand.
func (a *Arena) AddDerived(op string, value float64, parents []NodeID, partials []float64) (NodeID, error) {
	next := NodeID(len(a.nodes))
	switch {
	case op == "" || op == InputOp:
		return 0, &ConsistencyError{Graph: a.id, Node: next, Reason: fmt.Sprintf("invalid operator %q for derived node", op)}
	case len(parents) == 0:
		return 0, &ConsistencyError{Graph: a.id, Node: next, Reason: "derived node needs at least one parent"}
	case len(parents) != len(partials):
		return 0, &ConsistencyError{
			Graph:  a.id,
			Node:   next,
			Reason: fmt.Sprintf("%d parents but %d partials", len(parents), len(partials)),
		}
	}
	for _, p := range parents {
		// p < next also rules out self-references and forward references (cycles).
		if p < 0 || p >= next {
			return 0, &ConsistencyError{Graph: a.id, Node: p, Reason: "parent does not exist"}
		}
	}

	a.derived++
	id := a.push(Node{
		value:    value,
		op:       op,
		parents:  append([]NodeID(nil), parents...),
		partials: append([]float64(nil), partials...),
		label:    "v" + strconv.Itoa(a.derived),
	})
	for _, p := range parents {
		a.nodes[p].children = append(a.nodes[p].children, id)
	}
	return id, nil
}

func (a *Arena) push(n Node) NodeID {
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}
