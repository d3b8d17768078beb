package graph

import "slices"

// InputOp is the operator tag of nodes created directly from a value.
const InputOp = "input"

// NodeID is the index of a node inside its arena.
type NodeID int

// Node is one recorded scalar computation.
type Node struct {
	value    float64
	op       string
	parents  []NodeID  // Operand nodes, in operand order
	partials []float64 // d(node)/d(parents[i]) at construction time
	children []NodeID  // Non-owning back references, in creation order
	label    string    // Arena-local diagnostic name (x1, v3, ...)
}

// Value returns the node's computed scalar.
func (n *Node) Value() float64 { return n.value }

// Op returns the operator tag.
func (n *Node) Op() string { return n.op }

// Label returns the arena-local diagnostic name.
func (n *Node) Label() string { return n.label }

// IsInput reports whether the node was created from a value rather than by an operation.
func (n *Node) IsInput() bool { return n.op == InputOp }

// NumParents returns the number of operands.
func (n *Node) NumParents() int { return len(n.parents) }

// Parent returns the i-th operand and the local partial with respect to it.
func (n *Node) Parent(i int) (NodeID, float64) {
	return n.parents[i], n.partials[i]
}

// Parents returns a copy of the operand list.
func (n *Node) Parents() []NodeID { return slices.Clone(n.parents) }

// Partials returns a copy of the local partials, aligned with Parents.
func (n *Node) Partials() []float64 { return slices.Clone(n.partials) }

// Children returns a copy of the child list. A child that uses this node
// for several operands appears once per operand.
func (n *Node) Children() []NodeID { return slices.Clone(n.children) }
