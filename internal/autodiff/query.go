package autodiff

import "github.com/born-ml/gradgraph/internal/graph"

// Len returns the number of recorded nodes.
func (g *Graph) Len() int {
	return g.arena.Len()
}

// node resolves h, reporting foreign or unknown handles.
func (g *Graph) node(h Handle) (*graph.Node, error) {
	id, err := g.arena.Resolve(h)
	if err != nil {
		return nil, err
	}
	return g.arena.Node(id), nil
}

// Value returns the scalar recorded at h.
func (g *Graph) Value(h Handle) (float64, error) {
	n, err := g.node(h)
	if err != nil {
		return 0, err
	}
	return n.Value(), nil
}

// Op returns the operator tag of h.
func (g *Graph) Op(h Handle) (string, error) {
	n, err := g.node(h)
	if err != nil {
		return "", err
	}
	return n.Op(), nil
}

// Label returns the diagnostic name of h (x1, v2, ...).
func (g *Graph) Label(h Handle) (string, error) {
	n, err := g.node(h)
	if err != nil {
		return "", err
	}
	return n.Label(), nil
}

// Parents returns the operands of h in operand order.
func (g *Graph) Parents(h Handle) ([]Handle, error) {
	n, err := g.node(h)
	if err != nil {
		return nil, err
	}
	return g.handles(n.Parents()), nil
}

// Partials returns the local partials of h, aligned with Parents.
func (g *Graph) Partials(h Handle) ([]float64, error) {
	n, err := g.node(h)
	if err != nil {
		return nil, err
	}
	return n.Partials(), nil
}

// Children returns the nodes using h as an operand, once per operand slot.
func (g *Graph) Children(h Handle) ([]Handle, error) {
	n, err := g.node(h)
	if err != nil {
		return nil, err
	}
	return g.handles(n.Children()), nil
}

// Order returns the ancestors of h in topological order, h last.
func (g *Graph) Order(h Handle) ([]Handle, error) {
	id, err := g.arena.Resolve(h)
	if err != nil {
		return nil, err
	}
	return g.handles(g.arena.TopologicalOrder(id)), nil
}

// Inputs returns every input node in creation order.
func (g *Graph) Inputs() []Handle {
	var out []Handle
	for id := graph.NodeID(0); int(id) < g.arena.Len(); id++ {
		if g.arena.Node(id).IsInput() {
			out = append(out, g.arena.Handle(id))
		}
	}
	return out
}

func (g *Graph) handles(ids []graph.NodeID) []Handle {
	out := make([]Handle, len(ids))
	for i, id := range ids {
		out[i] = g.arena.Handle(id)
	}
	return out
}
