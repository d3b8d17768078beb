package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/graph"
	"github.com/born-ml/gradgraph/internal/trace"
)

// Forward computes d(node)/d(root) for every node of the graph.
//
// Algorithm:
//  1. Seed root with 1
//  2. Walk the topological order of root's descendants, parents first
//  3. For each node: partial = Σ local_partials[i] * parents[i].partial
//
// Nodes that do not depend on root end with a partial of 0, which is the
// correct derivative of an independent quantity. Previous forward results
// are discarded; on error they are kept as they were.
func (g *Graph) Forward(root Handle) error {
	rootID, err := g.arena.Resolve(root)
	if err != nil {
		return fmt.Errorf("forward: %w", err)
	}

	order := g.arena.TopologicalOrder(g.arena.Descendants(rootID)...)
	values, err := g.propagateForward(rootID, order)
	if err != nil {
		return err
	}
	g.forward.commit(rootID, values, allValid(g.arena.Len()))
	return nil
}

// ForwardTo computes d(node)/d(root) only for target and its ancestors.
// Partials of nodes outside that closure read as uninitialized afterwards.
func (g *Graph) ForwardTo(root, target Handle) error {
	rootID, err := g.arena.Resolve(root)
	if err != nil {
		return fmt.Errorf("forward: root: %w", err)
	}
	targetID, err := g.arena.Resolve(target)
	if err != nil {
		return fmt.Errorf("forward: target: %w", err)
	}

	order := g.arena.TopologicalOrder(targetID)
	values, err := g.propagateForward(rootID, order)
	if err != nil {
		return err
	}

	valid := make([]bool, g.arena.Len())
	valid[rootID] = true
	for _, id := range order {
		valid[id] = true
	}
	g.forward.commit(rootID, values, valid)
	return nil
}

// propagateForward runs the forward recurrence over order into a fresh buffer.
func (g *Graph) propagateForward(root graph.NodeID, order []graph.NodeID) ([]float64, error) {
	values := make([]float64, g.arena.Len())
	values[root] = 1
	tracing := g.sink != trace.Discard
	rootLabel := g.arena.Node(root).Label()

	for _, id := range order {
		n := g.arena.Node(id)
		if id == root {
			if tracing {
				g.sink.Record(trace.Step{Kind: trace.KindForward, Node: n.Label(), Op: n.Op(), Wrt: rootLabel, Value: 1})
			}
			continue
		}

		var sum float64
		var terms []trace.Term
		for i := 0; i < n.NumParents(); i++ {
			p, local := n.Parent(i)
			sum += local * values[p]
			if tracing {
				terms = append(terms, trace.Term{Node: g.arena.Node(p).Label(), Local: local, Upstream: values[p]})
			}
		}
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			return nil, fmt.Errorf("forward: %w", &ops.DomainError{
				Op:       n.Op(),
				Operands: []float64{n.Value()},
				Reason:   fmt.Sprintf("partial of %s with respect to %s is not finite", n.Label(), rootLabel),
			})
		}
		values[id] = sum

		if tracing {
			g.sink.Record(trace.Step{Kind: trace.KindForward, Node: n.Label(), Op: n.Op(), Wrt: rootLabel, Value: sum, Terms: terms})
		}
	}
	return values, nil
}

// ForwardPartial returns d(h)/d(root) from the last forward pass.
func (g *Graph) ForwardPartial(h Handle) (float64, error) {
	id, err := g.arena.Resolve(h)
	if err != nil {
		return 0, err
	}
	return g.forward.get(g.arena, id)
}

// ForwardRoot returns the root of the last forward pass.
func (g *Graph) ForwardRoot() (Handle, bool) {
	if !g.forward.ran {
		return Handle{}, false
	}
	return g.arena.Handle(g.forward.anchor), true
}
