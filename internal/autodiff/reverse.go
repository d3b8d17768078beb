package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/trace"
)

// Reverse computes d(output)/d(node) for every ancestor of output.
//
// Algorithm:
//  1. Zero every gradient, seed output with 1
//  2. Walk the topological order of output's ancestors in reverse
//  3. For each node and each (parent, local partial) pair:
//     parent.gradient += node.gradient * local_partial
//
// Reverse topological order guarantees a node has received every
// contribution from its children before it passes its gradient on.
// Nodes that output does not depend on end with a gradient of 0.
// Previous reverse results are discarded; on error they are kept.
func (g *Graph) Reverse(output Handle) error {
	outID, err := g.arena.Resolve(output)
	if err != nil {
		return fmt.Errorf("reverse: %w", err)
	}

	order := g.arena.TopologicalOrder(outID)
	grads := make([]float64, g.arena.Len())
	grads[outID] = 1
	tracing := g.sink != trace.Discard
	outLabel := g.arena.Node(outID).Label()

	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		n := g.arena.Node(id)
		if math.IsNaN(grads[id]) || math.IsInf(grads[id], 0) {
			return fmt.Errorf("reverse: %w", &ops.DomainError{
				Op:       n.Op(),
				Operands: []float64{n.Value()},
				Reason:   fmt.Sprintf("gradient of %s with respect to %s is not finite", outLabel, n.Label()),
			})
		}

		for j := 0; j < n.NumParents(); j++ {
			p, local := n.Parent(j)
			before := grads[p]
			grads[p] += grads[id] * local

			if tracing {
				parent := g.arena.Node(p)
				g.sink.Record(trace.Step{
					Kind:   trace.KindReverse,
					Node:   parent.Label(),
					Op:     parent.Op(),
					Wrt:    outLabel,
					Before: before,
					Value:  grads[p],
					Terms:  []trace.Term{{Node: n.Label(), Local: local, Upstream: grads[id]}},
				})
			}
		}
	}

	g.reverse.commit(outID, grads, allValid(g.arena.Len()))
	return nil
}

// ReverseGradient returns d(output)/d(h) from the last reverse pass.
func (g *Graph) ReverseGradient(h Handle) (float64, error) {
	id, err := g.arena.Resolve(h)
	if err != nil {
		return 0, err
	}
	return g.reverse.get(g.arena, id)
}

// Gradients returns ReverseGradient for each of hs, in order.
func (g *Graph) Gradients(hs ...Handle) ([]float64, error) {
	out := make([]float64, len(hs))
	for i, h := range hs {
		v, err := g.ReverseGradient(h)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReverseOutput returns the output of the last reverse pass.
func (g *Graph) ReverseOutput() (Handle, bool) {
	if !g.reverse.ran {
		return Handle{}, false
	}
	return g.arena.Handle(g.reverse.anchor), true
}

// ClearDerivatives forgets the results of both passes. Subsequent queries
// report ErrUninitialized until a pass runs again.
func (g *Graph) ClearDerivatives() {
	g.forward.clear()
	g.reverse.clear()
}
