// Package autodiff implements forward-mode and reverse-mode automatic
// differentiation over scalar computation graphs.
//
// Graph wraps a graph.Arena (the recorded computation) and adds the two
// derivative accumulators every node carries:
//   - forward partial: d(node)/d(root) after Forward(root)
//   - reverse gradient: d(output)/d(node) after Reverse(output)
//
// Architecture:
//   - graph.Arena: append-only node storage, topological traversal
//   - ops.Operation: each primitive computes its value and local partials
//   - Forward: walks the topological order once, parents before children
//   - Reverse: walks it backwards, accumulating into parents
//
// Usage:
//
//	g := autodiff.New()
//	x, _ := g.Input(3)
//	s, _ := g.Add(x, x)
//	y, _ := g.Mul(s, x) // y = 2x²
//
//	_ = g.Reverse(y)
//	dx, _ := g.ReverseGradient(x) // dy/dx = 4x = 12
//
// Every pass starts by resetting its own accumulators, so passes can be
// re-run with a different root or output on the same graph. Only one pass
// may run at a time; Graph is not safe for concurrent use.
package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/graph"
	"github.com/born-ml/gradgraph/internal/trace"
)

// Handle references a node of a Graph.
type Handle = graph.Handle

// Graph is a scalar computation graph with derivative accumulators.
type Graph struct {
	arena *graph.Arena
	sink  trace.Sink

	forward accumulator // d(node)/d(root)
	reverse accumulator // d(output)/d(node)
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates an empty graph from an explicit configuration.
func NewWithConfig(cfg Config) *Graph {
	sink := cfg.Sink
	if sink == nil {
		sink = trace.Discard
	}
	return &Graph{
		arena:   graph.NewArena(cfg.Capacity),
		sink:    sink,
		forward: accumulator{pass: PassForward},
		reverse: accumulator{pass: PassReverse},
	}
}

// Input records an independent variable holding value.
// Non-finite values are rejected with a DomainError.
func (g *Graph) Input(value float64) (Handle, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Handle{}, &ops.DomainError{
			Op:       graph.InputOp,
			Operands: []float64{value},
			Reason:   "value is not finite",
		}
	}
	id := g.arena.AddInput(value)
	n := g.arena.Node(id)
	g.sink.Record(trace.Step{Kind: trace.KindConstruct, Node: n.Label(), Op: n.Op(), Value: value})
	return g.arena.Handle(id), nil
}

// Constant records a fixed value. It is an input node like any other; it
// only differs from Input in intent.
func (g *Graph) Constant(value float64) (Handle, error) {
	return g.Input(value)
}

// Apply records op applied to operands and returns the new node.
//
// The operands must belong to g and their count must match op.Arity().
// If op rejects the operand values, or returns a non-finite value or
// partial, the graph is left unchanged.
func (g *Graph) Apply(op ops.Operation, operands ...Handle) (Handle, error) {
	if op == nil {
		return Handle{}, &graph.ConsistencyError{Graph: g.arena.ID(), Node: -1, Reason: "nil operation"}
	}
	if len(operands) != op.Arity() {
		return Handle{}, &graph.ConsistencyError{
			Graph:  g.arena.ID(),
			Node:   -1,
			Reason: fmt.Sprintf("%s expects %d operands, got %d", op.Name(), op.Arity(), len(operands)),
		}
	}

	ids := make([]graph.NodeID, len(operands))
	values := make([]float64, len(operands))
	for i, h := range operands {
		id, err := g.arena.Resolve(h)
		if err != nil {
			return Handle{}, fmt.Errorf("%s operand %d: %w", op.Name(), i, err)
		}
		ids[i] = id
		values[i] = g.arena.Node(id).Value()
	}

	value, partials, err := op.Eval(values)
	if err != nil {
		return Handle{}, err
	}
	if err := ops.CheckResult(op.Name(), values, value, partials); err != nil {
		return Handle{}, err
	}

	id, err := g.arena.AddDerived(op.Name(), value, ids, partials)
	if err != nil {
		return Handle{}, err
	}

	if g.sink != trace.Discard {
		n := g.arena.Node(id)
		terms := make([]trace.Term, len(ids))
		for i, p := range ids {
			terms[i] = trace.Term{Node: g.arena.Node(p).Label(), Local: partials[i], Upstream: values[i]}
		}
		g.sink.Record(trace.Step{Kind: trace.KindConstruct, Node: n.Label(), Op: n.Op(), Value: value, Terms: terms})
	}
	return g.arena.Handle(id), nil
}

// Add records a + b.
func (g *Graph) Add(a, b Handle) (Handle, error) { return g.Apply(ops.AddOp{}, a, b) }

// Sub records a - b.
func (g *Graph) Sub(a, b Handle) (Handle, error) { return g.Apply(ops.SubOp{}, a, b) }

// Mul records a * b.
func (g *Graph) Mul(a, b Handle) (Handle, error) { return g.Apply(ops.MulOp{}, a, b) }

// Div records a / b. A zero denominator is a DomainError.
func (g *Graph) Div(a, b Handle) (Handle, error) { return g.Apply(ops.DivOp{}, a, b) }

// Log records ln(a). A non-positive operand is a DomainError.
func (g *Graph) Log(a Handle) (Handle, error) { return g.Apply(ops.LogOp{}, a) }

// Sin records sin(a).
func (g *Graph) Sin(a Handle) (Handle, error) { return g.Apply(ops.SinOp{}, a) }

// Cos records cos(a).
func (g *Graph) Cos(a Handle) (Handle, error) { return g.Apply(ops.CosOp{}, a) }

// Exp records exp(a).
func (g *Graph) Exp(a Handle) (Handle, error) { return g.Apply(ops.ExpOp{}, a) }
