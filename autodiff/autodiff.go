// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides forward-mode and reverse-mode automatic
// differentiation of scalar computation graphs.
//
// A Graph records every intermediate value as an immutable node together with
// the local partial derivatives of its operation. Derivatives are computed by
// visiting the recorded nodes in a deterministic topological order.
//
// Example:
//
//	import "github.com/born-ml/gradgraph/autodiff"
//
//	func main() {
//	    g := autodiff.New()
//	    x, _ := g.Input(3)
//	    s, _ := g.Add(x, x)
//	    y, _ := g.Mul(s, x) // y = 2x², 18 at x = 3
//
//	    // Reverse mode: dy/d(every node) in one pass.
//	    _ = g.Reverse(y)
//	    dx, _ := g.ReverseGradient(x) // 12
//
//	    // Forward mode: d(every node)/dx in one pass.
//	    _ = g.Forward(x)
//	    dy, _ := g.ForwardPartial(y) // 12
//	}
//
// Expressions can also be compiled from text:
//
//	y, err := autodiff.Compile(g, "log(x1) + x1 * x2 - sin(x2)", vars)
package autodiff

import (
	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/expr"
	"github.com/born-ml/gradgraph/internal/graph"
	"github.com/born-ml/gradgraph/internal/trace"
)

// Graph is a scalar computation graph with derivative accumulators.
type Graph = autodiff.Graph

// Handle refers to one node of a Graph.
type Handle = autodiff.Handle

// Config configures a Graph.
type Config = autodiff.Config

// Option modifies a Config.
type Option = autodiff.Option

// New creates an empty graph.
//
// Example:
//
//	g := autodiff.New(autodiff.WithSink(autodiff.NewRecorder()))
func New(opts ...Option) *Graph {
	return autodiff.New(opts...)
}

// NewWithConfig creates an empty graph from an explicit configuration.
func NewWithConfig(cfg Config) *Graph {
	return autodiff.NewWithConfig(cfg)
}

// DefaultConfig returns the default graph configuration.
func DefaultConfig() Config {
	return autodiff.DefaultConfig()
}

// WithSink sets the trace sink notified of construction and propagation steps.
func WithSink(s Sink) Option {
	return autodiff.WithSink(s)
}

// WithCapacity preallocates room for n nodes.
func WithCapacity(n int) Option {
	return autodiff.WithCapacity(n)
}

// Operation is a differentiable primitive.
type Operation = ops.Operation

// Register makes op available to Compile under op.Name().
func Register(op Operation) error {
	return ops.Register(op)
}

// Compile parses src and records it into g, resolving variables from vars.
func Compile(g *Graph, src string, vars map[string]Handle) (Handle, error) {
	return expr.Compile(g, src, vars)
}

// Pass identifies a propagation pass.
type Pass = autodiff.Pass

// Propagation passes.
const (
	PassForward = autodiff.PassForward
	PassReverse = autodiff.PassReverse
)

// Error types.
type (
	// DomainError reports an operand outside an operation's domain or a non-finite result.
	DomainError = ops.DomainError

	// ConsistencyError reports a malformed graph or a foreign handle.
	ConsistencyError = graph.ConsistencyError

	// UninitializedError reports a derivative read that no pass has computed.
	UninitializedError = autodiff.UninitializedError

	// ExpressionError reports an expression that cannot be compiled.
	ExpressionError = expr.Error
)

// Sentinel errors for errors.Is.
var (
	ErrDomain        = ops.ErrDomain
	ErrConsistency   = graph.ErrConsistency
	ErrUninitialized = autodiff.ErrUninitialized
	ErrExpression    = expr.ErrExpression
)

// Tracing.
type (
	// Sink receives trace steps.
	Sink = trace.Sink

	// Step is one trace record.
	Step = trace.Step

	// Recorder is a Sink keeping every step in memory.
	Recorder = trace.Recorder
)

// Discard is the sink that drops every step.
var Discard = trace.Discard

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return trace.NewRecorder()
}
