// Package expr compiles arithmetic expressions into graph construction calls.
//
// Expressions use HCL expression syntax:
//
//	mul(add(x, x), x)
//	log(x1) + x1 * x2 - sin(x2)
//	-exp(x) / (1 + x)
//
// Supported forms are numeric literals (recorded as constants), variable
// references, the binary operators + - * /, unary minus, parentheses and
// calls to any registered primitive (see ops.Names).
package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/autodiff/ops"
)

// ErrExpression is returned (wrapped in an Error) for invalid expressions.
var ErrExpression = errors.New("invalid expression")

// Error describes a rejected expression.
type Error struct {
	Pos hcl.Pos // Position of the offending sub-expression
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Unwrap returns ErrExpression so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return ErrExpression
}

func errorAt(e hcl.Expression, format string, args ...any) *Error {
	return &Error{Pos: e.Range().Start, Msg: fmt.Sprintf(format, args...)}
}

// Expr is a parsed expression, ready to be built into any number of graphs.
type Expr struct {
	src  string
	root hclsyntax.Expression
}

// Parse parses src.
func Parse(src string) (*Expr, error) {
	root, diags := hclsyntax.ParseExpression([]byte(src), "expr", hcl.Pos{Line: 1, Column: 1, Byte: 0})
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		pos := hcl.Pos{Line: 1, Column: 1}
		if diag.Subject != nil {
			pos = diag.Subject.Start
		}
		return nil, &Error{Pos: pos, Msg: diag.Summary + ": " + diag.Detail}
	}
	return &Expr{src: src, root: root}, nil
}

// String returns the source text.
func (x *Expr) String() string {
	return x.src
}

// Variables returns the referenced variable names in order of first appearance.
func (x *Expr) Variables() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, traversal := range x.root.Variables() {
		name := traversal.RootName()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Build records the expression on g and returns the output node.
// vars supplies a node for every referenced variable.
//
// Each primitive is recorded atomically, but a failed Build may leave the
// nodes of sub-expressions that were built before the failure in g.
func (x *Expr) Build(g *autodiff.Graph, vars map[string]autodiff.Handle) (autodiff.Handle, error) {
	b := &builder{g: g, vars: vars}
	return b.build(x.root)
}

// Compile parses src and builds it on g in one step.
func Compile(g *autodiff.Graph, src string, vars map[string]autodiff.Handle) (autodiff.Handle, error) {
	x, err := Parse(src)
	if err != nil {
		return autodiff.Handle{}, err
	}
	return x.Build(g, vars)
}

var binaryOps = map[*hclsyntax.Operation]string{
	hclsyntax.OpAdd:      "add",
	hclsyntax.OpSubtract: "sub",
	hclsyntax.OpMultiply: "mul",
	hclsyntax.OpDivide:   "div",
}

type builder struct {
	g    *autodiff.Graph
	vars map[string]autodiff.Handle
}

func (b *builder) build(e hclsyntax.Expression) (autodiff.Handle, error) {
	switch e := e.(type) {
	case *hclsyntax.LiteralValueExpr:
		f, err := number(e, e.Val)
		if err != nil {
			return autodiff.Handle{}, err
		}
		return b.g.Constant(f)

	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			return autodiff.Handle{}, errorAt(e, "attribute and index references are not supported")
		}
		name := e.Traversal.RootName()
		h, ok := b.vars[name]
		if !ok && strings.Contains(name, "-") {
			// HCL identifiers may contain dashes, so x-y is one name.
			return autodiff.Handle{}, errorAt(e, "undefined variable %q; write %q to subtract",
				name, strings.ReplaceAll(name, "-", " - "))
		}
		if !ok {
			return autodiff.Handle{}, errorAt(e, "undefined variable %q", name)
		}
		return h, nil

	case *hclsyntax.ParenthesesExpr:
		return b.build(e.Expression)

	case *hclsyntax.UnaryOpExpr:
		if e.Op != hclsyntax.OpNegate {
			return autodiff.Handle{}, errorAt(e, "unsupported unary operator")
		}
		if lit, ok := e.Val.(*hclsyntax.LiteralValueExpr); ok {
			f, err := number(lit, lit.Val)
			if err != nil {
				return autodiff.Handle{}, err
			}
			return b.g.Constant(-f)
		}
		v, err := b.build(e.Val)
		if err != nil {
			return autodiff.Handle{}, err
		}
		zero, err := b.g.Constant(0)
		if err != nil {
			return autodiff.Handle{}, err
		}
		return b.g.Sub(zero, v)

	case *hclsyntax.BinaryOpExpr:
		name, ok := binaryOps[e.Op]
		if !ok {
			return autodiff.Handle{}, errorAt(e, "unsupported binary operator")
		}
		lhs, err := b.build(e.LHS)
		if err != nil {
			return autodiff.Handle{}, err
		}
		rhs, err := b.build(e.RHS)
		if err != nil {
			return autodiff.Handle{}, err
		}
		return b.apply(e, name, lhs, rhs)

	case *hclsyntax.FunctionCallExpr:
		if e.ExpandFinal {
			return autodiff.Handle{}, errorAt(e, "argument expansion is not supported")
		}
		args := make([]autodiff.Handle, len(e.Args))
		for i, arg := range e.Args {
			h, err := b.build(arg)
			if err != nil {
				return autodiff.Handle{}, err
			}
			args[i] = h
		}
		return b.apply(e, e.Name, args...)
	}

	return autodiff.Handle{}, errorAt(e, "unsupported expression %T", e)
}

func (b *builder) apply(e hclsyntax.Expression, name string, args ...autodiff.Handle) (autodiff.Handle, error) {
	op, ok := ops.Lookup(name)
	if !ok {
		return autodiff.Handle{}, errorAt(e, "unknown function %q", name)
	}
	if len(args) != op.Arity() {
		return autodiff.Handle{}, errorAt(e, "%s takes %d arguments, got %d", name, op.Arity(), len(args))
	}
	h, err := b.g.Apply(op, args...)
	if err != nil {
		return autodiff.Handle{}, fmt.Errorf("%d:%d: %w", e.Range().Start.Line, e.Range().Start.Column, err)
	}
	return h, nil
}

func number(e hcl.Expression, v cty.Value) (float64, error) {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.Number) {
		return 0, errorAt(e, "only numeric literals are supported")
	}
	f, _ := v.AsBigFloat().Float64()
	return f, nil
}
