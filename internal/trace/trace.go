// Package trace carries an optional, purely observational record of graph
// construction and derivative propagation.
//
// A Sink receives one Step per recorded node and per accumulator update.
// Sinks never influence computed values. The default sink is Discard.
package trace

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what a Step describes.
type Kind string

// Step kinds.
const (
	KindConstruct Kind = "construct" // A node was appended to the graph
	KindForward   Kind = "forward"   // A forward partial was computed
	KindReverse   Kind = "reverse"   // A reverse gradient received a contribution
)

// Term is one edge of the chain rule.
//
// For construct steps Node is an operand, Local the partial with respect to
// it and Upstream the operand value. For forward steps Node is a parent and
// Upstream its forward partial. For reverse steps Node is the child passing
// its gradient down and Upstream that gradient.
type Term struct {
	Node     string
	Local    float64
	Upstream float64
}

// Step is one trace record.
type Step struct {
	Kind   Kind
	Node   string  // Node whose value or accumulator was written
	Op     string  // Operator tag of Node
	Wrt    string  // Forward: seed label. Reverse: output label
	Value  float64 // Value written
	Before float64 // Reverse only: accumulator before the contribution
	Terms  []Term
}

// String renders the step for humans.
//
//	v1 = add(x1, x1) = 6
//	dv1/dx1 = (dv1/dx1)(dx1/dx1) + (dv1/dx1)(dx1/dx1) = (1)(1) + (1)(1) = 2
//	dv2/dx1 += (dv2/dv2)(dv2/dx1) = 0 + (1)(6) -> 6
func (s Step) String() string {
	var b strings.Builder
	switch s.Kind {
	case KindConstruct:
		names := make([]string, len(s.Terms))
		for i, t := range s.Terms {
			names[i] = t.Node
		}
		if len(names) == 0 {
			fmt.Fprintf(&b, "%s = %s = %s", s.Node, s.Op, num(s.Value))
		} else {
			fmt.Fprintf(&b, "%s = %s(%s) = %s", s.Node, s.Op, strings.Join(names, ", "), num(s.Value))
		}
	case KindForward:
		symbols := make([]string, len(s.Terms))
		values := make([]string, len(s.Terms))
		for i, t := range s.Terms {
			symbols[i] = fmt.Sprintf("(d%s/d%s)(d%s/d%s)", s.Node, t.Node, t.Node, s.Wrt)
			values[i] = fmt.Sprintf("(%s)(%s)", num(t.Local), num(t.Upstream))
		}
		fmt.Fprintf(&b, "d%s/d%s = ", s.Node, s.Wrt)
		if len(s.Terms) > 0 {
			fmt.Fprintf(&b, "%s = %s = ", strings.Join(symbols, " + "), strings.Join(values, " + "))
		}
		b.WriteString(num(s.Value))
	case KindReverse:
		fmt.Fprintf(&b, "d%s/d%s += ", s.Wrt, s.Node)
		for i, t := range s.Terms {
			if i > 0 {
				b.WriteString(" + ")
			}
			fmt.Fprintf(&b, "(d%s/d%s)(d%s/d%s) = %s + (%s)(%s)",
				s.Wrt, t.Node, t.Node, s.Node, num(s.Before), num(t.Upstream), num(t.Local))
		}
		fmt.Fprintf(&b, " -> %s", num(s.Value))
	default:
		fmt.Fprintf(&b, "%s %s = %s", s.Kind, s.Node, num(s.Value))
	}
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Sink receives trace steps.
type Sink interface {
	Record(step Step)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(step Step)

// Record calls f(step).
func (f SinkFunc) Record(step Step) { f(step) }

type discard struct{}

func (discard) Record(Step) {}

// Discard drops every step.
var Discard Sink = discard{}

// Multi fans every step out to each of sinks in order.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(step Step) {
		for _, s := range sinks {
			s.Record(step)
		}
	})
}
