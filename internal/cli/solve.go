package cli

import (
	"fmt"
	"strings"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/config"
	"github.com/born-ml/gradgraph/internal/expr"
)

// Result is the outcome of differentiating one problem.
type Result struct {
	Value  float64 // Output value
	Nodes  int     // Recorded graph size
	Inputs []InputResult
}

// InputResult holds the derivatives of the output with respect to one input.
type InputResult struct {
	Name       string
	Value      float64
	Forward    float64 // d(output)/d(input) by forward mode
	HasForward bool
	Reverse    float64 // d(output)/d(input) by reverse mode
	HasReverse bool
}

// Solve builds the problem's graph and runs the requested passes.
//
// Reverse mode runs once from the output. Forward mode runs once per input
// (or only for p.Wrt when set), each run resetting the previous one.
func Solve(p *config.Problem, opts ...autodiff.Option) (*Result, error) {
	x, err := expr.Parse(p.Output)
	if err != nil {
		return nil, fmt.Errorf("parse output: %w", err)
	}

	declared := make(map[string]bool, len(p.Inputs))
	for _, in := range p.Inputs {
		declared[in.Name] = true
	}
	var missing []string
	for _, name := range x.Variables() {
		// Dashed names are reported by Build with a position and a hint.
		if !declared[name] && !strings.Contains(name, "-") {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: no value for %s", config.ErrInvalid, strings.Join(missing, ", "))
	}

	g := autodiff.New(opts...)
	vars := make(map[string]autodiff.Handle, len(p.Inputs))
	handles := make([]autodiff.Handle, len(p.Inputs))
	res := &Result{Inputs: make([]InputResult, len(p.Inputs))}
	for i, in := range p.Inputs {
		h, err := g.Input(in.Value)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", in.Name, err)
		}
		vars[in.Name] = h
		handles[i] = h
		res.Inputs[i] = InputResult{Name: in.Name, Value: in.Value}
	}

	out, err := x.Build(g, vars)
	if err != nil {
		return nil, fmt.Errorf("build output: %w", err)
	}
	if res.Value, err = g.Value(out); err != nil {
		return nil, err
	}

	if p.Mode.Reverse() {
		if err := g.Reverse(out); err != nil {
			return nil, err
		}
		grads, err := g.Gradients(handles...)
		if err != nil {
			return nil, err
		}
		for i, v := range grads {
			res.Inputs[i].Reverse = v
			res.Inputs[i].HasReverse = true
		}
	}

	if p.Mode.Forward() {
		for i, h := range handles {
			if p.Wrt != "" && p.Inputs[i].Name != p.Wrt {
				continue
			}
			if err := g.Forward(h); err != nil {
				return nil, fmt.Errorf("forward from %s: %w", p.Inputs[i].Name, err)
			}
			v, err := g.ForwardPartial(out)
			if err != nil {
				return nil, err
			}
			res.Inputs[i].Forward = v
			res.Inputs[i].HasForward = true
		}
	}

	res.Nodes = g.Len()
	return res, nil
}
