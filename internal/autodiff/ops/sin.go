package ops

import "math"

// SinOp represents the sine operation: y = sin(x).
//
// Local partial:
//   - d(sin(x))/dx = cos(x)
type SinOp struct{}

// Name returns "sin".
func (SinOp) Name() string { return "sin" }

// Arity returns 1.
func (SinOp) Arity() int { return 1 }

// Eval computes sin(x).
func (op SinOp) Eval(operands []float64) (float64, []float64, error) {
	x := operands[0]
	return result(op.Name(), operands, math.Sin(x), math.Cos(x))
}
