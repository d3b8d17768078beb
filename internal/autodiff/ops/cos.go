package ops

import "math"

// CosOp represents the cosine operation: y = cos(x).
//
// Local partial:
//   - d(cos(x))/dx = -sin(x)
type CosOp struct{}

// Name returns "cos".
func (CosOp) Name() string { return "cos" }

// Arity returns 1.
func (CosOp) Arity() int { return 1 }

// Eval computes cos(x).
func (op CosOp) Eval(operands []float64) (float64, []float64, error) {
	x := operands[0]
	return result(op.Name(), operands, math.Cos(x), -math.Sin(x))
}
