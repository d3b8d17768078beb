package ops

import "math"

// ExpOp represents the exponential operation: y = exp(x).
//
// Local partial:
//   - d(exp(x))/dx = exp(x) = y
//
// Overflow to +Inf is reported as a DomainError.
type ExpOp struct{}

// Name returns "exp".
func (ExpOp) Name() string { return "exp" }

// Arity returns 1.
func (ExpOp) Arity() int { return 1 }

// Eval computes exp(x).
func (op ExpOp) Eval(operands []float64) (float64, []float64, error) {
	y := math.Exp(operands[0])
	return result(op.Name(), operands, y, y)
}
