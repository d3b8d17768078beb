package ops

import "math"

// LogOp represents the natural logarithm: output = ln(a).
//
// Local partial:
//
//	d(ln(a))/da = 1 / a
//
// Log is only defined for a > 0; anything else is rejected with a
// DomainError rather than producing NaN or -Inf.
type LogOp struct{}

// Name returns "log".
func (LogOp) Name() string { return "log" }

// Arity returns 1.
func (LogOp) Arity() int { return 1 }

// Eval computes ln(a).
func (op LogOp) Eval(operands []float64) (float64, []float64, error) {
	a := operands[0]
	if !(a > 0) {
		return 0, nil, domainError(op.Name(), operands, "operand must be positive")
	}
	return result(op.Name(), operands, math.Log(a), 1/a)
}
