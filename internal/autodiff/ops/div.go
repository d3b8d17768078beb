package ops

// DivOp represents division: output = a / b.
//
// Local partials:
//   - d(a/b)/da = 1/b
//   - d(a/b)/db = -a/b²
//
// A zero denominator is a DomainError.
type DivOp struct{}

// Name returns "div".
func (DivOp) Name() string { return "div" }

// Arity returns 2.
func (DivOp) Arity() int { return 2 }

// Eval computes a / b.
func (op DivOp) Eval(operands []float64) (float64, []float64, error) {
	a, b := operands[0], operands[1]
	if b == 0 {
		return 0, nil, domainError(op.Name(), operands, "division by zero")
	}
	return result(op.Name(), operands, a/b, 1/b, -a/(b*b))
}
