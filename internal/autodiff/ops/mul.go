package ops

// MulOp represents multiplication: output = a * b.
//
// Local partials:
//   - d(a*b)/da = b
//   - d(a*b)/db = a
//
// Both partials are fixed at the operand values seen at construction time.
type MulOp struct{}

// Name returns "mul".
func (MulOp) Name() string { return "mul" }

// Arity returns 2.
func (MulOp) Arity() int { return 2 }

// Eval computes a * b.
func (op MulOp) Eval(operands []float64) (float64, []float64, error) {
	a, b := operands[0], operands[1]
	return result(op.Name(), operands, a*b, b, a)
}
