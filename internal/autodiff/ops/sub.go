package ops

// SubOp represents subtraction: output = a - b.
//
// Local partials:
//   - d(a-b)/da = 1
//   - d(a-b)/db = -1
type SubOp struct{}

// Name returns "sub".
func (SubOp) Name() string { return "sub" }

// Arity returns 2.
func (SubOp) Arity() int { return 2 }

// Eval computes a - b.
func (op SubOp) Eval(operands []float64) (float64, []float64, error) {
	a, b := operands[0], operands[1]
	return result(op.Name(), operands, a-b, 1, -1)
}
