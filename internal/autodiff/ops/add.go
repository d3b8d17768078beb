package ops

// AddOp represents addition: output = a + b.
//
// Local partials:
//   - d(a+b)/da = 1
//   - d(a+b)/db = 1
type AddOp struct{}

// Name returns "add".
func (AddOp) Name() string { return "add" }

// Arity returns 2.
func (AddOp) Arity() int { return 2 }

// Eval computes a + b.
func (op AddOp) Eval(operands []float64) (float64, []float64, error) {
	a, b := operands[0], operands[1]
	return result(op.Name(), operands, a+b, 1, 1)
}
