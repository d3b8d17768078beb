// Package ops defines the primitive operations a computation graph can record.
//
// Each operation implements the Operation interface, which provides:
//   - Eval: the value of the new node computed from its operand values
//   - the local partial derivative of that value with respect to each operand,
//     evaluated at the same operand values
//
// Supported operations:
//   - AddOp: a + b (d/da = 1, d/db = 1)
//   - SubOp: a - b (d/da = 1, d/db = -1)
//   - MulOp: a * b (d/da = b, d/db = a)
//   - DivOp: a / b (d/da = 1/b, d/db = -a/b²)
//   - LogOp: ln(a) (d/da = 1/a)
//   - SinOp: sin(a) (d/da = cos(a))
//   - CosOp: cos(a) (d/da = -sin(a))
//   - ExpOp: exp(a) (d/da = exp(a))
//
// Operations are pure: they never see the graph, only operand values.
// An operation must return a DomainError instead of a non-finite value.
package ops

// Operation represents a differentiable scalar primitive.
type Operation interface {
	// Name returns the operator tag recorded on nodes produced by this operation.
	Name() string

	// Arity returns the number of operands the operation takes.
	Arity() int

	// Eval computes the result value and the local partials for the given
	// operand values. len(operands) must equal Arity(); the returned partials
	// are aligned with operands.
	//
	// Example for MulOp:
	//   operands: [a, b]
	//   returns:  a*b, [b, a]
	Eval(operands []float64) (value float64, partials []float64, err error)
}
