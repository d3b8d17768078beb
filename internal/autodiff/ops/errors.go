package ops

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrDomain is returned (wrapped in a DomainError) when an operand lies
// outside the mathematical domain of a primitive.
var ErrDomain = errors.New("operand outside primitive domain")

// DomainError provides details about a rejected primitive evaluation.
type DomainError struct {
	Op       string    // Operator tag (e.g., "log")
	Operands []float64 // Operand values the primitive was evaluated at
	Reason   string    // Human-readable reason
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	args := make([]string, len(e.Operands))
	for i, v := range e.Operands {
		args[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprintf("%s(%s): %s", e.Op, strings.Join(args, ", "), e.Reason)
}

// Unwrap returns ErrDomain so callers can use errors.Is.
func (e *DomainError) Unwrap() error {
	return ErrDomain
}

func domainError(op string, operands []float64, reason string) *DomainError {
	return &DomainError{
		Op:       op,
		Operands: append([]float64(nil), operands...),
		Reason:   reason,
	}
}

// finite reports whether every value is neither NaN nor infinite.
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// CheckResult returns a DomainError unless value and every partial are
// finite. The graph applies it to every evaluation, including those of
// operations registered by callers.
func CheckResult(op string, operands []float64, value float64, partials []float64) error {
	if !finite(value) {
		return domainError(op, operands, "result is not finite")
	}
	if !finite(partials...) {
		return domainError(op, operands, "derivative is not finite")
	}
	return nil
}

// result validates an evaluation before it is handed back to the graph.
func result(op string, operands []float64, value float64, partials ...float64) (float64, []float64, error) {
	if err := CheckResult(op, operands, value, partials); err != nil {
		return 0, nil, err
	}
	return value, partials, nil
}
