package autodiff

import (
	"errors"
	"fmt"

	"github.com/born-ml/gradgraph/internal/graph"
)

// Pass names a propagation direction.
type Pass string

// Propagation passes.
const (
	PassForward Pass = "forward"
	PassReverse Pass = "reverse"
)

// ErrUninitialized is returned (wrapped in an UninitializedError) when a
// derivative is read before a pass has computed it.
var ErrUninitialized = errors.New("derivative not computed")

// UninitializedError provides details about a premature derivative query.
type UninitializedError struct {
	Pass   Pass
	Node   graph.NodeID
	Label  string
	Reason string // e.g., "no forward pass has run"
}

// Error implements the error interface.
func (e *UninitializedError) Error() string {
	return fmt.Sprintf("%s derivative of %s (node %d): %s", e.Pass, e.Label, e.Node, e.Reason)
}

// Unwrap returns ErrUninitialized so callers can use errors.Is.
func (e *UninitializedError) Unwrap() error {
	return ErrUninitialized
}
