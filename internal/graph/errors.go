package graph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrConsistency is returned (wrapped in a ConsistencyError) when a
// construction or traversal request does not fit the arena: a foreign or
// unknown node, a mismatched operand list, or a would-be cycle.
var ErrConsistency = errors.New("graph consistency violation")

// ConsistencyError provides details about a rejected graph request.
type ConsistencyError struct {
	Graph  uuid.UUID // Arena the request was made against
	Node   NodeID    // Offending node index, -1 if not applicable
	Reason string
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	if e.Node < 0 {
		return fmt.Sprintf("graph %s: %s", e.Graph, e.Reason)
	}
	return fmt.Sprintf("graph %s: node %d: %s", e.Graph, e.Node, e.Reason)
}

// Unwrap returns ErrConsistency so callers can use errors.Is.
func (e *ConsistencyError) Unwrap() error {
	return ErrConsistency
}
