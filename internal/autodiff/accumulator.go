package autodiff

import "github.com/born-ml/gradgraph/internal/graph"

// accumulator holds one derivative per node for the last completed pass.
type accumulator struct {
	pass   Pass
	ran    bool
	anchor graph.NodeID // Root (forward) or output (reverse) of the last pass
	values []float64
	valid  []bool // Nodes whose value the last pass determined
}

// commit replaces the accumulator state with the result of a finished pass.
// Nothing is written until a pass has fully succeeded.
func (a *accumulator) commit(anchor graph.NodeID, values []float64, valid []bool) {
	a.ran = true
	a.anchor = anchor
	a.values = values
	a.valid = valid
}

// clear forgets the last pass.
func (a *accumulator) clear() {
	*a = accumulator{pass: a.pass}
}

// get returns the derivative of id, or why it is not available.
func (a *accumulator) get(arena *graph.Arena, id graph.NodeID) (float64, error) {
	var reason string
	switch {
	case !a.ran:
		reason = "no " + string(a.pass) + " pass has run"
	case int(id) >= len(a.valid):
		reason = "node created after the last " + string(a.pass) + " pass"
	case !a.valid[id]:
		reason = "node outside the last " + string(a.pass) + " pass"
	default:
		return a.values[id], nil
	}
	return 0, &UninitializedError{Pass: a.pass, Node: id, Label: arena.Node(id).Label(), Reason: reason}
}

// allValid returns a validity mask covering every node of an n-node arena.
func allValid(n int) []bool {
	valid := make([]bool, n)
	for i := range valid {
		valid[i] = true
	}
	return valid
}
