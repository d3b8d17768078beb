package graph

// TopologicalOrder returns the ancestor closure of targets (targets
// included) such that every node appears after all of its parents.
//
// The order is a depth-first post-order: parents are visited in recorded
// operand order before the node itself is emitted, and each node is emitted
// once even when reached through several paths. With several targets the
// closures are merged in target order. The result depends only on the graph
// structure, never on map iteration.
//
// Targets must be valid nodes of the arena.
func (a *Arena) TopologicalOrder(targets ...NodeID) []NodeID {
	type frame struct {
		id   NodeID
		next int // Next parent to visit
	}

	visited := make([]bool, len(a.nodes))
	order := make([]NodeID, 0, len(a.nodes))
	var stack []frame

	for _, target := range targets {
		if visited[target] {
			continue
		}
		visited[target] = true
		stack = append(stack, frame{id: target})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			parents := a.nodes[top.id].parents
			if top.next < len(parents) {
				p := parents[top.next]
				top.next++
				if !visited[p] {
					visited[p] = true
					stack = append(stack, frame{id: p})
				}
				continue
			}
			order = append(order, top.id)
			stack = stack[:len(stack)-1]
		}
	}

	return order
}

// Descendants returns root and every node reachable from it through child
// links, in creation order.
func (a *Arena) Descendants(root NodeID) []NodeID {
	reached := make([]bool, len(a.nodes))
	reached[root] = true
	queue := []NodeID{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, c := range a.nodes[id].children {
			if !reached[c] {
				reached[c] = true
				queue = append(queue, c)
			}
		}
	}

	out := make([]NodeID, 0, len(queue))
	for id := root; int(id) < len(a.nodes); id++ {
		if reached[id] {
			out = append(out, id)
		}
	}
	return out
}

// IsValidOrder reports whether order is a closed linearization: each node
// appears once, and all of its parents appear in order before it.
func (a *Arena) IsValidOrder(order []NodeID) bool {
	pos := make([]int, len(a.nodes))
	for i := range pos {
		pos[i] = -1
	}
	for i, id := range order {
		if pos[id] >= 0 {
			return false
		}
		pos[id] = i
	}
	for i, id := range order {
		for _, p := range a.nodes[id].parents {
			if pos[p] < 0 || pos[p] >= i {
				return false
			}
		}
	}
	return true
}
