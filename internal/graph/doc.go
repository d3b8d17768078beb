// Package graph stores scalar computation graphs in an index-based arena.
//
// Every node lives in one growable slice owned by an Arena and is referred
// to by its NodeID (its index). Parent links and child back-links are both
// plain indices, so the graph can be navigated in either direction without
// any ownership cycle.
//
// Structural fields (value, operator, parents, partials) are written once
// when a node is appended and never change afterwards. Because a node's
// parents must already be in the arena when it is appended, every parent
// index is strictly smaller than its child's index and the graph is acyclic
// by construction.
//
// Handles pair a NodeID with the identity of the arena that issued it, so a
// handle from one graph is rejected by another.
//
// Traversal:
//
//	order := arena.TopologicalOrder(out) // ancestors of out, parents first, out last
//	for i := len(order) - 1; i >= 0; i-- {
//	    // reverse topological order: children before parents
//	}
package graph
