// File: methods_clone.go
// Role: Cloning and clearing graph instances.
// Determinism:
//   - Clone preserves insertion order of both catalogs and every adjacency list.
// AI-HINT (file):
//   - Content values are copied by assignment; pointer or map payloads stay shared.
//   - Clear() keeps the id generator.

package core

// Clone returns a deep copy of the Graph: nodes, edges and adjacency lists.
// The clone shares the id generator of g.
// Complexity: O(V + E)
func (g *Graph[C]) Clone() *Graph[C] {
	clone := &Graph[C]{
		nodes: newStore[*Node[C]](),
		edges: newStore[*Edge](),
		newID: g.newID,
	}
	for _, n := range g.nodes.values() {
		cp := n.copy()
		// ids are unique in g, insert cannot fail
		_ = clone.nodes.insert(cp.ID, &cp)
	}
	for _, e := range g.edges.values() {
		cp := *e
		_ = clone.edges.insert(cp.ID, &cp)
	}

	return clone
}

// Clear removes every node and edge.
// Complexity: O(1)
func (g *Graph[C]) Clear() {
	g.nodes.clear()
	g.edges.clear()
}
