// File: methods_nodes.go
// Role: Node lifecycle & lookups: AddNode/RemoveNode/GetNode/HasNode/Nodes/NodeCount.
// Determinism:
//   - Nodes() returns copies in insertion order.
// Invariants:
//   - RemoveNode never leaves an edge whose endpoint is missing.

package core

import (
	"fmt"
	"slices"
)

// maxIDAttempts bounds id generation retries on collision.
const maxIDAttempts = 16

// AddNode inserts a copy of n and returns its id.
//
// Implementation:
//   - Stage 1: If n.ID is empty, generate an id unused in the node space.
//   - Stage 2: Reject an id already present (ErrDuplicateID).
//   - Stage 3: Register a record with empty InEdges/OutEdges.
//
// Behavior highlights:
//   - Adjacency lists supplied by the caller are ignored; they are owned by the graph.
//   - No other field is validated.
//
// Errors:
//   - ErrDuplicateID: id already present, or no free id could be generated.
//
// Complexity:
//   - Time O(1) amortized.
func (g *Graph[C]) AddNode(n Node[C]) (string, error) {
	id := n.ID
	if id == "" {
		var err error
		if id, err = generateID(g.newID, g.nodes); err != nil {
			return "", fmt.Errorf("add node: %w", err)
		}
	}

	rec := &Node[C]{
		ID:          id,
		Name:        n.Name,
		Title:       n.Title,
		Description: n.Description,
		Content:     n.Content,
		InEdges:     []string{},
		OutEdges:    []string{},
	}
	if err := g.nodes.insert(id, rec); err != nil {
		return "", fmt.Errorf("add node: %w", err)
	}

	return id, nil
}

// RemoveNode deletes the node and every edge incident to it.
//
// Implementation:
//   - Stage 1: Verify presence (ErrNotFound).
//   - Stage 2: Detach every edge listed in InEdges, then every edge in OutEdges.
//     A self-loop appears in both lists; the second pass finds it already gone and skips it.
//   - Stage 3: Delete the node record.
//
// Complexity:
//   - Time O(deg(v) · d) where d bounds the adjacency list length of the neighbours;
//     each catalog removal is amortized O(1).
func (g *Graph[C]) RemoveNode(id string) error {
	n, ok := g.nodes.get(id)
	if !ok {
		return fmt.Errorf("%w: node %q", ErrNotFound, id)
	}

	// Iterate over snapshots: detachEdge edits n's lists.
	for _, eid := range slices.Clone(n.InEdges) {
		g.detachEdge(eid)
	}
	for _, eid := range slices.Clone(n.OutEdges) {
		g.detachEdge(eid)
	}
	g.nodes.remove(id)

	return nil
}

// GetNode returns a copy of the node and true, or the zero Node and false
// when id is absent. A missing node is not an error here.
func (g *Graph[C]) GetNode(id string) (Node[C], bool) {
	n, ok := g.nodes.get(id)
	if !ok {
		return Node[C]{}, false
	}

	return n.copy(), true
}

// HasNode reports whether a node with the given id exists.
func (g *Graph[C]) HasNode(id string) bool { return g.nodes.has(id) }

// Nodes returns copies of all nodes in insertion order.
// Complexity: O(V + E).
func (g *Graph[C]) Nodes() []Node[C] {
	recs := g.nodes.values()
	out := make([]Node[C], 0, len(recs))
	for _, n := range recs {
		out = append(out, n.copy())
	}

	return out
}

// NodeIDs returns node ids in insertion order.
func (g *Graph[C]) NodeIDs() []string { return g.nodes.ids() }

// NodeCount returns the number of nodes.
func (g *Graph[C]) NodeCount() int { return g.nodes.len() }

// generateID draws ids from next until one is unused in s.
func generateID[V any](next func() string, s *store[V]) (string, error) {
	for range maxIDAttempts {
		if id := next(); id != "" && !s.has(id) {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: no free id after %d attempts", ErrDuplicateID, maxIDAttempts)
}
