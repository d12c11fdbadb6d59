// File: methods_edges.go
// Role: Edge lifecycle & lookups: AddEdge/RemoveEdge/GetEdge/HasEdge/Edges/EdgeCount.
// Determinism:
//   - Edges() returns copies in insertion order.
//   - Adjacency lists grow by append, so they reflect arrival/departure order.
// AI-HINT (file):
//   - AddEdge never creates endpoints; add both nodes first.
//   - A missing endpoint yields ErrInvalidEdge, which also matches ErrNotFound.

package core

import (
	"fmt"
	"slices"
)

// AddEdge registers a copy of e and links it into the adjacency lists.
//
// Steps:
//  1. Verify e.StartID and e.EndID exist (ErrInvalidEdge).
//  2. Generate an id if e.ID is empty; reject a used id (ErrDuplicateID).
//  3. Store the edge, append its id to start.OutEdges and end.InEdges.
//
// Every check runs before the first write, so a failed call leaves the graph unchanged.
// Self-loops are accepted: the id lands once in each list of the single node.
//
// Complexity: O(1) amortized.
func (g *Graph[C]) AddEdge(e Edge) (string, error) {
	start, ok := g.nodes.get(e.StartID)
	if !ok {
		return "", fmt.Errorf("%w: start node %q", ErrInvalidEdge, e.StartID)
	}
	end, ok := g.nodes.get(e.EndID)
	if !ok {
		return "", fmt.Errorf("%w: end node %q", ErrInvalidEdge, e.EndID)
	}

	id := e.ID
	if id == "" {
		var err error
		if id, err = generateID(g.newID, g.edges); err != nil {
			return "", fmt.Errorf("add edge: %w", err)
		}
	}

	rec := &Edge{ID: id, StartID: e.StartID, EndID: e.EndID, Title: e.Title, Description: e.Description}
	if err := g.edges.insert(id, rec); err != nil {
		return "", fmt.Errorf("add edge: %w", err)
	}
	start.OutEdges = append(start.OutEdges, id)
	end.InEdges = append(end.InEdges, id)

	return id, nil
}

// RemoveEdge unregisters the edge from both adjacency lists, then deletes it.
// Returns ErrNotFound if no such edge exists.
// Complexity: O(d) in the adjacency list length of the endpoints.
func (g *Graph[C]) RemoveEdge(id string) error {
	if !g.detachEdge(id) {
		return fmt.Errorf("%w: edge %q", ErrNotFound, id)
	}

	return nil
}

// GetEdge returns a copy of the edge and true, or the zero Edge and false
// when id is absent.
func (g *Graph[C]) GetEdge(id string) (Edge, bool) {
	e, ok := g.edges.get(id)
	if !ok {
		return Edge{}, false
	}

	return *e, true
}

// HasEdge reports whether an edge with the given id exists.
func (g *Graph[C]) HasEdge(id string) bool { return g.edges.has(id) }

// Edges returns copies of all edges in insertion order.
func (g *Graph[C]) Edges() []Edge {
	recs := g.edges.values()
	out := make([]Edge, 0, len(recs))
	for _, e := range recs {
		out = append(out, *e)
	}

	return out
}

// EdgeCount returns the number of edges.
func (g *Graph[C]) EdgeCount() int { return g.edges.len() }

// detachEdge removes id from its endpoints' lists and from the catalog.
// It reports false when the edge is already gone, which makes the
// cascading delete in RemoveNode safe for self-loops.
func (g *Graph[C]) detachEdge(id string) bool {
	e, ok := g.edges.get(id)
	if !ok {
		return false
	}
	if start, ok := g.nodes.get(e.StartID); ok {
		start.OutEdges = removeID(start.OutEdges, id)
	}
	if end, ok := g.nodes.get(e.EndID); ok {
		end.InEdges = removeID(end.InEdges, id)
	}
	g.edges.remove(id)

	return true
}

// removeID deletes the first occurrence of id, preserving order of the rest.
func removeID(list []string, id string) []string {
	if i := slices.Index(list, id); i >= 0 {
		return slices.Delete(list, i, i+1)
	}

	return list
}
