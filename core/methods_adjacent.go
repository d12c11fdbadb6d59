// File: methods_adjacent.go
// Role: Adjacency queries: OutEdges/InEdges/Neighbours/OutNeighbours/AdjacencyList.
// Determinism:
//   - Every result follows adjacency-list order (in-edges before out-edges where both are read).
// Contract:
//   - An unknown node id yields ErrNotFound, never an empty result.

package core

import "fmt"

// OutEdges returns the edges leaving id, in departure order.
func (g *Graph[C]) OutEdges(id string) ([]Edge, error) {
	n, ok := g.nodes.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: node %q", ErrNotFound, id)
	}

	return g.resolveEdges(n.OutEdges), nil
}

// InEdges returns the edges arriving at id, in arrival order.
func (g *Graph[C]) InEdges(id string) ([]Edge, error) {
	n, ok := g.nodes.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: node %q", ErrNotFound, id)
	}

	return g.resolveEdges(n.InEdges), nil
}

// Neighbours returns the distinct nodes joined to id by an edge in either
// direction, excluding id itself. Sources of in-edges come first, then
// targets of out-edges, each in list order.
// Complexity: O(deg(v)).
func (g *Graph[C]) Neighbours(id string) ([]Node[C], error) {
	n, ok := g.nodes.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: node %q", ErrNotFound, id)
	}

	seen := map[string]struct{}{id: {}}
	out := make([]Node[C], 0, len(n.InEdges)+len(n.OutEdges))
	visit := func(other string) {
		if _, dup := seen[other]; dup {
			return
		}
		seen[other] = struct{}{}
		if rec, ok := g.nodes.get(other); ok {
			out = append(out, rec.copy())
		}
	}
	for _, eid := range n.InEdges {
		if e, ok := g.edges.get(eid); ok {
			visit(e.StartID)
		}
	}
	for _, eid := range n.OutEdges {
		if e, ok := g.edges.get(eid); ok {
			visit(e.EndID)
		}
	}

	return out, nil
}

// OutNeighbours returns the distinct node ids touched by the outgoing edges
// of id: both the start and the end of every out-edge, in first-encounter order.
//
// Contract: id itself is part of the result whenever it has an outgoing edge.
// Callers that want targets only must filter it out. Traversals are unaffected
// because the start node is already visited.
func (g *Graph[C]) OutNeighbours(id string) ([]string, error) {
	n, ok := g.nodes.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: node %q", ErrNotFound, id)
	}

	seen := make(map[string]struct{}, len(n.OutEdges)+1)
	out := make([]string, 0, len(n.OutEdges)+1)
	add := func(nid string) {
		if _, dup := seen[nid]; !dup {
			seen[nid] = struct{}{}
			out = append(out, nid)
		}
	}
	for _, eid := range n.OutEdges {
		if e, ok := g.edges.get(eid); ok {
			add(e.StartID)
			add(e.EndID)
		}
	}

	return out, nil
}

// AdjacencyList maps every node id to the end ids of its out-edges in
// departure order. Parallel edges repeat their target; nodes without
// out-edges map to an empty slice.
// Complexity: O(V + E).
func (g *Graph[C]) AdjacencyList() map[string][]string {
	out := make(map[string][]string, g.nodes.len())
	for _, n := range g.nodes.values() {
		targets := make([]string, 0, len(n.OutEdges))
		for _, eid := range n.OutEdges {
			if e, ok := g.edges.get(eid); ok {
				targets = append(targets, e.EndID)
			}
		}
		out[n.ID] = targets
	}

	return out
}

// resolveEdges maps edge ids to edge copies, keeping the list order.
func (g *Graph[C]) resolveEdges(ids []string) []Edge {
	out := make([]Edge, 0, len(ids))
	for _, eid := range ids {
		if e, ok := g.edges.get(eid); ok {
			out = append(out, *e)
		}
	}

	return out
}
