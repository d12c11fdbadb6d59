package core

import (
	"fmt"
	"slices"
)

// Validate checks the structural invariants of g and returns the first
// violation wrapped in ErrCorrupted, or nil.
//
// Checked:
//   - every catalog key equals the id stored in its record;
//   - every edge endpoint exists;
//   - an edge id occurs exactly once in its start's OutEdges and exactly once
//     in its end's InEdges;
//   - every id in any adjacency list names an existing edge incident to that node
//     in the matching direction.
//
// Complexity: O(V·d + E·d) where d bounds adjacency list length.
func (g *Graph[C]) Validate() error {
	for _, id := range g.nodes.ids() {
		n, _ := g.nodes.get(id)
		if n.ID != id {
			return fmt.Errorf("%w: node key %q holds record %q", ErrCorrupted, id, n.ID)
		}
		for _, eid := range n.OutEdges {
			e, ok := g.edges.get(eid)
			if !ok {
				return fmt.Errorf("%w: node %q lists unknown out-edge %q", ErrCorrupted, id, eid)
			}
			if e.StartID != id {
				return fmt.Errorf("%w: node %q lists out-edge %q starting at %q", ErrCorrupted, id, eid, e.StartID)
			}
		}
		for _, eid := range n.InEdges {
			e, ok := g.edges.get(eid)
			if !ok {
				return fmt.Errorf("%w: node %q lists unknown in-edge %q", ErrCorrupted, id, eid)
			}
			if e.EndID != id {
				return fmt.Errorf("%w: node %q lists in-edge %q ending at %q", ErrCorrupted, id, eid, e.EndID)
			}
		}
	}

	for _, id := range g.edges.ids() {
		e, _ := g.edges.get(id)
		if e.ID != id {
			return fmt.Errorf("%w: edge key %q holds record %q", ErrCorrupted, id, e.ID)
		}
		start, ok := g.nodes.get(e.StartID)
		if !ok {
			return fmt.Errorf("%w: edge %q starts at missing node %q", ErrCorrupted, id, e.StartID)
		}
		end, ok := g.nodes.get(e.EndID)
		if !ok {
			return fmt.Errorf("%w: edge %q ends at missing node %q", ErrCorrupted, id, e.EndID)
		}
		if c := count(start.OutEdges, id); c != 1 {
			return fmt.Errorf("%w: edge %q listed %d times in out-edges of %q", ErrCorrupted, id, c, start.ID)
		}
		if c := count(end.InEdges, id); c != 1 {
			return fmt.Errorf("%w: edge %q listed %d times in in-edges of %q", ErrCorrupted, id, c, end.ID)
		}
	}

	return nil
}

func count(list []string, id string) int {
	n := 0
	for i := slices.Index(list, id); i >= 0; {
		n++
		list = list[i+1:]
		i = slices.Index(list, id)
	}

	return n
}
