// File: export.go
// Role: Lossless export/import of a Graph as plain records.
// Policy:
//   - Snapshots carry primary fields and endpoint ids only, never adjacency lists.
//   - Import rebuilds adjacency by replaying edges in snapshot order, so
//     Import(g.Export()) reproduces every adjacency list exactly.

package core

import "fmt"

// NodeRecord is the persisted form of a Node: primary fields only.
type NodeRecord[C any] struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Content     C      `json:"content,omitempty" yaml:"content,omitempty"`
}

// Snapshot is a plain-data image of a Graph.
type Snapshot[C any] struct {
	Nodes []NodeRecord[C] `json:"nodes" yaml:"nodes"`
	Edges []Edge          `json:"edges" yaml:"edges"`
}

// Export returns the nodes and edges of g in insertion order.
// Complexity: O(V + E)
func (g *Graph[C]) Export() Snapshot[C] {
	s := Snapshot[C]{
		Nodes: make([]NodeRecord[C], 0, g.nodes.len()),
		Edges: make([]Edge, 0, g.edges.len()),
	}
	for _, n := range g.nodes.values() {
		s.Nodes = append(s.Nodes, NodeRecord[C]{
			ID:          n.ID,
			Name:        n.Name,
			Title:       n.Title,
			Description: n.Description,
			Content:     n.Content,
		})
	}
	for _, e := range g.edges.values() {
		s.Edges = append(s.Edges, *e)
	}

	return s
}

// Import builds a new Graph from s.
//
// Every record must carry an id. Nodes are added first, then edges in
// snapshot order; the first failure aborts the import and is returned
// wrapped with the offending record position.
//
// Errors:
//   - ErrCorrupted: a record has an empty id.
//   - ErrDuplicateID, ErrInvalidEdge: as reported by AddNode/AddEdge.
func Import[C any](s Snapshot[C], opts ...GraphOption) (*Graph[C], error) {
	g := NewGraph[C](opts...)
	for i, rec := range s.Nodes {
		if rec.ID == "" {
			return nil, fmt.Errorf("import: node #%d: %w: empty id", i, ErrCorrupted)
		}
		n := Node[C]{ID: rec.ID, Name: rec.Name, Title: rec.Title, Description: rec.Description, Content: rec.Content}
		if _, err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("import: node #%d: %w", i, err)
		}
	}
	for i, e := range s.Edges {
		if e.ID == "" {
			return nil, fmt.Errorf("import: edge #%d: %w: empty id", i, ErrCorrupted)
		}
		if _, err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("import: edge #%d: %w", i, err)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	return g, nil
}
