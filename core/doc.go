// Package core provides the in-memory knowledge graph: a directed, labeled
// graph of entities (nodes) and relationships (edges).
//
// The Graph G = (V,E) keeps two uniqueness-enforcing catalogs and a pair of
// ordered adjacency lists per node:
//
//   - nodes:  id → Node  (insertion-ordered)
//   - edges:  id → Edge  (insertion-ordered)
//   - Node.InEdges / Node.OutEdges: edge ids in arrival / departure order
//
// Nodes and edges reference each other by id only. The Graph is the single
// arena that resolves ids, so there are no stale copies of endpoint records.
//
// Invariants (hold after every successful call):
//
//  1. Every edge's StartID and EndID name existing nodes.
//  2. Edge e (s→t) appears exactly once in s.OutEdges and once in t.InEdges,
//     and in no other list.
//  3. Node ids and edge ids are each unique.
//  4. Self-loops are legal; the id then appears once in each list of that node.
//
// Validate() checks all of them.
//
// Core Methods:
//
//	// Node lifecycle
//	AddNode(n Node[C]) (id string, err error)   // O(1); empty n.ID → generated id
//	RemoveNode(id string) error                 // cascades over incident edges
//	GetNode(id string) (Node[C], bool)          // copy; false when absent
//
//	// Edge lifecycle
//	AddEdge(e Edge) (id string, err error)      // O(1); endpoints must exist
//	RemoveEdge(id string) error
//	GetEdge(id string) (Edge, bool)
//
//	// Adjacency
//	OutEdges(id) / InEdges(id) ([]Edge, error)  // list order
//	Neighbours(id) ([]Node[C], error)           // both directions, distinct, excludes id
//	OutNeighbours(id) ([]string, error)         // both endpoints of out-edges, distinct
//	AdjacencyList() map[string][]string         // id → out-targets
//
//	// Enumeration & persistence
//	Nodes() / Edges() / Stats()
//	Export() Snapshot[C]
//	Import[C](Snapshot[C]) (*Graph[C], error)
//	Clone() / Clear()
//
// Lookups versus errors:
//
//	GetNode and GetEdge are existence checks and report a missing id with ok=false.
//	Every other id-indexed operation returns ErrNotFound (or ErrInvalidEdge for
//	AddEdge endpoints). Failed calls never change the graph.
//
// Concurrency:
//
//	Graph is not synchronized. Serialize access externally when sharing it,
//	e.g. behind a sync.RWMutex as package tool does.
package core
