// Package bfs provides breadth-first search over a knowledge graph,
// returning hop-count distances, parent links, visit order and shortest paths.
//
// What
//
//   - Explore nodes in non-decreasing distance (edge count) from a start node,
//     following outgoing edges only.
//   - BFS returns a Result containing:
//   - Order: dequeue sequence
//   - Depth: map from node → distance (edges) from start
//   - Parent: map from node → its predecessor in the BFS tree
//   - FindPath returns the shortest directed path between two nodes and stops
//     as soon as the goal is discovered.
//   - Hooks: OnEnqueue and OnDequeue observe the traversal.
//   - Honors a MaxDepth limit (d>0) or explicit "no limit" (d==0).
//
// Determinism
//
//	Neighbours are enqueued in out-edge insertion order, so the visit sequence
//	and the chosen path among equally short candidates are reproducible.
//
// Results
//
//	FindPath(g, a, a)   → [a]
//	FindPath(g, a, b)   → [a, ..., b] with the fewest edges
//	FindPath(g, a, z)   → [] (non-nil, no error) when z is unreachable
//	FindPath(g, ?, ...) → ErrNodeNotFound when either id is absent
//
// ErrNodeNotFound wraps core.ErrNotFound, so callers can test for either.
//
// Complexity (V = |Nodes|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V) for queue, Depth map, Parent map and visited set
//
// Usage
//
//	path, err := bfs.FindPath(g, "A", "D")
//	if err != nil {
//		// ErrGraphNil, ErrNodeNotFound or ErrOptionViolation
//	}
//	if len(path) == 0 {
//		// D is not reachable from A
//	}
//
//	res, _ := bfs.BFS(g, "A", bfs.WithMaxDepth(2))
//	for _, id := range res.Order {
//		fmt.Println(id, res.Depth[id])
//	}
package bfs
