// Package kgraph is an in-memory knowledge graph for LLM agents: entities
// (nodes) joined by directed, labeled relationships (edges), with adjacency
// queries and shortest-path search exposed as callable tools.
//
// What is kgraph?
//
//	A small engine with strict invariants and a thin service shell:
//		• Core primitives: add/remove nodes and edges, cascading deletes, adjacency lists
//		• Traversal: breadth-first shortest path over outgoing edges
//		• Persistence: {nodes, edges} snapshots as JSON or YAML
//		• Agent tools: schema-described JSON tools behind a read-write lock
//		• Service: HTTP adapter, Prometheus metrics, structured logging
//
// Packages:
//
//	core/              Graph, Node, Edge, Snapshot; the only mutator of adjacency state
//	bfs/               BFS traversal and FindPath
//	snapshot/          JSON/YAML file codec for core.Snapshot
//	tool/              tool registry dispatching agent calls to the graph
//	internal/config    defaults, YAML file and KGRAPH_* environment overrides
//	internal/logging   zap logger presets
//	internal/metrics   Prometheus collector for tool, HTTP and graph metrics
//	internal/server    chi HTTP router over a tool registry
//	cmd/kgraph         CLI: serve, path, check, version
//
// Quick ASCII example:
//
//	A ──▶ B
//	│     │
//	▼     ▼
//	C ◀───┘
//	│
//	▼
//	D
//
// FindPath(A, D) is [A C D]; FindPath(D, A) is [] because edges are directed.
//
//	go run ./cmd/kgraph serve --snapshot graph.yaml --save-on-shutdown
package kgraph
