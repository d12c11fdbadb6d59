package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/kgraph/bfs"
	"github.com/katalvlaran/kgraph/core"
)

// Built-in tool names.
const (
	ToolAddNode          = "add_node"
	ToolAddEdge          = "add_edge"
	ToolRemoveNode       = "remove_node"
	ToolRemoveEdge       = "remove_edge"
	ToolGetNode          = "get_node"
	ToolGetEdge          = "get_edge"
	ToolGetOutEdges      = "get_out_edges"
	ToolGetInEdges       = "get_in_edges"
	ToolGetNeighbours    = "get_neighbours"
	ToolGetOutNeighbours = "get_out_neighbours"
	ToolFindPath         = "find_path"
	ToolListNodes        = "list_nodes"
	ToolListEdges        = "list_edges"
	ToolExportGraph      = "export_graph"
	ToolGraphStats       = "graph_stats"
)

// IDResult reports the id of a created node or edge.
type IDResult struct {
	ID string `json:"id"`
}

// RemovedResult confirms a deletion.
type RemovedResult struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

// NodesResult is a page of nodes. Total counts all nodes of the query.
type NodesResult struct {
	Nodes []core.Node[any] `json:"nodes"`
	Total int              `json:"total"`
}

// EdgesResult is a page of edges. Total counts all edges of the query.
type EdgesResult struct {
	Edges []core.Edge `json:"edges"`
	Total int         `json:"total"`
}

// NodeIDsResult lists node ids.
type NodeIDsResult struct {
	NodeIDs []string `json:"node_ids"`
}

// PathResult is the answer of find_path. Path is empty when Found is false.
type PathResult struct {
	Path  []string `json:"path"`
	Found bool     `json:"found"`
}

var (
	propNodeID = map[string]any{"type": "string", "description": "Id of an existing node."}
	propEdgeID = map[string]any{"type": "string", "description": "Id of an existing edge."}
	propPage   = map[string]any{
		"offset": map[string]any{"type": "integer", "minimum": 0, "default": 0, "description": "Number of records to skip."},
		"limit":  map[string]any{"type": "integer", "minimum": 0, "maximum": 10000, "default": 0, "description": "Maximum records to return. 0 returns all."},
	}
)

// propString describes a string argument.
func propString(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

// objectSchema marshals a JSON object schema with the given properties.
func objectSchema(props map[string]any, required ...string) json.RawMessage {
	if required == nil {
		required = []string{}
	}
	schema := map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
	// schemas are built from static maps and always marshal
	b, _ := json.Marshal(schema)

	return b
}

// builtins returns the graph tool table in registration order.
func (r *Registry) builtins() []Tool {
	return []Tool{
		r.addNodeTool(),
		r.addEdgeTool(),
		r.removeNodeTool(),
		r.removeEdgeTool(),
		r.getNodeTool(),
		r.getEdgeTool(),
		r.adjacentEdgesTool(ToolGetOutEdges, "List the edges leaving a node, in the order they were added.", (*Graph).OutEdges),
		r.adjacentEdgesTool(ToolGetInEdges, "List the edges arriving at a node, in the order they were added.", (*Graph).InEdges),
		r.getNeighboursTool(),
		r.getOutNeighboursTool(),
		r.findPathTool(),
		r.listNodesTool(),
		r.listEdgesTool(),
		r.exportGraphTool(),
		r.graphStatsTool(),
	}
}

func (r *Registry) addNodeTool() Tool {
	return Tool{
		Name: ToolAddNode,
		Description: `Create an entity node. Returns its id.
Omit id to have one generated. Fails if the id is already used.

Examples:
- add_node(name="PostgreSQL", title="Primary database")
- add_node(id="alice", name="Alice", content={"role": "admin"})`,
		InputSchema: objectSchema(map[string]any{
			"id":          propString("Optional unique node id."),
			"name":        propString("Human label of the entity. Required."),
			"title":       propString("Optional title."),
			"description": propString("Optional free text."),
			"content": map[string]any{
				"description": "Optional arbitrary JSON payload.",
			},
		}, "name"),
		Mutates: true,
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a addNodeArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			id, err := g.AddNode(core.Node[any]{
				ID:          a.ID,
				Name:        a.Name,
				Title:       a.Title,
				Description: a.Description,
				Content:     a.Content,
			})
			if err != nil {
				return nil, err
			}

			return IDResult{ID: id}, nil
		},
	}
}

func (r *Registry) addEdgeTool() Tool {
	return Tool{
		Name: ToolAddEdge,
		Description: `Create a directed relationship start_id → end_id between two existing nodes. Returns its id.
Self-loops are allowed. Fails if either node is missing or the id is already used.

Examples:
- add_edge(start_id="alice", end_id="bob", title="knows")`,
		InputSchema: objectSchema(map[string]any{
			"id":          propString("Optional unique edge id."),
			"start_id":    propString("Id of the source node."),
			"end_id":      propString("Id of the target node."),
			"title":       propString("Optional relationship label."),
			"description": propString("Optional free text."),
		}, "start_id", "end_id"),
		Mutates: true,
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a addEdgeArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			id, err := g.AddEdge(core.Edge{
				ID:          a.ID,
				StartID:     a.StartID,
				EndID:       a.EndID,
				Title:       a.Title,
				Description: a.Description,
			})
			if err != nil {
				return nil, err
			}

			return IDResult{ID: id}, nil
		},
	}
}

func (r *Registry) removeNodeTool() Tool {
	return Tool{
		Name:        ToolRemoveNode,
		Description: "Delete a node together with every edge that starts or ends at it.",
		InputSchema: objectSchema(map[string]any{"node_id": propNodeID}, "node_id"),
		Mutates:     true,
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a nodeIDArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			if err := g.RemoveNode(a.NodeID); err != nil {
				return nil, err
			}

			return RemovedResult{ID: a.NodeID, Removed: true}, nil
		},
	}
}

func (r *Registry) removeEdgeTool() Tool {
	return Tool{
		Name:        ToolRemoveEdge,
		Description: "Delete a single edge. Its endpoint nodes are kept.",
		InputSchema: objectSchema(map[string]any{"edge_id": propEdgeID}, "edge_id"),
		Mutates:     true,
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a edgeIDArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			if err := g.RemoveEdge(a.EdgeID); err != nil {
				return nil, err
			}

			return RemovedResult{ID: a.EdgeID, Removed: true}, nil
		},
	}
}

func (r *Registry) getNodeTool() Tool {
	return Tool{
		Name:        ToolGetNode,
		Description: "Fetch one node with its incoming and outgoing edge ids.",
		InputSchema: objectSchema(map[string]any{"node_id": propNodeID}, "node_id"),
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a nodeIDArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			n, ok := g.GetNode(a.NodeID)
			if !ok {
				return nil, fmt.Errorf("%w: node %q", core.ErrNotFound, a.NodeID)
			}

			return n, nil
		},
	}
}

func (r *Registry) getEdgeTool() Tool {
	return Tool{
		Name:        ToolGetEdge,
		Description: "Fetch one edge.",
		InputSchema: objectSchema(map[string]any{"edge_id": propEdgeID}, "edge_id"),
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a edgeIDArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			e, ok := g.GetEdge(a.EdgeID)
			if !ok {
				return nil, fmt.Errorf("%w: edge %q", core.ErrNotFound, a.EdgeID)
			}

			return e, nil
		},
	}
}

// adjacentEdgesTool builds get_out_edges and get_in_edges.
func (r *Registry) adjacentEdgesTool(name, desc string, list func(*Graph, string) ([]core.Edge, error)) Tool {
	return Tool{
		Name:        name,
		Description: desc,
		InputSchema: objectSchema(map[string]any{"node_id": propNodeID}, "node_id"),
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a nodeIDArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			edges, err := list(g, a.NodeID)
			if err != nil {
				return nil, err
			}

			return EdgesResult{Edges: edges, Total: len(edges)}, nil
		},
	}
}

func (r *Registry) getNeighboursTool() Tool {
	return Tool{
		Name:        ToolGetNeighbours,
		Description: "List the distinct nodes connected to a node by an edge in either direction, excluding the node itself.",
		InputSchema: objectSchema(map[string]any{"node_id": propNodeID}, "node_id"),
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a nodeIDArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			nodes, err := g.Neighbours(a.NodeID)
			if err != nil {
				return nil, err
			}

			return NodesResult{Nodes: nodes, Total: len(nodes)}, nil
		},
	}
}

func (r *Registry) getOutNeighboursTool() Tool {
	return Tool{
		Name: ToolGetOutNeighbours,
		Description: `List the distinct node ids touched by the outgoing edges of a node.
Both endpoints of each edge are included, so the node itself appears whenever it has an outgoing edge.`,
		InputSchema: objectSchema(map[string]any{"node_id": propNodeID}, "node_id"),
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a nodeIDArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			ids, err := g.OutNeighbours(a.NodeID)
			if err != nil {
				return nil, err
			}

			return NodeIDsResult{NodeIDs: ids}, nil
		},
	}
}

func (r *Registry) findPathTool() Tool {
	return Tool{
		Name: ToolFindPath,
		Description: `Find the shortest chain of relationships from start_id to goal_id following edge direction.
Returns found=false and an empty path when goal_id cannot be reached.

Examples:
- find_path(start_id="alice", goal_id="postgres")
- find_path(start_id="alice", goal_id="postgres", max_depth=3)`,
		InputSchema: objectSchema(map[string]any{
			"start_id": propString("Id of the node to start from."),
			"goal_id":  propString("Id of the node to reach."),
			"max_depth": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"default":     0,
				"description": "Maximum number of edges in the path. 0 means unlimited.",
			},
		}, "start_id", "goal_id"),
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a findPathArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			path, err := bfs.FindPath(g, a.StartID, a.GoalID, bfs.WithMaxDepth(a.MaxDepth))
			if err != nil {
				return nil, err
			}

			return PathResult{Path: path, Found: len(path) > 0}, nil
		},
	}
}

func (r *Registry) listNodesTool() Tool {
	return Tool{
		Name:        ToolListNodes,
		Description: "List nodes in creation order, optionally paginated.",
		InputSchema: objectSchema(propPage),
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a listArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			all := g.Nodes()

			return NodesResult{Nodes: page(all, a.Offset, a.Limit), Total: len(all)}, nil
		},
	}
}

func (r *Registry) listEdgesTool() Tool {
	return Tool{
		Name:        ToolListEdges,
		Description: "List edges in creation order, optionally paginated.",
		InputSchema: objectSchema(propPage),
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			var a listArgs
			if err := decodeArgs(r.validate, raw, &a); err != nil {
				return nil, err
			}
			all := g.Edges()

			return EdgesResult{Edges: page(all, a.Offset, a.Limit), Total: len(all)}, nil
		},
	}
}

func (r *Registry) exportGraphTool() Tool {
	return Tool{
		Name:        ToolExportGraph,
		Description: "Export the whole graph as {nodes, edges} records.",
		InputSchema: objectSchema(map[string]any{}),
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			if err := decodeArgs(r.validate, raw, &struct{}{}); err != nil {
				return nil, err
			}

			return g.Export(), nil
		},
	}
}

func (r *Registry) graphStatsTool() Tool {
	return Tool{
		Name:        ToolGraphStats,
		Description: "Count nodes, edges, self-loops and isolated nodes.",
		InputSchema: objectSchema(map[string]any{}),
		Handler: func(_ context.Context, g *Graph, raw json.RawMessage) (any, error) {
			if err := decodeArgs(r.validate, raw, &struct{}{}); err != nil {
				return nil, err
			}

			return g.Stats(), nil
		},
	}
}

// page returns items[offset:offset+limit] clamped to bounds. limit 0 means no limit.
func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}
