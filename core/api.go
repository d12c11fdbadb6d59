// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only summary of a Graph for diagnostics and admission checks.
// Policy:
//   - No mutation, no hidden state.

package core

// GraphStats is a point-in-time summary of a Graph.
type GraphStats struct {
	NodeCount     int `json:"node_count"`
	EdgeCount     int `json:"edge_count"`
	SelfLoopCount int `json:"self_loop_count"`
	// IsolatedCount counts nodes with no incident edge.
	IsolatedCount int `json:"isolated_count"`
}

// Stats scans the catalogs once and returns their summary.
//
// Complexity:
//   - Time O(V+E), Space O(1) plus the returned struct.
//
// AI-Hints:
//   - Cheap enough for metrics scrapes on agent-sized graphs.
func (g *Graph[C]) Stats() GraphStats {
	stats := GraphStats{
		NodeCount: g.nodes.len(),
		EdgeCount: g.edges.len(),
	}
	for _, e := range g.edges.values() {
		if e.IsSelfLoop() {
			stats.SelfLoopCount++
		}
	}
	for _, n := range g.nodes.values() {
		if len(n.InEdges) == 0 && len(n.OutEdges) == 0 {
			stats.IsolatedCount++
		}
	}

	return stats
}
