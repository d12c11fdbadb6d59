// SPDX-License-Identifier: MIT
// Package core_test contains test helpers for kgraph/core.
//
// Purpose:
//   - Provide small, deterministic fixtures shared by the core tests.
//   - Keep invariant checks in one place (MustValid).

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kgraph/core"
)

// Common node ids used across core tests.
const (
	NodeA = "nodeA"
	NodeB = "nodeB"
	NodeC = "nodeC"
	NodeD = "nodeD"
	NodeE = "nodeE"

	NodeMissing = "nonExistent"
)

// Common edge ids used across core tests.
const (
	EdgeAB = "edgeAB"
	EdgeBC = "edgeBC"
	EdgeAC = "edgeAC"
	EdgeCD = "edgeCD"
)

// Scenario is the four-node fixture A→B, B→C, A→C, C→D.
type Scenario struct {
	G *core.Graph[any]
}

// NewScenario builds the A,B,C,D fixture with edges added in the order
// AB, BC, AC, CD.
func NewScenario(t *testing.T) Scenario {
	t.Helper()

	g := core.NewGraph[any]()
	for _, n := range []core.Node[any]{
		{ID: NodeA, Name: "A"},
		{ID: NodeB, Name: "B"},
		{ID: NodeC, Name: "C"},
		{ID: NodeD, Name: "D"},
	} {
		_, err := g.AddNode(n)
		require.NoError(t, err, "AddNode(%s)", n.ID)
	}
	for _, e := range []core.Edge{
		{ID: EdgeAB, StartID: NodeA, EndID: NodeB},
		{ID: EdgeBC, StartID: NodeB, EndID: NodeC},
		{ID: EdgeAC, StartID: NodeA, EndID: NodeC},
		{ID: EdgeCD, StartID: NodeC, EndID: NodeD},
	} {
		_, err := g.AddEdge(e)
		require.NoError(t, err, "AddEdge(%s)", e.ID)
	}
	MustValid(t, g)

	return Scenario{G: g}
}

// MustValid FAILS the test if any graph invariant is broken.
func MustValid(t *testing.T, g *core.Graph[any]) {
	t.Helper()
	require.NoError(t, g.Validate(), "graph invariants")
}

// EdgeIDs extracts ids preserving order.
func EdgeIDs(edges []core.Edge) []string {
	out := make([]string, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.ID)
	}

	return out
}

// NodeIDs extracts ids preserving order.
func NodeIDs(nodes []core.Node[any]) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}

	return out
}

// MustNode returns the node or FAILS the test.
func MustNode(t *testing.T, g *core.Graph[any], id string) core.Node[any] {
	t.Helper()
	n, ok := g.GetNode(id)
	require.True(t, ok, "GetNode(%s)", id)

	return n
}
