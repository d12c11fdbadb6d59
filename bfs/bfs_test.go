package bfs_test

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/katalvlaran/kgraph/bfs"
	"github.com/katalvlaran/kgraph/core"
)

// buildGraph creates the given nodes first, then one edge per "from>to" pair,
// in argument order.
func buildGraph(t testing.TB, nodes []string, edges ...string) *core.Graph[any] {
	t.Helper()
	g := core.NewGraph[any]()
	for _, id := range nodes {
		if _, err := g.AddNode(core.Node[any]{ID: id, Name: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, pair := range edges {
		from, to, ok := strings.Cut(pair, ">")
		if !ok {
			t.Fatalf("malformed edge %q", pair)
		}
		if _, err := g.AddEdge(core.Edge{StartID: from, EndID: to}); err != nil {
			t.Fatalf("AddEdge(%s): %v", pair, err)
		}
	}

	return g
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	// nil graph
	if _, err := bfs.BFS(nil, "A"); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
	// start node not found
	g := buildGraph(t, []string{"A"})
	_, err := bfs.BFS(g, "missing")
	if !errors.Is(err, bfs.ErrNodeNotFound) {
		t.Errorf("missing start: want ErrNodeNotFound, got %v", err)
	}
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("missing start: want core.ErrNotFound in chain, got %v", err)
	}
	// negative MaxDepth is a violation
	if _, err := bfs.BFS(g, "A", bfs.WithMaxDepth(-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
}

// TestFindPath_Scenario covers the four-node knowledge graph A→B, B→C, A→C, C→D.
func TestFindPath_Scenario(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C", "D"}, "A>B", "B>C", "A>C", "C>D")

	path, err := bfs.FindPath(g, "A", "D")
	if err != nil {
		t.Fatalf("FindPath(A,D): %v", err)
	}
	if want := []string{"A", "C", "D"}; !reflect.DeepEqual(path, want) {
		t.Errorf("FindPath(A,D) = %v; want %v", path, want)
	}

	// edges are directed: D has no way back
	back, err := bfs.FindPath(g, "D", "A")
	if err != nil {
		t.Fatalf("FindPath(D,A): %v", err)
	}
	if back == nil || len(back) != 0 {
		t.Errorf("FindPath(D,A) = %#v; want empty non-nil slice", back)
	}
}

// TestFindPath_Branching checks tie-breaking by out-edge insertion order.
func TestFindPath_Branching(t *testing.T) {
	g := buildGraph(t,
		[]string{"A", "B", "C", "D", "E", "F"},
		"A>B", "A>C", "B>D", "C>D", "C>E", "D>F",
	)

	tests := []struct {
		from, to string
		want     []string
	}{
		{"A", "F", []string{"A", "B", "D", "F"}},
		{"A", "E", []string{"A", "C", "E"}},
		{"A", "D", []string{"A", "B", "D"}},
		{"B", "F", []string{"B", "D", "F"}},
		{"F", "A", []string{}},
		{"E", "E", []string{"E"}},
	}
	for _, tc := range tests {
		t.Run(tc.from+"_"+tc.to, func(t *testing.T) {
			got, err := bfs.FindPath(g, tc.from, tc.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v; want %v", got, tc.want)
			}
		})
	}
}

// TestFindPath_SameNode returns the single-element path without exploring.
func TestFindPath_SameNode(t *testing.T) {
	g := buildGraph(t, []string{"X"})
	var dequeued int
	path, err := bfs.FindPath(g, "X", "X", bfs.WithOnDequeue(func(string, int) { dequeued++ }))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"X"}; !reflect.DeepEqual(path, want) {
		t.Errorf("FindPath(X,X) = %v; want %v", path, want)
	}
	if dequeued != 0 {
		t.Errorf("dequeued %d nodes; want 0", dequeued)
	}
}

// TestFindPath_UnknownIDs reports NotFound for either endpoint.
func TestFindPath_UnknownIDs(t *testing.T) {
	g := buildGraph(t, []string{"A"})
	cases := [][2]string{{"missing", "A"}, {"A", "missing"}, {"missing", "missing"}}
	for _, c := range cases {
		_, err := bfs.FindPath(g, c[0], c[1])
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("FindPath(%s,%s): want core.ErrNotFound, got %v", c[0], c[1], err)
		}
		if !errors.Is(err, bfs.ErrNodeNotFound) {
			t.Errorf("FindPath(%s,%s): want ErrNodeNotFound, got %v", c[0], c[1], err)
		}
	}
	if _, err := bfs.FindPath(nil, "A", "A"); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
}

// TestNilGraphPointer checks that a nil *core.Graph behind the interface is
// reported as ErrGraphNil instead of being dereferenced.
func TestNilGraphPointer(t *testing.T) {
	var g *core.Graph[any]
	if _, err := bfs.FindPath(g, "a", "b"); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("FindPath: want ErrGraphNil, got %v", err)
	}
	if _, err := bfs.BFS(g, "a"); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("BFS: want ErrGraphNil, got %v", err)
	}
}

// TestFindPath_StopsAtDiscovery ensures nodes beyond the goal's layer are never dequeued.
func TestFindPath_StopsAtDiscovery(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C", "D"}, "A>B", "A>C", "C>D")
	var order []string
	path, err := bfs.FindPath(g, "A", "B", bfs.WithOnDequeue(func(id string, _ int) {
		order = append(order, id)
	}))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v; want %v", path, want)
	}
	if want := []string{"A"}; !reflect.DeepEqual(order, want) {
		t.Errorf("dequeued = %v; want %v", order, want)
	}
}

// TestFindPath_MaxDepth treats goals beyond the limit as unreachable.
func TestFindPath_MaxDepth(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, "A>B", "B>C")
	path, err := bfs.FindPath(g, "A", "C", bfs.WithMaxDepth(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 0 {
		t.Errorf("MaxDepth=1: got %v; want []", path)
	}
	path, err = bfs.FindPath(g, "A", "C", bfs.WithMaxDepth(2))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(path, want) {
		t.Errorf("MaxDepth=2: got %v; want %v", path, want)
	}
}

// TestBFS_SimpleTraversal covers the trivial one-node graph.
func TestBFS_SimpleTraversal(t *testing.T) {
	g := buildGraph(t, []string{"A"})
	res, err := bfs.BFS(g, "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"A"}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
	if d := res.Depth["A"]; d != 0 {
		t.Errorf("Depth[A] = %d; want 0", d)
	}
	if _, ok := res.Parent["A"]; ok {
		t.Errorf("start must have no parent")
	}
}

// TestCycleAndDepths covers a directed cycle and checks depths.
func TestCycleAndDepths(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C", "D"}, "A>B", "B>C", "C>D", "D>A")

	res, err := bfs.BFS(g, "A")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"A", "B", "C", "D"}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
	for id, want := range map[string]int{"A": 0, "B": 1, "C": 2, "D": 3} {
		if got := res.Depth[id]; got != want {
			t.Errorf("Depth[%s] = %d; want %d", id, got, want)
		}
	}
	if got := res.Parent["D"]; got != "C" {
		t.Errorf("Parent[D] = %q; want C", got)
	}
}

// TestBFS_Directed ensures BFS never walks an edge backwards.
func TestBFS_Directed(t *testing.T) {
	g := buildGraph(t, []string{"X", "Y", "P"}, "X>Y", "P>X")

	resX, _ := bfs.BFS(g, "X")
	if !reflect.DeepEqual(resX.Order, []string{"X", "Y"}) {
		t.Errorf("From X: got %v; want [X Y]", resX.Order)
	}
	resY, _ := bfs.BFS(g, "Y")
	if !reflect.DeepEqual(resY.Order, []string{"Y"}) {
		t.Errorf("From Y: got %v; want [Y]", resY.Order)
	}
	resP, _ := bfs.BFS(g, "P")
	if !reflect.DeepEqual(resP.Order, []string{"P", "X", "Y"}) {
		t.Errorf("From P: got %v; want [P X Y]", resP.Order)
	}
}

// TestBFS_MaxDepth verifies WithMaxDepth behavior for positive, zero (no limit), and large depths.
func TestBFS_MaxDepth(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, "A>B", "B>C")
	// depth = 1 should only visit A,B
	if res, _ := bfs.BFS(g, "A", bfs.WithMaxDepth(1)); !reflect.DeepEqual(res.Order, []string{"A", "B"}) {
		t.Errorf("MaxDepth=1: got %v; want [A B]", res.Order)
	}
	// depth = 0 => explicit no limit => visits all
	if res, _ := bfs.BFS(g, "A", bfs.WithMaxDepth(0)); !reflect.DeepEqual(res.Order, []string{"A", "B", "C"}) {
		t.Errorf("MaxDepth=0: got %v; want [A B C]", res.Order)
	}
	// depth > graph size => same full traversal
	if res, _ := bfs.BFS(g, "A", bfs.WithMaxDepth(10)); !reflect.DeepEqual(res.Order, []string{"A", "B", "C"}) {
		t.Errorf("MaxDepth=10: got %v; want [A B C]", res.Order)
	}
}

// TestBFS_SelfLoopAndParallelDedup ensures that loops and parallel edges do not enqueue twice.
func TestBFS_SelfLoopAndParallelDedup(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, "A>A", "A>B", "A>B")
	res, _ := bfs.BFS(g, "A")
	if want := []string{"A", "B"}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("SelfLoop/Parallel: got %v; want %v", res.Order, want)
	}
}

// TestBFS_Hooks asserts that hooks fire in the expected sequence and count.
func TestBFS_Hooks(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, "A>B", "B>C")

	var enq, deq []string
	makeEntry := func(prefix, id string, d int) string {
		return prefix + ":" + id + "@" + strconv.Itoa(d)
	}

	_, err := bfs.BFS(
		g, "A",
		bfs.WithOnEnqueue(func(id string, d int) { enq = append(enq, makeEntry("e", id, d)) }),
		bfs.WithOnDequeue(func(id string, d int) { deq = append(deq, makeEntry("d", id, d)) }),
	)
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"e:A@0", "e:B@1", "e:C@2"}; !reflect.DeepEqual(enq, want) {
		t.Errorf("OnEnqueue = %v; want %v", enq, want)
	}
	if want := []string{"d:A@0", "d:B@1", "d:C@2"}; !reflect.DeepEqual(deq, want) {
		t.Errorf("OnDequeue = %v; want %v", deq, want)
	}
}

// TestBFS_PathTo covers trivial (start→start), multi-hop and unreachable targets.
func TestBFS_PathTo(t *testing.T) {
	g := buildGraph(t, []string{"X", "Y", "Z", "W"}, "X>Y", "Y>Z")
	res, err := bfs.BFS(g, "X")
	if err != nil {
		t.Fatal(err)
	}
	if path, _ := res.PathTo("X"); !reflect.DeepEqual(path, []string{"X"}) {
		t.Errorf("PathTo start: got %v; want [X]", path)
	}
	if path, _ := res.PathTo("Z"); !reflect.DeepEqual(path, []string{"X", "Y", "Z"}) {
		t.Errorf("PathTo Z: got %v; want [X Y Z]", path)
	}
	if _, err := res.PathTo("W"); !errors.Is(err, bfs.ErrUnreachable) {
		t.Errorf("PathTo unreachable: want ErrUnreachable, got %v", err)
	}
}

// failingGraph reports an error for neighbour queries of one node.
type failingGraph struct {
	*core.Graph[any]
	bad string
}

func (f failingGraph) OutNeighbours(id string) ([]string, error) {
	if id == f.bad {
		return nil, fmt.Errorf("boom")
	}

	return f.Graph.OutNeighbours(id)
}

// TestBFS_NeighbourError propagates errors from the graph view.
func TestBFS_NeighbourError(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, "A>B")
	_, err := bfs.BFS(failingGraph{Graph: g, bad: "B"}, "A")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("want wrapped neighbour error, got %v", err)
	}
}

// TestBFS_ConcurrentSafety ensures two concurrent read-only runs on the same graph do not interfere.
func TestBFS_ConcurrentSafety(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, "A>B")
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { _, err := bfs.FindPath(g, "A", "B"); errs <- err }()
	}
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Errorf("Concurrent run #%d: unexpected error %v", i, err)
		}
	}
}
