// Package bfs provides breadth-first search over a knowledge graph,
// returning hop-count distances, parent links, visit order and shortest paths.
//
// Traversal follows outgoing edges only.
package bfs

import (
	"fmt"
	"reflect"
)

// queueItem pairs a node id with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   Graph
	opts    Options
	queue   []queueItem
	visited map[string]bool
	res     *Result

	// goal, when set, ends the search as soon as it is discovered.
	goal  string
	found bool
}

// BFS runs breadth-first search on g starting from startID and visits every
// node reachable over outgoing edges.
// Returns ErrGraphNil, ErrNodeNotFound or ErrOptionViolation for invalid input.
func BFS(g Graph, startID string, opts ...Option) (*Result, error) {
	w, err := newWalker(g, startID, opts)
	if err != nil {
		return nil, err
	}
	w.enqueue(startID, 0, "")
	if err := w.loop(); err != nil {
		return nil, err
	}

	return w.res, nil
}

// FindPath returns the shortest directed path [startID, ..., goalID].
//
// Contract:
//   - Unknown startID or goalID: ErrNodeNotFound (also matches core.ErrNotFound).
//   - startID == goalID: [startID].
//   - goalID unreachable: an empty, non-nil slice and no error.
//
// Neighbours are explored in out-edge insertion order, so ties between
// equally short paths resolve to the one whose edges were added first.
// The search stops as soon as goalID is discovered.
// Complexity: O(V + E).
func FindPath(g Graph, startID, goalID string, opts ...Option) ([]string, error) {
	w, err := newWalker(g, startID, opts)
	if err != nil {
		return nil, err
	}
	if !g.HasNode(goalID) {
		return nil, fmt.Errorf("%w: goal %q", ErrNodeNotFound, goalID)
	}
	if startID == goalID {
		return []string{startID}, nil
	}

	w.goal = goalID
	w.enqueue(startID, 0, "")
	if err := w.loop(); err != nil {
		return nil, err
	}
	if !w.found {
		return []string{}, nil
	}

	return w.res.PathTo(goalID)
}

// newWalker validates input and options and allocates search state.
func newWalker(g Graph, startID string, opts []Option) (*walker, error) {
	if isNilGraph(g) {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasNode(startID) {
		return nil, fmt.Errorf("%w: start %q", ErrNodeNotFound, startID)
	}

	return &walker{
		graph:   g,
		opts:    o,
		visited: make(map[string]bool),
		res: &Result{
			Depth:  make(map[string]int),
			Parent: make(map[string]string),
		},
	}, nil
}

// isNilGraph reports a nil interface as well as a nil pointer held by one,
// such as (*core.Graph[C])(nil).
func isNilGraph(g Graph) bool {
	if g == nil {
		return true
	}
	v := reflect.ValueOf(g)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// enqueue marks id visited at depth d, records its parent and adds it to the queue.
func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.opts.OnEnqueue(id, d)
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until it empties or the goal is found.
func (w *walker) loop() error {
	for len(w.queue) > 0 && !w.found {
		item := w.queue[0]
		w.queue = w.queue[1:]
		w.opts.OnDequeue(item.id, item.depth)
		w.res.Order = append(w.res.Order, item.id)

		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}

	return nil
}

// enqueueNeighbors enqueues each unseen out-neighbour of item, honoring MaxDepth.
func (w *walker) enqueueNeighbors(item queueItem) error {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return nil
	}
	neighbors, err := w.graph.OutNeighbours(item.id)
	if err != nil {
		return fmt.Errorf("bfs: neighbours of %q: %w", item.id, err)
	}
	for _, nbr := range neighbors {
		if w.visited[nbr] {
			continue
		}
		w.enqueue(nbr, nextDepth, item.id)
		if w.goal != "" && nbr == w.goal {
			w.found = true
			return nil
		}
	}

	return nil
}
