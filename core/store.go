// File: store.go
// Role: Uniqueness-enforcing keyed catalog used for both nodes and edges.
// Determinism:
//   - ids() and values() enumerate in insertion order.
// Complexity:
//   - get/has/insert O(1); remove amortized O(1).
//   - Removed slots are tombstoned and compacted once they outnumber live ids.

package core

import (
	"fmt"
)

// store keeps values keyed by id and remembers the order of insertion.
// An empty string in order marks a removed slot; ids are never empty.
type store[V any] struct {
	items map[string]V
	pos   map[string]int
	order []string
	dead  int
}

func newStore[V any]() *store[V] {
	return &store[V]{items: make(map[string]V), pos: make(map[string]int)}
}

func (s *store[V]) get(id string) (V, bool) {
	v, ok := s.items[id]
	return v, ok
}

func (s *store[V]) has(id string) bool {
	_, ok := s.items[id]
	return ok
}

// insert registers v under id. The catalog is left untouched on ErrDuplicateID.
func (s *store[V]) insert(id string, v V) error {
	if _, exists := s.items[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	s.items[id] = v
	s.pos[id] = len(s.order)
	s.order = append(s.order, id)

	return nil
}

// remove deletes id and reports whether it was present.
func (s *store[V]) remove(id string) bool {
	if _, exists := s.items[id]; !exists {
		return false
	}
	delete(s.items, id)
	s.order[s.pos[id]] = ""
	delete(s.pos, id)
	s.dead++
	if s.dead > len(s.items) {
		s.compact()
	}

	return true
}

// compact drops tombstones and renumbers positions.
func (s *store[V]) compact() {
	live := make([]string, 0, len(s.items))
	for _, id := range s.order {
		if id != "" {
			s.pos[id] = len(live)
			live = append(live, id)
		}
	}
	s.order = live
	s.dead = 0
}

func (s *store[V]) len() int { return len(s.items) }

func (s *store[V]) ids() []string {
	out := make([]string, 0, len(s.items))
	for _, id := range s.order {
		if id != "" {
			out = append(out, id)
		}
	}

	return out
}

func (s *store[V]) values() []V {
	out := make([]V, 0, len(s.items))
	for _, id := range s.order {
		if id != "" {
			out = append(out, s.items[id])
		}
	}

	return out
}

func (s *store[V]) clear() {
	s.items = make(map[string]V)
	s.pos = make(map[string]int)
	s.order = nil
	s.dead = 0
}
