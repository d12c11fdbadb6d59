// Package core defines the central Graph, Node, and Edge types of the
// knowledge-graph engine and the sentinel errors returned by its operations.
//
// Nodes and Edges never hold references to each other. Edges name their
// endpoints by id and nodes list incident edge ids; the Graph is the single
// arena that resolves ids to records.
//
// Errors:
//
//	ErrNotFound     - referenced node or edge id is absent.
//	ErrDuplicateID  - node or edge id is already in use.
//	ErrInvalidEdge  - edge endpoint does not exist (also matches ErrNotFound).
//	ErrCorrupted    - a structural invariant does not hold.
package core

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for core graph operations.
var (
	// ErrNotFound indicates an operation referenced a non-existent node or edge.
	ErrNotFound = errors.New("core: not found")

	// ErrDuplicateID indicates the node or edge id is already registered.
	ErrDuplicateID = errors.New("core: duplicate id")

	// ErrInvalidEdge indicates an edge names an endpoint that is not in the graph.
	// errors.Is(err, ErrNotFound) holds for every ErrInvalidEdge.
	ErrInvalidEdge = fmt.Errorf("core: invalid edge: %w", ErrNotFound)

	// ErrCorrupted indicates that Validate found a broken invariant
	// or that a snapshot cannot describe a consistent graph.
	ErrCorrupted = errors.New("core: graph invariant violated")
)

// Node is an entity record.
//
// InEdges and OutEdges are maintained by the Graph and list incident edge ids
// in arrival / departure order. Values handed out by the Graph are copies;
// editing them never changes the graph.
type Node[C any] struct {
	// ID uniquely identifies this Node within its Graph.
	ID string `json:"id" yaml:"id"`

	// Name is the human label of the entity.
	Name string `json:"name" yaml:"name"`

	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Content is an opaque payload owned by the embedding application.
	Content C `json:"content,omitempty" yaml:"content,omitempty"`

	// InEdges lists ids of edges ending at this node.
	InEdges []string `json:"in_edges" yaml:"in_edges"`

	// OutEdges lists ids of edges starting at this node.
	OutEdges []string `json:"out_edges" yaml:"out_edges"`
}

// Edge is a directed relationship StartID → EndID.
type Edge struct {
	// ID uniquely identifies this Edge within its Graph.
	ID string `json:"id" yaml:"id"`

	// StartID is the source node id.
	StartID string `json:"start_id" yaml:"start_id"`

	// EndID is the destination node id.
	EndID string `json:"end_id" yaml:"end_id"`

	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// IsSelfLoop reports whether the edge starts and ends at the same node.
func (e Edge) IsSelfLoop() bool { return e.StartID == e.EndID }

// GraphOption configures a Graph before creation.
type GraphOption func(c *graphConfig)

type graphConfig struct {
	newID func() string
}

// WithIDGenerator replaces the id generator used when AddNode or AddEdge
// receive a record with an empty id. A nil fn is ignored.
func WithIDGenerator(fn func() string) GraphOption {
	return func(c *graphConfig) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewID returns a random 8-character hex identifier.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:4])
}

// Graph is the in-memory knowledge graph.
//
// Graph is not safe for concurrent use. Callers sharing a Graph between
// goroutines must serialize access (see package tool for a locked wrapper).
type Graph[C any] struct {
	nodes *store[*Node[C]]
	edges *store[*Edge]
	newID func() string
}

// NewGraph creates an empty Graph.
// Complexity: O(1)
func NewGraph[C any](opts ...GraphOption) *Graph[C] {
	cfg := graphConfig{newID: NewID}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Graph[C]{
		nodes: newStore[*Node[C]](),
		edges: newStore[*Edge](),
		newID: cfg.newID,
	}
}

// copy returns a detached value of n with fresh adjacency slices.
func (n *Node[C]) copy() Node[C] {
	out := *n
	out.InEdges = append([]string{}, n.InEdges...)
	out.OutEdges = append([]string{}, n.OutEdges...)

	return out
}
