// Package tool exposes knowledge-graph operations as named, schema-described
// tools that an agent can call with JSON arguments.
//
// A Registry owns one graph and an explicit table of tools built by
// NewRegistry. Calls are serialized with a read-write lock: query tools share
// the read lock, mutating tools take the write lock. Every call is logged and
// reported to an optional Observer.
package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/katalvlaran/kgraph/core"
)

// Sentinel errors for tool dispatch.
var (
	// ErrUnknownTool is returned by Call for a name that is not registered.
	ErrUnknownTool = errors.New("tool: unknown tool")

	// ErrInvalidArgs is returned when arguments fail to decode or validate.
	ErrInvalidArgs = errors.New("tool: invalid arguments")

	// ErrDuplicateTool is returned by Register for a name already in use.
	ErrDuplicateTool = errors.New("tool: duplicate tool name")
)

// Call outcomes reported to the Observer.
const (
	OutcomeOK          = "ok"
	OutcomeUnknownTool = "unknown_tool"
	OutcomeInvalidArgs = "invalid_args"
	OutcomeNotFound    = "not_found"
	OutcomeConflict    = "conflict"
	OutcomeError       = "error"
)

// Graph is the graph type the tools operate on. Content is free-form JSON.
type Graph = core.Graph[any]

// Handler executes one tool call. The registry holds the matching lock while
// the handler runs; handlers must not retain g.
type Handler func(ctx context.Context, g *Graph, args json.RawMessage) (any, error)

// Tool is a callable capability with a JSON schema for its arguments.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`

	// Mutates selects the write lock.
	Mutates bool    `json:"-"`
	Handler Handler `json:"-"`
}

// Observer receives one notification per completed call.
type Observer interface {
	ObserveCall(tool, outcome string, elapsed time.Duration)
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for call logging. Nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithObserver sets the call observer. Nil is ignored.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithoutBuiltins creates an empty registry; tools are added with Register.
func WithoutBuiltins() Option {
	return func(r *Registry) { r.skipBuiltins = true }
}

// Registry dispatches tool calls against a single graph.
type Registry struct {
	graphMu sync.RWMutex
	graph   *Graph

	toolsMu sync.RWMutex
	tools   map[string]Tool
	order   []string

	validate     *validator.Validate
	log          *zap.Logger
	observer     Observer
	skipBuiltins bool
}

// NewRegistry wraps g and registers the built-in graph tools.
// A nil g is replaced by an empty graph.
func NewRegistry(g *Graph, opts ...Option) *Registry {
	if g == nil {
		g = core.NewGraph[any]()
	}
	r := &Registry{
		graph:    g,
		tools:    make(map[string]Tool),
		validate: newValidator(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if !r.skipBuiltins {
		for _, t := range r.builtins() {
			// builtin names are unique
			_ = r.Register(t)
		}
	}

	return r
}

// Register adds t to the table. Names must be unique and non-empty and the
// handler must be set.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" || t.Handler == nil {
		return fmt.Errorf("tool: register %q: name and handler are required", t.Name)
	}
	if len(t.InputSchema) == 0 {
		t.InputSchema = json.RawMessage(`{"type":"object","properties":{}}`)
	}

	r.toolsMu.Lock()
	defer r.toolsMu.Unlock()
	if _, dup := r.tools[t.Name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateTool, t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)

	return nil
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	r.toolsMu.RLock()
	defer r.toolsMu.RUnlock()

	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}

	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.toolsMu.RLock()
	defer r.toolsMu.RUnlock()

	return slices.Clone(r.order)
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.toolsMu.RLock()
	defer r.toolsMu.RUnlock()
	t, ok := r.tools[name]

	return t, ok
}

// Call runs the named tool with JSON args and returns its plain-data result.
//
// Errors:
//   - ErrUnknownTool: name is not registered.
//   - ErrInvalidArgs: args do not decode or validate.
//   - core.ErrNotFound, core.ErrDuplicateID, core.ErrInvalidEdge from the graph.
//   - ctx.Err() when ctx is already done.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	t, ok := r.Lookup(name)
	if !ok {
		// unknown names share one label to bound metric cardinality
		r.finish("unknown", time.Now(), ErrUnknownTool)
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	start := time.Now()
	if err := ctx.Err(); err != nil {
		r.finish(name, start, err)
		return nil, err
	}

	var (
		res any
		err error
	)
	if t.Mutates {
		r.graphMu.Lock()
		res, err = t.Handler(ctx, r.graph, args)
		r.graphMu.Unlock()
	} else {
		r.graphMu.RLock()
		res, err = t.Handler(ctx, r.graph, args)
		r.graphMu.RUnlock()
	}
	r.finish(name, start, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return res, nil
}

// View runs fn under the read lock. fn must not retain g.
func (r *Registry) View(fn func(g *Graph)) {
	r.graphMu.RLock()
	defer r.graphMu.RUnlock()
	fn(r.graph)
}

// Update runs fn under the write lock. fn must not retain g.
func (r *Registry) Update(fn func(g *Graph) error) error {
	r.graphMu.Lock()
	defer r.graphMu.Unlock()

	return fn(r.graph)
}

// Stats returns a consistent summary of the graph.
func (r *Registry) Stats() core.GraphStats {
	var s core.GraphStats
	r.View(func(g *Graph) { s = g.Stats() })

	return s
}

// Snapshot exports the graph under the read lock.
func (r *Registry) Snapshot() core.Snapshot[any] {
	var s core.Snapshot[any]
	r.View(func(g *Graph) { s = g.Export() })

	return s
}

// finish logs the call and notifies the observer.
func (r *Registry) finish(name string, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := Outcome(err)
	if r.observer != nil {
		r.observer.ObserveCall(name, outcome, elapsed)
	}

	fields := []zap.Field{
		zap.String("tool", name),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	}
	switch outcome {
	case OutcomeOK:
		r.log.Debug("tool call", fields...)
	case OutcomeError:
		r.log.Error("tool call failed", append(fields, zap.Error(err))...)
	default:
		r.log.Info("tool call rejected", append(fields, zap.Error(err))...)
	}
}

// Outcome classifies a call error into one of the Outcome* labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrUnknownTool):
		return OutcomeUnknownTool
	case errors.Is(err, ErrInvalidArgs):
		return OutcomeInvalidArgs
	case errors.Is(err, core.ErrInvalidEdge), errors.Is(err, core.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, core.ErrDuplicateID):
		return OutcomeConflict
	default:
		return OutcomeError
	}
}
