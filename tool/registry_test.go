package tool_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/kgraph/core"
	"github.com/katalvlaran/kgraph/tool"
)

// recorder is an Observer that keeps every call.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) ObserveCall(name, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name+":"+outcome)
}

// call invokes name with args marshalled to JSON.
func call(t *testing.T, r *tool.Registry, name string, args any) (any, error) {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)

	return r.Call(context.Background(), name, raw)
}

// mustCall FAILS the test if the call errors.
func mustCall(t *testing.T, r *tool.Registry, name string, args any) any {
	t.Helper()
	res, err := call(t, r, name, args)
	require.NoError(t, err, name)

	return res
}

// newScenario registers A,B,C,D and edges AB, BC, AC, CD through the tools.
func newScenario(t *testing.T, opts ...tool.Option) *tool.Registry {
	t.Helper()
	r := tool.NewRegistry(nil, opts...)
	for _, id := range []string{"A", "B", "C", "D"} {
		mustCall(t, r, tool.ToolAddNode, map[string]any{"id": id, "name": "node " + id})
	}
	for _, e := range [][3]string{{"AB", "A", "B"}, {"BC", "B", "C"}, {"AC", "A", "C"}, {"CD", "C", "D"}} {
		mustCall(t, r, tool.ToolAddEdge, map[string]any{"id": e[0], "start_id": e[1], "end_id": e[2]})
	}

	return r
}

func TestRegistry_BuiltinTable(t *testing.T) {
	r := tool.NewRegistry(nil)
	want := []string{
		tool.ToolAddNode, tool.ToolAddEdge, tool.ToolRemoveNode, tool.ToolRemoveEdge,
		tool.ToolGetNode, tool.ToolGetEdge, tool.ToolGetOutEdges, tool.ToolGetInEdges,
		tool.ToolGetNeighbours, tool.ToolGetOutNeighbours, tool.ToolFindPath,
		tool.ToolListNodes, tool.ToolListEdges, tool.ToolExportGraph, tool.ToolGraphStats,
	}
	assert.Equal(t, want, r.Names())

	for _, tl := range r.Tools() {
		assert.NotEmpty(t, tl.Description, tl.Name)
		var schema map[string]any
		require.NoError(t, json.Unmarshal(tl.InputSchema, &schema), tl.Name)
		assert.Equal(t, "object", schema["type"], tl.Name)
		if tl.Name == tool.ToolAddNode {
			assert.Equal(t, []any{"name"}, schema["required"])
		}
	}

	// definitions serialize without handlers
	raw, err := json.Marshal(r.Tools()[0])
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 3)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "input_schema")
}

func TestRegistry_Register(t *testing.T) {
	r := tool.NewRegistry(nil, tool.WithoutBuiltins())
	assert.Empty(t, r.Names())

	echo := tool.Tool{
		Name: "echo",
		Handler: func(_ context.Context, _ *tool.Graph, args json.RawMessage) (any, error) {
			return string(args), nil
		},
	}
	require.NoError(t, r.Register(echo))
	assert.ErrorIs(t, r.Register(echo), tool.ErrDuplicateTool)
	assert.Error(t, r.Register(tool.Tool{Name: "nohandler"}))

	got, ok := r.Lookup("echo")
	require.True(t, ok)
	assert.JSONEq(t, `{"type":"object","properties":{}}`, string(got.InputSchema))

	res, err := r.Call(context.Background(), "echo", json.RawMessage(`{"x":1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, res)
}

func TestRegistry_UnknownTool(t *testing.T) {
	rec := &recorder{}
	r := tool.NewRegistry(nil, tool.WithObserver(rec))
	_, err := r.Call(context.Background(), "drop_database", nil)
	assert.ErrorIs(t, err, tool.ErrUnknownTool)
	assert.Equal(t, []string{"unknown:unknown_tool"}, rec.calls)
}

func TestRegistry_CanceledContext(t *testing.T) {
	obsCore, logs := observer.New(zap.DebugLevel)
	rec := &recorder{}
	r := tool.NewRegistry(nil, tool.WithLogger(zap.New(obsCore)), tool.WithObserver(rec))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Call(ctx, tool.ToolListNodes, nil)
	assert.ErrorIs(t, err, context.Canceled)

	// a canceled call is still counted and logged
	assert.Equal(t, []string{"list_nodes:error"}, rec.calls)
	entries := logs.FilterField(zap.String("tool", tool.ToolListNodes)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, tool.OutcomeError, entries[0].ContextMap()["outcome"])
}

func TestRegistry_ObserverAndLogging(t *testing.T) {
	obsCore, logs := observer.New(zap.DebugLevel)
	rec := &recorder{}
	r := tool.NewRegistry(nil, tool.WithLogger(zap.New(obsCore)), tool.WithObserver(rec))

	mustCall(t, r, tool.ToolAddNode, map[string]any{"id": "A", "name": "Alice"})
	_, _ = call(t, r, tool.ToolAddNode, map[string]any{"id": "A", "name": "Alice"})
	_, _ = call(t, r, tool.ToolGetNode, map[string]any{"node_id": "Z"})
	_, _ = call(t, r, tool.ToolGetNode, map[string]any{})

	assert.Equal(t, []string{
		"add_node:ok",
		"add_node:conflict",
		"get_node:not_found",
		"get_node:invalid_args",
	}, rec.calls)

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "tool call", entries[0].Message)
	assert.Equal(t, "add_node", entries[0].ContextMap()["tool"])
	assert.Equal(t, "tool call rejected", entries[1].Message)
}

func TestOutcome(t *testing.T) {
	cases := map[string]error{
		tool.OutcomeOK:          nil,
		tool.OutcomeUnknownTool: tool.ErrUnknownTool,
		tool.OutcomeInvalidArgs: tool.ErrInvalidArgs,
		tool.OutcomeNotFound:    core.ErrInvalidEdge,
		tool.OutcomeConflict:    core.ErrDuplicateID,
		tool.OutcomeError:       errors.New("disk on fire"),
	}
	for want, err := range cases {
		assert.Equal(t, want, tool.Outcome(err), "%v", err)
	}
	assert.Equal(t, tool.OutcomeNotFound, tool.Outcome(core.ErrNotFound))
}

func TestRegistry_ConcurrentCalls(t *testing.T) {
	r := newScenario(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := r.Call(context.Background(), tool.ToolFindPath, json.RawMessage(`{"start_id":"A","goal_id":"D"}`))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := r.Call(context.Background(), tool.ToolAddNode, json.RawMessage(`{"name":"x"}`))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats := r.Stats()
	assert.Equal(t, 12, stats.NodeCount)
	assert.Equal(t, 4, stats.EdgeCount)
	require.NoError(t, r.Update(func(g *tool.Graph) error { return g.Validate() }))
}
