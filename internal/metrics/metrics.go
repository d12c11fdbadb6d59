// Package metrics exposes Prometheus instrumentation for kgraph.
//
// A Collector owns its own registry, so several can coexist in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/kgraph/core"
)

// Collector holds all Prometheus metrics for the process.
type Collector struct {
	registry *prometheus.Registry

	// Tool metrics
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewCollector creates a Collector whose metric names start with namespace.
// statsFn, when not nil, is read on every scrape to publish graph size gauges.
func NewCollector(namespace string, statsFn func() core.GraphStats) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		ToolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Total number of tool calls by outcome",
			},
			[]string{"tool", "outcome"},
		),
		ToolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_call_duration_seconds",
				Help:      "Tool call duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"tool"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(
		c.ToolCalls,
		c.ToolDuration,
		c.HTTPRequests,
		c.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if statsFn != nil {
		registry.MustRegister(newGraphCollector(namespace, statsFn))
	}

	return c
}

// ObserveCall records one tool call. It satisfies tool.Observer.
func (c *Collector) ObserveCall(tool, outcome string, elapsed time.Duration) {
	c.ToolCalls.WithLabelValues(tool, outcome).Inc()
	c.ToolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// graphCollector publishes graph size gauges from a single Stats call per scrape.
type graphCollector struct {
	statsFn  func() core.GraphStats
	nodes    *prometheus.Desc
	edges    *prometheus.Desc
	loops    *prometheus.Desc
	isolated *prometheus.Desc
}

func newGraphCollector(namespace string, statsFn func() core.GraphStats) *graphCollector {
	name := func(n string) string { return prometheus.BuildFQName(namespace, "graph", n) }

	return &graphCollector{
		statsFn:  statsFn,
		nodes:    prometheus.NewDesc(name("nodes"), "Number of nodes in the graph", nil, nil),
		edges:    prometheus.NewDesc(name("edges"), "Number of edges in the graph", nil, nil),
		loops:    prometheus.NewDesc(name("self_loops"), "Number of self-loop edges", nil, nil),
		isolated: prometheus.NewDesc(name("isolated_nodes"), "Number of nodes without edges", nil, nil),
	}
}

func (g *graphCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- g.nodes
	ch <- g.edges
	ch <- g.loops
	ch <- g.isolated
}

func (g *graphCollector) Collect(ch chan<- prometheus.Metric) {
	s := g.statsFn()
	ch <- prometheus.MustNewConstMetric(g.nodes, prometheus.GaugeValue, float64(s.NodeCount))
	ch <- prometheus.MustNewConstMetric(g.edges, prometheus.GaugeValue, float64(s.EdgeCount))
	ch <- prometheus.MustNewConstMetric(g.loops, prometheus.GaugeValue, float64(s.SelfLoopCount))
	ch <- prometheus.MustNewConstMetric(g.isolated, prometheus.GaugeValue, float64(s.IsolatedCount))
}
