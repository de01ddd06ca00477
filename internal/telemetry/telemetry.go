// Package telemetry exposes Prometheus metrics for tool calls.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric labels
const (
	LabelTool    = "tool"
	LabelOutcome = "outcome"
)

// Tool call outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeToolError = "tool_error"
	OutcomeError     = "error"
)

// Metrics holds the collectors for one server instance.
type Metrics struct {
	registry     *prometheus.Registry
	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	storedPoints prometheus.Gauge
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metricviz_tool_calls_total",
				Help: "Total number of MCP tool calls by outcome",
			},
			[]string{LabelTool, LabelOutcome},
		),
		toolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "metricviz_tool_duration_seconds",
				Help:    "Latency of MCP tool calls",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{LabelTool},
		),
		storedPoints: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "metricviz_stored_points",
				Help: "Number of points in the metrics document after the last push or clear",
			},
		),
	}
	m.registry.MustRegister(
		m.toolCalls,
		m.toolDuration,
		m.storedPoints,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveCall records one tool call.
func (m *Metrics) ObserveCall(tool, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool, outcome).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// SetStoredPoints records the document size.
func (m *Metrics) SetStoredPoints(n int) {
	if m == nil {
		return
	}
	m.storedPoints.Set(float64(n))
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
