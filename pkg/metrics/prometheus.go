package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	toolCalls        *prometheus.CounterVec
	latency          *prometheus.HistogramVec
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder registered with reg. A nil reg
// uses the default registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		toolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockmcp_tool_calls_total",
				Help: "Total number of tool invocations by outcome",
			},
			[]string{"tool", "outcome"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockmcp_tool_duration_seconds",
				Help:    "Duration of tool invocations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockmcp_upstream_requests_total",
				Help: "Total number of requests sent to the market data provider",
			},
			[]string{"endpoint", "status"},
		),
		upstreamLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockmcp_upstream_duration_seconds",
				Help:    "Duration of market data provider requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
}

// RecordToolCall counts one invocation. outcome is ok, error or invalid.
func (r *Recorder) RecordToolCall(tool, outcome string) {
	r.toolCalls.WithLabelValues(tool, outcome).Inc()
}

// RecordLatency records tool latency in seconds.
func (r *Recorder) RecordLatency(tool string, seconds float64) {
	r.latency.WithLabelValues(tool).Observe(seconds)
}

// RecordUpstreamRequest records a provider round trip. status 0 means the
// request never got a response.
func (r *Recorder) RecordUpstreamRequest(endpoint string, status int, seconds float64) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	r.upstreamRequests.WithLabelValues(endpoint, label).Inc()
	r.upstreamLatency.WithLabelValues(endpoint).Observe(seconds)
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordToolCall(string, string)                {}
func (Nop) RecordLatency(string, float64)                {}
func (Nop) RecordUpstreamRequest(string, int, float64) {}
