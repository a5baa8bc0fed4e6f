package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for upstream fetches and tool calls.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec   // labels: endpoint={alerts,points,forecast}, outcome
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint
	ToolCalls        *prometheus.CounterVec   // labels: tool
}

// Upstream request outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeTransportError = "transport_error"
	OutcomeStatusError    = "status_error"
	OutcomeDecodeError    = "decode_error"
)

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.UpstreamRequests, m.UpstreamDuration, m.ToolCalls)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "upstream_requests_total",
			Help:      "NWS API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_mcp",
			Name:      "upstream_request_duration_seconds",
			Help:      "NWS API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "tool_calls_total",
			Help:      "Tool and resource invocations by tool name.",
		}, []string{"tool"}),
	}
}
