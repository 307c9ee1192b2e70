package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus metrics for the swarm service.
//
// All metrics are prefixed with "nexus_".
//
// Metrics:
//   - nexus_swarm_cycles_total{agent,outcome} - orchestrator steps
//   - nexus_swarm_cycle_duration_seconds - Advance latency
//   - nexus_leads{status} - leads per pipeline stage
//   - nexus_uploads_total{outcome} - knowledge base uploads
//   - nexus_generation_fallbacks_total - completion errors served from templates
//   - nexus_snapshot_failures_total - failed snapshot writes
//   - nexus_ws_subscribers - live push channel subscribers
//   - nexus_hub_dropped_total / nexus_hub_pruned_total - notification losses
//   - nexus_http_requests_total{method,route,status}
//   - nexus_http_request_duration_seconds{method,route}
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	CyclesTotal        *prometheus.CounterVec
	CycleDuration      prometheus.Histogram
	Leads              *prometheus.GaugeVec
	UploadsTotal       *prometheus.CounterVec
	FallbacksTotal     prometheus.Counter
	SnapshotFailures   prometheus.Counter
	Subscribers        prometheus.Gauge
	HubDroppedTotal    prometheus.Counter
	HubPrunedTotal     prometheus.Counter
	HTTPRequestsTotal  *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on a fresh registry
// that also carries the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		CyclesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_swarm_cycles_total",
				Help: "Total number of orchestrator steps by acting agent and outcome",
			},
			[]string{"agent", "outcome"}, // outcome: advanced, held, waiting, idle
		),

		CycleDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nexus_swarm_cycle_duration_seconds",
				Help:    "Duration of a swarm cycle in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16), // 0.5ms to ~16s
			},
		),

		Leads: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nexus_leads",
				Help: "Current number of leads per pipeline status",
			},
			[]string{"status"},
		),

		UploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_uploads_total",
				Help: "Total number of knowledge base uploads by outcome",
			},
			[]string{"outcome"},
		),

		FallbacksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nexus_generation_fallbacks_total",
				Help: "Total number of completion failures answered with templated content",
			},
		),

		SnapshotFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nexus_snapshot_failures_total",
				Help: "Total number of failed snapshot writes",
			},
		),

		Subscribers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "nexus_ws_subscribers",
				Help: "Current number of push channel subscribers",
			},
		),

		HubDroppedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nexus_hub_dropped_total",
				Help: "Messages dropped because the hub buffer was full",
			},
		),

		HubPrunedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nexus_hub_pruned_total",
				Help: "Subscribers removed because they could not keep up",
			},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nexus_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordCycle records one orchestrator step
func (m *Metrics) RecordCycle(agent, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.CyclesTotal.WithLabelValues(agent, outcome).Inc()
	m.CycleDuration.Observe(d.Seconds())
}

// SetLeadCounts replaces the per-status lead gauges
func (m *Metrics) SetLeadCounts(counts map[string]int) {
	if m == nil {
		return
	}
	m.Leads.Reset()
	for status, n := range counts {
		m.Leads.WithLabelValues(status).Set(float64(n))
	}
}

// RecordUpload records an upload outcome
func (m *Metrics) RecordUpload(outcome string) {
	if m == nil {
		return
	}
	m.UploadsTotal.WithLabelValues(outcome).Inc()
}

// RecordFallback records a completion failure served from templates
func (m *Metrics) RecordFallback() {
	if m == nil {
		return
	}
	m.FallbacksTotal.Inc()
}

// RecordSnapshotFailure records a failed snapshot write
func (m *Metrics) RecordSnapshotFailure() {
	if m == nil {
		return
	}
	m.SnapshotFailures.Inc()
}

// SetSubscribers sets the subscriber gauge
func (m *Metrics) SetSubscribers(n int) {
	if m == nil {
		return
	}
	m.Subscribers.Set(float64(n))
}

// RecordHubDrop records a message dropped by the hub
func (m *Metrics) RecordHubDrop() {
	if m == nil {
		return
	}
	m.HubDroppedTotal.Inc()
}

// RecordHubPrune records a subscriber pruned by the hub
func (m *Metrics) RecordHubPrune() {
	if m == nil {
		return
	}
	m.HubPrunedTotal.Inc()
}

// RecordHTTPRequest records a served request
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
