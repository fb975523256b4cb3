package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus instruments exposed on /metrics. Each
// instance owns a dedicated registry, so constructing a second server
// (or a test) never trips duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests    prometheus.Gauge
	requestsTotal     prometheus.Counter
	computationsTotal *prometheus.CounterVec
}

// NewMetrics creates the instrument set and registers it together with
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gilbench_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gilbench_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		computationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gilbench_computations_total",
			Help: "Total number of completed factorial computations, by regime.",
		}, []string{"regime"}),
	}

	registry.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		m.computationsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks one more request in flight.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks one request as finished.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// RecordRequest counts a served HTTP request.
func (m *Metrics) RecordRequest() { m.requestsTotal.Inc() }

// RecordComputation counts a completed computation under the given regime.
func (m *Metrics) RecordComputation(regime string) {
	m.computationsTotal.WithLabelValues(regime).Inc()
}

// WritePrometheus serves the registry in Prometheus text exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// metricsMiddleware counts the request and tracks it as active for its
// whole duration, including the time spent computing.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		s.metrics.RecordRequest()
		defer s.metrics.DecrementActiveRequests()

		next(w, r)
	}
}
