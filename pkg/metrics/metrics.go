// Package metrics provides Prometheus metrics for the Vidzel server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge

	signups      *prometheus.CounterVec
	applications *prometheus.CounterVec
	invitations  *prometheus.CounterVec
	submissions  prometheus.Counter
	uploads      *prometheus.CounterVec
}

// New creates the metrics on their own registry, so tests and multiple
// servers in one process never collide.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vidzel_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vidzel_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		requestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "vidzel_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),
		signups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vidzel_signups_total",
				Help: "Accounts created, by role",
			},
			[]string{"role"},
		),
		applications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vidzel_applications_total",
				Help: "Application state transitions, by resulting status",
			},
			[]string{"status"},
		),
		invitations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vidzel_invitations_total",
				Help: "Invitation state transitions, by resulting status",
			},
			[]string{"status"},
		),
		submissions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vidzel_submissions_total",
				Help: "Submission versions received",
			},
		),
		uploads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vidzel_uploads_total",
				Help: "Files uploaded, by blob backend",
			},
			[]string{"backend"},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records metrics for an HTTP request. route is the mux
// path template, keeping label cardinality bounded.
func (m *Metrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncRequestsInFlight increments the in-flight requests gauge.
func (m *Metrics) IncRequestsInFlight() {
	m.requestsInFlight.Inc()
}

// DecRequestsInFlight decrements the in-flight requests gauge.
func (m *Metrics) DecRequestsInFlight() {
	m.requestsInFlight.Dec()
}

func (m *Metrics) Signup(role string) {
	m.signups.WithLabelValues(role).Inc()
}

func (m *Metrics) Application(status string) {
	m.applications.WithLabelValues(status).Inc()
}

func (m *Metrics) Invitation(status string) {
	m.invitations.WithLabelValues(status).Inc()
}

func (m *Metrics) Submission() {
	m.submissions.Inc()
}

func (m *Metrics) Upload(backend string) {
	m.uploads.WithLabelValues(backend).Inc()
}
