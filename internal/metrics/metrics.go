// Package metrics provides Prometheus instrumentation for the projection API.
//
// Metrics exposed:
//   - genomic_projection_runs_total: Counter of engine runs by outcome
//   - genomic_projection_run_seconds: Histogram of engine run duration
//   - genomic_projection_steps: Histogram of simulated months per run
//   - genomic_projection_store_errors_total: Counter of result store failures by operation
//   - genomic_http_requests_total: Counter of HTTP requests by method, route and status
//   - genomic_http_request_seconds: Histogram of HTTP request duration by method and route
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeConfigError = "config_error"
	OutcomeError       = "error"
)

// Metrics holds all Prometheus metrics for the API.
// The Record methods are no-ops on a nil *Metrics.
type Metrics struct {
	RunsTotal          *prometheus.CounterVec
	RunSeconds         prometheus.Histogram
	RunSteps           prometheus.Histogram
	StoreErrorsTotal   *prometheus.CounterVec
	HTTPRequestsTotal  *prometheus.CounterVec
	HTTPRequestSeconds *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "genomic_projection_runs_total",
			Help: "Total number of projection runs by outcome",
		}, []string{"outcome"}),

		RunSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "genomic_projection_run_seconds",
			Help:    "Time spent running one projection",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),

		RunSteps: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "genomic_projection_steps",
			Help:    "Number of monthly steps simulated per run",
			Buckets: []float64{12, 60, 120, 240, 600, 1200, 2400},
		}),

		StoreErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "genomic_projection_store_errors_total",
			Help: "Total number of result store errors by operation",
		}, []string{"op"}),

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "genomic_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		HTTPRequestSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "genomic_http_request_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// RecordRun records one engine run.
func (m *Metrics) RecordRun(outcome string, seconds float64, steps int) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.RunSeconds.Observe(seconds)
	if steps > 0 {
		m.RunSteps.Observe(float64(steps))
	}
}

// RecordStoreError counts a failed store operation ("put" or "get").
func (m *Metrics) RecordStoreError(op string) {
	if m == nil {
		return
	}
	m.StoreErrorsTotal.WithLabelValues(op).Inc()
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestSeconds.WithLabelValues(method, route).Observe(seconds)
}
