// Package monitoring provides Prometheus metrics for the solver service.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector handles Prometheus metrics collection.
type MetricsCollector struct {
	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Solver metrics
	plansTotal         *prometheus.CounterVec
	planDuration       prometheus.Histogram
	solveAttemptsTotal *prometheus.CounterVec
	relaxationsTotal   prometheus.Counter
	horizonReductions  prometheus.Counter
}

// NewMetricsCollector creates a new metrics collector registered against the
// given registry. Using an explicit registry keeps collectors per-instance
// and test-friendly.
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(reg)

	return &MetricsCollector{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		plansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meal_plans_total",
				Help: "Total planning requests by terminal status",
			},
			[]string{"status"},
		),
		planDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "meal_plan_duration_seconds",
				Help:    "End-to-end planning duration including all relaxation attempts",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
		),
		solveAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solve_attempts_total",
				Help: "Individual solver invocations by relaxation tier and status",
			},
			[]string{"tier", "status"},
		),
		relaxationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "plan_relaxations_total",
				Help: "Plans that only solved after dropping anti-repetition",
			},
		),
		horizonReductions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "plan_horizon_reductions_total",
				Help: "Plans that only solved on a shrunken horizon",
			},
		),
	}
}

// RecordHTTPRequest records one served HTTP request.
func (m *MetricsCollector) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(statusCode)}
	m.httpRequestsTotal.WithLabelValues(labels...).Inc()
	m.httpRequestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
}

// RecordPlan records the terminal outcome of a planning request.
func (m *MetricsCollector) RecordPlan(status string, duration time.Duration) {
	m.plansTotal.WithLabelValues(status).Inc()
	m.planDuration.Observe(duration.Seconds())
}

// RecordSolveAttempt records a single solver invocation within a plan.
func (m *MetricsCollector) RecordSolveAttempt(tier, status string) {
	m.solveAttemptsTotal.WithLabelValues(tier, status).Inc()
}

// RecordRelaxation counts a plan that needed the relaxed profile.
func (m *MetricsCollector) RecordRelaxation() {
	m.relaxationsTotal.Inc()
}

// RecordHorizonReduction counts a plan that needed a shrunken horizon.
func (m *MetricsCollector) RecordHorizonReduction() {
	m.horizonReductions.Inc()
}

// Handler returns the /metrics exposition handler for the given gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
