// Package metrics exposes Prometheus collectors for the recommendation
// engine, quiz persistence and the HTTP layer. Every recording method is
// safe to call on a nil *Metrics so tests and the offline CLI can skip it.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recommendation outcomes.
const (
	OutcomeMatched = "matched"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

// Quiz write operations.
const (
	OpSave  = "save"
	OpEmail = "email"
	OpClick = "click"
)

// Metrics holds every collector on a private registry.
type Metrics struct {
	RecommendationsTotal  *prometheus.CounterVec
	RecommendationResults prometheus.Histogram
	CatalogCamps          prometheus.Gauge

	QuizWritesTotal     *prometheus.CounterVec
	SessionsPrunedTotal prometheus.Counter

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with all collectors registered, plus the
// standard Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RecommendationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campmatch_recommendations_total",
				Help: "Recommendation requests by outcome",
			},
			[]string{"outcome"},
		),
		RecommendationResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "campmatch_recommendation_results",
				Help:    "Number of camps returned per recommendation request",
				Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
			},
		),
		CatalogCamps: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "campmatch_catalog_camps",
				Help: "Published camps scored by the most recent recommendation request",
			},
		),
		QuizWritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campmatch_quiz_writes_total",
				Help: "Quiz persistence side effects by operation and status",
			},
			[]string{"op", "status"},
		),
		SessionsPrunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "campmatch_sessions_pruned_total",
				Help: "Stale quiz sessions removed from the session store",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campmatch_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campmatch_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.RecommendationsTotal,
		m.RecommendationResults,
		m.CatalogCamps,
		m.QuizWritesTotal,
		m.SessionsPrunedTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRecommendation records one recommendation request. catalogSize is
// the number of published camps scored and results the number returned.
func (m *Metrics) ObserveRecommendation(catalogSize, results int) {
	if m == nil {
		return
	}
	m.CatalogCamps.Set(float64(catalogSize))
	m.RecommendationResults.Observe(float64(results))
	if results == 0 {
		m.RecommendationsTotal.WithLabelValues(OutcomeEmpty).Inc()
		return
	}
	m.RecommendationsTotal.WithLabelValues(OutcomeMatched).Inc()
}

// RecommendationFailed counts a request whose catalog fetch failed.
func (m *Metrics) RecommendationFailed() {
	if m == nil {
		return
	}
	m.RecommendationsTotal.WithLabelValues(OutcomeError).Inc()
}

// QuizWrite counts one persistence side effect.
func (m *Metrics) QuizWrite(op string, ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.QuizWritesTotal.WithLabelValues(op, status).Inc()
}

// SessionsPruned adds n to the pruned-session counter.
func (m *Metrics) SessionsPruned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsPrunedTotal.Add(float64(n))
}
