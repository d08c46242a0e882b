// Package metrics provides the Prometheus collectors for search aggregation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all palette Prometheus metrics.
// Uses an isolated prometheus.Registry so instances never collide; each test gets its own.
type Metrics struct {
	Registry *prometheus.Registry

	// Category fetch metrics
	FetchTotal           *prometheus.CounterVec
	FetchDurationSeconds *prometheus.HistogramVec
	HitsDroppedTotal     *prometheus.CounterVec

	// Session metrics
	QueriesDispatchedTotal prometheus.Counter
	StaleResponsesTotal    *prometheus.CounterVec

	// HTTP API metrics
	HTTPRequestsTotal *prometheus.CounterVec

	BuildInfo *prometheus.GaugeVec
}

// NewMetrics creates a Metrics instance with all collectors registered on an isolated
// registry. version and goVersion are recorded as labels on palette_info.
func NewMetrics(version, goVersion string) *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		FetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "palette_category_fetch_total",
				Help: "Total category fetches by outcome (ok, error).",
			},
			[]string{"category", "outcome"},
		),
		FetchDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "palette_category_fetch_duration_seconds",
				Help:    "Duration of category fetches against the search backend.",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"category"},
		),
		HitsDroppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "palette_hits_dropped_total",
				Help: "Hits dropped because required display fields were missing.",
			},
			[]string{"category"},
		),
		QueriesDispatchedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "palette_queries_dispatched_total",
				Help: "Queries dispatched by search sessions after the debounce interval.",
			},
		),
		StaleResponsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "palette_stale_responses_total",
				Help: "Category responses discarded because a newer query superseded them.",
			},
			[]string{"category"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "palette_http_requests_total",
				Help: "HTTP API requests by method, route and status code.",
			},
			[]string{"method", "route", "status"},
		),
		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "palette_info",
				Help: "Build information.",
			},
			[]string{"version", "go_version"},
		),
	}

	reg.MustRegister(
		m.FetchTotal,
		m.FetchDurationSeconds,
		m.HitsDroppedTotal,
		m.QueriesDispatchedTotal,
		m.StaleResponsesTotal,
		m.HTTPRequestsTotal,
		m.BuildInfo,
	)
	m.BuildInfo.WithLabelValues(version, goVersion).Set(1)
	return m
}

// Handler returns an HTTP handler exposing the isolated registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
