package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Ingestion and search Prometheus metrics.
var (
	ParseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "findingaid_parse_total",
			Help:      "Finding aids parsed, by outcome",
		},
		[]string{"status"}, // "ok" / "malformed" / "too_large"
	)

	ParseDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "findingaid_parse_duration_seconds",
			Help:      "Finding aid parse duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	QueriesCompiledTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_queries_compiled_total",
			Help:      "Search queries compiled, by projection",
		},
		[]string{"projection"}, // "frontend" / "full"
	)

	SolrRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "solr_requests_total",
			Help:      "Requests sent to the search engine, by operation and outcome",
		},
		[]string{"op", "status"}, // status: "ok" / "engine_error" / "unavailable"
	)

	SolrRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "solr_request_duration_seconds",
			Help:      "Search engine request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"op"},
	)
)

var registerPipelineOnce sync.Once

// RegisterPipelineMetrics registers ingestion and search metrics with the
// default registry. Safe to call more than once.
func RegisterPipelineMetrics() {
	registerPipelineOnce.Do(func() {
		prometheus.MustRegister(
			ParseTotal,
			ParseDuration,
			QueriesCompiledTotal,
			SolrRequestsTotal,
			SolrRequestDuration,
		)
	})
}
