// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Source fetch metrics track the fan-out over external sources.
var (
	// SourceFetchTotal counts adapter fetches by source and outcome.
	SourceFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fetch_total",
			Help: "Total number of source adapter fetches",
		},
		[]string{"source", "status"},
	)

	// SourceFetchDuration measures how long each adapter's fetch took.
	// Buckets reach just past the per-request timeout so aborted calls
	// land in the top bucket.
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_fetch_duration_seconds",
			Help:    "Source adapter fetch duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2, 3, 5, 8},
		},
		[]string{"source"},
	)

	// SourceHeadlinesFetched counts headlines contributed per source.
	SourceHeadlinesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_headlines_fetched_total",
			Help: "Total number of headlines fetched per source",
		},
		[]string{"source"},
	)
)

// Pipeline metrics track the dedup stage.
var (
	// HeadlinesDeduplicatedTotal counts headlines discarded as duplicates.
	HeadlinesDeduplicatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "headlines_deduplicated_total",
			Help: "Total number of headlines discarded by title dedup",
		},
	)

	// AggregationsTotal counts aggregation requests by mode.
	AggregationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregations_total",
			Help: "Total number of aggregation requests",
		},
		[]string{"mode"},
	)
)

// Digest metrics track the periodic digest worker.
var (
	// DigestRunsTotal counts digest runs by outcome.
	DigestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_runs_total",
			Help: "Total number of digest worker runs",
		},
		[]string{"status"},
	)

	// IdeasSynthesizedTotal counts ideas produced by the synthesis collaborator.
	IdeasSynthesizedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ideas_synthesized_total",
			Help: "Total number of research ideas synthesized",
		},
	)
)
