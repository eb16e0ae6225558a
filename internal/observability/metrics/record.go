package metrics

import "time"

// RecordSourceFetch records a successful adapter fetch.
func RecordSourceFetch(source string, count int, duration time.Duration) {
	SourceFetchTotal.WithLabelValues(source, "success").Inc()
	SourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if count > 0 {
		SourceHeadlinesFetched.WithLabelValues(source).Add(float64(count))
	}
}

// RecordSourceFetchError records a failed adapter fetch.
func RecordSourceFetchError(source string, duration time.Duration) {
	SourceFetchTotal.WithLabelValues(source, "failure").Inc()
	SourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordAggregation records one aggregation request.
// Mode should be "browse" or "search".
func RecordAggregation(query string) {
	mode := "browse"
	if query != "" {
		mode = "search"
	}
	AggregationsTotal.WithLabelValues(mode).Inc()
}

// RecordDeduplicated records the number of headlines dropped by dedup.
func RecordDeduplicated(dropped int) {
	if dropped > 0 {
		HeadlinesDeduplicatedTotal.Add(float64(dropped))
	}
}

// RecordDigestRun records the result of a digest worker run.
// Status should be "success", "fallback", or "failure".
func RecordDigestRun(status string) {
	DigestRunsTotal.WithLabelValues(status).Inc()
}

// RecordIdeasSynthesized records ideas produced in one synthesis call.
func RecordIdeasSynthesized(count int) {
	if count > 0 {
		IdeasSynthesizedTotal.Add(float64(count))
	}
}
