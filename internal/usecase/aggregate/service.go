// Package aggregate implements the headline aggregation pipeline: a
// concurrent fan-out over all source adapters, followed by title
// deduplication and a presentation shuffle.
package aggregate

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"research-radar/internal/domain/entity"
	"research-radar/internal/observability/logging"
	"research-radar/internal/observability/metrics"
)

// SourceAdapter is the capability the aggregator needs from each source.
type SourceAdapter interface {
	Name() string
	FetchHeadlines(ctx context.Context, query string) ([]entity.Headline, error)
}

// Service runs the aggregation pipeline over a fixed adapter set.
type Service struct {
	adapters []SourceAdapter
}

// NewService creates an aggregation Service over the given adapters.
func NewService(adapters []SourceAdapter) *Service {
	return &Service{adapters: adapters}
}

// AdapterCount returns the number of configured source adapters.
func (s *Service) AdapterCount() int {
	return len(s.adapters)
}

// AggregateHeadlines invokes every adapter concurrently and returns the
// deduplicated, shuffled merge of whichever adapters succeeded.
//
// The call completes once all adapters have settled; it never races or
// short-circuits on partial availability, and it performs no retry. A
// failing adapter contributes an empty list, never an aggregate failure,
// so callers always receive a (possibly empty) headline list. Within one
// adapter's contribution the adapter's own item order is preserved up to
// the dedup stage; the final shuffle is presentation-only.
func (s *Service) AggregateHeadlines(ctx context.Context, query string) []entity.Headline {
	logger := logging.FromContext(ctx)
	start := time.Now()
	metrics.RecordAggregation(query)

	results := make([][]entity.Headline, len(s.adapters))

	var g errgroup.Group
	for i, adapter := range s.adapters {
		g.Go(func() error {
			fetchStart := time.Now()
			items, err := adapter.FetchHeadlines(ctx, query)
			elapsed := time.Since(fetchStart)
			if err != nil {
				// Fail soft: log, record, contribute nothing.
				logger.Warn("source fetch failed",
					slog.String("source", adapter.Name()),
					slog.Duration("duration", elapsed),
					slog.Any("error", err))
				metrics.RecordSourceFetchError(adapter.Name(), elapsed)
				return nil
			}
			metrics.RecordSourceFetch(adapter.Name(), len(items), elapsed)
			results[i] = items
			return nil
		})
	}
	// Goroutines never return errors; Wait is purely a barrier.
	_ = g.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]entity.Headline, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}

	deduped := Deduplicate(merged)
	metrics.RecordDeduplicated(len(merged) - len(deduped))

	logger.Info("aggregation completed",
		slog.Int("sources", len(s.adapters)),
		slog.Int("fetched", len(merged)),
		slog.Int("after_dedup", len(deduped)),
		slog.Duration("duration", time.Since(start)))

	return Shuffle(deduped)
}
