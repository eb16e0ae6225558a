// Package digest orchestrates the scheduled digest run: aggregate headlines
// from every source, synthesize research ideas from the batch, and deliver
// the result to each configured channel.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"research-radar/internal/domain/entity"
	"research-radar/internal/observability/metrics"
)

// Aggregator produces the deduplicated, shuffled headline batch.
type Aggregator interface {
	AggregateHeadlines(ctx context.Context, query string) []entity.Headline
}

// Synthesizer turns a headline batch into ranked research ideas.
type Synthesizer interface {
	SynthesizeIdeas(ctx context.Context, headlines []entity.Headline) ([]entity.Idea, error)
}

// Notifier delivers the finished digest to one channel.
type Notifier interface {
	NotifyDigest(ctx context.Context, digest *entity.Digest) error
}

// fallbackCategories is the fixed rotation used when synthesis is
// unavailable and headlines are promoted to ideas directly.
var fallbackCategories = []string{
	"machine-learning",
	"life-sciences",
	"physics",
	"medicine",
	"general",
}

// Service runs one digest cycle end to end.
type Service struct {
	Aggregator   Aggregator
	Synthesizer  Synthesizer
	Notifiers    []Notifier
	MaxHeadlines int

	// now is injectable for tests.
	now func() time.Time
}

// NewService creates a digest Service. maxHeadlines caps how many headlines
// are passed to the synthesizer per run; zero or negative means no cap.
func NewService(aggregator Aggregator, synthesizer Synthesizer, notifiers []Notifier, maxHeadlines int) *Service {
	return &Service{
		Aggregator:   aggregator,
		Synthesizer:  synthesizer,
		Notifiers:    notifiers,
		MaxHeadlines: maxHeadlines,
		now:          time.Now,
	}
}

// Stats contains statistics about one digest run.
type Stats struct {
	Headlines    int
	Sources      int
	Ideas        int
	UsedFallback bool
	NotifyErrors int
	Duration     time.Duration
}

// Run executes one digest cycle. Aggregation is fail-soft, so an empty
// headline batch is possible; the run still completes and delivers an empty
// digest rather than failing. Synthesis failure falls back to promoting the
// leading headlines to ideas, so delivery happens even when the idea
// collaborator is down. The returned error is non-nil only when every
// delivery channel failed.
func (s *Service) Run(ctx context.Context) (Stats, error) {
	start := s.now()

	logger := slog.Default()
	logger.InfoContext(ctx, "digest run started")

	headlines := s.Aggregator.AggregateHeadlines(ctx, "")
	sources := countSources(headlines)

	if s.MaxHeadlines > 0 && len(headlines) > s.MaxHeadlines {
		headlines = headlines[:s.MaxHeadlines]
	}

	stats := Stats{
		Headlines: len(headlines),
		Sources:   sources,
	}

	ideas, usedFallback := s.synthesize(ctx, headlines)
	stats.Ideas = len(ideas)
	stats.UsedFallback = usedFallback

	digest := &entity.Digest{
		GeneratedAt:   start,
		HeadlineCount: len(headlines),
		SourceCount:   sources,
		Ideas:         ideas,
	}

	var notifyErrs int
	for _, n := range s.Notifiers {
		if err := n.NotifyDigest(ctx, digest); err != nil {
			notifyErrs++
			logger.ErrorContext(ctx, "digest delivery failed",
				slog.String("error", err.Error()))
		}
	}
	stats.NotifyErrors = notifyErrs
	stats.Duration = s.now().Sub(start)

	if len(s.Notifiers) > 0 && notifyErrs == len(s.Notifiers) {
		metrics.RecordDigestRun("failure")
		return stats, fmt.Errorf("all %d delivery channels failed", notifyErrs)
	}

	if usedFallback {
		metrics.RecordDigestRun("fallback")
	} else {
		metrics.RecordDigestRun("success")
	}
	logger.InfoContext(ctx, "digest run completed",
		slog.Int("headlines", stats.Headlines),
		slog.Int("sources", stats.Sources),
		slog.Int("ideas", stats.Ideas),
		slog.Bool("fallback", stats.UsedFallback),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

// synthesize asks the collaborator for ideas and falls back to promoting
// headlines on failure. The fallback assigns categories round-robin from a
// fixed list so downstream formatting stays uniform.
func (s *Service) synthesize(ctx context.Context, headlines []entity.Headline) ([]entity.Idea, bool) {
	if len(headlines) == 0 {
		return nil, false
	}

	ideas, err := s.Synthesizer.SynthesizeIdeas(ctx, headlines)
	if err == nil {
		return ideas, false
	}

	slog.WarnContext(ctx, "idea synthesis failed, promoting headlines",
		slog.String("error", err.Error()))

	const fallbackCount = 10
	count := fallbackCount
	if len(headlines) < count {
		count = len(headlines)
	}

	promoted := make([]entity.Idea, 0, count)
	for i, h := range headlines[:count] {
		promoted = append(promoted, entity.Idea{
			Title:     h.Title,
			Rationale: fmt.Sprintf("Reported by %s.", h.Source),
			Category:  fallbackCategories[i%len(fallbackCategories)],
		})
	}
	return promoted, true
}

// countSources counts distinct source labels in the batch.
func countSources(headlines []entity.Headline) int {
	seen := make(map[string]struct{}, len(headlines))
	for _, h := range headlines {
		seen[h.Source] = struct{}{}
	}
	return len(seen)
}
