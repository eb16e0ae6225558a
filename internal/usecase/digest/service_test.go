package digest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"research-radar/internal/domain/entity"
)

type stubAggregator struct {
	headlines []entity.Headline
}

func (a *stubAggregator) AggregateHeadlines(_ context.Context, _ string) []entity.Headline {
	return a.headlines
}

type stubSynthesizer struct {
	ideas []entity.Idea
	err   error
	got   []entity.Headline
}

func (s *stubSynthesizer) SynthesizeIdeas(_ context.Context, headlines []entity.Headline) ([]entity.Idea, error) {
	s.got = headlines
	if s.err != nil {
		return nil, s.err
	}
	return s.ideas, nil
}

type stubNotifier struct {
	err    error
	digest *entity.Digest
	calls  int
}

func (n *stubNotifier) NotifyDigest(_ context.Context, digest *entity.Digest) error {
	n.calls++
	n.digest = digest
	return n.err
}

func makeHeadlines(n int) []entity.Headline {
	headlines := make([]entity.Headline, 0, n)
	for i := 0; i < n; i++ {
		headlines = append(headlines, entity.Headline{
			Title:       fmt.Sprintf("Headline %d", i),
			Source:      fmt.Sprintf("Source %d", i%3),
			URL:         fmt.Sprintf("https://example.com/%d", i),
			PublishedAt: time.Now(),
		})
	}
	return headlines
}

func TestRunHappyPath(t *testing.T) {
	agg := &stubAggregator{headlines: makeHeadlines(6)}
	syn := &stubSynthesizer{ideas: []entity.Idea{
		{Title: "Idea A", Rationale: "r", Category: "ml"},
		{Title: "Idea B", Rationale: "r", Category: "bio"},
	}}
	notif := &stubNotifier{}

	svc := NewService(agg, syn, []Notifier{notif}, 60)
	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Headlines != 6 {
		t.Errorf("Headlines = %d, want 6", stats.Headlines)
	}
	if stats.Sources != 3 {
		t.Errorf("Sources = %d, want 3", stats.Sources)
	}
	if stats.Ideas != 2 {
		t.Errorf("Ideas = %d, want 2", stats.Ideas)
	}
	if stats.UsedFallback {
		t.Error("UsedFallback = true, want false")
	}
	if notif.calls != 1 {
		t.Errorf("notifier called %d times, want 1", notif.calls)
	}
	if notif.digest.HeadlineCount != 6 || notif.digest.SourceCount != 3 {
		t.Errorf("digest counts = %d/%d", notif.digest.HeadlineCount, notif.digest.SourceCount)
	}
}

func TestRunCapsHeadlines(t *testing.T) {
	agg := &stubAggregator{headlines: makeHeadlines(100)}
	syn := &stubSynthesizer{ideas: []entity.Idea{{Title: "A"}}}

	svc := NewService(agg, syn, nil, 60)
	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Headlines != 60 {
		t.Errorf("Headlines = %d, want 60", stats.Headlines)
	}
	if len(syn.got) != 60 {
		t.Errorf("synthesizer received %d headlines, want 60", len(syn.got))
	}
}

func TestRunSynthesisFallback(t *testing.T) {
	agg := &stubAggregator{headlines: makeHeadlines(20)}
	syn := &stubSynthesizer{err: errors.New("api down")}
	notif := &stubNotifier{}

	svc := NewService(agg, syn, []Notifier{notif}, 60)
	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !stats.UsedFallback {
		t.Fatal("UsedFallback = false, want true")
	}
	if stats.Ideas != 10 {
		t.Errorf("Ideas = %d, want 10 promoted headlines", stats.Ideas)
	}

	// Categories rotate through the fixed list in order.
	for i, idea := range notif.digest.Ideas {
		want := fallbackCategories[i%len(fallbackCategories)]
		if idea.Category != want {
			t.Errorf("idea %d category = %q, want %q", i, idea.Category, want)
		}
	}
	if notif.digest.Ideas[0].Title != "Headline 0" {
		t.Errorf("first promoted idea = %q", notif.digest.Ideas[0].Title)
	}
}

func TestRunEmptyBatch(t *testing.T) {
	agg := &stubAggregator{}
	syn := &stubSynthesizer{}
	notif := &stubNotifier{}

	svc := NewService(agg, syn, []Notifier{notif}, 60)
	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Headlines != 0 || stats.Ideas != 0 {
		t.Errorf("stats = %+v, want empty", stats)
	}
	if syn.got != nil {
		t.Error("synthesizer should not be called for empty batch")
	}
	if notif.calls != 1 {
		t.Errorf("notifier called %d times, want 1 (empty digest still delivered)", notif.calls)
	}
}

func TestRunDeliveryFailures(t *testing.T) {
	t.Run("partial failure is not an error", func(t *testing.T) {
		agg := &stubAggregator{headlines: makeHeadlines(3)}
		syn := &stubSynthesizer{ideas: []entity.Idea{{Title: "A"}}}
		good := &stubNotifier{}
		bad := &stubNotifier{err: errors.New("webhook 500")}

		svc := NewService(agg, syn, []Notifier{good, bad}, 60)
		stats, err := svc.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if stats.NotifyErrors != 1 {
			t.Errorf("NotifyErrors = %d, want 1", stats.NotifyErrors)
		}
	})

	t.Run("total failure is an error", func(t *testing.T) {
		agg := &stubAggregator{headlines: makeHeadlines(3)}
		syn := &stubSynthesizer{ideas: []entity.Idea{{Title: "A"}}}
		bad1 := &stubNotifier{err: errors.New("down")}
		bad2 := &stubNotifier{err: errors.New("down")}

		svc := NewService(agg, syn, []Notifier{bad1, bad2}, 60)
		_, err := svc.Run(context.Background())
		if err == nil {
			t.Fatal("Run() error = nil, want error when all channels fail")
		}
	})
}
