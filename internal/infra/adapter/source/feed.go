package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

// subFeed pairs a feed URL with the source label its items get,
// e.g. one label per Nature subject feed.
type subFeed struct {
	URL   string
	Label string
}

// fetchFeed retrieves and parses one RSS/Atom document, mapping entries to
// headlines under the given label. The call is bounded by the client's
// per-request timeout; expiry aborts only this fetch.
func fetchFeed(ctx context.Context, client *fetcher.Client, feedURL, label string) ([]entity.Headline, error) {
	if err := client.Acquire(ctx, feedURL); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := client.RequestContext(ctx)
	defer cancel()

	fp := gofeed.NewParser()
	fp.UserAgent = client.UserAgent()
	fp.Client = client.HTTPClient()

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	headlines := make([]entity.Headline, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it.Title == "" {
			continue
		}
		// Feeds disagree on which date element they populate; fall back to
		// the fetch time when neither is usable (known accuracy compromise).
		pubAt := time.Now()
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			pubAt = *it.UpdatedParsed
		}

		headlines = append(headlines, entity.Headline{
			Title:       it.Title,
			Source:      label,
			URL:         it.Link,
			PublishedAt: pubAt,
		})
	}

	return headlines, nil
}

// browseFeeds fetches a fixed set of sub-feeds concurrently and merges
// their items in feed-list order. Each sub-fetch's failure is isolated: it
// is logged and skipped so one bad sub-feed cannot blank the whole
// adapter's output, and a hanging sub-feed costs one per-request timeout,
// not one per sub-feed. An error is returned only when every sub-feed
// failed.
func browseFeeds(ctx context.Context, client *fetcher.Client, adapterName string, feeds []subFeed) ([]entity.Headline, error) {
	results := make([][]entity.Headline, len(feeds))
	failed := make([]bool, len(feeds))

	var g errgroup.Group
	for i, f := range feeds {
		g.Go(func() error {
			items, err := fetchFeed(ctx, client, f.URL, f.Label)
			if err != nil {
				failed[i] = true
				slog.Warn("sub-feed fetch failed",
					slog.String("adapter", adapterName),
					slog.String("feed_url", f.URL),
					slog.Any("error", err))
				return nil
			}
			results[i] = items
			return nil
		})
	}
	// Goroutines never return errors; Wait is purely a barrier.
	_ = g.Wait()

	failures := 0
	for _, f := range failed {
		if f {
			failures++
		}
	}
	if failures == len(feeds) {
		return nil, errors.New("all sub-feeds failed")
	}

	var merged []entity.Headline
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}
