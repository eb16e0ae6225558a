package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

const redditDefaultBaseURL = "https://www.reddit.com"

// redditDefaultSubreddits is the fixed browse set.
var redditDefaultSubreddits = []string{"science", "biology", "Physics", "MachineLearning"}

// Reddit browses the hot listings of a fixed set of science subreddits.
// The listing endpoint has no per-query search in this adapter's contract,
// so the query is ignored. Subreddits are fetched concurrently and merged
// in list order; one failing subreddit does not blank the others.
type Reddit struct {
	client     *fetcher.Client
	baseURL    string
	subreddits []string
}

// NewReddit creates the Reddit adapter.
func NewReddit(client *fetcher.Client) *Reddit {
	return &Reddit{
		client:     client,
		baseURL:    redditDefaultBaseURL,
		subreddits: redditDefaultSubreddits,
	}
}

// Name implements Adapter.
func (r *Reddit) Name() string { return "Reddit" }

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title      string  `json:"title"`
				Permalink  string  `json:"permalink"`
				CreatedUTC float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchHeadlines implements Adapter. The query parameter is ignored.
func (r *Reddit) FetchHeadlines(ctx context.Context, _ string) ([]entity.Headline, error) {
	results := make([][]entity.Headline, len(r.subreddits))
	failed := make([]bool, len(r.subreddits))

	var g errgroup.Group
	for i, sub := range r.subreddits {
		g.Go(func() error {
			items, err := r.fetchSubreddit(ctx, sub)
			if err != nil {
				failed[i] = true
				slog.Warn("subreddit fetch failed",
					slog.String("adapter", r.Name()),
					slog.String("subreddit", sub),
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
	if failures == len(r.subreddits) {
		return nil, errors.New("all subreddits failed")
	}

	var merged []entity.Headline
	for _, items := range results {
		merged = append(merged, items...)
	}
	return merged, nil
}

func (r *Reddit) fetchSubreddit(ctx context.Context, sub string) ([]entity.Headline, error) {
	u := fmt.Sprintf("%s/r/%s/hot.json?limit=25&raw_json=1", r.baseURL, sub)

	var listing redditListing
	if err := r.client.GetJSON(ctx, u, &listing); err != nil {
		return nil, err
	}

	label := "Reddit r/" + sub
	headlines := make([]entity.Headline, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Title == "" {
			continue
		}
		h := entity.Headline{
			Title:  post.Title,
			Source: label,
		}
		if post.Permalink != "" {
			h.URL = r.baseURL + post.Permalink
		}
		if post.CreatedUTC > 0 {
			h.PublishedAt = time.Unix(int64(post.CreatedUTC), 0).UTC()
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
