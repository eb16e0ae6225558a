package source

import (
	"context"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

const quantaDefaultFeedURL = "https://api.quantamagazine.org/feed/"

// Quanta browses the Quanta Magazine RSS feed. Query is ignored.
type Quanta struct {
	client  *fetcher.Client
	feedURL string
}

// NewQuanta creates the Quanta Magazine adapter.
func NewQuanta(client *fetcher.Client) *Quanta {
	return &Quanta{client: client, feedURL: quantaDefaultFeedURL}
}

// Name implements Adapter.
func (q *Quanta) Name() string { return "Quanta Magazine" }

// FetchHeadlines implements Adapter. The query parameter is ignored.
func (q *Quanta) FetchHeadlines(ctx context.Context, _ string) ([]entity.Headline, error) {
	return fetchFeed(ctx, q.client, q.feedURL, q.Name())
}
