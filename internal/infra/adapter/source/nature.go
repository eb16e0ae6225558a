package source

import (
	"context"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

// natureDefaultFeeds covers the flagship feed plus subject taxonomies,
// each with its own source label.
var natureDefaultFeeds = []subFeed{
	{URL: "https://www.nature.com/nature.rss", Label: "Nature"},
	{URL: "https://www.nature.com/subjects/neuroscience.rss", Label: "Nature Neuroscience"},
	{URL: "https://www.nature.com/subjects/genetics.rss", Label: "Nature Genetics"},
	{URL: "https://www.nature.com/subjects/biotechnology.rss", Label: "Nature Biotechnology"},
}

// Nature browses the Nature journal RSS subject feeds.
// The feeds have no search endpoint, so the query is ignored.
type Nature struct {
	client *fetcher.Client
	feeds  []subFeed
}

// NewNature creates the Nature adapter.
func NewNature(client *fetcher.Client) *Nature {
	return &Nature{client: client, feeds: natureDefaultFeeds}
}

// Name implements Adapter.
func (n *Nature) Name() string { return "Nature" }

// FetchHeadlines implements Adapter. The query parameter is ignored.
func (n *Nature) FetchHeadlines(ctx context.Context, _ string) ([]entity.Headline, error) {
	return browseFeeds(ctx, n.client, n.Name(), n.feeds)
}
