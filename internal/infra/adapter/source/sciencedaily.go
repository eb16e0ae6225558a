package source

import (
	"context"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

var scienceDailyDefaultFeeds = []subFeed{
	{URL: "https://www.sciencedaily.com/rss/top/science.xml", Label: "ScienceDaily"},
	{URL: "https://www.sciencedaily.com/rss/mind_brain.xml", Label: "ScienceDaily Mind & Brain"},
	{URL: "https://www.sciencedaily.com/rss/plants_animals.xml", Label: "ScienceDaily Plants & Animals"},
}

// ScienceDaily browses the ScienceDaily topic RSS feeds.
// No search API is exposed, so the query is ignored.
type ScienceDaily struct {
	client *fetcher.Client
	feeds  []subFeed
}

// NewScienceDaily creates the ScienceDaily adapter.
func NewScienceDaily(client *fetcher.Client) *ScienceDaily {
	return &ScienceDaily{client: client, feeds: scienceDailyDefaultFeeds}
}

// Name implements Adapter.
func (s *ScienceDaily) Name() string { return "ScienceDaily" }

// FetchHeadlines implements Adapter. The query parameter is ignored.
func (s *ScienceDaily) FetchHeadlines(ctx context.Context, _ string) ([]entity.Headline, error) {
	return browseFeeds(ctx, s.client, s.Name(), s.feeds)
}
