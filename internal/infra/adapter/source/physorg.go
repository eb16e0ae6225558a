package source

import (
	"context"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

const physOrgDefaultFeedURL = "https://phys.org/rss-feed/"

// PhysOrg browses the Phys.org main RSS feed. Query is ignored.
type PhysOrg struct {
	client  *fetcher.Client
	feedURL string
}

// NewPhysOrg creates the Phys.org adapter.
func NewPhysOrg(client *fetcher.Client) *PhysOrg {
	return &PhysOrg{client: client, feedURL: physOrgDefaultFeedURL}
}

// Name implements Adapter.
func (p *PhysOrg) Name() string { return "Phys.org" }

// FetchHeadlines implements Adapter. The query parameter is ignored.
func (p *PhysOrg) FetchHeadlines(ctx context.Context, _ string) ([]entity.Headline, error) {
	return fetchFeed(ctx, p.client, p.feedURL, p.Name())
}
