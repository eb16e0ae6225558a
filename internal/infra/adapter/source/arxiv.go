package source

import (
	"context"
	"fmt"
	"net/url"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

const arxivDefaultBaseURL = "http://export.arxiv.org/api/query"

// arxivBrowseCategories are the category taxonomies queried in browse mode.
var arxivBrowseCategories = []string{"cs.AI", "cs.LG", "q-bio.NC"}

// ArXiv fetches recent papers from the arXiv Atom API.
// A supplied query is translated into a full-text search; browse mode pulls
// the newest submissions per default category, one sub-query per taxonomy.
type ArXiv struct {
	client  *fetcher.Client
	baseURL string
}

// NewArXiv creates the arXiv adapter.
func NewArXiv(client *fetcher.Client) *ArXiv {
	return &ArXiv{client: client, baseURL: arxivDefaultBaseURL}
}

// Name implements Adapter.
func (a *ArXiv) Name() string { return "arXiv" }

// FetchHeadlines implements Adapter.
func (a *ArXiv) FetchHeadlines(ctx context.Context, query string) ([]entity.Headline, error) {
	if query != "" {
		u := fmt.Sprintf("%s?search_query=%s&start=0&max_results=30&sortBy=submittedDate&sortOrder=descending",
			a.baseURL, url.QueryEscape(fmt.Sprintf("all:%q", query)))
		return fetchFeed(ctx, a.client, u, "arXiv")
	}

	feeds := make([]subFeed, 0, len(arxivBrowseCategories))
	for _, cat := range arxivBrowseCategories {
		feeds = append(feeds, subFeed{
			URL: fmt.Sprintf("%s?search_query=%s&start=0&max_results=15&sortBy=submittedDate&sortOrder=descending",
				a.baseURL, url.QueryEscape("cat:"+cat)),
			Label: "arXiv " + cat,
		})
	}
	return browseFeeds(ctx, a.client, a.Name(), feeds)
}
