package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

const (
	hackerNewsDefaultBaseURL = "https://hn.algolia.com/api/v1"
	hackerNewsDefaultQuery   = "research"
)

// HackerNews searches the Algolia Hacker News API.
// A supplied query drives the search directly; browse mode falls back to a
// fixed default query.
type HackerNews struct {
	client  *fetcher.Client
	baseURL string
}

// NewHackerNews creates the Hacker News adapter.
func NewHackerNews(client *fetcher.Client) *HackerNews {
	return &HackerNews{client: client, baseURL: hackerNewsDefaultBaseURL}
}

// Name implements Adapter.
func (h *HackerNews) Name() string { return "Hacker News" }

type hackerNewsResponse struct {
	Hits []struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		ObjectID  string `json:"objectID"`
		CreatedAt string `json:"created_at"`
	} `json:"hits"`
}

// FetchHeadlines implements Adapter.
func (h *HackerNews) FetchHeadlines(ctx context.Context, query string) ([]entity.Headline, error) {
	if query == "" {
		query = hackerNewsDefaultQuery
	}
	u := fmt.Sprintf("%s/search?query=%s&tags=story&hitsPerPage=30", h.baseURL, url.QueryEscape(query))

	var resp hackerNewsResponse
	if err := h.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	headlines := make([]entity.Headline, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if hit.Title == "" {
			continue
		}
		link := hit.URL
		if link == "" && hit.ObjectID != "" {
			// Ask HN style stories carry no external URL.
			link = "https://news.ycombinator.com/item?id=" + hit.ObjectID
		}
		headline := entity.Headline{
			Title:  hit.Title,
			Source: h.Name(),
			URL:    link,
		}
		if t, err := time.Parse(time.RFC3339, hit.CreatedAt); err == nil {
			headline.PublishedAt = t
		}
		headlines = append(headlines, headline)
	}
	return headlines, nil
}
