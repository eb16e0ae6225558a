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
	crossrefDefaultBaseURL = "https://api.crossref.org"
	crossrefDefaultQuery   = "science"
)

// Crossref searches the Crossref works API. A supplied query drives the
// bibliographic search; browse mode uses a fixed default query since the
// API requires one for relevance-sorted listings.
type Crossref struct {
	client  *fetcher.Client
	baseURL string
}

// NewCrossref creates the Crossref adapter.
func NewCrossref(client *fetcher.Client) *Crossref {
	return &Crossref{client: client, baseURL: crossrefDefaultBaseURL}
}

// Name implements Adapter.
func (c *Crossref) Name() string { return "Crossref" }

type crossrefResponse struct {
	Message struct {
		Items []struct {
			Title   []string `json:"title"`
			URL     string   `json:"URL"`
			Created struct {
				DateTime string `json:"date-time"`
			} `json:"created"`
		} `json:"items"`
	} `json:"message"`
}

// FetchHeadlines implements Adapter.
func (c *Crossref) FetchHeadlines(ctx context.Context, query string) ([]entity.Headline, error) {
	if query == "" {
		query = crossrefDefaultQuery
	}
	u := fmt.Sprintf("%s/works?query=%s&rows=20&sort=created&order=desc", c.baseURL, url.QueryEscape(query))

	var resp crossrefResponse
	if err := c.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	headlines := make([]entity.Headline, 0, len(resp.Message.Items))
	for _, item := range resp.Message.Items {
		// Titles arrive as an array; an empty one means a record without a
		// usable title, skipped rather than treated as an error.
		if len(item.Title) == 0 || item.Title[0] == "" {
			continue
		}
		h := entity.Headline{
			Title:  item.Title[0],
			Source: c.Name(),
			URL:    item.URL,
		}
		if t, err := time.Parse(time.RFC3339, item.Created.DateTime); err == nil {
			h.PublishedAt = t
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
