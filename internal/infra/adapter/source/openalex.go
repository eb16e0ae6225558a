package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

const openAlexDefaultBaseURL = "https://api.openalex.org"

// OpenAlex queries the OpenAlex works API. A supplied query becomes a
// full-text search; browse mode lists the newest indexed works.
type OpenAlex struct {
	client  *fetcher.Client
	baseURL string
}

// NewOpenAlex creates the OpenAlex adapter.
func NewOpenAlex(client *fetcher.Client) *OpenAlex {
	return &OpenAlex{client: client, baseURL: openAlexDefaultBaseURL}
}

// Name implements Adapter.
func (o *OpenAlex) Name() string { return "OpenAlex" }

type openAlexResponse struct {
	Results []struct {
		DisplayName     string `json:"display_name"`
		DOI             string `json:"doi"`
		ID              string `json:"id"`
		PublicationDate string `json:"publication_date"`
	} `json:"results"`
}

// FetchHeadlines implements Adapter.
func (o *OpenAlex) FetchHeadlines(ctx context.Context, query string) ([]entity.Headline, error) {
	u := fmt.Sprintf("%s/works?per-page=20&sort=publication_date:desc", o.baseURL)
	if query != "" {
		u += "&search=" + url.QueryEscape(query)
	}

	var resp openAlexResponse
	if err := o.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	headlines := make([]entity.Headline, 0, len(resp.Results))
	for _, work := range resp.Results {
		if work.DisplayName == "" {
			continue
		}
		link := work.DOI
		if link == "" {
			link = work.ID
		}
		h := entity.Headline{
			Title:  work.DisplayName,
			Source: o.Name(),
			URL:    link,
		}
		if t, err := time.Parse("2006-01-02", work.PublicationDate); err == nil {
			h.PublishedAt = t
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
