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
	semanticScholarDefaultBaseURL = "https://api.semanticscholar.org/graph/v1"
	semanticScholarDefaultQuery   = "novel method"
)

// SemanticScholar searches the Semantic Scholar Graph API paper search.
// A supplied query drives the search; browse mode uses a fixed default.
type SemanticScholar struct {
	client  *fetcher.Client
	baseURL string
}

// NewSemanticScholar creates the Semantic Scholar adapter.
func NewSemanticScholar(client *fetcher.Client) *SemanticScholar {
	return &SemanticScholar{client: client, baseURL: semanticScholarDefaultBaseURL}
}

// Name implements Adapter.
func (s *SemanticScholar) Name() string { return "Semantic Scholar" }

type semanticScholarResponse struct {
	Data []struct {
		Title           string `json:"title"`
		URL             string `json:"url"`
		PublicationDate string `json:"publicationDate"`
	} `json:"data"`
}

// FetchHeadlines implements Adapter.
func (s *SemanticScholar) FetchHeadlines(ctx context.Context, query string) ([]entity.Headline, error) {
	if query == "" {
		query = semanticScholarDefaultQuery
	}
	u := fmt.Sprintf("%s/paper/search?query=%s&limit=20&fields=title,url,publicationDate",
		s.baseURL, url.QueryEscape(query))

	var resp semanticScholarResponse
	if err := s.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	headlines := make([]entity.Headline, 0, len(resp.Data))
	for _, paper := range resp.Data {
		if paper.Title == "" {
			continue
		}
		h := entity.Headline{
			Title:  paper.Title,
			Source: s.Name(),
			URL:    paper.URL,
		}
		if t, err := time.Parse("2006-01-02", paper.PublicationDate); err == nil {
			h.PublishedAt = t
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
