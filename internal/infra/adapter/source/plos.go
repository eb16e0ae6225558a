package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

const plosDefaultBaseURL = "https://api.plos.org"

// PLOS searches the PLOS Solr API. A supplied query becomes a title search;
// browse mode lists the most recent publications.
type PLOS struct {
	client  *fetcher.Client
	baseURL string
}

// NewPLOS creates the PLOS adapter.
func NewPLOS(client *fetcher.Client) *PLOS {
	return &PLOS{client: client, baseURL: plosDefaultBaseURL}
}

// Name implements Adapter.
func (p *PLOS) Name() string { return "PLOS" }

type plosResponse struct {
	Response struct {
		Docs []struct {
			ID              string `json:"id"`
			TitleDisplay    string `json:"title_display"`
			PublicationDate string `json:"publication_date"`
		} `json:"docs"`
	} `json:"response"`
}

// FetchHeadlines implements Adapter.
func (p *PLOS) FetchHeadlines(ctx context.Context, query string) ([]entity.Headline, error) {
	q := "*:*"
	if query != "" {
		q = fmt.Sprintf("title:%q", query)
	}
	u := fmt.Sprintf("%s/search?q=%s&fl=id,title_display,publication_date&wt=json&rows=20&sort=%s",
		p.baseURL, url.QueryEscape(q), url.QueryEscape("publication_date desc"))

	var resp plosResponse
	if err := p.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	headlines := make([]entity.Headline, 0, len(resp.Response.Docs))
	for _, doc := range resp.Response.Docs {
		if doc.TitleDisplay == "" {
			continue
		}
		h := entity.Headline{
			Title:  doc.TitleDisplay,
			Source: p.Name(),
		}
		if doc.ID != "" {
			h.URL = "https://journals.plos.org/plosone/article?id=" + doc.ID
		}
		if t, err := time.Parse(time.RFC3339, doc.PublicationDate); err == nil {
			h.PublishedAt = t
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
