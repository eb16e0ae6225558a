package source

import (
	"context"
	"fmt"
	"time"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

const rxivDefaultBaseURL = "https://api.biorxiv.org"

// rxivWindow is how far back the browse window reaches.
const rxivWindow = 7 * 24 * time.Hour

// Rxiv fetches recent preprints from the bioRxiv/medRxiv details API.
// The API has no full-text search, so the query is ignored and the adapter
// always browses the most recent window. One type serves both servers since
// they share the same API family.
type Rxiv struct {
	client   *fetcher.Client
	baseURL  string
	server   string // "biorxiv" or "medrxiv"
	label    string
	siteHost string
	now      func() time.Time
}

// NewBioRxiv creates the bioRxiv adapter.
func NewBioRxiv(client *fetcher.Client) *Rxiv {
	return &Rxiv{
		client:   client,
		baseURL:  rxivDefaultBaseURL,
		server:   "biorxiv",
		label:    "bioRxiv",
		siteHost: "www.biorxiv.org",
		now:      time.Now,
	}
}

// NewMedRxiv creates the medRxiv adapter.
func NewMedRxiv(client *fetcher.Client) *Rxiv {
	return &Rxiv{
		client:   client,
		baseURL:  rxivDefaultBaseURL,
		server:   "medrxiv",
		label:    "medRxiv",
		siteHost: "www.medrxiv.org",
		now:      time.Now,
	}
}

// Name implements Adapter.
func (r *Rxiv) Name() string { return r.label }

// rxivResponse mirrors the details API payload. Fields beyond the ones
// mapped here are ignored.
type rxivResponse struct {
	Collection []struct {
		Title string `json:"title"`
		DOI   string `json:"doi"`
		Date  string `json:"date"`
	} `json:"collection"`
}

// FetchHeadlines implements Adapter. The query parameter is ignored.
func (r *Rxiv) FetchHeadlines(ctx context.Context, _ string) ([]entity.Headline, error) {
	to := r.now()
	from := to.Add(-rxivWindow)
	u := fmt.Sprintf("%s/details/%s/%s/%s/0",
		r.baseURL, r.server, from.Format("2006-01-02"), to.Format("2006-01-02"))

	var resp rxivResponse
	if err := r.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	// An absent collection decodes to nil and yields an empty list.
	headlines := make([]entity.Headline, 0, len(resp.Collection))
	for _, item := range resp.Collection {
		if item.Title == "" {
			continue
		}
		h := entity.Headline{
			Title:  item.Title,
			Source: r.label,
		}
		if item.DOI != "" {
			h.URL = fmt.Sprintf("https://%s/content/%sv1", r.siteHost, item.DOI)
		}
		if t, err := time.Parse("2006-01-02", item.Date); err == nil {
			h.PublishedAt = t
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
