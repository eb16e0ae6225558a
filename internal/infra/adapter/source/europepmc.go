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
	europePMCDefaultBaseURL = "https://www.ebi.ac.uk/europepmc/webservices/rest"
	europePMCDefaultQuery   = "SRC:PPR" // preprints
)

// EuropePMC searches the Europe PMC REST API. A supplied query drives the
// search; browse mode lists recent preprints.
type EuropePMC struct {
	client  *fetcher.Client
	baseURL string
}

// NewEuropePMC creates the Europe PMC adapter.
func NewEuropePMC(client *fetcher.Client) *EuropePMC {
	return &EuropePMC{client: client, baseURL: europePMCDefaultBaseURL}
}

// Name implements Adapter.
func (e *EuropePMC) Name() string { return "Europe PMC" }

type europePMCResponse struct {
	ResultList struct {
		Result []struct {
			Title                string `json:"title"`
			DOI                  string `json:"doi"`
			FirstPublicationDate string `json:"firstPublicationDate"`
		} `json:"result"`
	} `json:"resultList"`
}

// FetchHeadlines implements Adapter.
func (e *EuropePMC) FetchHeadlines(ctx context.Context, query string) ([]entity.Headline, error) {
	if query == "" {
		query = europePMCDefaultQuery
	}
	u := fmt.Sprintf("%s/search?query=%s&format=json&pageSize=20&sort=%s",
		e.baseURL, url.QueryEscape(query), url.QueryEscape("P_PDATE_D desc"))

	var resp europePMCResponse
	if err := e.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	headlines := make([]entity.Headline, 0, len(resp.ResultList.Result))
	for _, r := range resp.ResultList.Result {
		if r.Title == "" {
			continue
		}
		h := entity.Headline{
			Title:  r.Title,
			Source: e.Name(),
		}
		if r.DOI != "" {
			h.URL = "https://doi.org/" + r.DOI
		}
		if t, err := time.Parse("2006-01-02", r.FirstPublicationDate); err == nil {
			h.PublishedAt = t
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
