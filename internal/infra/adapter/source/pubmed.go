package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"research-radar/internal/domain/entity"
	"research-radar/internal/infra/fetcher"
)

const (
	pubMedDefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	pubMedDefaultTerm    = "breakthrough[Title/Abstract]"
)

// pubMedDateLayouts covers the pubdate shapes E-utilities actually emits.
var pubMedDateLayouts = []string{"2006 Jan 2", "2006 Jan", "2006"}

// PubMed searches PubMed through the NCBI E-utilities pipeline:
// esearch resolves the term to article IDs, esummary resolves IDs to
// titles. A supplied query replaces the default browse term.
type PubMed struct {
	client  *fetcher.Client
	baseURL string
}

// NewPubMed creates the PubMed adapter.
func NewPubMed(client *fetcher.Client) *PubMed {
	return &PubMed{client: client, baseURL: pubMedDefaultBaseURL}
}

// Name implements Adapter.
func (p *PubMed) Name() string { return "PubMed" }

type pubMedSearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// pubMedSummaryResponse is keyed by article ID plus a "uids" index entry,
// so the result map is decoded lazily per ID.
type pubMedSummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type pubMedSummary struct {
	Title   string `json:"title"`
	PubDate string `json:"pubdate"`
}

// FetchHeadlines implements Adapter.
func (p *PubMed) FetchHeadlines(ctx context.Context, query string) ([]entity.Headline, error) {
	term := query
	if term == "" {
		term = pubMedDefaultTerm
	}

	searchURL := fmt.Sprintf("%s/esearch.fcgi?db=pubmed&retmode=json&retmax=20&sort=date&term=%s",
		p.baseURL, url.QueryEscape(term))

	var search pubMedSearchResponse
	if err := p.client.GetJSON(ctx, searchURL, &search); err != nil {
		return nil, err
	}
	ids := search.ESearchResult.IDList
	if len(ids) == 0 {
		return []entity.Headline{}, nil
	}

	summaryURL := fmt.Sprintf("%s/esummary.fcgi?db=pubmed&retmode=json&id=%s",
		p.baseURL, strings.Join(ids, ","))

	var summaries pubMedSummaryResponse
	if err := p.client.GetJSON(ctx, summaryURL, &summaries); err != nil {
		return nil, err
	}

	headlines := make([]entity.Headline, 0, len(ids))
	for _, id := range ids {
		raw, ok := summaries.Result[id]
		if !ok {
			continue
		}
		var s pubMedSummary
		if err := json.Unmarshal(raw, &s); err != nil || s.Title == "" {
			continue
		}
		h := entity.Headline{
			Title:  s.Title,
			Source: p.Name(),
			URL:    fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", id),
		}
		for _, layout := range pubMedDateLayouts {
			if t, err := time.Parse(layout, s.PubDate); err == nil {
				h.PublishedAt = t
				break
			}
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
