package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPubMedTwoStepPipeline(t *testing.T) {
	var searchTerm, summaryIDs string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/esearch.fcgi"):
			searchTerm = r.URL.Query().Get("term")
			_, _ = w.Write([]byte(`{"esearchresult": {"idlist": ["111", "222"]}}`))
		case strings.HasPrefix(r.URL.Path, "/esummary.fcgi"):
			summaryIDs = r.URL.Query().Get("id")
			_, _ = w.Write([]byte(`{"result": {
				"uids": ["111", "222"],
				"111": {"title": "Gut microbiome and cognition", "pubdate": "2024 Aug 2"},
				"222": {"title": "mRNA vaccine platform advances", "pubdate": "2024 Aug"}
			}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewPubMed(testClient(t))
	p.baseURL = srv.URL

	got, err := p.FetchHeadlines(context.Background(), "microbiome")
	if err != nil {
		t.Fatalf("FetchHeadlines() error = %v", err)
	}
	if searchTerm != "microbiome" {
		t.Errorf("search term = %q", searchTerm)
	}
	if summaryIDs != "111,222" {
		t.Errorf("summary ids = %q", summaryIDs)
	}
	if len(got) != 2 {
		t.Fatalf("got %d headlines, want 2", len(got))
	}
	if got[0].Title != "Gut microbiome and cognition" {
		t.Errorf("first title = %q (id order must be preserved)", got[0].Title)
	}
	if got[0].URL != "https://pubmed.ncbi.nlm.nih.gov/111/" {
		t.Errorf("url = %q", got[0].URL)
	}
	if got[0].PublishedAt.IsZero() {
		t.Error("day-precision pubdate should parse")
	}
	if got[1].PublishedAt.IsZero() {
		t.Error("month-precision pubdate should parse")
	}
}

func TestPubMedEmptyIDList(t *testing.T) {
	summaryCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/esummary.fcgi") {
			summaryCalled = true
		}
		_, _ = w.Write([]byte(`{"esearchresult": {"idlist": []}}`))
	}))
	defer srv.Close()

	p := NewPubMed(testClient(t))
	p.baseURL = srv.URL

	got, err := p.FetchHeadlines(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("FetchHeadlines() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d headlines, want 0", len(got))
	}
	if summaryCalled {
		t.Error("esummary should not be called for an empty id list")
	}
}

func TestPubMedBrowseUsesDefaultTerm(t *testing.T) {
	var searchTerm string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searchTerm = r.URL.Query().Get("term")
		_, _ = w.Write([]byte(`{"esearchresult": {"idlist": []}}`))
	}))
	defer srv.Close()

	p := NewPubMed(testClient(t))
	p.baseURL = srv.URL

	if _, err := p.FetchHeadlines(context.Background(), ""); err != nil {
		t.Fatalf("FetchHeadlines() error = %v", err)
	}
	if searchTerm != pubMedDefaultTerm {
		t.Errorf("browse term = %q, want %q", searchTerm, pubMedDefaultTerm)
	}
}
