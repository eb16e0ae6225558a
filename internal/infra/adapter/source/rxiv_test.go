package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRxivBrowseWindow(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{
			"collection": [
				{"title": "Single-cell atlas of the zebra finch brain", "doi": "10.1101/2024.08.01.000001", "date": "2024-08-01"},
				{"title": "", "doi": "10.1101/skip", "date": "2024-08-02"}
			]
		}`))
	}))
	defer srv.Close()

	b := NewBioRxiv(testClient(t))
	b.baseURL = srv.URL
	b.now = func() time.Time { return time.Date(2024, 8, 8, 12, 0, 0, 0, time.UTC) }

	got, err := b.FetchHeadlines(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("FetchHeadlines() error = %v", err)
	}

	wantPath := "/details/biorxiv/2024-08-01/2024-08-08/0"
	if gotPath != wantPath {
		t.Errorf("request path = %q, want %q", gotPath, wantPath)
	}
	if len(got) != 1 {
		t.Fatalf("got %d headlines, want 1 (empty title skipped)", len(got))
	}
	if got[0].Source != "bioRxiv" {
		t.Errorf("source = %q", got[0].Source)
	}
	if !strings.Contains(got[0].URL, "www.biorxiv.org/content/10.1101/2024.08.01.000001") {
		t.Errorf("url = %q", got[0].URL)
	}
	if got[0].PublishedAt.IsZero() {
		t.Error("date should be parsed")
	}
}

func TestMedRxivUsesOwnServerAndLabel(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"collection": [{"title": "Trial results", "doi": "10.1101/x", "date": "2024-08-03"}]}`))
	}))
	defer srv.Close()

	m := NewMedRxiv(testClient(t))
	m.baseURL = srv.URL

	got, err := m.FetchHeadlines(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchHeadlines() error = %v", err)
	}
	if !strings.Contains(gotPath, "/details/medrxiv/") {
		t.Errorf("path = %q, want medrxiv server", gotPath)
	}
	if got[0].Source != "medRxiv" {
		t.Errorf("source = %q, want medRxiv", got[0].Source)
	}
	if !strings.Contains(got[0].URL, "www.medrxiv.org") {
		t.Errorf("url = %q, want medrxiv host", got[0].URL)
	}
}

func TestRxivAbsentCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"messages": [{"status": "no posts found"}]}`))
	}))
	defer srv.Close()

	b := NewBioRxiv(testClient(t))
	b.baseURL = srv.URL

	got, err := b.FetchHeadlines(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchHeadlines() error = %v, absent collection must yield empty list", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d headlines, want 0", len(got))
	}
}
