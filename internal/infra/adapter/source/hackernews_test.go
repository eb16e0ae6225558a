package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHackerNewsSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hits": [
				{"title": "New LLM architecture", "url": "https://example.org/llm", "objectID": "1", "created_at": "2024-08-05T10:00:00Z"},
				{"title": "Ask HN: research tools?", "url": "", "objectID": "2", "created_at": "2024-08-05T11:00:00Z"},
				{"title": "", "url": "https://example.org/untitled", "objectID": "3", "created_at": "bad-date"}
			]
		}`))
	}))
	defer srv.Close()

	hn := NewHackerNews(testClient(t))
	hn.baseURL = srv.URL

	got, err := hn.FetchHeadlines(context.Background(), "transformers")
	if err != nil {
		t.Fatalf("FetchHeadlines() error = %v", err)
	}
	if gotQuery != "transformers" {
		t.Errorf("query sent = %q, want %q", gotQuery, "transformers")
	}
	if len(got) != 2 {
		t.Fatalf("got %d headlines, want 2", len(got))
	}
	if got[0].URL != "https://example.org/llm" {
		t.Errorf("external url = %q", got[0].URL)
	}
	if got[1].URL != "https://news.ycombinator.com/item?id=2" {
		t.Errorf("self-post url = %q, want item permalink", got[1].URL)
	}
	if got[0].PublishedAt.IsZero() {
		t.Error("created_at should be parsed")
	}
}

func TestHackerNewsBrowseFallsBackToDefaultQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(`{"hits": []}`))
	}))
	defer srv.Close()

	hn := NewHackerNews(testClient(t))
	hn.baseURL = srv.URL

	got, err := hn.FetchHeadlines(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchHeadlines() error = %v", err)
	}
	if gotQuery != hackerNewsDefaultQuery {
		t.Errorf("browse query = %q, want default %q", gotQuery, hackerNewsDefaultQuery)
	}
	if len(got) != 0 {
		t.Errorf("got %d headlines, want 0", len(got))
	}
}

func TestHackerNewsAbsentHitsArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	hn := NewHackerNews(testClient(t))
	hn.baseURL = srv.URL

	got, err := hn.FetchHeadlines(context.Background(), "anything")
	if err != nil {
		t.Fatalf("FetchHeadlines() error = %v, absent array must not be fatal", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d headlines, want 0", len(got))
	}
}
