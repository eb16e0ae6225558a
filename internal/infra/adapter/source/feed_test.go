package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"research-radar/internal/infra/fetcher"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>Gene X Found</title>
      <link>https://example.org/gene-x</link>
      <pubDate>Mon, 05 Aug 2024 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Protein Folding Solved Again</title>
      <link>https://example.org/folding</link>
    </item>
    <item>
      <title></title>
      <link>https://example.org/untitled</link>
    </item>
  </channel>
</rss>`

func testClient(t *testing.T) *fetcher.Client {
	t.Helper()
	return fetcher.NewClient(fetcher.Config{
		Timeout:      2 * time.Second,
		UserAgent:    "research-radar-test",
		PerHostRate:  1000,
		PerHostBurst: 1000,
	})
}

func TestFetchFeedMapsItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	got, err := fetchFeed(context.Background(), testClient(t), srv.URL, "Test Source")
	if err != nil {
		t.Fatalf("fetchFeed() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d headlines, want 2 (untitled item skipped)", len(got))
	}
	if got[0].Title != "Gene X Found" {
		t.Errorf("first title = %q", got[0].Title)
	}
	if got[0].Source != "Test Source" {
		t.Errorf("source = %q, want %q", got[0].Source, "Test Source")
	}
	if got[0].URL != "https://example.org/gene-x" {
		t.Errorf("url = %q", got[0].URL)
	}
	want := time.Date(2024, 8, 5, 10, 0, 0, 0, time.UTC)
	if !got[0].PublishedAt.Equal(want) {
		t.Errorf("publishedAt = %v, want %v", got[0].PublishedAt, want)
	}
	// No date element: fetch time is substituted, never zero.
	if got[1].PublishedAt.IsZero() {
		t.Error("dateless item should get fetch-time substitute")
	}
}

func TestFetchFeedPropagatesParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not xml"))
	}))
	defer srv.Close()

	if _, err := fetchFeed(context.Background(), testClient(t), srv.URL, "Broken"); err == nil {
		t.Fatal("fetchFeed() = nil error, want parse error")
	}
}

func TestBrowseFeedsIsolatesSubFeedFailure(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rssFixture))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	feeds := []subFeed{
		{URL: bad.URL, Label: "Bad Topic"},
		{URL: good.URL, Label: "Good Topic"},
	}
	got, err := browseFeeds(context.Background(), testClient(t), "Test", feeds)
	if err != nil {
		t.Fatalf("browseFeeds() error = %v, want partial success", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d headlines, want 2 from the good sub-feed", len(got))
	}
	for _, h := range got {
		if h.Source != "Good Topic" {
			t.Errorf("unexpected source %q", h.Source)
		}
	}
}

func TestBrowseFeedsErrorsWhenAllFail(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	feeds := []subFeed{{URL: bad.URL, Label: "A"}, {URL: bad.URL, Label: "B"}}
	if _, err := browseFeeds(context.Background(), testClient(t), "Test", feeds); err == nil {
		t.Fatal("browseFeeds() = nil error, want error when every sub-feed fails")
	}
}

func TestBrowseFeedsFetchesSubFeedsConcurrently(t *testing.T) {
	hang := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer hang.Close()

	const timeout = 300 * time.Millisecond
	client := fetcher.NewClient(fetcher.Config{
		Timeout:      timeout,
		PerHostRate:  1000,
		PerHostBurst: 1000,
	})
	feeds := []subFeed{
		{URL: hang.URL, Label: "A"},
		{URL: hang.URL, Label: "B"},
		{URL: hang.URL, Label: "C"},
	}

	start := time.Now()
	_, err := browseFeeds(context.Background(), client, "Test", feeds)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("browseFeeds() = nil error, want error when every sub-feed hangs")
	}
	// Serial fetching would take ~3x the timeout; concurrent settles in ~1x.
	if elapsed > 2*timeout {
		t.Errorf("3 hanging sub-feeds took %v, want about one %v timeout", elapsed, timeout)
	}
}

func TestNatureUsesPerSubjectLabels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	n := NewNature(testClient(t))
	n.feeds = []subFeed{
		{URL: srv.URL, Label: "Nature"},
		{URL: srv.URL, Label: "Nature Genetics"},
	}

	got, err := n.FetchHeadlines(context.Background(), "ignored query")
	if err != nil {
		t.Fatalf("FetchHeadlines() error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d headlines, want 4", len(got))
	}
	if got[0].Source != "Nature" || got[2].Source != "Nature Genetics" {
		t.Errorf("labels = %q, %q", got[0].Source, got[2].Source)
	}
}
