package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSlackBuildBlockKitPayload(t *testing.T) {
	n := NewSlackNotifier(SlackConfig{Enabled: true, WebhookURL: "http://example.com", Timeout: time.Second})
	payload := n.buildBlockKitPayload(testDigest())

	if !strings.Contains(payload.Text, "Research digest for 2026-03-14") {
		t.Errorf("fallback text = %q", payload.Text)
	}
	if !strings.Contains(payload.Text, "2 ideas") {
		t.Errorf("fallback text should mention idea count: %q", payload.Text)
	}

	// header + one section per idea + context
	if len(payload.Blocks) != 4 {
		t.Fatalf("got %d blocks, want 4", len(payload.Blocks))
	}
	if payload.Blocks[0].Type != "header" {
		t.Errorf("first block type = %q, want header", payload.Blocks[0].Type)
	}
	if !strings.Contains(payload.Blocks[1].Text.Text, "*1. Sparse attention for genomics*") {
		t.Errorf("first section = %q", payload.Blocks[1].Text.Text)
	}

	last := payload.Blocks[len(payload.Blocks)-1]
	if last.Type != "context" {
		t.Errorf("last block type = %q, want context", last.Type)
	}
	if !strings.Contains(last.Elements[0].Text, "42 headlines from 13 sources") {
		t.Errorf("context text = %q", last.Elements[0].Text)
	}
}

func TestSlackSectionTruncation(t *testing.T) {
	digest := testDigest()
	digest.Ideas = digest.Ideas[:1]
	digest.Ideas[0].Rationale = strings.Repeat("y", maxSectionTextLength+500)

	n := NewSlackNotifier(SlackConfig{Timeout: time.Second})
	payload := n.buildBlockKitPayload(digest)

	section := payload.Blocks[1].Text.Text
	if len(section) > maxSectionTextLength {
		t.Errorf("section length %d exceeds limit %d", len(section), maxSectionTextLength)
	}
	if !strings.HasSuffix(section, slackTruncationSuffix) {
		t.Errorf("truncated section should end with %q", slackTruncationSuffix)
	}
}

func TestSlackNotifyDigest(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var received SlackWebhookPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				t.Errorf("decode payload: %v", err)
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		n := NewSlackNotifier(SlackConfig{Enabled: true, WebhookURL: server.URL, Timeout: 5 * time.Second})
		if err := n.NotifyDigest(context.Background(), testDigest()); err != nil {
			t.Fatalf("NotifyDigest() error = %v", err)
		}
		if len(received.Blocks) == 0 {
			t.Error("server received no blocks")
		}
	})

	t.Run("client error is not retried", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			http.Error(w, "invalid_payload", http.StatusBadRequest)
		}))
		defer server.Close()

		n := NewSlackNotifier(SlackConfig{Enabled: true, WebhookURL: server.URL, Timeout: 5 * time.Second})
		if err := n.NotifyDigest(context.Background(), testDigest()); err == nil {
			t.Fatal("NotifyDigest() error = nil, want error")
		}
		if calls != 1 {
			t.Errorf("server called %d times, want 1", calls)
		}
	})
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"server error", &ServerError{StatusCode: 500, Message: "boom"}, true},
		{"client error", &ClientError{StatusCode: 400, Message: "bad"}, false},
		{"rate limit", &RateLimitError{RetryAfter: time.Second}, false},
		{"plain error", context.DeadlineExceeded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 100, "..."); got != "short" {
		t.Errorf("truncateText() = %q", got)
	}
	got := truncateText(strings.Repeat("a", 20), 10, "...")
	if got != strings.Repeat("a", 7)+"..." {
		t.Errorf("truncateText() = %q", got)
	}
}
