package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"research-radar/internal/domain/entity"

	"github.com/google/uuid"
)

// SlackConfig contains configuration for Slack webhook delivery.
type SlackConfig struct {
	// Enabled indicates whether Slack delivery is enabled
	Enabled bool

	// WebhookURL is the Slack Incoming Webhook URL (includes authentication token)
	WebhookURL string

	// Timeout is the HTTP request timeout for Slack API calls
	Timeout time.Duration
}

// SlackNotifier delivers digests to Slack via Incoming Webhook.
type SlackNotifier struct {
	config      SlackConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewSlackNotifier creates a SlackNotifier with the specified configuration.
// The rate limiter is set to 1 request/second with a burst of 1, matching
// the Slack webhook limit of 1 message per second.
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 1),
	}
}

// SlackWebhookPayload represents the JSON payload sent to the Slack webhook
// using Block Kit.
type SlackWebhookPayload struct {
	Text   string       `json:"text"`   // Fallback text (required)
	Blocks []SlackBlock `json:"blocks"` // Rich formatting blocks
}

// SlackBlock represents a Slack Block Kit block.
type SlackBlock struct {
	Type     string            `json:"type"`               // "header", "section", "context"
	Text     *SlackTextObject  `json:"text,omitempty"`     // Text content (for header, section)
	Elements []SlackTextObject `json:"elements,omitempty"` // Elements (for context)
}

// SlackTextObject represents a text object in Slack Block Kit.
type SlackTextObject struct {
	Type string `json:"type"` // "mrkdwn" or "plain_text"
	Text string `json:"text"` // Actual text content
}

const (
	// Slack Block Kit limits
	maxSectionTextLength = 3000
	maxFallbackLength    = 150

	slackTruncationSuffix = "..."
)

// buildBlockKitPayload creates a Slack webhook payload from a digest.
//
// The payload includes:
//   - Header block: Digest date
//   - Section blocks: One per idea (bold title + rationale), truncated to
//     fit Block Kit limits
//   - Context block: Headline and source counts
func (s *SlackNotifier) buildBlockKitPayload(digest *entity.Digest) SlackWebhookPayload {
	date := digest.GeneratedAt.Format("2006-01-02")

	fallbackText := fmt.Sprintf("Research digest for %s: %d ideas", date, len(digest.Ideas))
	if len(fallbackText) > maxFallbackLength {
		fallbackText = fallbackText[:maxFallbackLength-len(slackTruncationSuffix)] + slackTruncationSuffix
	}

	blocks := []SlackBlock{
		{
			Type: "header",
			Text: &SlackTextObject{
				Type: "plain_text",
				Text: fmt.Sprintf("Research digest for %s", date),
			},
		},
	}

	for i, idea := range digest.Ideas {
		var b strings.Builder
		fmt.Fprintf(&b, "*%d. %s*", i+1, idea.Title)
		if idea.Category != "" {
			fmt.Fprintf(&b, " `%s`", idea.Category)
		}
		if idea.Rationale != "" {
			b.WriteString("\n")
			b.WriteString(idea.Rationale)
		}

		blocks = append(blocks, SlackBlock{
			Type: "section",
			Text: &SlackTextObject{
				Type: "mrkdwn",
				Text: truncateText(b.String(), maxSectionTextLength, slackTruncationSuffix),
			},
		})
	}

	blocks = append(blocks, SlackBlock{
		Type: "context",
		Elements: []SlackTextObject{
			{
				Type: "mrkdwn",
				Text: fmt.Sprintf("%d headlines from %d sources • %s",
					digest.HeadlineCount, digest.SourceCount,
					digest.GeneratedAt.Format(time.RFC3339)),
			},
		},
	})

	return SlackWebhookPayload{
		Text:   fallbackText,
		Blocks: blocks,
	}
}

// sendWebhookRequest sends one Slack webhook request for the digest.
//
// Error types:
//   - 429: Rate limit error (retryable, contains retry_after duration)
//   - 4xx (non-429): Client error (non-retryable)
//   - 5xx: Server error (retryable)
//   - Network error: Connection/timeout error (retryable)
func (s *SlackNotifier) sendWebhookRequest(ctx context.Context, digest *entity.Digest) error {
	payload := s.buildBlockKitPayload(digest)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	// Slack returns "ok" as plain text on success
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := extractRetryAfter(resp, body)
		return &RateLimitError{
			Message:    "Slack rate limit exceeded",
			RetryAfter: retryAfter,
		}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Slack API client error: %s", string(body)),
		}
	}

	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Slack API server error: %s", string(body)),
		}
	}

	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// sendWebhookRequestWithRetry sends the digest with retry logic.
//
// Retry strategy:
//   - Max attempts: 2
//   - Base delay: 5 seconds
//   - 429 errors: Use retry_after from the response (or Retry-After header)
//   - Server errors (5xx): Exponential backoff (5s, 10s)
//   - Client errors (4xx): No retry, fail immediately
//
// All attempts are logged with request_id for tracing.
func (s *SlackNotifier) sendWebhookRequestWithRetry(ctx context.Context, digest *entity.Digest) error {
	const (
		maxAttempts = 2
		baseDelay   = 5 * time.Second
	)

	requestID, _ := ctx.Value(requestIDKey).(string)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := s.sendWebhookRequest(ctx, digest)

		if err == nil {
			slog.Info("Slack digest delivery successful",
				slog.String("request_id", requestID),
				slog.Int("ideas", len(digest.Ideas)),
				slog.Int("attempt", attempt))
			return nil
		}

		lastErr = err

		if rateLimitErr, ok := is429Error(err); ok {
			slog.Warn("Slack rate limit hit, backing off",
				slog.String("request_id", requestID),
				slog.Duration("retry_after", rateLimitErr.RetryAfter),
				slog.Int("attempt", attempt))

			select {
			case <-time.After(rateLimitErr.RetryAfter):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during rate limit backoff: %w", ctx.Err())
			}
		}

		if !isRetryableError(err) {
			slog.Error("Slack digest delivery failed with non-retryable error",
				slog.String("request_id", requestID),
				slog.Any("error", err),
				slog.Int("attempt", attempt))
			return err
		}

		if attempt < maxAttempts {
			delay := baseDelay * time.Duration(attempt)
			slog.Warn("Slack webhook request failed, retrying",
				slog.String("request_id", requestID),
				slog.Any("error", err),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))

			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}
	}

	slog.Error("Slack digest delivery failed after all retries",
		slog.String("request_id", requestID),
		slog.Any("error", lastErr),
		slog.Int("max_attempts", maxAttempts))

	return fmt.Errorf("slack delivery failed after %d attempts: %w", maxAttempts, lastErr)
}

// NotifyDigest delivers the digest to the configured Slack webhook.
// This method implements the Notifier interface.
//
// It generates a unique request_id for tracing, applies rate limiting
// (1 req/s, burst of 1), and then sends the webhook request with retry
// logic.
func (s *SlackNotifier) NotifyDigest(ctx context.Context, digest *entity.Digest) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	slog.Info("Starting Slack digest delivery",
		slog.String("request_id", requestID),
		slog.Int("ideas", len(digest.Ideas)),
		slog.Int("headlines", digest.HeadlineCount))

	if err := s.rateLimiter.Allow(ctx); err != nil {
		slog.Error("Rate limiter error",
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return fmt.Errorf("rate limiter error: %w", err)
	}

	return s.sendWebhookRequestWithRetry(ctx, digest)
}
