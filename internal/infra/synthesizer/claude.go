package synthesizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"research-radar/internal/domain/entity"
	"research-radar/internal/observability/metrics"
	"research-radar/internal/resilience/circuitbreaker"
	"research-radar/internal/resilience/retry"
)

// Claude implements IdeaSynthesizer using Anthropic's Claude API.
// It includes circuit breaker and retry logic for improved reliability.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// NewClaude creates a Claude synthesizer from the injected configuration.
func NewClaude(cfg Config) (*Claude, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("claude synthesizer config: %w", err)
	}

	slog.Info("initialized claude synthesizer",
		slog.String("model", cfg.Model),
		slog.Int("idea_count", cfg.IdeaCount))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
		config:         cfg,
	}, nil
}

// SynthesizeIdeas implements IdeaSynthesizer.
// It uses circuit breaker and retry logic around a single API call.
func (c *Claude) SynthesizeIdeas(ctx context.Context, headlines []entity.Headline) ([]entity.Idea, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var ideas []entity.Idea

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doSynthesize(ctx, headlines)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}
		ideas = cbResult.([]entity.Idea)
		return nil
	})
	if retryErr != nil {
		return nil, fmt.Errorf("claude synthesis failed after retries: %w", retryErr)
	}

	metrics.RecordIdeasSynthesized(len(ideas))
	return ideas, nil
}

// doSynthesize performs the actual API call without retry or circuit breaker.
func (c *Claude) doSynthesize(ctx context.Context, headlines []entity.Headline) ([]entity.Idea, error) {
	prompt := buildPrompt(headlines, c.config.IdeaCount)

	slog.InfoContext(ctx, "starting idea synthesis",
		slog.Int("headlines", len(headlines)),
		slog.String("model", c.config.Model))

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "idea synthesis failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return nil, fmt.Errorf("claude api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return nil, fmt.Errorf("claude api returned unexpected response type")
	}

	ideas, err := parseIdeas(textBlock.Text)
	if err != nil {
		return nil, fmt.Errorf("claude response: %w", err)
	}

	slog.InfoContext(ctx, "idea synthesis completed",
		slog.Int("ideas", len(ideas)),
		slog.Duration("duration", duration))
	return ideas, nil
}
