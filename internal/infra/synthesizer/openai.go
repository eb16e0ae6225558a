package synthesizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"research-radar/internal/domain/entity"
	"research-radar/internal/observability/metrics"
	"research-radar/internal/resilience/circuitbreaker"
	"research-radar/internal/resilience/retry"
)

// OpenAI implements IdeaSynthesizer using the OpenAI chat completion API.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// NewOpenAI creates an OpenAI synthesizer from the injected configuration.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("openai synthesizer config: %w", err)
	}

	slog.Info("initialized openai synthesizer",
		slog.String("model", cfg.Model),
		slog.Int("idea_count", cfg.IdeaCount))

	return &OpenAI{
		client:         openai.NewClient(cfg.APIKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
		config:         cfg,
	}, nil
}

// SynthesizeIdeas implements IdeaSynthesizer.
func (o *OpenAI) SynthesizeIdeas(ctx context.Context, headlines []entity.Headline) ([]entity.Idea, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	var ideas []entity.Idea

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doSynthesize(ctx, headlines)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}
		ideas = cbResult.([]entity.Idea)
		return nil
	})
	if retryErr != nil {
		return nil, fmt.Errorf("openai synthesis failed after retries: %w", retryErr)
	}

	metrics.RecordIdeasSynthesized(len(ideas))
	return ideas, nil
}

func (o *OpenAI) doSynthesize(ctx context.Context, headlines []entity.Headline) ([]entity.Idea, error) {
	prompt := buildPrompt(headlines, o.config.IdeaCount)

	slog.InfoContext(ctx, "starting idea synthesis",
		slog.Int("headlines", len(headlines)),
		slog.String("model", o.config.Model))

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: o.config.MaxTokens,
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "idea synthesis failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai api returned no choices")
	}

	ideas, err := parseIdeas(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("openai response: %w", err)
	}

	slog.InfoContext(ctx, "idea synthesis completed",
		slog.Int("ideas", len(ideas)),
		slog.Duration("duration", duration))
	return ideas, nil
}
