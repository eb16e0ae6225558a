package synthesizer

import (
	"context"
	"fmt"
	"log/slog"

	"research-radar/internal/domain/entity"
)

// NoOp implements IdeaSynthesizer without calling any external API.
// It is used in local development and when no API key is configured.
type NoOp struct {
	ideaCount int
}

// NewNoOp creates a NoOp synthesizer producing at most ideaCount ideas.
func NewNoOp(ideaCount int) *NoOp {
	if ideaCount <= 0 {
		ideaCount = 5
	}
	slog.Info("initialized noop synthesizer", slog.Int("idea_count", ideaCount))
	return &NoOp{ideaCount: ideaCount}
}

// SynthesizeIdeas derives placeholder ideas from the leading headlines.
func (n *NoOp) SynthesizeIdeas(_ context.Context, headlines []entity.Headline) ([]entity.Idea, error) {
	count := n.ideaCount
	if len(headlines) < count {
		count = len(headlines)
	}

	ideas := make([]entity.Idea, 0, count)
	for _, h := range headlines[:count] {
		ideas = append(ideas, entity.Idea{
			Title:     fmt.Sprintf("Follow-up study: %s", h.Title),
			Rationale: fmt.Sprintf("Recent coverage from %s suggests open questions worth investigating.", h.Source),
			Category:  "general",
		})
	}
	return ideas, nil
}
