// Package synthesizer provides clients for the idea-synthesis collaborator:
// an LLM that turns a batch of headlines into a ranked list of research
// ideas. Claude (Anthropic) and OpenAI implementations are available, plus
// a noop for development. All configuration is injected; nothing reads
// ambient global state at call time.
package synthesizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"research-radar/internal/domain/entity"
)

// IdeaSynthesizer turns a headline batch into ranked research ideas.
type IdeaSynthesizer interface {
	SynthesizeIdeas(ctx context.Context, headlines []entity.Headline) ([]entity.Idea, error)
}

// buildPrompt renders the synthesis instruction for a headline batch.
// The collaborator is asked for a strict JSON array so the response can be
// parsed without prose scraping.
func buildPrompt(headlines []entity.Headline, ideaCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are given %d recent research headlines from preprint servers, journals, and forums.\n", len(headlines))
	fmt.Fprintf(&b, "Synthesize the %d most promising research ideas they suggest, ranked best first.\n", ideaCount)
	b.WriteString("Respond with a JSON array only, each element an object with keys ")
	b.WriteString(`"title", "rationale", and "category".` + "\n\nHeadlines:\n")
	for _, h := range headlines {
		fmt.Fprintf(&b, "- [%s] %s\n", h.Source, h.Title)
	}
	return b.String()
}

// ideaPayload is the wire shape expected back from the collaborator.
type ideaPayload struct {
	Title     string `json:"title"`
	Rationale string `json:"rationale"`
	Category  string `json:"category"`
}

// parseIdeas extracts the idea list from the collaborator's response text.
// Models occasionally wrap the array in prose or a code fence, so parsing
// starts at the first '[' and ends at the last ']'.
func parseIdeas(raw string) ([]entity.Idea, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var payload []ideaPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("decode ideas: %w", err)
	}

	ideas := make([]entity.Idea, 0, len(payload))
	for _, p := range payload {
		if p.Title == "" {
			continue
		}
		ideas = append(ideas, entity.Idea{
			Title:     p.Title,
			Rationale: p.Rationale,
			Category:  p.Category,
		})
	}
	if len(ideas) == 0 {
		return nil, fmt.Errorf("response contained no usable ideas")
	}
	return ideas, nil
}
