package synthesizer

import (
	"fmt"
	"time"

	"research-radar/internal/config"
)

// Config holds the injected parameters shared by the synthesizer clients.
type Config struct {
	// APIKey authenticates against the vendor API.
	APIKey string

	// Model is the vendor model identifier.
	Model string

	// IdeaCount is how many ranked ideas to request per batch.
	IdeaCount int

	// MaxTokens bounds the response size.
	MaxTokens int

	// Timeout is the maximum duration for a single synthesis API call.
	Timeout time.Duration
}

// LoadConfig loads synthesizer settings from the environment for the given
// vendor defaults. The API key is taken from the named variable; the rest
// have warn-and-fallback defaults.
//
// Environment variables:
//   - SYNTHESIZER_MODEL: model override
//   - SYNTHESIZER_IDEA_COUNT: ideas per batch (default 10)
//   - SYNTHESIZER_MAX_TOKENS: response token cap (default 2048)
//   - SYNTHESIZER_TIMEOUT: per-call timeout (default 60s)
func LoadConfig(apiKeyEnv, defaultModel string) Config {
	return Config{
		APIKey:    config.GetEnvString(apiKeyEnv, ""),
		Model:     config.GetEnvString("SYNTHESIZER_MODEL", defaultModel),
		IdeaCount: config.GetEnvInt("SYNTHESIZER_IDEA_COUNT", 10),
		MaxTokens: config.GetEnvInt("SYNTHESIZER_MAX_TOKENS", 2048),
		Timeout:   config.GetEnvDuration("SYNTHESIZER_TIMEOUT", 60*time.Second),
	}
}

// Validate checks the configuration before a client is built.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.IdeaCount <= 0 {
		return fmt.Errorf("idea count must be positive, got %d", c.IdeaCount)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}
