package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SourcesConfig controls which source adapters are built and how outbound
// fetches behave. It is loaded from an optional YAML file; when the file is
// absent every source is enabled with default fetch settings.
//
// Example file:
//
//	fetch_timeout: 5s
//	user_agent: research-radar/1.0
//	disabled:
//	  - reddit
//	  - openalex
type SourcesConfig struct {
	// FetchTimeout bounds every single outbound request. Each request gets
	// its own deadline; expiry aborts only that request.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// UserAgent is sent on every outbound request.
	UserAgent string `yaml:"user_agent"`

	// Disabled lists adapter names (case-insensitive) to leave out of the
	// fan-out, e.g. "reddit" or "hacker news".
	Disabled []string `yaml:"disabled"`
}

// DefaultSourcesConfig returns the configuration used when no YAML file is
// provided. The 5 second timeout is the reference bound for a single
// outbound request.
func DefaultSourcesConfig() SourcesConfig {
	return SourcesConfig{
		FetchTimeout: 5 * time.Second,
		UserAgent:    "research-radar/1.0",
	}
}

// LoadSourcesConfig loads the source configuration.
//
// The path comes from the SOURCES_CONFIG_PATH environment variable; an empty
// path yields the defaults. A missing or malformed file is an error: a
// misconfigured source list should fail startup rather than silently run with
// the wrong sources. The SOURCE_FETCH_TIMEOUT environment variable, when set,
// overrides the file's fetch_timeout.
func LoadSourcesConfig() (SourcesConfig, error) {
	cfg := DefaultSourcesConfig()

	path := os.Getenv("SOURCES_CONFIG_PATH")
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return SourcesConfig{}, fmt.Errorf("read sources config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return SourcesConfig{}, fmt.Errorf("parse sources config: %w", err)
		}
		if cfg.FetchTimeout <= 0 {
			cfg.FetchTimeout = DefaultSourcesConfig().FetchTimeout
		}
		if cfg.UserAgent == "" {
			cfg.UserAgent = DefaultSourcesConfig().UserAgent
		}
		slog.Info("sources config loaded",
			slog.String("path", path),
			slog.Int("disabled", len(cfg.Disabled)))
	}

	cfg.FetchTimeout = GetEnvDuration("SOURCE_FETCH_TIMEOUT", cfg.FetchTimeout)
	return cfg, nil
}

// IsDisabled reports whether the named adapter is switched off.
// Matching is case-insensitive.
func (c *SourcesConfig) IsDisabled(name string) bool {
	for _, d := range c.Disabled {
		if strings.EqualFold(d, name) {
			return true
		}
	}
	return false
}
