package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DigestConfig holds the configuration for the digest worker.
// It controls the cron schedule, timezone, batch sizing, and the
// health/metrics port. All fields have defaults; invalid environment
// values fall back with a warning (fail-open strategy).
type DigestConfig struct {
	// CronSchedule is the cron expression for digest runs.
	// Default: "30 6 * * *" (every day at 6:30).
	CronSchedule string

	// Timezone is the IANA timezone name used for cron scheduling.
	// Default: "UTC".
	Timezone string

	// MaxHeadlines caps the number of headlines handed to the
	// idea-synthesis collaborator per run. Default: 60.
	MaxHeadlines int

	// RunTimeout bounds a single digest run end to end.
	// Default: 10 minutes.
	RunTimeout time.Duration

	// HealthPort is the port for the worker's health/metrics server.
	// Default: 9091.
	HealthPort int
}

// DefaultDigestConfig returns production-ready defaults for the digest worker.
func DefaultDigestConfig() DigestConfig {
	return DigestConfig{
		CronSchedule: "30 6 * * *",
		Timezone:     "UTC",
		MaxHeadlines: 60,
		RunTimeout:   10 * time.Minute,
		HealthPort:   9091,
	}
}

// LoadDigestConfig loads the digest worker configuration from environment
// variables with validation. Invalid values are replaced by defaults and
// logged; the function only errors when even the fallback is unusable.
//
// Environment variables:
//   - DIGEST_CRON_SCHEDULE: cron expression (5 fields)
//   - DIGEST_TIMEZONE: IANA timezone name
//   - DIGEST_MAX_HEADLINES: batch cap, range 1-500
//   - DIGEST_RUN_TIMEOUT: Go duration, must be positive
//   - DIGEST_HEALTH_PORT: port, range 1024-65535
func LoadDigestConfig(logger *slog.Logger) (DigestConfig, error) {
	defaults := DefaultDigestConfig()
	cfg := DigestConfig{
		CronSchedule: GetEnvString("DIGEST_CRON_SCHEDULE", defaults.CronSchedule),
		Timezone:     GetEnvString("DIGEST_TIMEZONE", defaults.Timezone),
		MaxHeadlines: GetEnvInt("DIGEST_MAX_HEADLINES", defaults.MaxHeadlines),
		RunTimeout:   GetEnvDuration("DIGEST_RUN_TIMEOUT", defaults.RunTimeout),
		HealthPort:   GetEnvInt("DIGEST_HEALTH_PORT", defaults.HealthPort),
	}

	if _, err := cron.ParseStandard(cfg.CronSchedule); err != nil {
		logger.Warn("invalid cron schedule, using default",
			slog.String("value", cfg.CronSchedule),
			slog.String("default", defaults.CronSchedule),
			slog.Any("error", err))
		cfg.CronSchedule = defaults.CronSchedule
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		logger.Warn("invalid timezone, using default",
			slog.String("value", cfg.Timezone),
			slog.String("default", defaults.Timezone),
			slog.Any("error", err))
		cfg.Timezone = defaults.Timezone
	}

	if cfg.MaxHeadlines < 1 || cfg.MaxHeadlines > 500 {
		logger.Warn("digest max headlines out of range, using default",
			slog.Int("value", cfg.MaxHeadlines),
			slog.Int("default", defaults.MaxHeadlines))
		cfg.MaxHeadlines = defaults.MaxHeadlines
	}

	if cfg.RunTimeout <= 0 {
		logger.Warn("digest run timeout must be positive, using default",
			slog.Duration("value", cfg.RunTimeout),
			slog.Duration("default", defaults.RunTimeout))
		cfg.RunTimeout = defaults.RunTimeout
	}

	if cfg.HealthPort < 1024 || cfg.HealthPort > 65535 {
		logger.Warn("digest health port out of range, using default",
			slog.Int("value", cfg.HealthPort),
			slog.Int("default", defaults.HealthPort))
		cfg.HealthPort = defaults.HealthPort
	}

	if err := cfg.Validate(); err != nil {
		return DigestConfig{}, fmt.Errorf("digest config invalid after fallback: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *DigestConfig) Validate() error {
	if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
		return fmt.Errorf("cron schedule: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if c.MaxHeadlines <= 0 {
		return fmt.Errorf("max headlines must be positive, got %d", c.MaxHeadlines)
	}
	if c.RunTimeout <= 0 {
		return fmt.Errorf("run timeout must be positive, got %v", c.RunTimeout)
	}
	if c.HealthPort <= 0 {
		return fmt.Errorf("health port must be positive, got %d", c.HealthPort)
	}
	return nil
}
