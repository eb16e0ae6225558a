package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"research-radar/internal/config"
	"research-radar/internal/infra/adapter/source"
	"research-radar/internal/infra/fetcher"
	"research-radar/internal/infra/notifier"
	"research-radar/internal/infra/synthesizer"
	"research-radar/internal/observability/logging"
	"research-radar/internal/usecase/aggregate"
	digestUC "research-radar/internal/usecase/digest"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	digestCfg, err := config.LoadDigestConfig(logger)
	if err != nil {
		logger.Error("failed to load digest configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("digest configuration loaded",
		slog.String("cron_schedule", digestCfg.CronSchedule),
		slog.String("timezone", digestCfg.Timezone),
		slog.Int("max_headlines", digestCfg.MaxHeadlines),
		slog.Duration("run_timeout", digestCfg.RunTimeout),
		slog.Int("health_port", digestCfg.HealthPort))

	aggregator, err := setupAggregator(logger)
	if err != nil {
		logger.Error("failed to set up aggregator", slog.Any("error", err))
		os.Exit(1)
	}

	synth := createSynthesizer(logger)
	notifiers := setupNotifiers(logger)

	svc := digestUC.NewService(aggregator, synth, notifiers, digestCfg.MaxHeadlines)

	healthServer := startHealthServer(ctx, logger, digestCfg.HealthPort)

	startCronWorker(ctx, logger, svc, digestCfg, healthServer)
}

// setupAggregator builds the outbound client, the source adapter set, and
// the aggregation service from configuration.
func setupAggregator(logger *slog.Logger) (*aggregate.Service, error) {
	sourcesCfg, err := config.LoadSourcesConfig()
	if err != nil {
		return nil, err
	}

	client := fetcher.NewClient(fetcher.Config{
		Timeout:   sourcesCfg.FetchTimeout,
		UserAgent: sourcesCfg.UserAgent,
	})

	adapters := source.DefaultAdapters(client, sourcesCfg)
	svcAdapters := make([]aggregate.SourceAdapter, 0, len(adapters))
	for _, a := range adapters {
		svcAdapters = append(svcAdapters, a)
	}

	logger.Info("source adapters registered", slog.Int("count", len(svcAdapters)))
	return aggregate.NewService(svcAdapters), nil
}

// createSynthesizer selects the idea-synthesis backend based on the
// SYNTHESIZER_TYPE environment variable. When unset, the backend is chosen
// from whichever API key is present, falling back to the noop synthesizer
// so the worker always starts.
func createSynthesizer(logger *slog.Logger) digestUC.Synthesizer {
	synthType := os.Getenv("SYNTHESIZER_TYPE")
	if synthType == "" {
		switch {
		case os.Getenv("ANTHROPIC_API_KEY") != "":
			synthType = "claude"
		case os.Getenv("OPENAI_API_KEY") != "":
			synthType = "openai"
		default:
			synthType = "noop"
		}
	}

	switch synthType {
	case "claude":
		cfg := synthesizer.LoadConfig("ANTHROPIC_API_KEY", "claude-sonnet-4-20250514")
		s, err := synthesizer.NewClaude(cfg)
		if err != nil {
			logger.Error("failed to create claude synthesizer", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("using Claude API for idea synthesis", slog.String("model", cfg.Model))
		return s
	case "openai":
		cfg := synthesizer.LoadConfig("OPENAI_API_KEY", "gpt-4o-mini")
		s, err := synthesizer.NewOpenAI(cfg)
		if err != nil {
			logger.Error("failed to create openai synthesizer", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("using OpenAI API for idea synthesis", slog.String("model", cfg.Model))
		return s
	case "noop":
		logger.Warn("idea synthesis disabled, digests will promote headlines directly")
		return synthesizer.NewNoOp(config.GetEnvInt("SYNTHESIZER_IDEA_COUNT", 10))
	default:
		logger.Error("invalid SYNTHESIZER_TYPE",
			slog.String("type", synthType),
			slog.String("expected", "claude, openai, or noop"))
		os.Exit(1)
		return nil
	}
}

// setupNotifiers builds the delivery channel list from environment
// configuration. With no channel configured the list contains a single
// no-op notifier so digest runs still complete.
func setupNotifiers(logger *slog.Logger) []digestUC.Notifier {
	var notifiers []digestUC.Notifier

	discordCfg := loadDiscordConfig(logger)
	if discordCfg.Enabled {
		notifiers = append(notifiers, notifier.NewDiscordNotifier(discordCfg))
		logger.Info("Discord channel initialized", slog.String("status", "enabled"))
	} else {
		logger.Info("Discord channel disabled")
	}

	slackCfg := loadSlackConfig(logger)
	if slackCfg.Enabled {
		notifiers = append(notifiers, notifier.NewSlackNotifier(slackCfg))
		logger.Info("Slack channel initialized", slog.String("status", "enabled"))
	} else {
		logger.Info("Slack channel disabled")
	}

	if len(notifiers) == 0 {
		notifiers = append(notifiers, notifier.NewNoOpNotifier())
		logger.Warn("no delivery channel configured, digests will only be logged")
	}

	return notifiers
}

// loadDiscordConfig loads Discord configuration from environment variables.
//
// Environment variables:
//   - DISCORD_ENABLED: Boolean flag to enable Discord delivery (default: false)
//   - DISCORD_WEBHOOK_URL: Discord webhook URL (required if enabled)
func loadDiscordConfig(logger *slog.Logger) notifier.DiscordConfig {
	enabled := config.GetEnvBool("DISCORD_ENABLED", false)
	webhookURL := os.Getenv("DISCORD_WEBHOOK_URL")

	if !enabled {
		return notifier.DiscordConfig{Enabled: false}
	}

	if webhookURL == "" {
		logger.Warn("Discord webhook URL is empty, disabling delivery")
		return notifier.DiscordConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		logger.Warn("Invalid Discord webhook URL format, disabling delivery", slog.Any("error", err))
		return notifier.DiscordConfig{Enabled: false}
	}

	if u.Scheme != "https" {
		logger.Warn("Discord webhook URL must use HTTPS, disabling delivery")
		return notifier.DiscordConfig{Enabled: false}
	}

	if u.Host != "discord.com" {
		logger.Warn("Invalid Discord webhook host, disabling delivery", slog.String("host", u.Host))
		return notifier.DiscordConfig{Enabled: false}
	}

	if !strings.HasPrefix(u.Path, "/api/webhooks/") {
		logger.Warn("Invalid Discord webhook path, disabling delivery", slog.String("path", u.Path))
		return notifier.DiscordConfig{Enabled: false}
	}

	return notifier.DiscordConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// loadSlackConfig loads Slack configuration from environment variables.
//
// Environment variables:
//   - SLACK_ENABLED: Boolean flag to enable Slack delivery (default: false)
//   - SLACK_WEBHOOK_URL: Slack webhook URL (required if enabled)
func loadSlackConfig(logger *slog.Logger) notifier.SlackConfig {
	enabled := config.GetEnvBool("SLACK_ENABLED", false)
	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")

	if !enabled {
		return notifier.SlackConfig{Enabled: false}
	}

	if webhookURL == "" {
		logger.Warn("Slack webhook URL is empty, disabling delivery")
		return notifier.SlackConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		logger.Warn("Invalid Slack webhook URL format, disabling delivery", slog.Any("error", err))
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Scheme != "https" {
		logger.Warn("Slack webhook URL must use HTTPS, disabling delivery")
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Host != "hooks.slack.com" {
		logger.Warn("Invalid Slack webhook host, disabling delivery", slog.String("host", u.Host))
		return notifier.SlackConfig{Enabled: false}
	}

	if !strings.HasPrefix(u.Path, "/services/") {
		logger.Warn("Invalid Slack webhook path, disabling delivery", slog.String("path", u.Path))
		return notifier.SlackConfig{Enabled: false}
	}

	return notifier.SlackConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// startCronWorker starts the cron scheduler and blocks until a shutdown
// signal arrives.
func startCronWorker(ctx context.Context, logger *slog.Logger, svc *digestUC.Service, cfg config.DigestConfig, healthServer *healthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runDigestJob(ctx, logger, svc, cfg)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	// Stop accepting new cron runs, let an in-flight run finish.
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(cfg.RunTimeout):
		logger.Warn("in-flight digest run did not finish before shutdown deadline")
	}
	logger.Info("worker stopped")
}

// runDigestJob executes a single digest run with timeout and error handling.
func runDigestJob(ctx context.Context, logger *slog.Logger, svc *digestUC.Service, cfg config.DigestConfig) {
	logger.Info("digest job started")

	runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	stats, err := svc.Run(runCtx)
	if err != nil {
		logger.Error("digest job failed", slog.Any("error", err))
		return
	}

	logger.Info("digest job completed",
		slog.Int("headlines", stats.Headlines),
		slog.Int("sources", stats.Sources),
		slog.Int("ideas", stats.Ideas),
		slog.Bool("fallback", stats.UsedFallback),
		slog.Int("notify_errors", stats.NotifyErrors),
		slog.Duration("duration", stats.Duration),
	)
}
