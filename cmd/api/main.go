package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"research-radar/internal/config"
	hhttp "research-radar/internal/handler/http"
	hheadline "research-radar/internal/handler/http/headline"
	"research-radar/internal/handler/http/requestid"
	"research-radar/internal/infra/adapter/source"
	"research-radar/internal/infra/fetcher"
	"research-radar/internal/observability/logging"
	"research-radar/internal/usecase/aggregate"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	version := getVersion()
	svc, err := setupAggregator(logger)
	if err != nil {
		logger.Error("failed to set up aggregator", slog.Any("error", err))
		os.Exit(1)
	}

	handler := setupHandler(logger, svc, version)
	runServer(logger, handler, version)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
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
	names := make([]string, 0, len(adapters))
	for _, a := range adapters {
		svcAdapters = append(svcAdapters, a)
		names = append(names, a.Name())
	}

	logger.Info("source adapters registered",
		slog.Int("count", len(names)),
		slog.Any("sources", names),
		slog.Duration("fetch_timeout", sourcesCfg.FetchTimeout))

	return aggregate.NewService(svcAdapters), nil
}

// setupHandler registers all routes and wraps them in the middleware chain.
// Middleware order: Request ID -> Recovery -> Logging -> Metrics.
func setupHandler(logger *slog.Logger, svc *aggregate.Service, version string) http.Handler {
	mux := http.NewServeMux()

	hheadline.Register(mux, svc, logger)
	mux.Handle("GET /healthz", &hhttp.HealthHandler{
		Version:      version,
		AdapterCount: svc.AdapterCount(),
	})
	mux.Handle("GET /livez", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	return hhttp.Chain(mux,
		requestid.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
