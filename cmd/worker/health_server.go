package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// healthServer exposes liveness, readiness, and Prometheus metrics for the
// digest worker on a dedicated port.
//
// Endpoints:
//   - GET /metrics - Prometheus metrics endpoint
//   - GET /livez   - liveness probe, always 200 while the process runs
//   - GET /readyz  - readiness probe, 200 once the cron scheduler is up
type healthServer struct {
	srv    *http.Server
	logger *slog.Logger
	ready  atomic.Bool
}

type healthStatus struct {
	Status string `json:"status"`
}

// SetReady flips the readiness state reported by /readyz.
func (h *healthServer) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *healthServer) handleLive(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthStatus{Status: "alive"})
}

func (h *healthServer) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !h.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthStatus{Status: "starting"})
		return
	}
	_ = json.NewEncoder(w).Encode(healthStatus{Status: "ready"})
}

// startHealthServer starts the worker's health/metrics server in the
// background. When ctx is canceled the server shuts down gracefully within
// 5 seconds.
func startHealthServer(ctx context.Context, logger *slog.Logger, port int) *healthServer {
	h := &healthServer{logger: logger}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /livez", h.handleLive)
	mux.HandleFunc("GET /readyz", h.handleReady)
	mux.HandleFunc("GET /healthz", h.handleReady)

	addr := fmt.Sprintf(":%d", port)
	h.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("health server starting", slog.String("addr", addr))
		if err := h.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("health server shutdown failed", slog.Any("error", err))
		}
	}()

	return h
}
