// Package http provides HTTP handlers and middleware for the aggregation
// API: the headline endpoint, health checks, metrics collection, and
// request logging.
package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for the health check endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler handles health check endpoint requests. The service holds
// no persistent state, so the check reports the adapter registry and
// binary version rather than backing-store connectivity.
type HealthHandler struct {
	Version      string
	AdapterCount int
}

// ServeHTTP returns 200 OK when at least one source adapter is registered,
// 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)

	status := "healthy"
	statusCode := http.StatusOK

	if h.AdapterCount > 0 {
		checks["sources"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"adapters": h.AdapterCount},
		}
	} else {
		checks["sources"] = CheckStatus{
			Status:  "unhealthy",
			Message: "no source adapters registered",
		}
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP returns 200 OK if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
