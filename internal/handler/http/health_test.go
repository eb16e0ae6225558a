package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	t.Run("healthy with adapters", func(t *testing.T) {
		handler := &HealthHandler{Version: "1.2.3", AdapterCount: 15}

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resp HealthResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Status != "healthy" {
			t.Errorf("Status = %q", resp.Status)
		}
		if resp.Version != "1.2.3" {
			t.Errorf("Version = %q", resp.Version)
		}
		if resp.Checks["sources"].Status != "healthy" {
			t.Errorf("sources check = %+v", resp.Checks["sources"])
		}
	})

	t.Run("unhealthy without adapters", func(t *testing.T) {
		handler := &HealthHandler{Version: "1.2.3"}

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}

		var resp HealthResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Status != "unhealthy" {
			t.Errorf("Status = %q", resp.Status)
		}
	})
}

func TestLiveHandler(t *testing.T) {
	handler := &LiveHandler{}

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "alive" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
