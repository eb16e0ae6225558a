// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling that avoids leaking internal details to clients.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// InternalError logs the underlying error and returns a generic message,
// keeping internal details out of the response body.
func InternalError(w http.ResponseWriter, err error) {
	slog.Default().Error("internal server error", slog.Any("error", err))
	JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
