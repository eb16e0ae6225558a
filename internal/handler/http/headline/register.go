package headline

import (
	"log/slog"
	"net/http"
)

// Register registers the headline HTTP handlers with the given mux.
func Register(mux *http.ServeMux, aggregator Aggregator, logger *slog.Logger) {
	mux.Handle("GET /headlines", ListHandler{
		Aggregator: aggregator,
		Logger:     logger,
	})
}
