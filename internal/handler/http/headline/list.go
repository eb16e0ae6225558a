package headline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"research-radar/internal/domain/entity"
	"research-radar/internal/handler/http/requestid"
	"research-radar/internal/handler/http/respond"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// Aggregator produces the deduplicated, shuffled headline batch for a query.
type Aggregator interface {
	AggregateHeadlines(ctx context.Context, query string) []entity.Headline
}

// ListHandler serves the aggregated headline list.
// Aggregation is fail-soft, so this endpoint returns 200 with whatever the
// reachable sources produced, even if that is an empty list.
type ListHandler struct {
	Aggregator Aggregator
	Logger     *slog.Logger
}

// ServeHTTP handles GET /headlines.
//
// Query parameters:
//   - q: optional free-text query passed to search-capable sources
//   - limit: maximum headlines to return (default 100, capped at 500)
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	query := r.URL.Query().Get("q")

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.Logger.Warn("invalid limit parameter",
				slog.String("limit", raw),
				slog.String("request_id", reqID))
			respond.Error(w, http.StatusBadRequest, fmt.Errorf("%w: limit must be a positive integer", entity.ErrInvalidInput))
			return
		}
		limit = parsed
		if limit > maxLimit {
			limit = maxLimit
		}
	}

	h.Logger.Info("headline list request",
		slog.String("query", query),
		slog.Int("limit", limit),
		slog.String("request_id", reqID))

	headlines := h.Aggregator.AggregateHeadlines(ctx, query)
	if len(headlines) > limit {
		headlines = headlines[:limit]
	}

	dtos := make([]DTO, 0, len(headlines))
	for _, item := range headlines {
		dtos = append(dtos, DTO{
			Title:       item.Title,
			Source:      item.Source,
			URL:         item.URL,
			PublishedAt: item.PublishedAt,
		})
	}

	h.Logger.Info("headline list response",
		slog.Int("returned_count", len(dtos)),
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()),
		slog.String("request_id", reqID))

	respond.JSON(w, http.StatusOK, ListResponse{
		Count:     len(dtos),
		Query:     query,
		Headlines: dtos,
	})
}
