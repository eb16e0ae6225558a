// Package source contains one adapter per external research-content source.
// Each adapter knows how to query a single endpoint family (an XML feed set
// or a JSON API) and map its response shape into Headline records.
//
// Adapters follow a fail-soft contract: a network error, timeout, or
// malformed payload is returned as an error to the aggregator, which logs
// it and drops that source from the merge. Adapters that fan out to
// multiple sub-feeds or sub-queries isolate each sub-fetch internally and
// return whatever partial results they collected.
//
// Query handling is deliberately asymmetric across sources: adapters whose
// backing API supports full-text search translate the query into a search
// request, the rest ignore it and serve their fixed browse set. This
// mirrors the real capabilities of the endpoints and must not be unified.
package source

import (
	"context"

	"research-radar/internal/domain/entity"
)

// Adapter retrieves and maps one external source's content.
// An empty query means "browse mode": the adapter's own fixed default
// query or feed set.
type Adapter interface {
	// Name returns the short label used for logging, metrics, and the
	// disabled-sources configuration.
	Name() string

	// FetchHeadlines fetches content for the optional free-text query.
	// The order of returned headlines follows the order items were parsed
	// out of the response.
	FetchHeadlines(ctx context.Context, query string) ([]entity.Headline, error)
}
