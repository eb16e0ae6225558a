package entity

import "time"

// Digest is one delivery unit for subscribers: the idea list synthesized
// from a day's aggregated headlines, plus enough context to judge coverage.
type Digest struct {
	// GeneratedAt is when the digest run produced this batch.
	GeneratedAt time.Time

	// HeadlineCount is how many deduplicated headlines fed the synthesis.
	HeadlineCount int

	// SourceCount is how many adapters contributed at least one headline.
	SourceCount int

	// Ideas is the ranked idea list, best first.
	Ideas []Idea
}
