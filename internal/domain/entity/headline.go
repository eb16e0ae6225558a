// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Headline and Idea, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Headline represents one piece of external research content.
// It is an immutable value record: adapters create it, downstream stages
// only filter or reorder collections of them, never mutate one in place.
// A Headline has no persistent identity; deduplication identity is derived
// from the normalized title text alone.
type Headline struct {
	// Title is the human-readable headline text. Always non-empty.
	Title string

	// Source is a short label identifying the origin,
	// e.g. "bioRxiv" or "Reddit r/biology". Always non-empty.
	Source string

	// URL is an optional locator for the original content.
	URL string

	// PublishedAt is an optional timestamp. When the origin supplies no
	// reliable date, adapters may substitute the fetch time; this is a
	// known accuracy compromise, not a guarantee of true publication date.
	// The zero value means the adapter chose not to substitute.
	PublishedAt time.Time
}

// Validate checks the Headline invariants.
// Title and Source must be present; URL and PublishedAt may be absent.
func (h *Headline) Validate() error {
	if h.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if h.Source == "" {
		return &ValidationError{Field: "source", Message: "source is required"}
	}
	return nil
}
