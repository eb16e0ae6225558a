// Package headline provides HTTP handlers for the headline aggregation
// endpoint.
package headline

import "time"

// DTO represents the JSON structure for a single headline.
// URL and PublishedAt are optional on the domain record; the zero
// timestamp is omitted rather than serialized as year one.
type DTO struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitzero"`
}

// ListResponse is the JSON envelope for the headline list endpoint.
type ListResponse struct {
	Count     int    `json:"count"`
	Query     string `json:"query,omitempty"`
	Headlines []DTO  `json:"headlines"`
}
