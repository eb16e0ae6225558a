// Package notifier delivers finished digests to subscribers. It defines the
// Notifier interface so delivery channels (Discord, Slack, none) can be
// swapped through dependency injection, and ships webhook implementations
// that handle rate limiting and retries internally.
package notifier

import (
	"context"

	"research-radar/internal/domain/entity"
)

// Notifier delivers a digest to one channel.
// Implementations handle rate limiting, retries, and error logging
// internally; callers see only the final outcome.
type Notifier interface {
	// NotifyDigest sends the digest to the channel. It returns a non-nil
	// error only after all retry attempts are exhausted. Implementations
	// must respect context cancellation.
	NotifyDigest(ctx context.Context, digest *entity.Digest) error
}
