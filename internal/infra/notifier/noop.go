package notifier

import (
	"context"
	"log/slog"

	"research-radar/internal/domain/entity"
)

// NoOpNotifier is a no-operation implementation of the Notifier interface.
// It is used when no delivery channel is configured so callers never need
// nil checks.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// NotifyDigest logs the digest at debug level and returns nil.
func (n *NoOpNotifier) NotifyDigest(_ context.Context, digest *entity.Digest) error {
	slog.Debug("digest delivery skipped, no channel configured",
		slog.Int("ideas", len(digest.Ideas)),
		slog.Int("headlines", digest.HeadlineCount))
	return nil
}
