package notifier

import (
	"context"
	"testing"
)

func TestNoOpNotifierReturnsNil(t *testing.T) {
	n := NewNoOpNotifier()
	if err := n.NotifyDigest(context.Background(), testDigest()); err != nil {
		t.Errorf("NotifyDigest() error = %v, want nil", err)
	}
}
