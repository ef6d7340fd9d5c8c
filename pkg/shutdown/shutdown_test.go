package shutdown

import (
	"context"
	"testing"
	"time"
)

func TestWithSignalsFollowsParentCancel(t *testing.T) {
	parent, parentCancel := context.WithCancel(context.Background())
	ctx, cancel := WithSignals(parent)
	defer cancel()

	parentCancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled after parent cancel")
	}
}

func TestWithSignalsExplicitCancel(t *testing.T) {
	ctx, cancel := WithSignals(context.Background())
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled after cancel")
	}
}
