package audio

import (
	"testing"
	"time"
)

func TestAwaitReady(t *testing.T) {
	closed := make(chan struct{})
	close(closed)
	if err := awaitReady(closed, time.Millisecond); err != nil {
		t.Fatalf("ready channel closed, awaitReady = %v", err)
	}
	// A closed channel keeps reporting ready, so a retry after a slow
	// first open succeeds without creating a second context.
	if err := awaitReady(closed, time.Millisecond); err != nil {
		t.Fatalf("second wait on ready channel = %v", err)
	}

	stalled := make(chan struct{})
	if err := awaitReady(stalled, time.Millisecond); err == nil {
		t.Fatal("awaitReady returned nil for a device that never came up")
	}
}
