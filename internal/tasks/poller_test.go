package tasks

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/desertthunder/taskbridge/internal/shared"
)

func TestNewPoller(t *testing.T) {
	t.Run("non-positive interval defaults to five minutes", func(t *testing.T) {
		p := NewPoller(newTestBridge(&mockTodoist{}, &mockNotion{}), 0, nil)
		if p.interval != 5*time.Minute {
			t.Errorf("expected 5m interval, got %v", p.interval)
		}
	})

	t.Run("keeps an explicit interval", func(t *testing.T) {
		p := NewPoller(newTestBridge(&mockTodoist{}, &mockNotion{}), time.Minute, nil)
		if p.interval != time.Minute {
			t.Errorf("expected 1m interval, got %v", p.interval)
		}
	})
}

func TestPollerRun(t *testing.T) {
	t.Run("fires passes until cancelled", func(t *testing.T) {
		notion := &mockNotion{}
		poller := NewPoller(newTestBridge(&mockTodoist{}, notion), 10*time.Millisecond, shared.NewLogger(io.Discard))

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		done := make(chan struct{})
		go func() {
			poller.Run(ctx)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("poller did not stop on context cancellation")
		}

		if notion.queryCalls == 0 {
			t.Error("expected at least one polling pass")
		}
	})

	t.Run("a failing pass does not stop the loop", func(t *testing.T) {
		notion := &mockNotion{queryErr: context.DeadlineExceeded}
		poller := NewPoller(newTestBridge(&mockTodoist{}, notion), 5*time.Millisecond, shared.NewLogger(io.Discard))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		poller.Run(ctx)

		if notion.queryCalls < 2 {
			t.Errorf("expected the loop to keep firing after failures, got %d passes", notion.queryCalls)
		}
	})
}
