package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

type countingPurger struct{ calls atomic.Int32 }

func (p *countingPurger) Purge(context.Context) (int, error) {
	p.calls.Add(1)
	return 1, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_InvalidSpec(t *testing.T) {
	if _, err := Run("not a cron spec", &countingPurger{}, discardLogger()); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestRun_InvokesPurger(t *testing.T) {
	p := &countingPurger{}
	c, err := Run("@every 1s", p, discardLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer c.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if p.calls.Load() > 0 {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("purger was not invoked within 3s")
}
