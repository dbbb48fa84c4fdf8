package shutdown

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestShutdown_RunsAllHooks(t *testing.T) {
	m := NewManager()
	var ran atomic.Int64
	for i := 0; i < 3; i++ {
		m.OnShutdown(func(ctx context.Context) { ran.Add(1) })
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.Shutdown(ctx)

	if ran.Load() != 3 {
		t.Fatalf("hooks run got=%d want=3", ran.Load())
	}
}

func TestShutdown_DeadlineBoundsHungHook(t *testing.T) {
	m := NewManager()
	m.OnShutdown(func(ctx context.Context) {
		<-ctx.Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	m.Shutdown(ctx)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("shutdown blocked for %v", elapsed)
	}
}
