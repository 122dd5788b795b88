package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/TomToms55/trade-compass-be/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func TestStartRunsImmediateCycle(t *testing.T) {
	var runs atomic.Int32
	task := NewTask("test", time.Hour, func(ctx context.Context) {
		runs.Add(1)
	})

	task.Start(context.Background())
	defer task.Stop()

	waitFor(t, func() bool { return runs.Load() == 1 })
}

func TestStartTwiceIsNoop(t *testing.T) {
	var runs atomic.Int32
	task := NewTask("test", time.Hour, func(ctx context.Context) {
		runs.Add(1)
	})

	task.Start(context.Background())
	task.Start(context.Background())
	defer task.Stop()

	waitFor(t, func() bool { return runs.Load() == 1 })
	time.Sleep(50 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected exactly one immediate cycle, got %d", got)
	}
	if !task.Running() {
		t.Fatal("task should still be running")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	task := NewTask("test", time.Hour, func(ctx context.Context) {})
	task.Start(context.Background())

	task.Stop()
	task.Stop() // must not panic on double close

	if task.Running() {
		t.Fatal("task should be stopped")
	}
}

func TestSlowCycleSkipsTick(t *testing.T) {
	release := make(chan struct{})
	var runs atomic.Int32
	task := NewTask("test", 10*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
		<-release
	})

	task.Start(context.Background())
	defer task.Stop()

	waitFor(t, func() bool { return runs.Load() == 1 })
	// several ticks fire while the first cycle blocks; all must be skipped
	time.Sleep(60 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("overlapping cycles: got %d runs while first still in flight", got)
	}
	close(release)

	waitFor(t, func() bool { return runs.Load() >= 2 })
}

func TestStopPreventsFutureTicks(t *testing.T) {
	var runs atomic.Int32
	task := NewTask("test", 10*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
	})

	task.Start(context.Background())
	waitFor(t, func() bool { return runs.Load() >= 1 })
	task.Stop()

	// let any tick already spawned before Stop finish
	time.Sleep(20 * time.Millisecond)
	n := runs.Load()
	time.Sleep(50 * time.Millisecond)
	if got := runs.Load(); got != n {
		t.Fatalf("ticks continued after Stop: %d -> %d", n, got)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
