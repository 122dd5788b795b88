package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/TomToms55/trade-compass-be/pkg/logger"
)

// Task — повторяющийся таймер с защитой от наложения циклов.
// Медленный цикл приводит к пропуску тика, а не к очереди.
type Task struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context)

	mu       sync.Mutex
	running  bool
	inFlight bool
	stop     chan struct{}
}

func NewTask(name string, interval time.Duration, fn func(ctx context.Context)) *Task {
	return &Task{
		name:     name,
		interval: interval,
		fn:       fn,
	}
}

// Start runs one immediate cycle and then repeats every interval.
// Calling Start while running is a warned no-op.
func (t *Task) Start(ctx context.Context) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		logger.Warn("[%s] already started, ignoring", t.name)
		return
	}
	t.running = true
	t.stop = make(chan struct{})
	stop := t.stop
	t.mu.Unlock()

	logger.Info("[%s] started, interval=%s", t.name, t.interval)

	go t.tick(ctx)
	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				go t.tick(ctx)
			}
		}
	}()
}

// Stop cancels future ticks; an in-flight cycle runs to completion.
// Calling Stop while not running is a logged no-op.
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		logger.Warn("[%s] not running, nothing to stop", t.name)
		return
	}
	t.running = false
	close(t.stop)
	logger.Info("[%s] stopped", t.name)
}

func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Task) tick(ctx context.Context) {
	t.mu.Lock()
	if t.inFlight {
		t.mu.Unlock()
		logger.Warn("[%s] previous cycle still running, tick skipped", t.name)
		return
	}
	t.inFlight = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.inFlight = false
		t.mu.Unlock()
	}()

	t.fn(ctx)
}
