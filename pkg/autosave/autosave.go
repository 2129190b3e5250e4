// Package autosave runs a callback periodically until stopped.
package autosave

import (
	"context"
	"sync"
	"time"
)

// Task is a running periodic job.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start calls fire every interval until ctx is cancelled or Stop is called.
// The next interval starts when fire returns. A non-positive interval
// yields a task that never fires.
func Start(ctx context.Context, interval time.Duration, fire func()) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	go t.loop(ctx, interval, fire)
	return t
}

func (t *Task) loop(ctx context.Context, interval time.Duration, fire func()) {
	defer close(t.done)
	if interval <= 0 {
		<-ctx.Done()
		return
	}
	timer := time.NewTimer(interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			fire()
			timer.Reset(interval)
		}
	}
}

// Stop cancels the task and waits for a running callback to return. It is
// safe to call more than once.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.once.Do(t.cancel)
	<-t.done
}
