// Package debounce coalesces bursts of calls: the wrapped function runs once
// per burst, after a quiet period, with only the most recent argument. An
// argument superseded before the quiet period elapses is never delivered.
package debounce

import (
	"sync"
	"time"
)

const DefaultQuiet = 300 * time.Millisecond

type Debouncer[T any] struct {
	mu      sync.Mutex
	quiet   time.Duration
	fn      func(T)
	timer   *time.Timer
	stopped bool
}

func New[T any](quiet time.Duration, fn func(T)) *Debouncer[T] {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer[T]{quiet: quiet, fn: fn}
}

// Call schedules fn(v) after the quiet period, replacing any pending call.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.fn(v)
	})
}

// Stop cancels any pending call. Further Calls are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
