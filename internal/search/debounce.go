package search

import (
	"sync"
	"time"
)

// debouncer delays a function call until its input has settled. Each
// trigger replaces any pending call.
type debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// trigger schedules fn after the debounce delay, cancelling any call
// already pending on this debouncer.
func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// stop cancels any pending call.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
