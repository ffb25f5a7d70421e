// Package debounce coalesces event bursts into single callbacks.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the default coalescing window. Successive triggers
// inside the window cancel the pending callback, so only the final
// trigger of a burst fires.
const DefaultDelay = 50 * time.Millisecond

// Debouncer coalesces bursts of triggers into a single callback.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64
}

// New creates a debouncer. A zero or negative delay falls back to
// DefaultDelay.
func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the debounce window, cancelling any pending
// callback. fn runs on the timer goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		// A stale timer that lost the Stop race must not fire.
		d.mu.Lock()
		current := gen == d.gen
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
