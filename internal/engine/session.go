package engine

import (
	"sync"
	"time"
)

// watchdogInterval is how often an exclusive session polls the picker's
// visibility. Dismissal has no completion callback, so polling is the only
// way to notice the user bailed out without selecting.
const watchdogInterval = 250 * time.Millisecond

// Session represents one exclusive-mode activation: the normal pipeline is
// swapped for a single-purpose provider until the session is restored. The
// two states are Active and Restored; restoration happens exactly once, on
// whichever comes first of an explicit Restore call (selection path) or the
// watchdog noticing the picker is no longer visible (dismissal path).
type Session struct {
	engine *Engine

	mu       sync.Mutex
	restored bool
	stop     chan struct{}
}

// EnterExclusive swaps the pipeline for provider and starts the dismissal
// watchdog. visible reports whether the picker is still on screen; it is
// polled from the watchdog goroutine and must be safe to call there.
//
// The caller must call Restore when a selection completes; the watchdog
// covers the no-selection dismissal path.
func (e *Engine) EnterExclusive(provider QueryFunc, visible func() bool) *Session {
	e.override.Store(&provider)

	s := &Session{
		engine: e,
		stop:   make(chan struct{}),
	}
	go s.watch(visible)
	return s
}

// Restore reinstates the normal pipeline. Idempotent: only the first call
// has any effect, so the selection path and the watchdog cannot double-
// restore.
func (s *Session) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restored {
		return
	}
	s.restored = true
	s.engine.override.Store(nil)
	close(s.stop)
}

// Active reports whether the session still owns the pipeline.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.restored
}

// watch polls visibility until the session is restored or the picker
// disappears, then deactivates itself.
func (s *Session) watch(visible func() bool) {
	if visible == nil {
		return
	}
	ticker := time.NewTicker(watchdogInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if !visible() {
				s.Restore()
				return
			}
		}
	}
}
