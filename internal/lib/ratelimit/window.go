// Package ratelimit implements fixed request windows keyed by client.
//
// Each key owns a (window start, count) pair. The first hit of a key opens
// a window of the configured length; every hit inside it increments the
// count, rejected hits included; once the window has elapsed the next hit
// opens a fresh one. Entries live in process memory only.
package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	windowStart time.Time
	count       int
}

// Result describes the state of a key's window right after a hit.
type Result struct {
	// Allowed is false once the count exceeds the limit.
	Allowed bool

	// Limit is the window's request cap.
	Limit int

	// Remaining is how many more hits fit into the window, never negative.
	Remaining int

	// ResetAt is when the current window closes.
	ResetAt time.Time
}

// ResetAfter returns the time left in the window relative to now, never negative.
func (r Result) ResetAfter(now time.Time) time.Duration {
	if d := r.ResetAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Window counts hits per key.
type Window struct {
	limit  int
	length time.Duration
	now    func() time.Time

	mu        sync.Mutex
	entries   map[string]*entry
	lastSweep time.Time
}

// Option customizes a Window.
type Option func(*Window)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Window) {
		w.now = now
	}
}

// NewWindow creates a window allowing limit hits per key every length.
func NewWindow(limit int, length time.Duration, opts ...Option) *Window {
	w := &Window{
		limit:   limit,
		length:  length,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.lastSweep = w.now()
	return w
}

// Now returns the window's current time.
func (w *Window) Now() time.Time {
	return w.now()
}

// Hit records one request for key and reports whether it is allowed.
func (w *Window) Hit(key string) Result {
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.sweep(now)

	e, ok := w.entries[key]
	if !ok || !now.Before(e.windowStart.Add(w.length)) {
		e = &entry{windowStart: now}
		w.entries[key] = e
	}
	e.count++

	remaining := w.limit - e.count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   e.count <= w.limit,
		Limit:     w.limit,
		Remaining: remaining,
		ResetAt:   e.windowStart.Add(w.length),
	}
}

// Reset forgets key, opening a fresh window on its next hit.
func (w *Window) Reset(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.entries, key)
}

// Len returns the number of keys currently tracked.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// sweep drops expired entries at most once per window length.
// Callers hold w.mu.
func (w *Window) sweep(now time.Time) {
	if now.Sub(w.lastSweep) < w.length {
		return
	}
	for key, e := range w.entries {
		if !now.Before(e.windowStart.Add(w.length)) {
			delete(w.entries, key)
		}
	}
	w.lastSweep = now
}
