package ratelimit

import (
	"sync"
	"time"
)

// Result describes one admission decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Window is an in-memory sliding-window counter keyed by caller. It is
// per-process; replicas each enforce their own budget.
type Window struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	buckets map[string][]time.Time
}

// NewWindow admits at most limit requests per key within any window.
func NewWindow(limit int, window time.Duration) *Window {
	return &Window{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string][]time.Time),
	}
}

// Allow records a request for key if it fits the budget.
func (w *Window) Allow(key string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	stamps := trim(w.buckets[key], now.Add(-w.window))
	if len(stamps) >= w.limit {
		w.buckets[key] = stamps
		return Result{Limit: w.limit, ResetAt: stamps[0].Add(w.window)}
	}
	stamps = append(stamps, now)
	w.buckets[key] = stamps
	return Result{
		Allowed:   true,
		Limit:     w.limit,
		Remaining: w.limit - len(stamps),
		ResetAt:   stamps[0].Add(w.window),
	}
}

// Sweep drops keys with no requests inside the window.
func (w *Window) Sweep() {
	w.mu.Lock()
	defer w.mu.Unlock()
	cutoff := w.now().Add(-w.window)
	for key, stamps := range w.buckets {
		if stamps = trim(stamps, cutoff); len(stamps) == 0 {
			delete(w.buckets, key)
		} else {
			w.buckets[key] = stamps
		}
	}
}

func trim(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(stamps) && !stamps[i].After(cutoff) {
		i++
	}
	return stamps[i:]
}
