package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// MemoryFixedWindow counts requests per key in process memory. Expired
// windows are dropped by Sweep, which the limiter sweeper worker calls
// periodically.
type MemoryFixedWindow struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryFixedWindow(limit int, period time.Duration) (*MemoryFixedWindow, error) {
	if limit <= 0 || period <= 0 {
		return nil, ErrInvalidWindow
	}

	return &MemoryFixedWindow{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		now:     time.Now,
	}, nil
}

func (l *MemoryFixedWindow) Allow(_ context.Context, key string) bool {
	key = normalizeKey(key)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.period {
		l.windows[key] = &window{start: now, count: 1}
		return true
	}

	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Sweep removes expired windows and returns how many were removed.
func (l *MemoryFixedWindow) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.period {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *MemoryFixedWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
