package ratelimit

import (
	"sync"
	"time"
)

// Limiter throttles attempts per caller identity over a rolling window.
// State is process-local and in-memory; Reset clears every counter so
// tests can isolate themselves.
type Limiter struct {
	mu       sync.Mutex
	maxReqs  int
	window   time.Duration
	now      func() time.Time
	attempts map[string][]time.Time
}

// New creates a limiter allowing maxRequests per key within window.
func New(maxRequests int, window time.Duration) *Limiter {
	return NewWithClock(maxRequests, window, time.Now)
}

// NewWithClock creates a limiter with an injectable clock.
func NewWithClock(maxRequests int, window time.Duration, now func() time.Time) *Limiter {
	return &Limiter{
		maxReqs:  maxRequests,
		window:   window,
		now:      now,
		attempts: make(map[string][]time.Time),
	}
}

// Allow records an attempt for key and reports whether it is within the
// limit. Attempts older than the window are pruned on each call.
func (l *Limiter) Allow(key string) bool {
	if key == "" {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	var recent []time.Time
	for _, t := range l.attempts[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.maxReqs {
		l.attempts[key] = recent
		return false
	}

	l.attempts[key] = append(recent, now)
	return true
}

// Reset clears all counters.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts = make(map[string][]time.Time)
}
