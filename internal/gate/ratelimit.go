package gate

import (
	"sync"
	"time"
)

// sweepBatch caps how many table entries a single janitor pass inspects
// while holding the lock.
const sweepBatch = 256

// maxSweepInterval bounds how long expired windows can linger before the
// janitor reclaims them.
const maxSweepInterval = 30 * time.Second

// Verdict is the result of one admission check.
type Verdict struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// clientWindow tracks one client's current fixed accounting window.
type clientWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter admits requests under a fixed-window counter per client.
// All state lives in process memory; enforcing a shared quota across
// multiple instances would need an external store and is out of scope.
type RateLimiter struct {
	mu      sync.Mutex
	clock   Clock
	max     int
	window  time.Duration
	clients map[string]*clientWindow

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter allowing max requests per window and
// starts the background janitor. Callers must Close the limiter when done.
func NewRateLimiter(max int, window time.Duration, clock Clock) *RateLimiter {
	if clock == nil {
		clock = realClock{}
	}
	l := &RateLimiter{
		clock:   clock,
		max:     max,
		window:  window,
		clients: make(map[string]*clientWindow),
		stop:    make(chan struct{}),
	}
	go l.janitor()
	return l
}

// Max returns the configured per-window request quota.
func (l *RateLimiter) Max() int {
	return l.max
}

// Admit records one request for clientID and reports whether it is within
// quota. The lookup, window reset and increment happen under one lock so
// concurrent requests for the same client can never under-count.
func (l *RateLimiter) Admit(clientID string) Verdict {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.clients[clientID]
	if !ok || !now.Before(entry.resetAt) {
		resetAt := now.Add(l.window)
		l.clients[clientID] = &clientWindow{count: 1, resetAt: resetAt}
		return Verdict{Allowed: true, Remaining: l.max - 1, ResetAt: resetAt}
	}
	if entry.count >= l.max {
		return Verdict{Allowed: false, Remaining: 0, ResetAt: entry.resetAt}
	}
	entry.count++
	return Verdict{Allowed: true, Remaining: l.max - entry.count, ResetAt: entry.resetAt}
}

// Close stops the background janitor.
func (l *RateLimiter) Close() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

// janitor periodically reclaims expired client windows so memory stays
// bounded under sustained distinct-client load.
func (l *RateLimiter) janitor() {
	interval := l.window
	if interval <= 0 || interval > maxSweepInterval {
		interval = maxSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// sweep removes expired entries. Each pass inspects at most sweepBatch
// entries so the lock is never held for a duration proportional to the
// whole table; random map iteration order makes successive passes cover
// the table eventually.
func (l *RateLimiter) sweep() {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	scanned := 0
	for id, entry := range l.clients {
		if !now.Before(entry.resetAt) {
			delete(l.clients, id)
		}
		scanned++
		if scanned >= sweepBatch {
			return
		}
	}
}

// size reports the current client table size. Test hook.
func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
