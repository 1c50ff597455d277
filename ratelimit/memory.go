package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process [Store] for single-instance deployments.
// Counters live per key behind their own mutex, so contention on one caller
// never slows another. Entries whose window has fully elapsed are reclaimed
// by a lazy sweep, mirroring the TTL expiry the redis store gets for free.
type MemoryStore struct {
	counters sync.Map // string -> *memoryCounter

	sweepMu   sync.Mutex
	lastSweep time.Time

	// now is swapped in tests.
	now func() time.Time
}

type memoryCounter struct {
	mu          sync.Mutex
	count       int64
	windowStart time.Time
	window      time.Duration
}

// NewMemoryStore returns an empty in-process counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Incr implements [Store]. The increment-and-reset runs under the key's
// mutex, so concurrent calls on one key observe strictly increasing counts.
func (s *MemoryStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	entry, _ := s.counters.LoadOrStore(key, &memoryCounter{})
	counter := entry.(*memoryCounter)

	now := s.now()

	counter.mu.Lock()
	if counter.windowStart.IsZero() || now.Sub(counter.windowStart) >= window {
		counter.windowStart = now
		counter.count = 0
	}
	counter.window = window
	counter.count++
	count := counter.count
	counter.mu.Unlock()

	s.maybeSweep(now, window)

	return count, nil
}

// maybeSweep drops counters whose own window has elapsed. It runs at most
// once per window interval so the Range cost stays off the hot path.
func (s *MemoryStore) maybeSweep(now time.Time, window time.Duration) {
	s.sweepMu.Lock()
	due := now.Sub(s.lastSweep) >= window
	if due {
		s.lastSweep = now
	}
	s.sweepMu.Unlock()
	if !due {
		return
	}

	s.counters.Range(func(key, value any) bool {
		counter := value.(*memoryCounter)
		counter.mu.Lock()
		stale := !counter.windowStart.IsZero() && now.Sub(counter.windowStart) >= counter.window
		if stale {
			s.counters.CompareAndDelete(key, value)
		}
		counter.mu.Unlock()
		return true
	})
}
