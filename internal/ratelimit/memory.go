package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultCapacity bounds the number of tracked keys in a MemoryStore.
const DefaultCapacity = 10000

type window struct {
	count int64
	start time.Time
}

// MemoryStore is an in-process fixed-window limiter. It tracks at most
// Capacity keys; when full, the key with the oldest window is evicted.
type MemoryStore struct {
	limit    int
	period   time.Duration
	capacity int
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) { m.now = now }
}

// WithCapacity sets the maximum number of tracked keys.
func WithCapacity(n int) MemoryOption {
	return func(m *MemoryStore) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// NewMemoryStore allows limit requests per key per period.
func NewMemoryStore(limit int, period time.Duration, opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		limit:    limit,
		period:   period,
		capacity: DefaultCapacity,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *MemoryStore) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if ok && now.Sub(w.start) >= m.period {
		delete(m.windows, key)
		ok = false
	}
	if !ok {
		if len(m.windows) >= m.capacity {
			m.evictLocked(now)
		}
		w = &window{start: now}
		m.windows[key] = w
	}
	w.count++
	return decide(w.count, m.limit, w.start.Add(m.period).Sub(now)), nil
}

// evictLocked drops expired windows, then the oldest if still full.
func (m *MemoryStore) evictLocked(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, w := range m.windows {
		if now.Sub(w.start) >= m.period {
			delete(m.windows, k)
			continue
		}
		if !found || w.start.Before(oldest) {
			oldestKey, oldest, found = k, w.start, true
		}
	}
	if found && len(m.windows) >= m.capacity {
		delete(m.windows, oldestKey)
	}
}

// Len returns the number of tracked keys.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}
