package feedback

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in process. It is used offline and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
	closed  bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Record(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *MemoryStore) Stats(_ context.Context) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Stats{}, ErrClosed
	}
	var s Stats
	var likedSum, dislikedSum int64
	for _, e := range m.entries {
		if e.Liked {
			s.Likes++
			likedSum += int64(e.Score)
		} else {
			s.Dislikes++
			dislikedSum += int64(e.Score)
		}
	}
	if s.Likes > 0 {
		s.AvgLikedScore = float64(likedSum) / float64(s.Likes)
	}
	if s.Dislikes > 0 {
		s.AvgDislikeScore = float64(dislikedSum) / float64(s.Dislikes)
	}
	return s, nil
}

// Entries returns a copy of everything recorded.
func (m *MemoryStore) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
