package history

import (
	"context"
	"sync"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
)

// MemoryStore keeps search history in process memory, bounded to a
// fixed capacity. Oldest entries are evicted first.
type MemoryStore struct {
	mu       sync.Mutex
	entries  []domain.HistoryEntry
	capacity int
}

// NewMemoryStore creates a bounded in-memory history store.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryStore{capacity: capacity}
}

// Append records an entry, evicting the oldest when at capacity.
func (s *MemoryStore) Append(_ context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[len(s.entries)-s.capacity:]
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (s *MemoryStore) Recent(_ context.Context, n int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]domain.HistoryEntry, 0, n)
	for i := len(s.entries) - 1; i >= len(s.entries)-n; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

// Count returns the number of stored entries.
func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.entries)), nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(_ context.Context) error { return nil }
