package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// entry is a cached value with its absolute expiry.
type entry struct {
	value     json.RawMessage
	expiresAt time.Time
}

// MemoryStore is the process-wide in-memory Store. Reads evict lazily, the
// scheduler's sweep job bounds growth from write-once keys. Individual
// operations are atomic; a read-miss-compute-write sequence is not, so two
// concurrent callers can both compute and overwrite each other. Values are
// deterministic, so that is duplicate work, not incorrect state.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry

	// now is replaceable for expiry tests.
	now func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the value stored under key. Expired entries are deleted on
// sight and reported as absent.
func (s *MemoryStore) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !s.now().Before(e.expiresAt) {
		// Lazy eviction. Re-check under the write lock: another writer may
		// have refreshed the entry since the read above.
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && !s.now().Before(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	return e.value, true, nil
}

// Set stores value under key with the given TTL, replacing any previous
// entry regardless of its remaining lifetime.
func (s *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	s.mu.Lock()
	s.entries[key] = entry{value: data, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()

	return nil
}

// Delete removes an entry if present.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Sweep removes every expired entry, whether or not anything has read it,
// and returns the removed count.
func (s *MemoryStore) Sweep(_ context.Context) int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Stats reports entry counts and an approximate memory footprint.
func (s *MemoryStore) Stats(_ context.Context) Stats {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{TotalEntries: len(s.entries)}
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			st.ExpiredEntries++
		}
		// Key and value bytes plus a rough per-entry overhead.
		st.ApproxMemoryBytes += int64(len(key) + len(e.value) + 64)
	}
	return st
}
