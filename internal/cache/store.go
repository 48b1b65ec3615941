// Package cache holds normalized search results keyed by book.CacheKey and
// persists them through a pluggable Backend.
//
// A Store is loaded once, mutated in memory on every miss and then written
// back to its backend in full. Entries never expire and are never evicted.
package cache

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/lepinkainen/bookbot/internal/book"
)

// Store maps cache keys to normalized record lists.
// The mutex only protects the map; two callers that miss on the same key will
// both fetch and the last Put wins.
type Store struct {
	backend Backend
	mu      sync.RWMutex
	entries map[book.CacheKey][]book.Record
}

// NewStore creates an empty store backed by backend.
// A nil backend gives a memory-only store.
func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		entries: make(map[book.CacheKey][]book.Record),
	}
}

// Load replaces the in-memory mapping with the backend's contents.
// The store is always usable afterwards: when the backend cannot be read the
// mapping is left empty and the *errors.PersistenceError is returned.
func (s *Store) Load() error {
	if s.backend == nil {
		return nil
	}

	entries, err := s.backend.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.entries = make(map[book.CacheKey][]book.Record)
		return err
	}
	if entries == nil {
		entries = make(map[book.CacheKey][]book.Record)
	}
	for key, records := range entries {
		if records == nil {
			entries[key] = []book.Record{}
		}
	}
	s.entries = entries

	slog.Debug("Cache loaded", "backend", s.backend.Name(), "entries", len(entries))
	return nil
}

// Get returns a copy of the records stored under key.
func (s *Store) Get(key book.CacheKey) ([]book.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return cloneRecords(records), true
}

// Put stores records under key (an empty list is a valid entry) and flushes
// the whole mapping. The in-memory entry is kept even if the flush fails.
func (s *Store) Put(key book.CacheKey, records []book.Record) error {
	s.mu.Lock()
	s.entries[key] = cloneRecords(records)
	s.mu.Unlock()

	return s.Flush()
}

// Invalidate removes one entry and flushes. It reports whether the key existed.
func (s *Store) Invalidate(key book.CacheKey) (bool, error) {
	s.mu.Lock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	slog.Debug("Cache entry invalidated", "key", key)
	return true, s.Flush()
}

// Clear removes every entry and flushes. It returns the number of entries removed.
func (s *Store) Clear() (int, error) {
	s.mu.Lock()
	n := len(s.entries)
	s.entries = make(map[book.CacheKey][]book.Record)
	s.mu.Unlock()

	slog.Debug("Cache cleared", "entries_removed", n)
	return n, s.Flush()
}

// Flush writes the full mapping to the backend.
func (s *Store) Flush() error {
	if s.backend == nil {
		return nil
	}

	s.mu.RLock()
	snapshot := make(map[book.CacheKey][]book.Record, len(s.entries))
	for key, records := range s.entries {
		snapshot[key] = records
	}
	s.mu.RUnlock()

	return s.backend.Save(snapshot)
}

// Keys returns all cache keys in sorted order.
func (s *Store) Keys() []book.CacheKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]book.CacheKey, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of cached keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close releases the backend.
func (s *Store) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

func cloneRecords(records []book.Record) []book.Record {
	out := make([]book.Record, len(records))
	copy(out, records)
	return out
}
