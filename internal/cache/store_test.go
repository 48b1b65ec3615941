package cache

import (
	stdErrors "errors"
	"sync"
	"testing"

	"github.com/lepinkainen/bookbot/internal/book"
	"github.com/lepinkainen/bookbot/internal/errors"
)

// fakeBackend records saves and can be told to fail.
type fakeBackend struct {
	mu      sync.Mutex
	stored  map[book.CacheKey][]book.Record
	saves   int
	loadErr error
	saveErr error
	closed  bool
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Load() (map[book.CacheKey][]book.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make(map[book.CacheKey][]book.Record, len(f.stored))
	for k, v := range f.stored {
		out[k] = v
	}
	return out, nil
}

func (f *fakeBackend) Save(entries map[book.CacheKey][]book.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = entries
	return nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

var dune = []book.Record{{Title: "Dune", Authors: "Frank Herbert", PublishedYear: "1965", Summary: "Spice."}}

func TestStorePutFlushesWholeMapping(t *testing.T) {
	backend := &fakeBackend{}
	store := NewStore(backend)

	if err := store.Put("dune_10_all", dune); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := store.Put("nothing_10_all", nil); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	if backend.saves != 2 {
		t.Fatalf("expected 2 saves, got %d", backend.saves)
	}
	if len(backend.stored) != 2 {
		t.Fatalf("expected full mapping of 2 entries to be saved, got %d", len(backend.stored))
	}

	records, ok := store.Get("nothing_10_all")
	if !ok {
		t.Fatal("expected empty result to be cached")
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected non-nil empty slice, got %#v", records)
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := NewStore(nil)
	if err := store.Put("dune_10_all", dune); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, _ := store.Get("dune_10_all")
	got[0].Title = "mutated"

	again, _ := store.Get("dune_10_all")
	if again[0].Title != "Dune" {
		t.Fatalf("stored records were mutated through Get: %q", again[0].Title)
	}
}

func TestStoreMiss(t *testing.T) {
	store := NewStore(nil)
	if _, ok := store.Get("missing_10_all"); ok {
		t.Fatal("expected miss on empty store")
	}
}

func TestStoreLoad(t *testing.T) {
	backend := &fakeBackend{stored: map[book.CacheKey][]book.Record{
		"dune_10_all":    dune,
		"nothing_10_all": nil,
	}}
	store := NewStore(backend)

	if err := store.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", store.Len())
	}
	records, ok := store.Get("nothing_10_all")
	if !ok || records == nil {
		t.Fatalf("expected nil entry to load as empty slice, got %#v (%v)", records, ok)
	}
}

func TestStoreLoadFailureLeavesEmptyUsableStore(t *testing.T) {
	backend := &fakeBackend{loadErr: errors.NewPersistenceError("load", "x", stdErrors.New("corrupt"))}
	store := NewStore(backend)

	err := store.Load()
	if !errors.IsPersistenceError(err) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", store.Len())
	}

	backend.loadErr = nil
	if err := store.Put("dune_10_all", dune); err != nil {
		t.Fatalf("store should remain usable: %v", err)
	}
}

func TestStorePutKeepsMemoryWhenFlushFails(t *testing.T) {
	backend := &fakeBackend{saveErr: errors.NewPersistenceError("save", "x", stdErrors.New("disk full"))}
	store := NewStore(backend)

	err := store.Put("dune_10_all", dune)
	if !errors.IsPersistenceError(err) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}

	records, ok := store.Get("dune_10_all")
	if !ok || len(records) != 1 {
		t.Fatalf("expected in-memory entry to survive failed flush, got %#v", records)
	}
}

func TestStoreInvalidateAndClear(t *testing.T) {
	backend := &fakeBackend{}
	store := NewStore(backend)
	_ = store.Put("a_10_all", dune)
	_ = store.Put("b_10_all", dune)
	_ = store.Put("c_10_all", nil)

	existed, err := store.Invalidate("a_10_all")
	if err != nil || !existed {
		t.Fatalf("Invalidate = %v, %v; want true, nil", existed, err)
	}
	if _, ok := backend.stored["a_10_all"]; ok {
		t.Fatal("invalidated key should be gone from backend")
	}

	savesBefore := backend.saves
	existed, err = store.Invalidate("a_10_all")
	if err != nil || existed {
		t.Fatalf("second Invalidate = %v, %v; want false, nil", existed, err)
	}
	if backend.saves != savesBefore {
		t.Fatal("invalidating a missing key should not flush")
	}

	keys := store.Keys()
	if len(keys) != 2 || keys[0] != "b_10_all" || keys[1] != "c_10_all" {
		t.Fatalf("unexpected keys %v", keys)
	}

	n, err := store.Clear()
	if err != nil || n != 2 {
		t.Fatalf("Clear = %d, %v; want 2, nil", n, err)
	}
	if store.Len() != 0 || len(backend.stored) != 0 {
		t.Fatal("expected store and backend to be empty after Clear")
	}
}

func TestStoreClose(t *testing.T) {
	backend := &fakeBackend{}
	store := NewStore(backend)
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if !backend.closed {
		t.Fatal("expected backend to be closed")
	}

	if err := NewStore(nil).Close(); err != nil {
		t.Fatalf("memory-only Close returned error: %v", err)
	}
}
