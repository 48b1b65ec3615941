// Package lookup answers book searches from the result cache, falling back to
// the Google Books API on a miss and writing the outcome through to the cache.
package lookup

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/bookbot/internal/book"
	"github.com/lepinkainen/bookbot/internal/cache"
	"github.com/lepinkainen/bookbot/internal/googlebooks"
)

// Fetcher returns the raw search payload for a request.
type Fetcher interface {
	Fetch(ctx context.Context, req book.SearchRequest) ([]byte, error)
}

// NormalizeFunc turns a raw payload into records.
type NormalizeFunc func(raw []byte) ([]book.Record, error)

// Service is a read-through cache in front of a Fetcher.
type Service struct {
	fetcher       Fetcher
	normalize     NormalizeFunc
	store         *cache.Store
	cacheFailures bool
}

// Option configures a Service.
type Option func(*Service)

// WithCacheFailures controls whether the empty result of a failed lookup is
// cached. The default (true) means a transient failure is served from the
// cache until the entry is invalidated.
func WithCacheFailures(enabled bool) Option {
	return func(s *Service) {
		s.cacheFailures = enabled
	}
}

// WithNormalizer replaces googlebooks.Normalize.
func WithNormalizer(fn NormalizeFunc) Option {
	return func(s *Service) {
		s.normalize = fn
	}
}

// NewService creates a Service. The caller owns store and is responsible for
// loading and closing it.
func NewService(fetcher Fetcher, store *cache.Store, opts ...Option) *Service {
	s := &Service{
		fetcher:       fetcher,
		normalize:     googlebooks.Normalize,
		store:         store,
		cacheFailures: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrFetch returns the records for req. Every failure collapses into an
// empty slice, so callers cannot tell "no matches" from "lookup failed".
// Use Lookup when that distinction matters.
func (s *Service) GetOrFetch(ctx context.Context, req book.SearchRequest) []book.Record {
	return s.Lookup(ctx, req).Records
}

// Lookup returns the records for req together with the failure, if any.
// A hit never touches the network. A miss performs exactly one fetch and
// stores the normalized records, including an empty list, under req.Key().
//
// A cached entry written after a failure (see WithCacheFailures) is served as
// a successful empty result on later hits.
func (s *Service) Lookup(ctx context.Context, req book.SearchRequest) book.Result {
	key := req.Key()

	if records, ok := s.store.Get(key); ok {
		slog.Debug("Cache hit", "key", key, "records", len(records))
		return book.Result{Records: records, FromCache: true}
	}

	slog.Debug("Cache miss, fetching data", "key", key)

	raw, err := s.fetcher.Fetch(ctx, req)
	if err != nil {
		slog.Warn("Failed to fetch books", "query", req.Query, "error", err)
		return s.failed(key, err)
	}

	records, err := s.normalize(raw)
	if err != nil {
		slog.Warn("Failed to normalize books", "query", req.Query, "error", err)
		return s.failed(key, err)
	}

	s.put(key, records)
	return book.Result{Records: records}
}

// Invalidate drops the cached entry for req. It reports whether there was one.
func (s *Service) Invalidate(req book.SearchRequest) (bool, error) {
	return s.store.Invalidate(req.Key())
}

func (s *Service) failed(key book.CacheKey, err error) book.Result {
	empty := []book.Record{}
	if s.cacheFailures {
		s.put(key, empty)
	} else {
		slog.Debug("Skipping cache store per policy", "key", key)
	}
	return book.Result{Records: empty, Err: err}
}

func (s *Service) put(key book.CacheKey, records []book.Record) {
	if err := s.store.Put(key, records); err != nil {
		// Persisting failed but the in-memory entry is still served
		slog.Warn("Failed to cache data", "key", key, "error", err)
		return
	}
	slog.Debug("Data cached successfully", "key", key, "records", len(records))
}
