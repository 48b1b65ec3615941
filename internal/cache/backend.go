package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/bookbot/internal/book"
)

// Backend persists a complete cache mapping.
// Save always receives the whole mapping and replaces whatever was stored.
type Backend interface {
	// Name identifies the backend in logs (e.g. "json").
	Name() string

	// Load returns the stored mapping. A store that does not exist yet is
	// an empty mapping, not an error.
	Load() (map[book.CacheKey][]book.Record, error)

	// Save replaces the stored mapping with entries.
	Save(entries map[book.CacheKey][]book.Record) error

	// Close releases any resources held by the backend.
	Close() error
}

// Supported backend kinds.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// ValidBackends is the list of backend kinds accepted by OpenBackend.
var ValidBackends = []string{BackendJSON, BackendSQLite, BackendBolt}

// OpenBackend opens the backend of the given kind at path.
func OpenBackend(kind, path string) (Backend, error) {
	if path == "" {
		return nil, fmt.Errorf("cache path is required")
	}

	switch strings.ToLower(kind) {
	case "", BackendJSON:
		return NewJSONBackend(path), nil
	case BackendSQLite:
		return NewSQLiteBackend(path)
	case BackendBolt:
		return NewBoltBackend(path)
	}
	return nil, fmt.Errorf("invalid cache backend '%s'; valid backends are: %s", kind, strings.Join(ValidBackends, ", "))
}

// ensureParentDir creates the directory that will hold path.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}
