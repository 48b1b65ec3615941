package cache

import (
	"encoding/json"
	"os"

	"github.com/lepinkainen/bookbot/internal/book"
	"github.com/lepinkainen/bookbot/internal/errors"
	"github.com/lepinkainen/bookbot/internal/fileutil"
)

// JSONBackend stores the mapping as a single JSON object on disk.
// Writes go to a temporary file that is renamed over the target.
type JSONBackend struct {
	path string
}

// NewJSONBackend creates a backend for the file at path. The file is not touched until Load or Save.
func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{path: path}
}

func (b *JSONBackend) Name() string {
	return BackendJSON
}

// Path returns the cache file location.
func (b *JSONBackend) Path() string {
	return b.path
}

func (b *JSONBackend) Load() (map[book.CacheKey][]book.Record, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return map[book.CacheKey][]book.Record{}, nil
	}
	if err != nil {
		return nil, errors.NewPersistenceError("load", b.path, err)
	}

	entries := make(map[book.CacheKey][]book.Record)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.NewPersistenceError("load", b.path, err)
	}
	return entries, nil
}

func (b *JSONBackend) Save(entries map[book.CacheKey][]book.Record) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.NewPersistenceError("save", b.path, err)
	}

	if err := ensureParentDir(b.path); err != nil {
		return errors.NewPersistenceError("save", b.path, err)
	}

	if err := fileutil.WriteFileAtomic(b.path, data, 0644); err != nil {
		return errors.NewPersistenceError("save", b.path, err)
	}
	return nil
}

// Close is a no-op; the file is only open while loading or saving.
func (b *JSONBackend) Close() error {
	return nil
}
