package cache

import (
	"database/sql"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"sync"

	"github.com/lepinkainen/bookbot/internal/book"
	"github.com/lepinkainen/bookbot/internal/errors"
	_ "modernc.org/sqlite"
)

// SQLiteBackend stores the mapping in the books_cache table of a SQLite database.
type SQLiteBackend struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewSQLiteBackend opens (or creates) the database at dbPath and ensures the schema exists.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	if err := ensureParentDir(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// Single writer; the whole table is rewritten on every save.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, stdErrors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	if _, err := db.Exec(BooksCacheSchema); err != nil {
		closeErr := db.Close()
		return nil, stdErrors.Join(fmt.Errorf("failed to create cache table: %w", err), closeErr)
	}

	return &SQLiteBackend{db: db, path: dbPath}, nil
}

func (b *SQLiteBackend) Name() string {
	return BackendSQLite
}

func (b *SQLiteBackend) Load() (map[book.CacheKey][]book.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows, err := b.db.Query(`SELECT cache_key, data FROM books_cache`)
	if err != nil {
		return nil, errors.NewPersistenceError("load", b.path, fmt.Errorf("failed to query cache: %w", err))
	}
	defer func() { _ = rows.Close() }()

	entries := make(map[book.CacheKey][]book.Record)
	for rows.Next() {
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			return nil, errors.NewPersistenceError("load", b.path, err)
		}

		var records []book.Record
		if err := json.Unmarshal([]byte(data), &records); err != nil {
			return nil, errors.NewPersistenceError("load", b.path, fmt.Errorf("entry %q: %w", key, err))
		}
		entries[book.CacheKey(key)] = records
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewPersistenceError("load", b.path, err)
	}

	return entries, nil
}

func (b *SQLiteBackend) Save(entries map[book.CacheKey][]book.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.db.Begin()
	if err != nil {
		return errors.NewPersistenceError("save", b.path, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		// Rollback after a successful commit is a harmless no-op
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM books_cache`); err != nil {
		return errors.NewPersistenceError("save", b.path, fmt.Errorf("failed to clear cache table: %w", err))
	}

	stmt, err := tx.Prepare(`INSERT INTO books_cache (cache_key, data, cached_at) VALUES (?, ?, CURRENT_TIMESTAMP)`)
	if err != nil {
		return errors.NewPersistenceError("save", b.path, fmt.Errorf("failed to prepare statement: %w", err))
	}
	defer func() { _ = stmt.Close() }()

	for key, records := range entries {
		if records == nil {
			records = []book.Record{}
		}
		data, err := json.Marshal(records)
		if err != nil {
			return errors.NewPersistenceError("save", b.path, err)
		}
		if _, err := stmt.Exec(string(key), string(data)); err != nil {
			return errors.NewPersistenceError("save", b.path, fmt.Errorf("failed to insert entry %q: %w", key, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewPersistenceError("save", b.path, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// Close closes the database connection
func (b *SQLiteBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
