package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lepinkainen/bookbot/internal/book"
	"github.com/lepinkainen/bookbot/internal/errors"
	bolt "go.etcd.io/bbolt"
)

var bucketBooks = []byte("books")

// BoltBackend stores the mapping in a single bbolt bucket.
type BoltBackend struct {
	db   *bolt.DB
	path string
}

// NewBoltBackend opens (or creates) the bolt file at dbPath.
func NewBoltBackend(dbPath string) (*BoltBackend, error) {
	if err := ensureParentDir(dbPath); err != nil {
		return nil, err
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBooks)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltBackend{db: db, path: dbPath}, nil
}

func (b *BoltBackend) Name() string {
	return BackendBolt
}

func (b *BoltBackend) Load() (map[book.CacheKey][]book.Record, error) {
	entries := make(map[book.CacheKey][]book.Record)

	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketBooks)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var records []book.Record
			if err := json.Unmarshal(v, &records); err != nil {
				return fmt.Errorf("entry %q: %w", k, err)
			}
			entries[book.CacheKey(k)] = records
			return nil
		})
	})
	if err != nil {
		return nil, errors.NewPersistenceError("load", b.path, err)
	}

	return entries, nil
}

func (b *BoltBackend) Save(entries map[book.CacheKey][]book.Record) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketBooks) != nil {
			if err := tx.DeleteBucket(bucketBooks); err != nil {
				return err
			}
		}
		bucket, err := tx.CreateBucket(bucketBooks)
		if err != nil {
			return err
		}

		for key, records := range entries {
			if records == nil {
				records = []book.Record{}
			}
			data, err := json.Marshal(records)
			if err != nil {
				return err
			}
			if err := bucket.Put([]byte(key), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.NewPersistenceError("save", b.path, err)
	}
	return nil
}

func (b *BoltBackend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
