package cache

// BooksCacheSchema defines the schema for the search result cache.
// One row per cache key; data holds the JSON encoded record list.
const BooksCacheSchema = `
CREATE TABLE IF NOT EXISTS books_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_books_cached_at ON books_cache(cached_at);
`
