package cmd

import (
	"log/slog"

	"github.com/lepinkainen/bookbot/internal/cache"
	"github.com/lepinkainen/bookbot/internal/config"
	"github.com/lepinkainen/bookbot/internal/googlebooks"
	"github.com/lepinkainen/bookbot/internal/ratelimit"
)

func newClient(settings config.Settings) (*googlebooks.Client, error) {
	return googlebooks.NewClient(googlebooks.Options{
		BaseURL: settings.BaseURL,
		APIKey:  settings.APIKey,
		Timeout: settings.Timeout,
		Limiter: ratelimit.New("googlebooks", settings.RateLimit),
	})
}

// openStore opens and loads the configured cache. A backend that cannot be
// opened or read leaves the store empty so lookups still work.
func openStore(settings config.Settings) *cache.Store {
	backend, err := cache.OpenBackend(settings.CacheBackend, settings.CacheFile)
	if err != nil {
		slog.Warn("Failed to open cache, continuing without persistence",
			"backend", settings.CacheBackend, "file", settings.CacheFile, "error", err)
		return cache.NewStore(nil)
	}

	store := cache.NewStore(backend)
	if err := store.Load(); err != nil {
		slog.Warn("Failed to load cache, starting empty", "backend", backend.Name(), "error", err)
	}
	return store
}

func closeStore(store *cache.Store) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close cache", "error", err)
	}
}
