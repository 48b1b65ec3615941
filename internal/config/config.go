package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration keys
const (
	KeyAPIKey        = "googlebooks.apikey"
	KeyBaseURL       = "googlebooks.baseurl"
	KeyTimeout       = "googlebooks.timeout"
	KeyRateLimit     = "googlebooks.ratelimit"
	KeyCacheBackend  = "cache.backend"
	KeyCacheFile     = "cache.file"
	KeyCacheFailures = "cache.cachefailures"
)

// Default values
const (
	DefaultBaseURL      = "https://www.googleapis.com/books/v1"
	DefaultTimeout      = "10s"
	DefaultRateLimit    = 1.0
	DefaultCacheBackend = "json"
	DefaultCacheFile    = "./books_cache.json"
)

// Settings is the resolved runtime configuration
type Settings struct {
	// APIKey is the Google Books API key
	APIKey string
	// BaseURL is the Google Books API endpoint
	BaseURL string
	// Timeout bounds each HTTP request; zero means no timeout
	Timeout time.Duration
	// RateLimit is the maximum number of requests per second; zero disables throttling
	RateLimit float64
	// CacheBackend is one of json, sqlite, bolt
	CacheBackend string
	// CacheFile is the location of the durable cache
	CacheFile string
	// CacheFailures keeps the original behaviour of caching the empty result of a failed lookup
	CacheFailures bool
}

// SetDefaults registers default values and environment bindings with viper
func SetDefaults() {
	viper.SetDefault(KeyBaseURL, DefaultBaseURL)
	viper.SetDefault(KeyTimeout, DefaultTimeout)
	viper.SetDefault(KeyRateLimit, DefaultRateLimit)
	viper.SetDefault(KeyCacheBackend, DefaultCacheBackend)
	viper.SetDefault(KeyCacheFile, DefaultCacheFile)
	viper.SetDefault(KeyCacheFailures, true)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv(KeyAPIKey, "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}
}

// Load resolves Settings from viper
func Load() (Settings, error) {
	timeoutStr := viper.GetString(KeyTimeout)
	if timeoutStr == "" {
		timeoutStr = "0s"
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid %s %q: %w", KeyTimeout, timeoutStr, err)
	}
	if timeout < 0 {
		return Settings{}, fmt.Errorf("invalid %s %q: must not be negative", KeyTimeout, timeoutStr)
	}

	rateLimit := viper.GetFloat64(KeyRateLimit)
	if rateLimit < 0 {
		return Settings{}, fmt.Errorf("invalid %s %v: must not be negative", KeyRateLimit, rateLimit)
	}

	return Settings{
		APIKey:        strings.TrimSpace(viper.GetString(KeyAPIKey)),
		BaseURL:       viper.GetString(KeyBaseURL),
		Timeout:       timeout,
		RateLimit:     rateLimit,
		CacheBackend:  strings.ToLower(viper.GetString(KeyCacheBackend)),
		CacheFile:     viper.GetString(KeyCacheFile),
		CacheFailures: viper.GetBool(KeyCacheFailures),
	}, nil
}
