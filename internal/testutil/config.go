package testutil

import (
	"testing"

	"github.com/lepinkainen/bookbot/internal/config"
	"github.com/spf13/viper"
)

// ResetConfig resets viper for the duration of the test and restores it afterwards.
func ResetConfig(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
}

// SetTestConfig resets viper and installs a configuration suitable for tests:
// a fake API key, no rate limiting, and a JSON cache inside the sandbox.
func SetTestConfig(t *testing.T, env *TestEnv, opts ...SetTestConfigOption) {
	t.Helper()

	ResetConfig(t)
	config.SetDefaults()

	options := &testConfigOptions{
		apiKey:       "test-key",
		cacheBackend: "json",
		cacheFile:    env.Path("books_cache.json"),
	}
	for _, opt := range opts {
		opt(options)
	}

	viper.Set(config.KeyAPIKey, options.apiKey)
	viper.Set(config.KeyRateLimit, 0)
	viper.Set(config.KeyCacheBackend, options.cacheBackend)
	viper.Set(config.KeyCacheFile, options.cacheFile)
	if options.baseURL != "" {
		viper.Set(config.KeyBaseURL, options.baseURL)
	}
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*testConfigOptions)

type testConfigOptions struct {
	apiKey       string
	baseURL      string
	cacheBackend string
	cacheFile    string
}

// WithAPIKey overrides the Google Books API key.
func WithAPIKey(key string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.apiKey = key
	}
}

// WithBaseURL points the Google Books client at a test server.
func WithBaseURL(url string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.baseURL = url
	}
}

// WithCache selects the cache backend and file.
func WithCache(backend, file string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.cacheBackend = backend
		o.cacheFile = file
	}
}
