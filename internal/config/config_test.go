package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "")
	SetDefaults()

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", settings.APIKey)
	assert.Equal(t, DefaultBaseURL, settings.BaseURL)
	assert.Equal(t, 10*time.Second, settings.Timeout)
	assert.Equal(t, DefaultRateLimit, settings.RateLimit)
	assert.Equal(t, "json", settings.CacheBackend)
	assert.Equal(t, DefaultCacheFile, settings.CacheFile)
	assert.True(t, settings.CacheFailures)
}

func TestLoadAPIKeyFromEnvironment(t *testing.T) {
	resetViper(t)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "  env-key ")
	SetDefaults()

	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", settings.APIKey)
}

func TestLoadOverrides(t *testing.T) {
	testCases := []struct {
		name   string
		key    string
		value  any
		verify func(t *testing.T, s Settings)
	}{
		{
			name:  "timeout disabled",
			key:   KeyTimeout,
			value: "0s",
			verify: func(t *testing.T, s Settings) {
				assert.Equal(t, time.Duration(0), s.Timeout)
			},
		},
		{
			name:  "backend is lowercased",
			key:   KeyCacheBackend,
			value: "SQLite",
			verify: func(t *testing.T, s Settings) {
				assert.Equal(t, "sqlite", s.CacheBackend)
			},
		},
		{
			name:  "strict caching",
			key:   KeyCacheFailures,
			value: false,
			verify: func(t *testing.T, s Settings) {
				assert.False(t, s.CacheFailures)
			},
		},
		{
			name:  "rate limit disabled",
			key:   KeyRateLimit,
			value: 0,
			verify: func(t *testing.T, s Settings) {
				assert.Equal(t, 0.0, s.RateLimit)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resetViper(t)
			SetDefaults()
			viper.Set(tc.key, tc.value)

			settings, err := Load()
			require.NoError(t, err)
			tc.verify(t, settings)
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value any
	}{
		{name: "bad timeout", key: KeyTimeout, value: "soon"},
		{name: "negative timeout", key: KeyTimeout, value: "-1s"},
		{name: "negative rate limit", key: KeyRateLimit, value: -2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resetViper(t)
			SetDefaults()
			viper.Set(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}
