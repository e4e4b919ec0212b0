package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MONGODB_URI",
		"MONGODB_DATABASE",
		"REQUIRE_DATASTORE_READY",
		"PORT",
		"ENVIRONMENT",
		"BODY_LIMIT_BYTES",
		"CORS_ALLOW_ALL",
		"CORS_ALLOWED_ORIGINS",
		"RATE_LIMIT_MAX",
		"RATE_LIMIT_WINDOW_MS",
		"RATE_LIMIT_REDIS_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.MongoURI, "missing datastore URI is not a load error")
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "dev", cfg.Environment)
	assert.False(t, cfg.RequireDatastoreReady)
	assert.Equal(t, int64(102400), cfg.BodyLimitBytes)

	assert.True(t, cfg.CORSConfig.AllowAll)
	assert.Equal(t, []string{"http://example1.com", "http://example2.com"}, cfg.CORSConfig.AllowedOrigins)

	assert.Equal(t, 50, cfg.RateLimitConfig.Max)
	assert.Equal(t, 60*time.Second, cfg.RateLimitConfig.Window)
	assert.False(t, cfg.RateLimitConfig.UsesRedis())
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/app")
	t.Setenv("MONGODB_DATABASE", "other")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ALLOW_ALL", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("RATE_LIMIT_MAX", "10")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "1500")
	t.Setenv("RATE_LIMIT_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REQUIRE_DATASTORE_READY", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017/app", cfg.MongoURI)
	assert.Equal(t, "other", cfg.MongoDatabase)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.RequireDatastoreReady)
	assert.False(t, cfg.CORSConfig.AllowAll)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSConfig.AllowedOrigins)
	assert.Equal(t, 10, cfg.RateLimitConfig.Max)
	assert.Equal(t, 1500*time.Millisecond, cfg.RateLimitConfig.Window)
	assert.True(t, cfg.RateLimitConfig.UsesRedis())
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		value         string
		expectedError string
	}{
		{"non-boolean allow-all", "CORS_ALLOW_ALL", "sometimes", "CORS_ALLOW_ALL must be a boolean"},
		{"non-numeric max", "RATE_LIMIT_MAX", "fifty", "RATE_LIMIT_MAX must be an integer"},
		{"zero max", "RATE_LIMIT_MAX", "0", "RATE_LIMIT_MAX must be positive"},
		{"negative window", "RATE_LIMIT_WINDOW_MS", "-1", "RATE_LIMIT_WINDOW_MS must be positive"},
		{"non-numeric body limit", "BODY_LIMIT_BYTES", "big", "BODY_LIMIT_BYTES must be an integer"},
		{"non-boolean readiness", "REQUIRE_DATASTORE_READY", "maybe", "REQUIRE_DATASTORE_READY must be a boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := LoadConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}
