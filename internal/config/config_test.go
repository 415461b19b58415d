package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("second knobs convert to durations", func(t *testing.T) {
		cfg := &Config{
			RefreshCheckSeconds:     300,
			RefreshThresholdSeconds: 300,
			CacheStaleSeconds:       30,
			CacheGCSeconds:          300,
			UploadPollSeconds:       3,
		}
		assert.Equal(t, 5*time.Minute, cfg.RefreshCheckInterval())
		assert.Equal(t, 5*time.Minute, cfg.RefreshThreshold())
		assert.Equal(t, 30*time.Second, cfg.CacheStaleTime())
		assert.Equal(t, 5*time.Minute, cfg.CacheGCTime())
		assert.Equal(t, 3*time.Second, cfg.UploadPollInterval())
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads config with defaults", func(t *testing.T) {
		for _, key := range []string{"PORT", "VOICEAI_API_URL", "LOG_LEVEL", "DEV_LOGIN", "REFRESH_CHECK_SECONDS"} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "https://api.voiceai-app.com", cfg.APIBaseURL)
		assert.Equal(t, 300, cfg.RefreshCheckSeconds)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.DevLogin)
	})

	t.Run("loads custom values", func(t *testing.T) {
		t.Setenv("PORT", "3000")
		t.Setenv("VOICEAI_API_URL", "http://localhost:9000")
		t.Setenv("DEV_LOGIN", "true")
		t.Setenv("CACHE_STALE_SECONDS", "10")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "http://localhost:9000", cfg.APIBaseURL)
		assert.True(t, cfg.DevLogin)
		assert.Equal(t, 10, cfg.CacheStaleSeconds)
	})
}

func TestValidate(t *testing.T) {
	t.Run("production requires strong session secret", func(t *testing.T) {
		cfg := &Config{SessionSecret: "secret"}
		assert.Error(t, cfg.Validate(true))

		cfg.SessionSecret = "0123456789abcdef0123456789abcdef"
		assert.NoError(t, cfg.Validate(true))
	})

	t.Run("production rejects dev login", func(t *testing.T) {
		cfg := &Config{
			SessionSecret: "0123456789abcdef0123456789abcdef",
			DevLogin:      true,
		}
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("dev mode accepts empty secret", func(t *testing.T) {
		cfg := &Config{DevLogin: true}
		assert.NoError(t, cfg.Validate(false))
	})
}
