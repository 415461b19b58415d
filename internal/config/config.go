package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port          int    `env:"PORT" envDefault:"8080"`
	APIBaseURL    string `env:"VOICEAI_API_URL" envDefault:"https://api.voiceai-app.com"`
	StateDir      string `env:"STATE_DIR" envDefault:".voiceai-console"`
	StaticDir     string `env:"STATIC_DIR" envDefault:"static/console"`
	RedisURL      string `env:"REDIS_URL"`
	SessionSecret string `env:"SESSION_SECRET"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	DevLogin      bool   `env:"DEV_LOGIN" envDefault:"false"`

	RefreshCheckSeconds     int `env:"REFRESH_CHECK_SECONDS" envDefault:"300"`
	RefreshThresholdSeconds int `env:"REFRESH_THRESHOLD_SECONDS" envDefault:"300"`
	CacheStaleSeconds       int `env:"CACHE_STALE_SECONDS" envDefault:"30"`
	CacheGCSeconds          int `env:"CACHE_GC_SECONDS" envDefault:"300"`
	UploadPollSeconds       int `env:"UPLOAD_POLL_SECONDS" envDefault:"3"`
	UploadPollMaxAttempts   int `env:"UPLOAD_POLL_MAX_ATTEMPTS" envDefault:"40"`
}

func (c *Config) RefreshCheckInterval() time.Duration {
	return time.Duration(c.RefreshCheckSeconds) * time.Second
}

func (c *Config) RefreshThreshold() time.Duration {
	return time.Duration(c.RefreshThresholdSeconds) * time.Second
}

func (c *Config) CacheStaleTime() time.Duration {
	return time.Duration(c.CacheStaleSeconds) * time.Second
}

func (c *Config) CacheGCTime() time.Duration {
	return time.Duration(c.CacheGCSeconds) * time.Second
}

func (c *Config) UploadPollInterval() time.Duration {
	return time.Duration(c.UploadPollSeconds) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate(isProduction bool) error {
	if isProduction {
		if err := validateSecret("SESSION_SECRET", c.SessionSecret); err != nil {
			return err
		}
		if c.DevLogin {
			return fmt.Errorf("DEV_LOGIN must be disabled in production")
		}
	}

	if c.RedisURL == "" {
		log.Warn().Msg("REDIS_URL is empty: login rate limiting falls back to in-memory counters")
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
