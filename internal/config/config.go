// Package config loads server settings from the environment.
package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"
)

type Config struct {
	ListenAddr    string
	Currency      string
	Locale        string
	SessionSecret string
	SessionTTL    time.Duration
	SweepInterval time.Duration
	CORSOrigin    string
	LogLevel      string
}

// Load reads the configuration. A missing SESSION_SECRET gets a random
// one, which invalidates outstanding tokens on restart; sessions do not
// survive a restart anyway.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		Currency:      getEnv("CURRENCY", "PHP"),
		Locale:        getEnv("LOCALE", "en"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		CORSOrigin:    getEnv("CORS_ORIGIN", "*"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getDuration("SESSION_SWEEP_INTERVAL", time.Minute); err != nil {
		return nil, err
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = rand.Text()
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
