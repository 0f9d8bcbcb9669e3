package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultTokenTTLMinutes = 1440 // 24 hours

// Config holds process configuration, loaded once from the environment at startup.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
	LogLevel  string
	LogFormat string
}

// Load reads configuration from QUILL_* environment variables, applying
// defaults where unset. It fails if the signing secret is missing: starting
// without one would silently issue forgeable tokens.
func Load() (Config, error) {
	cfg := Config{
		Port:      envOr("QUILL_PORT", "8080"),
		DBPath:    envOr("QUILL_DB_PATH", "quill.db"),
		JWTSecret: os.Getenv("QUILL_JWT_SECRET"),
		LogLevel:  envOr("QUILL_LOG_LEVEL", "info"),
		LogFormat: envOr("QUILL_LOG_FORMAT", "text"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("QUILL_JWT_SECRET is not set")
	}

	minutes := defaultTokenTTLMinutes
	if v := os.Getenv("QUILL_TOKEN_TTL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("QUILL_TOKEN_TTL_MINUTES: invalid value %q", v)
		}
		minutes = n
	}
	cfg.TokenTTL = time.Duration(minutes) * time.Minute

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
