// Package config holds the small set of environment-driven knobs the
// adjudication kernel needs: where to load a map from, and how loud to log.
package config

import "os"

// Config holds kernel configuration loaded from environment variables.
type Config struct {
	MapFile  string // path to a tabular map file; empty means use StandardMap()
	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		MapFile:  envOrDefault("STPSYR_MAP_FILE", ""),
		LogLevel: envOrDefault("STPSYR_LOG_LEVEL", "info"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
