// Package config holds runtime settings for the chatkeeper CLI.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabaseDSN: path or DSN of the local SQLite store.
//   - Verbose: enables debug-level logging.
type Config struct {
	DatabaseDSN string
	Verbose     bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "chatkeeper.db"
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from a .env file (if present), environment variables and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	// Missing .env is fine; it is an optional convenience.
	_ = godotenv.Load()

	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(cfg *Config) {
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.Verbose = getEnvBool("VERBOSE", cfg.Verbose)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
