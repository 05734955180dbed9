// Package config loads and validates application configuration from
// environment variables. Load serves the API server, LoadClient the CLI;
// both binaries call godotenv in main first so a local .env file works too.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "3001",
	// the port the browser front-end expects.
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"] (the CRA dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string
}

// ClientConfig holds configuration for the CLI.
type ClientConfig struct {
	// APIBaseURL is the Event API base URL. Defaults to
	// "http://localhost:3001".
	APIBaseURL string

	// HTTPTimeout bounds each remote call. Defaults to 10s.
	// Set HTTP_TIMEOUT to a Go duration string (e.g. "30s") to override.
	HTTPTimeout time.Duration

	// LogLevel controls the minimum log level. Defaults to "info".
	LogLevel string
}

// Load reads server configuration from environment variables.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "3001"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// LoadClient reads CLI configuration from environment variables.
// Nothing is required; every value has a default.
func LoadClient() (ClientConfig, error) {
	cfg := ClientConfig{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:3001"),
		HTTPTimeout: 10 * time.Second,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ClientConfig{}, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
