// Package config loads gotb settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the CLI and the HTTP server
type Config struct {
	// HTTP listen address
	Addr string

	// Optional JSON material catalog replacing the built-in one
	CatalogFile string

	// Minimum log level: debug, info, warn, error
	LogLevel string

	// Requests per second and burst allowed per client IP
	RateLimit float64
	RateBurst int

	// Sessions idle for longer than this are dropped
	SessionTTL time.Duration
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Addr:       ":8080",
		LogLevel:   "info",
		RateLimit:  5,
		RateBurst:  10,
		SessionTTL: 30 * time.Minute,
	}
}

// Load reads envFile (if it exists) into the environment and builds a Config
// from the GOTB_* variables on top of the defaults. An empty envFile means ".env".
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Default()

	if v := os.Getenv("GOTB_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("GOTB_CATALOG"); v != "" {
		cfg.CatalogFile = v
	}
	if v := os.Getenv("GOTB_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GOTB_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("GOTB_RATE_LIMIT must be a positive number, got %q", v)
		}
		cfg.RateLimit = f
	}
	if v := os.Getenv("GOTB_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("GOTB_RATE_BURST must be a positive integer, got %q", v)
		}
		cfg.RateBurst = n
	}
	if v := os.Getenv("GOTB_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("GOTB_SESSION_TTL must be a positive duration, got %q", v)
		}
		cfg.SessionTTL = d
	}

	return cfg, nil
}
