// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the server needs at start-up.
type Config struct {
	// Port the HTTP server listens on. PORT env var, default 3000.
	Port int

	// GitHubAPIBase is the base URL of the repository-listing API.
	// GITHUB_API_BASE env var, default https://api.github.com.
	GitHubAPIBase string

	// GitHubFetchTimeout bounds a single repository fetch.
	// GITHUB_FETCH_TIMEOUT env var (Go duration), default 10s.
	GitHubFetchTimeout time.Duration

	// PasswordScheme selects "plain" (default) or "bcrypt".
	// PASSWORD_SCHEME env var.
	PasswordScheme string

	// SessionSweepInterval enables the background sweep of expired
	// sessions when > 0. SESSION_SWEEP_INTERVAL env var, default 0
	// (disabled — expiry stays lazy).
	SessionSweepInterval time.Duration
}

// Load reads the environment and applies defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:               3000,
		GitHubAPIBase:      "https://api.github.com",
		GitHubFetchTimeout: 10 * time.Second,
		PasswordScheme:     "plain",
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("GITHUB_API_BASE"); v != "" {
		cfg.GitHubAPIBase = v
	}

	if v := os.Getenv("GITHUB_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid GITHUB_FETCH_TIMEOUT %q: %w", v, err)
		}
		cfg.GitHubFetchTimeout = d
	}

	if v := os.Getenv("PASSWORD_SCHEME"); v != "" {
		if v != "plain" && v != "bcrypt" {
			return Config{}, fmt.Errorf("config: PASSWORD_SCHEME must be \"plain\" or \"bcrypt\", got %q", v)
		}
		cfg.PasswordScheme = v
	}

	if v := os.Getenv("SESSION_SWEEP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid SESSION_SWEEP_INTERVAL %q: %w", v, err)
		}
		cfg.SessionSweepInterval = d
	}

	return cfg, nil
}
