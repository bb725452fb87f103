package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Blank out anything the surrounding environment might set.
	for _, key := range []string{"PORT", "GITHUB_API_BASE", "GITHUB_FETCH_TIMEOUT", "PASSWORD_SCHEME", "SESSION_SWEEP_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.GitHubAPIBase != "https://api.github.com" {
		t.Errorf("GitHubAPIBase = %q", cfg.GitHubAPIBase)
	}
	if cfg.GitHubFetchTimeout != 10*time.Second {
		t.Errorf("GitHubFetchTimeout = %v", cfg.GitHubFetchTimeout)
	}
	if cfg.PasswordScheme != "plain" {
		t.Errorf("PasswordScheme = %q", cfg.PasswordScheme)
	}
	if cfg.SessionSweepInterval != 0 {
		t.Errorf("SessionSweepInterval = %v, want disabled", cfg.SessionSweepInterval)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GITHUB_API_BASE", "http://localhost:9999")
	t.Setenv("GITHUB_FETCH_TIMEOUT", "2s")
	t.Setenv("PASSWORD_SCHEME", "bcrypt")
	t.Setenv("SESSION_SWEEP_INTERVAL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.GitHubAPIBase != "http://localhost:9999" {
		t.Errorf("GitHubAPIBase = %q", cfg.GitHubAPIBase)
	}
	if cfg.GitHubFetchTimeout != 2*time.Second {
		t.Errorf("GitHubFetchTimeout = %v", cfg.GitHubFetchTimeout)
	}
	if cfg.PasswordScheme != "bcrypt" {
		t.Errorf("PasswordScheme = %q", cfg.PasswordScheme)
	}
	if cfg.SessionSweepInterval != 5*time.Minute {
		t.Errorf("SessionSweepInterval = %v", cfg.SessionSweepInterval)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"non-numeric port", "PORT", "not-a-port"},
		{"bad timeout", "GITHUB_FETCH_TIMEOUT", "fast"},
		{"unknown scheme", "PASSWORD_SCHEME", "md5"},
		{"bad sweep interval", "SESSION_SWEEP_INTERVAL", "hourly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() accepted %s=%q", tt.key, tt.value)
			}
		})
	}
}
