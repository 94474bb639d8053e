// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "clogs.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	if got := cfg.Timeline.BucketWidth(); got != 30*time.Second {
		t.Errorf("expected bucket width 30s, got %v", got)
	}
	if got := cfg.Timeline.Lookback(); got != time.Hour {
		t.Errorf("expected lookback 1h, got %v", got)
	}
	if got := cfg.Timeline.TickInterval(); got != 5*time.Second {
		t.Errorf("expected tick interval 5s, got %v", got)
	}
	if got := cfg.Polling.DataInterval(); got != 5*time.Second {
		t.Errorf("expected data interval 5s, got %v", got)
	}
	if got := cfg.Polling.HealthInterval(); got != 10*time.Second {
		t.Errorf("expected health interval 10s, got %v", got)
	}
	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Errorf("expected base_url=http://localhost:8080/api, got %s", cfg.API.BaseURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestLoad_RequiresClogsConfig(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when CLOGS_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "CLOGS_CONFIG environment variable not set") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestLoad_WithClogsConfig(t *testing.T) {
	configPath := writeConfig(t, `
environment: staging
api:
  base_url: http://backend:9000/api
timeline:
  bucket_width_seconds: 60
`)
	t.Setenv(EnvVar, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Environment != Staging {
		t.Errorf("expected environment=staging, got %s", cfg.Environment)
	}
	if cfg.API.BaseURL != "http://backend:9000/api" {
		t.Errorf("expected base_url from file, got %s", cfg.API.BaseURL)
	}
	if cfg.Timeline.BucketWidthSeconds != 60 {
		t.Errorf("expected bucket_width_seconds=60, got %d", cfg.Timeline.BucketWidthSeconds)
	}
	// Unset keys keep their defaults.
	if cfg.Timeline.LookbackSeconds != 3600 {
		t.Errorf("expected default lookback_seconds=3600, got %d", cfg.Timeline.LookbackSeconds)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	configPath := writeConfig(t, "timeline: [not, a, map\n")
	if _, err := LoadFile(configPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	configPath := writeConfig(t, `
environment: production
polling:
  data_interval_seconds: 5
production:
  polling:
    data_interval_seconds: 15
  log:
    level: error
staging:
  polling:
    data_interval_seconds: 99
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Polling.DataIntervalSeconds != 15 {
		t.Errorf("expected production data_interval_seconds=15, got %d", cfg.Polling.DataIntervalSeconds)
	}
	if cfg.Polling.HealthIntervalSeconds != 10 {
		t.Errorf("zero override replaced health_interval_seconds: got %d", cfg.Polling.HealthIntervalSeconds)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected log level error, got %s", cfg.Log.Level)
	}
}

func TestProductionDefaultsToWarn(t *testing.T) {
	configPath := writeConfig(t, "environment: production\n")

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		t.Fatalf("SlogLevel() failed: %v", err)
	}
	if level != slog.LevelWarn {
		t.Errorf("expected warn in production, got %v", level)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("CLOGS_TEST_HOST", "monitor.internal")
	t.Setenv("CLOGS_TEST_EMPTY", "")

	tests := []struct {
		input    string
		expected string
	}{
		{"http://${CLOGS_TEST_HOST}/api", "http://monitor.internal/api"},
		{"http://${CLOGS_TEST_EMPTY:-localhost}/api", "http://localhost/api"},
		{"http://${CLOGS_TEST_HOST:-localhost}/api", "http://monitor.internal/api"},
		{"${CLOGS_TEST_UNSET_VARIABLE}", ""},
		{"no variables", "no variables"},
	}

	for _, tt := range tests {
		if got := expandVars(tt.input); got != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestLoadFile_ExpandsLocations(t *testing.T) {
	t.Setenv("CLOGS_TEST_LOG_DIR", "/var/log/clogs")
	configPath := writeConfig(t, `
api:
  base_url: ${CLOGS_TEST_API:-http://fallback:8080/api}
log:
  output: ${CLOGS_TEST_LOG_DIR}/dashboard.jsonl
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.API.BaseURL != "http://fallback:8080/api" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.Log.Output != "/var/log/clogs/dashboard.jsonl" {
		t.Errorf("log.output = %q", cfg.Log.Output)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default", func(*Config) {}, ""},
		{"bad environment", func(c *Config) { c.Environment = "qa" }, "invalid environment"},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url is required"},
		{"zero bucket width", func(c *Config) { c.Timeline.BucketWidthSeconds = 0 }, "timeline.bucket_width_seconds"},
		{"negative lookback", func(c *Config) { c.Timeline.LookbackSeconds = -1 }, "timeline.lookback_seconds"},
		{"zero tick", func(c *Config) { c.Timeline.TickIntervalSeconds = 0 }, "timeline.tick_interval_seconds"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad state color", func(c *Config) { c.Theme.StateColors = map[string]string{"running": "green"} }, "theme.state_colors[running]"},
		{"ansi state color", func(c *Config) { c.Theme.StateColors = map[string]string{"running": "42"} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = ""
	cfg.Polling.DataIntervalSeconds = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"api.base_url", "polling.data_interval_seconds"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err.Error(), want)
		}
	}
}
