// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable read by Load.
const EnvVar = "CLOGS_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config is the dashboard configuration.
type Config struct {
	Environment Environment `yaml:"environment"`

	// API locates the Clogs backend.
	API APIConfig `yaml:"api"`

	// Polling sets how often backend data is refetched.
	Polling PollingConfig `yaml:"polling"`

	// Timeline shapes the uptime heartbeat.
	Timeline TimelineConfig `yaml:"timeline"`

	// Theme overrides state colors.
	Theme ThemeConfig `yaml:"theme"`

	Log LogConfig `yaml:"log"`

	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains the fields that can be overridden per
// environment. Zero values leave the base value in place.
type ConfigOverrides struct {
	API      *APIConfig      `yaml:"api,omitempty"`
	Polling  *PollingConfig  `yaml:"polling,omitempty"`
	Timeline *TimelineConfig `yaml:"timeline,omitempty"`
	Log      *LogConfig      `yaml:"log,omitempty"`
}

// APIConfig locates the backend.
type APIConfig struct {
	// BaseURL is the API root, including any path prefix.
	// Default: http://localhost:8080/api
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds each request.
	// Default: 10
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns TimeoutSeconds as a duration.
func (api APIConfig) Timeout() time.Duration {
	return seconds(api.TimeoutSeconds)
}

// PollingConfig sets the refetch cadences. These are independent of
// the timeline clock tick.
type PollingConfig struct {
	// DataIntervalSeconds is how often intervals, containers and
	// cumulative uptime are refetched.
	// Default: 5
	DataIntervalSeconds int `yaml:"data_interval_seconds"`

	// HealthIntervalSeconds is how often the API health badge is
	// refreshed.
	// Default: 10
	HealthIntervalSeconds int `yaml:"health_interval_seconds"`
}

// DataInterval returns DataIntervalSeconds as a duration.
func (polling PollingConfig) DataInterval() time.Duration {
	return seconds(polling.DataIntervalSeconds)
}

// HealthInterval returns HealthIntervalSeconds as a duration.
func (polling PollingConfig) HealthInterval() time.Duration {
	return seconds(polling.HealthIntervalSeconds)
}

// TimelineConfig shapes the heartbeat.
type TimelineConfig struct {
	// BucketWidthSeconds is the span of one heartbeat cell.
	// Default: 30
	BucketWidthSeconds int `yaml:"bucket_width_seconds"`

	// LookbackSeconds is how far back the heartbeat reaches.
	// Default: 3600
	LookbackSeconds int `yaml:"lookback_seconds"`

	// TickIntervalSeconds is how often "now" advances and open
	// intervals are recomputed.
	// Default: 5
	TickIntervalSeconds int `yaml:"tick_interval_seconds"`
}

// BucketWidth returns BucketWidthSeconds as a duration.
func (timeline TimelineConfig) BucketWidth() time.Duration {
	return seconds(timeline.BucketWidthSeconds)
}

// Lookback returns LookbackSeconds as a duration.
func (timeline TimelineConfig) Lookback() time.Duration {
	return seconds(timeline.LookbackSeconds)
}

// TickInterval returns TickIntervalSeconds as a duration.
func (timeline TimelineConfig) TickInterval() time.Duration {
	return seconds(timeline.TickIntervalSeconds)
}

// ThemeConfig overrides heartbeat colors. Colors are "#rgb",
// "#rrggbb" or an ANSI 256-color index.
type ThemeConfig struct {
	// DefaultColor is used for state labels with no assigned color.
	// Default: built-in (#8884d8)
	DefaultColor string `yaml:"default_color"`

	// StateColors maps state labels to colors, merged over the
	// built-in table.
	StateColors map[string]string `yaml:"state_colors"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	// Default: info (warn in production)
	Level string `yaml:"level"`

	// Output is an optional file receiving JSON log records.
	Output string `yaml:"output"`
}

// SlogLevel parses Level.
func (log LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

func seconds(count int) time.Duration {
	return time.Duration(count) * time.Second
}

// Default returns the built-in configuration. The values match the
// dashboard's historical behavior: 30-second buckets over the last
// hour, a 5-second clock tick and data refresh, and a 10-second
// health check.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL:        "http://localhost:8080/api",
			TimeoutSeconds: 10,
		},
		Polling: PollingConfig{
			DataIntervalSeconds:   5,
			HealthIntervalSeconds: 10,
		},
		Timeline: TimelineConfig{
			BucketWidthSeconds:  30,
			LookbackSeconds:     3600,
			TickIntervalSeconds: 5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by CLOGS_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your clogs.yaml config file, or use --config flag", EnvVar)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path over the defaults, applies
// the section for the selected environment, and expands variables.
// The result is not validated; call Validate.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &ConfigOverrides{Log: &LogConfig{Level: "warn"}}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.TimeoutSeconds != 0 {
			c.API.TimeoutSeconds = overrides.API.TimeoutSeconds
		}
	}

	if overrides.Polling != nil {
		if overrides.Polling.DataIntervalSeconds != 0 {
			c.Polling.DataIntervalSeconds = overrides.Polling.DataIntervalSeconds
		}
		if overrides.Polling.HealthIntervalSeconds != 0 {
			c.Polling.HealthIntervalSeconds = overrides.Polling.HealthIntervalSeconds
		}
	}

	if overrides.Timeline != nil {
		if overrides.Timeline.BucketWidthSeconds != 0 {
			c.Timeline.BucketWidthSeconds = overrides.Timeline.BucketWidthSeconds
		}
		if overrides.Timeline.LookbackSeconds != 0 {
			c.Timeline.LookbackSeconds = overrides.Timeline.LookbackSeconds
		}
		if overrides.Timeline.TickIntervalSeconds != 0 {
			c.Timeline.TickIntervalSeconds = overrides.Timeline.TickIntervalSeconds
		}
	}

	if overrides.Log != nil {
		if overrides.Log.Level != "" {
			c.Log.Level = overrides.Log.Level
		}
		if overrides.Log.Output != "" {
			c.Log.Output = overrides.Log.Output
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} in the fields
// that name locations.
func (c *Config) expandVariables() {
	c.API.BaseURL = expandVars(c.API.BaseURL)
	c.Log.Output = expandVars(c.Log.Output)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// Validate checks the configuration, reporting every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	}

	positive := []struct {
		name  string
		value int
	}{
		{"api.timeout_seconds", c.API.TimeoutSeconds},
		{"polling.data_interval_seconds", c.Polling.DataIntervalSeconds},
		{"polling.health_interval_seconds", c.Polling.HealthIntervalSeconds},
		{"timeline.bucket_width_seconds", c.Timeline.BucketWidthSeconds},
		{"timeline.lookback_seconds", c.Timeline.LookbackSeconds},
		{"timeline.tick_interval_seconds", c.Timeline.TickIntervalSeconds},
	}
	for _, field := range positive {
		if field.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", field.name, field.value))
		}
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if c.Theme.DefaultColor != "" && !colorPattern.MatchString(c.Theme.DefaultColor) {
		errs = append(errs, fmt.Errorf("theme.default_color %q is not #rgb, #rrggbb or 0-255", c.Theme.DefaultColor))
	}
	for state, color := range c.Theme.StateColors {
		if !colorPattern.MatchString(color) {
			errs = append(errs, fmt.Errorf("theme.state_colors[%s] %q is not #rgb, #rrggbb or 0-255", state, color))
		}
	}

	return errors.Join(errs...)
}
