// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clogs-dev/clogs/lib/backend"
	"github.com/clogs-dev/clogs/lib/cli"
	"github.com/clogs-dev/clogs/lib/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.API.BaseURL != config.Default().API.BaseURL {
		t.Errorf("base URL = %q, want the default", cfg.API.BaseURL)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("timeline:\n  bucket_width_seconds: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(filepath.Join(dir, "missing.yaml")); cli.Category(err) != cli.CategoryNotFound {
		t.Errorf("missing file: category %q, want not_found (%v)", cli.Category(err), err)
	}
	if _, err := loadConfig(invalid); cli.Category(err) != cli.CategoryValidation {
		t.Errorf("invalid file: category %q, want validation (%v)", cli.Category(err), err)
	}
}

func TestLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "debug"
	if level, err := logLevel(cfg); err != nil || level != slog.LevelDebug {
		t.Errorf("logLevel(debug) = %v, %v", level, err)
	}

	cfg.Log.Level = "chatty"
	if _, err := logLevel(cfg); cli.Category(err) != cli.CategoryValidation {
		t.Errorf("unknown level: category %q, want validation (%v)", cli.Category(err), err)
	}
	err := runOnce(context.Background(), cfg, flags{format: "text"})
	if cli.Category(err) != cli.CategoryValidation {
		t.Errorf("runOnce with unknown level: category %q, want validation (%v)", cli.Category(err), err)
	}
}

func TestClassifyFetchError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want cli.ErrorCategory
	}{
		{"not found", &backend.APIError{StatusCode: 404}, cli.CategoryNotFound},
		{"unavailable", &backend.APIError{StatusCode: 503}, cli.CategoryTransient},
		{"dial", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("refused")}, cli.CategoryTransient},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), cli.CategoryTransient},
		{"other", errors.New("bad json"), cli.CategoryInternal},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := cli.Category(classifyFetchError(test.err)); got != test.want {
				t.Errorf("category = %q, want %q", got, test.want)
			}
		})
	}
}

func TestFanoutHandler(t *testing.T) {
	var warnOnly, everything bytes.Buffer
	handler := fanoutHandler{
		slog.NewTextHandler(&warnOnly, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&everything, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	logger := slog.New(handler).With("component", "poller")

	logger.Info("polled")
	logger.Warn("slow backend")

	if strings.Contains(warnOnly.String(), "polled") {
		t.Error("info record reached the warn handler")
	}
	if !strings.Contains(warnOnly.String(), "slow backend") || !strings.Contains(warnOnly.String(), "component=poller") {
		t.Errorf("warn handler output = %q", warnOnly.String())
	}
	if strings.Count(everything.String(), "\n") != 2 {
		t.Errorf("debug handler got %q, want two records", everything.String())
	}
	if handler.Enabled(context.Background(), slog.LevelDebug-4) {
		t.Error("fanout enabled below every handler's level")
	}
}

func TestOpenFileLogHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clogs.jsonl")
	handler, closeFile, err := openFileLogHandler(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("openFileLogHandler: %v", err)
	}
	slog.New(handler).Info("started", "subjects", 3)
	closeFile()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"subjects":3`) {
		t.Errorf("log file = %q", data)
	}
}
