// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"context"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clogs-dev/clogs/lib/testutil"
)

func TestTUILogHandlerDelivers(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn)
	received := make(chan tea.Msg, 1)
	handler.setSender(func(message tea.Msg) { received <- message })

	logger := slog.New(handler).With("component", "poller").WithGroup("fetch")
	logger.Warn("history fetch failed", "subject", "web-1")

	message := testutil.RequireReceive(t, received, 5*time.Second, "log record not delivered")
	record, ok := message.(logRecordMsg)
	if !ok {
		t.Fatalf("delivered %T, want logRecordMsg", message)
	}
	if want := "history fetch failed (component=poller, fetch.subject=web-1)"; record.Summary != want {
		t.Errorf("summary = %q, want %q", record.Summary, want)
	}
	if record.Level != slog.LevelWarn {
		t.Errorf("level = %v, want WARN", record.Level)
	}
}

func TestTUILogHandlerLevel(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn)
	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled on a warn handler")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled on a warn handler")
	}
}

func TestTUILogHandlerBeforeProgram(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelInfo)
	record := slog.NewRecord(time.Now(), slog.LevelError, "early", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Errorf("Handle before SetProgram = %v, want nil", err)
	}
}

func TestTUILogHandlerDerivedShareProgram(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelInfo)
	derived := handler.WithAttrs([]slog.Attr{slog.String("k", "v")})

	received := make(chan tea.Msg, 1)
	handler.setSender(func(message tea.Msg) { received <- message })

	slog.New(derived).Info("after")
	message := testutil.RequireReceive(t, received, 5*time.Second, "derived handler did not see the program")
	if got := message.(logRecordMsg).Summary; got != "after (k=v)" {
		t.Errorf("summary = %q, want %q", got, "after (k=v)")
	}
}
