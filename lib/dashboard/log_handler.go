// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a log record to the model for display in the
// status bar.
type logRecordMsg struct {
	// Summary is the one-line "message (key=value, ...)" form.
	Summary string
	Level   slog.Level
	Time    time.Time
}

// logRecordFadeMsg clears the status bar message. Generation matches
// the message it was scheduled for, so an older fade does not clear a
// newer record.
type logRecordFadeMsg struct {
	Generation int
}

// logRecordFadeDelay is how long a record stays in the status bar.
const logRecordFadeDelay = 5 * time.Second

// TUILogHandler is a slog.Handler that routes records into a running
// bubbletea program. Records below the handler's level are dropped, as
// are records arriving before SetProgram.
//
// Handlers derived via WithAttrs and WithGroup share the program
// pointer, so one SetProgram call reaches all of them.
type TUILogHandler struct {
	level  slog.Leveler
	sink   *atomic.Pointer[func(tea.Msg)]
	attrs  []slog.Attr
	prefix string
}

// NewTUILogHandler creates a handler delivering records at or above
// level.
func NewTUILogHandler(level slog.Leveler) *TUILogHandler {
	return &TUILogHandler{
		level: level,
		sink:  &atomic.Pointer[func(tea.Msg)]{},
	}
}

// SetProgram starts delivery to program. Safe to call from any
// goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.setSender(program.Send)
}

func (handler *TUILogHandler) setSender(send func(tea.Msg)) {
	handler.sink.Store(&send)
}

// Enabled reports whether records at level are delivered.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats the record and sends it to the program. Delivery is
// asynchronous: Program.Send blocks until the event loop reads, and
// records logged from inside Update would otherwise deadlock.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	send := handler.sink.Load()
	if send == nil {
		return nil
	}

	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, formatAttr("", attr))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, formatAttr(handler.prefix, attr))
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}

	message := logRecordMsg{Summary: summary, Level: record.Level, Time: record.Time}
	go (*send)(message)
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = make([]slog.Attr, 0, len(handler.attrs)+len(attrs))
	derived.attrs = append(derived.attrs, handler.attrs...)
	for _, attr := range attrs {
		derived.attrs = append(derived.attrs, slog.Attr{Key: handler.prefix + attr.Key, Value: attr.Value})
	}
	return &derived
}

// WithGroup returns a handler that qualifies later attribute keys
// with name.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.prefix = handler.prefix + name + "."
	return &derived
}

func formatAttr(prefix string, attr slog.Attr) string {
	return prefix + attr.Key + "=" + attr.Value.Resolve().String()
}
