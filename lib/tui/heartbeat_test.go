// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/clogs-dev/clogs/lib/timeline"
)

func testSeries(states ...string) timeline.Series {
	base := time.Unix(0, 0)
	buckets := make([]timeline.Bucket, len(states))
	for index, state := range states {
		start := base.Add(time.Duration(index) * 30 * time.Second)
		buckets[index] = timeline.Bucket{Start: start, End: start.Add(30 * time.Second), State: state}
	}
	return timeline.BuildSeries(buckets, nil)
}

func TestRenderHeartbeatWidth(t *testing.T) {
	series := testSeries("running", "running", "exited")

	padded := RenderHeartbeat(DefaultTheme, series, 5, -1)
	if got := ansi.Strip(padded); got != "  ███" {
		t.Errorf("short series = %q, want right-aligned cells", got)
	}

	truncated := RenderHeartbeat(DefaultTheme, series, 2, -1)
	if lipgloss.Width(truncated) != 2 {
		t.Errorf("width = %d, want 2", lipgloss.Width(truncated))
	}
	if RenderHeartbeat(DefaultTheme, series, 0, -1) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestRenderHeartbeatCursor(t *testing.T) {
	series := testSeries("running", "paused", "running", "exited")
	got := ansi.Strip(RenderHeartbeat(DefaultTheme, series, 4, 1))
	if got != "█▼██" {
		t.Errorf("cursor rendering = %q", got)
	}
	// A cursor outside the visible window is not drawn.
	got = ansi.Strip(RenderHeartbeat(DefaultTheme, series, 2, 1))
	if strings.Contains(got, heartbeatCursor) {
		t.Errorf("hidden cursor drawn: %q", got)
	}
}

func TestHeartbeatWindow(t *testing.T) {
	series := testSeries("a", "b", "c", "d")
	if got := HeartbeatWindow(series, 10); got != 0 {
		t.Errorf("HeartbeatWindow(wide) = %d, want 0", got)
	}
	if got := HeartbeatWindow(series, 3); got != 1 {
		t.Errorf("HeartbeatWindow(3) = %d, want 1", got)
	}
}

func TestRowState(t *testing.T) {
	series := testSeries("running", "exited")
	if got := RowState(series, series.Rows[1]); got != "exited" {
		t.Errorf("RowState = %q", got)
	}
	if got := RowState(series, timeline.Row{}); got != "" {
		t.Errorf("RowState(empty row) = %q", got)
	}
}

func TestRenderLegend(t *testing.T) {
	got := ansi.Strip(RenderLegend(DefaultTheme, []string{"running", "exited"}))
	if got != "■ running  ■ exited" {
		t.Errorf("legend = %q", got)
	}
}
