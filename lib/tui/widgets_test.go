// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestThumbSpan(t *testing.T) {
	tests := []struct {
		name                           string
		height, total, visible, offset int
		wantStart, wantSize            int
	}{
		{"fits", 10, 5, 10, 0, 0, 10},
		{"top", 10, 100, 10, 0, 0, 1},
		{"bottom", 10, 100, 10, 90, 9, 1},
		{"half", 10, 20, 10, 10, 5, 5},
		{"offset past end", 10, 20, 10, 50, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, size := thumbSpan(tt.height, tt.total, tt.visible, tt.offset)
			if start != tt.wantStart || size != tt.wantSize {
				t.Errorf("thumbSpan = (%d, %d), want (%d, %d)", start, size, tt.wantStart, tt.wantSize)
			}
		})
	}
}

func TestRenderScrollbar(t *testing.T) {
	if RenderScrollbar(DefaultTheme, 0, 10, 5, 0) != "" {
		t.Error("zero height should render nothing")
	}
	lines := strings.Split(RenderScrollbar(DefaultTheme, 4, 40, 10, 0), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if !strings.Contains(lines[0], "┃") || !strings.Contains(lines[3], "│") {
		t.Errorf("unexpected scrollbar: %q", lines)
	}
}

func TestSpliceOverlay(t *testing.T) {
	view := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	result := SpliceOverlay(view, []string{"XY", "ZW"}, 3, 1)
	lines := strings.Split(result, "\n")

	if lines[0] != "aaaaaaaaaa" {
		t.Errorf("line above overlay changed: %q", lines[0])
	}
	if got := ansi.Strip(lines[1]); got != "bbbXYbbbbb" {
		t.Errorf("line 1 = %q", got)
	}
	if got := ansi.Strip(lines[2]); got != "cccZWccccc" {
		t.Errorf("line 2 = %q", got)
	}
	if SpliceOverlay(view, nil, 0, 0) != view {
		t.Error("empty overlay changed the view")
	}
}

func TestSpliceOverlayPastShortLine(t *testing.T) {
	result := SpliceOverlay("ab", []string{"XY"}, 4, 0)
	if got := ansi.Strip(result); got != "ab  XY" {
		t.Errorf("got %q, want overlay padded to its anchor", got)
	}
}

func TestCenterAnchor(t *testing.T) {
	x, y := CenterAnchor(80, 24, 20, 4)
	if x != 30 || y != 10 {
		t.Errorf("CenterAnchor = (%d, %d), want (30, 10)", x, y)
	}
	x, y = CenterAnchor(10, 2, 20, 4)
	if x != 0 || y != 0 {
		t.Errorf("oversized box anchor = (%d, %d), want (0, 0)", x, y)
	}
}

func TestDropdown(t *testing.T) {
	options := []DropdownOption{{"15 minutes", "900"}, {"1 hour", "3600"}, {"6 hours", "21600"}}
	dropdown := NewDropdown("History", options, "3600")
	if dropdown.Cursor != 1 {
		t.Fatalf("cursor = %d, want the current option", dropdown.Cursor)
	}
	dropdown.MoveDown()
	dropdown.MoveDown()
	if dropdown.Selected().Value != "900" {
		t.Errorf("MoveDown did not wrap: %q", dropdown.Selected().Value)
	}
	dropdown.MoveUp()
	if dropdown.Selected().Value != "21600" {
		t.Errorf("MoveUp did not wrap: %q", dropdown.Selected().Value)
	}

	lines := dropdown.Render(DefaultTheme)
	if len(lines) != dropdown.Height() {
		t.Fatalf("rendered %d lines, Height() = %d", len(lines), dropdown.Height())
	}
	for index, line := range lines {
		if width := lipgloss.Width(line); width != dropdown.Width() {
			t.Errorf("line %d width %d, want %d", index, width, dropdown.Width())
		}
	}
	if !strings.Contains(ansi.Strip(lines[3]), "> 6 hours") {
		t.Errorf("selected option not marked: %q", ansi.Strip(lines[3]))
	}
}

func TestHeatTracker(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tracker := NewHeatTracker()
	if tracker.Heat("web", now) != 0 {
		t.Error("untouched item has heat")
	}

	tracker.Ignite("web", now)
	if heat := tracker.Heat("web", now); heat != 1 {
		t.Errorf("heat at ignition = %v, want 1", heat)
	}
	if heat := tracker.Heat("web", now.Add(HeatDecayDuration/2)); heat < 0.49 || heat > 0.51 {
		t.Errorf("heat halfway = %v, want 0.5", heat)
	}
	if !tracker.HasHot(now.Add(time.Second)) {
		t.Error("HasHot false while glowing")
	}
	if tracker.HasHot(now.Add(HeatDecayDuration)) {
		t.Error("HasHot true after decay")
	}
	if tracker.Heat("web", now) != 0 {
		t.Error("cooled entry was not collected")
	}
}

func TestBlendHeat(t *testing.T) {
	base := lipgloss.Color("#000000")
	accent := lipgloss.Color("#ffffff")
	if BlendHeat(base, accent, 0) != base {
		t.Error("zero heat changed the color")
	}
	if got := BlendHeat(base, accent, 1); got != accent {
		t.Errorf("full heat = %q, want accent", got)
	}
	if got := BlendHeat("252", accent, 0.9); got != accent {
		t.Errorf("non-hex base at high heat = %q, want accent", got)
	}
	if got := BlendHeat("252", accent, 0.2); got != "252" {
		t.Errorf("non-hex base at low heat = %q, want base", got)
	}
}
