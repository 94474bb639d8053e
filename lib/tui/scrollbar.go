// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar produces a one-column scrollbar of height rows for a
// list of totalRows of which visibleRows are shown starting at
// offset. When everything fits the thumb fills the track.
func RenderScrollbar(theme Theme, height, totalRows, visibleRows, offset int) string {
	if height <= 0 {
		return ""
	}

	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(theme.AccentColor)
	start, size := thumbSpan(height, totalRows, visibleRows, offset)

	lines := make([]string, height)
	for index := range lines {
		if index >= start && index < start+size {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

// thumbSpan returns the first row and length of the scrollbar thumb.
func thumbSpan(height, totalRows, visibleRows, offset int) (int, int) {
	if totalRows <= visibleRows || totalRows <= 0 {
		return 0, height
	}

	size := max(height*visibleRows/totalRows, 1)
	scrollable := totalRows - visibleRows
	track := height - size
	start := 0
	if scrollable > 0 && track > 0 {
		start = offset * track / scrollable
	}
	start = min(max(start, 0), height-size)
	return start, size
}
