// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed at (anchorX, anchorY). Truncation is ANSI-aware
// so styling on both sides of the overlay survives.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
			if pad := anchorX - ansi.StringWidth(prefix); pad > 0 {
				result.WriteString(strings.Repeat(" ", pad))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		if suffixStart := anchorX + overlayWidth; suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// PadOverlayLine pads styled content to innerWidth and adds one
// column of background on each side.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	rightPad := max(innerWidth-ansi.StringWidth(styledContent), 0)
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}

// CenterAnchor returns the top-left position that centers a box of
// boxWidth by boxHeight on a screen of width by height.
func CenterAnchor(width, height, boxWidth, boxHeight int) (int, int) {
	return max((width-boxWidth)/2, 0), max((height-boxHeight)/2, 0)
}
