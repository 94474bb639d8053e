// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/clogs-dev/clogs/lib/backend"
	"github.com/clogs-dev/clogs/lib/tui"
)

const logPanelMaxWidth = 100

// logPanel is the centered overlay listing recent log entries of one
// container, or of every container for the fleet row. Entries arrive
// newest first and are shown in that order.
type logPanel struct {
	SubjectID string
	Title     string
	Entries   []backend.LogEntry
	Err       error
	Loading   bool
	Offset    int
}

func (panel *logPanel) loaded(entries []backend.LogEntry, err error) {
	panel.Loading = false
	panel.Entries = entries
	panel.Err = err
	panel.Offset = 0
}

// scroll moves the first shown entry by delta, within bounds for a
// body of bodyHeight lines.
func (panel *logPanel) scroll(delta, bodyHeight int) {
	panel.Offset = max(min(panel.Offset+delta, len(panel.Entries)-bodyHeight), 0)
}

// bodyHeight is the number of entry lines that fit on a screen of
// height rows: a margin of two rows above and below, a title, and a
// footer hint.
func logPanelBodyHeight(height int) int {
	return max(height-6, 1)
}

// Render returns the overlay lines and their top-left anchor for a
// screen of width by height.
func (panel *logPanel) Render(theme tui.Theme, width, height int) ([]string, int, int) {
	boxWidth := max(min(width-4, logPanelMaxWidth), 20)
	innerWidth := boxWidth - 2
	bodyHeight := logPanelBodyHeight(height)

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.OverlayForeground)
	titleStyle := backgroundStyle.Bold(true).Foreground(theme.HeaderForeground)
	faintStyle := backgroundStyle.Foreground(theme.FaintText)

	lines := []string{tui.PadOverlayLine(titleStyle.Render(ansi.Truncate(panel.Title, innerWidth, "…")), innerWidth, backgroundStyle)}

	var body []string
	switch {
	case panel.Loading:
		body = []string{faintStyle.Render("loading…")}
	case panel.Err != nil:
		body = []string{backgroundStyle.Foreground(theme.OfflineColor).Render(ansi.Truncate(panel.Err.Error(), innerWidth, "…"))}
	case len(panel.Entries) == 0:
		body = []string{faintStyle.Render("no log entries")}
	default:
		end := min(panel.Offset+bodyHeight, len(panel.Entries))
		for _, entry := range panel.Entries[panel.Offset:end] {
			body = append(body, formatLogEntry(theme, backgroundStyle, entry, innerWidth))
		}
	}
	for _, line := range body {
		lines = append(lines, tui.PadOverlayLine(line, innerWidth, backgroundStyle))
	}

	footer := "Esc close"
	if len(panel.Entries) > bodyHeight {
		footer = fmt.Sprintf("Esc close  ↑↓ scroll  %d-%d of %d",
			panel.Offset+1, min(panel.Offset+bodyHeight, len(panel.Entries)), len(panel.Entries))
	}
	lines = append(lines, tui.PadOverlayLine(faintStyle.Render(footer), innerWidth, backgroundStyle))

	anchorX, anchorY := tui.CenterAnchor(width, height, boxWidth, len(lines))
	return lines, anchorX, anchorY
}

func formatLogEntry(theme tui.Theme, backgroundStyle lipgloss.Style, entry backend.LogEntry, width int) string {
	stamp := entry.Time().Local().Format("15:04:05")
	level := strings.ToUpper(entry.Level)
	levelStyle := backgroundStyle.Foreground(theme.FaintText)
	switch level {
	case "ERROR", "FATAL":
		levelStyle = backgroundStyle.Foreground(theme.OfflineColor)
	case "WARN", "WARNING":
		levelStyle = backgroundStyle.Foreground(theme.AccentColor)
	}

	prefix := fmt.Sprintf("%s %-5s ", stamp, level)
	message := strings.ReplaceAll(entry.Message, "\n", " ")
	message = ansi.Truncate(message, max(width-ansi.StringWidth(prefix), 0), "…")
	return backgroundStyle.Foreground(theme.FaintText).Render(stamp+" ") +
		levelStyle.Render(fmt.Sprintf("%-5s", level)) +
		backgroundStyle.Render(" "+message)
}
