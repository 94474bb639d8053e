// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clogs-dev/clogs/lib/timeline"
)

const (
	heartbeatCell   = "█"
	heartbeatCursor = "▼"
	legendSwatch    = "■"
)

// HeartbeatWindow returns the index of the first series row that fits
// in width cells. Bars keep the most recent rows.
func HeartbeatWindow(series timeline.Series, width int) int {
	return max(len(series.Rows)-max(width, 0), 0)
}

// RowState returns the state label of a row's hot channel.
func RowState(series timeline.Series, row timeline.Row) string {
	channel := row.Channel()
	if channel < 0 || channel >= len(series.Channels) {
		return ""
	}
	return series.Channels[channel]
}

// RenderHeartbeat draws one cell per series row in its state color,
// right-aligned in width columns and keeping the most recent rows.
// The row at cursor (an index into series.Rows, or -1) is drawn as a
// marker.
func RenderHeartbeat(theme Theme, series timeline.Series, width, cursor int) string {
	if width <= 0 {
		return ""
	}
	first := HeartbeatWindow(series, width)
	shown := len(series.Rows) - first

	var builder strings.Builder
	if shown < width {
		builder.WriteString(strings.Repeat(" ", width-shown))
	}
	for index := first; index < len(series.Rows); index++ {
		row := series.Rows[index]
		style := lipgloss.NewStyle().Foreground(theme.StateColor(RowState(series, row)))
		if index == cursor {
			builder.WriteString(style.Bold(true).Render(heartbeatCursor))
			continue
		}
		builder.WriteString(style.Render(heartbeatCell))
	}
	return builder.String()
}

// RenderLegend lists channels with a color swatch each, in channel
// order.
func RenderLegend(theme Theme, channels []string) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	parts := make([]string, 0, len(channels))
	for _, channel := range channels {
		swatch := lipgloss.NewStyle().Foreground(theme.StateColor(channel)).Render(legendSwatch)
		parts = append(parts, swatch+" "+labelStyle.Render(channel))
	}
	return strings.Join(parts, "  ")
}
