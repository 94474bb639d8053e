// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/clogs-dev/clogs/lib/backend"
	"github.com/clogs-dev/clogs/lib/timeline"
	"github.com/clogs-dev/clogs/lib/tui"
)

const (
	maxLabelWidth     = 30
	minLabelWidth     = 12
	uptimeColumnWidth = 8
	fleetSymbol       = "◆"
)

// View renders the dashboard: header, optional filter bar, the list,
// then separator, legend, status line, and help. Overlays are spliced
// on top.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	sections := []string{model.renderHeader()}
	if filterView := model.filter.View(model.theme, model.width); filterView != "" {
		sections = append(sections, filterView)
	}
	sections = append(sections,
		model.renderList(),
		lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render(strings.Repeat("─", model.width)),
		model.renderLegend(),
		model.renderStatus(),
		model.renderHelp(),
	)
	output := strings.Join(sections, "\n")

	if model.dropdown != nil {
		output = tui.SpliceOverlay(output, model.dropdown.Render(model.theme),
			model.dropdown.AnchorX, model.dropdown.AnchorY)
	}
	if model.logPanel != nil {
		lines, anchorX, anchorY := model.logPanel.Render(model.theme, model.width, model.height)
		output = tui.SpliceOverlay(output, lines, anchorX, anchorY)
	}
	return output
}

// renderHeader draws "─── Clogs ─── ● API Online ───…─── stats ─".
func (model Model) renderHeader() string {
	separatorStyle := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	statsStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	sep := separatorStyle.Render("───")

	badgeText, badgeColor := "○ API …", model.theme.FaintText
	if model.health.Checked {
		if model.health.Err == nil {
			badgeText, badgeColor = "● API Online", model.theme.OnlineColor
		} else {
			badgeText, badgeColor = "● API Offline", model.theme.OfflineColor
		}
	}
	badge := lipgloss.NewStyle().Foreground(badgeColor).Render(badgeText)

	left := sep + " " + titleStyle.Render("Clogs") + " " + sep + " " + badge + " "
	leftWidth := 3 + 1 + len("Clogs") + 1 + 3 + 1 + ansi.StringWidth(badgeText) + 1

	statsText := fmt.Sprintf("%d containers  window %s  %s",
		len(model.subjects), formatWindow(model.board.Options().Lookback), model.freshness())
	right := " " + statsStyle.Render(statsText) + " " + separatorStyle.Render("─")
	rightWidth := 1 + ansi.StringWidth(statsText) + 2

	fill := max(model.width-leftWidth-rightWidth, 1)
	return left + separatorStyle.Render(strings.Repeat("─", fill)) + right
}

// freshness describes the age of the newest history snapshot.
func (model Model) freshness() string {
	if model.lastData.IsZero() {
		return "waiting for data"
	}
	return "updated " + formatAge(model.clock.Now().Sub(model.lastData))
}

func (model Model) labelWidth() int {
	return max(min(maxLabelWidth, model.width/3), minLabelWidth)
}

// barWidth is what remains of a row after the cursor marker, label,
// uptime column, a gap, and the scrollbar.
func (model Model) barWidth() int {
	return max(model.width-2-model.labelWidth()-uptimeColumnWidth-1-1, 0)
}

func (model Model) renderList() string {
	visible := model.visibleHeight()
	end := min(model.scrollOffset+visible, len(model.rows))

	lines := make([]string, 0, visible)
	for index := model.scrollOffset; index < end; index++ {
		lines = append(lines, model.renderRow(model.rows[index], index == model.cursor))
	}
	if !model.inventoryLoaded && len(lines) < visible {
		pending := "loading containers…"
		if model.inventoryErr != nil {
			pending = "containers unavailable: " + model.inventoryErr.Error()
		}
		lines = append(lines, "  "+model.spinner.View()+" "+
			lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(pending))
	}
	rowWidth := max(model.width-1, 0)
	for index := range lines {
		lines[index] = padRight(ansi.Truncate(lines[index], rowWidth, ""), rowWidth)
	}
	for len(lines) < visible {
		lines = append(lines, strings.Repeat(" ", rowWidth))
	}

	scrollbar := tui.RenderScrollbar(model.theme, visible, len(model.rows), visible, model.scrollOffset)
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), scrollbar)
}

func (model Model) renderRow(row listRow, selected bool) string {
	marker := "  "
	if selected {
		marker = lipgloss.NewStyle().Foreground(model.theme.AccentColor).Bold(true).Render("▸ ")
	}

	labelWidth := model.labelWidth()
	if row.Kind == rowGroupHeader {
		return marker + model.renderGroupHeader(row.Group, labelWidth+uptimeColumnWidth+1+model.barWidth(), selected)
	}

	label := model.renderLabel(row, labelWidth, selected)
	uptime := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Width(uptimeColumnWidth).
		Align(lipgloss.Right).
		Render(model.uptimeText(row))
	return marker + padRight(label, labelWidth) + uptime + " " + model.renderBar(row.SubjectID)
}

func (model Model) renderGroupHeader(group *containerGroup, width int, selected bool) string {
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	if selected {
		nameStyle = nameStyle.Foreground(model.theme.SelectedForeground).Background(model.theme.SelectedBackground)
	}
	text := nameStyle.Render(group.Name)
	if group.ServiceType != "" {
		badgeStyle := lipgloss.NewStyle().Foreground(model.theme.ServiceTypeColor(string(group.ServiceType)))
		text += " " + badgeStyle.Render("["+string(group.ServiceType)+"]")
	}
	text += lipgloss.NewStyle().Foreground(model.theme.FaintText).
		Render(fmt.Sprintf(" %d", len(group.Containers)))
	return ansi.Truncate(text, width, "…")
}

// renderLabel draws the symbol and name. A container whose status just
// changed glows, fading back to the normal text color.
func (model Model) renderLabel(row listRow, width int, selected bool) string {
	nameStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	var prefix, name string
	if row.Kind == rowFleet {
		prefix = lipgloss.NewStyle().Foreground(model.theme.AccentColor).Render(fleetSymbol) + " "
		name = "all containers"
		nameStyle = nameStyle.Bold(true)
	} else {
		symbolStyle := lipgloss.NewStyle().Foreground(model.theme.StateColor(row.Container.Status))
		prefix = "  " + symbolStyle.Render(tui.StatusSymbol(row.Container.Status)) + " "
		name = row.Container.Name
		heat := model.heat.Heat(row.SubjectID, model.clock.Now())
		nameStyle = nameStyle.Foreground(tui.BlendHeat(model.theme.NormalText, model.theme.HotAccentChange, heat))
	}
	if selected {
		nameStyle = nameStyle.Foreground(model.theme.SelectedForeground).Background(model.theme.SelectedBackground)
	}

	nameWidth := max(width-ansi.StringWidth(prefix)-1, 1)
	name = ansi.Truncate(name, nameWidth, "…")
	highlight := nameStyle.Background(model.theme.SearchHighlightBackground)
	return prefix + renderHighlighted(name, row.Positions, nameStyle, highlight)
}

// uptimeText is the cumulative running time in hours. The fleet row
// sums the listed containers.
func (model Model) uptimeText(row listRow) string {
	if model.uptime == nil {
		return "-"
	}
	if row.Kind == rowFleet {
		total := 0.0
		for _, group := range model.groups {
			for _, container := range group.Containers {
				total += model.uptime[container.Name]
			}
		}
		return formatHours(total)
	}
	seconds, ok := model.uptime[row.Container.Name]
	if !ok {
		return "-"
	}
	return formatHours(seconds)
}

func (model Model) renderBar(subjectID string) string {
	width := model.barWidth()
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	if err := model.seriesErrors[subjectID]; err != nil {
		return lipgloss.NewStyle().Foreground(model.theme.OfflineColor).
			Render(ansi.Truncate("invalid history: "+err.Error(), width, "…"))
	}
	if _, loaded := model.board.Loaded(subjectID); !loaded {
		text := "loading…"
		if err := model.fetchErrors[subjectID]; err != nil {
			text = "unavailable: " + err.Error()
		}
		return model.spinner.View() + " " + faint.Render(ansi.Truncate(text, max(width-2, 0), "…"))
	}
	if model.now.IsZero() {
		return model.spinner.View() + " " + faint.Render(ansi.Truncate("waiting for the clock…", max(width-2, 0), "…"))
	}
	series := model.series[subjectID]
	if series.Empty() {
		return faint.Render(ansi.Truncate("no history in window", width, "…"))
	}
	return tui.RenderHeartbeat(model.theme, series, width, model.selectedBucket(subjectID))
}

// renderLegend lists the channels of the selected row, or of the fleet
// when a group header is selected.
func (model Model) renderLegend() string {
	subjectID := timeline.FleetSubject
	if row, ok := model.selectedRow(); ok && row.Kind != rowGroupHeader {
		subjectID = row.SubjectID
	}
	legend := tui.RenderLegend(model.theme, model.series[subjectID].Channels)
	return ansi.Truncate(" "+legend, model.width, "…")
}

// renderStatus shows, in order of precedence: a recent log record, the
// inspected bucket, or details of the selected row.
func (model Model) renderStatus() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	if model.statusRecord != nil {
		style := faint
		switch {
		case model.statusRecord.Level >= slog.LevelError:
			style = lipgloss.NewStyle().Foreground(model.theme.OfflineColor)
		case model.statusRecord.Level >= slog.LevelWarn:
			style = lipgloss.NewStyle().Foreground(model.theme.AccentColor)
		}
		return style.Render(ansi.Truncate(" "+model.statusRecord.Summary, model.width, "…"))
	}

	row, ok := model.selectedRow()
	if !ok {
		return ""
	}
	if row.Kind == rowGroupHeader {
		kind := "service"
		if row.Group.Orphans {
			kind = "containers outside any service"
		} else if row.Group.ServiceType != "" {
			kind = string(row.Group.ServiceType) + " service"
		}
		return faint.Render(ansi.Truncate(fmt.Sprintf(" %s: %d %s", row.Group.Name, len(row.Group.Containers), kind), model.width, "…"))
	}

	name := model.subjectName(row.SubjectID)
	if index := model.selectedBucket(row.SubjectID); index >= 0 {
		series := model.series[row.SubjectID]
		bucketRow := series.Rows[index]
		state := tui.RowState(series, bucketRow)
		swatch := lipgloss.NewStyle().Foreground(model.theme.StateColor(state)).Render("■")
		detail := fmt.Sprintf(" %s  %s %s  %s", name, swatch, state, formatBucket(bucketRow.Bucket))
		return ansi.Truncate(detail, model.width, "…")
	}
	if err := model.fetchErrors[row.SubjectID]; err != nil {
		return lipgloss.NewStyle().Foreground(model.theme.AccentColor).
			Render(ansi.Truncate(" "+name+": last fetch failed: "+err.Error(), model.width, "…"))
	}
	if row.Kind == rowFleet {
		return faint.Render(" " + model.fleetSummary())
	}
	return faint.Render(ansi.Truncate(" "+containerSummary(row.Container), model.width, "…"))
}

func (model Model) fleetSummary() string {
	counts := make(map[string]int)
	total := 0
	for _, group := range model.groups {
		for _, container := range group.Containers {
			counts[container.Status]++
			total++
		}
	}
	summary := fmt.Sprintf("%d containers", total)
	for _, status := range []string{"running", "restarting", "paused", "exited", "dead"} {
		if counts[status] > 0 {
			summary += fmt.Sprintf("  %d %s", counts[status], status)
		}
	}
	return summary
}

func containerSummary(container backend.Container) string {
	parts := []string{container.Name, tui.StatusLabel(container.Status)}
	if container.Image != "" {
		parts = append(parts, container.Image)
	}
	if container.ID != nil && *container.ID != "" {
		parts = append(parts, ansi.Truncate(*container.ID, 12, ""))
	}
	return strings.Join(parts, "  ")
}

func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	focusIndicator := "LIST"
	switch model.focusRegion {
	case FocusFilter:
		focusIndicator = "FILTER"
	case FocusDropdown:
		focusIndicator = "SELECT"
	case FocusLogs:
		focusIndicator = "LOGS"
	}

	help := fmt.Sprintf(" [%s] q quit  ↑↓ select  ←→ inspect  / filter  w window  Enter logs  r refresh",
		focusIndicator)
	if len(model.rows) > 0 {
		help += fmt.Sprintf("  %d/%d", model.cursor+1, len(model.rows))
	}
	return style.Render(ansi.Truncate(help, model.width, "…"))
}

// renderHighlighted styles the runes at positions with highlight and
// the rest with base, grouping runs so each style change is emitted
// once.
func renderHighlighted(text string, positions []int, base, highlight lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}
	marked := make(map[int]bool, len(positions))
	for _, position := range positions {
		marked[position] = true
	}

	var builder strings.Builder
	runes := []rune(text)
	start := 0
	for index := 1; index <= len(runes); index++ {
		if index < len(runes) && marked[index] == marked[start] {
			continue
		}
		style := base
		if marked[start] {
			style = highlight
		}
		builder.WriteString(style.Render(string(runes[start:index])))
		start = index
	}
	return builder.String()
}

func padRight(text string, width int) string {
	return text + strings.Repeat(" ", max(width-ansi.StringWidth(text), 0))
}

func formatHours(seconds float64) string {
	return fmt.Sprintf("%.1fh", seconds/3600)
}

func formatBucket(bucket timeline.Bucket) string {
	return fmt.Sprintf("%s → %s  %s",
		bucket.Start.Local().Format("15:04:05"),
		bucket.End.Local().Format("15:04:05"),
		bucket.Duration())
}

// formatWindow renders a lookback compactly: 15m, 1h, 24h.
func formatWindow(window time.Duration) string {
	switch {
	case window%time.Hour == 0:
		return fmt.Sprintf("%dh", window/time.Hour)
	case window%time.Minute == 0:
		return fmt.Sprintf("%dm", window/time.Minute)
	}
	return window.String()
}

func formatAge(age time.Duration) string {
	age = max(age, 0)
	switch {
	case age < time.Minute:
		return fmt.Sprintf("%ds ago", int(age/time.Second))
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age/time.Minute))
	}
	return fmt.Sprintf("%dh ago", int(age/time.Hour))
}
