// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/clogs-dev/clogs/lib/backend"
	"github.com/clogs-dev/clogs/lib/tui"
)

// FilterModel narrows the container list with fzf-style fuzzy matching
// across a container's name, image, service, and status. The fleet row
// is never filtered out.
type FilterModel struct {
	// Input is the current query text.
	Input string

	// Active is true while the filter input has keyboard focus.
	Active bool

	slab *util.Slab
}

// containerMatch is the outcome of matching one container. Positions
// index into the container name only; the other fields contribute to
// the score but are not highlighted.
type containerMatch struct {
	Score     int
	Positions []int
}

// Match scores a container of service against the query. An empty
// query matches everything with a zero score.
func (filter *FilterModel) Match(container backend.Container, service string) (containerMatch, bool) {
	if filter.Input == "" {
		return containerMatch{}, true
	}
	if filter.slab == nil {
		filter.slab = tui.NewSlab()
	}
	pattern := []rune(filter.Input)

	name := tui.FuzzyMatch(container.Name, pattern, filter.slab)
	best := containerMatch{Score: name.Score, Positions: name.Positions}
	for _, field := range []string{container.Image, service, container.Status} {
		if field == "" {
			continue
		}
		if result := tui.FuzzyMatch(field, pattern, filter.slab); result.Score > best.Score {
			best.Score = result.Score
		}
	}
	return best, best.Score > 0
}

// HandleRune appends a typed character to the query.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character. Returns false if the
// query was already empty.
func (filter *FilterModel) HandleBackspace() bool {
	if filter.Input == "" {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the query and releases focus.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// Visible reports whether the filter bar takes a line.
func (filter *FilterModel) Visible() bool {
	return filter.Active || filter.Input != ""
}

// View renders the filter bar: the input with a cursor while active,
// a dim reminder of the query while inactive, nothing when empty.
func (filter *FilterModel) View(theme tui.Theme, width int) string {
	if !filter.Visible() {
		return ""
	}
	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return lipgloss.NewStyle().
			Foreground(theme.NormalText).
			Width(width).
			Render(" / " + filter.Input + cursor)
	}
	return lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width).
		Render(" filter: " + filter.Input)
}
