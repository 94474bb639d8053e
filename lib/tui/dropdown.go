// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text.
	Value string // Value reported on selection.
}

// DropdownOverlay is a floating menu anchored at a screen position.
// The owning model routes keys to it while it is open: up/down move,
// enter selects, escape dismisses.
type DropdownOverlay struct {
	Title   string
	Options []DropdownOption
	Cursor  int
	AnchorX int
	AnchorY int
}

// NewDropdown returns a dropdown with the cursor on the option whose
// value is current, or on the first option.
func NewDropdown(title string, options []DropdownOption, current string) *DropdownOverlay {
	dropdown := &DropdownOverlay{Title: title, Options: options}
	for index, option := range options {
		if option.Value == current {
			dropdown.Cursor = index
			break
		}
	}
	return dropdown
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Selected returns the highlighted option.
func (dropdown *DropdownOverlay) Selected() DropdownOption {
	return dropdown.Options[dropdown.Cursor]
}

// Width returns the rendered width in columns: the widest of the
// title and the marked labels, plus padding.
func (dropdown *DropdownOverlay) Width() int {
	widest := ansi.StringWidth(dropdown.Title)
	for _, option := range dropdown.Options {
		widest = max(widest, 2+ansi.StringWidth(option.Label))
	}
	return widest + 3
}

// Height returns the number of rendered lines.
func (dropdown *DropdownOverlay) Height() int {
	if dropdown.Title == "" {
		return len(dropdown.Options)
	}
	return len(dropdown.Options) + 1
}

// Render produces the dropdown lines for SpliceOverlay. Every line has
// the same visible width.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	innerWidth := dropdown.Width() - 2

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.OverlayForeground)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	titleStyle := backgroundStyle.Bold(true).Foreground(theme.HeaderForeground)

	var lines []string
	if dropdown.Title != "" {
		lines = append(lines, PadOverlayLine(titleStyle.Render(dropdown.Title), innerWidth, backgroundStyle))
	}
	for index, option := range dropdown.Options {
		style := backgroundStyle
		marker := " "
		if index == dropdown.Cursor {
			style = selectedStyle
			marker = ">"
		}
		content := marker + " " + option.Label
		content += strings.Repeat(" ", max(innerWidth-ansi.StringWidth(content), 0))
		lines = append(lines, style.Render(" "+content+" "))
	}
	return lines
}
