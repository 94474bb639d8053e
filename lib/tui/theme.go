// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"maps"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette of the Clogs terminal UIs. Chrome
// colors use ANSI 256-color codes; container state colors are hex
// values that lipgloss degrades to the terminal's profile.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentColor      lipgloss.Color

	// API health badge.
	OnlineColor  lipgloss.Color
	OfflineColor lipgloss.Color

	// Service type badges.
	ComposeColor lipgloss.Color
	SwarmColor   lipgloss.Color

	// Row glow after a status change, blended into NormalText.
	HotAccentChange lipgloss.Color

	// Filter match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Floating overlays (dropdowns, log panel).
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color

	// StateColors maps container states to heartbeat colors.
	StateColors map[string]lipgloss.Color

	// DefaultStateColor is used for states missing from StateColors.
	DefaultStateColor lipgloss.Color
}

// StateColor returns the heartbeat color for a container state.
func (theme Theme) StateColor(state string) lipgloss.Color {
	if color, ok := theme.StateColors[state]; ok {
		return color
	}
	return theme.DefaultStateColor
}

// ServiceTypeColor returns the badge color for a service type. Unknown
// types use FaintText.
func (theme Theme) ServiceTypeColor(serviceType string) lipgloss.Color {
	switch serviceType {
	case "compose":
		return theme.ComposeColor
	case "swarm":
		return theme.SwarmColor
	default:
		return theme.FaintText
	}
}

// WithStateColors returns a copy of theme with overrides merged over
// its state colors. An empty defaultColor keeps the current default.
func (theme Theme) WithStateColors(overrides map[string]string, defaultColor string) Theme {
	merged := make(map[string]lipgloss.Color, len(theme.StateColors)+len(overrides))
	maps.Copy(merged, theme.StateColors)
	for state, color := range overrides {
		merged[state] = lipgloss.Color(color)
	}
	theme.StateColors = merged
	if defaultColor != "" {
		theme.DefaultStateColor = lipgloss.Color(defaultColor)
	}
	return theme
}

// DefaultStateColors is the built-in container state palette.
var DefaultStateColors = map[string]lipgloss.Color{
	"running":    lipgloss.Color("#4ade80"), // green
	"exited":     lipgloss.Color("#f87171"), // red
	"paused":     lipgloss.Color("#fbbf24"), // amber
	"restarting": lipgloss.Color("#fb923c"), // orange
	"created":    lipgloss.Color("#60a5fa"), // blue
	"dead":       lipgloss.Color("#000000"),
	"removing":   lipgloss.Color("#a78bfa"), // violet
	"unknown":    lipgloss.Color("#9ca3af"), // gray
	"unhealthy":  lipgloss.Color("#ec4899"), // pink
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("#d0d0d0"), // ANSI 252 as hex so it blends
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentColor:      lipgloss.Color("220"),

	OnlineColor:  lipgloss.Color("114"),
	OfflineColor: lipgloss.Color("196"),

	ComposeColor: lipgloss.Color("75"),
	SwarmColor:   lipgloss.Color("141"),

	HotAccentChange: lipgloss.Color("#fbbf24"),

	SearchHighlightBackground: lipgloss.Color("58"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),

	StateColors:       DefaultStateColors,
	DefaultStateColor: lipgloss.Color("#8884d8"),
}
