// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Bucket inspection on the selected row.
	EarlierBucket key.Binding
	LaterBucket   key.Binding

	FilterActivate key.Binding
	FilterClear    key.Binding

	History key.Binding // Open the lookback dropdown.
	Logs    key.Binding // Open the log panel for the selected row.
	Refresh key.Binding // Fetch everything now.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// alongside arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	EarlierBucket: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "earlier"),
	),
	LaterBucket: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "later"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear"),
	),
	History: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "window"),
	),
	Logs: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "logs"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
