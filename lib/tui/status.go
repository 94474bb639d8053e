// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// StatusSymbol returns the one-column symbol shown before a container
// name for its current status.
func StatusSymbol(status string) string {
	switch status {
	case "running":
		return "▶"
	case "paused":
		return "‖"
	case "exited":
		return "■"
	case "dead":
		return "✝"
	case "removing":
		return "✗"
	case "unhealthy":
		return "♥"
	case "restarting":
		return "↻"
	case "created":
		return "□"
	default:
		return "?"
	}
}

// StatusLabel capitalizes a status for display: "running" becomes
// "Running". An empty status is "Unknown".
func StatusLabel(status string) string {
	if status == "" {
		return "Unknown"
	}
	first, size := utf8.DecodeRuneInString(status)
	return string(unicode.ToUpper(first)) + strings.ToLower(status[size:])
}
