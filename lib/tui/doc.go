// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal building blocks shared by the
// Clogs dashboard and the one-shot text renderer: the color theme and
// container state palette, status symbols, fzf-backed fuzzy matching,
// scrollbars, dropdown overlays with ANSI-aware splicing, and the
// change-highlight animation tracker.
//
// Nothing here knows about bubbletea models; the dashboard owns its
// layout and state and calls into this package for rendering.
package tui
