// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// HeatDecayDuration is how long a row glows after its container
// changes status.
const HeatDecayDuration = 5 * time.Second

// HeatTickInterval is the re-render interval while any row is hot.
const HeatTickInterval = 100 * time.Millisecond

// HeatTracker records when items last changed so their rows can glow
// and fade. Heat is 1.0 at ignition and decays linearly to zero over
// HeatDecayDuration.
type HeatTracker struct {
	ignitions map[string]time.Time
}

// NewHeatTracker creates an empty tracker.
func NewHeatTracker() *HeatTracker {
	return &HeatTracker{ignitions: make(map[string]time.Time)}
}

// Ignite marks itemID as changed at now.
func (tracker *HeatTracker) Ignite(itemID string, now time.Time) {
	tracker.ignitions[itemID] = now
}

// Heat returns the current intensity of itemID in [0, 1].
func (tracker *HeatTracker) Heat(itemID string, now time.Time) float64 {
	ignition, exists := tracker.ignitions[itemID]
	if !exists {
		return 0
	}
	elapsed := now.Sub(ignition)
	if elapsed >= HeatDecayDuration || elapsed < 0 {
		return 0
	}
	return 1 - float64(elapsed)/float64(HeatDecayDuration)
}

// HasHot reports whether any item still glows, dropping those that
// have cooled.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for itemID, ignition := range tracker.ignitions {
		if now.Sub(ignition) < HeatDecayDuration {
			hot = true
			continue
		}
		delete(tracker.ignitions, itemID)
	}
	return hot
}

// BlendHeat mixes accent into base by heat. Colors that cannot be
// parsed as hex are returned unblended: accent while heat is above
// one half, base otherwise.
func BlendHeat(base, accent lipgloss.Color, heat float64) lipgloss.Color {
	if heat <= 0 {
		return base
	}
	if heat >= 1 {
		return accent
	}
	from, errFrom := colorful.Hex(string(base))
	to, errTo := colorful.Hex(string(accent))
	if errFrom != nil || errTo != nil {
		if heat > 0.5 {
			return accent
		}
		return base
	}
	return lipgloss.Color(from.BlendLab(to, heat).Clamped().Hex())
}
