// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"sort"
	"sync"
	"time"
)

// Board keeps the latest interval snapshot of every subject on the
// dashboard and renders their series on demand.
//
// Snapshots are replaced wholesale on every fetch and treated as
// read-only afterwards. The only thing that outlives a snapshot is the
// subject's [Channels], so a state that scrolls out of the window
// keeps its channel (and color) if it comes back.
//
// Subjects are independent: a malformed snapshot makes RenderSeries
// fail for that subject only.
type Board struct {
	options Options

	mu       sync.RWMutex
	subjects map[string]*subjectState
}

type subjectState struct {
	intervals []Interval
	fetchedAt time.Time

	// channelsMu serializes renders of one subject, since rendering
	// appends to channels.
	channelsMu sync.Mutex
	channels   Channels
}

// NewBoard returns an empty Board rendering with options.
func NewBoard(options Options) (*Board, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return &Board{options: options, subjects: make(map[string]*subjectState)}, nil
}

// Options returns the rendering options.
func (board *Board) Options() Options {
	board.mu.RLock()
	defer board.mu.RUnlock()
	return board.options
}

// SetOptions changes the rendering options, for example to widen the
// lookback. Channel assignments are kept.
func (board *Board) SetOptions(options Options) error {
	if err := options.Validate(); err != nil {
		return err
	}
	board.mu.Lock()
	defer board.mu.Unlock()
	board.options = options
	return nil
}

// Replace installs intervals as the complete history of subjectID,
// discarding the previous snapshot. The slice must not be modified
// afterwards.
func (board *Board) Replace(subjectID string, intervals []Interval, fetchedAt time.Time) {
	board.mu.Lock()
	defer board.mu.Unlock()

	state, ok := board.subjects[subjectID]
	if !ok {
		state = &subjectState{}
		board.subjects[subjectID] = state
	}
	state.intervals = intervals
	state.fetchedAt = fetchedAt
}

// Forget drops a subject and its channel assignment.
func (board *Board) Forget(subjectID string) {
	board.mu.Lock()
	defer board.mu.Unlock()
	delete(board.subjects, subjectID)
}

// Loaded reports whether subjectID has received at least one snapshot,
// and when the latest one was fetched.
func (board *Board) Loaded(subjectID string) (time.Time, bool) {
	board.mu.RLock()
	defer board.mu.RUnlock()
	state, ok := board.subjects[subjectID]
	if !ok {
		return time.Time{}, false
	}
	return state.fetchedAt, true
}

// Subjects returns the IDs of all loaded subjects, sorted.
func (board *Board) Subjects() []string {
	board.mu.RLock()
	defer board.mu.RUnlock()
	subjects := make([]string, 0, len(board.subjects))
	for subjectID := range board.subjects {
		subjects = append(subjects, subjectID)
	}
	sort.Strings(subjects)
	return subjects
}

// RenderSeries recomputes the series of subjectID at now from its
// latest snapshot. An unknown subject or an empty snapshot renders as
// an empty series.
func (board *Board) RenderSeries(subjectID string, now time.Time) (Series, error) {
	board.mu.RLock()
	state, ok := board.subjects[subjectID]
	var intervals []Interval
	if ok {
		intervals = state.intervals
	}
	options := board.options
	board.mu.RUnlock()
	if !ok {
		return Series{}, nil
	}

	state.channelsMu.Lock()
	defer state.channelsMu.Unlock()
	return Render(intervals, now, options, &state.channels)
}
