// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"context"
	"fmt"
	"time"
)

// FleetSubject is the subject ID of the unscoped query covering every
// container.
const FleetSubject = ""

// Interval is a recorded span during which a subject held one state.
// Intervals are produced by a [Provider] and never modified here.
type Interval struct {
	SubjectID string
	Start     time.Time

	// End is the zero time while the interval is still open.
	End time.Time

	State string
}

// Open reports whether the interval has no recorded end.
func (interval Interval) Open() bool {
	return interval.End.IsZero()
}

// EffectiveEnd returns End, or now for an open interval.
func (interval Interval) EffectiveEnd(now time.Time) time.Time {
	if interval.Open() {
		return now
	}
	return interval.End
}

// Validate rejects a closed interval whose end precedes its start.
func (interval Interval) Validate() error {
	if !interval.Open() && interval.End.Before(interval.Start) {
		return fmt.Errorf("%w: subject %q state %q ends at %s before it starts at %s",
			ErrMalformedInterval, interval.SubjectID, interval.State,
			interval.End.UTC().Format(time.RFC3339), interval.Start.UTC().Format(time.RFC3339))
	}
	return nil
}

// Provider supplies the raw interval history of a subject. Each call
// returns the complete, chronologically ordered history; callers
// replace what they held before rather than merging. subjectID
// FleetSubject requests every container.
type Provider interface {
	FetchIntervals(ctx context.Context, subjectID string) ([]Interval, error)
}
