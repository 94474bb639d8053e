// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clogs-dev/clogs/lib/clock"
)

// TimeSource is the "now" the pipeline evaluates open intervals and
// the lookback window against. It only moves when it ticks, on its own
// cadence, independent of how often interval data is refetched. Each
// tick is the signal to recompute every visible subject without
// touching the network.
//
// Now is the zero time until the first tick. Open intervals then
// render as empty, which is the expected state right after startup.
type TimeSource struct {
	clock    clock.Clock
	interval time.Duration

	mu  sync.Mutex
	now time.Time

	ticks chan time.Time
}

// NewTimeSource returns a TimeSource advancing from clk every
// interval once Run is called.
func NewTimeSource(clk clock.Clock, interval time.Duration) (*TimeSource, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTickInterval, interval)
	}
	return &TimeSource{
		clock:    clk,
		interval: interval,
		ticks:    make(chan time.Time, 1),
	}, nil
}

// Interval returns the tick cadence.
func (source *TimeSource) Interval() time.Duration {
	return source.interval
}

// Now returns the most recently advanced time.
func (source *TimeSource) Now() time.Time {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.now
}

// Advance moves now to t if t is later, and returns the resulting
// now. Earlier values are ignored so now never goes backwards, even if
// the wall clock is stepped.
func (source *TimeSource) Advance(t time.Time) time.Time {
	source.mu.Lock()
	defer source.mu.Unlock()
	if t.After(source.now) {
		source.now = t
	}
	return source.now
}

// Ticks delivers the new now after every advance made by Run. The
// channel holds one value; a slow reader only ever sees the latest
// time, never a backlog.
func (source *TimeSource) Ticks() <-chan time.Time {
	return source.ticks
}

// Run advances now from the clock every interval until ctx is done.
// It returns ctx.Err().
func (source *TimeSource) Run(ctx context.Context) error {
	ticker := source.clock.NewTicker(source.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			source.publish(source.Advance(source.clock.Now()))
		}
	}
}

// publish replaces any unread tick with now.
func (source *TimeSource) publish(now time.Time) {
	for {
		select {
		case source.ticks <- now:
			return
		default:
		}
		select {
		case <-source.ticks:
		default:
		}
	}
}
