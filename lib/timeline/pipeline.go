// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"fmt"
	"time"
)

// Options configures the bucketing pipeline.
type Options struct {
	// BucketWidth is the span of one timeline cell.
	BucketWidth time.Duration

	// Lookback is how far before now the timeline extends.
	Lookback time.Duration
}

// DefaultOptions returns 30-second buckets over the last hour.
func DefaultOptions() Options {
	return Options{BucketWidth: 30 * time.Second, Lookback: time.Hour}
}

// Validate rejects non-positive widths and lookbacks, and a lookback
// holding more than MaxBuckets buckets.
func (options Options) Validate() error {
	if options.BucketWidth <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidBucketWidth, options.BucketWidth)
	}
	if options.Lookback <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidLookback, options.Lookback)
	}
	if options.Lookback/options.BucketWidth > MaxBuckets {
		return fmt.Errorf("%w: %v holds more than %d buckets of %v",
			ErrInvalidLookback, options.Lookback, MaxBuckets, options.BucketWidth)
	}
	return nil
}

// Render runs the full pipeline over intervals at now: chunk within
// the lookback window, build the one-hot series. The result equals
// BuildSeries(FilterWindow(ChunkAll(...))) but buckets before the
// window are never cut. channels may be nil. Any malformed interval
// fails the whole render; nothing is clamped.
func Render(intervals []Interval, now time.Time, options Options, channels *Channels) (Series, error) {
	if err := options.Validate(); err != nil {
		return Series{}, err
	}
	var retained []Bucket
	for _, interval := range intervals {
		buckets, err := ChunkWindow(interval, options.BucketWidth, options.Lookback, now)
		if err != nil {
			return Series{}, err
		}
		retained = append(retained, buckets...)
	}
	return BuildSeries(retained, channels), nil
}
