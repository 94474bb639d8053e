// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"fmt"
	"time"
)

// MaxBuckets caps the buckets a single interval may be cut into. An
// interval that would need more is rejected with ErrIntervalTooLong.
const MaxBuckets = 1 << 21

// Bucket is one fixed-width cell of the timeline. End-Start never
// exceeds the bucket width; only the last bucket cut from an interval
// may be shorter.
type Bucket struct {
	Start time.Time
	End   time.Time
	State string
}

// Duration returns End-Start.
func (bucket Bucket) Duration() time.Duration {
	return bucket.End.Sub(bucket.Start)
}

// Chunk splits interval into consecutive buckets of width covering
// [Start, effective end), where the effective end of an open interval
// is now. The result has ceil(span/width) buckets and the last one is
// clipped to the effective end.
//
// An open interval whose effective end is not after its start yields
// no buckets. That covers the zero "now" a [TimeSource] reports before
// its first tick, and a local clock running behind the backend's.
func Chunk(interval Interval, width time.Duration, now time.Time) ([]Bucket, error) {
	end, count, err := chunkBounds(interval, width, now)
	if err != nil || count == 0 {
		return nil, err
	}
	if count > MaxBuckets {
		return nil, tooManyBuckets(interval, count, width)
	}
	return cut(interval, width, end, 0, int(count)), nil
}

// ChunkWindow returns what FilterWindow(Chunk(interval, width, now),
// lookback, now) returns, but only cuts the buckets ending at or after
// now-lookback. Its cost is bounded by lookback/width, not by the age
// of the interval.
func ChunkWindow(interval Interval, width, lookback time.Duration, now time.Time) ([]Bucket, error) {
	if lookback <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidLookback, lookback)
	}
	end, count, err := chunkBounds(interval, width, now)
	if err != nil || count == 0 {
		return nil, err
	}

	horizon := now.Add(-lookback)
	if end.Before(horizon) {
		return nil, nil
	}
	// Bucket i ends at Start+(i+1)*width (or at end for the last), so
	// the first kept bucket is ceil((horizon-Start)/width)-1.
	var first int64
	if horizon.After(interval.Start) {
		first = int64((horizon.Sub(interval.Start) - 1) / width)
	}
	if count-first > MaxBuckets {
		return nil, tooManyBuckets(interval, count-first, width)
	}
	return cut(interval, width, end, int(first), int(count)), nil
}

// chunkBounds validates interval and width and returns the effective
// end and the total bucket count. A span too long for time.Duration is
// rejected rather than clamped.
func chunkBounds(interval Interval, width time.Duration, now time.Time) (time.Time, int64, error) {
	if width <= 0 {
		return time.Time{}, 0, fmt.Errorf("%w: got %v", ErrInvalidBucketWidth, width)
	}
	if err := interval.Validate(); err != nil {
		return time.Time{}, 0, err
	}

	end := interval.EffectiveEnd(now)
	if !end.After(interval.Start) {
		return end, 0, nil
	}
	span := end.Sub(interval.Start)
	if !interval.Start.Add(span).Equal(end) {
		return time.Time{}, 0, fmt.Errorf("%w: subject %q state %q starts at %s, more than %v before its end",
			ErrIntervalTooLong, interval.SubjectID, interval.State,
			interval.Start.UTC().Format(time.RFC3339), span)
	}

	count := int64(span / width)
	if span%width != 0 {
		count++
	}
	return end, count, nil
}

func tooManyBuckets(interval Interval, count int64, width time.Duration) error {
	return fmt.Errorf("%w: subject %q state %q starting at %s needs %d buckets of %v, limit %d",
		ErrIntervalTooLong, interval.SubjectID, interval.State,
		interval.Start.UTC().Format(time.RFC3339), count, width, MaxBuckets)
}

// cut builds buckets first..count-1 of interval.
func cut(interval Interval, width time.Duration, end time.Time, first, count int) []Bucket {
	buckets := make([]Bucket, 0, count-first)
	for index := first; index < count; index++ {
		bucketStart := interval.Start.Add(time.Duration(index) * width)
		bucketEnd := bucketStart.Add(width)
		if bucketEnd.After(end) {
			bucketEnd = end
		}
		buckets = append(buckets, Bucket{Start: bucketStart, End: bucketEnd, State: interval.State})
	}
	return buckets
}

// ChunkAll chunks every interval and concatenates the results in
// input order. The first malformed interval aborts the whole call.
func ChunkAll(intervals []Interval, width time.Duration, now time.Time) ([]Bucket, error) {
	var buckets []Bucket
	for _, interval := range intervals {
		chunked, err := Chunk(interval, width, now)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, chunked...)
	}
	return buckets, nil
}
