// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import "errors"

var (
	// ErrInvalidBucketWidth is returned when the bucket width is zero
	// or negative.
	ErrInvalidBucketWidth = errors.New("bucket width must be positive")

	// ErrInvalidLookback is returned when the lookback window is zero
	// or negative.
	ErrInvalidLookback = errors.New("lookback must be positive")

	// ErrInvalidTickInterval is returned when the time source cadence
	// is zero or negative.
	ErrInvalidTickInterval = errors.New("tick interval must be positive")

	// ErrMalformedInterval is returned for an interval that ends before
	// it starts.
	ErrMalformedInterval = errors.New("malformed interval")

	// ErrIntervalTooLong is returned for an interval whose span does not
	// fit in a time.Duration or would need more than MaxBuckets buckets.
	ErrIntervalTooLong = errors.New("interval too long")
)
