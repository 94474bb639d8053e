// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import "time"

// FilterWindow keeps the buckets whose End is at or after
// now-lookback, in their original order. Whole buckets are kept or
// dropped; an interval straddling the horizon contributes only its
// trailing buckets. The input slice is not modified.
func FilterWindow(buckets []Bucket, lookback time.Duration, now time.Time) []Bucket {
	horizon := now.Add(-lookback)
	retained := make([]Bucket, 0, len(buckets))
	for _, bucket := range buckets {
		if !bucket.End.Before(horizon) {
			retained = append(retained, bucket)
		}
	}
	return retained
}
