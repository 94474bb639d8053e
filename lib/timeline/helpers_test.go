// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"testing"
	"time"
)

// base anchors test timestamps; at(n) is n seconds after it.
var base = time.Unix(1_700_000_000, 0)

func at(seconds int) time.Time {
	return base.Add(time.Duration(seconds) * time.Second)
}

func closed(start, end int, state string) Interval {
	return Interval{SubjectID: "c1", Start: at(start), End: at(end), State: state}
}

func open(start int, state string) Interval {
	return Interval{SubjectID: "c1", Start: at(start), State: state}
}

// span renders a bucket as [start,end) seconds relative to base.
type span struct {
	start, end int
	state      string
}

func spansOf(buckets []Bucket) []span {
	spans := make([]span, len(buckets))
	for index, bucket := range buckets {
		spans[index] = span{
			start: int(bucket.Start.Sub(base) / time.Second),
			end:   int(bucket.End.Sub(base) / time.Second),
			state: bucket.State,
		}
	}
	return spans
}

func requireSpans(t *testing.T, buckets []Bucket, want []span) {
	t.Helper()
	got := spansOf(buckets)
	if len(got) != len(want) {
		t.Fatalf("got %d buckets %v, want %d %v", len(got), got, len(want), want)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Errorf("bucket %d = %+v, want %+v", index, got[index], want[index])
		}
	}
}
