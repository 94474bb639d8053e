// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestRenderScenario(t *testing.T) {
	series, err := Render([]Interval{
		closed(0, 40, "running"),
		closed(40, 70, "exited"),
	}, at(70), Options{BucketWidth: 30 * time.Second, Lookback: 30 * time.Second}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(series.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(series.Rows))
	}
	if series.Rows[0].Bucket.State != "running" || series.Rows[1].Bucket.State != "exited" {
		t.Fatalf("row states = %q, %q", series.Rows[0].Bucket.State, series.Rows[1].Bucket.State)
	}
	for _, row := range series.Rows {
		if row.Sum() != 1 {
			t.Errorf("row %d sums to %d", row.Index, row.Sum())
		}
	}
}

func TestRenderRejectsInvalidOptions(t *testing.T) {
	intervals := []Interval{closed(0, 40, "running")}
	if _, err := Render(intervals, at(70), Options{Lookback: time.Hour}, nil); !errors.Is(err, ErrInvalidBucketWidth) {
		t.Errorf("missing width: err = %v", err)
	}
	if _, err := Render(intervals, at(70), Options{BucketWidth: time.Second, Lookback: -time.Second}, nil); !errors.Is(err, ErrInvalidLookback) {
		t.Errorf("negative lookback: err = %v", err)
	}
}

func TestRenderEmptyHistory(t *testing.T) {
	series, err := Render(nil, at(70), DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !series.Empty() {
		t.Fatalf("empty history rendered %d rows", len(series.Rows))
	}
}

func TestDefaultOptionsAreValid(t *testing.T) {
	options := DefaultOptions()
	if err := options.Validate(); err != nil {
		t.Fatalf("DefaultOptions invalid: %v", err)
	}
	if options.BucketWidth != 30*time.Second || options.Lookback != time.Hour {
		t.Fatalf("DefaultOptions = %+v", options)
	}
}

func TestRenderLongHistoryMatchesChunkThenFilter(t *testing.T) {
	month := 30 * 24 * 3600
	intervals := []Interval{
		closed(-month, -month/2, "running"),
		closed(-month/2, -1800, "exited"),
		closed(-1800, -95, "running"),
		open(-95, "restarting"),
	}
	options := DefaultOptions()

	got, err := Render(intervals, at(0), options, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	all, err := ChunkAll(intervals, options.BucketWidth, at(0))
	if err != nil {
		t.Fatalf("ChunkAll: %v", err)
	}
	want := BuildSeries(FilterWindow(all, options.Lookback, at(0)), nil)

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Render differs from chunk-then-filter:\n got %d rows %v\nwant %d rows %v",
			len(got.Rows), got.Channels, len(want.Rows), want.Channels)
	}
	if limit := int(options.Lookback/options.BucketWidth) + len(intervals); len(got.Rows) > limit {
		t.Errorf("rendered %d rows, more than %d", len(got.Rows), limit)
	}
}

func TestRenderReportsOverlongInterval(t *testing.T) {
	intervals := []Interval{{SubjectID: "c1", Start: time.Unix(-1_000_000_000_000, 0), State: "running"}}
	_, err := Render(intervals, time.Unix(1_700_000_000, 0), DefaultOptions(), nil)
	if !errors.Is(err, ErrIntervalTooLong) {
		t.Fatalf("err = %v, want ErrIntervalTooLong", err)
	}
}

func TestOptionsRejectLookbackBeyondBucketLimit(t *testing.T) {
	options := Options{BucketWidth: time.Nanosecond, Lookback: time.Second}
	if err := options.Validate(); !errors.Is(err, ErrInvalidLookback) {
		t.Fatalf("err = %v, want ErrInvalidLookback", err)
	}
}
