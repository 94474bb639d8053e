// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

// Channels is the ordered set of state labels a subject has shown.
// Labels are appended in first-seen order and never move or disappear,
// so a renderer that assigns colors or stack positions by channel
// index stays stable across recomputations even after the bucket that
// introduced a label scrolls out of the window.
//
// The zero value is an empty set ready to use. Channels is not safe
// for concurrent use; [Board] serializes access per subject.
type Channels struct {
	labels []string
	index  map[string]int
}

// Observe returns the channel index of state, appending it if new.
func (channels *Channels) Observe(state string) int {
	if position, ok := channels.index[state]; ok {
		return position
	}
	if channels.index == nil {
		channels.index = make(map[string]int)
	}
	position := len(channels.labels)
	channels.labels = append(channels.labels, state)
	channels.index[state] = position
	return position
}

// Index returns the channel index of state and whether it is known.
func (channels *Channels) Index(state string) (int, bool) {
	position, ok := channels.index[state]
	return position, ok
}

// Len returns the number of channels.
func (channels *Channels) Len() int {
	return len(channels.labels)
}

// Labels returns a copy of the channel labels in channel order.
func (channels *Channels) Labels() []string {
	labels := make([]string, len(channels.labels))
	copy(labels, channels.labels)
	return labels
}

// Row is the one-hot vector for one bucket. Values has one entry per
// channel of the owning [Series]; exactly one of them is 1.
type Row struct {
	// Index is the 0-based chronological position of the bucket.
	Index  int
	Bucket Bucket
	Values []uint8
}

// Sum returns the total of Values, which is 1 for every row produced
// by BuildSeries.
func (row Row) Sum() int {
	total := 0
	for _, value := range row.Values {
		total += int(value)
	}
	return total
}

// Channel returns the index of the row's hot channel, or -1.
func (row Row) Channel() int {
	for position, value := range row.Values {
		if value == 1 {
			return position
		}
	}
	return -1
}

// Series is the stacked timeline of one subject: the channel labels
// and one row per retained bucket, oldest first.
type Series struct {
	Channels []string
	Rows     []Row
}

// Empty reports whether the series has no rows.
func (series Series) Empty() bool {
	return len(series.Rows) == 0
}

// BuildSeries registers every bucket state in channels (first-seen
// order) and emits one one-hot row per bucket. A nil channels starts
// from an empty set, so the channel order is the first-seen order of
// buckets alone.
//
// Row widths equal the channel count after all buckets are observed,
// so every row of one Series has the same length.
func BuildSeries(buckets []Bucket, channels *Channels) Series {
	if channels == nil {
		channels = &Channels{}
	}
	positions := make([]int, len(buckets))
	for index, bucket := range buckets {
		positions[index] = channels.Observe(bucket.State)
	}

	width := channels.Len()
	rows := make([]Row, len(buckets))
	for index, bucket := range buckets {
		values := make([]uint8, width)
		values[positions[index]] = 1
		rows[index] = Row{Index: index, Bucket: bucket, Values: values}
	}
	return Series{Channels: channels.Labels(), Rows: rows}
}
