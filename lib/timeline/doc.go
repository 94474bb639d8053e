// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package timeline turns a container's state history into the
// fixed-resolution "heartbeat" rendered by the dashboard.
//
// Agents report state changes as intervals ("running from t0 to t1",
// "exited from t1 until now"). The dashboard draws one uniformly sized
// cell per bucket, so every recomputation runs the same pipeline:
//
//  1. [Chunk] splits each interval into buckets of at most the
//     configured width, clipping the last bucket at the interval's
//     effective end (its recorded end, or "now" while still open).
//  2. [FilterWindow] drops buckets that ended before now-lookback, so
//     the number of cells is bounded no matter how old the container is.
//  3. [BuildSeries] assigns one channel per state label and emits a
//     one-hot row per bucket.
//
// The pipeline is pure. It is re-run from scratch whenever new
// intervals arrive (see [Board.Replace]) or the [TimeSource] advances,
// and its output is discarded and regenerated rather than patched. The
// only state carried between runs is each subject's [Channels], which
// is append-only so colors stay attached to the same state labels.
package timeline
