// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashboard is the interactive terminal dashboard for Clogs.
//
// The dashboard lists the fleet aggregate, every container grouped by
// the service that owns it, and orphan containers. Each row shows the
// container's status, its cumulative uptime, and a heartbeat bar
// rendered from its uptime timeline.
//
// Two independent triggers drive recomputation, both delivered as
// bubbletea messages so every recomputation runs on the Update loop:
//
//   - timeSourceTickMsg: the [timeline.TimeSource] advanced. Every
//     series is re-rendered from the intervals already held by the
//     [timeline.Board]; nothing is fetched.
//   - intervalsMsg: a fetch finished. The subject's snapshot is
//     replaced wholesale and its series re-rendered.
//
// Fetches run as tea.Cmds on their own goroutines and return immutable
// snapshots. The data and health polls reschedule themselves with
// tea.Tick at their configured cadences.
//
// A [TUILogHandler] routes warnings logged anywhere in the process
// into the status bar.
package dashboard
