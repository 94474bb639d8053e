// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package export renders the uptime series of every subject once and
// writes them as text heartbeats, JSON, or CBOR. It backs the
// dashboard's --once mode, where the same pipeline the interactive
// dashboard runs on every tick is run a single time at the current
// wall-clock time.
package export
