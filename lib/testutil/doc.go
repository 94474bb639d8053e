// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern so tests that wait on goroutines (the timeline time source,
// background fetches) never hang forever and never call time.After
// themselves. They are the only place in the test suite where a real
// wall-clock timeout is used.
//
// Helpers call t.Fatalf on failure.
package testutil
