// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction.
//
// Anything in Clogs that reads the wall clock or waits on it takes a
// Clock instead of calling the time package directly:
//
//	source, err := timeline.NewTimeSource(clock.Real(), 5*time.Second)
//
// Tests use a FakeClock, which only moves when Advance is called:
//
//	fake := clock.Fake(time.Unix(1_700_000_000, 0))
//	go source.Run(ctx)
//	fake.WaitForTimers(1) // the ticker is registered
//	fake.Advance(5 * time.Second)
//
// WaitForTimers closes the race between a goroutine registering its
// ticker and the test advancing time past it.
package clock
