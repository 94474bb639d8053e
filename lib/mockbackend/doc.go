// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package mockbackend serves the Clogs API from a deterministic
// container simulator, for developing and demoing the dashboard
// without agents.
//
// A [Simulator] owns a fixed set of containers, each cycling through a
// seeded schedule of states starting two hours before the simulator's
// origin, so a fresh dashboard immediately has a full hour of history.
// Everything the simulator reports is a pure function of the seed, the
// origin and the clock, so tests can drive it with a fake clock.
//
// [NewRouter] exposes the simulator under /api with gorilla/mux.
package mockbackend
