// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for Clogs
// binaries.
//
// Three variables are injected at build time via -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//
// [Version] is set by hand for releases. When nothing is injected,
// as in development builds and tests, the defaults are "unknown" and
// "0.1.0-dev".
package version
