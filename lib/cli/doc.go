// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the pieces shared by the Clogs command binaries:
// categorized command errors with their exit codes, and the
// terminal-aware structured logger.
package cli
