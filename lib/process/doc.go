// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds the shared entrypoint error handling of the
// Clogs binaries.
package process
