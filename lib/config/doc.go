// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration of the Clogs dashboard.
//
// Configuration comes from a single file named either by the
// CLOGS_CONFIG environment variable ([Load]) or by a --config flag
// ([LoadFile]). There is no search path and no per-field environment
// override; the only expansion performed is ${VAR} and ${VAR:-default}
// in api.base_url and log.output, so one file can follow a deployment
// between hosts.
//
// The file may carry development, staging and production sections that
// override the base values when [Config].Environment matches.
// Production without an explicit section logs at warn.
//
// Key exports:
//
//   - [Config] with API, Polling, Timeline, Theme and Log sections
//   - [Default] for the built-in defaults (30s buckets, 1h lookback,
//     5s clock tick and data refresh)
//   - [Load] and [LoadFile]
//
// This package depends on no other Clogs packages.
package config
