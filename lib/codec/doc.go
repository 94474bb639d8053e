// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration used for binary series
// exports (clogs-dashboard --once --format cbor).
//
// JSON remains the format of the backend API and of human-facing
// output; CBOR is offered for consumers that store or forward series
// snapshots compactly. Encoding uses Core Deterministic Encoding
// (RFC 8949 §4.2) so the same series always produces the same bytes.
//
// Types exported in both formats carry `json` tags only:
// fxamacker/cbor falls back to `json` tags when no `cbor` tag is
// present, so one tag set names fields in both encodings.
//
//	data, err := codec.Marshal(document)
//	encoder := codec.NewEncoder(os.Stdout)
package codec
