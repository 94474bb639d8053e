// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response reading for the Clogs
// backend client.
//
// Every JSON response body is read through ReadResponse or
// DecodeResponse, which refuse bodies larger than MaxResponseSize
// instead of allocating without bound. ErrorBody reads a short prefix
// of an error response for use in diagnostics.
package netutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxResponseSize bounds JSON response bodies: 32 MB. A full uptime
// history for a large fleet is a few megabytes.
const MaxResponseSize int64 = 32 << 20

// maxErrorBody bounds how much of an error response ends up in an
// error message.
const maxErrorBody = 4 << 10

// ErrResponseTooLarge is returned when a body exceeds MaxResponseSize.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// ReadResponse reads a response body of at most MaxResponseSize bytes.
func ReadResponse(body io.Reader) ([]byte, error) {
	return readLimited(body, MaxResponseSize)
}

func readLimited(body io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrResponseTooLarge, limit)
	}
	return data, nil
}

// DecodeResponse reads a bounded response body and JSON-decodes it
// into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// ErrorBody returns the first few kilobytes of an error response body.
// Read errors are ignored; a partial body is still useful in a message.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	return string(data)
}
