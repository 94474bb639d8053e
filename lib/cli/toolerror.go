// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies command errors so that scripts wrapping a
// Clogs binary can tell bad input from an unreachable backend by exit
// code alone.
type ErrorCategory string

const (
	// CategoryValidation indicates invalid input: unknown flags,
	// unparseable values, a config file that fails validation.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist:
	// a missing fixture file, an unknown container.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryTransient indicates a temporary failure such as a
	// network error or a 5xx from the backend. Retrying may help.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected failure.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by command run functions.
// It wraps an inner error so errors.Is and errors.As still see the
// full chain.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Category returns the category of the outermost ToolError in err's
// chain, or CategoryInternal when there is none.
func Category(err error) ErrorCategory {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Category
	}
	return CategoryInternal
}

// ExitCode maps err to a process exit status. A nil error exits 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch Category(err) {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 3
	case CategoryTransient:
		return 4
	default:
		return 1
	}
}
