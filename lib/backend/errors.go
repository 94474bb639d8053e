// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a non-2xx response from the Clogs API.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Method and Path identify the failed request.
	Method string
	Path   string

	// Body is the start of the response body, trimmed.
	Body string

	// RequestID is the X-Request-ID sent with the request.
	RequestID string
}

func (err *APIError) Error() string {
	message := fmt.Sprintf("backend: %s %s: HTTP %d", err.Method, err.Path, err.StatusCode)
	if err.Body != "" {
		message += ": " + err.Body
	}
	return message
}

func newAPIError(method, path, requestID string, statusCode int, body string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Method:     method,
		Path:       path,
		Body:       strings.TrimSpace(body),
		RequestID:  requestID,
	}
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// IsTransient reports whether err is worth retrying on the next poll:
// a 5xx, 408 or 429 response. Transport errors are not APIErrors and
// are left to the caller.
func IsTransient(err error) bool {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return false
	}
	switch apiError.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return apiError.StatusCode >= 500
}
