// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCategory classifies service failures so callers can decide
// whether to fix input, retry, or give up without parsing messages.
type ErrorCategory string

const (
	// CategoryValidation: the request was malformed or violates a
	// rule (empty name, locale already used by the article).
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: a referenced entity does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryConflict: the request conflicts with current state,
	// such as a second page for the same (article, locale).
	CategoryConflict ErrorCategory = "conflict"

	// CategoryUnavailable: the service could not be reached or timed
	// out. Retrying later may succeed.
	CategoryUnavailable ErrorCategory = "unavailable"

	// CategoryInternal: anything else.
	CategoryInternal ErrorCategory = "internal"
)

// Error is a categorized service error. Use the constructors rather
// than building one directly.
type Error struct {
	Category ErrorCategory
	Err      error
}

func (e *Error) Error() string { return e.Err.Error() }

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Validation creates a validation error.
func Validation(format string, args ...any) *Error {
	return &Error{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return &Error{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *Error {
	return &Error{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Unavailable creates an unavailable error.
func Unavailable(format string, args ...any) *Error {
	return &Error{Category: CategoryUnavailable, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *Error {
	return &Error{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// CategoryOf returns the category of the first *Error in err's chain,
// or CategoryInternal when there is none.
func CategoryOf(err error) ErrorCategory {
	var serviceError *Error
	if errors.As(err, &serviceError) {
		return serviceError.Category
	}
	return CategoryInternal
}

// IsUnavailable reports whether err means the service could not be
// reached.
func IsUnavailable(err error) bool {
	return err != nil && CategoryOf(err) == CategoryUnavailable
}

// categoryFromStatus maps an HTTP status code to a category.
func categoryFromStatus(status int) ErrorCategory {
	switch {
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status == http.StatusConflict:
		return CategoryConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return CategoryValidation
	case status == http.StatusServiceUnavailable || status == http.StatusBadGateway ||
		status == http.StatusGatewayTimeout || status == http.StatusTooManyRequests:
		return CategoryUnavailable
	default:
		return CategoryInternal
	}
}

// statusFromCategory is the inverse of categoryFromStatus, used by the
// test server.
func statusFromCategory(category ErrorCategory) int {
	switch category {
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryConflict:
		return http.StatusConflict
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
