// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCategoryOfWrapped(t *testing.T) {
	base := NotFound("page %s not found", "p1")
	wrapped := fmt.Errorf("saving: %w", base)

	if got := CategoryOf(wrapped); got != CategoryNotFound {
		t.Errorf("CategoryOf = %s, want not_found", got)
	}
	if got := CategoryOf(errors.New("plain")); got != CategoryInternal {
		t.Errorf("CategoryOf(plain) = %s, want internal", got)
	}
	if wrapped.Error() != "saving: page p1 not found" {
		t.Errorf("message = %q", wrapped.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("dialing: %w", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the cause")
	}
	if !IsUnavailable(err) {
		t.Error("IsUnavailable = false")
	}
	if IsUnavailable(nil) {
		t.Error("IsUnavailable(nil) = true")
	}
}

func TestStatusCategoryRoundTrip(t *testing.T) {
	for _, category := range []ErrorCategory{
		CategoryValidation, CategoryNotFound, CategoryConflict, CategoryUnavailable, CategoryInternal,
	} {
		if got := categoryFromStatus(statusFromCategory(category)); got != category {
			t.Errorf("category %s -> status %d -> %s", category, statusFromCategory(category), got)
		}
	}
	if got := categoryFromStatus(http.StatusTeapot); got != CategoryInternal {
		t.Errorf("categoryFromStatus(418) = %s, want internal", got)
	}
}
