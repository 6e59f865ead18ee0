// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func thumbRows(rendered string) []int {
	var rows []int
	for row, line := range strings.Split(ansi.Strip(rendered), "\n") {
		if line == "┃" {
			rows = append(rows, row)
		}
	}
	return rows
}

func TestRenderScrollbar(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		offset  int
		first   int
		thumbed int
	}{
		{"fits", 3, 0, 0, 10},
		{"top", 40, 0, 0, 2},
		{"middle", 40, 16, 4, 2},
		{"bottom", 40, 32, 8, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rows := thumbRows(renderScrollbar(DefaultTheme, 10, test.total, 8, test.offset, true))
			if len(rows) != test.thumbed {
				t.Fatalf("thumb rows = %v, want %d rows", rows, test.thumbed)
			}
			if rows[0] != test.first {
				t.Errorf("thumb starts at %d, want %d", rows[0], test.first)
			}
		})
	}

	if got := renderScrollbar(DefaultTheme, 0, 10, 5, 0, false); got != "" {
		t.Errorf("zero height rendered %q", got)
	}
}
