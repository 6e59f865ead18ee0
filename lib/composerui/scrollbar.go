// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderScrollbar draws the one-column divider between the list and
// the right pane. The thumb marks the rows of the list on screen; when
// everything fits it fills the column.
func renderScrollbar(theme Theme, height, total, visible, offset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	track := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumb := track
	if focused {
		thumb = lipgloss.NewStyle().Foreground(theme.LocaleBadge)
	}

	start, size := 0, height
	if total > visible && total > 0 {
		size = max(height*visible/total, 1)
		if scrollable, room := total-visible, height-size; room > 0 {
			start = min(offset*room/scrollable, room)
		}
	}

	lines := make([]string, height)
	for row := range lines {
		if row >= start && row < start+size {
			lines[row] = thumb.Render("┃")
		} else {
			lines[row] = track.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}
