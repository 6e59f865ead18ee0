// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette of the composer. All colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Unsaved marks articles and pages with edits not yet saved.
	Unsaved lipgloss.Color
	// Missing marks placeholders for dangling references.
	Missing lipgloss.Color
	// DevMode marks entities only shown in dev mode.
	DevMode lipgloss.Color
	// Locale badges in explorer rows.
	LocaleBadge lipgloss.Color

	// Fuzzy and keyword match highlighting.
	MatchForeground lipgloss.Color

	// Status bar log records.
	WarnText  lipgloss.Color
	ErrorText lipgloss.Color

	// CodeStyle names the chroma style for fenced code in page previews.
	CodeStyle string
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Unsaved:     lipgloss.Color("220"), // amber
	Missing:     lipgloss.Color("196"), // red
	DevMode:     lipgloss.Color("141"), // light purple
	LocaleBadge: lipgloss.Color("75"),  // blue

	MatchForeground: lipgloss.Color("214"),

	WarnText:  lipgloss.Color("220"),
	ErrorText: lipgloss.Color("196"),

	CodeStyle: "monokai",
}
