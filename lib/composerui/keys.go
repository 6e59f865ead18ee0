// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the composer.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Open the selected article in a tab and focus its editor.
	Open key.Binding

	// Views.
	ViewExplorer  key.Binding
	ViewLinks     key.Binding
	ViewWorkflows key.Binding
	ViewReleases  key.Binding
	ViewSearch    key.Binding

	// Tabs.
	NextTab  key.Binding
	PrevTab  key.Binding
	CloseTab key.Binding

	// Explorer quick filter and locale filter.
	FilterActivate key.Binding
	FilterClear    key.Binding
	CycleLocale    key.Binding

	ToggleDevMode key.Binding
	Reload        key.Binding

	// Editor.
	Save          key.Binding
	Discard       key.Binding
	NextPage      key.Binding
	TogglePageDev key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set: vim-style movement
// alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	ViewExplorer: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "articles"),
	),
	ViewLinks: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "links"),
	),
	ViewWorkflows: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "workflows"),
	),
	ViewReleases: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "releases"),
	),
	ViewSearch: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "search"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("}", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{", "previous tab"),
	),
	CloseTab: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "close tab"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	CycleLocale: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "locale"),
	),
	ToggleDevMode: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "dev mode"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Discard: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "discard"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("C-n", "next locale"),
	),
	TogglePageDev: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "page dev mode"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
