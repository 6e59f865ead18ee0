// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stencilcms/composer/lib/schema/site"
)

// editor is the page editor pane: a textarea bound to one page.
type editor struct {
	area    textarea.Model
	open    bool
	pageID  site.PageID
	article site.ArticleID
	locale  site.LocaleID
}

func newEditor() editor {
	area := textarea.New()
	area.Placeholder = "Write markdown…"
	area.CharLimit = 0
	area.ShowLineNumbers = false
	return editor{area: area}
}

// load binds the editor to a page and focuses it.
func (pane *editor) load(pageID site.PageID, article site.ArticleID, locale site.LocaleID, value string) tea.Cmd {
	pane.open = true
	pane.pageID = pageID
	pane.article = article
	pane.locale = locale
	pane.area.SetValue(value)
	return pane.area.Focus()
}

// reset replaces the text without moving focus, e.g. after a discard.
func (pane *editor) reset(value string) {
	pane.area.SetValue(value)
}

func (pane *editor) close() {
	pane.open = false
	pane.pageID = ""
	pane.article = ""
	pane.locale = ""
	pane.area.Blur()
}

func (pane *editor) setSize(width, height int) {
	pane.area.SetWidth(max(width, 1))
	// One line for the editor header.
	pane.area.SetHeight(max(height-1, 1))
}

// update forwards message to the textarea and reports whether the
// text changed.
func (pane *editor) update(message tea.Msg) (tea.Cmd, bool) {
	before := pane.area.Value()
	var command tea.Cmd
	pane.area, command = pane.area.Update(message)
	return command, pane.area.Value() != before
}

func (pane editor) value() string { return pane.area.Value() }

// view renders the header line and the textarea.
func (pane editor) view(theme Theme, title string, saved, focused bool) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	state := lipgloss.NewStyle().Foreground(theme.FaintText).Render("saved")
	if !saved {
		state = lipgloss.NewStyle().Foreground(theme.Unsaved).Bold(true).Render("unsaved")
	}
	if !focused {
		header = header.Foreground(theme.FaintText)
	}
	line := fmt.Sprintf("%s %s ", header.Render(title), header.Render("["+string(pane.locale)+"]"))
	return line + state + "\n" + pane.area.View()
}
