// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/stencilcms/composer/lib/session"
	"github.com/stencilcms/composer/lib/siteview"
	"github.com/stencilcms/composer/lib/sitesearch"
)

// explorerRow is one article line of the explorer.
type explorerRow struct {
	Article *siteview.ArticleView

	// Depth is the indentation level. Zero while a quick filter is
	// active, since ranked results are not in tree order.
	Depth int

	// Unsaved is true when any page of the article has an unsaved
	// edit.
	Unsaved bool

	// Positions are rune offsets into the article name matched by the
	// quick filter.
	Positions []int
}

// explorerRows lists the articles the explorer shows. Without a
// pattern this is the session's visible articles in tree order. With a
// pattern, articles are fuzzy-ranked by name and then narrowed to the
// locale filter.
func explorerRows(current *session.Session, pattern string) []explorerRow {
	var rows []explorerRow
	if strings.TrimSpace(pattern) == "" {
		for _, article := range current.VisibleArticles() {
			rows = append(rows, explorerRow{
				Article: article,
				Depth:   article.Depth,
				Unsaved: !current.IsArticleSaved(article.ID()),
			})
		}
		return rows
	}

	filter := current.Filter()
	for _, ranked := range sitesearch.RankArticles(current.Views(), pattern) {
		if filter.Active() && !ranked.Article.HasLocale(filter.Locale) {
			continue
		}
		rows = append(rows, explorerRow{
			Article:   ranked.Article,
			Unsaved:   !current.IsArticleSaved(ranked.Article.ID()),
			Positions: ranked.Positions,
		})
	}
	return rows
}

// renderExplorerRow renders row within width cells.
func renderExplorerRow(row explorerRow, theme Theme, width int, selected bool) string {
	base := lipgloss.NewStyle().Foreground(theme.NormalText)
	if selected {
		base = base.Background(theme.SelectedBackground).Foreground(theme.SelectedForeground).Bold(true)
	}
	match := base.Foreground(theme.MatchForeground).Bold(true)
	badge := base.Foreground(theme.LocaleBadge)
	unsaved := base.Foreground(theme.Unsaved).Bold(true)
	dev := base.Foreground(theme.DevMode)

	var line strings.Builder
	line.WriteString(base.Render(strings.Repeat("  ", row.Depth)))
	if row.Unsaved {
		line.WriteString(unsaved.Render("* "))
	} else {
		line.WriteString(base.Render("  "))
	}
	line.WriteString(highlightPositions(row.Article.Name(), row.Positions, base, match))
	if row.Article.Article.Body.DevMode {
		line.WriteString(dev.Render(" [dev]"))
	}
	for _, page := range row.Article.Pages {
		line.WriteString(base.Render(" "))
		line.WriteString(badge.Render(string(page.Page.Body.Locale)))
	}

	rendered := ansi.Truncate(line.String(), width, "…")
	if gap := width - ansi.StringWidth(rendered); gap > 0 {
		rendered += base.Render(strings.Repeat(" ", gap))
	}
	return rendered
}

// highlightPositions renders text with the runes at positions in
// match style and the rest in base style.
func highlightPositions(text string, positions []int, base, match lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}
	marked := make(map[int]bool, len(positions))
	for _, position := range positions {
		marked[position] = true
	}
	var builder strings.Builder
	for index, character := range []rune(text) {
		if marked[index] {
			builder.WriteString(match.Render(string(character)))
		} else {
			builder.WriteString(base.Render(string(character)))
		}
	}
	return builder.String()
}
