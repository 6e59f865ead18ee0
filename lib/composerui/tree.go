// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/stencilcms/composer/lib/session"
	"github.com/stencilcms/composer/lib/siteview"
)

// RenderTree writes the article tree of current to w, one article per
// line, followed by any view problems and a summary. profile selects
// the color output; termenv.Ascii gives plain text for pipes.
func RenderTree(w io.Writer, current *session.Session, profile termenv.Profile) error {
	// lipgloss re-detects the profile from the writer unless it is set
	// explicitly.
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	theme := DefaultTheme
	name := renderer.NewStyle().Bold(true).Foreground(theme.NormalText)
	badge := renderer.NewStyle().Foreground(theme.LocaleBadge)
	faint := renderer.NewStyle().Foreground(theme.FaintText)
	problem := renderer.NewStyle().Foreground(theme.Missing)

	var output strings.Builder
	for _, article := range current.VisibleArticles() {
		output.WriteString(strings.Repeat("  ", article.Depth))
		output.WriteString("- ")
		output.WriteString(name.Render(article.Name()))
		var locales []string
		for _, page := range article.Pages {
			locales = append(locales, string(page.Page.Body.Locale))
		}
		if len(locales) > 0 {
			output.WriteString(" " + badge.Render("["+strings.Join(locales, " ")+"]"))
		}
		if article.Article.Body.DevMode {
			output.WriteString(" " + faint.Render("(dev)"))
		}
		output.WriteString(" " + faint.Render(string(article.ID())))
		output.WriteString("\n")
	}

	views := current.Views()
	for _, issue := range views.Problems {
		output.WriteString(problem.Render("! "+issue.String()) + "\n")
	}

	summary := siteview.Summarize(views)
	fmt.Fprintf(&output, "%s\n", faint.Render(fmt.Sprintf(
		"%d articles, %d pages, %d links, %d workflows, %d locales, %d releases, %d templates",
		summary.Articles, summary.Pages, summary.Links, summary.Workflows,
		summary.Locales, summary.Releases, summary.Templates)))

	_, err := io.WriteString(w, output.String())
	return err
}
