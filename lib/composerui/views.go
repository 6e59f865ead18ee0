// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/session"
	"github.com/stencilcms/composer/lib/siteview"
	"github.com/stencilcms/composer/lib/sitesearch"
)

// View identifies which listing fills the left pane.
type View int

const (
	ViewExplorer View = iota
	ViewLinks
	ViewWorkflows
	ViewReleases
	ViewSearch
)

// viewDefs drives the header tab strip.
var viewDefs = []struct {
	view  View
	label string
}{
	{ViewExplorer, "Articles"},
	{ViewLinks, "Links"},
	{ViewWorkflows, "Workflows"},
	{ViewReleases, "Releases"},
	{ViewSearch, "Search"},
}

// listEntry is one row of a non-explorer listing, plus the lines the
// detail pane shows while it is selected.
type listEntry struct {
	Title   string
	Suffix  string
	Detail  []string
	Missing bool
	DevMode bool

	// Article is set when enter should open an article.
	Article site.ArticleID
}

// linkEntries lists the visible links by name.
func linkEntries(current *session.Session) []listEntry {
	var entries []listEntry
	for _, link := range current.VisibleLinks() {
		body := link.Link.Body
		detail := []string{
			"value: " + body.Value,
			"content type: " + body.ContentType,
		}
		detail = append(detail, labelLines(link.Labels)...)
		detail = append(detail, articleLines(current, body.Articles)...)
		entries = append(entries, listEntry{
			Title:   body.Value,
			Suffix:  body.ContentType,
			Detail:  detail,
			Missing: link.Missing,
			DevMode: body.DevMode,
		})
	}
	return entries
}

// workflowEntries lists the visible workflows by name.
func workflowEntries(current *session.Session) []listEntry {
	var entries []listEntry
	for _, workflow := range current.VisibleWorkflows() {
		body := workflow.Workflow.Body
		detail := []string{"name: " + body.Value}
		detail = append(detail, labelLines(workflow.Labels)...)
		detail = append(detail, articleLines(current, body.Articles)...)
		entries = append(entries, listEntry{
			Title:   body.Value,
			Suffix:  fmt.Sprintf("%d articles", len(body.Articles)),
			Detail:  detail,
			Missing: workflow.Missing,
			DevMode: body.DevMode,
		})
	}
	return entries
}

// releaseEntries lists releases newest first, then templates by name.
func releaseEntries(current *session.Session) []listEntry {
	views := current.Views()
	var entries []listEntry
	releases := siteview.SortReleases(views.Releases, siteview.SortByCreated, siteview.Descending)
	for _, release := range releases {
		created := release.Body.Created.UTC().Format("2006-01-02 15:04")
		detail := []string{"release: " + release.Body.Name, "created: " + created}
		if release.Body.Note != "" {
			detail = append(detail, "", release.Body.Note)
		}
		entries = append(entries, listEntry{Title: release.Body.Name, Suffix: created, Detail: detail})
	}
	for _, template := range siteview.SortTemplates(views.Templates) {
		detail := []string{"template: " + template.Body.Name}
		if template.Body.Description != "" {
			detail = append(detail, template.Body.Description)
		}
		detail = append(detail, "", template.Body.Content)
		entries = append(entries, listEntry{Title: template.Body.Name, Suffix: "template", Detail: detail})
	}
	return entries
}

// searchEntries runs keyword against the session's index. Articles come
// first, then links, then workflows.
func searchEntries(current *session.Session, keyword string) []listEntry {
	index := current.Search()
	var entries []listEntry
	groups := [][]sitesearch.Result{
		index.FilterArticles(keyword),
		index.FilterLinks(keyword),
		index.FilterWorkflows(keyword),
	}
	for _, results := range groups {
		for _, result := range results {
			entries = append(entries, searchEntry(current, result))
		}
	}
	return entries
}

func searchEntry(current *session.Session, result sitesearch.Result) listEntry {
	entry := listEntry{Suffix: strings.ToLower(result.Source.Kind.String())}
	switch result.Source.Kind {
	case sitesearch.EntryArticle:
		articleID := site.ArticleID(result.Source.ID)
		entry.Title = current.ArticleName(articleID).Name
		entry.Article = articleID
	case sitesearch.EntryLink:
		entry.Title = current.LinkName(site.LinkID(result.Source.ID)).Name
	case sitesearch.EntryWorkflow:
		entry.Title = current.WorkflowName(site.WorkflowID(result.Source.ID)).Name
	}
	for _, match := range result.Matches {
		entry.Detail = append(entry.Detail, fmt.Sprintf("%s %s: %s", match.Kind, match.ID, excerpt(match.Value, 60)))
	}
	return entry
}

// articleDetail is the detail pane content for an article. The page
// list is followed by a preview of the page in the filtered locale, or
// of the first page when no filter is set, rendered to width.
func articleDetail(current *session.Session, article *siteview.ArticleView, theme Theme, width int, profile termenv.Profile) []string {
	lines := []string{article.Name(), ""}
	for _, page := range article.Pages {
		state := "saved"
		if update, tracked := current.Page(page.Page.ID); tracked && !update.Saved {
			state = "unsaved"
		}
		title := page.Title
		if title == "" {
			title = "(untitled)"
		}
		lines = append(lines, fmt.Sprintf("page %s [%s] %s: %s", page.Page.ID, page.Locale.Body.Value, state, title))
		if heading := sitesearch.Heading(page.Page.Body.Content); heading != "" {
			lines = append(lines, "  "+heading)
		}
	}
	if len(article.CanCreate) > 0 {
		var locales []string
		for _, locale := range article.CanCreate {
			locales = append(locales, string(locale.ID))
		}
		lines = append(lines, "can create: "+strings.Join(locales, ", "))
	}
	for _, link := range article.Links {
		lines = append(lines, "link: "+referenceName(link.Link.Body.Value, link.Missing))
	}
	for _, workflow := range article.Workflows {
		lines = append(lines, "workflow: "+referenceName(workflow.Workflow.Body.Value, workflow.Missing))
	}
	for _, link := range current.Views().LinksReferencingArticle(article.ID()) {
		lines = append(lines, "referenced by link: "+link.Link.Body.Value)
	}
	if page, ok := previewPage(current, article); ok {
		content := page.Page.Body.Content
		if update, tracked := current.Page(page.Page.ID); tracked {
			content = update.Value
		}
		if preview := renderPagePreview(content, theme, width, profile); preview != "" {
			rule := fmt.Sprintf("── %s [%s] ", page.Page.ID, page.Locale.Body.Value)
			lines = append(lines, "", rule)
			lines = append(lines, strings.Split(preview, "\n")...)
		}
	}
	return lines
}

// previewPage picks the page whose content the detail pane previews.
func previewPage(current *session.Session, article *siteview.ArticleView) (siteview.PageView, bool) {
	if len(article.Pages) == 0 {
		return siteview.PageView{}, false
	}
	if filter := current.Filter(); filter.Active() {
		for _, page := range article.Pages {
			if page.Page.Body.Locale == filter.Locale {
				return page, true
			}
		}
	}
	return article.Pages[0], true
}

func referenceName(name string, missing bool) string {
	if missing {
		return name + " (missing)"
	}
	return name
}

func labelLines(labels []siteview.LabelView) []string {
	var lines []string
	for _, label := range labels {
		line := fmt.Sprintf("label %s: %s", label.Label.Locale, label.Label.LabelValue)
		if label.Synthetic {
			line += " (synthetic)"
		}
		lines = append(lines, line)
	}
	return lines
}

func articleLines(current *session.Session, articleIDs []site.ArticleID) []string {
	var lines []string
	for _, articleID := range articleIDs {
		name := current.ArticleName(articleID)
		lines = append(lines, "article: "+referenceName(name.Name, name.Missing))
	}
	return lines
}

// excerpt shortens text to one line of at most limit runes.
func excerpt(text string, limit int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= limit {
		return flat
	}
	return string(runes[:limit-1]) + "…"
}
