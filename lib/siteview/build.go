// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package siteview

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/stencilcms/composer/lib/schema/site"
)

// Build derives every view from a site graph. Build is pure and total:
// it never fails, performs no I/O, and returns structurally equal
// results for equal input. Dangling references resolve to placeholder
// views with Missing set; structural problems (parent cycles, page
// conflicts) are repaired deterministically and listed in
// Views.Problems.
func Build(graph *site.Site) *Views {
	if graph == nil {
		graph = site.New()
	}

	locales := make([]site.Locale, 0, len(graph.Locales))
	for _, localeID := range sortedKeys(graph.Locales) {
		locales = append(locales, graph.Locales[localeID])
	}

	views := &Views{
		ArticlesByID:  make(map[site.ArticleID]*ArticleView, len(graph.Articles)),
		LinksByID:     make(map[site.LinkID]LinkView, len(graph.Links)),
		WorkflowsByID: make(map[site.WorkflowID]WorkflowView, len(graph.Workflows)),
		Locales:       locales,
		Releases:      sortReleasesByCreated(graph.Releases),
		Templates:     sortTemplatesByName(graph.Templates),
	}

	for _, linkID := range sortedKeys(graph.Links) {
		link := graph.Links[linkID]
		view := LinkView{
			Link:   link,
			Labels: resolveLabels(link.Body.Labels, link.Body.DevMode, link.Body.Value, graph.Locales, locales),
		}
		views.Links = append(views.Links, view)
		views.LinksByID[linkID] = view
	}

	for _, workflowID := range sortedKeys(graph.Workflows) {
		workflow := graph.Workflows[workflowID]
		view := WorkflowView{
			Workflow: workflow,
			Labels:   resolveLabels(workflow.Body.Labels, workflow.Body.DevMode, workflow.Body.Value, graph.Locales, locales),
		}
		views.Workflows = append(views.Workflows, view)
		views.WorkflowsByID[workflowID] = view
	}

	pagesByArticle, pageProblems := groupPages(graph)

	tree := buildForest(graph.Articles)
	views.Problems = append(tree.problems, pageProblems...)

	builder := articleBuilder{
		graph:          graph,
		views:          views,
		locales:        locales,
		pagesByArticle: pagesByArticle,
		children:       tree.children,
	}
	roots := slices.Clone(tree.roots)
	sortSiblings(roots, graph.Articles)
	views.Articles = builder.buildLevel(roots, 0)

	return views
}

// groupPages indexes pages by owning article. Pages are visited in id
// order so that when two pages share (article, locale) the smallest id
// is kept and the rest are reported.
func groupPages(graph *site.Site) (map[site.ArticleID][]site.Page, []Problem) {
	type articleLocale struct {
		article site.ArticleID
		locale  site.LocaleID
	}
	winners := make(map[articleLocale]site.PageID)
	grouped := make(map[site.ArticleID][]site.Page)
	var problems []Problem

	for _, pageID := range sortedKeys(graph.Pages) {
		page := graph.Pages[pageID]
		if _, exists := graph.Articles[page.Body.Article]; !exists {
			problems = append(problems, Problem{
				Kind:    ProblemOrphanPage,
				Article: page.Body.Article,
				Page:    pageID,
				Detail:  "article does not exist",
			})
			continue
		}

		key := articleLocale{article: page.Body.Article, locale: page.Body.Locale}
		if winner, taken := winners[key]; taken {
			problems = append(problems, Problem{
				Kind:    ProblemPageConflict,
				Article: page.Body.Article,
				Page:    pageID,
				Detail:  fmt.Sprintf("locale %s already provided by page %s", page.Body.Locale, winner),
			})
			continue
		}
		winners[key] = pageID
		grouped[page.Body.Article] = append(grouped[page.Body.Article], page)
	}
	return grouped, problems
}

type articleBuilder struct {
	graph          *site.Site
	views          *Views
	locales        []site.Locale
	pagesByArticle map[site.ArticleID][]site.Page
	children       map[site.ArticleID][]site.ArticleID
}

// buildLevel builds views for one sibling list, already sorted, and
// recurses into children. The forest guarantees termination.
func (builder *articleBuilder) buildLevel(articleIDs []site.ArticleID, depth int) []*ArticleView {
	level := make([]*ArticleView, 0, len(articleIDs))
	for rank, articleID := range articleIDs {
		view := builder.buildArticle(builder.graph.Articles[articleID], rank, depth)

		childIDs := slices.Clone(builder.children[articleID])
		sortSiblings(childIDs, builder.graph.Articles)
		view.Children = builder.buildLevel(childIDs, depth+1)

		builder.views.ArticlesByID[articleID] = view
		level = append(level, view)
	}
	return level
}

func (builder *articleBuilder) buildArticle(article site.Article, rank, depth int) *ArticleView {
	pages := builder.pagesByArticle[article.ID]
	pageViews := make([]PageView, 0, len(pages))
	used := make(map[site.LocaleID]bool, len(pages))
	for _, page := range pages {
		pageViews = append(pageViews, builder.pageView(page))
		used[page.Body.Locale] = true
	}
	slices.SortFunc(pageViews, func(a, b PageView) int {
		return cmp.Compare(a.Page.Body.Locale, b.Page.Body.Locale)
	})

	canCreate := make([]site.Locale, 0, len(builder.locales))
	for _, locale := range builder.locales {
		if !used[locale.ID] {
			canCreate = append(canCreate, locale)
		}
	}

	var links []LinkView
	for _, linkID := range article.Body.Links {
		links = append(links, builder.linkView(linkID))
	}
	var workflows []WorkflowView
	for _, workflowID := range article.Body.Workflows {
		workflows = append(workflows, builder.workflowView(workflowID))
	}

	return &ArticleView{
		Article:      article,
		Pages:        pageViews,
		DisplayOrder: rank,
		Depth:        depth,
		CanCreate:    canCreate,
		Links:        links,
		Workflows:    workflows,
	}
}

func (builder *articleBuilder) pageView(page site.Page) PageView {
	locale, exists := builder.graph.Locales[page.Body.Locale]
	if !exists {
		return PageView{
			Page:    page,
			Title:   string(page.Body.Locale),
			Locale:  site.Locale{ID: page.Body.Locale},
			Missing: true,
		}
	}
	return PageView{
		Page:   page,
		Title:  locale.Body.Value,
		Locale: locale,
	}
}

func (builder *articleBuilder) linkView(linkID site.LinkID) LinkView {
	if view, exists := builder.views.LinksByID[linkID]; exists {
		return view
	}
	return LinkView{Link: site.Link{ID: linkID}, Missing: true}
}

func (builder *articleBuilder) workflowView(workflowID site.WorkflowID) WorkflowView {
	if view, exists := builder.views.WorkflowsByID[workflowID]; exists {
		return view
	}
	return WorkflowView{Workflow: site.Workflow{ID: workflowID}, Missing: true}
}
