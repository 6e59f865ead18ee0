// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package siteview

import (
	"fmt"

	"github.com/stencilcms/composer/lib/schema/site"
)

// NameRef is the result of resolving an entity id to a display name.
// When the id is absent from the graph, Missing is true and Name holds
// the raw id so the UI still has something to show.
type NameRef struct {
	Missing bool
	Name    string
}

// PageView is a page with its locale resolved.
type PageView struct {
	Page site.Page

	// Title is the display label of the page's locale.
	Title string

	Locale site.Locale

	// Missing is set when the page's locale does not exist in the
	// graph. Locale then carries only the id.
	Missing bool
}

// LabelView is a link or workflow label with its locale resolved.
type LabelView struct {
	Label  site.Label
	Locale site.Locale

	// Synthetic marks a label generated for a dev-mode entity that has
	// no labels of its own. Its text is the entity's value.
	Synthetic bool
}

// LinkView is a link with resolved labels. A view built for a link id
// that does not exist in the graph has Missing set and an empty body.
type LinkView struct {
	Link    site.Link
	Labels  []LabelView
	Missing bool
}

// WorkflowView is a workflow with resolved labels. A view built for a
// workflow id that does not exist in the graph has Missing set and an
// empty body.
type WorkflowView struct {
	Workflow site.Workflow
	Labels   []LabelView
	Missing  bool
}

// ArticleView is an article denormalized for display: its pages,
// children, attachable locales, links and workflows are all resolved.
type ArticleView struct {
	Article site.Article

	// Pages holds one view per locale the article has a page in,
	// sorted by locale id. When two pages share a locale only the one
	// with the smallest page id appears here.
	Pages []PageView

	// Children are the articles whose effective parent is this one,
	// in display order.
	Children []*ArticleView

	// DisplayOrder is the article's rank among its siblings after
	// sorting by (order, id). Zero-based.
	DisplayOrder int

	// Depth is zero for roots.
	Depth int

	// CanCreate lists the locales this article has no page for yet,
	// sorted by locale id. Never nil.
	CanCreate []site.Locale

	Links     []LinkView
	Workflows []WorkflowView
}

// ID returns the article id.
func (view *ArticleView) ID() site.ArticleID { return view.Article.ID }

// Name returns the article name.
func (view *ArticleView) Name() string { return view.Article.Body.Name }

// PageByID returns the page view with the given id.
func (view *ArticleView) PageByID(pageID site.PageID) (PageView, bool) {
	for _, page := range view.Pages {
		if page.Page.ID == pageID {
			return page, true
		}
	}
	return PageView{}, false
}

// PageByLocale returns the article's page in the given locale.
func (view *ArticleView) PageByLocale(locale site.LocaleID) (PageView, bool) {
	for _, page := range view.Pages {
		if page.Page.Body.Locale == locale {
			return page, true
		}
	}
	return PageView{}, false
}

// HasLocale reports whether the article has a page in the locale.
func (view *ArticleView) HasLocale(locale site.LocaleID) bool {
	_, found := view.PageByLocale(locale)
	return found
}

// ProblemKind classifies a data-quality problem found while building
// views. Problems never stop the build.
type ProblemKind int

const (
	// ProblemCycle: following parentId from an article returns to
	// it. The cycle is broken at its smallest article id, which is
	// promoted to a root.
	ProblemCycle ProblemKind = iota
	// ProblemDanglingParent: parentId names an article that does not
	// exist. The article is promoted to a root.
	ProblemDanglingParent
	// ProblemPageConflict: two pages share (article, locale). The page
	// with the smallest id wins; the others are left out of the view.
	ProblemPageConflict
	// ProblemOrphanPage: a page names an article that does not exist.
	ProblemOrphanPage
)

// String returns the lower-case name of the problem kind.
func (kind ProblemKind) String() string {
	switch kind {
	case ProblemCycle:
		return "cycle"
	case ProblemDanglingParent:
		return "dangling_parent"
	case ProblemPageConflict:
		return "page_conflict"
	case ProblemOrphanPage:
		return "orphan_page"
	default:
		return fmt.Sprintf("unknown(%d)", int(kind))
	}
}

// Problem is a single data-quality finding.
type Problem struct {
	Kind    ProblemKind
	Article site.ArticleID
	Page    site.PageID
	Detail  string
}

func (problem Problem) String() string {
	switch problem.Kind {
	case ProblemPageConflict, ProblemOrphanPage:
		return fmt.Sprintf("%s: article %s page %s: %s", problem.Kind, problem.Article, problem.Page, problem.Detail)
	default:
		return fmt.Sprintf("%s: article %s: %s", problem.Kind, problem.Article, problem.Detail)
	}
}

// Views is the full set of derived views for one site graph. Views are
// never modified after Build returns.
type Views struct {
	// Articles are the root articles in display order.
	Articles     []*ArticleView
	ArticlesByID map[site.ArticleID]*ArticleView

	// Links and Workflows are sorted by id.
	Links         []LinkView
	LinksByID     map[site.LinkID]LinkView
	Workflows     []WorkflowView
	WorkflowsByID map[site.WorkflowID]WorkflowView

	// Locales are sorted by id.
	Locales []site.Locale

	// Releases are sorted by creation time, then id. Templates are
	// sorted by name, then id.
	Releases  []site.Release
	Templates []site.Template

	Problems []Problem
}

// Walk visits every article in tree order (parents before children,
// siblings in display order). Returning false from visit stops the
// walk.
func (views *Views) Walk(visit func(*ArticleView) bool) {
	var walk func([]*ArticleView) bool
	walk = func(articles []*ArticleView) bool {
		for _, article := range articles {
			if !visit(article) {
				return false
			}
			if !walk(article.Children) {
				return false
			}
		}
		return true
	}
	walk(views.Articles)
}

// Flatten returns every article in tree order.
func (views *Views) Flatten() []*ArticleView {
	flat := make([]*ArticleView, 0, len(views.ArticlesByID))
	views.Walk(func(article *ArticleView) bool {
		flat = append(flat, article)
		return true
	})
	return flat
}
