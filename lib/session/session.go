// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"maps"
	"slices"

	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/siteview"
	"github.com/stencilcms/composer/lib/sitesearch"
)

// Status is the load state of a session.
type Status int

const (
	// StatusEmpty: no site has been loaded yet.
	StatusEmpty Status = iota
	// StatusLoaded: a site graph and its views are present.
	StatusLoaded
	// StatusNoConnection: the first load failed or the service
	// reported that it has no connection. The UI renders a fallback.
	StatusNoConnection
)

// String returns the lower-case name of the status.
func (status Status) String() string {
	switch status {
	case StatusEmpty:
		return "empty"
	case StatusLoaded:
		return "loaded"
	case StatusNoConnection:
		return "no_connection"
	default:
		return fmt.Sprintf("unknown(%d)", int(status))
	}
}

// Filter is the active locale filter. An empty Locale means no filter.
type Filter struct {
	Locale site.LocaleID
}

// Active reports whether a locale is selected.
func (filter Filter) Active() bool { return filter.Locale != "" }

// Session is an immutable snapshot of the composer state: the site
// graph, views and search index derived from it, the edit map, and the
// locale filter.
//
// Every With method returns a new *Session and leaves the receiver
// untouched. A method that would change nothing returns the receiver
// itself, so pointer comparison is a valid change check.
type Session struct {
	status   Status
	graph    *site.Site
	views    *siteview.Views
	search   *sitesearch.Index
	edits    edits
	filter   Filter
	devMode  bool
	sequence uint64
}

// New returns an empty session with no site loaded.
func New() *Session {
	graph := site.New()
	views := siteview.Build(graph)
	return &Session{
		status: StatusEmpty,
		graph:  graph,
		views:  views,
		search: sitesearch.New(views),
	}
}

func (s *Session) copy() *Session {
	clone := *s
	return &clone
}

// WithSite installs a new site graph, rebuilding every view and the
// search index from scratch. The filter and dev mode are kept. Tracked
// edits are rebased: each keeps its edited value and takes the new
// server page as its origin, and edits for pages the new graph no
// longer contains are dropped.
//
// A graph whose content type is NO_CONNECTION moves an empty session to
// StatusNoConnection and leaves a loaded session unchanged.
func (s *Session) WithSite(graph *site.Site) *Session {
	if graph == nil {
		return s
	}
	if graph.ContentType == site.ContentNoConnection {
		return s.WithNoConnection()
	}

	views := siteview.Build(graph)
	next := s.copy()
	next.status = StatusLoaded
	next.graph = graph
	next.views = views
	next.search = sitesearch.New(views)
	next.edits = s.edits.rebase(graph)
	return next
}

// WithNoConnection records that the service could not be reached. Only
// a session that has never loaded changes state; a loaded session keeps
// showing its last good graph.
func (s *Session) WithNoConnection() *Session {
	if s.status != StatusEmpty {
		return s
	}
	next := s.copy()
	next.status = StatusNoConnection
	return next
}

// WithLoadSequence records the sequence number of the last applied
// load.
func (s *Session) WithLoadSequence(sequence uint64) *Session {
	if s.sequence == sequence {
		return s
	}
	next := s.copy()
	next.sequence = sequence
	return next
}

// WithPage starts tracking a page for editing: origin and value are the
// current server copy and the page counts as saved. Tracking an already
// tracked page, or a page not in the graph, changes nothing.
func (s *Session) WithPage(pageID site.PageID) *Session {
	if _, tracked := s.edits.pages[pageID]; tracked {
		return s
	}
	origin, exists := s.graph.Pages[pageID]
	if !exists {
		return s
	}
	next := s.copy()
	next.edits = s.edits.clone()
	next.edits.put(pageID, newPageUpdate(origin))
	return next
}

// WithPageValue sets the edited value of a page, starting tracking if
// needed, and recomputes whether the page is saved. The owning
// article's unsaved count is adjusted incrementally.
func (s *Session) WithPageValue(pageID site.PageID, value string) *Session {
	current, tracked := s.edits.pages[pageID]
	if !tracked {
		origin, exists := s.graph.Pages[pageID]
		if !exists {
			return s
		}
		current = newPageUpdate(origin)
	}

	updated := current.WithValue(value)
	if tracked && updated == current {
		return s
	}
	next := s.copy()
	next.edits = s.edits.clone()
	next.edits.put(pageID, updated)
	return next
}

// WithoutPages stops tracking the given pages, discarding any unsaved
// values.
func (s *Session) WithoutPages(pageIDs ...site.PageID) *Session {
	var present []site.PageID
	for _, pageID := range pageIDs {
		if _, tracked := s.edits.pages[pageID]; tracked {
			present = append(present, pageID)
		}
	}
	if len(present) == 0 {
		return s
	}
	next := s.copy()
	next.edits = s.edits.clone()
	for _, pageID := range present {
		next.edits.remove(pageID)
	}
	return next
}

// WithLocaleFilter sets the locale filter. An empty locale clears it.
// Only VisibleArticles is affected; the graph and views are shared with
// the receiver.
func (s *Session) WithLocaleFilter(locale site.LocaleID) *Session {
	if s.filter.Locale == locale {
		return s
	}
	next := s.copy()
	next.filter = Filter{Locale: locale}
	return next
}

// WithDevMode toggles dev mode, which reveals dev-mode links and
// workflows in VisibleLinks and VisibleWorkflows.
func (s *Session) WithDevMode(enabled bool) *Session {
	if s.devMode == enabled {
		return s
	}
	next := s.copy()
	next.devMode = enabled
	return next
}

// Status returns the load state.
func (s *Session) Status() Status { return s.status }

// Site returns the site graph. Callers must not modify it.
func (s *Session) Site() *site.Site { return s.graph }

// Views returns the derived views.
func (s *Session) Views() *siteview.Views { return s.views }

// Search returns the search index for the current views.
func (s *Session) Search() *sitesearch.Index { return s.search }

// Filter returns the active locale filter.
func (s *Session) Filter() Filter { return s.filter }

// DevMode reports whether dev mode is on.
func (s *Session) DevMode() bool { return s.devMode }

// LoadSequence returns the sequence number of the last applied load.
func (s *Session) LoadSequence() uint64 { return s.sequence }

// Page returns the tracked update for a page.
func (s *Session) Page(pageID site.PageID) (PageUpdate, bool) {
	update, tracked := s.edits.pages[pageID]
	return update, tracked
}

// Pages returns a copy of the edit map.
func (s *Session) Pages() map[site.PageID]PageUpdate {
	return maps.Clone(s.edits.pages)
}

// TrackedPages returns the ids of all tracked pages, sorted.
func (s *Session) TrackedPages() []site.PageID {
	return slices.Sorted(maps.Keys(s.edits.pages))
}

// IsArticleSaved reports whether none of the article's tracked pages
// has an unsaved value. Constant time.
func (s *Session) IsArticleSaved(articleID site.ArticleID) bool {
	return s.edits.unsaved[articleID] == 0
}

// UnsavedPages returns the article's pages that have unsaved values, in
// locale order. Cost is proportional to the article's pages.
func (s *Session) UnsavedPages(articleID site.ArticleID) []site.PageID {
	if s.IsArticleSaved(articleID) {
		return nil
	}
	article, exists := s.views.ArticlesByID[articleID]
	if !exists {
		return nil
	}
	var unsaved []site.PageID
	for _, page := range article.Pages {
		if update, tracked := s.edits.pages[page.Page.ID]; tracked && !update.Saved {
			unsaved = append(unsaved, page.Page.ID)
		}
	}
	return unsaved
}

// HasUnsavedChanges reports whether any tracked page is unsaved.
func (s *Session) HasUnsavedChanges() bool {
	return len(s.edits.unsaved) > 0
}

// ArticleView returns the view of an article.
func (s *Session) ArticleView(articleID site.ArticleID) (*siteview.ArticleView, bool) {
	view, exists := s.views.ArticlesByID[articleID]
	return view, exists
}

// LinkView returns the view of a link.
func (s *Session) LinkView(linkID site.LinkID) (siteview.LinkView, bool) {
	view, exists := s.views.LinksByID[linkID]
	return view, exists
}

// WorkflowView returns the view of a workflow.
func (s *Session) WorkflowView(workflowID site.WorkflowID) (siteview.WorkflowView, bool) {
	view, exists := s.views.WorkflowsByID[workflowID]
	return view, exists
}

// ArticleName resolves an article id to a name.
func (s *Session) ArticleName(articleID site.ArticleID) siteview.NameRef {
	return s.views.ArticleName(articleID)
}

// LinkName resolves a link id to a name.
func (s *Session) LinkName(linkID site.LinkID) siteview.NameRef {
	return s.views.LinkName(linkID)
}

// WorkflowName resolves a workflow id to a name.
func (s *Session) WorkflowName(workflowID site.WorkflowID) siteview.NameRef {
	return s.views.WorkflowName(workflowID)
}

// ArticlesForLocale returns, in tree order, the articles that have a
// page in the locale. The locale filter does not affect the result.
func (s *Session) ArticlesForLocale(locale site.LocaleID) []*siteview.ArticleView {
	return s.ArticlesForLocales([]site.LocaleID{locale})
}

// ArticlesForLocales returns, in tree order, the articles that have a
// page in any of the locales.
func (s *Session) ArticlesForLocales(locales []site.LocaleID) []*siteview.ArticleView {
	var result []*siteview.ArticleView
	s.views.Walk(func(article *siteview.ArticleView) bool {
		for _, locale := range locales {
			if article.HasLocale(locale) {
				result = append(result, article)
				break
			}
		}
		return true
	})
	return result
}

// VisibleArticles returns the articles the explorer shows: every
// article in tree order, narrowed to the filter locale when a filter is
// active.
func (s *Session) VisibleArticles() []*siteview.ArticleView {
	if s.filter.Active() {
		return s.ArticlesForLocale(s.filter.Locale)
	}
	return s.views.Flatten()
}

// VisibleLinks returns the links the explorer shows, by name. Dev-mode
// links are hidden unless dev mode is on.
func (s *Session) VisibleLinks() []siteview.LinkView {
	var visible []siteview.LinkView
	for _, link := range s.views.LinksByName() {
		if link.Link.Body.DevMode && !s.devMode {
			continue
		}
		visible = append(visible, link)
	}
	return visible
}

// VisibleWorkflows returns the workflows the explorer shows, by name.
// Dev-mode workflows are hidden unless dev mode is on.
func (s *Session) VisibleWorkflows() []siteview.WorkflowView {
	var visible []siteview.WorkflowView
	for _, workflow := range s.views.WorkflowsByName() {
		if workflow.Workflow.Body.DevMode && !s.devMode {
			continue
		}
		visible = append(visible, workflow)
	}
	return visible
}
