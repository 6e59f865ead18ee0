// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composer

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/stencil"
)

// Actions performs the composer's operations: loads and mutations go
// to the service, and results are dispatched to the store. Every
// mutation that succeeds is followed by a full reload; the composer
// never patches its graph locally.
//
// Methods that call the service block and honour ctx. The UI runs them
// off its event loop.
type Actions struct {
	store   *Store
	service stencil.Service
	logger  *slog.Logger
}

// NewActions returns Actions dispatching into store.
func NewActions(store *Store, service stencil.Service, logger *slog.Logger) *Actions {
	return &Actions{store: store, service: service, logger: logger}
}

// Store returns the store actions dispatch into.
func (a *Actions) Store() *Store { return a.store }

// Service returns the content service.
func (a *Actions) Service() stencil.Service { return a.service }

// HandleLoad performs the first load. If it fails before any site was
// loaded, the session moves to StatusNoConnection so the UI can show
// its fallback. The error is still returned.
func (a *Actions) HandleLoad(ctx context.Context) error {
	sequence := a.store.NextSequence()
	graph, err := a.service.LoadSite(ctx)
	if err != nil {
		a.logger.Error("initial site load failed", "sequence", sequence, "error", err)
		a.store.Dispatch(SiteUnavailable{Sequence: sequence, Err: err})
		return fmt.Errorf("loading site: %w", err)
	}
	a.install(sequence, graph)
	return nil
}

// HandleLoadSite reloads the site. On failure the session is left
// exactly as it was and the error is returned.
func (a *Actions) HandleLoadSite(ctx context.Context) error {
	sequence := a.store.NextSequence()
	graph, err := a.service.LoadSite(ctx)
	if err != nil {
		a.logger.Warn("site reload failed", "sequence", sequence, "error", err)
		return fmt.Errorf("reloading site: %w", err)
	}
	a.install(sequence, graph)
	return nil
}

func (a *Actions) install(sequence uint64, graph *site.Site) {
	next := a.store.Dispatch(SiteLoaded{Sequence: sequence, Site: graph})
	if next.LoadSequence() != sequence {
		a.logger.Debug("site load discarded", "sequence", sequence, "applied_sequence", next.LoadSequence())
		return
	}
	a.logger.Debug("site loaded",
		"sequence", sequence,
		"articles", len(graph.Articles),
		"pages", len(graph.Pages),
		"unsaved", next.HasUnsavedChanges(),
	)
}

// HandlePageOpen starts tracking a page.
func (a *Actions) HandlePageOpen(pageID site.PageID) {
	a.store.Dispatch(PageOpened{PageID: pageID})
}

// HandlePageUpdate records an edited page value.
func (a *Actions) HandlePageUpdate(pageID site.PageID, value string) {
	a.store.Dispatch(PageValueChanged{PageID: pageID, Value: value})
}

// HandlePageUpdateRemove discards the edits of the given pages.
func (a *Actions) HandlePageUpdateRemove(pageIDs ...site.PageID) {
	a.store.Dispatch(PagesDiscarded{PageIDs: pageIDs})
}

// HandleLocaleFilter sets the locale filter; an empty locale clears it.
func (a *Actions) HandleLocaleFilter(locale site.LocaleID) {
	a.store.Dispatch(LocaleFilterChanged{Locale: locale})
}

// HandleDevMode turns dev mode on or off.
func (a *Actions) HandleDevMode(enabled bool) {
	a.store.Dispatch(DevModeChanged{Enabled: enabled})
}

// SavePage writes the page's edited value to the service, stops
// tracking it unless it was edited again during the save, and reloads.
// A page that is not being edited is a validation error.
//
// The save is not conditional on the server copy being unchanged: an
// edit made against an older origin overwrites newer server content.
func (a *Actions) SavePage(ctx context.Context, pageID site.PageID) error {
	update, tracked := a.store.Session().Page(pageID)
	if !tracked {
		return stencil.Validation("page %s is not open for editing", pageID)
	}
	err := a.service.UpdatePage(ctx, site.PageMutator{
		PageID:  pageID,
		Locale:  update.Origin.Body.Locale,
		Content: update.Value,
		DevMode: update.Origin.Body.DevMode,
	})
	if err != nil {
		return a.failed("saving page", err, "page_id", pageID)
	}
	a.store.Dispatch(PageSaved{PageID: pageID, Value: update.Value})
	return a.reload(ctx, "saving page")
}

// ChangePageLocale moves a page to another locale. Only locales the
// article has no page for yet are allowed.
func (a *Actions) ChangePageLocale(ctx context.Context, pageID site.PageID, locale site.LocaleID) error {
	current := a.store.Session()
	page, exists := current.Site().Pages[pageID]
	if !exists {
		return stencil.NotFound("page %s not found", pageID)
	}
	article, exists := current.ArticleView(page.Body.Article)
	if !exists {
		return stencil.NotFound("article %s of page %s not found", page.Body.Article, pageID)
	}
	allowed := slices.ContainsFunc(article.CanCreate, func(candidate site.Locale) bool {
		return candidate.ID == locale
	})
	if !allowed {
		return stencil.Validation("article %s cannot take a page in locale %s", article.ID(), locale)
	}

	err := a.service.UpdatePage(ctx, site.PageMutator{
		PageID:  pageID,
		Locale:  locale,
		Content: page.Body.Content,
		DevMode: page.Body.DevMode,
	})
	if err != nil {
		return a.failed("changing page locale", err, "page_id", pageID, "locale", locale)
	}
	return a.reload(ctx, "changing page locale")
}

// TogglePageDevMode flips the page's dev mode flag.
func (a *Actions) TogglePageDevMode(ctx context.Context, pageID site.PageID) error {
	page, exists := a.store.Session().Site().Pages[pageID]
	if !exists {
		return stencil.NotFound("page %s not found", pageID)
	}
	err := a.service.UpdatePage(ctx, site.PageMutator{
		PageID:  pageID,
		Locale:  page.Body.Locale,
		Content: page.Body.Content,
		DevMode: !page.Body.DevMode,
	})
	if err != nil {
		return a.failed("toggling page dev mode", err, "page_id", pageID)
	}
	return a.reload(ctx, "toggling page dev mode")
}

// SetArticleLinks replaces the links attached to an article.
func (a *Actions) SetArticleLinks(ctx context.Context, articleID site.ArticleID, links []site.LinkID) error {
	article, exists := a.store.Session().Site().Articles[articleID]
	if !exists {
		return stencil.NotFound("article %s not found", articleID)
	}
	body := article.Body
	body.Links = slices.Clone(links)
	return a.UpdateArticle(ctx, site.ArticleMutator{ArticleID: articleID, Body: body})
}

// SetArticleWorkflows replaces the workflows attached to an article.
func (a *Actions) SetArticleWorkflows(ctx context.Context, articleID site.ArticleID, workflows []site.WorkflowID) error {
	article, exists := a.store.Session().Site().Articles[articleID]
	if !exists {
		return stencil.NotFound("article %s not found", articleID)
	}
	body := article.Body
	body.Workflows = slices.Clone(workflows)
	return a.UpdateArticle(ctx, site.ArticleMutator{ArticleID: articleID, Body: body})
}

// failed logs a service error and wraps it with the operation name.
func (a *Actions) failed(operation string, err error, attributes ...any) error {
	a.logger.Warn(operation+" failed", append(attributes, "category", stencil.CategoryOf(err), "error", err)...)
	return fmt.Errorf("%s: %w", operation, err)
}

// reload follows a successful mutation.
func (a *Actions) reload(ctx context.Context, operation string) error {
	if err := a.HandleLoadSite(ctx); err != nil {
		return fmt.Errorf("%s succeeded but %w", operation, err)
	}
	return nil
}

// mutate runs a service call and reloads on success.
func (a *Actions) mutate(ctx context.Context, operation string, call func() error) error {
	if err := call(); err != nil {
		return a.failed(operation, err)
	}
	return a.reload(ctx, operation)
}

// create is mutate for calls that return the new entity's id.
func create[ID ~string](ctx context.Context, a *Actions, operation string, call func() (ID, error)) (ID, error) {
	var id ID
	err := a.mutate(ctx, operation, func() error {
		var err error
		id, err = call()
		return err
	})
	return id, err
}

func (a *Actions) CreateArticle(ctx context.Context, request site.CreateArticle) (site.ArticleID, error) {
	return create(ctx, a, "creating article", func() (site.ArticleID, error) { return a.service.CreateArticle(ctx, request) })
}

func (a *Actions) UpdateArticle(ctx context.Context, mutator site.ArticleMutator) error {
	return a.mutate(ctx, "updating article", func() error { return a.service.UpdateArticle(ctx, mutator) })
}

func (a *Actions) DeleteArticle(ctx context.Context, articleID site.ArticleID) error {
	return a.mutate(ctx, "deleting article", func() error { return a.service.DeleteArticle(ctx, articleID) })
}

func (a *Actions) CreatePage(ctx context.Context, request site.CreatePage) (site.PageID, error) {
	return create(ctx, a, "creating page", func() (site.PageID, error) { return a.service.CreatePage(ctx, request) })
}

func (a *Actions) DeletePage(ctx context.Context, pageID site.PageID) error {
	return a.mutate(ctx, "deleting page", func() error { return a.service.DeletePage(ctx, pageID) })
}

func (a *Actions) CreateLink(ctx context.Context, request site.CreateLink) (site.LinkID, error) {
	return create(ctx, a, "creating link", func() (site.LinkID, error) { return a.service.CreateLink(ctx, request) })
}

func (a *Actions) UpdateLink(ctx context.Context, mutator site.LinkMutator) error {
	return a.mutate(ctx, "updating link", func() error { return a.service.UpdateLink(ctx, mutator) })
}

func (a *Actions) DeleteLink(ctx context.Context, linkID site.LinkID) error {
	return a.mutate(ctx, "deleting link", func() error { return a.service.DeleteLink(ctx, linkID) })
}

func (a *Actions) CreateWorkflow(ctx context.Context, request site.CreateWorkflow) (site.WorkflowID, error) {
	return create(ctx, a, "creating workflow", func() (site.WorkflowID, error) { return a.service.CreateWorkflow(ctx, request) })
}

func (a *Actions) UpdateWorkflow(ctx context.Context, mutator site.WorkflowMutator) error {
	return a.mutate(ctx, "updating workflow", func() error { return a.service.UpdateWorkflow(ctx, mutator) })
}

func (a *Actions) DeleteWorkflow(ctx context.Context, workflowID site.WorkflowID) error {
	return a.mutate(ctx, "deleting workflow", func() error { return a.service.DeleteWorkflow(ctx, workflowID) })
}

func (a *Actions) CreateLocale(ctx context.Context, request site.CreateLocale) (site.LocaleID, error) {
	return create(ctx, a, "creating locale", func() (site.LocaleID, error) { return a.service.CreateLocale(ctx, request) })
}

func (a *Actions) UpdateLocale(ctx context.Context, mutator site.LocaleMutator) error {
	return a.mutate(ctx, "updating locale", func() error { return a.service.UpdateLocale(ctx, mutator) })
}

func (a *Actions) DeleteLocale(ctx context.Context, localeID site.LocaleID) error {
	return a.mutate(ctx, "deleting locale", func() error { return a.service.DeleteLocale(ctx, localeID) })
}

func (a *Actions) CreateRelease(ctx context.Context, request site.CreateRelease) (site.ReleaseID, error) {
	return create(ctx, a, "creating release", func() (site.ReleaseID, error) { return a.service.CreateRelease(ctx, request) })
}

func (a *Actions) DeleteRelease(ctx context.Context, releaseID site.ReleaseID) error {
	return a.mutate(ctx, "deleting release", func() error { return a.service.DeleteRelease(ctx, releaseID) })
}

func (a *Actions) CreateTemplate(ctx context.Context, request site.CreateTemplate) (site.TemplateID, error) {
	return create(ctx, a, "creating template", func() (site.TemplateID, error) { return a.service.CreateTemplate(ctx, request) })
}

func (a *Actions) DeleteTemplate(ctx context.Context, templateID site.TemplateID) error {
	return a.mutate(ctx, "deleting template", func() error { return a.service.DeleteTemplate(ctx, templateID) })
}
