// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/stencilcms/composer/lib/clock"
	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/version"
)

// MemoryConfig configures a Memory service. Zero values select the
// real clock and random UUIDs.
type MemoryConfig struct {
	Clock clock.Clock

	// NewID generates entity ids. Tests inject a counter.
	NewID func() string

	// Commit, when set, is called with every mutated graph before it
	// replaces the current one. A Commit error aborts the mutation and
	// is returned to the caller. FileService persists through it.
	Commit func(graph *site.Site) error
}

// Memory is a Service holding the site graph in memory. It enforces
// the service's integrity rules: references must resolve, an article
// has at most one page per locale, and link and workflow article lists
// mirror the articles that reference them.
//
// Mutations are copy-on-write: each clones the graph, edits the clone,
// and swaps it in, so graphs returned by LoadSite are never modified.
type Memory struct {
	mu     sync.RWMutex
	graph  *site.Site
	clock  clock.Clock
	newID  func() string
	commit func(graph *site.Site) error
}

var _ Service = (*Memory)(nil)

// NewMemory returns a Memory service seeded with graph, which may be
// nil for an empty site. The graph is cloned.
func NewMemory(graph *site.Site, config MemoryConfig) *Memory {
	if graph == nil {
		graph = site.New()
	} else {
		graph = graph.Clone()
		graph.ContentType = site.ContentOK
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.NewID == nil {
		config.NewID = uuid.NewString
	}
	return &Memory{
		graph:  graph,
		clock:  config.Clock,
		newID:  config.NewID,
		commit: config.Commit,
	}
}

// exclusive runs fn with the graph locked. A non-nil result replaces
// the graph without running Commit.
func (m *Memory) exclusive(fn func(current *site.Site) *site.Site) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if replacement := fn(m.graph); replacement != nil {
		replacement = replacement.Clone()
		replacement.ContentType = site.ContentOK
		m.graph = replacement
	}
}

// LoadSite returns a copy of the current graph.
func (m *Memory) LoadSite(ctx context.Context) (*site.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, Unavailable("loading site: %w", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.graph.Clone(), nil
}

// Version reports the build of this binary.
func (m *Memory) Version(ctx context.Context) (site.VersionInfo, error) {
	return site.VersionInfo{Version: version.Version, Built: version.Built()}, nil
}

// mutate runs edit against a private clone of the graph and installs
// the clone if edit and commit both succeed.
func (m *Memory) mutate(ctx context.Context, edit func(graph *site.Site) error) error {
	if err := ctx.Err(); err != nil {
		return Unavailable("%w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.graph.Clone()
	if err := edit(next); err != nil {
		return err
	}
	reindexReferences(next)
	if m.commit != nil {
		if err := m.commit(next); err != nil {
			return err
		}
	}
	m.graph = next
	return nil
}

func (m *Memory) CreateArticle(ctx context.Context, request site.CreateArticle) (site.ArticleID, error) {
	articleID := site.ArticleID(m.newID())
	err := m.mutate(ctx, func(graph *site.Site) error {
		name := strings.TrimSpace(request.Name)
		if name == "" {
			return Validation("article name is required")
		}
		if request.ParentID != "" {
			if _, exists := graph.Articles[request.ParentID]; !exists {
				return NotFound("parent article %s not found", request.ParentID)
			}
		}
		graph.Articles[articleID] = site.Article{ID: articleID, Body: site.ArticleBody{
			Name:     name,
			ParentID: request.ParentID,
			Order:    request.Order,
			DevMode:  request.DevMode,
		}}
		return nil
	})
	if err != nil {
		return "", err
	}
	return articleID, nil
}

func (m *Memory) UpdateArticle(ctx context.Context, mutator site.ArticleMutator) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		current, exists := graph.Articles[mutator.ArticleID]
		if !exists {
			return NotFound("article %s not found", mutator.ArticleID)
		}
		body := mutator.Body
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return Validation("article name is required")
		}
		if body.ParentID != "" {
			if _, exists := graph.Articles[body.ParentID]; !exists {
				return NotFound("parent article %s not found", body.ParentID)
			}
			if createsCycle(graph, mutator.ArticleID, body.ParentID) {
				return Conflict("moving article %s under %s would create a cycle", mutator.ArticleID, body.ParentID)
			}
		}
		// Dangling references the article already carries are kept;
		// only newly added ones must resolve.
		for _, linkID := range body.Links {
			if _, exists := graph.Links[linkID]; !exists && !slices.Contains(current.Body.Links, linkID) {
				return NotFound("link %s not found", linkID)
			}
		}
		for _, workflowID := range body.Workflows {
			if _, exists := graph.Workflows[workflowID]; !exists && !slices.Contains(current.Body.Workflows, workflowID) {
				return NotFound("workflow %s not found", workflowID)
			}
		}
		body.Links = uniqueSorted(body.Links)
		body.Workflows = uniqueSorted(body.Workflows)
		graph.Articles[mutator.ArticleID] = site.Article{ID: mutator.ArticleID, Body: body}
		return nil
	})
}

// DeleteArticle removes the article and its pages. Children move up to
// the deleted article's parent.
func (m *Memory) DeleteArticle(ctx context.Context, articleID site.ArticleID) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		article, exists := graph.Articles[articleID]
		if !exists {
			return NotFound("article %s not found", articleID)
		}
		delete(graph.Articles, articleID)
		for childID, child := range graph.Articles {
			if child.Body.ParentID == articleID {
				child.Body.ParentID = article.Body.ParentID
				graph.Articles[childID] = child
			}
		}
		for pageID, page := range graph.Pages {
			if page.Body.Article == articleID {
				delete(graph.Pages, pageID)
			}
		}
		return nil
	})
}

func (m *Memory) CreatePage(ctx context.Context, request site.CreatePage) (site.PageID, error) {
	pageID := site.PageID(m.newID())
	err := m.mutate(ctx, func(graph *site.Site) error {
		if _, exists := graph.Articles[request.ArticleID]; !exists {
			return NotFound("article %s not found", request.ArticleID)
		}
		if err := checkPageLocale(graph, request.ArticleID, request.Locale, ""); err != nil {
			return err
		}
		content := request.Content
		if request.TemplateID != "" {
			template, exists := graph.Templates[request.TemplateID]
			if !exists {
				return NotFound("template %s not found", request.TemplateID)
			}
			if content == "" {
				content = template.Body.Content
			}
		}
		graph.Pages[pageID] = site.Page{ID: pageID, Body: site.PageBody{
			Article: request.ArticleID,
			Locale:  request.Locale,
			Content: content,
			DevMode: request.DevMode,
		}}
		return nil
	})
	if err != nil {
		return "", err
	}
	return pageID, nil
}

func (m *Memory) UpdatePage(ctx context.Context, mutator site.PageMutator) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		page, exists := graph.Pages[mutator.PageID]
		if !exists {
			return NotFound("page %s not found", mutator.PageID)
		}
		if mutator.Locale != page.Body.Locale {
			if err := checkPageLocale(graph, page.Body.Article, mutator.Locale, mutator.PageID); err != nil {
				return err
			}
		}
		page.Body.Locale = mutator.Locale
		page.Body.Content = mutator.Content
		page.Body.DevMode = mutator.DevMode
		graph.Pages[mutator.PageID] = page
		return nil
	})
}

func (m *Memory) DeletePage(ctx context.Context, pageID site.PageID) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		if _, exists := graph.Pages[pageID]; !exists {
			return NotFound("page %s not found", pageID)
		}
		delete(graph.Pages, pageID)
		return nil
	})
}

// checkPageLocale verifies that locale exists and that no page of the
// article other than except already uses it.
func checkPageLocale(graph *site.Site, articleID site.ArticleID, locale site.LocaleID, except site.PageID) error {
	if locale == "" {
		return Validation("page locale is required")
	}
	if _, exists := graph.Locales[locale]; !exists {
		return NotFound("locale %s not found", locale)
	}
	for pageID, page := range graph.Pages {
		if pageID != except && page.Body.Article == articleID && page.Body.Locale == locale {
			return Conflict("article %s already has page %s in locale %s", articleID, pageID, locale)
		}
	}
	return nil
}

func (m *Memory) CreateLink(ctx context.Context, request site.CreateLink) (site.LinkID, error) {
	linkID := site.LinkID(m.newID())
	err := m.mutate(ctx, func(graph *site.Site) error {
		if strings.TrimSpace(request.Value) == "" {
			return Validation("link value is required")
		}
		if err := checkArticles(graph, request.Articles); err != nil {
			return err
		}
		graph.Links[linkID] = site.Link{ID: linkID, Body: site.LinkBody{
			Value:       request.Value,
			ContentType: request.ContentType,
			Labels:      request.Labels,
			DevMode:     request.DevMode,
		}}
		attachLink(graph, linkID, request.Articles)
		return nil
	})
	if err != nil {
		return "", err
	}
	return linkID, nil
}

// UpdateLink replaces the link body. Its Articles list is applied to
// the articles' link lists.
func (m *Memory) UpdateLink(ctx context.Context, mutator site.LinkMutator) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		if _, exists := graph.Links[mutator.LinkID]; !exists {
			return NotFound("link %s not found", mutator.LinkID)
		}
		if strings.TrimSpace(mutator.Body.Value) == "" {
			return Validation("link value is required")
		}
		if err := checkArticles(graph, mutator.Body.Articles); err != nil {
			return err
		}
		graph.Links[mutator.LinkID] = site.Link{ID: mutator.LinkID, Body: mutator.Body}
		attachLink(graph, mutator.LinkID, mutator.Body.Articles)
		return nil
	})
}

func (m *Memory) DeleteLink(ctx context.Context, linkID site.LinkID) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		if _, exists := graph.Links[linkID]; !exists {
			return NotFound("link %s not found", linkID)
		}
		delete(graph.Links, linkID)
		attachLink(graph, linkID, nil)
		return nil
	})
}

func (m *Memory) CreateWorkflow(ctx context.Context, request site.CreateWorkflow) (site.WorkflowID, error) {
	workflowID := site.WorkflowID(m.newID())
	err := m.mutate(ctx, func(graph *site.Site) error {
		if strings.TrimSpace(request.Value) == "" {
			return Validation("workflow name is required")
		}
		if err := checkArticles(graph, request.Articles); err != nil {
			return err
		}
		graph.Workflows[workflowID] = site.Workflow{ID: workflowID, Body: site.WorkflowBody{
			Value:   request.Value,
			Labels:  request.Labels,
			DevMode: request.DevMode,
		}}
		attachWorkflow(graph, workflowID, request.Articles)
		return nil
	})
	if err != nil {
		return "", err
	}
	return workflowID, nil
}

func (m *Memory) UpdateWorkflow(ctx context.Context, mutator site.WorkflowMutator) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		if _, exists := graph.Workflows[mutator.WorkflowID]; !exists {
			return NotFound("workflow %s not found", mutator.WorkflowID)
		}
		if strings.TrimSpace(mutator.Body.Value) == "" {
			return Validation("workflow name is required")
		}
		if err := checkArticles(graph, mutator.Body.Articles); err != nil {
			return err
		}
		graph.Workflows[mutator.WorkflowID] = site.Workflow{ID: mutator.WorkflowID, Body: mutator.Body}
		attachWorkflow(graph, mutator.WorkflowID, mutator.Body.Articles)
		return nil
	})
}

func (m *Memory) DeleteWorkflow(ctx context.Context, workflowID site.WorkflowID) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		if _, exists := graph.Workflows[workflowID]; !exists {
			return NotFound("workflow %s not found", workflowID)
		}
		delete(graph.Workflows, workflowID)
		attachWorkflow(graph, workflowID, nil)
		return nil
	})
}

func (m *Memory) CreateLocale(ctx context.Context, request site.CreateLocale) (site.LocaleID, error) {
	localeID := site.LocaleID(m.newID())
	err := m.mutate(ctx, func(graph *site.Site) error {
		if strings.TrimSpace(request.Value) == "" {
			return Validation("locale value is required")
		}
		for _, existing := range graph.Locales {
			if strings.EqualFold(existing.Body.Value, request.Value) {
				return Conflict("locale %q already exists as %s", request.Value, existing.ID)
			}
		}
		graph.Locales[localeID] = site.Locale{ID: localeID, Body: site.LocaleBody{
			Value:   request.Value,
			Enabled: request.Enabled,
		}}
		return nil
	})
	if err != nil {
		return "", err
	}
	return localeID, nil
}

func (m *Memory) UpdateLocale(ctx context.Context, mutator site.LocaleMutator) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		if _, exists := graph.Locales[mutator.LocaleID]; !exists {
			return NotFound("locale %s not found", mutator.LocaleID)
		}
		if strings.TrimSpace(mutator.Body.Value) == "" {
			return Validation("locale value is required")
		}
		graph.Locales[mutator.LocaleID] = site.Locale{ID: mutator.LocaleID, Body: mutator.Body}
		return nil
	})
}

// DeleteLocale refuses while any page is written in the locale.
func (m *Memory) DeleteLocale(ctx context.Context, localeID site.LocaleID) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		if _, exists := graph.Locales[localeID]; !exists {
			return NotFound("locale %s not found", localeID)
		}
		for pageID, page := range graph.Pages {
			if page.Body.Locale == localeID {
				return Conflict("locale %s is used by page %s", localeID, pageID)
			}
		}
		delete(graph.Locales, localeID)
		return nil
	})
}

func (m *Memory) CreateRelease(ctx context.Context, request site.CreateRelease) (site.ReleaseID, error) {
	releaseID := site.ReleaseID(m.newID())
	err := m.mutate(ctx, func(graph *site.Site) error {
		if strings.TrimSpace(request.Name) == "" {
			return Validation("release name is required")
		}
		graph.Releases[releaseID] = site.Release{ID: releaseID, Body: site.ReleaseBody{
			Name:    request.Name,
			Note:    request.Note,
			Created: m.clock.Now().UTC(),
		}}
		return nil
	})
	if err != nil {
		return "", err
	}
	return releaseID, nil
}

func (m *Memory) DeleteRelease(ctx context.Context, releaseID site.ReleaseID) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		if _, exists := graph.Releases[releaseID]; !exists {
			return NotFound("release %s not found", releaseID)
		}
		delete(graph.Releases, releaseID)
		return nil
	})
}

func (m *Memory) CreateTemplate(ctx context.Context, request site.CreateTemplate) (site.TemplateID, error) {
	templateID := site.TemplateID(m.newID())
	err := m.mutate(ctx, func(graph *site.Site) error {
		if strings.TrimSpace(request.Name) == "" {
			return Validation("template name is required")
		}
		graph.Templates[templateID] = site.Template{ID: templateID, Body: site.TemplateBody{
			Name:        request.Name,
			Description: request.Description,
			Content:     request.Content,
			Created:     m.clock.Now().UTC(),
		}}
		return nil
	})
	if err != nil {
		return "", err
	}
	return templateID, nil
}

func (m *Memory) DeleteTemplate(ctx context.Context, templateID site.TemplateID) error {
	return m.mutate(ctx, func(graph *site.Site) error {
		if _, exists := graph.Templates[templateID]; !exists {
			return NotFound("template %s not found", templateID)
		}
		delete(graph.Templates, templateID)
		return nil
	})
}

// createsCycle reports whether making parentID the parent of articleID
// would put articleID among its own ancestors.
func createsCycle(graph *site.Site, articleID, parentID site.ArticleID) bool {
	seen := make(map[site.ArticleID]bool)
	for current := parentID; current != ""; current = graph.Articles[current].Body.ParentID {
		if current == articleID || seen[current] {
			return true
		}
		seen[current] = true
	}
	return false
}

func checkArticles(graph *site.Site, articles []site.ArticleID) error {
	for _, articleID := range articles {
		if _, exists := graph.Articles[articleID]; !exists {
			return NotFound("article %s not found", articleID)
		}
	}
	return nil
}

// attachLink makes exactly the given articles reference linkID.
func attachLink(graph *site.Site, linkID site.LinkID, articles []site.ArticleID) {
	for articleID, article := range graph.Articles {
		want := slices.Contains(articles, articleID)
		has := slices.Contains(article.Body.Links, linkID)
		if want == has {
			continue
		}
		if want {
			article.Body.Links = uniqueSorted(append(slices.Clone(article.Body.Links), linkID))
		} else {
			article.Body.Links = slices.DeleteFunc(slices.Clone(article.Body.Links), func(id site.LinkID) bool { return id == linkID })
		}
		graph.Articles[articleID] = article
	}
}

// attachWorkflow makes exactly the given articles reference workflowID.
func attachWorkflow(graph *site.Site, workflowID site.WorkflowID, articles []site.ArticleID) {
	for articleID, article := range graph.Articles {
		want := slices.Contains(articles, articleID)
		has := slices.Contains(article.Body.Workflows, workflowID)
		if want == has {
			continue
		}
		if want {
			article.Body.Workflows = uniqueSorted(append(slices.Clone(article.Body.Workflows), workflowID))
		} else {
			article.Body.Workflows = slices.DeleteFunc(slices.Clone(article.Body.Workflows), func(id site.WorkflowID) bool { return id == workflowID })
		}
		graph.Articles[articleID] = article
	}
}

// reindexReferences recomputes the Articles list of every link and
// workflow from the article side, which is authoritative.
func reindexReferences(graph *site.Site) {
	linkArticles := make(map[site.LinkID][]site.ArticleID)
	workflowArticles := make(map[site.WorkflowID][]site.ArticleID)
	for articleID, article := range graph.Articles {
		for _, linkID := range article.Body.Links {
			linkArticles[linkID] = append(linkArticles[linkID], articleID)
		}
		for _, workflowID := range article.Body.Workflows {
			workflowArticles[workflowID] = append(workflowArticles[workflowID], articleID)
		}
	}
	for linkID, link := range graph.Links {
		articles := uniqueSorted(linkArticles[linkID])
		if !slices.Equal(articles, link.Body.Articles) {
			link.Body.Articles = articles
			graph.Links[linkID] = link
		}
	}
	for workflowID, workflow := range graph.Workflows {
		articles := uniqueSorted(workflowArticles[workflowID])
		if !slices.Equal(articles, workflow.Body.Articles) {
			workflow.Body.Articles = articles
			graph.Workflows[workflowID] = workflow
		}
	}
}

func uniqueSorted[S ~[]E, E ~string](ids S) S {
	if len(ids) == 0 {
		return nil
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
