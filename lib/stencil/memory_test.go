// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/stencilcms/composer/lib/clock"
	"github.com/stencilcms/composer/lib/schema/site"
)

var testEpoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sequentialIDs returns an id generator yielding prefix-1, prefix-2...
func sequentialIDs(prefix string) func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("%s-%d", prefix, next)
	}
}

// fixtureSite is a small site: home with child contact, two locales,
// one page per locale on home, one link on contact.
func fixtureSite() *site.Site {
	graph := site.New()
	graph.Locales["en"] = site.Locale{ID: "en", Body: site.LocaleBody{Value: "English", Enabled: true}}
	graph.Locales["de"] = site.Locale{ID: "de", Body: site.LocaleBody{Value: "Deutsch", Enabled: true}}
	graph.Articles["home"] = site.Article{ID: "home", Body: site.ArticleBody{Name: "Home"}}
	graph.Articles["contact"] = site.Article{ID: "contact", Body: site.ArticleBody{
		Name: "Contact", ParentID: "home", Order: 1, Links: []site.LinkID{"phone"},
	}}
	graph.Pages["home-en"] = site.Page{ID: "home-en", Body: site.PageBody{Article: "home", Locale: "en", Content: "# Welcome"}}
	graph.Pages["home-de"] = site.Page{ID: "home-de", Body: site.PageBody{Article: "home", Locale: "de", Content: "# Willkommen"}}
	graph.Links["phone"] = site.Link{ID: "phone", Body: site.LinkBody{
		Value: "tel:+4912345", ContentType: "phone", Articles: []site.ArticleID{"contact"},
	}}
	graph.Templates["faq"] = site.Template{ID: "faq", Body: site.TemplateBody{Name: "FAQ", Content: "## Questions"}}
	return graph
}

func newTestMemory(t *testing.T) *Memory {
	t.Helper()
	return NewMemory(fixtureSite(), MemoryConfig{Clock: clock.Fake(testEpoch), NewID: sequentialIDs("new")})
}

func requireCategory(t *testing.T, err error, want ErrorCategory) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want category %s", want)
	}
	if got := CategoryOf(err); got != want {
		t.Fatalf("CategoryOf(%v) = %s, want %s", err, got, want)
	}
}

func mustLoad(t *testing.T, service Service) *site.Site {
	t.Helper()
	graph, err := service.LoadSite(context.Background())
	if err != nil {
		t.Fatalf("LoadSite: %v", err)
	}
	return graph
}

func TestMemoryLoadSiteReturnsCopy(t *testing.T) {
	memory := newTestMemory(t)
	first := mustLoad(t, memory)
	delete(first.Articles, "home")

	second := mustLoad(t, memory)
	if _, exists := second.Articles["home"]; !exists {
		t.Fatal("modifying a loaded graph changed the service state")
	}
}

func TestMemoryCreateArticle(t *testing.T) {
	memory := newTestMemory(t)
	ctx := context.Background()

	articleID, err := memory.CreateArticle(ctx, site.CreateArticle{ParentID: "home", Name: "  About  ", Order: 2})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if articleID != "new-1" {
		t.Errorf("id = %s, want new-1", articleID)
	}
	article := mustLoad(t, memory).Articles[articleID]
	if article.Body.Name != "About" || article.Body.ParentID != "home" || article.Body.Order != 2 {
		t.Errorf("article body = %+v", article.Body)
	}

	_, err = memory.CreateArticle(ctx, site.CreateArticle{Name: " "})
	requireCategory(t, err, CategoryValidation)

	_, err = memory.CreateArticle(ctx, site.CreateArticle{Name: "Lost", ParentID: "nowhere"})
	requireCategory(t, err, CategoryNotFound)
}

func TestMemoryUpdateArticleRejectsCycle(t *testing.T) {
	memory := newTestMemory(t)
	err := memory.UpdateArticle(context.Background(), site.ArticleMutator{
		ArticleID: "home",
		Body:      site.ArticleBody{Name: "Home", ParentID: "contact"},
	})
	requireCategory(t, err, CategoryConflict)

	if parent := mustLoad(t, memory).Articles["home"].Body.ParentID; parent != "" {
		t.Errorf("failed update changed parent to %q", parent)
	}
}

func TestMemoryUpdateArticleMirrorsLinks(t *testing.T) {
	memory := newTestMemory(t)
	ctx := context.Background()

	err := memory.UpdateArticle(ctx, site.ArticleMutator{
		ArticleID: "home",
		Body:      site.ArticleBody{Name: "Home", Links: []site.LinkID{"phone", "phone"}},
	})
	if err != nil {
		t.Fatalf("UpdateArticle: %v", err)
	}
	graph := mustLoad(t, memory)
	if got := graph.Links["phone"].Body.Articles; !slices.Equal(got, []site.ArticleID{"contact", "home"}) {
		t.Errorf("phone articles = %v, want [contact home]", got)
	}
	if got := graph.Articles["home"].Body.Links; !slices.Equal(got, []site.LinkID{"phone"}) {
		t.Errorf("home links = %v, want duplicates removed", got)
	}

	err = memory.UpdateArticle(ctx, site.ArticleMutator{
		ArticleID: "home",
		Body:      site.ArticleBody{Name: "Home", Links: []site.LinkID{"ghost"}},
	})
	requireCategory(t, err, CategoryNotFound)
}

func TestMemoryDeleteArticleReparentsChildren(t *testing.T) {
	memory := newTestMemory(t)
	ctx := context.Background()

	grandchild, err := memory.CreateArticle(ctx, site.CreateArticle{ParentID: "contact", Name: "Map"})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if err := memory.DeleteArticle(ctx, "contact"); err != nil {
		t.Fatalf("DeleteArticle: %v", err)
	}

	graph := mustLoad(t, memory)
	if parent := graph.Articles[grandchild].Body.ParentID; parent != "home" {
		t.Errorf("grandchild parent = %q, want home", parent)
	}
	if articles := graph.Links["phone"].Body.Articles; len(articles) != 0 {
		t.Errorf("phone still references %v", articles)
	}

	if err := memory.DeleteArticle(ctx, "home"); err != nil {
		t.Fatalf("DeleteArticle(home): %v", err)
	}
	graph = mustLoad(t, memory)
	if len(graph.Pages) != 0 {
		t.Errorf("pages of deleted article survived: %v", graph.Pages)
	}

	requireCategory(t, memory.DeleteArticle(ctx, "home"), CategoryNotFound)
}

func TestMemoryCreatePage(t *testing.T) {
	memory := newTestMemory(t)
	ctx := context.Background()

	_, err := memory.CreatePage(ctx, site.CreatePage{ArticleID: "home", Locale: "en"})
	requireCategory(t, err, CategoryConflict)

	_, err = memory.CreatePage(ctx, site.CreatePage{ArticleID: "contact", Locale: "fr"})
	requireCategory(t, err, CategoryNotFound)

	_, err = memory.CreatePage(ctx, site.CreatePage{ArticleID: "contact"})
	requireCategory(t, err, CategoryValidation)

	pageID, err := memory.CreatePage(ctx, site.CreatePage{ArticleID: "contact", Locale: "en", TemplateID: "faq"})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	page := mustLoad(t, memory).Pages[pageID]
	if page.Body.Content != "## Questions" {
		t.Errorf("content = %q, want template content", page.Body.Content)
	}

	pageID, err = memory.CreatePage(ctx, site.CreatePage{ArticleID: "contact", Locale: "de", TemplateID: "faq", Content: "Eigener Text"})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if content := mustLoad(t, memory).Pages[pageID].Body.Content; content != "Eigener Text" {
		t.Errorf("explicit content was replaced by template: %q", content)
	}
}

func TestMemoryUpdatePageLocale(t *testing.T) {
	memory := newTestMemory(t)
	ctx := context.Background()

	err := memory.UpdatePage(ctx, site.PageMutator{PageID: "home-de", Locale: "en", Content: "x"})
	requireCategory(t, err, CategoryConflict)

	if err := memory.UpdatePage(ctx, site.PageMutator{PageID: "home-de", Locale: "de", Content: "Hallo", DevMode: true}); err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}
	page := mustLoad(t, memory).Pages["home-de"]
	if page.Body.Content != "Hallo" || !page.Body.DevMode || page.Body.Article != "home" {
		t.Errorf("page body = %+v", page.Body)
	}

	requireCategory(t, memory.UpdatePage(ctx, site.PageMutator{PageID: "missing", Locale: "en"}), CategoryNotFound)
}

func TestMemoryLinkArticlesAttach(t *testing.T) {
	memory := newTestMemory(t)
	ctx := context.Background()

	linkID, err := memory.CreateLink(ctx, site.CreateLink{
		Value: "https://example.com", ContentType: "external", Articles: []site.ArticleID{"home"},
	})
	if err != nil {
		t.Fatalf("CreateLink: %v", err)
	}
	graph := mustLoad(t, memory)
	if !slices.Contains(graph.Articles["home"].Body.Links, linkID) {
		t.Errorf("home links = %v, want %s", graph.Articles["home"].Body.Links, linkID)
	}

	body := graph.Links[linkID].Body
	body.Articles = []site.ArticleID{"contact"}
	if err := memory.UpdateLink(ctx, site.LinkMutator{LinkID: linkID, Body: body}); err != nil {
		t.Fatalf("UpdateLink: %v", err)
	}
	graph = mustLoad(t, memory)
	if slices.Contains(graph.Articles["home"].Body.Links, linkID) {
		t.Error("home still references the link after it was detached")
	}
	if !slices.Contains(graph.Articles["contact"].Body.Links, linkID) {
		t.Error("contact does not reference the link")
	}

	if err := memory.DeleteLink(ctx, linkID); err != nil {
		t.Fatalf("DeleteLink: %v", err)
	}
	if slices.Contains(mustLoad(t, memory).Articles["contact"].Body.Links, linkID) {
		t.Error("deleted link still referenced")
	}

	_, err = memory.CreateLink(ctx, site.CreateLink{Value: ""})
	requireCategory(t, err, CategoryValidation)
}

func TestMemoryWorkflows(t *testing.T) {
	memory := newTestMemory(t)
	ctx := context.Background()

	workflowID, err := memory.CreateWorkflow(ctx, site.CreateWorkflow{Value: "Review", Articles: []site.ArticleID{"contact"}})
	if err != nil {
		t.Fatalf("CreateWorkflow: %v", err)
	}
	graph := mustLoad(t, memory)
	if got := graph.Workflows[workflowID].Body.Articles; !slices.Equal(got, []site.ArticleID{"contact"}) {
		t.Errorf("workflow articles = %v", got)
	}

	_, err = memory.CreateWorkflow(ctx, site.CreateWorkflow{Value: "Ghost", Articles: []site.ArticleID{"nowhere"}})
	requireCategory(t, err, CategoryNotFound)

	if err := memory.DeleteWorkflow(ctx, workflowID); err != nil {
		t.Fatalf("DeleteWorkflow: %v", err)
	}
	if workflows := mustLoad(t, memory).Articles["contact"].Body.Workflows; len(workflows) != 0 {
		t.Errorf("contact workflows = %v after delete", workflows)
	}
}

func TestMemoryDeleteLocaleInUse(t *testing.T) {
	memory := newTestMemory(t)
	ctx := context.Background()

	requireCategory(t, memory.DeleteLocale(ctx, "en"), CategoryConflict)

	localeID, err := memory.CreateLocale(ctx, site.CreateLocale{Value: "Français"})
	if err != nil {
		t.Fatalf("CreateLocale: %v", err)
	}
	_, err = memory.CreateLocale(ctx, site.CreateLocale{Value: "français"})
	requireCategory(t, err, CategoryConflict)

	if err := memory.DeleteLocale(ctx, localeID); err != nil {
		t.Fatalf("DeleteLocale: %v", err)
	}
}

func TestMemoryReleaseStampsClock(t *testing.T) {
	fake := clock.Fake(testEpoch)
	memory := NewMemory(nil, MemoryConfig{Clock: fake, NewID: sequentialIDs("r")})
	ctx := context.Background()

	fake.Advance(time.Hour)
	releaseID, err := memory.CreateRelease(ctx, site.CreateRelease{Name: "Spring"})
	if err != nil {
		t.Fatalf("CreateRelease: %v", err)
	}
	if created := mustLoad(t, memory).Releases[releaseID].Body.Created; !created.Equal(testEpoch.Add(time.Hour)) {
		t.Errorf("created = %v, want %v", created, testEpoch.Add(time.Hour))
	}
	if err := memory.DeleteRelease(ctx, releaseID); err != nil {
		t.Fatalf("DeleteRelease: %v", err)
	}
	requireCategory(t, memory.DeleteRelease(ctx, releaseID), CategoryNotFound)
}

func TestMemoryCommitFailureAborts(t *testing.T) {
	commitErr := errors.New("disk full")
	memory := NewMemory(fixtureSite(), MemoryConfig{
		NewID:  sequentialIDs("x"),
		Commit: func(*site.Site) error { return commitErr },
	})

	_, err := memory.CreateTemplate(context.Background(), site.CreateTemplate{Name: "Landing"})
	if !errors.Is(err, commitErr) {
		t.Fatalf("CreateTemplate error = %v, want %v", err, commitErr)
	}
	if templates := mustLoad(t, memory).Templates; len(templates) != 1 {
		t.Errorf("templates = %d after failed commit, want 1", len(templates))
	}
}

func TestMemoryCancelledContext(t *testing.T) {
	memory := newTestMemory(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := memory.LoadSite(ctx)
	requireCategory(t, err, CategoryUnavailable)
	requireCategory(t, memory.DeletePage(ctx, "home-en"), CategoryUnavailable)
}
