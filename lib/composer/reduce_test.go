// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composer

import (
	"errors"
	"testing"

	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/session"
)

// testSite has a root article "home" with pages in en and de and a
// child "contact" with no pages.
func testSite() *site.Site {
	graph := site.New()
	graph.Locales["en"] = site.Locale{ID: "en", Body: site.LocaleBody{Value: "English", Enabled: true}}
	graph.Locales["de"] = site.Locale{ID: "de", Body: site.LocaleBody{Value: "Deutsch", Enabled: true}}
	graph.Locales["fr"] = site.Locale{ID: "fr", Body: site.LocaleBody{Value: "Français", Enabled: true}}
	graph.Articles["home"] = site.Article{ID: "home", Body: site.ArticleBody{Name: "Home"}}
	graph.Articles["contact"] = site.Article{ID: "contact", Body: site.ArticleBody{Name: "Contact", ParentID: "home"}}
	graph.Pages["home-en"] = site.Page{ID: "home-en", Body: site.PageBody{Article: "home", Locale: "en", Content: "# Welcome"}}
	graph.Pages["home-de"] = site.Page{ID: "home-de", Body: site.PageBody{Article: "home", Locale: "de", Content: "# Willkommen"}}
	graph.Links["phone"] = site.Link{ID: "phone", Body: site.LinkBody{Value: "tel:+4912345", ContentType: "phone"}}
	graph.Workflows["review"] = site.Workflow{ID: "review", Body: site.WorkflowBody{Value: "Review"}}
	return graph
}

func TestReduceSiteLoaded(t *testing.T) {
	empty := session.New()
	next := Reduce(empty, SiteLoaded{Sequence: 1, Site: testSite()})
	if next == empty {
		t.Fatal("SiteLoaded did not change the session")
	}
	if next.Status() != session.StatusLoaded {
		t.Errorf("status = %v, want loaded", next.Status())
	}
	if next.LoadSequence() != 1 {
		t.Errorf("LoadSequence = %d, want 1", next.LoadSequence())
	}
	if empty.Status() != session.StatusEmpty {
		t.Error("Reduce modified its input")
	}
}

func TestReduceDiscardsStaleLoad(t *testing.T) {
	newer := testSite()
	newer.Articles["news"] = site.Article{ID: "news", Body: site.ArticleBody{Name: "News"}}

	current := Reduce(session.New(), SiteLoaded{Sequence: 5, Site: newer})
	for _, sequence := range []uint64{4, 5} {
		if next := Reduce(current, SiteLoaded{Sequence: sequence, Site: testSite()}); next != current {
			t.Errorf("SiteLoaded with sequence %d replaced a session loaded at 5", sequence)
		}
	}
	if _, exists := current.ArticleView("news"); !exists {
		t.Error("newer graph lost")
	}
}

func TestReduceSiteUnavailable(t *testing.T) {
	failure := errors.New("dial: connection refused")

	empty := session.New()
	next := Reduce(empty, SiteUnavailable{Sequence: 1, Err: failure})
	if next.Status() != session.StatusNoConnection {
		t.Errorf("status = %v, want no_connection", next.Status())
	}
	if next.LoadSequence() != 0 {
		t.Errorf("failed load advanced the sequence to %d", next.LoadSequence())
	}

	loaded := Reduce(empty, SiteLoaded{Sequence: 1, Site: testSite()})
	if got := Reduce(loaded, SiteUnavailable{Sequence: 2, Err: failure}); got != loaded {
		t.Error("SiteUnavailable changed a loaded session")
	}
}

func TestReduceNoConnectionSiteKeepsLoadedSession(t *testing.T) {
	loaded := Reduce(session.New(), SiteLoaded{Sequence: 1, Site: testSite()})
	if got := Reduce(loaded, SiteLoaded{Sequence: 2, Site: site.NoConnection()}); got != loaded {
		t.Error("NO_CONNECTION graph replaced a loaded session")
	}
}

func TestReduceEditActions(t *testing.T) {
	loaded := Reduce(session.New(), SiteLoaded{Sequence: 1, Site: testSite()})

	opened := Reduce(loaded, PageOpened{PageID: "home-en"})
	if _, tracked := opened.Page("home-en"); !tracked {
		t.Fatal("PageOpened did not track the page")
	}

	edited := Reduce(opened, PageValueChanged{PageID: "home-en", Value: "# Hello"})
	if edited.IsArticleSaved("home") {
		t.Error("article saved after edit")
	}

	discarded := Reduce(edited, PagesDiscarded{PageIDs: []site.PageID{"home-en"}})
	if !discarded.IsArticleSaved("home") {
		t.Error("article unsaved after discard")
	}
	if _, tracked := discarded.Page("home-en"); tracked {
		t.Error("page still tracked after discard")
	}
}

func TestReducePageSavedKeepsNewerEdit(t *testing.T) {
	loaded := Reduce(session.New(), SiteLoaded{Sequence: 1, Site: testSite()})
	edited := Reduce(loaded, PageValueChanged{PageID: "home-en", Value: "first draft"})

	retyped := Reduce(edited, PageValueChanged{PageID: "home-en", Value: "first draft, longer"})
	if after := Reduce(retyped, PageSaved{PageID: "home-en", Value: "first draft"}); after != retyped {
		t.Error("PageSaved with a stale value changed the session")
	}

	saved := Reduce(edited, PageSaved{PageID: "home-en", Value: "first draft"})
	if _, tracked := saved.Page("home-en"); tracked {
		t.Error("page still tracked after saving its current value")
	}
	if untracked := Reduce(saved, PageSaved{PageID: "home-en", Value: "first draft"}); untracked != saved {
		t.Error("PageSaved for an untracked page changed the session")
	}
}

func TestReduceFilterAndDevMode(t *testing.T) {
	loaded := Reduce(session.New(), SiteLoaded{Sequence: 1, Site: testSite()})

	filtered := Reduce(loaded, LocaleFilterChanged{Locale: "de"})
	if filtered.Filter().Locale != "de" {
		t.Errorf("filter = %q, want de", filtered.Filter().Locale)
	}
	if cleared := Reduce(filtered, LocaleFilterChanged{}); cleared.Filter().Active() {
		t.Error("empty locale did not clear the filter")
	}

	dev := Reduce(loaded, DevModeChanged{Enabled: true})
	if !dev.DevMode() {
		t.Error("dev mode not enabled")
	}
	if same := Reduce(dev, DevModeChanged{Enabled: true}); same != dev {
		t.Error("repeated DevModeChanged changed the session")
	}
}

func TestReloadPreservesEditsThroughReduce(t *testing.T) {
	current := Reduce(session.New(), SiteLoaded{Sequence: 1, Site: testSite()})
	current = Reduce(current, PageValueChanged{PageID: "home-en", Value: "# Draft"})

	changed := testSite()
	page := changed.Pages["home-en"]
	page.Body.Content = "# Welcome back"
	changed.Pages["home-en"] = page

	current = Reduce(current, SiteLoaded{Sequence: 2, Site: changed})
	update, tracked := current.Page("home-en")
	if !tracked {
		t.Fatal("edit dropped on reload")
	}
	if update.Value != "# Draft" {
		t.Errorf("value = %q, want the draft", update.Value)
	}
	if update.Origin.Body.Content != "# Welcome back" {
		t.Errorf("origin = %q, want the reloaded content", update.Origin.Body.Content)
	}
	if update.Saved {
		t.Error("draft marked saved")
	}
}
