// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composer

import (
	"testing"

	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/session"
)

func TestHandleInTabAddsTab(t *testing.T) {
	tabs := &Tabs{}
	navigator := NewNavigator(tabs)
	home := site.Article{ID: "home", Body: site.ArticleBody{Name: "Home"}}

	navigator.HandleInTab(home, session.NavArticlePages, "en", false)

	tab, exists := navigator.FindTab("home")
	if !exists {
		t.Fatal("tab not added")
	}
	if tab.Label != "Home" || !tab.TrackUnsaved {
		t.Errorf("tab = %+v", tab)
	}
	want := session.Nav{Type: session.NavArticlePages, Value: "en"}
	if tab.Data.Nav != want {
		t.Errorf("nav = %+v, want %+v", tab.Data.Nav, want)
	}
}

func TestHandleInTabUpdatesExistingTab(t *testing.T) {
	tabs := &Tabs{}
	navigator := NewNavigator(tabs)
	home := site.Article{ID: "home", Body: site.ArticleBody{Name: "Home"}}
	contact := site.Article{ID: "contact", Body: site.ArticleBody{Name: "Contact"}}

	navigator.HandleInTab(home, session.NavArticlePages, "en", false)
	navigator.HandleInTab(contact, session.NavArticleLinks, "", false)
	navigator.HandleInTab(home, session.NavArticlePages, "de", true)

	if count := len(tabs.All()); count != 2 {
		t.Fatalf("tab count = %d, want 2", count)
	}
	active, _ := tabs.Active()
	if active.ID != "home" {
		t.Errorf("active tab = %s, want home", active.ID)
	}
	// The nav is replaced, not merged: the primary locale is cleared.
	want := session.Nav{Type: session.NavArticlePages, Value2: "de"}
	if active.Data.Nav != want {
		t.Errorf("nav = %+v, want %+v", active.Data.Nav, want)
	}

	linkTab, _ := tabs.FindTab("contact")
	if linkTab.TrackUnsaved {
		t.Error("links tab tracks unsaved pages")
	}
}

func TestTabsCloseAndCycle(t *testing.T) {
	tabs := &Tabs{}
	for _, id := range []site.ArticleID{"a", "b", "c"} {
		tabs.AddTab(Tab{ID: id})
	}

	tabs.Cycle(1)
	if active, _ := tabs.Active(); active.ID != "a" {
		t.Errorf("after wrap forward active = %s, want a", active.ID)
	}
	tabs.Cycle(-1)
	if active, _ := tabs.Active(); active.ID != "c" {
		t.Errorf("after wrap back active = %s, want c", active.ID)
	}

	tabs.Close("c")
	if active, _ := tabs.Active(); active.ID != "b" {
		t.Errorf("after close active = %s, want b", active.ID)
	}

	tabs.Retain(func(id site.ArticleID) bool { return id != "a" })
	all := tabs.All()
	if len(all) != 1 || all[0].ID != "b" {
		t.Errorf("after retain tabs = %+v", all)
	}

	tabs.Close("b")
	if _, exists := tabs.Active(); exists {
		t.Error("active tab reported with no tabs open")
	}
}
