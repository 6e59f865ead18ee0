// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composer

import (
	"slices"

	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/session"
)

// Tab is one open article tab.
type Tab struct {
	ID    site.ArticleID
	Label string
	Data  session.TabData

	// TrackUnsaved marks tabs whose label carries an unsaved
	// indicator. Set for page tabs.
	TrackUnsaved bool
}

// TabLayout is the tab strip the navigator drives. The composer does
// not own tabs; it only asks the layout to find, update, or add them.
type TabLayout interface {
	FindTab(id site.ArticleID) (Tab, bool)
	UpdateTabData(id site.ArticleID, update func(session.TabData) session.TabData)
	AddTab(tab Tab)
}

// Navigator opens articles in tabs.
type Navigator struct {
	layout TabLayout
}

// NewNavigator returns a navigator over layout.
func NewNavigator(layout TabLayout) *Navigator {
	return &Navigator{layout: layout}
}

// HandleInTab shows article with the given sub-view. The locale goes
// into Nav.Value, or into Nav.Value2 when secondary is set. If the
// article already has a tab its nav is replaced; otherwise a new tab
// is added.
func (navigator *Navigator) HandleInTab(article site.Article, navType session.NavType, locale site.LocaleID, secondary bool) {
	nav := session.Nav{Type: navType}
	if secondary {
		nav.Value2 = locale
	} else {
		nav.Value = locale
	}

	if _, exists := navigator.layout.FindTab(article.ID); exists {
		navigator.layout.UpdateTabData(article.ID, func(data session.TabData) session.TabData {
			return data.WithNav(nav)
		})
		return
	}
	navigator.layout.AddTab(Tab{
		ID:           article.ID,
		Label:        article.Body.Name,
		Data:         session.TabData{Nav: nav},
		TrackUnsaved: navType == session.NavArticlePages,
	})
}

// FindTab returns the article's tab, if one is open.
func (navigator *Navigator) FindTab(articleID site.ArticleID) (Tab, bool) {
	return navigator.layout.FindTab(articleID)
}

// Tabs is an ordered TabLayout with one active tab. It is not safe for
// concurrent use; the UI owns it.
type Tabs struct {
	tabs   []Tab
	active int
}

// FindTab returns the tab for id.
func (tabs *Tabs) FindTab(id site.ArticleID) (Tab, bool) {
	index := tabs.index(id)
	if index < 0 {
		return Tab{}, false
	}
	return tabs.tabs[index], true
}

// UpdateTabData replaces the data of id's tab and activates it.
func (tabs *Tabs) UpdateTabData(id site.ArticleID, update func(session.TabData) session.TabData) {
	index := tabs.index(id)
	if index < 0 {
		return
	}
	tabs.tabs[index].Data = update(tabs.tabs[index].Data)
	tabs.active = index
}

// AddTab appends tab and activates it. A tab with the same id is
// replaced in place.
func (tabs *Tabs) AddTab(tab Tab) {
	if index := tabs.index(tab.ID); index >= 0 {
		tabs.tabs[index] = tab
		tabs.active = index
		return
	}
	tabs.tabs = append(tabs.tabs, tab)
	tabs.active = len(tabs.tabs) - 1
}

// Close removes id's tab. The tab before it becomes active.
func (tabs *Tabs) Close(id site.ArticleID) {
	index := tabs.index(id)
	if index < 0 {
		return
	}
	tabs.tabs = slices.Delete(tabs.tabs, index, index+1)
	if tabs.active >= index && tabs.active > 0 {
		tabs.active--
	}
}

// Retain closes every tab whose article is not accepted by keep, e.g.
// after the article was deleted.
func (tabs *Tabs) Retain(keep func(site.ArticleID) bool) {
	for _, tab := range slices.Clone(tabs.tabs) {
		if !keep(tab.ID) {
			tabs.Close(tab.ID)
		}
	}
}

// Active returns the active tab.
func (tabs *Tabs) Active() (Tab, bool) {
	if len(tabs.tabs) == 0 {
		return Tab{}, false
	}
	return tabs.tabs[tabs.active], true
}

// Cycle moves the active tab by delta, wrapping around.
func (tabs *Tabs) Cycle(delta int) {
	count := len(tabs.tabs)
	if count == 0 {
		return
	}
	tabs.active = ((tabs.active+delta)%count + count) % count
}

// All returns the open tabs in order.
func (tabs *Tabs) All() []Tab {
	return slices.Clone(tabs.tabs)
}

func (tabs *Tabs) index(id site.ArticleID) int {
	return slices.IndexFunc(tabs.tabs, func(tab Tab) bool { return tab.ID == id })
}
