// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"maps"

	"github.com/stencilcms/composer/lib/schema/site"
)

// PageUpdate is the local draft of one page. Origin is the last server
// copy the draft was compared against; Value is the edited content.
// Saved is true exactly when Value equals Origin's content.
type PageUpdate struct {
	Origin site.Page
	Value  string
	Saved  bool
}

func newPageUpdate(origin site.Page) PageUpdate {
	return PageUpdate{Origin: origin, Value: origin.Body.Content, Saved: true}
}

// WithValue returns the update with a new edited value.
func (update PageUpdate) WithValue(value string) PageUpdate {
	update.Value = value
	update.Saved = value == update.Origin.Body.Content
	return update
}

// WithOrigin returns the update rebased onto a newer server copy. The
// edited value is kept; Saved is recomputed against the new content.
func (update PageUpdate) WithOrigin(origin site.Page) PageUpdate {
	update.Origin = origin
	update.Saved = update.Value == origin.Body.Content
	return update
}

// Article returns the id of the article that owns the page.
func (update PageUpdate) Article() site.ArticleID {
	return update.Origin.Body.Article
}

// edits is the copy-on-write edit map plus a count of unsaved pages per
// article. Neither map is modified once an edits value is installed in
// a Session; every change clones first.
type edits struct {
	pages   map[site.PageID]PageUpdate
	unsaved map[site.ArticleID]int
}

func (tracker edits) clone() edits {
	return edits{
		pages:   maps.Clone(tracker.pages),
		unsaved: maps.Clone(tracker.unsaved),
	}
}

// put installs update for pageID, adjusting the unsaved count of the
// owning article. The receiver must already be a private clone.
func (tracker *edits) put(pageID site.PageID, update PageUpdate) {
	if tracker.pages == nil {
		tracker.pages = make(map[site.PageID]PageUpdate)
	}
	if tracker.unsaved == nil {
		tracker.unsaved = make(map[site.ArticleID]int)
	}
	if previous, tracked := tracker.pages[pageID]; tracked && !previous.Saved {
		tracker.decrement(previous.Article())
	}
	tracker.pages[pageID] = update
	if !update.Saved {
		tracker.unsaved[update.Article()]++
	}
}

// remove drops pageID. The receiver must already be a private clone.
func (tracker *edits) remove(pageID site.PageID) {
	previous, tracked := tracker.pages[pageID]
	if !tracked {
		return
	}
	delete(tracker.pages, pageID)
	if !previous.Saved {
		tracker.decrement(previous.Article())
	}
}

func (tracker *edits) decrement(articleID site.ArticleID) {
	tracker.unsaved[articleID]--
	if tracker.unsaved[articleID] <= 0 {
		delete(tracker.unsaved, articleID)
	}
}

// rebase refreshes every tracked page against a new graph. Pages that
// no longer exist are dropped. Saved pages follow the server copy;
// unsaved pages keep their value and take the new origin. Returns a
// fresh edits value.
func (tracker edits) rebase(graph *site.Site) edits {
	rebased := edits{
		pages:   make(map[site.PageID]PageUpdate, len(tracker.pages)),
		unsaved: make(map[site.ArticleID]int),
	}
	for pageID, update := range tracker.pages {
		origin, exists := graph.Pages[pageID]
		if !exists {
			continue
		}
		if update.Saved {
			rebased.put(pageID, newPageUpdate(origin))
			continue
		}
		rebased.put(pageID, update.WithOrigin(origin))
	}
	return rebased
}
