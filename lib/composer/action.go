// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composer

import "github.com/stencilcms/composer/lib/schema/site"

// Action is a session transition request. The set is closed: only the
// types in this file implement it, and Reduce switches over all of
// them.
type Action interface {
	isAction()
}

// SiteLoaded installs a freshly loaded graph. Sequence is the number
// taken from Store.NextSequence when the load started.
type SiteLoaded struct {
	Sequence uint64
	Site     *site.Site
}

// SiteUnavailable reports a failed load. It only affects a session
// that has never loaded.
type SiteUnavailable struct {
	Sequence uint64
	Err      error
}

// PageOpened starts tracking a page for editing.
type PageOpened struct {
	PageID site.PageID
}

// PageValueChanged records an edit to a page.
type PageValueChanged struct {
	PageID site.PageID
	Value  string
}

// PagesDiscarded stops tracking pages, dropping unsaved values.
type PagesDiscarded struct {
	PageIDs []site.PageID
}

// PageSaved reports that Value was written to the service for a page.
// The page stops being tracked only if its edited value is still
// Value; typing that happened while the save was in flight is kept.
type PageSaved struct {
	PageID site.PageID
	Value  string
}

// LocaleFilterChanged sets the explorer locale filter. An empty Locale
// clears it.
type LocaleFilterChanged struct {
	Locale site.LocaleID
}

// DevModeChanged turns dev mode on or off.
type DevModeChanged struct {
	Enabled bool
}

func (SiteLoaded) isAction()          {}
func (SiteUnavailable) isAction()     {}
func (PageOpened) isAction()          {}
func (PageValueChanged) isAction()    {}
func (PagesDiscarded) isAction()      {}
func (PageSaved) isAction()           {}
func (LocaleFilterChanged) isAction() {}
func (DevModeChanged) isAction()      {}
