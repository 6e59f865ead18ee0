// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composer

import (
	"fmt"

	"github.com/stencilcms/composer/lib/session"
)

// Reduce applies action to current and returns the next session. It is
// pure: current is never modified, and an action that changes nothing
// returns current itself.
//
// Load results carry the sequence number of the request that produced
// them. A result whose sequence is not newer than the last applied
// load is dropped, so an old reload that resolves late cannot replace
// a newer graph. A failed load does not advance the sequence.
func Reduce(current *session.Session, action Action) *session.Session {
	switch action := action.(type) {
	case SiteLoaded:
		if action.Sequence <= current.LoadSequence() {
			return current
		}
		next := current.WithSite(action.Site)
		if next == current {
			return current
		}
		return next.WithLoadSequence(action.Sequence)
	case SiteUnavailable:
		if action.Sequence <= current.LoadSequence() {
			return current
		}
		return current.WithNoConnection()
	case PageOpened:
		return current.WithPage(action.PageID)
	case PageValueChanged:
		return current.WithPageValue(action.PageID, action.Value)
	case PagesDiscarded:
		return current.WithoutPages(action.PageIDs...)
	case PageSaved:
		update, tracked := current.Page(action.PageID)
		if !tracked || update.Value != action.Value {
			return current
		}
		return current.WithoutPages(action.PageID)
	case LocaleFilterChanged:
		return current.WithLocaleFilter(action.Locale)
	case DevModeChanged:
		return current.WithDevMode(action.Enabled)
	default:
		panic(fmt.Sprintf("composer: unhandled action %T", action))
	}
}
