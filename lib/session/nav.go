// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"

	"github.com/stencilcms/composer/lib/schema/site"
)

// NavType is the article sub-view a tab is showing.
type NavType int

const (
	NavArticlePages NavType = iota
	NavArticleLinks
	NavArticleWorkflows
)

// String returns the wire name of the nav type, e.g. "ARTICLE_PAGES".
func (navType NavType) String() string {
	switch navType {
	case NavArticlePages:
		return "ARTICLE_PAGES"
	case NavArticleLinks:
		return "ARTICLE_LINKS"
	case NavArticleWorkflows:
		return "ARTICLE_WORKFLOWS"
	default:
		return fmt.Sprintf("NavType(%d)", int(navType))
	}
}

// Nav is the navigation state of an article tab. Value is the primary
// locale shown and Value2 the secondary locale shown side by side;
// either may be empty.
type Nav struct {
	Type   NavType
	Value  site.LocaleID
	Value2 site.LocaleID
}

// TabData is the per-tab metadata the composer attaches to tabs owned
// by the tab layout.
type TabData struct {
	Nav Nav
}

// WithNav returns the tab data with a new nav.
func (data TabData) WithNav(nav Nav) TabData {
	data.Nav = nav
	return data
}
