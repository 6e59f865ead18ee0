// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/session"
)

func TestExplorerRowsTreeOrder(t *testing.T) {
	current := session.New().WithSite(testSite()).WithPageValue("home-en", "# Draft")

	rows := explorerRows(current, "")
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rowNames(rows))
	}
	if rows[0].Article.ID() != "home" || rows[0].Depth != 0 || !rows[0].Unsaved {
		t.Errorf("first row = %+v", rows[0])
	}
	if rows[1].Article.ID() != "contact" || rows[1].Depth != 1 || rows[1].Unsaved {
		t.Errorf("second row = %+v", rows[1])
	}
}

func TestExplorerRowsFuzzyWithLocaleFilter(t *testing.T) {
	current := session.New().WithSite(testSite())

	rows := explorerRows(current, "ho")
	if len(rows) != 1 || rows[0].Article.ID() != "home" {
		t.Fatalf("rows = %v, want [Home]", rowNames(rows))
	}
	if len(rows[0].Positions) != 2 {
		t.Errorf("positions = %v, want two matched runes", rows[0].Positions)
	}

	// Contact matches the pattern but has no page in the filter
	// locale.
	filtered := current.WithLocaleFilter("en")
	if rows := explorerRows(filtered, "c"); len(rows) != 0 {
		t.Errorf("rows with en filter = %v, want none", rowNames(rows))
	}
}

func TestRenderExplorerRow(t *testing.T) {
	current := session.New().WithSite(testSite()).WithPageValue("home-en", "# Draft")
	rows := explorerRows(current, "")

	line := ansi.Strip(renderExplorerRow(rows[0], DefaultTheme, 30, false))
	if !strings.HasPrefix(line, "* Home de en") {
		t.Errorf("row = %q", line)
	}
	if width := ansi.StringWidth(line); width != 30 {
		t.Errorf("row width = %d, want 30", width)
	}

	narrow := ansi.Strip(renderExplorerRow(rows[1], DefaultTheme, 6, true))
	if ansi.StringWidth(narrow) != 6 || !strings.HasSuffix(narrow, "…") {
		t.Errorf("narrow row = %q", narrow)
	}
}

func TestNextLocale(t *testing.T) {
	locales := session.New().WithSite(testSite()).Views().Locales
	sequence := []string{"de", "en", ""}
	current := ""
	for _, want := range sequence {
		current = string(nextLocale(locales, site.LocaleID(current)))
		if current != want {
			t.Fatalf("next locale = %q, want %q", current, want)
		}
	}
}
