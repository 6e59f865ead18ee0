// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/session"
)

func TestRenderTreeASCII(t *testing.T) {
	graph := testSite()
	graph.Pages["stray"] = site.Page{ID: "stray", Body: site.PageBody{Article: "gone", Locale: "en"}}
	current := session.New().WithSite(graph)

	var output bytes.Buffer
	if err := RenderTree(&output, current, termenv.Ascii); err != nil {
		t.Fatalf("RenderTree: %v", err)
	}
	text := output.String()
	if strings.Contains(text, "\x1b[") {
		t.Errorf("ASCII output contains escape sequences: %q", text)
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %q, want 2 articles, 1 problem, 1 summary", lines)
	}
	if lines[0] != "- Home [de en] home" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "  - Contact contact" {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "! ") {
		t.Errorf("line 2 = %q, want a problem", lines[2])
	}
	if !strings.HasPrefix(lines[3], "2 articles, 2 pages, 1 links") {
		t.Errorf("summary = %q", lines[3])
	}
}
