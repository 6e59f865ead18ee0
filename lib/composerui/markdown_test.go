// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composerui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// plainPreview renders with the ASCII profile, so the result is the
// visible text only.
func plainPreview(input string, width int) string {
	return renderPagePreview(input, DefaultTheme, width, termenv.Ascii)
}

func TestRenderPagePreviewEmpty(t *testing.T) {
	for _, input := range []string{"", "  \n\n"} {
		if result := plainPreview(input, 80); result != "" {
			t.Errorf("preview of %q = %q, want empty", input, result)
		}
	}
}

func TestRenderPagePreviewReflowsParagraphs(t *testing.T) {
	input := "Stencil pages are often\nwrapped by hand at a narrow\nwidth in the source."
	result := plainPreview(input, 120)
	if result != "Stencil pages are often wrapped by hand at a narrow width in the source." {
		t.Errorf("wide preview = %q", result)
	}

	for _, line := range strings.Split(plainPreview(input, 24), "\n") {
		if ansi.StringWidth(line) > 24 {
			t.Errorf("line %q is wider than 24 columns", line)
		}
	}
}

func TestRenderPagePreviewHardLineBreak(t *testing.T) {
	result := plainPreview("Opening hours  \nMonday to Friday", 80)
	if result != "Opening hours\nMonday to Friday" {
		t.Errorf("preview = %q", result)
	}
}

func TestRenderPagePreviewHeadingsAndEmphasis(t *testing.T) {
	result := plainPreview("# Welcome\n\nSome **bold** and _quiet_ and ~~gone~~ text.", 80)
	want := "Welcome\n\nSome bold and quiet and gone text."
	if result != want {
		t.Errorf("preview = %q, want %q", result, want)
	}
}

func TestRenderPagePreviewLists(t *testing.T) {
	result := plainPreview("- one\n- two\n  1. nested\n  2. again\n- [x] done", 80)
	for _, want := range []string{"• one", "• two", "  1. nested", "  2. again", "• [x] done"} {
		if !strings.Contains(result, want+"\n") && !strings.HasSuffix(result, want) {
			t.Errorf("preview missing line %q:\n%s", want, result)
		}
	}
}

func TestRenderPagePreviewBlockquote(t *testing.T) {
	result := plainPreview("> quoted text that wraps across lines when narrow", 24)
	lines := strings.Split(result, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped quote, got %q", result)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "│ ") {
			t.Errorf("quote line %q lacks the bar prefix", line)
		}
	}
}

func TestRenderPagePreviewLinksAndImages(t *testing.T) {
	result := plainPreview("See [the docs](https://example.test/docs) and ![logo](logo.png).", 80)
	if !strings.Contains(result, "the docs (https://example.test/docs)") {
		t.Errorf("link not rendered with destination: %q", result)
	}
	if !strings.Contains(result, "[image: logo]") {
		t.Errorf("image not rendered as placeholder: %q", result)
	}
}

func TestRenderPagePreviewCodeKeepsLines(t *testing.T) {
	input := "Intro.\n\n```go\nfunc main() {\n    fmt.Println(\"a very long line that must not be wrapped at all\")\n}\n```\n\nOutro."
	result := plainPreview(input, 20)
	if !strings.Contains(result, "\n    fmt.Println(\"a very long line that must not be wrapped at all\")") {
		t.Errorf("code line was altered:\n%s", result)
	}
	if !strings.HasPrefix(result, "Intro.\n\nfunc main() {") || !strings.HasSuffix(result, "}\n\nOutro.") {
		t.Errorf("code block spacing wrong:\n%s", result)
	}
}

func TestRenderPagePreviewHighlightsKnownLanguages(t *testing.T) {
	input := "```go\npackage main\n```"
	colored := renderPagePreview(input, DefaultTheme, 80, termenv.ANSI256)
	if !strings.Contains(colored, "\x1b[") {
		t.Fatalf("expected escape sequences in highlighted code, got %q", colored)
	}
	if strings.TrimSpace(ansi.Strip(colored)) != "package main" {
		t.Errorf("stripped code = %q", ansi.Strip(colored))
	}

	unknown := renderPagePreview("```no-such-language\nplain words\n```", DefaultTheme, 80, termenv.ANSI256)
	if strings.TrimSpace(ansi.Strip(unknown)) != "plain words" {
		t.Errorf("unknown language code = %q", ansi.Strip(unknown))
	}
}

func TestRenderPagePreviewTable(t *testing.T) {
	result := plainPreview("| Locale | Title |\n|---|---|\n| de | Willkommen |\n| en | Welcome |", 80)
	want := "Locale  Title\n──────  ──────────\nde      Willkommen\nen      Welcome"
	if result != want {
		t.Errorf("table = %q, want %q", result, want)
	}
}

func TestRenderPagePreviewThematicBreak(t *testing.T) {
	result := plainPreview("above\n\n---\n\nbelow", 12)
	if result != "above\n\n"+strings.Repeat("─", 12)+"\n\nbelow" {
		t.Errorf("preview = %q", result)
	}
}
