// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package sitesearch

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stencilcms/composer/lib/schema/site"
	"github.com/stencilcms/composer/lib/siteview"
)

func testViews() *siteview.Views {
	graph := site.New()
	graph.Locales["en"] = site.Locale{ID: "en", Body: site.LocaleBody{Value: "English"}}
	graph.Locales["fr"] = site.Locale{ID: "fr", Body: site.LocaleBody{Value: "Français"}}
	graph.Articles["a-contact"] = site.Article{ID: "a-contact", Body: site.ArticleBody{Name: "Contact", Order: 2}}
	graph.Articles["a-home"] = site.Article{ID: "a-home", Body: site.ArticleBody{Name: "Home", Order: 1}}
	graph.Pages["p-contact-en"] = site.Page{ID: "p-contact-en", Body: site.PageBody{
		Article: "a-contact", Locale: "en", Content: "# Contact Us\n\nWrite to **support**.",
	}}
	graph.Pages["p-home-en"] = site.Page{ID: "p-home-en", Body: site.PageBody{
		Article: "a-home", Locale: "en", Content: "Welcome home. See the [contact page](/contact).",
	}}
	graph.Links["l-mail"] = site.Link{ID: "l-mail", Body: site.LinkBody{
		Value:  "mailto:help@example.com",
		Labels: []site.Label{{Locale: "en", LabelValue: "Help desk"}, {Locale: "fr", LabelValue: "Assistance"}},
	}}
	graph.Links["l-docs"] = site.Link{ID: "l-docs", Body: site.LinkBody{Value: "https://docs.example.com"}}
	graph.Workflows["w-approve"] = site.Workflow{ID: "w-approve", Body: site.WorkflowBody{
		Value:  "Approval",
		Labels: []site.Label{{Locale: "fr", LabelValue: "Approbation"}},
	}}
	return siteview.Build(graph)
}

func TestFilterArticlesGroupsMatches(t *testing.T) {
	index := New(testViews())

	results := index.FilterArticles("contact")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (home page mentions contact too)", len(results))
	}

	// Tree order: Home (order 1) before Contact (order 2).
	if results[0].Source.ID != "a-home" || results[1].Source.ID != "a-contact" {
		t.Fatalf("result order = %s, %s", results[0].Source.ID, results[1].Source.ID)
	}

	contact := results[1]
	if len(contact.Matches) != 2 {
		t.Fatalf("contact has %d matches, want 2", len(contact.Matches))
	}
	if contact.Matches[0] != (Value{ID: "a-contact", Value: "Contact", Kind: ArticleName}) {
		t.Errorf("first match = %+v, want article name", contact.Matches[0])
	}
	page := contact.Matches[1]
	if page.ID != "p-contact-en" || page.Kind != ArticlePage {
		t.Errorf("second match = %+v, want page p-contact-en", page)
	}
	if strings.Contains(page.Value, "#") || strings.Contains(page.Value, "**") {
		t.Errorf("page value %q still contains markdown syntax", page.Value)
	}
}

func TestFilterArticlesNameAndPageSingleResult(t *testing.T) {
	graph := site.New()
	graph.Articles["a1"] = site.Article{ID: "a1", Body: site.ArticleBody{Name: "Contact"}}
	graph.Pages["p1"] = site.Page{ID: "p1", Body: site.PageBody{Article: "a1", Locale: "en", Content: "Contact Us"}}

	results := New(siteview.Build(graph)).FilterArticles("contact")
	if len(results) != 1 {
		t.Fatalf("got %d results, want exactly 1", len(results))
	}
	matches := results[0].Matches
	if len(matches) != 2 || matches[0].Kind != ArticleName || matches[1].Kind != ArticlePage {
		t.Errorf("matches = %+v, want ARTICLE_NAME then ARTICLE_PAGE", matches)
	}
	if matches[1].ID != "p1" {
		t.Errorf("page match id = %q, want page id", matches[1].ID)
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	index := New(testViews())
	for _, keyword := range []string{"HELP", "help", "HeLp", "  help  "} {
		results := index.FilterLinks(keyword)
		if len(results) != 1 || results[0].Source.ID != "l-mail" {
			t.Errorf("FilterLinks(%q) = %+v, want l-mail", keyword, results)
		}
	}
}

func TestFilterEmptyKeyword(t *testing.T) {
	index := New(testViews())
	for _, keyword := range []string{"", "   "} {
		if results := index.FilterArticles(keyword); results != nil {
			t.Errorf("FilterArticles(%q) = %v, want nil", keyword, results)
		}
		if results := index.FilterLinks(keyword); results != nil {
			t.Errorf("FilterLinks(%q) = %v, want nil", keyword, results)
		}
		if results := index.FilterWorkflows(keyword); results != nil {
			t.Errorf("FilterWorkflows(%q) = %v, want nil", keyword, results)
		}
	}
}

func TestFilterLabels(t *testing.T) {
	index := New(testViews())

	workflows := index.FilterWorkflows("appro")
	if len(workflows) != 1 {
		t.Fatalf("got %d workflow results, want 1", len(workflows))
	}
	kinds := []Kind{}
	for _, match := range workflows[0].Matches {
		kinds = append(kinds, match.Kind)
	}
	if diff := cmp.Diff([]Kind{WorkflowName, WorkflowLabel}, kinds); diff != "" {
		t.Errorf("match kinds (-want +got):\n%s", diff)
	}
	if workflows[0].Matches[1].ID != "fr" {
		t.Errorf("label match id = %q, want locale id fr", workflows[0].Matches[1].ID)
	}

	links := index.FilterLinks("assist")
	if len(links) != 1 || links[0].Matches[0].Kind != LinkLabel {
		t.Errorf("FilterLinks(assist) = %+v, want one LINK_LABEL match", links)
	}
}

func TestFilterNoMatch(t *testing.T) {
	index := New(testViews())
	if results := index.FilterArticles("zzz"); len(results) != 0 {
		t.Errorf("FilterArticles(zzz) = %v, want none", results)
	}
}

func TestEntriesOrder(t *testing.T) {
	entries := New(testViews()).Entries()
	var ids []string
	for _, entry := range entries {
		ids = append(ids, entry.Kind.String()+":"+entry.ID)
	}
	want := []string{
		"ARTICLE:a-home", "ARTICLE:a-contact",
		"LINK:l-docs", "LINK:l-mail",
		"WORKFLOW:w-approve",
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		ArticleName:   "ARTICLE_NAME",
		ArticlePage:   "ARTICLE_PAGE",
		WorkflowName:  "WORKFLOW_NAME",
		WorkflowLabel: "WORKFLOW_LABEL",
		LinkValue:     "LINK_VALUE",
		LinkLabel:     "LINK_LABEL",
		Kind(99):      "Kind(99)",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}
