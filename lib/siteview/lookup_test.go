// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package siteview

import (
	"testing"

	"github.com/stencilcms/composer/lib/schema/site"
)

func TestNameLookups(t *testing.T) {
	views := Build(testSite())

	tests := []struct {
		name string
		got  NameRef
		want NameRef
	}{
		{"article", views.ArticleName("contact"), NameRef{Name: "Contact"}},
		{"missing article", views.ArticleName("nope"), NameRef{Missing: true, Name: "nope"}},
		{"link", views.LinkName("l1"), NameRef{Name: "https://example.com"}},
		{"missing link", views.LinkName("l-missing"), NameRef{Missing: true, Name: "l-missing"}},
		{"workflow", views.WorkflowName("w1"), NameRef{Name: "Review"}},
		{"missing workflow", views.WorkflowName(""), NameRef{Missing: true, Name: ""}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.got != test.want {
				t.Errorf("got %+v, want %+v", test.got, test.want)
			}
		})
	}
}

func TestLinksByName(t *testing.T) {
	graph := site.New()
	graph.Links["a"] = site.Link{ID: "a", Body: site.LinkBody{Value: "zeta"}}
	graph.Links["b"] = site.Link{ID: "b", Body: site.LinkBody{Value: "Alpha"}}
	graph.Links["c"] = site.Link{ID: "c", Body: site.LinkBody{Value: "alpha"}}

	sorted := Build(graph).LinksByName()
	var order []site.LinkID
	for _, link := range sorted {
		order = append(order, link.Link.ID)
	}
	want := []site.LinkID{"b", "c", "a"}
	for index := range want {
		if order[index] != want[index] {
			t.Fatalf("LinksByName order = %v, want %v", order, want)
		}
	}
}

func TestReferencingArticle(t *testing.T) {
	graph := testSite()
	graph.Links["l2"] = site.Link{ID: "l2", Body: site.LinkBody{Value: "other", Articles: []site.ArticleID{"news"}}}
	graph.Workflows["w2"] = site.Workflow{ID: "w2", Body: site.WorkflowBody{Value: "Publish", Articles: []site.ArticleID{"home", "news"}}}
	views := Build(graph)

	links := views.LinksReferencingArticle("home")
	if len(links) != 1 || links[0].Link.ID != "l1" {
		t.Errorf("LinksReferencingArticle(home) = %+v, want [l1]", links)
	}
	workflows := views.WorkflowsReferencingArticle("news")
	if len(workflows) != 1 || workflows[0].Workflow.ID != "w2" {
		t.Errorf("WorkflowsReferencingArticle(news) = %+v, want [w2]", workflows)
	}
}

func TestPageOwner(t *testing.T) {
	views := Build(testSite())

	article, page, found := views.PageOwner("p-contact-en")
	if !found {
		t.Fatal("PageOwner did not find p-contact-en")
	}
	if article.ID() != "contact" || page.Page.Body.Locale != "en" {
		t.Errorf("PageOwner = %s / %s", article.ID(), page.Page.Body.Locale)
	}
	if _, _, found := views.PageOwner("nope"); found {
		t.Error("PageOwner found a page that does not exist")
	}
}
