// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package siteview

import (
	"cmp"
	"slices"
	"strings"

	"github.com/stencilcms/composer/lib/schema/site"
)

// ArticleName resolves an article id. Never fails: an unknown id yields
// Missing with the id as the name.
func (views *Views) ArticleName(articleID site.ArticleID) NameRef {
	if article, exists := views.ArticlesByID[articleID]; exists {
		return NameRef{Name: article.Name()}
	}
	return NameRef{Missing: true, Name: string(articleID)}
}

// LinkName resolves a link id to its value.
func (views *Views) LinkName(linkID site.LinkID) NameRef {
	if link, exists := views.LinksByID[linkID]; exists {
		return NameRef{Name: link.Link.Body.Value}
	}
	return NameRef{Missing: true, Name: string(linkID)}
}

// WorkflowName resolves a workflow id to its value.
func (views *Views) WorkflowName(workflowID site.WorkflowID) NameRef {
	if workflow, exists := views.WorkflowsByID[workflowID]; exists {
		return NameRef{Name: workflow.Workflow.Body.Value}
	}
	return NameRef{Missing: true, Name: string(workflowID)}
}

// LinksByName returns all links sorted case-insensitively by value,
// then id. This is the order of the article link picker.
func (views *Views) LinksByName() []LinkView {
	sorted := slices.Clone(views.Links)
	slices.SortStableFunc(sorted, func(a, b LinkView) int {
		if byName := cmp.Compare(strings.ToLower(a.Link.Body.Value), strings.ToLower(b.Link.Body.Value)); byName != 0 {
			return byName
		}
		return cmp.Compare(a.Link.ID, b.Link.ID)
	})
	return sorted
}

// WorkflowsByName returns all workflows sorted case-insensitively by
// value, then id.
func (views *Views) WorkflowsByName() []WorkflowView {
	sorted := slices.Clone(views.Workflows)
	slices.SortStableFunc(sorted, func(a, b WorkflowView) int {
		if byName := cmp.Compare(strings.ToLower(a.Workflow.Body.Value), strings.ToLower(b.Workflow.Body.Value)); byName != 0 {
			return byName
		}
		return cmp.Compare(a.Workflow.ID, b.Workflow.ID)
	})
	return sorted
}

// LinksReferencingArticle returns the links whose reverse reference
// list contains the article, in id order.
func (views *Views) LinksReferencingArticle(articleID site.ArticleID) []LinkView {
	var result []LinkView
	for _, link := range views.Links {
		if slices.Contains(link.Link.Body.Articles, articleID) {
			result = append(result, link)
		}
	}
	return result
}

// WorkflowsReferencingArticle returns the workflows whose reverse
// reference list contains the article, in id order.
func (views *Views) WorkflowsReferencingArticle(articleID site.ArticleID) []WorkflowView {
	var result []WorkflowView
	for _, workflow := range views.Workflows {
		if slices.Contains(workflow.Workflow.Body.Articles, articleID) {
			result = append(result, workflow)
		}
	}
	return result
}

// PageOwner returns the article view that shows the given page.
func (views *Views) PageOwner(pageID site.PageID) (*ArticleView, PageView, bool) {
	for _, article := range views.ArticlesByID {
		if page, found := article.PageByID(pageID); found {
			return article, page, true
		}
	}
	return nil, PageView{}, false
}
