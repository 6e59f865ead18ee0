// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package siteview

import (
	"cmp"
	"slices"
	"strings"

	"github.com/stencilcms/composer/lib/schema/site"
)

// ReleaseSortField selects the column releases are ordered by.
type ReleaseSortField int

const (
	SortByCreated ReleaseSortField = iota
	SortByName
)

// SortDirection is ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// SortReleases returns a sorted copy of releases. Ties on the chosen
// field fall back to id so the order is total.
func SortReleases(releases []site.Release, field ReleaseSortField, direction SortDirection) []site.Release {
	sorted := slices.Clone(releases)
	slices.SortFunc(sorted, func(a, b site.Release) int {
		var result int
		switch field {
		case SortByName:
			result = cmp.Compare(strings.ToLower(a.Body.Name), strings.ToLower(b.Body.Name))
		case SortByCreated:
			result = a.Body.Created.Compare(b.Body.Created)
		}
		if result == 0 {
			result = cmp.Compare(a.ID, b.ID)
		}
		if direction == Descending {
			result = -result
		}
		return result
	})
	return sorted
}

func sortReleasesByCreated(releases map[site.ReleaseID]site.Release) []site.Release {
	list := make([]site.Release, 0, len(releases))
	for _, release := range releases {
		list = append(list, release)
	}
	return SortReleases(list, SortByCreated, Ascending)
}

func sortTemplatesByName(templates map[site.TemplateID]site.Template) []site.Template {
	list := make([]site.Template, 0, len(templates))
	for _, template := range templates {
		list = append(list, template)
	}
	return SortTemplates(list)
}

// SortTemplates returns a copy of templates ordered by case-insensitive
// name, then id.
func SortTemplates(templates []site.Template) []site.Template {
	sorted := slices.Clone(templates)
	slices.SortFunc(sorted, func(a, b site.Template) int {
		if byName := cmp.Compare(strings.ToLower(a.Body.Name), strings.ToLower(b.Body.Name)); byName != 0 {
			return byName
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

// Summary counts entities per kind for the activity overview.
type Summary struct {
	Articles  int
	Pages     int
	Links     int
	Workflows int
	Locales   int
	Releases  int
	Templates int
	Problems  int
}

// Summarize counts what the views contain. Pages counts only pages
// attached to an article view, so conflicting and orphaned pages are
// excluded.
func Summarize(views *Views) Summary {
	summary := Summary{
		Articles:  len(views.ArticlesByID),
		Links:     len(views.Links),
		Workflows: len(views.Workflows),
		Locales:   len(views.Locales),
		Releases:  len(views.Releases),
		Templates: len(views.Templates),
		Problems:  len(views.Problems),
	}
	for _, article := range views.ArticlesByID {
		summary.Pages += len(article.Pages)
	}
	return summary
}
