// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package sitesearch

import (
	"strings"

	"github.com/stencilcms/composer/lib/siteview"
)

// Value is one searchable text fragment. ID names the thing the text
// came from, which is not always the owning entity: page values carry
// the page id and label values carry the locale id, so a match can be
// traced back to the exact field.
type Value struct {
	ID    string
	Value string
	Kind  Kind
}

// Entry groups every searchable value of one entity.
type Entry struct {
	ID     string
	Kind   EntryKind
	Values []Value
}

// Result is one matching entity and the values that matched, in the
// order they appear in the entry.
type Result struct {
	Source  Entry
	Matches []Value
}

// indexedEntry pairs an entry with its values lowercased once at build
// time.
type indexedEntry struct {
	entry  Entry
	folded []string
}

// Index answers keyword queries over one set of views. It is immutable
// and safe for concurrent use.
type Index struct {
	articles  []indexedEntry
	links     []indexedEntry
	workflows []indexedEntry
}

// New flattens views into searchable entries. Articles are indexed in
// tree order; links and workflows by case-insensitive name, then id.
func New(views *siteview.Views) *Index {
	index := &Index{}

	for _, article := range views.Flatten() {
		values := []Value{{ID: string(article.ID()), Value: article.Name(), Kind: ArticleName}}
		for _, page := range article.Pages {
			values = append(values, Value{
				ID:    string(page.Page.ID),
				Value: PlainText(page.Page.Body.Content),
				Kind:  ArticlePage,
			})
		}
		index.articles = append(index.articles, newIndexedEntry(string(article.ID()), EntryArticle, values))
	}

	for _, link := range views.LinksByName() {
		values := []Value{{ID: string(link.Link.ID), Value: link.Link.Body.Value, Kind: LinkValue}}
		for _, label := range link.Labels {
			values = append(values, Value{ID: string(label.Label.Locale), Value: label.Label.LabelValue, Kind: LinkLabel})
		}
		index.links = append(index.links, newIndexedEntry(string(link.Link.ID), EntryLink, values))
	}

	for _, workflow := range views.WorkflowsByName() {
		values := []Value{{ID: string(workflow.Workflow.ID), Value: workflow.Workflow.Body.Value, Kind: WorkflowName}}
		for _, label := range workflow.Labels {
			values = append(values, Value{ID: string(label.Label.Locale), Value: label.Label.LabelValue, Kind: WorkflowLabel})
		}
		index.workflows = append(index.workflows, newIndexedEntry(string(workflow.Workflow.ID), EntryWorkflow, values))
	}

	return index
}

func newIndexedEntry(id string, kind EntryKind, values []Value) indexedEntry {
	folded := make([]string, len(values))
	for position, value := range values {
		folded[position] = strings.ToLower(value.Value)
	}
	return indexedEntry{
		entry:  Entry{ID: id, Kind: kind, Values: values},
		folded: folded,
	}
}

// FilterArticles returns articles with at least one value containing
// keyword, case-insensitively. A blank keyword returns nil: search is
// for queries only, never a listing of everything.
func (index *Index) FilterArticles(keyword string) []Result {
	return filter(index.articles, keyword)
}

// FilterLinks is FilterArticles for links.
func (index *Index) FilterLinks(keyword string) []Result {
	return filter(index.links, keyword)
}

// FilterWorkflows is FilterArticles for workflows.
func (index *Index) FilterWorkflows(keyword string) []Result {
	return filter(index.workflows, keyword)
}

// Entries returns every entry: articles, then links, then workflows.
func (index *Index) Entries() []Entry {
	entries := make([]Entry, 0, len(index.articles)+len(index.links)+len(index.workflows))
	for _, group := range [][]indexedEntry{index.articles, index.links, index.workflows} {
		for _, indexed := range group {
			entries = append(entries, indexed.entry)
		}
	}
	return entries
}

// Values returns every searchable value across all entries.
func (index *Index) Values() []Value {
	var values []Value
	for _, entry := range index.Entries() {
		values = append(values, entry.Values...)
	}
	return values
}

func filter(entries []indexedEntry, keyword string) []Result {
	query := strings.ToLower(strings.TrimSpace(keyword))
	if query == "" {
		return nil
	}

	var results []Result
	for _, indexed := range entries {
		var matches []Value
		for position, folded := range indexed.folded {
			if strings.Contains(folded, query) {
				matches = append(matches, indexed.entry.Values[position])
			}
		}
		if len(matches) > 0 {
			results = append(results, Result{Source: indexed.entry, Matches: matches})
		}
	}
	return results
}
