// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package siteview

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/stencilcms/composer/lib/schema/site"
)

// forest is the article parent graph after dangling parents and cycles
// have been cut. Every article is reachable from exactly one root.
type forest struct {
	roots    []site.ArticleID
	children map[site.ArticleID][]site.ArticleID
	problems []Problem
}

// buildForest resolves each article's effective parent and indexes
// children in one pass. Dangling parents and cycles are reported and
// cut so the result is always a forest.
func buildForest(articles map[site.ArticleID]site.Article) forest {
	articleIDs := sortedKeys(articles)
	parents := make(map[site.ArticleID]site.ArticleID, len(articles))
	var problems []Problem

	for _, articleID := range articleIDs {
		parentID := articles[articleID].Body.ParentID
		if parentID == "" {
			continue
		}
		if _, exists := articles[parentID]; !exists {
			problems = append(problems, Problem{
				Kind:    ProblemDanglingParent,
				Article: articleID,
				Detail:  fmt.Sprintf("parent %s does not exist", parentID),
			})
			continue
		}
		parents[articleID] = parentID
	}

	problems = append(problems, breakCycles(articleIDs, parents)...)

	result := forest{
		children: make(map[site.ArticleID][]site.ArticleID),
		problems: problems,
	}
	for _, articleID := range articleIDs {
		parentID, hasParent := parents[articleID]
		if !hasParent {
			result.roots = append(result.roots, articleID)
			continue
		}
		result.children[parentID] = append(result.children[parentID], articleID)
	}
	return result
}

// breakCycles walks the parent chain from every article, colouring
// nodes as in-progress and done. Reaching an in-progress node closes a
// cycle; the cycle's smallest article id loses its parent edge. Each
// node is visited once, so the walk is O(n) overall.
func breakCycles(articleIDs []site.ArticleID, parents map[site.ArticleID]site.ArticleID) []Problem {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[site.ArticleID]int, len(articleIDs))
	var problems []Problem

	for _, start := range articleIDs {
		if state[start] != unvisited {
			continue
		}

		var path []site.ArticleID
		current := start
		for {
			state[current] = inProgress
			path = append(path, current)
			parentID, hasParent := parents[current]
			if !hasParent {
				break
			}
			if state[parentID] == inProgress {
				cycleStart := slices.Index(path, parentID)
				cycle := slices.Clone(path[cycleStart:])
				cut := slices.Min(cycle)
				delete(parents, cut)
				problems = append(problems, Problem{
					Kind:    ProblemCycle,
					Article: cut,
					Detail:  "parent cycle " + formatCycle(cycle),
				})
				break
			}
			if state[parentID] == done {
				break
			}
			current = parentID
		}

		for _, articleID := range path {
			state[articleID] = done
		}
	}
	return problems
}

func formatCycle(cycle []site.ArticleID) string {
	parts := make([]string, 0, len(cycle)+1)
	for _, articleID := range cycle {
		parts = append(parts, string(articleID))
	}
	parts = append(parts, string(cycle[0]))
	return strings.Join(parts, " -> ")
}

// sortSiblings orders articles by (order, id).
func sortSiblings(articleIDs []site.ArticleID, articles map[site.ArticleID]site.Article) {
	slices.SortFunc(articleIDs, func(a, b site.ArticleID) int {
		if byOrder := cmp.Compare(articles[a].Body.Order, articles[b].Body.Order); byOrder != 0 {
			return byOrder
		}
		return cmp.Compare(a, b)
	})
}

func sortedKeys[K cmp.Ordered, V any](entries map[K]V) []K {
	keys := make([]K, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
