// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package sitesearch indexes site views for keyword search.
//
// Every article, link and workflow is flattened into an [Entry] of
// typed [Value]s: names, link values, labels, and the plain text of
// each page (markdown rendered to text with goldmark). Keyword queries
// are case-insensitive substring matches with no stemming or ranking;
// results come back in view order, one [Result] per matching entity
// with every matching value listed.
//
// The package also wraps fzf's matcher for the explorer's fuzzy quick
// filter, which is ranked, unlike keyword search.
package sitesearch
