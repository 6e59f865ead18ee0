// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package siteview derives denormalized, cross-referenced views from a
// site graph.
//
// [Build] turns a [site.Site] into [Views]: the article tree with pages
// resolved per locale, the locales each article can still create a
// page in, and link and workflow views with locale-resolved labels.
// Views are immutable and rebuilt from scratch on every reload.
//
// Build never fails. Missing references become placeholder views.
// Structural problems are repaired with fixed rules and reported in
// [Views.Problems]:
//
//   - A parent cycle is cut at its smallest article id.
//   - A parent that does not exist makes the article a root.
//   - Pages sharing (article, locale) keep the smallest page id.
//   - Pages for an article that does not exist are dropped.
package siteview
