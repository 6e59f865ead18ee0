// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the composer's immutable state snapshot.
//
// A [Session] aggregates the site graph, the views and search index
// built from it, the page edit tracker and the active locale filter.
// Sessions are never modified: every With method returns a new value
// (or the receiver, when nothing changed), so subscribers detect change
// by pointer comparison.
//
// The edit tracker keeps one [PageUpdate] per page opened for editing.
// It survives reloads: a new graph rebases each update onto the new
// server copy while keeping the locally edited value. A per-article
// count of unsaved pages makes [Session.IsArticleSaved] constant time.
package session
