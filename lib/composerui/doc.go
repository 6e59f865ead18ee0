// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package composerui is the terminal user interface of the composer.
//
// [Model] is a bubbletea model over a [composer.Actions]. It shows the
// article explorer with a fuzzy quick filter and locale filter, link,
// workflow and release listings, keyword search, and a page editor in
// article tabs. Session changes arrive through the store subscription;
// service calls run as commands off the event loop.
//
// [TUILogHandler] routes warnings and errors into the status bar.
// [RenderTree] prints the article tree for non-interactive output.
package composerui
