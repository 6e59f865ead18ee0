// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package composer connects the immutable session to a content service.
//
// State changes are actions reduced by [Reduce] and installed by a
// [Store], which notifies subscribers with each new snapshot. [Actions]
// runs service calls and dispatches their results: every successful
// mutation is followed by a full reload, and each load carries a
// sequence number so a late response never replaces a newer one.
//
// [Navigator] opens articles in tabs owned by a [TabLayout]. [Tabs] is
// the in-memory layout the terminal UI uses.
package composer
