// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package site defines the normalized site graph served by a Stencil
// content service: articles, pages, links, workflows, locales,
// releases and templates, each keyed by an opaque string id.
//
// These types are the ground truth the composer works from. They are
// never partially patched: a reload replaces the whole [Site]. Derived
// views (resolved names, article trees, per-locale page lookup) live in
// lib/siteview and are rebuilt from a Site on every load.
//
// The types carry json tags. They are serialized as JSON by the HTTP
// client and site files, and as CBOR by the socket protocol (the CBOR
// codec reads json tags as fallback, see lib/codec).
package site
