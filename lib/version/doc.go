// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package version carries build information for the stencil binaries.
// The variables are injected with -ldflags, for example:
//
//	go build -ldflags "-X github.com/stencilcms/composer/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// They keep their development defaults in test runs.
package version
