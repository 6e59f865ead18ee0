// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the composer
// binaries.
//
// Configuration is loaded from a single file named by either the
// STENCIL_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search.
//
// The file may contain development and production sections that
// override base values when [Config].Environment matches. Production
// turns dev mode off unless its section says otherwise.
//
// Path fields are expanded after loading: ${HOME} and
// ${VAR:-default} patterns are replaced from the environment.
package config
