// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports what build a Stencil binary is. Release
// builds stamp the variables below with
//
//	-ldflags "-X github.com/stencilcms/composer/lib/version.GitCommit=..."
//
// and plain go builds fall back to the VCS stamp in the build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

var (
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"

	// Version changes by hand at release time.
	Version = "0.1.0-dev"
)

var stampOnce sync.Once

// stampFromBuildInfo fills whatever ldflags left unset from the VCS
// settings the go command records.
func stampFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok || GitCommit != "unknown" {
		return
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			GitCommit = setting.Value[:min(len(setting.Value), 12)]
		case "vcs.modified":
			GitDirty = setting.Value
		case "vcs.time":
			if BuildTime == "unknown" {
				BuildTime = setting.Value
			}
		}
	}
}

// Info is "version (commit[-dirty], build time)".
func Info() string {
	stampOnce.Do(stampFromBuildInfo)
	commit := GitCommit
	if GitDirty == "true" {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, BuildTime)
}

// Line is what --version prints for binary: Info plus the Go toolchain
// and platform.
func Line(binary string) string {
	return fmt.Sprintf("%s %s %s %s/%s", binary, Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Built is the build time, or "unknown".
func Built() string {
	stampOnce.Do(stampFromBuildInfo)
	return BuildTime
}
