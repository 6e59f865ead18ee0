// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composer

import (
	"context"
	"time"

	"github.com/stencilcms/composer/lib/clock"
)

// RefreshLoop reloads the site every interval until ctx is done. Reload
// failures are logged by HandleLoadSite and do not stop the loop.
func (a *Actions) RefreshLoop(ctx context.Context, clk clock.Clock, interval time.Duration) {
	ticker := clk.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = a.HandleLoadSite(ctx)
		}
	}
}

// ReloadOn reloads the site for every value received on changes, until
// changes is closed or ctx is done.
func (a *Actions) ReloadOn(ctx context.Context, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-changes:
			if !open {
				return
			}
			_ = a.HandleLoadSite(ctx)
		}
	}
}
