// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composer

import (
	"context"
	"testing"
	"time"

	"github.com/stencilcms/composer/lib/clock"
	"github.com/stencilcms/composer/lib/testutil"
)

func TestRefreshLoopReloadsOnTick(t *testing.T) {
	actions, service := loadedActions(t)
	updates := actions.Store().Subscribe()
	fake := clock.Fake(testEpoch)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		actions.RefreshLoop(ctx, fake, time.Minute)
	}()

	fake.WaitForTimers(1)
	loadsBefore := service.loads.Load()
	fake.Advance(time.Minute)

	reloaded := testutil.RequireReceive(t, updates, 5*time.Second, "waiting for refresh")
	if reloaded.LoadSequence() <= 1 {
		t.Errorf("LoadSequence = %d, want a newer load", reloaded.LoadSequence())
	}
	if service.loads.Load() <= loadsBefore {
		t.Error("tick did not call LoadSite")
	}

	cancel()
	testutil.RequireClosed(t, done, 5*time.Second, "RefreshLoop did not stop")
}

func TestReloadOnChanges(t *testing.T) {
	actions, _ := loadedActions(t)
	updates := actions.Store().Subscribe()
	changes := make(chan struct{}, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		actions.ReloadOn(context.Background(), changes)
	}()

	changes <- struct{}{}
	testutil.RequireReceive(t, updates, 5*time.Second, "waiting for reload")

	close(changes)
	testutil.RequireClosed(t, done, 5*time.Second, "ReloadOn did not stop when changes closed")
}
