// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composer

import (
	"testing"
	"time"

	"github.com/stencilcms/composer/lib/testutil"
)

func TestStoreDispatchNotifiesOnChange(t *testing.T) {
	store := NewStore(nil)
	updates := store.Subscribe()

	loaded := store.Dispatch(SiteLoaded{Sequence: store.NextSequence(), Site: testSite()})
	if got := testutil.RequireReceive(t, updates, time.Second, "waiting for load notification"); got != loaded {
		t.Error("notification does not carry the installed session")
	}
	if store.Session() != loaded {
		t.Error("Session does not return the installed session")
	}

	if same := store.Dispatch(DevModeChanged{Enabled: false}); same != loaded {
		t.Error("no-op action replaced the session")
	}
	testutil.RequireNoReceive(t, updates, 20*time.Millisecond, "no-op action notified")
}

func TestStoreSlowSubscriberDoesNotBlock(t *testing.T) {
	store := NewStore(nil)
	store.Subscribe()
	store.Dispatch(SiteLoaded{Sequence: store.NextSequence(), Site: testSite()})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for index := 0; index < subscriberBuffer*2; index++ {
			store.Dispatch(DevModeChanged{Enabled: index%2 == 0})
		}
	}()
	testutil.RequireClosed(t, done, 5*time.Second, "Dispatch blocked on a full subscriber")
}

func TestStoreNextSequenceIncreases(t *testing.T) {
	store := NewStore(nil)
	previous := store.NextSequence()
	for range 10 {
		next := store.NextSequence()
		if next <= previous {
			t.Fatalf("NextSequence returned %d after %d", next, previous)
		}
		previous = next
	}
}
