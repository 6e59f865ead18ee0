// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the subset of the time package the composer depends on.
// Production code takes Real(); tests take Fake() and move time by
// hand.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After delivers the time on the returned channel once d has
	// elapsed. A non-positive d delivers immediately.
	After(d time.Duration) <-chan time.Time

	// NewTicker delivers a tick every d. Panics if d <= 0.
	NewTicker(d time.Duration) *Ticker
}

// Ticker delivers periodic ticks on C. C has capacity 1; ticks the
// reader misses are dropped.
type Ticker struct {
	C <-chan time.Time

	stop func()
}

// Stop turns the ticker off. C is not closed.
func (t *Ticker) Stop() { t.stop() }
