// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"slices"
	"sync"
	"time"
)

// FakeClock is a Clock whose time only moves when Advance is called.
// Safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	changed *sync.Cond
	now     time.Time
	pending []*pendingTimer
}

type pendingTimer struct {
	deadline time.Time
	channel  chan time.Time
	// interval is zero for one-shot timers from After.
	interval time.Duration
	stopped  bool
}

// Fake returns a FakeClock reading initial.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{now: initial}
	clock.changed = sync.NewCond(&clock.mu)
	return clock
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After registers a one-shot timer.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- c.now
		return channel
	}
	c.register(&pendingTimer{deadline: c.now.Add(d), channel: channel})
	return channel
}

// NewTicker registers a periodic timer.
func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &pendingTimer{deadline: c.now.Add(d), channel: make(chan time.Time, 1), interval: d}
	c.register(timer)
	return &Ticker{
		C: timer.channel,
		stop: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			timer.stopped = true
		},
	}
}

func (c *FakeClock) register(timer *pendingTimer) {
	c.pending = append(c.pending, timer)
	c.changed.Broadcast()
}

// Advance moves time forward by d and fires every timer whose deadline
// is reached, earliest first. A ticker spanning several intervals
// fires once per interval, but its channel holds only one tick.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)

	for {
		var due []*pendingTimer
		remaining := c.pending[:0:0]
		for _, timer := range c.pending {
			switch {
			case timer.stopped:
			case !timer.deadline.After(c.now):
				due = append(due, timer)
			default:
				remaining = append(remaining, timer)
			}
		}
		if len(due) == 0 {
			c.pending = remaining
			return
		}
		slices.SortStableFunc(due, func(a, b *pendingTimer) int {
			return a.deadline.Compare(b.deadline)
		})
		for _, timer := range due {
			select {
			case timer.channel <- timer.deadline:
			default:
			}
			if timer.interval > 0 {
				timer.deadline = timer.deadline.Add(timer.interval)
				remaining = append(remaining, timer)
			}
		}
		c.pending = remaining
	}
}

// WaitForTimers blocks until at least n timers are pending. Use it to
// make sure a goroutine has registered its timer before Advance.
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.activeLocked() < n {
		c.changed.Wait()
	}
}

// PendingCount returns the number of active timers.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeLocked()
}

func (c *FakeClock) activeLocked() int {
	count := 0
	for _, timer := range c.pending {
		if !timer.stopped {
			count++
		}
	}
	return count
}
