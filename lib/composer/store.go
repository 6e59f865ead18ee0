// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package composer

import (
	"sync"
	"sync/atomic"

	"github.com/stencilcms/composer/lib/session"
)

// subscriberBuffer is the capacity of each subscription channel. A
// subscriber that falls further behind misses intermediate snapshots
// but always has the newest one available from Session.
const subscriberBuffer = 16

// Store holds the current session and serializes transitions. Readers
// get immutable snapshots; subscribers are told about every snapshot
// that differs from the one before it.
type Store struct {
	mutex       sync.Mutex
	current     *session.Session
	subscribers []chan *session.Session
	sequence    atomic.Uint64
}

// NewStore returns a store holding initial, or an empty session when
// initial is nil.
func NewStore(initial *session.Session) *Store {
	if initial == nil {
		initial = session.New()
	}
	return &Store{current: initial}
}

// Session returns the current snapshot.
func (store *Store) Session() *session.Session {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.current
}

// NextSequence returns a load sequence number greater than every
// number returned before.
func (store *Store) NextSequence() uint64 {
	return store.sequence.Add(1)
}

// Dispatch reduces action against the current session and installs
// the result. Subscribers are notified only when the session changed.
// Returns the installed session.
func (store *Store) Dispatch(action Action) *session.Session {
	store.mutex.Lock()
	previous := store.current
	next := Reduce(previous, action)
	if next == previous {
		store.mutex.Unlock()
		return previous
	}
	store.current = next
	// Notify under the lock so subscribers see snapshots in install
	// order. Sends never block.
	for _, subscriber := range store.subscribers {
		select {
		case subscriber <- next:
		default:
		}
	}
	store.mutex.Unlock()
	return next
}

// Subscribe returns a channel that receives each newly installed
// session. Snapshots are dropped while the channel is full.
func (store *Store) Subscribe() <-chan *session.Session {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	channel := make(chan *session.Session, subscriberBuffer)
	store.subscribers = append(store.subscribers, channel)
	return channel
}
