// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by the composer's tests.
//
// [RequireReceive], [RequireNoReceive] and [RequireClosed] wrap the
// select-with-timeout pattern so tests never block forever on a
// channel. [SocketDir] returns a directory short enough for Unix socket
// paths.
//
// Helpers call t.Fatalf on failure rather than returning errors.
package testutil
