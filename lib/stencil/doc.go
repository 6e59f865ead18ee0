// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package stencil is the composer's side of the content service.
//
// [Service] lists the operations the composer performs. Four
// implementations exist:
//
//   - [SocketClient] speaks the CBOR protocol to a [SocketServer] over a
//     Unix socket, one request per connection. [RegisterService]
//     exposes any Service on a SocketServer.
//   - [HTTPClient] speaks JSON to the REST API served by
//     [NewHTTPHandler].
//   - [Memory] keeps the graph in memory and enforces the integrity
//     rules (unique page per article and locale, resolvable
//     references, mirrored link and workflow article lists).
//   - [FileService] persists a Memory to a JSONC or CBOR site file,
//     optionally zstd-compressed, and can [WatchFile] it for outside
//     edits.
//
// Failures carry an [ErrorCategory]; transport failures are always
// [CategoryUnavailable] so callers can tell "service down" from "bad
// request".
package stencil
