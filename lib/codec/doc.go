// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the composer's CBOR configuration.
//
// JSON is used wherever a human or a foreign service reads the bytes:
// the REST service API, site files, CLI output. CBOR is used on the
// Unix socket between the composer and stencil-serve.
//
// Site graph types carry only json tags. fxamacker/cbor reads json tags
// when cbor tags are absent, so one tag set controls field naming for
// both formats. Socket envelope types that never appear in JSON carry
// cbor tags. Never put both on the same field.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
package codec
