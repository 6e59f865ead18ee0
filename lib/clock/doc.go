// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts the time operations used by the composer's
// refresh loop and the content services, so tests can drive them
// deterministically.
//
// Structs that read the time hold a Clock field. Production wiring
// passes Real(); tests pass Fake() and call Advance:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go loop.Run(ctx, fake)
//	fake.WaitForTimers(1)
//	fake.Advance(30 * time.Second)
package clock
