// lock.go: Mutual exclusion and power gating for the shared AES peripheral.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import "sync"

// hardwareLock serializes access to the single shared AES unit and ties the
// peripheral's power state to lock ownership: the unit is powered exactly
// while the lock is held.
//
// The lock is taken once per top-level mode-of-operation call, not per
// block. For long buffers this keeps the unit owned for the whole chained
// operation, which guarantees no two callers can interleave their per-block
// register traffic mid-stream.
type hardwareLock struct {
	mu      sync.Mutex
	backend Backend
}

// acquire enters the critical section and powers on the peripheral. It
// returns the release function; callers must invoke it on every exit path,
// including early error returns, or every subsequent caller deadlocks.
func (l *hardwareLock) acquire() func() {
	l.mu.Lock()
	l.backend.Enable()

	return func() {
		l.backend.Disable()
		l.mu.Unlock()
	}
}
