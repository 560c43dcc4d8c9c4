// engine.go: Single-block AES engine over a hardware backend.
//
// The engine is the only point of hardware interaction: it programs key
// material into the peripheral's register file, submits one 16-byte block
// at a time, waits for completion and validates that the transform actually
// executed. Mode drivers (cbc.go, cfb.go, ctr.go, ofb.go, ecb.go) call into
// it while holding the hardware lock.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	goerrors "github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
)

// Engine drives a single shared AES peripheral through a Backend. All mode
// operations on contexts created from the same Engine are serialized by its
// hardware lock, so an Engine is safe for concurrent use even though the
// peripheral itself is not.
type Engine struct {
	backend Backend
	lock    hardwareLock

	statsMu  sync.Mutex
	blocks   uint64
	keyLoads uint64
	lastUsed time.Time
}

// EngineStats is a snapshot of engine activity counters.
type EngineStats struct {
	Blocks   uint64    // completed single-block operations
	KeyLoads uint64    // key programming sequences
	LastUsed time.Time // time of the most recent block operation
}

// NewEngine creates an engine over the given backend.
//
// The backend is the register-level capability of the peripheral; use
// NewSoftBackend for the software reference implementation or a provider
// from a BackendManager for hardware and plugin backends.
func NewEngine(backend Backend) (*Engine, error) {
	if backend == nil {
		richErr := goerrors.New(ErrCodeBadInputData, "backend cannot be nil")
		return nil, fmt.Errorf("%w: %w", ErrBadInputData, richErr)
	}
	e := &Engine{backend: backend}
	e.lock.backend = backend
	return e, nil
}

// Stats returns a snapshot of the engine activity counters.
func (e *Engine) Stats() EngineStats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	return EngineStats{Blocks: e.blocks, KeyLoads: e.keyLoads, LastUsed: e.lastUsed}
}

func (e *Engine) countBlock() {
	e.statsMu.Lock()
	e.blocks++
	e.lastUsed = timecache.CachedTime()
	e.statsMu.Unlock()
}

func (e *Engine) countKeyLoad() {
	e.statsMu.Lock()
	e.keyLoads++
	e.statsMu.Unlock()
}

// loadKey copies the context's key into the hardware key registers word by
// word and programs the mode register for the given direction.
//
// Call only while the hardware lock is held. The written word count is
// re-verified against the expected key length; a mismatch can only arise
// from corruption or an injected fault, and a partial key must never be
// used, so the mismatch is fatal rather than returnable.
func (e *Engine) loadKey(c *Context, dir Direction) {
	c.keyInHardware = 0

	for i := 0; i < c.keyLen/4; i++ {
		e.backend.WriteKeyWord(i, binary.LittleEndian.Uint32(c.key[i*4:]))
		c.keyInHardware += 4
	}

	e.backend.WriteModeWord(modeWord(dir, c.keyLen))

	if c.keyInHardware < 16 || c.keyInHardware != c.keyLen {
		fatal("incomplete AES key programming detected")
	}

	e.countKeyLoad()
}

// runBlock runs one 16-byte block through the peripheral: write the four
// text words, trigger start, busy-poll the idle flag, read the four result
// words back.
//
// Call only while the hardware lock is held and after loadKey. input and
// output must each be at least BlockSize bytes and may alias; the input
// words are captured before the output is written.
//
// If the programmed key length does not match the context (no key set, or a
// fault skipped the key write), the output block is zeroed and
// ErrInvalidInputLength returned. If the result is bit-for-bit identical to
// the input, the transform did not execute: the output is zeroized and the
// process aborts. That path never returns to the caller.
func (e *Engine) runBlock(c *Context, input, output []byte) error {
	if c.keyInHardware != c.keyLen {
		Zeroize(output[:BlockSize])
		richErr := goerrors.New(ErrCodeInvalidInputLength, "block transform attempted with no key in hardware")
		return fmt.Errorf("%w: %w", ErrInvalidInputLength, richErr)
	}

	// Captured before any write so the input==output aliasing used by the
	// feedback modes cannot defeat the comparison below.
	i0 := binary.LittleEndian.Uint32(input[0:])
	i1 := binary.LittleEndian.Uint32(input[4:])
	i2 := binary.LittleEndian.Uint32(input[8:])
	i3 := binary.LittleEndian.Uint32(input[12:])

	e.backend.WriteTextWord(0, i0)
	e.backend.WriteTextWord(1, i1)
	e.backend.WriteTextWord(2, i2)
	e.backend.WriteTextWord(3, i3)

	e.backend.Start()

	for !e.backend.Idle() {
	}

	var out [blockWords]uint32
	e.backend.ReadText(&out)

	for i := 0; i < blockWords; i++ {
		binary.LittleEndian.PutUint32(output[i*4:], out[i])
	}

	// Physical security check: verify the accelerator actually ran and was
	// not skipped by external fault injection while starting the peripheral.
	// Bypassing this check requires at least one additional fault.
	if i0 == out[0] && i1 == out[1] && i2 == out[2] && i3 == out[3] {
		// Zeroize first to narrow the window for a double fault on the
		// abort step.
		Zeroize(output[:BlockSize])
		fatal("AES transform output identical to input, fault injection suspected")
	}

	e.countBlock()
	return nil
}
