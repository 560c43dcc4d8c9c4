// context.go: Caller-owned cipher context holding key material.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import (
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// Context is the long-lived entity a caller owns across mode operations. It
// holds the raw key bytes and tracks whether the hardware's key register
// file currently matches this context.
//
// A Context is bound to the Engine that created it. Contexts are not safe
// for concurrent use; distinct contexts on the same engine are, since every
// mode call holds the engine's hardware lock for its full duration.
type Context struct {
	engine *Engine
	key    [32]byte
	keyLen int // bytes; 0 until SetKey succeeds

	// keyInHardware counts the key bytes written to the hardware register
	// file for this context. The peripheral is shared mutable state, so the
	// count is reset on SetKey and re-established under the hardware lock
	// by every mode operation before any block runs.
	keyInHardware int
}

// NewContext creates an empty cipher context bound to the engine. The
// context holds no key until SetKey succeeds.
func (e *Engine) NewContext() *Context {
	return &Context{engine: e}
}

// SetKey stores an AES key of 16, 24 or 32 bytes (AES-128/192/256).
//
// Any other length fails with ErrInvalidKeyLength and leaves previously
// stored key material untouched. On success the hardware copy of the key is
// marked stale, forcing reprogramming on the next mode operation.
func (c *Context) SetKey(key []byte) error {
	switch len(key) {
	case 16, 24, 32:
	default:
		richErr := goerrors.New(ErrCodeInvalidKeyLength, fmt.Sprintf("key must be 16, 24 or 32 bytes (got %d)", len(key)))
		return fmt.Errorf("%w: %w", ErrInvalidKeyLength, richErr)
	}

	Zeroize(c.key[:])
	c.keyLen = copy(c.key[:], key)
	c.keyInHardware = 0
	return nil
}

// Close zeroizes the stored key material. The context can be reused after
// another successful SetKey. No secret bytes outlive the call.
func (c *Context) Close() {
	Zeroize(c.key[:])
	c.keyLen = 0
	c.keyInHardware = 0
}

// validKeyLength reports whether a usable key is stored.
func (c *Context) validKeyLength() bool {
	return c.keyLen == 16 || c.keyLen == 24 || c.keyLen == 32
}

func errKeyLength() error {
	richErr := goerrors.New(ErrCodeInvalidKeyLength, "context has no valid key, call SetKey first")
	return fmt.Errorf("%w: %w", ErrInvalidKeyLength, richErr)
}

func errBadInput(msg string) error {
	richErr := goerrors.New(ErrCodeBadInputData, msg)
	return fmt.Errorf("%w: %w", ErrBadInputData, richErr)
}

func errInputLength(msg string) error {
	richErr := goerrors.New(ErrCodeInvalidInputLength, msg)
	return fmt.Errorf("%w: %w", ErrInvalidInputLength, richErr)
}
