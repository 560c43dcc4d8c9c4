// ecb.go: Single-block ECB passthrough.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import "fmt"

// CryptECB runs exactly one 16-byte block through the peripheral in the
// requested direction. There is no chaining state.
//
// input and output must each be exactly BlockSize bytes and may alias.
// Returns ErrInvalidKeyLength if no valid key is set and ErrBadInputData
// for wrongly sized buffers.
func (c *Context) CryptECB(dir Direction, input, output []byte) error {
	if c == nil {
		return errBadInput("nil context")
	}
	if len(input) != BlockSize || len(output) != BlockSize {
		return errBadInput(fmt.Sprintf("ECB operates on exactly one %d-byte block (got %d in, %d out)", BlockSize, len(input), len(output)))
	}
	if !c.validKeyLength() {
		return errKeyLength()
	}

	release := c.engine.lock.acquire()
	defer release()

	c.engine.loadKey(c, dir)
	return c.engine.runBlock(c, input, output)
}
