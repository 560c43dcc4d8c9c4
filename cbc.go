// cbc.go: CBC mode driver.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import "fmt"

// CBCState is the caller-owned chaining state for CBC. The IV is mutated in
// place: after every call it holds the last ciphertext block (encrypt) or
// the last pre-decryption ciphertext block (decrypt), so repeated calls
// continue the chain.
type CBCState struct {
	IV [BlockSize]byte
}

// CryptCBC encrypts or decrypts a buffer in CBC mode.
//
// The input length must be a multiple of BlockSize or the call fails with
// ErrInvalidInputLength before any hardware operation. input and output may
// fully alias; on decryption the ciphertext block is captured before the
// output block is written, so in-place operation is safe.
//
// Aliasing contract per block: encrypt reads input[i], reads and overwrites
// state.IV, then writes output[i]; decrypt saves input[i], writes
// output[i], then overwrites state.IV with the saved ciphertext.
func (c *Context) CryptCBC(dir Direction, state *CBCState, input, output []byte) error {
	if c == nil || state == nil {
		return errBadInput("nil context or state")
	}
	if err := checkBuffers(input, output); err != nil {
		return err
	}
	if len(input)%BlockSize != 0 {
		return errInputLength(fmt.Sprintf("CBC requires a multiple of %d bytes (got %d)", BlockSize, len(input)))
	}
	if !c.validKeyLength() {
		return errKeyLength()
	}

	release := c.engine.lock.acquire()
	defer release()

	c.engine.loadKey(c, dir)

	if dir == Decrypt {
		saved := getBlock()
		defer putBlock(saved)

		for len(input) > 0 {
			// The ciphertext of the current block becomes the next IV; it
			// must be captured before the block transform can overwrite an
			// aliased output buffer.
			copy(saved[:], input[:BlockSize])

			if err := c.engine.runBlock(c, input, output); err != nil {
				return err
			}
			for i := 0; i < BlockSize; i++ {
				output[i] ^= state.IV[i]
			}
			copy(state.IV[:], saved[:])

			input = input[BlockSize:]
			output = output[BlockSize:]
		}
		return nil
	}

	for len(input) > 0 {
		for i := 0; i < BlockSize; i++ {
			output[i] = input[i] ^ state.IV[i]
		}
		if err := c.engine.runBlock(c, output, output); err != nil {
			return err
		}
		copy(state.IV[:], output[:BlockSize])

		input = input[BlockSize:]
		output = output[BlockSize:]
	}
	return nil
}
