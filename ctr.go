// ctr.go: CTR mode driver.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

// CTRState is the caller-owned chaining state for CTR. Counter is treated
// as a 128-bit big-endian integer and incremented exactly once per 16
// consumed bytes, at the moment a fresh keystream block is generated.
// Stream holds the current keystream block; Offset is the next unconsumed
// position within it.
type CTRState struct {
	Counter [BlockSize]byte
	Stream  [BlockSize]byte
	Offset  int // position within Stream, in [0,16)
}

// CryptCTR encrypts or decrypts a buffer in CTR mode. Encryption and
// decryption are the same operation; the hardware is always programmed for
// the encrypt direction since only the counter is ever block-encrypted.
//
// Arbitrary lengths are supported and calls may be split at any byte
// boundary with the same state threaded through. input and output must be
// the same length and may alias.
func (c *Context) CryptCTR(state *CTRState, input, output []byte) error {
	if c == nil || state == nil {
		return errBadInput("nil context or state")
	}
	if err := checkBuffers(input, output); err != nil {
		return err
	}
	if err := checkOffset(state.Offset); err != nil {
		return err
	}
	if !c.validKeyLength() {
		return errKeyLength()
	}

	release := c.engine.lock.acquire()
	defer release()

	c.engine.loadKey(c, Encrypt)

	n := state.Offset
	for k := range input {
		if n == 0 {
			if err := c.engine.runBlock(c, state.Counter[:], state.Stream[:]); err != nil {
				return err
			}

			// Big-endian increment: bump the last byte, carry leftward on
			// wraparound.
			for i := BlockSize; i > 0; i-- {
				state.Counter[i-1]++
				if state.Counter[i-1] != 0 {
					break
				}
			}
		}
		output[k] = input[k] ^ state.Stream[n]

		n = (n + 1) & 0x0F
	}
	state.Offset = n
	return nil
}
