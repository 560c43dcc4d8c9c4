// ofb.go: OFB mode driver.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

// OFBState is the caller-owned chaining state for OFB. The IV is overwritten
// in place with each freshly generated keystream block, so the feedback is
// the keystream chained into itself rather than a counter.
type OFBState struct {
	IV     [BlockSize]byte
	Offset int // position within the current keystream block, in [0,16)
}

// CryptOFB encrypts or decrypts a buffer in OFB mode. Encryption and
// decryption are the same operation; the hardware is always programmed for
// the encrypt direction.
//
// Arbitrary lengths are supported and calls may be split at any byte
// boundary with the same state threaded through. input and output must be
// the same length and may alias.
func (c *Context) CryptOFB(state *OFBState, input, output []byte) error {
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
			if err := c.engine.runBlock(c, state.IV[:], state.IV[:]); err != nil {
				return err
			}
		}
		output[k] = input[k] ^ state.IV[n]

		n = (n + 1) & 0x0F
	}
	state.Offset = n
	return nil
}
