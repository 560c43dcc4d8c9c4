// cfb.go: CFB-128 and CFB-8 mode drivers.
//
// Both variants turn the block transform into a byte stream by encrypting
// the feedback register and XORing its output with the data. The hardware
// is always programmed for the encrypt direction, even when the logical
// operation is decryption: CFB only ever encrypts the IV to produce a
// keystream.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

// CFBState is the caller-owned chaining state for CFB-128. IV doubles as
// the current keystream block: at Offset 0 it is encrypted in place, and
// each consumed position is overwritten with the ciphertext byte, so the
// register always carries the evolving ciphertext feedback.
type CFBState struct {
	IV     [BlockSize]byte
	Offset int // position within the current keystream block, in [0,16)
}

// CFB8State is the caller-owned chaining state for CFB-8. The IV is a
// rolling shift register: after every byte it shifts left by one and the
// ciphertext byte is appended.
type CFB8State struct {
	IV [BlockSize]byte
}

// CryptCFB128 encrypts or decrypts a buffer in CFB-128 mode, one byte at a
// time. Arbitrary lengths are supported and calls may be split at any byte
// boundary as long as the same state is threaded through.
//
// input and output must be the same length and may alias: each ciphertext
// byte is read before the corresponding output byte is written.
func (c *Context) CryptCFB128(dir Direction, state *CFBState, input, output []byte) error {
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
	if dir == Decrypt {
		for k := range input {
			if n == 0 {
				if err := c.engine.runBlock(c, state.IV[:], state.IV[:]); err != nil {
					return err
				}
			}
			ct := input[k]
			output[k] = ct ^ state.IV[n]
			// The ciphertext byte, not the recovered plaintext, feeds back.
			state.IV[n] = ct

			n = (n + 1) & 0x0F
		}
	} else {
		for k := range input {
			if n == 0 {
				if err := c.engine.runBlock(c, state.IV[:], state.IV[:]); err != nil {
					return err
				}
			}
			ct := state.IV[n] ^ input[k]
			output[k] = ct
			state.IV[n] = ct

			n = (n + 1) & 0x0F
		}
	}
	state.Offset = n
	return nil
}

// CryptCFB8 encrypts or decrypts a buffer in CFB-8 mode. Every byte costs a
// full block transform of the 16-byte shift register, making this the
// finest-grained and most expensive feedback variant.
//
// After each byte the register shifts left by one byte and the ciphertext
// byte is appended; encrypt feeds back the byte it just produced, decrypt
// feeds back the input byte, both being the actual ciphertext on the wire.
// input and output may alias.
func (c *Context) CryptCFB8(dir Direction, state *CFB8State, input, output []byte) error {
	if c == nil || state == nil {
		return errBadInput("nil context or state")
	}
	if err := checkBuffers(input, output); err != nil {
		return err
	}
	if !c.validKeyLength() {
		return errKeyLength()
	}

	release := c.engine.lock.acquire()
	defer release()

	c.engine.loadKey(c, Encrypt)

	ks := getBlock()
	defer putBlock(ks)

	for k := range input {
		if err := c.engine.runBlock(c, state.IV[:], ks[:]); err != nil {
			return err
		}

		in := input[k]
		out := ks[0] ^ in
		output[k] = out

		feedback := out
		if dir == Decrypt {
			feedback = in
		}

		copy(state.IV[:], state.IV[1:])
		state.IV[BlockSize-1] = feedback
	}
	return nil
}
