// Package hwaes drives a fixed-function, single-block AES hardware engine
// and layers the standard chaining and feedback modes of operation on top
// of it.
//
// This package offers:
//   - A register-level Backend capability interface modeling the shared
//     AES peripheral (power gating, key/mode/text registers, idle poll)
//   - An Engine that programs keys and runs single 16-byte blocks with
//     fault-injection detection
//   - ECB, CBC, CFB-128, CFB-8, CTR and OFB mode drivers with caller-owned
//     chaining state for streaming use
//   - A software reference backend over crypto/aes for tests, tooling and
//     platforms without the accelerator
//   - Backend provider management with plugin architecture
//   - Secure memory zeroization and scratch-block pooling for sensitive data
//
// The hardware engine is a single global resource: every mode-of-operation
// call acquires an exclusive lock around the peripheral, reprograms the key,
// runs as many block operations as the buffer requires, and releases the
// lock on every exit path. No chaining state is retained inside the engine;
// callers thread their own state structures across calls to continue a
// logical stream.
//
// # Quick Start
//
// Basic CTR encryption against the software backend:
//
//	engine, err := hwaes.NewEngine(hwaes.NewSoftBackend())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := engine.NewContext()
//	defer ctx.Close()
//	if err := ctx.SetKey(key); err != nil {
//		log.Fatal(err)
//	}
//
//	state := &hwaes.CTRState{}
//	copy(state.Counter[:], nonce)
//	if err := ctx.CryptCTR(state, plaintext, ciphertext); err != nil {
//		log.Fatal(err)
//	}
//
// Decryption uses the same call with the same initial counter. The state is
// mutated in place, so successive calls continue the stream byte-for-byte.
//
// # Error Handling
//
// All recoverable failures are returned as standard Go errors and can be
// checked with errors.Is(). For rich error details the library integrates
// with github.com/agilira/go-errors.
//
//	err := ctx.SetKey(shortKey)
//	if errors.Is(err, hwaes.ErrInvalidKeyLength) {
//		// handle invalid key size
//	}
//
// # Security Considerations
//
// Two failure classes are deliberately unrecoverable and terminate the
// process after zeroizing sensitive buffers:
//
//   - A key-programming word count that does not match the expected key
//     length. A partially written key can only arise from corruption or an
//     injected fault, and continuing would be a silent security failure.
//   - A block transform whose output is bit-for-bit identical to its input.
//     For a real 128-bit block cipher under a real key this coincidence has
//     negligible probability; it is far more likely the signature of a
//     skipped or glitched hardware operation.
//
// Neither condition is surfaced as an error a caller could catch and retry,
// since retrying past a detected fault-injection attempt would reopen the
// exact attack window the check closes.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package hwaes
