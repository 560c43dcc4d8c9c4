// backend.go: Register-level capability interface for the AES peripheral.
//
// The engine core never touches memory-mapped registers directly; it is
// written against the Backend interface below so it can run unmodified over
// real hardware, the software reference backend, or an instrumented stub.
// Production backends implement this interface over memory-mapped I/O and
// are provided by platform/board-support code.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

// BlockSize is the AES block size in bytes. Every hardware operation
// transforms exactly one block.
const BlockSize = 16

// blockWords is the number of 32-bit register words per block.
const blockWords = BlockSize / 4

// Direction selects between the forward and inverse block transform.
type Direction int

const (
	// Encrypt runs the forward AES transform.
	Encrypt Direction = iota
	// Decrypt runs the inverse AES transform.
	Decrypt
)

// decryptModeBit is the direction flag within the hardware mode register.
const decryptModeBit = 4

// modeWord encodes {direction, key-length class} the way the hardware mode
// register expects it: bit 2 selects the inverse transform, the low bits
// carry keyBytes/8 - 2 (0, 1, 2 for AES-128/192/256).
func modeWord(dir Direction, keyBytes int) uint32 {
	w := uint32(keyBytes/8 - 2)
	if dir == Decrypt {
		w += decryptModeBit
	}
	return w
}

// keyBytesFromMode recovers the key length in bytes from a mode word.
func keyBytesFromMode(w uint32) int {
	return int(w&3+2) * 8
}

// Backend is the hardware capability boundary: power gating plus the key,
// mode, text, start and status registers of the shared AES unit. All word
// accesses are atomic 32-bit operations.
//
// Backends are not required to be safe for concurrent use; the engine's
// hardware lock guarantees at most one caller drives the backend at a time,
// and that Enable/Disable bracket every register sequence.
type Backend interface {
	// Enable powers and clocks the peripheral. Called after the hardware
	// lock is taken and before any register access.
	Enable()

	// Disable gates the peripheral off again. Called before the hardware
	// lock is released; any programmed key must be considered lost.
	Disable()

	// WriteKeyWord writes the i-th 32-bit word of the key register file.
	WriteKeyWord(i int, w uint32)

	// WriteModeWord writes the mode register (direction and key-length
	// class, see modeWord).
	WriteModeWord(w uint32)

	// WriteTextWord writes the i-th 32-bit word of the text register file.
	WriteTextWord(i int, w uint32)

	// Start triggers the block operation on the programmed text.
	Start()

	// Idle reports whether the peripheral has completed the operation. The
	// engine busy-polls this flag; the hardware is specified to always
	// complete, so no timeout is applied.
	Idle() bool

	// ReadText copies the four words of the text register file, which hold
	// the transform result once Idle reports true.
	ReadText(out *[blockWords]uint32)
}
