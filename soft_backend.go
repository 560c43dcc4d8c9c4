// soft_backend.go: Software reference backend over crypto/aes.
//
// The soft backend emulates the peripheral's register protocol on top of
// the standard library AES implementation. It exists for tests, host-side
// tooling and platforms without the accelerator; the register semantics
// (little-endian key and text words, mode register encoding, idle status)
// match the hardware so the engine core cannot tell the difference.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import (
	"crypto/aes"
	"encoding/binary"
	"sync"
)

// TraceOp is a single recorded register access, used by instrumented test
// backends to verify ordering and exclusivity of hardware traffic.
type TraceOp struct {
	Name  string // "enable", "disable", "key", "mode", "text", "start", "read"
	Index int    // word index for "key" and "text", otherwise 0
	Value uint32 // word written, otherwise 0
}

// SoftBackend implements Backend in software using crypto/aes.
//
// The zero value is not usable; construct with NewSoftBackend. SoftBackend
// relies on the engine's hardware lock for exclusion and performs no
// locking of its own, except around the optional trace sink.
type SoftBackend struct {
	enabled bool
	mode    uint32
	key     [8]uint32
	text    [blockWords]uint32
	result  [blockWords]uint32
	idle    bool

	// FaultEcho forces Start to copy the input text through unchanged,
	// simulating a skipped transform. Only instrumented tests set this.
	FaultEcho bool

	traceMu sync.Mutex
	trace   func(TraceOp)
}

// NewSoftBackend creates a software reference backend.
func NewSoftBackend() *SoftBackend {
	return &SoftBackend{idle: true}
}

// SetTrace installs a sink receiving every register access. Passing nil
// removes the sink. The sink is invoked synchronously from the accessing
// goroutine.
func (b *SoftBackend) SetTrace(sink func(TraceOp)) {
	b.traceMu.Lock()
	b.trace = sink
	b.traceMu.Unlock()
}

func (b *SoftBackend) record(op TraceOp) {
	b.traceMu.Lock()
	sink := b.trace
	if sink != nil {
		sink(op)
	}
	b.traceMu.Unlock()
}

// Enable powers on the emulated peripheral.
func (b *SoftBackend) Enable() {
	b.enabled = true
	b.record(TraceOp{Name: "enable"})
}

// Disable powers off the emulated peripheral. The programmed key does not
// survive, matching the shared-hardware contract.
func (b *SoftBackend) Disable() {
	b.enabled = false
	b.key = [8]uint32{}
	b.record(TraceOp{Name: "disable"})
}

// WriteKeyWord stores one key register word.
func (b *SoftBackend) WriteKeyWord(i int, w uint32) {
	b.key[i] = w
	b.record(TraceOp{Name: "key", Index: i, Value: w})
}

// WriteModeWord stores the mode register.
func (b *SoftBackend) WriteModeWord(w uint32) {
	b.mode = w
	b.record(TraceOp{Name: "mode", Value: w})
}

// WriteTextWord stores one text register word.
func (b *SoftBackend) WriteTextWord(i int, w uint32) {
	b.text[i] = w
	b.record(TraceOp{Name: "text", Index: i, Value: w})
}

// Start runs the block transform on the programmed text registers.
func (b *SoftBackend) Start() {
	b.record(TraceOp{Name: "start"})
	b.idle = false

	if b.FaultEcho {
		b.result = b.text
		b.idle = true
		return
	}

	keyBytes := keyBytesFromMode(b.mode)
	key := make([]byte, keyBytes)
	for i := 0; i < keyBytes/4; i++ {
		binary.LittleEndian.PutUint32(key[i*4:], b.key[i])
	}

	var in, out [BlockSize]byte
	for i := 0; i < blockWords; i++ {
		binary.LittleEndian.PutUint32(in[i*4:], b.text[i])
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		// Unreachable for the lengths the mode register can encode.
		panic(err)
	}
	if b.mode&decryptModeBit != 0 {
		block.Decrypt(out[:], in[:])
	} else {
		block.Encrypt(out[:], in[:])
	}

	for i := 0; i < blockWords; i++ {
		b.result[i] = binary.LittleEndian.Uint32(out[i*4:])
	}
	Zeroize(key)
	b.idle = true
}

// Idle reports completion of the last Start.
func (b *SoftBackend) Idle() bool {
	return b.idle
}

// ReadText copies out the transform result.
func (b *SoftBackend) ReadText(out *[blockWords]uint32) {
	*out = b.result
	b.record(TraceOp{Name: "read"})
}
