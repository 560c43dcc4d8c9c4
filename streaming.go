// streaming.go: Streaming encryption/decryption over CTR mode.
//
// This module wraps the CTR driver in io.Writer/io.Reader shapes so large
// data can be pushed through the hardware engine in chunks without loading
// everything into memory. The CTR chain state is threaded across calls, so
// the produced stream is byte-for-byte identical to a single call over the
// concatenated input.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import (
	"io"

	goerrors "github.com/agilira/go-errors"
)

// DefaultChunkSize is the per-call buffer size used by the streaming
// wrappers (64KB). It bounds how long the hardware lock is held per Write
// or Read, trading throughput against latency for other engine users.
const DefaultChunkSize = 64 * 1024

// StreamWriter encrypts (or, CTR being symmetric, decrypts) everything
// written to it and forwards the result to the underlying writer.
//
// StreamWriter is not safe for concurrent use. Close zeroizes the chain
// state; it does not close the underlying writer.
type StreamWriter struct {
	w      io.Writer
	ctx    *Context
	state  CTRState
	buf    []byte
	closed bool
}

// NewStreamWriter creates a streaming CTR writer over an engine context.
// counter is the initial 16-byte counter block (the caller guarantees its
// uniqueness per key).
//
// The context must already hold a valid key; the key can be any supported
// AES size.
func NewStreamWriter(w io.Writer, ctx *Context, counter []byte) (*StreamWriter, error) {
	if w == nil || ctx == nil {
		return nil, errBadInput("nil writer or context")
	}
	if len(counter) != BlockSize {
		return nil, errBadInput("counter must be exactly one block")
	}
	if !ctx.validKeyLength() {
		return nil, errKeyLength()
	}

	sw := &StreamWriter{
		w:   w,
		ctx: ctx,
		buf: make([]byte, DefaultChunkSize),
	}
	copy(sw.state.Counter[:], counter)
	return sw, nil
}

// Write encrypts p in chunks and writes the ciphertext to the underlying
// writer. It returns the number of plaintext bytes consumed.
func (sw *StreamWriter) Write(p []byte) (int, error) {
	if sw.closed {
		return 0, goerrors.New("STREAM_CLOSED", "write on closed stream")
	}

	written := 0
	for len(p) > 0 {
		n := len(p)
		if n > len(sw.buf) {
			n = len(sw.buf)
		}

		if err := sw.ctx.CryptCTR(&sw.state, p[:n], sw.buf[:n]); err != nil {
			return written, err
		}
		if _, err := sw.w.Write(sw.buf[:n]); err != nil {
			return written, err
		}

		written += n
		p = p[n:]
	}
	return written, nil
}

// Close zeroizes the chain state and the chunk buffer. The underlying
// writer is left open.
func (sw *StreamWriter) Close() error {
	if sw.closed {
		return nil
	}
	sw.closed = true
	Zeroize(sw.state.Counter[:])
	Zeroize(sw.state.Stream[:])
	Zeroize(sw.buf)
	return nil
}

// StreamReader decrypts (or encrypts) everything read through it from the
// underlying reader.
//
// StreamReader is not safe for concurrent use. Close zeroizes the chain
// state; it does not close the underlying reader.
type StreamReader struct {
	r      io.Reader
	ctx    *Context
	state  CTRState
	closed bool
}

// NewStreamReader creates a streaming CTR reader over an engine context.
// counter must match the initial counter the stream was produced with.
func NewStreamReader(r io.Reader, ctx *Context, counter []byte) (*StreamReader, error) {
	if r == nil || ctx == nil {
		return nil, errBadInput("nil reader or context")
	}
	if len(counter) != BlockSize {
		return nil, errBadInput("counter must be exactly one block")
	}
	if !ctx.validKeyLength() {
		return nil, errKeyLength()
	}

	sr := &StreamReader{r: r, ctx: ctx}
	copy(sr.state.Counter[:], counter)
	return sr, nil
}

// Read fills p with the transformed stream. The transform happens in place
// on the bytes read from the underlying reader.
func (sr *StreamReader) Read(p []byte) (int, error) {
	if sr.closed {
		return 0, goerrors.New("STREAM_CLOSED", "read on closed stream")
	}

	n, err := sr.r.Read(p)
	if n > 0 {
		if cerr := sr.ctx.CryptCTR(&sr.state, p[:n], p[:n]); cerr != nil {
			return 0, cerr
		}
	}
	return n, err
}

// Close zeroizes the chain state. The underlying reader is left open.
func (sr *StreamReader) Close() error {
	if sr.closed {
		return nil
	}
	sr.closed = true
	Zeroize(sr.state.Counter[:])
	Zeroize(sr.state.Stream[:])
	return nil
}
