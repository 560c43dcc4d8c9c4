// streaming_test.go: Test cases for the CTR streaming wrappers.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/agilira/hephaestus"
)

func TestStreamWriter_MatchesOneShot(t *testing.T) {
	engine := newTestEngine(t)
	ctx := newTestContext(t, engine, patternKey(32))
	defer ctx.Close()

	plain := patternData(200_000) // several chunks plus a partial one
	counter := testIV()

	want := make([]byte, len(plain))
	st := &hwaes.CTRState{}
	copy(st.Counter[:], counter)
	if err := ctx.CryptCTR(st, plain, want); err != nil {
		t.Fatalf("CryptCTR: %v", err)
	}

	var sink bytes.Buffer
	sw, err := hwaes.NewStreamWriter(&sink, ctx, counter)
	if err != nil {
		t.Fatalf("NewStreamWriter: %v", err)
	}

	// Awkward write sizes to exercise chunking and state continuation.
	for off := 0; off < len(plain); {
		n := 30_000
		if off+n > len(plain) {
			n = len(plain) - off
		}
		wrote, werr := sw.Write(plain[off : off+n])
		if werr != nil {
			t.Fatalf("Write: %v", werr)
		}
		if wrote != n {
			t.Fatalf("Write consumed %d, want %d", wrote, n)
		}
		off += n
	}
	if err := sw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if !bytes.Equal(sink.Bytes(), want) {
		t.Error("streamed ciphertext differs from one-shot CTR")
	}

	if _, err := sw.Write([]byte{1}); err == nil {
		t.Error("Write after Close should fail")
	}
}

func TestStreamReader_RoundTrip(t *testing.T) {
	engine := newTestEngine(t)
	ctx := newTestContext(t, engine, patternKey(16))
	defer ctx.Close()

	plain := patternData(70_000)
	counter := testIV()

	var encrypted bytes.Buffer
	sw, err := hwaes.NewStreamWriter(&encrypted, ctx, counter)
	if err != nil {
		t.Fatalf("NewStreamWriter: %v", err)
	}
	if _, err := sw.Write(plain); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	sr, err := hwaes.NewStreamReader(&encrypted, ctx, counter)
	if err != nil {
		t.Fatalf("NewStreamReader: %v", err)
	}
	decrypted, err := io.ReadAll(sr)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if err := sr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if !bytes.Equal(decrypted, plain) {
		t.Error("stream round-trip mismatch")
	}

	if _, err := sr.Read(make([]byte, 1)); err == nil {
		t.Error("Read after Close should fail")
	}
}

func TestStream_Validation(t *testing.T) {
	engine := newTestEngine(t)
	ctx := newTestContext(t, engine, patternKey(16))
	defer ctx.Close()

	var sink bytes.Buffer

	if _, err := hwaes.NewStreamWriter(nil, ctx, testIV()); !errors.Is(err, hwaes.ErrBadInputData) {
		t.Errorf("nil writer: got %v, want ErrBadInputData", err)
	}
	if _, err := hwaes.NewStreamWriter(&sink, ctx, testIV()[:8]); !errors.Is(err, hwaes.ErrBadInputData) {
		t.Errorf("short counter: got %v, want ErrBadInputData", err)
	}

	empty := engine.NewContext()
	if _, err := hwaes.NewStreamWriter(&sink, empty, testIV()); !errors.Is(err, hwaes.ErrInvalidKeyLength) {
		t.Errorf("keyless context: got %v, want ErrInvalidKeyLength", err)
	}
	if _, err := hwaes.NewStreamReader(&sink, empty, testIV()); !errors.Is(err, hwaes.ErrInvalidKeyLength) {
		t.Errorf("keyless context: got %v, want ErrInvalidKeyLength", err)
	}
}
