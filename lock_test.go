// lock_test.go: Hardware lock exclusivity under concurrent callers.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/agilira/hephaestus"
)

// TestConcurrentCallersDoNotInterleave issues multi-block operations from
// two goroutines against one engine and inspects the recorded register
// traffic: every power-on..power-off window must contain the register
// sequence of exactly one caller, with the key reprogrammed at the start
// of every window.
func TestConcurrentCallersDoNotInterleave(t *testing.T) {
	backend := hwaes.NewSoftBackend()
	engine, err := hwaes.NewEngine(backend)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	var ops []hwaes.TraceOp
	backend.SetTrace(func(op hwaes.TraceOp) { ops = append(ops, op) })

	keyA := bytes.Repeat([]byte{0x11}, 16)
	keyB := bytes.Repeat([]byte{0x22}, 16)

	const iterations = 20
	const blocks = 8

	run := func(key []byte) {
		ctx := engine.NewContext()
		defer ctx.Close()
		if err := ctx.SetKey(key); err != nil {
			t.Errorf("SetKey: %v", err)
			return
		}

		in := patternData(blocks * hwaes.BlockSize)
		out := make([]byte, len(in))
		for i := 0; i < iterations; i++ {
			st := &hwaes.CBCState{}
			if err := ctx.CryptCBC(hwaes.Encrypt, st, in, out); err != nil {
				t.Errorf("CryptCBC: %v", err)
				return
			}
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); run(keyA) }()
	go func() { defer wg.Done(); run(keyB) }()
	wg.Wait()

	backend.SetTrace(nil)

	// Walk the trace: windows must be properly bracketed and internally
	// uniform.
	inWindow := false
	sawKey := false
	var windowKey uint32
	windows := 0

	for i, op := range ops {
		switch op.Name {
		case "enable":
			if inWindow {
				t.Fatalf("op %d: nested enable", i)
			}
			inWindow = true
			sawKey = false
			windows++
		case "disable":
			if !inWindow {
				t.Fatalf("op %d: disable without enable", i)
			}
			inWindow = false
		case "key":
			if !inWindow {
				t.Fatalf("op %d: key write outside window", i)
			}
			if !sawKey {
				windowKey = op.Value
				sawKey = true
			} else if op.Value != windowKey {
				t.Fatalf("op %d: interleaved key material within one window (%08x then %08x)", i, windowKey, op.Value)
			}
		case "mode", "text", "start", "read":
			if !inWindow {
				t.Fatalf("op %d: %s outside window", i, op.Name)
			}
			if !sawKey {
				t.Fatalf("op %d: %s before key reprogramming in this window", i, op.Name)
			}
		}
	}
	if inWindow {
		t.Fatal("trace ends inside a window")
	}
	if want := 2 * iterations; windows != want {
		t.Errorf("windows = %d, want %d (one per mode call)", windows, want)
	}
}
