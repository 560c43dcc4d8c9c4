// modes.go: Shared argument validation for the mode-of-operation drivers.
//
// The original hardware port validated references and offsets in only one
// of its six modes. Here validation is uniform: every entry point rejects
// nil state, mismatched buffers and out-of-range offsets with
// ErrBadInputData before any hardware is touched.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import "fmt"

// checkBuffers validates the input/output pair shared by every streaming
// mode. The buffers must be the same length; either may be empty. They may
// fully alias (in-place operation) — each mode documents its own ordering
// guarantees for partial overlap.
func checkBuffers(input, output []byte) error {
	if len(input) != len(output) {
		return errBadInput(fmt.Sprintf("input length %d does not match output length %d", len(input), len(output)))
	}
	return nil
}

// checkOffset validates a chaining offset, which must lie within the
// current keystream block.
func checkOffset(off int) error {
	if off < 0 || off >= BlockSize {
		return errBadInput(fmt.Sprintf("chaining offset %d outside [0,16)", off))
	}
	return nil
}
