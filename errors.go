// errors.go: Error taxonomy for the hardware AES engine.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import (
	"errors"
	"fmt"
	"os"
)

// Public standard errors for drop-in compatibility.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidKeyLength is returned when a key is not 16, 24 or 32 bytes.
	ErrInvalidKeyLength = errors.New("hwaes: invalid key length")

	// ErrInvalidInputLength is returned when an input buffer does not meet a
	// mode's length requirement (non-block-multiple for CBC, not exactly one
	// block for ECB) or when a block transform is attempted with no key
	// programmed into the hardware.
	ErrInvalidInputLength = errors.New("hwaes: invalid input length")

	// ErrBadInputData is returned for malformed arguments: nil contexts,
	// states or buffers, mismatched buffer lengths, or chaining offsets
	// outside [0,16).
	ErrBadInputData = errors.New("hwaes: bad input data")

	// ErrBackendClosed is returned when an operation is attempted against a
	// backend provider that has been shut down.
	ErrBackendClosed = errors.New("hwaes: backend closed")
)

// Error codes for rich error handling
const (
	ErrCodeInvalidKeyLength   = "AES_INVALID_KEY_LENGTH"
	ErrCodeInvalidInputLength = "AES_INVALID_INPUT_LENGTH"
	ErrCodeBadInputData       = "AES_BAD_INPUT_DATA"
	ErrCodeBackendClosed      = "AES_BACKEND_CLOSED"
)

// fatal terminates the process on a detected hardware fault. It is a
// variable so that package tests can observe the abort path without killing
// the test binary; production code never returns from it.
var fatal = func(msg string) {
	fmt.Fprintf(os.Stderr, "hwaes: fatal: %s\n", msg)
	os.Exit(1)
}
