// keyutils.go: Key utilities for generation, import/export, zeroization and
// fingerprinting.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/crypto/blake2b"
)

// Zeroize securely wipes a byte slice from memory.
//
// This function overwrites all bytes in the slice with zeros to prevent
// sensitive data from remaining in memory after use. It modifies the
// original slice in place.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ValidateKeySize checks that a key has a length usable with AES
// (16, 24 or 32 bytes).
//
// Returns ErrInvalidKeyLength for any other length, nil if valid.
func ValidateKeySize(key []byte) error {
	switch len(key) {
	case 16, 24, 32:
		return nil
	default:
		richErr := goerrors.New(ErrCodeInvalidKeyLength, fmt.Sprintf("key size must be 16, 24 or 32 bytes, got %d", len(key)))
		return fmt.Errorf("%w: %w", ErrInvalidKeyLength, richErr)
	}
}

// GenerateKey generates a cryptographically secure random AES key of the
// given size (16, 24 or 32 bytes).
//
// The key is generated with the operating system's secure random number
// generator and is suitable for direct use with Context.SetKey.
func GenerateKey(size int) ([]byte, error) {
	switch size {
	case 16, 24, 32:
	default:
		richErr := goerrors.New(ErrCodeInvalidKeyLength, fmt.Sprintf("key size must be 16, 24 or 32 bytes, got %d", size))
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyLength, richErr)
	}

	key := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, goerrors.Wrap(err, "KEY_GEN_ERROR", "failed to generate key")
	}
	return key, nil
}

// KeyToHex encodes a key as a lowercase hexadecimal string.
func KeyToHex(key []byte) string {
	return hex.EncodeToString(key)
}

// KeyFromHex decodes a hexadecimal string to a key.
//
// The input may contain upper or lower case hexadecimal characters. The
// decoded length is not validated here; use ValidateKeySize before handing
// the result to SetKey.
func KeyFromHex(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, goerrors.Wrap(err, "HEX_DECODE_ERROR", "failed to decode hex key")
	}
	return key, nil
}

// KeyFingerprint generates a short identifier for a key (non-cryptographic).
//
// The fingerprint is the first 8 bytes of the BLAKE2b-256 digest of the key,
// rendered as 16 hexadecimal characters. It is useful for logging and for
// identifying keys without exposing key material; it is not a substitute
// for key authentication.
//
// Returns an empty string for an empty key.
func KeyFingerprint(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	hash := blake2b.Sum256(key)
	return fmt.Sprintf("%016x", hash[:8])
}
