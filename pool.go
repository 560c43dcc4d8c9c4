// pool.go: Pooling of block-sized scratch buffers for mode bookkeeping.
//
// CBC decryption and the byte-feedback modes need a 16-byte scratch block
// per call (saved ciphertext, generated keystream). The blocks hold live
// key-stream or ciphertext material, so they are zeroed before being
// returned to the pool.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import "sync"

var blockPool = sync.Pool{
	New: func() interface{} {
		return new([BlockSize]byte)
	},
}

// getBlock retrieves a zeroed 16-byte scratch block from the pool.
func getBlock() *[BlockSize]byte {
	return blockPool.Get().(*[BlockSize]byte)
}

// putBlock zeroes a scratch block and returns it to the pool. Zeroing
// happens on return rather than on reuse so keystream bytes never sit in
// the pool between operations.
func putBlock(b *[BlockSize]byte) {
	if b == nil {
		return
	}
	Zeroize(b[:])
	blockPool.Put(b)
}
