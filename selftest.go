// selftest.go: Known-answer self test against NIST SP 800-38A vectors.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import (
	"bytes"
	"encoding/hex"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// SP 800-38A AES-128 example vectors. Every mode shares the key and the
// 64-byte plaintext; CFB-8 uses the 18-byte prefix per the standard.
var (
	katKey = mustHex("2b7e151628aed2a6abf7158809cf4f3c")
	katIV  = mustHex("000102030405060708090a0b0c0d0e0f")
	katCTR = mustHex("f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff")

	katPlain = mustHex(
		"6bc1bee22e409f96e93d7e117393172a" +
			"ae2d8a571e03ac9c9eb76fac45af8e51" +
			"30c81c46a35ce411e5fbc1191a0a52ef" +
			"f69f2445df4f9b17ad2b417be66c3710")

	katECB = mustHex(
		"3ad77bb40d7a3660a89ecaf32466ef97" +
			"f5d3d58503b9699de785895a96fdbaaf" +
			"43b1cd7f598ece23881b00e3ed030688" +
			"7b0c785e27e8ad3f8223207104725dd4")

	katCBC = mustHex(
		"7649abac8119b246cee98e9b12e9197d" +
			"5086cb9b507219ee95db113a917678b2" +
			"73bed6b8e3c1743b7116e69e22229516" +
			"3ff1caa1681fac09120eca307586e1a7")

	katCFB128 = mustHex(
		"3b3fd92eb72dad20333449f8e83cfb4a" +
			"c8a64537a0b3a93fcde3cdad9f1ce58b" +
			"26751f67a3cbb140b1808cf187a4f4df" +
			"c04b05357c5d1c0eeac4c66f9ff7f2e6")

	katOFB = mustHex(
		"3b3fd92eb72dad20333449f8e83cfb4a" +
			"7789508d16918f03f53c52dac54ed825" +
			"9740051e9c5fecf64344f7a82260edcc" +
			"304c6528f659c77866a510d9c1d6ae5e")

	katCTRCipher = mustHex(
		"874d6191b620e3261bef6864990db6ce" +
			"9806f66b7970fdff8617187bb9fffdff" +
			"5ae4df3edbd5d35e5b4f09020db03eab" +
			"1e031dda2fbe03d1792170a0f3009cee")

	katCFB8Plain  = mustHex("6bc1bee22e409f96e93d7e117393172aae2d")
	katCFB8Cipher = mustHex("3b79424c9c0dd436bace9e0ed4586a4f32b9")
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// SelfTest runs the NIST SP 800-38A AES-128 known-answer vectors for all
// six modes through the engine, in both directions where the mode
// distinguishes them. It returns nil when every vector matches and a coded
// error naming the first failing mode otherwise.
//
// The test exercises the full hardware path (lock, key programming, block
// operations), so it also serves as a power-up check of an attached
// peripheral.
func SelfTest(engine *Engine) error {
	if engine == nil {
		return errBadInput("nil engine")
	}

	ctx := engine.NewContext()
	defer ctx.Close()
	if err := ctx.SetKey(katKey); err != nil {
		return err
	}

	out := make([]byte, len(katPlain))
	back := make([]byte, len(katPlain))

	// ECB, block by block, both directions.
	for i := 0; i < len(katPlain); i += BlockSize {
		if err := ctx.CryptECB(Encrypt, katPlain[i:i+BlockSize], out[i:i+BlockSize]); err != nil {
			return err
		}
	}
	if !bytes.Equal(out, katECB) {
		return katMismatch("ECB encrypt")
	}
	for i := 0; i < len(katECB); i += BlockSize {
		if err := ctx.CryptECB(Decrypt, katECB[i:i+BlockSize], back[i:i+BlockSize]); err != nil {
			return err
		}
	}
	if !bytes.Equal(back, katPlain) {
		return katMismatch("ECB decrypt")
	}

	// CBC.
	cbc := &CBCState{}
	copy(cbc.IV[:], katIV)
	if err := ctx.CryptCBC(Encrypt, cbc, katPlain, out); err != nil {
		return err
	}
	if !bytes.Equal(out, katCBC) {
		return katMismatch("CBC encrypt")
	}
	copy(cbc.IV[:], katIV)
	if err := ctx.CryptCBC(Decrypt, cbc, katCBC, back); err != nil {
		return err
	}
	if !bytes.Equal(back, katPlain) {
		return katMismatch("CBC decrypt")
	}

	// CFB-128.
	cfb := &CFBState{}
	copy(cfb.IV[:], katIV)
	if err := ctx.CryptCFB128(Encrypt, cfb, katPlain, out); err != nil {
		return err
	}
	if !bytes.Equal(out, katCFB128) {
		return katMismatch("CFB128 encrypt")
	}
	cfb = &CFBState{}
	copy(cfb.IV[:], katIV)
	if err := ctx.CryptCFB128(Decrypt, cfb, katCFB128, back); err != nil {
		return err
	}
	if !bytes.Equal(back, katPlain) {
		return katMismatch("CFB128 decrypt")
	}

	// CFB-8.
	cfb8 := &CFB8State{}
	copy(cfb8.IV[:], katIV)
	out8 := make([]byte, len(katCFB8Plain))
	if err := ctx.CryptCFB8(Encrypt, cfb8, katCFB8Plain, out8); err != nil {
		return err
	}
	if !bytes.Equal(out8, katCFB8Cipher) {
		return katMismatch("CFB8 encrypt")
	}
	cfb8 = &CFB8State{}
	copy(cfb8.IV[:], katIV)
	if err := ctx.CryptCFB8(Decrypt, cfb8, katCFB8Cipher, out8); err != nil {
		return err
	}
	if !bytes.Equal(out8, katCFB8Plain) {
		return katMismatch("CFB8 decrypt")
	}

	// OFB.
	ofb := &OFBState{}
	copy(ofb.IV[:], katIV)
	if err := ctx.CryptOFB(ofb, katPlain, out); err != nil {
		return err
	}
	if !bytes.Equal(out, katOFB) {
		return katMismatch("OFB")
	}

	// CTR.
	ctr := &CTRState{}
	copy(ctr.Counter[:], katCTR)
	if err := ctx.CryptCTR(ctr, katPlain, out); err != nil {
		return err
	}
	if !bytes.Equal(out, katCTRCipher) {
		return katMismatch("CTR")
	}

	return nil
}

func katMismatch(mode string) error {
	return goerrors.New("AES_SELFTEST_FAILED", fmt.Sprintf("known-answer test failed for %s", mode))
}
