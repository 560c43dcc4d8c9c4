// crypt.go: encrypt and decrypt commands.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	hwaes "github.com/agilira/hephaestus"
)

var (
	modeName string
	keyHex   string
	ivHex    string
	outPath  string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [file]",
	Short: "Encrypt a file or stdin",
	Long: `Encrypt data with the selected mode of operation. Reads the named
file, or stdin when no file is given, and writes raw ciphertext to the
--out file or stdout.

ECB processes exactly one 16-byte block and CBC requires a multiple of 16
bytes; the stream modes (cfb, cfb8, ctr, ofb) accept any length.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrypt(hwaes.Encrypt, args)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [file]",
	Short: "Decrypt a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrypt(hwaes.Decrypt, args)
	},
}

func init() {
	for _, c := range []*cobra.Command{encryptCmd, decryptCmd} {
		c.Flags().StringVarP(&modeName, "mode", "m", "ctr", "mode of operation (ecb, cbc, cfb, cfb8, ctr, ofb)")
		c.Flags().StringVarP(&keyHex, "key", "k", "", "AES key in hex (16, 24 or 32 bytes)")
		c.Flags().StringVar(&ivHex, "iv", "", "IV or initial counter in hex (16 bytes)")
		c.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
		_ = c.MarkFlagRequired("key")
	}
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
}

func runCrypt(dir hwaes.Direction, args []string) error {
	key, err := hwaes.KeyFromHex(keyHex)
	if err != nil {
		return err
	}
	defer hwaes.Zeroize(key)
	if err := hwaes.ValidateKeySize(key); err != nil {
		return err
	}

	var iv []byte
	if ivHex != "" {
		if iv, err = hwaes.KeyFromHex(ivHex); err != nil {
			return err
		}
		if len(iv) != hwaes.BlockSize {
			return fmt.Errorf("iv must be %d bytes, got %d", hwaes.BlockSize, len(iv))
		}
	} else if modeName != "ecb" {
		return fmt.Errorf("mode %s requires --iv", modeName)
	}

	input, err := readInput(args)
	if err != nil {
		return err
	}

	engine, err := hwaes.NewEngine(hwaes.NewSoftBackend())
	if err != nil {
		return err
	}
	ctx := engine.NewContext()
	defer ctx.Close()
	if err := ctx.SetKey(key); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "mode=%s key=%s bytes=%d\n", modeName, hwaes.KeyFingerprint(key), len(input))
	}

	output := make([]byte, len(input))
	switch modeName {
	case "ecb":
		err = ctx.CryptECB(dir, input, output)
	case "cbc":
		state := &hwaes.CBCState{}
		copy(state.IV[:], iv)
		err = ctx.CryptCBC(dir, state, input, output)
	case "cfb":
		state := &hwaes.CFBState{}
		copy(state.IV[:], iv)
		err = ctx.CryptCFB128(dir, state, input, output)
	case "cfb8":
		state := &hwaes.CFB8State{}
		copy(state.IV[:], iv)
		err = ctx.CryptCFB8(dir, state, input, output)
	case "ctr":
		state := &hwaes.CTRState{}
		copy(state.Counter[:], iv)
		err = ctx.CryptCTR(state, input, output)
	case "ofb":
		state := &hwaes.OFBState{}
		copy(state.IV[:], iv)
		err = ctx.CryptOFB(state, input, output)
	default:
		err = fmt.Errorf("unknown mode %q", modeName)
	}
	if err != nil {
		return err
	}

	return writeOutput(output)
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func writeOutput(data []byte) error {
	if outPath != "" {
		return os.WriteFile(outPath, data, 0o600)
	}
	_, err := os.Stdout.Write(data)
	return err
}
