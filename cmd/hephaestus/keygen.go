// keygen.go: keygen command.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	hwaes "github.com/agilira/hephaestus"
)

var keyBits int

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a random AES key",
	Long:  `Generate a cryptographically secure random AES key and print it in hex.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if keyBits%8 != 0 {
			return fmt.Errorf("key size %d is not a whole number of bytes", keyBits)
		}
		key, err := hwaes.GenerateKey(keyBits / 8)
		if err != nil {
			return err
		}
		defer hwaes.Zeroize(key)

		fmt.Println(hwaes.KeyToHex(key))
		if verbose {
			fmt.Printf("fingerprint: %s\n", hwaes.KeyFingerprint(key))
		}
		return nil
	},
}

func init() {
	keygenCmd.Flags().IntVarP(&keyBits, "bits", "b", 256, "key size in bits (128, 192 or 256)")
	rootCmd.AddCommand(keygenCmd)
}
