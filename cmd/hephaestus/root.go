// root.go: Root command and global flags.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global output flags only
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hephaestus",
	Short: "AES mode-of-operation tool over the hwaes engine",
	Long: `hephaestus encrypts and decrypts data with the hwaes block-cipher
engine, exercising the same mode drivers (ECB, CBC, CFB-128, CFB-8, CTR,
OFB) that run over the hardware peripheral, here backed by the software
reference backend.

Commands:
  encrypt     Encrypt a file or stdin
  decrypt     Decrypt a file or stdin
  keygen      Generate a random AES key
  selftest    Run the NIST SP 800-38A known-answer vectors`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
