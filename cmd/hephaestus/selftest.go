// selftest.go: selftest command.
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

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the NIST SP 800-38A known-answer vectors",
	Long: `Run the SP 800-38A AES-128 known-answer vectors for all six modes
through the engine over the software reference backend. Exits non-zero if
any vector mismatches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := hwaes.NewBackendManager(nil, nil)
		if err := mgr.RegisterProvider("soft", hwaes.NewSoftProvider()); err != nil {
			return err
		}
		defer func() { _ = mgr.Close() }()

		engine, err := mgr.NewEngine("")
		if err != nil {
			return err
		}
		if err := hwaes.SelfTest(engine); err != nil {
			return err
		}

		fmt.Println("selftest: all known-answer vectors passed")
		if verbose {
			stats := engine.Stats()
			fmt.Printf("blocks=%d keyloads=%d\n", stats.Blocks, stats.KeyLoads)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}
