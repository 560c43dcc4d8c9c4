// main.go: Entry point for the hephaestus command line tool.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

func main() {
	Execute()
}
