// SPDX-License-Identifier: EPL-2.0

// Command speechfront inspects the audio front end.
//
// Usage:
//
//	speechfront [flags] <command> [args]
//
// Commands:
//
//	check      - run the startup self-check and print the chosen resampler
//	features   - load audio files and extract log-mel features
//	filterbank - write the mel filterbank asset
//	config     - print the effective configuration
package main

import (
	"fmt"
	"os"

	"github.com/ik5/speechfront/cmd/speechfront/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
