// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/speechfront"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the startup self-check",
	Long: `Run the startup self-check.

With ffmpeg this verifies the binary and converts a reference recording with
the soxr resampler, then swr. The resampler that worked is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, err := speechfront.NewConverter(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "converter: %s\nresampler: %s\n", cfg.Converter, conv.Backend())
		return nil
	},
}
