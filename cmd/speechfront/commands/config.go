// SPDX-License-Identifier: EPL-2.0

package commands

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Write(cmd.OutOrStdout())
	},
}
