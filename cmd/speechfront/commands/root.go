// SPDX-License-Identifier: EPL-2.0

// Package commands holds the speechfront subcommands.
package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ik5/speechfront/config"
)

var (
	configFile string
	logLevel   string
	native     bool

	cfg config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "speechfront",
	Short: "Audio loading and log-mel feature extraction",
	Long: `Audio loading and log-mel feature extraction.

Settings come from the YAML file given with --config and from
SPEECHFRONT_* environment variables, for example SPEECHFRONT_N_MELS=128.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if native {
			cfg.Converter = config.ConverterNative
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log = logrus.New()
		log.SetOutput(cmd.ErrOrStderr())
		log.SetLevel(cfg.Level())

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log_level")
	rootCmd.PersistentFlags().BoolVar(&native, "native", false, "convert in process instead of running ffmpeg")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(filterbankCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the CLI. An interrupt cancels in-flight conversions.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}
