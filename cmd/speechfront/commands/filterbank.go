// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/speechfront/feature"
)

var (
	filterbankOut  string
	filterbankMels []int
)

var filterbankCmd = &cobra.Command{
	Use:   "filterbank",
	Short: "Write the mel filterbank asset",
	Long: `Write the mel filterbank asset.

The asset is a msgpack map keyed mel_<n>, one entry per --mels value. Point
mel_filters_path at it to load the filters instead of computing them.

Examples:
  speechfront filterbank --out mel_filters.msgpack
  speechfront filterbank --out mel_filters.msgpack --mels 80,128`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fbs := make([]*feature.Filterbank, 0, len(filterbankMels))
		for _, n := range filterbankMels {
			fb, err := feature.NewFilterbank(cfg.SampleRate, cfg.NFFT, n)
			if err != nil {
				return err
			}
			fbs = append(fbs, fb)
		}

		f, err := os.Create(filterbankOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", filterbankOut, err)
		}
		if err := feature.SaveFilterbanks(f, fbs...); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", filterbankOut, err)
		}

		log.WithField("path", filterbankOut).WithField("mels", filterbankMels).Info("Filterbank written")
		return nil
	},
}

func init() {
	filterbankCmd.Flags().StringVarP(&filterbankOut, "out", "o", "", "output file")
	filterbankCmd.Flags().IntSliceVar(&filterbankMels, "mels", []int{feature.NMels, feature.NMelsLarge}, "mel counts to include")
	_ = filterbankCmd.MarkFlagRequired("out")
}
