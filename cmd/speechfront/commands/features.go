// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ik5/speechfront"
	"github.com/ik5/speechfront/audio"
	"github.com/ik5/speechfront/feature"
)

var featuresOut string

// Dump is the msgpack layout written by "features --out".
type Dump struct {
	Files []string  `msgpack:"files"`
	Shape []int     `msgpack:"shape"`
	Valid []int     `msgpack:"valid"`
	Data  []float32 `msgpack:"data"`
}

var featuresCmd = &cobra.Command{
	Use:   "features FILE...",
	Short: "Extract log-mel features from audio files",
	Long: `Extract log-mel features from audio files.

Every file is loaded, shaped to chunk_length seconds and passed through the
extractor. The tensor shape and valid frame counts are printed; --out also
writes them with the data as msgpack.

Examples:
  speechfront features a.mp3 b.wav
  speechfront --native features a.wav --out feats.msgpack`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fe, err := speechfront.New(cmd.Context(), cfg, speechfront.WithLogger(log))
		if err != nil {
			return err
		}

		ins := make([]audio.Input, len(args))
		for i, path := range args {
			ins[i] = audio.FromPath(path)
		}

		mel, valid, err := fe.Process(cmd.Context(), ins)
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"files": len(args),
			"shape": mel.Shape(),
		}).Debug("Features extracted")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "shape: %v\n", mel.Shape())
		for i, path := range args {
			fmt.Fprintf(out, "%s: %d valid frames\n", path, valid[i])
		}

		if featuresOut == "" {
			return nil
		}
		return writeDump(featuresOut, args, mel, valid)
	},
}

func writeDump(path string, files []string, mel *feature.Tensor, valid []int) error {
	data, err := msgpack.Marshal(&Dump{
		Files: files,
		Shape: mel.Shape(),
		Valid: valid,
		Data:  mel.Data,
	})
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func init() {
	featuresCmd.Flags().StringVarP(&featuresOut, "out", "o", "", "write a msgpack dump")
}
