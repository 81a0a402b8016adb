package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kire256/levelforge/generate"
	"github.com/kire256/levelforge/reach"
)

func newGenerateCmd(log *logrus.Logger) *cobra.Command {
	var (
		seed                                         int64
		count, minWidth, maxWidth                     int
		verticality, difficulty                       float64
		jumpHeight, jumpDistance, safeDrop, bodyHeight int
		out                                           string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new level and print its JSON encoding",
		RunE: func(cmd *cobra.Command, args []string) error {
			knobs := generate.Knobs{
				TargetFootholdCount: count,
				MinFootholdWidth:    minWidth,
				MaxFootholdWidth:    maxWidth,
				Verticality:         verticality,
				Difficulty:          difficulty,
			}
			spec := reach.PlayerSpec{
				Width:           1,
				Height:          bodyHeight,
				MaxJumpHeight:   jumpHeight,
				MaxJumpDistance: jumpDistance,
				MaxSafeDrop:     safeDrop,
			}

			res, err := generate.New(log).Generate(seed, knobs, spec)
			if err != nil {
				return errors.Wrap(err, "generate")
			}

			data, err := json.MarshalIndent(res.Grid, "", "  ")
			if err != nil {
				return errors.Wrap(err, "encode result")
			}
			return writeOutput(out, data)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&seed, "seed", 42, "base RNG seed")
	flags.IntVar(&count, "count", generate.DefaultKnobs().TargetFootholdCount, "target foothold count")
	flags.IntVar(&minWidth, "min-width", generate.DefaultKnobs().MinFootholdWidth, "minimum foothold width")
	flags.IntVar(&maxWidth, "max-width", generate.DefaultKnobs().MaxFootholdWidth, "maximum foothold width")
	flags.Float64Var(&verticality, "verticality", generate.DefaultKnobs().Verticality, "vertical variance in [0,1]")
	flags.Float64Var(&difficulty, "difficulty", generate.DefaultKnobs().Difficulty, "difficulty in [0,1]")
	flags.IntVar(&jumpHeight, "jump-height", reach.DefaultPlayerSpec().MaxJumpHeight, "max jump height in rows")
	flags.IntVar(&jumpDistance, "jump-distance", reach.DefaultPlayerSpec().MaxJumpDistance, "max jump distance in columns")
	flags.IntVar(&safeDrop, "safe-drop", reach.DefaultPlayerSpec().MaxSafeDrop, "max safe drop in rows")
	flags.IntVar(&bodyHeight, "body-height", reach.DefaultPlayerSpec().Height, "player body height in rows")
	flags.StringVar(&out, "out", "", "output file path (default: stdout)")

	return cmd
}

func writeOutput(path string, data []byte) error {
	data = append(data, '\n')
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readGridFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return f, nil
}

func decodeJSON(path string, v interface{}) error {
	f, err := readGridFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}
