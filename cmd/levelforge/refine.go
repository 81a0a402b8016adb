package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kire256/levelforge/generate"
	"github.com/kire256/levelforge/grid"
	"github.com/kire256/levelforge/reach"
	"github.com/kire256/levelforge/refine"
)

func newRefineCmd(log *logrus.Logger) *cobra.Command {
	var (
		in, out, rectSpec                             string
		seed                                           int64
		difficultyDelta, verticalityDelta              float64
		addSecret, smooth                              bool
		jumpHeight, jumpDistance, safeDrop, bodyHeight int
	)

	cmd := &cobra.Command{
		Use:   "refine",
		Short: "Regenerate a rectangular sub-region of a level file",
		RunE: func(cmd *cobra.Command, args []string) error {
			rect, err := parseRect(rectSpec)
			if err != nil {
				return err
			}

			g := grid.New()
			if err := decodeJSON(in, g); err != nil {
				return errors.Wrapf(err, "decode %s", in)
			}

			req := refine.Request{
				DifficultyDelta:  difficultyDelta,
				VerticalityDelta: verticalityDelta,
				AddSecret:        addSecret,
				SmoothSilhouette: smooth,
			}
			spec := reach.PlayerSpec{
				Width:           1,
				Height:          bodyHeight,
				MaxJumpHeight:   jumpHeight,
				MaxJumpDistance: jumpDistance,
				MaxSafeDrop:     safeDrop,
			}

			newGrid, report := refine.New(log).Refine(g, rect, req, seed, generate.DefaultKnobs(), spec)
			if !report.Success {
				fmt.Printf("refine failed: %v\n", report.Reasons)
			}

			data, err := json.MarshalIndent(newGrid, "", "  ")
			if err != nil {
				return errors.Wrap(err, "encode result")
			}
			return writeOutput(out, data)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in, "in", "", "input level JSON file")
	flags.StringVar(&out, "out", "", "output file path (default: stdout)")
	flags.StringVar(&rectSpec, "rect", "", "x,y,w,h rectangle to refine")
	flags.Int64Var(&seed, "seed", 100, "base RNG seed")
	flags.Float64Var(&difficultyDelta, "difficulty-delta", 0, "added to the base difficulty knob, clamped to [0,1]")
	flags.Float64Var(&verticalityDelta, "verticality-delta", 0, "added to the base verticality knob, clamped to [0,1]")
	flags.BoolVar(&addSecret, "add-secret", false, "plant one hidden bonus platform")
	flags.BoolVar(&smooth, "smooth", false, "smooth isolated SOLID spikes at the rect's top row")
	flags.IntVar(&jumpHeight, "jump-height", reach.DefaultPlayerSpec().MaxJumpHeight, "max jump height in rows")
	flags.IntVar(&jumpDistance, "jump-distance", reach.DefaultPlayerSpec().MaxJumpDistance, "max jump distance in columns")
	flags.IntVar(&safeDrop, "safe-drop", reach.DefaultPlayerSpec().MaxSafeDrop, "max safe drop in rows")
	flags.IntVar(&bodyHeight, "body-height", reach.DefaultPlayerSpec().Height, "player body height in rows")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("rect")

	return cmd
}

func parseRect(spec string) (refine.Rect, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return refine.Rect{}, errors.Errorf("--rect must be x,y,w,h, got %q", spec)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return refine.Rect{}, errors.Wrapf(err, "--rect component %q", p)
		}
		vals[i] = n
	}
	return refine.Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}
