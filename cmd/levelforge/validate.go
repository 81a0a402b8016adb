package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kire256/levelforge/grid"
	"github.com/kire256/levelforge/reach"
)

func newValidateCmd(log *logrus.Logger) *cobra.Command {
	var (
		in                                            string
		jumpHeight, jumpDistance, safeDrop, bodyHeight int
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate START->GOAL reachability of a level file",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := grid.New()
			if err := decodeJSON(in, g); err != nil {
				return errors.Wrapf(err, "decode %s", in)
			}

			spec := reach.PlayerSpec{
				Width:           1,
				Height:          bodyHeight,
				MaxJumpHeight:   jumpHeight,
				MaxJumpDistance: jumpDistance,
				MaxSafeDrop:     safeDrop,
			}
			report := reach.New(spec).Validate(g, nil, nil)

			fmt.Printf("reachable: %v\n", report.Reachable)
			if report.Reachable {
				fmt.Printf("path length: %d, jumps: %d, min landing width: %d\n",
					report.PathLength, report.JumpCount, report.MinLandingWidth)
				return nil
			}
			for _, reason := range report.Reasons {
				fmt.Printf("- %s\n", reason)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in, "in", "", "input level JSON file")
	flags.IntVar(&jumpHeight, "jump-height", reach.DefaultPlayerSpec().MaxJumpHeight, "max jump height in rows")
	flags.IntVar(&jumpDistance, "jump-distance", reach.DefaultPlayerSpec().MaxJumpDistance, "max jump distance in columns")
	flags.IntVar(&safeDrop, "safe-drop", reach.DefaultPlayerSpec().MaxSafeDrop, "max safe drop in rows")
	flags.IntVar(&bodyHeight, "body-height", reach.DefaultPlayerSpec().Height, "player body height in rows")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
