package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kire256/levelforge/grid"
	"github.com/kire256/levelforge/internal/render"
)

func newRenderCmd(log *logrus.Logger) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the ASCII form of a level file for human inspection",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := grid.New()
			if err := decodeJSON(in, g); err != nil {
				return errors.Wrapf(err, "decode %s", in)
			}
			fmt.Print(render.ASCII(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input level JSON file")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
