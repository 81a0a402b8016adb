// Command levelforge is a thin CLI wrapper around the generate/refine/
// validate core: it marshals flags into the core structs, calls the
// core, and writes the bit-exact JSON grid format back out (or renders it
// as ASCII for human inspection). It implements no core semantics itself.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})

	root := &cobra.Command{
		Use:           "levelforge",
		Short:         "Deterministic platformer level generation and refinement",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newGenerateCmd(log),
		newValidateCmd(log),
		newRefineCmd(log),
		newRenderCmd(log),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
