package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/clusterography/bset"
	"github.com/katalvlaran/clusterography/config"
)

var bsetFlags struct {
	out     string
	workers int
}

var bsetCmd = &cobra.Command{
	Use:   "bset <project.yaml>",
	Short: "Generate the orbits of a project and their basis functions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := config.ReadFile(args[0])
		if err != nil {
			return err
		}
		bargs, err := f.BasisArgs()
		if err != nil {
			return err
		}
		prim, err := f.Structure()
		if err != nil {
			return err
		}
		tree, err := f.Generate(prim, logger)
		if err != nil {
			return err
		}
		nl, err := bset.BuildNeighborList(tree)
		if err != nil {
			return err
		}
		opts := bset.Options{Workers: bsetFlags.workers, Logger: logger}
		if err := bset.Propagate(cmd.Context(), tree, nl, bset.OccupationEngine{}, bargs, opts); err != nil {
			return err
		}

		return writeTo(bsetFlags.out, cmd.OutOrStdout(), func(w io.Writer) error {
			return bset.WriteFunctions(w, tree)
		})
	},
}

func init() {
	fl := bsetCmd.Flags()
	fl.StringVarP(&bsetFlags.out, "out", "o", "", "function listing output (default stdout)")
	fl.IntVarP(&bsetFlags.workers, "workers", "j", 0, "orbits processed in parallel (default GOMAXPROCS)")
	rootCmd.AddCommand(bsetCmd)
}
