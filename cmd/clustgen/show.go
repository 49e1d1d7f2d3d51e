package main

import (
	"github.com/spf13/cobra"
)

var showFlags struct {
	project string
	full    bool
	eci     bool
}

var showCmd = &cobra.Command{
	Use:   "show <tree.json>",
	Short: "Print a saved tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, _, err := loadTree(args[0], showFlags.project)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case showFlags.eci:
			if !tree.HierarchyValid() {
				if err := tree.UpdateHierarchy(); err != nil {
					return err
				}
			}
			return tree.PrintECIIn(out)
		case showFlags.full:
			return tree.PrintFull(out)
		default:
			return tree.PrintProto(out)
		}
	},
}

func init() {
	fl := showCmd.Flags()
	fl.StringVarP(&showFlags.project, "config", "c", "", "project file the tree was generated from")
	fl.BoolVar(&showFlags.full, "full", false, "list every equivalent")
	fl.BoolVar(&showFlags.eci, "eci", false, "print the eci.in table")
	_ = showCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(showCmd)
}
