package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/clusterography/config"
	"github.com/katalvlaran/clusterography/orbitree"
)

var generateFlags struct {
	out   string
	proto string
	full  string
	eci   string
}

var generateCmd = &cobra.Command{
	Use:   "generate <project.yaml>",
	Short: "Generate the cluster orbits of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := config.ReadFile(args[0])
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
		logger.Info("orbits generated",
			zap.String("method", f.Orbits.Method),
			zap.Int("orbits", tree.NumOrbits()))

		if err := writeTo(generateFlags.out, cmd.OutOrStdout(), tree.Save); err != nil {
			return err
		}
		if err := writeTo(generateFlags.proto, nil, tree.PrintProto); err != nil {
			return err
		}
		if err := writeTo(generateFlags.full, nil, tree.PrintFull); err != nil {
			return err
		}
		return writeTo(generateFlags.eci, nil, tree.PrintECIIn)
	},
}

func init() {
	fl := generateCmd.Flags()
	fl.StringVarP(&generateFlags.out, "out", "o", "", "tree JSON output (default stdout)")
	fl.StringVar(&generateFlags.proto, "proto", "", "prototype listing output")
	fl.StringVar(&generateFlags.full, "full", "", "full equivalent listing output")
	fl.StringVar(&generateFlags.eci, "eci", "", "eci.in output")
	rootCmd.AddCommand(generateCmd)
}

// writeTo runs write on path, or on def when path is empty. A nil def
// skips the output.
func writeTo(path string, def io.Writer, write func(io.Writer) error) error {
	if path == "" {
		if def == nil {
			return nil
		}
		return write(def)
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(fh); err != nil {
		fh.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("wrote output", zap.String("path", path))

	return fh.Close()
}

// loadTree reads a saved tree whose structure comes from a project file.
func loadTree(treePath, projectPath string) (*orbitree.Tree, *config.File, error) {
	f, err := config.ReadFile(projectPath)
	if err != nil {
		return nil, nil, err
	}
	prim, err := f.Structure()
	if err != nil {
		return nil, nil, err
	}
	fh, err := os.Open(treePath)
	if err != nil {
		return nil, nil, err
	}
	defer fh.Close()
	tree, err := orbitree.Load(fh, prim, orbitree.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", treePath, err)
	}

	return tree, f, nil
}
