package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "clustgen",
	Short:         "Enumerate symmetry-distinct clusters of a crystal",
	Long:          `clustgen grows cluster orbits of a crystal under its factor group, writes them as JSON and text listings, and builds cluster basis functions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l.With(zap.String("run_id", uuid.NewString()), zap.String("command", cmd.Name()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging at debug level")
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}
