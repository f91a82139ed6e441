package cmd

import (
	"github.com/signalnine/schedplot/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile     string
	flagVerbose bool
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "schedplot",
		Short:        "Summarize scheduler benchmark results and plot them as PDF bar charts",
		Long:         "Without a subcommand, renders every metrics pass for every setup, same as `schedplot render`.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         renderFigures,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "grid config file path (default: built-in grid)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	addRenderFlags(root)
	root.AddCommand(newRenderCmd())
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newListCmd())
	return root
}

func newLogger() (*zap.SugaredLogger, error) {
	if !flagVerbose {
		return zap.NewNop().Sugar(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// loadConfig loads the grid and applies the directory overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if flagResultsDir != "" {
		cfg.Results.Dir = flagResultsDir
	}
	if flagOutDir != "" {
		cfg.Output.Dir = flagOutDir
	}
	return cfg, nil
}
