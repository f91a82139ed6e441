package cmd

import (
	"context"
	"fmt"

	"github.com/hyp3rd/ewrap"
	"github.com/signalnine/schedplot/internal/config"
	"github.com/signalnine/schedplot/internal/runner"
	"github.com/signalnine/schedplot/internal/sentinel"
	"github.com/spf13/cobra"
)

var (
	flagPasses     []string
	flagSetups     []string
	flagResultsDir string
	flagOutDir     string
	flagParallel   int
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one PDF per setup and metrics pass",
		Args:  cobra.NoArgs,
		RunE:  renderFigures,
	}
	addRenderFlags(cmd)
	return cmd
}

func addRenderFlags(cmd *cobra.Command) {
	addSelectFlags(cmd)
	cmd.Flags().StringVar(&flagOutDir, "out-dir", "", "override the output directory")
	cmd.Flags().IntVar(&flagParallel, "parallel", 1, "max concurrent result file loads")
}

// addSelectFlags registers the flags shared by every command that reads results.
func addSelectFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&flagPasses, "pass", nil, "metrics pass to process (repeatable, default all)")
	cmd.Flags().StringSliceVar(&flagSetups, "setup", nil, "setup to process (repeatable, default all)")
	cmd.Flags().StringVar(&flagResultsDir, "results-dir", "", "override the results directory")
}

func renderFigures(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	passes, err := selectPasses(cfg, flagPasses)
	if err != nil {
		return err
	}
	setups, err := filterSetups(cfg.Setups, flagSetups)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, pass := range passes {
		fmt.Printf("Rendering %s metrics for %d setup(s) from %s...\n", pass.Name, len(setups), cfg.Results.Dir)
		written, err := runner.RunPass(ctx, &runner.PassOpts{
			Config:   cfg,
			Pass:     pass,
			Setups:   setups,
			Parallel: flagParallel,
			Logger:   log,
		})
		for _, path := range written {
			fmt.Printf("  wrote %s\n", path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func selectPasses(cfg *config.Config, names []string) ([]*config.Pass, error) {
	if len(names) == 0 {
		passes := make([]*config.Pass, len(cfg.Passes))
		for i := range cfg.Passes {
			passes[i] = &cfg.Passes[i]
		}
		return passes, nil
	}
	var passes []*config.Pass
	for _, name := range names {
		p, ok := cfg.Pass(name)
		if !ok {
			return nil, ewrap.Wrap(sentinel.ErrUnknownPass, name)
		}
		passes = append(passes, p)
	}
	return passes, nil
}

func filterSetups(setups []config.Setup, names []string) ([]config.Setup, error) {
	if len(names) == 0 {
		return setups, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var filtered []config.Setup
	for _, s := range setups {
		if want[s.Name] {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no setup matches %v", names)
	}
	return filtered, nil
}
