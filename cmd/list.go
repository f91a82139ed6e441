package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/signalnine/schedplot/internal/render"
	"github.com/signalnine/schedplot/internal/result"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the benchmark grid and the result files it expects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Setups:")
			for _, s := range cfg.Setups {
				fmt.Fprintf(out, "  - %s (%s)\n", s.Name, s.Pretty)
			}
			fmt.Fprintf(out, "\nTraces: %v\n", cfg.Traces)
			fmt.Fprintf(out, "Schedulers: %v\n", cfg.Schedulers)
			fmt.Fprintln(out, "\nPasses:")
			for _, p := range cfg.Passes {
				fmt.Fprintf(out, "  - %s: %s %v -> %v\n", p.Name, p.File, p.Columns(), p.Labels())
			}
			fmt.Fprintln(out, "\nInputs:")
			for _, p := range cfg.Passes {
				for _, s := range cfg.Setups {
					for _, t := range cfg.Traces {
						for _, sched := range cfg.Schedulers {
							fmt.Fprintf(out, "  %s\n", result.MetricsPath(cfg.Results.Dir, t, s.Name, sched, p.File))
						}
					}
				}
			}
			fmt.Fprintln(out, "\nOutputs:")
			for _, p := range cfg.Passes {
				for _, s := range cfg.Setups {
					fmt.Fprintf(out, "  %s\n", filepath.Join(cfg.Output.Dir, render.FileName(s.Name, p.Name)))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagResultsDir, "results-dir", "", "override the results directory")
	cmd.Flags().StringVar(&flagOutDir, "out-dir", "", "override the output directory")
	return cmd
}
