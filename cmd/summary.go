package cmd

import (
	"context"
	"os"

	"github.com/signalnine/schedplot/internal/report"
	"github.com/signalnine/schedplot/internal/runner"
	"github.com/spf13/cobra"
)

var flagFormat string

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print per-scheduler statistics and normalized values without rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			var rows []report.Row
			for _, pass := range passes {
				table, err := runner.BuildTable(ctx, &runner.PassOpts{
					Config: cfg,
					Pass:   pass,
					Setups: setups,
					Logger: log,
				})
				if err != nil {
					return err
				}
				passRows, err := report.Rows(table, cfg, pass)
				if err != nil {
					return err
				}
				rows = append(rows, passRows...)
			}
			return report.Write(rows, flagFormat, os.Stdout)
		},
	}
	addSelectFlags(cmd)
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	return cmd
}
