package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/signalnine/schedplot/internal/config"
	"github.com/signalnine/schedplot/internal/normalize"
	"github.com/signalnine/schedplot/internal/render"
	"github.com/signalnine/schedplot/internal/result"
	"github.com/signalnine/schedplot/internal/stats"
	"go.uber.org/zap"
)

// YLabel is the y axis label of the first panel of every figure.
const YLabel = "Normalized time"

type PassOpts struct {
	Config *config.Config
	Pass   *config.Pass
	// Setups restricts the pass to a subset of Config.Setups. Nil means all.
	Setups   []config.Setup
	Parallel int
	Logger   *zap.SugaredLogger
}

func (o *PassOpts) setups() []config.Setup {
	if o.Setups != nil {
		return o.Setups
	}
	return o.Config.Setups
}

func (o *PassOpts) logger() *zap.SugaredLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop().Sugar()
}

// BuildTable reads the pass's CSV file for every setup, trace and scheduler
// and summarizes each metric column. The first failure in grid order aborts
// the build; cells after it are skipped, so the reported error does not
// depend on the worker count.
func BuildTable(ctx context.Context, opts *PassOpts) (result.Table, error) {
	cfg, pass, log := opts.Config, opts.Pass, opts.logger()

	type cell struct {
		setup, trace, sched string
		summaries           []stats.Summary
		err                 error
	}
	var cells []*cell
	for _, setup := range opts.setups() {
		for _, trace := range cfg.Traces {
			for _, sched := range cfg.Schedulers {
				cells = append(cells, &cell{setup: setup.Name, trace: trace, sched: sched})
			}
		}
	}

	// Index of the earliest failed cell so far.
	var failed atomic.Int64
	failed.Store(int64(len(cells)))

	columns := pass.Columns()
	jobs := make([]Job, len(cells))
	for i, c := range cells {
		jobs[i] = func(ctx context.Context) error {
			if int64(i) > failed.Load() {
				return nil
			}
			path := result.MetricsPath(cfg.Results.Dir, c.trace, c.setup, c.sched, pass.File)
			log.Debugw("loading metrics", "pass", pass.Name, "path", path)
			c.summaries, c.err = summarize(path, columns)
			if c.err != nil {
				lowerTo(&failed, int64(i))
			}
			return c.err
		}
	}

	poolErrs := RunPool(ctx, opts.Parallel, jobs)
	for _, c := range cells {
		if c.err != nil {
			return nil, c.err
		}
	}
	if len(poolErrs) > 0 {
		return nil, poolErrs[0]
	}

	table := result.Table{}
	for _, c := range cells {
		for j, m := range pass.Metrics {
			table.Set(c.setup, c.trace, c.sched, m.Label, c.summaries[j])
		}
	}
	log.Debugw("table built", "pass", pass.Name, "cells", len(cells))
	return table, nil
}

func summarize(path string, columns []string) ([]stats.Summary, error) {
	cols, err := result.ReadColumns(path, columns)
	if err != nil {
		return nil, err
	}
	summaries := make([]stats.Summary, len(columns))
	for j, col := range columns {
		s, err := stats.Summarize(cols[col])
		if err != nil {
			return nil, fmt.Errorf("%s: column %q: %w", path, col, err)
		}
		summaries[j] = s
	}
	return summaries, nil
}

func lowerTo(v *atomic.Int64, i int64) {
	for {
		cur := v.Load()
		if i >= cur || v.CompareAndSwap(cur, i) {
			return
		}
	}
}

// Panels composes and normalizes the group of every trace of one setup.
func Panels(table result.Table, cfg *config.Config, pass *config.Pass, setup string) ([]render.Panel, error) {
	panels := make([]render.Panel, 0, len(cfg.Traces))
	for _, trace := range cfg.Traces {
		g, err := normalize.Compose(table, setup, trace, pass.Labels(), cfg.Schedulers)
		if err != nil {
			return nil, err
		}
		g.Normalize(len(cfg.Schedulers))
		panels = append(panels, render.Panel{Trace: trace, Group: g})
	}
	return panels, nil
}

// Title is the figure title of one setup of a pass.
func Title(pass *config.Pass, setup config.Setup) string {
	return fmt.Sprintf("%s for the %s for different traces and schedulers.", pass.Title, setup.Pretty)
}

// RunPass builds the pass's table and writes one PDF per setup into the
// configured output directory. It returns the written paths in setup order.
// Files written before a failure are kept.
func RunPass(ctx context.Context, opts *PassOpts) ([]string, error) {
	table, err := BuildTable(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("pass %s: %w", opts.Pass.Name, err)
	}

	var written []string
	for _, setup := range opts.setups() {
		panels, err := Panels(table, opts.Config, opts.Pass, setup.Name)
		if err != nil {
			return written, fmt.Errorf("pass %s: %w", opts.Pass.Name, err)
		}
		fig := &render.Figure{
			Title:      Title(opts.Pass, setup),
			YLabel:     YLabel,
			Metrics:    opts.Pass.Labels(),
			Schedulers: opts.Config.Schedulers,
			Panels:     panels,
		}
		path := filepath.Join(opts.Config.Output.Dir, render.FileName(setup.Name, opts.Pass.Name))
		if err := fig.Save(path); err != nil {
			return written, fmt.Errorf("pass %s: setup %s: %w", opts.Pass.Name, setup.Name, err)
		}
		opts.logger().Debugw("figure written", "pass", opts.Pass.Name, "setup", setup.Name, "path", path)
		written = append(written, path)
	}
	return written, nil
}
