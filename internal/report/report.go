package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/signalnine/schedplot/internal/config"
	"github.com/signalnine/schedplot/internal/normalize"
	"github.com/signalnine/schedplot/internal/result"
)

// Row is one metric of one scheduler run, raw and normalized.
type Row struct {
	Pass      string   `json:"pass"`
	Setup     string   `json:"setup"`
	Trace     string   `json:"trace"`
	Scheduler string   `json:"scheduler"`
	Metric    string   `json:"metric"`
	N         int      `json:"n"`
	Mean      float64  `json:"mean"`
	StdDev    float64  `json:"std"`
	Min       float64  `json:"min"`
	Max       float64  `json:"max"`
	Median    float64  `json:"median"`
	MedianLo  *float64 `json:"median_lo,omitempty"`
	MedianHi  *float64 `json:"median_hi,omitempty"`
	NormAvg   *float64 `json:"norm_avg"`
	NormStd   *float64 `json:"norm_std"`
	NormMin   *float64 `json:"norm_min"`
	NormMax   *float64 `json:"norm_max"`
}

// Rows flattens a pass table in setup, trace, metric, scheduler order.
// Normalized values that are not finite (all-zero metric groups) are nil.
func Rows(table result.Table, cfg *config.Config, pass *config.Pass) ([]Row, error) {
	var rows []Row
	labels := pass.Labels()
	for _, setup := range cfg.Setups {
		if _, ok := table[setup.Name]; !ok {
			continue
		}
		for _, trace := range cfg.Traces {
			g, err := normalize.Compose(table, setup.Name, trace, labels, cfg.Schedulers)
			if err != nil {
				return nil, err
			}
			g.Normalize(len(cfg.Schedulers))
			for m, metric := range labels {
				for k, sched := range cfg.Schedulers {
					s, err := table.Get(setup.Name, trace, sched, metric)
					if err != nil {
						return nil, err
					}
					i := m*len(cfg.Schedulers) + k
					rows = append(rows, Row{
						Pass:      pass.Name,
						Setup:     setup.Name,
						Trace:     trace,
						Scheduler: sched,
						Metric:    metric,
						N:         s.N,
						Mean:      s.Mean,
						StdDev:    s.StdDev,
						Min:       s.Min,
						Max:       s.Max,
						Median:    s.Median,
						MedianLo:  finite(s.MedianLo),
						MedianHi:  finite(s.MedianHi),
						NormAvg:   finite(g.Avg[i]),
						NormStd:   finite(g.Std[i]),
						NormMin:   finite(g.Min[i]),
						NormMax:   finite(g.Max[i]),
					})
				}
			}
		}
	}
	return rows, nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Write renders rows in the given format: table (default), markdown or json.
func Write(rows []Row, format string, w io.Writer) error {
	switch format {
	case "markdown":
		return writeMarkdown(rows, w)
	case "json":
		return writeJSON(rows, w)
	case "table", "":
		return writeTable(rows, w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func fmtOpt(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *v)
}

func fmtInterval(lo, hi *float64) string {
	if lo == nil || hi == nil {
		return "-"
	}
	return fmt.Sprintf("[%.1f, %.1f]", *lo, *hi)
}

func writeTable(rows []Row, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PASS\tSETUP\tTRACE\tSCHEDULER\tMETRIC\tN\tMEAN\tSTD\tMIN\tMAX\tMEDIAN\tMEDIAN CI\tNORM AVG\tNORM MAX")
	fmt.Fprintln(tw, strings.Repeat("-", 120))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%.1f\t%.1f\t%.0f\t%.0f\t%.1f\t%s\t%s\t%s\n",
			r.Pass, r.Setup, r.Trace, r.Scheduler, r.Metric, r.N,
			r.Mean, r.StdDev, r.Min, r.Max, r.Median, fmtInterval(r.MedianLo, r.MedianHi),
			fmtOpt(r.NormAvg), fmtOpt(r.NormMax))
	}
	return tw.Flush()
}

func writeMarkdown(rows []Row, w io.Writer) error {
	fmt.Fprintln(w, "| Pass | Setup | Trace | Scheduler | Metric | N | Mean | Std | Min | Max | Median | Norm Avg | Norm Max |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|---|---|---|---|---|---|---|")
	for _, r := range rows {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %d | %.1f | %.1f | %.0f | %.0f | %.1f | %s | %s |\n",
			r.Pass, r.Setup, r.Trace, r.Scheduler, r.Metric, r.N,
			r.Mean, r.StdDev, r.Min, r.Max, r.Median, fmtOpt(r.NormAvg), fmtOpt(r.NormMax))
	}
	return nil
}

func writeJSON(rows []Row, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
