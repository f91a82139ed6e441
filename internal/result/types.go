package result

import (
	"github.com/hyp3rd/ewrap"
	"github.com/signalnine/schedplot/internal/sentinel"
	"github.com/signalnine/schedplot/internal/stats"
)

// Columns maps a CSV column name to its values in row order.
type Columns map[string][]int

// Table holds the summaries of one metrics pass, keyed
// setup → trace → scheduler → metric label.
type Table map[string]map[string]map[string]map[string]stats.Summary

// Set stores the summary for one grid cell and metric.
func (t Table) Set(setup, trace, scheduler, metric string, s stats.Summary) {
	traces, ok := t[setup]
	if !ok {
		traces = make(map[string]map[string]map[string]stats.Summary)
		t[setup] = traces
	}
	scheds, ok := traces[trace]
	if !ok {
		scheds = make(map[string]map[string]stats.Summary)
		traces[trace] = scheds
	}
	metrics, ok := scheds[scheduler]
	if !ok {
		metrics = make(map[string]stats.Summary)
		scheds[scheduler] = metrics
	}
	metrics[metric] = s
}

// Get returns the summary for one grid cell and metric.
func (t Table) Get(setup, trace, scheduler, metric string) (stats.Summary, error) {
	s, ok := t[setup][trace][scheduler][metric]
	if !ok {
		return stats.Summary{}, ewrap.Wrapf(sentinel.ErrMissingSummary,
			"setup %q trace %q scheduler %q metric %q", setup, trace, scheduler, metric)
	}
	return s, nil
}
