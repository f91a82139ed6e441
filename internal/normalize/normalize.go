// Package normalize composes the per-(setup, trace) bar group of a metrics
// pass and scales every metric sub-group by its own maximum.
package normalize

import (
	"math"

	"github.com/signalnine/schedplot/internal/result"
	"gonum.org/v1/gonum/floats"
)

// LabelPad is the gap between a cluster's tallest bar and its label.
const LabelPad = 0.05

// Group is the flattened bar data for one (setup, trace) pair, ordered
// metric-major: all schedulers of the first metric, then the second, and so on.
type Group struct {
	Avg []float64
	Std []float64
	Min []float64
	Max []float64
}

// Compose reads the summaries of every metric and scheduler from t.
func Compose(t result.Table, setup, trace string, metrics, schedulers []string) (Group, error) {
	n := len(metrics) * len(schedulers)
	g := Group{
		Avg: make([]float64, 0, n),
		Std: make([]float64, 0, n),
		Min: make([]float64, 0, n),
		Max: make([]float64, 0, n),
	}
	for _, metric := range metrics {
		for _, sched := range schedulers {
			s, err := t.Get(setup, trace, sched, metric)
			if err != nil {
				return Group{}, err
			}
			g.Avg = append(g.Avg, s.Mean)
			g.Std = append(g.Std, s.StdDev)
			g.Min = append(g.Min, s.Min)
			g.Max = append(g.Max, s.Max)
		}
	}
	return g, nil
}

// Len returns the number of bars in the group.
func (g *Group) Len() int { return len(g.Max) }

// Normalize divides each contiguous sub-group of size elements by the
// largest Max value in that sub-group. A sub-group whose maximum is zero
// becomes NaN throughout.
func (g *Group) Normalize(size int) {
	if size < 1 {
		return
	}
	for start := 0; start < g.Len(); start += size {
		end := min(start+size, g.Len())
		peak := floats.Max(g.Max[start:end])
		Divide(g.Avg[start:end], peak)
		Divide(g.Std[start:end], peak)
		Divide(g.Min[start:end], peak)
		Divide(g.Max[start:end], peak)
	}
}

// Divide divides every element of xs by m in place. A zero m yields NaN for
// every element, including non-zero ones.
func Divide(xs []float64, m float64) {
	for i := range xs {
		if m == 0 {
			xs[i] = math.NaN()
			continue
		}
		xs[i] /= m
	}
}

// Peak returns the largest Max value of sub-group i, or NaN when every
// value in it is NaN.
func (g *Group) Peak(i, size int) float64 {
	peak := math.NaN()
	for _, v := range g.Max[i*size : min((i+1)*size, g.Len())] {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(peak) || v > peak {
			peak = v
		}
	}
	return peak
}

// LabelHeight is the y position of a metric label above a cluster whose
// tallest bar is peak. Degenerate clusters put the label at the pad height.
func LabelHeight(peak float64) float64 {
	if math.IsNaN(peak) {
		return LabelPad
	}
	return peak + LabelPad
}
