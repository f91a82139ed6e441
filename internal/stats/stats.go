// Package stats reduces a metric column to the descriptive statistics drawn
// in the result figures.
package stats

import (
	"math"

	"github.com/hyp3rd/ewrap"
	"github.com/signalnine/schedplot/internal/sentinel"
	"golang.org/x/perf/benchmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Confidence is the confidence level of the median interval.
const Confidence = 0.95

// Summary describes one metric column of one result file.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64

	// Median and its distribution-free confidence interval. The bounds are
	// infinite when the sample is too small to bound the median.
	Median   float64
	MedianLo float64
	MedianHi float64
}

// Summarize computes the mean, population standard deviation, minimum and
// maximum of values. Empty input returns sentinel.ErrEmptySample.
func Summarize(values []int) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ewrap.Wrap(sentinel.ErrEmptySample, "summarize")
	}
	xs := Floats(values)

	mean, variance := stat.PopMeanVariance(xs, nil)
	if variance < 0 {
		// compensated summation can round a zero variance just below zero
		variance = 0
	}

	s := Summary{
		N:      len(xs),
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
	}

	thresholds := benchmath.DefaultThresholds
	sample := benchmath.NewSample(Floats(values), &thresholds)
	median := benchmath.AssumeNothing.Summary(sample, Confidence)
	s.Median, s.MedianLo, s.MedianHi = median.Center, median.Lo, median.Hi
	return s, nil
}

// Floats converts integer measurements to float64.
func Floats(values []int) []float64 {
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	return xs
}
