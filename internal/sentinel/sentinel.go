// Package sentinel holds the errors shared across the loading, aggregation
// and rendering stages. Callers attach context with ewrap.Wrap and test with
// errors.Is.
package sentinel

import "github.com/hyp3rd/ewrap"

var (
	// ErrEmptySample is returned when a metric column has no rows to summarize.
	ErrEmptySample = ewrap.New("empty sample")

	// ErrMissingColumn is returned when a required column is absent from a CSV header.
	ErrMissingColumn = ewrap.New("missing column")

	// ErrInvalidValue is returned when a CSV cell is not a base-10 integer.
	ErrInvalidValue = ewrap.New("invalid value")

	// ErrMissingSummary is returned when a results table has no entry for a grid cell.
	ErrMissingSummary = ewrap.New("missing summary")

	// ErrUnknownPass is returned when a pass name does not match the configuration.
	ErrUnknownPass = ewrap.New("unknown pass")
)
