package result

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/signalnine/schedplot/internal/sentinel"
)

// RunDir is the directory holding the metrics of one scheduler run.
func RunDir(resultsDir, trace, setup, scheduler string) string {
	return filepath.Join(resultsDir, trace+"_"+setup+"_"+scheduler)
}

// MetricsPath is the CSV file a pass reads for one grid cell.
func MetricsPath(resultsDir, trace, setup, scheduler, file string) string {
	return filepath.Join(RunDir(resultsDir, trace, setup, scheduler), file)
}

// ReadColumns reads a header-delimited CSV file and returns the named
// integer columns. Every requested column must be present in the header and
// every cell in those columns must be an integer.
func ReadColumns(path string, columns []string) (Columns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metrics: %w", err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.ReuseRecord = true
	header, err := rd.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	positions := make([]int, len(columns))
	for i, col := range columns {
		pos, ok := index[col]
		if !ok {
			return nil, ewrap.Wrapf(sentinel.ErrMissingColumn, "%s: column %q", path, col)
		}
		positions[i] = pos
	}

	cols := make(Columns, len(columns))
	for _, col := range columns {
		cols[col] = []int{}
	}
	for row := 1; ; row++ {
		record, err := rd.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		for i, col := range columns {
			cell := strings.TrimSpace(record[positions[i]])
			v, err := strconv.Atoi(cell)
			if err != nil {
				return nil, ewrap.Wrapf(sentinel.ErrInvalidValue, "%s: row %d column %q: %q", path, row, col, cell)
			}
			cols[col] = append(cols[col], v)
		}
	}
	return cols, nil
}
