// Package stats summarises numeric grids for the CLI report.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoData is returned when there are no finite values to summarise.
var ErrNoData = errors.New("no data to summarise")

// Summary holds the population statistics printed for every grid.
type Summary struct {
	Count    int
	Mean     float64
	Variance float64
	Max      float64
	Min      float64
}

// Summarize computes mean, population variance, max and min over the
// finite entries of values. NaN entries (missing grid cells) are skipped.
func Summarize(values []float64) (Summary, error) {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return Summary{}, ErrNoData
	}

	mean, variance := stat.PopMeanVariance(finite, nil)
	return Summary{
		Count:    len(finite),
		Mean:     mean,
		Variance: variance,
		Max:      floats.Max(finite),
		Min:      floats.Min(finite),
	}, nil
}

// Format renders the summary line printed to stdout.
func (s Summary) Format(label string) string {
	return fmt.Sprintf("%s - Mean: %.2e, Variance: %.2e, Max: %.2e, Min: %.2e",
		label, s.Mean, s.Variance, s.Max, s.Min)
}
