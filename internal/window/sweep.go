package window

import (
	"math/big"

	"github.com/banshee-data/xor-pyramid/internal/grid"
)

// SweepFrame is one step of a fixed-size window swept across the grid.
type SweepFrame struct {
	Index int
	Row   int
	Col   int
	Value *big.Int
	// Partial holds the output revealed so far; later anchors are missing.
	Partial *grid.Grid
}

// SpatialSweep walks a fixed window over every anchor in row-major order.
// When maxFrames is positive and smaller than the anchor count, only every
// stride-th anchor (plus the final one) becomes a frame, and only those
// frames allocate a Partial grid. A degenerate window yields no frames.
func SpatialSweep(a, b *grid.Grid, w int, mode Mode, maxFrames int) ([]SweepFrame, error) {
	res, err := Slide(a, b, w, mode)
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return nil, nil
	}

	n := res.rows * res.cols
	stride := SweepStride(n, maxFrames)
	frames := make([]SweepFrame, 0, (n+stride-1)/stride+1)
	partial := grid.New(res.rows, res.cols)
	for k := 0; k < n; k++ {
		i, j := k/res.cols, k%res.cols
		v := res.At(i, j)
		partial.Set(i, j, grid.Defined(v))
		if k%stride != 0 && k != n-1 {
			continue
		}
		frames = append(frames, SweepFrame{
			Index:   k,
			Row:     i,
			Col:     j,
			Value:   v,
			Partial: partial.Clone(),
		})
	}
	return frames, nil
}

// SweepStride is the anchor step that keeps at most maxFrames frames out
// of n anchors (not counting the final anchor, which is always kept).
// maxFrames <= 0 keeps every anchor.
func SweepStride(n, maxFrames int) int {
	if maxFrames <= 0 || n <= maxFrames {
		return 1
	}
	return (n + maxFrames - 1) / maxFrames
}

// SeriesStep is the aggregate for one window size of a growing series.
type SeriesStep struct {
	Window int
	Result *Result
}

// GrowingSeries computes one Result per window size from `from` up to the
// smallest dimension of the supplied grids. from values below 1 are
// treated as 1. The series is empty when from exceeds that dimension.
func GrowingSeries(a, b *grid.Grid, mode Mode, from int) ([]SeriesStep, error) {
	rows, cols, err := extent(a, b, mode)
	if err != nil {
		return nil, err
	}
	if from < 1 {
		from = 1
	}

	limit := min(rows, cols)
	var steps []SeriesStep
	for w := from; w <= limit; w++ {
		res, err := Slide(a, b, w, mode)
		if err != nil {
			return nil, err
		}
		steps = append(steps, SeriesStep{Window: w, Result: res})
	}
	return steps, nil
}
