// Package window slides a W x W window over one or two materialized grids
// and XOR-accumulates every defined cell inside it.
//
// Missing cells contribute the XOR identity, so the output grid is always
// fully defined. A window larger than the available grid yields an empty
// result rather than an error.
package window

import (
	"errors"
	"math"
	"math/big"

	"github.com/banshee-data/xor-pyramid/internal/grid"
)

var (
	// ErrInvalidWindow is returned for window sizes below 1.
	ErrInvalidWindow = errors.New("window size must be at least 1")
	// ErrMissingGrid is returned when the mode needs a grid that was not supplied.
	ErrMissingGrid = errors.New("window mode requires a grid that was not supplied")
)

// Result is the fully defined output of one sliding-window pass.
type Result struct {
	Window int
	Mode   Mode
	rows   int
	cols   int
	values []*big.Int
}

// Rows returns the number of output rows.
func (r *Result) Rows() int { return r.rows }

// Cols returns the number of output columns.
func (r *Result) Cols() int { return r.cols }

// Empty reports a degenerate window with no output positions.
func (r *Result) Empty() bool { return r.rows == 0 || r.cols == 0 }

// At returns a copy of the aggregate anchored at (i, j).
func (r *Result) At(i, j int) *big.Int {
	return new(big.Int).Set(r.values[i*r.cols+j])
}

// Grid returns the result as a grid with every cell defined.
func (r *Result) Grid() *grid.Grid {
	g := grid.New(r.rows, r.cols)
	for i := 0; i < r.rows; i++ {
		for j := 0; j < r.cols; j++ {
			g.Set(i, j, grid.Defined(r.values[i*r.cols+j]))
		}
	}
	return g
}

// Float64s converts the result for display. With logScale set each value
// is replaced by log1p(|x|).
func (r *Result) Float64s(logScale bool) [][]float64 {
	out := make([][]float64, r.rows)
	for i := 0; i < r.rows; i++ {
		row := make([]float64, r.cols)
		for j := 0; j < r.cols; j++ {
			f, _ := new(big.Float).SetInt(r.values[i*r.cols+j]).Float64()
			if logScale {
				f = math.Log1p(math.Abs(f))
			}
			row[j] = f
		}
		out[i] = row
	}
	return out
}

// Flat returns Float64s in row-major order for summary statistics.
func (r *Result) Flat(logScale bool) []float64 {
	out := make([]float64, 0, r.rows*r.cols)
	for _, row := range r.Float64s(logScale) {
		out = append(out, row...)
	}
	return out
}

// Slide computes the W x W XOR aggregate for every anchor position.
//
// Horizontal mode reads a, Vertical mode reads b and Both reads the two
// grids clipped to their common extent. The output shape is
// (min rows - w + 1) x (min cols - w + 1) over the supplied grids.
func Slide(a, b *grid.Grid, w int, mode Mode) (*Result, error) {
	rows, cols, err := extent(a, b, mode)
	if err != nil {
		return nil, err
	}
	if w < 1 {
		return nil, ErrInvalidWindow
	}

	outRows, outCols := rows-w+1, cols-w+1
	if outRows <= 0 || outCols <= 0 {
		return &Result{Window: w, Mode: mode}, nil
	}

	res := &Result{
		Window: w,
		Mode:   mode,
		rows:   outRows,
		cols:   outCols,
		values: make([]*big.Int, outRows*outCols),
	}
	for i := 0; i < outRows; i++ {
		for j := 0; j < outCols; j++ {
			res.values[i*outCols+j] = aggregate(a, b, mode, i, j, w)
		}
	}
	return res, nil
}

// aggregate XORs every defined cell of the window anchored at (i, j).
func aggregate(a, b *grid.Grid, mode Mode, i, j, w int) *big.Int {
	acc := new(big.Int)
	for wi := 0; wi < w; wi++ {
		for wj := 0; wj < w; wj++ {
			if mode.usesA() {
				a.At(i+wi, j+wj).XorInto(acc)
			}
			if mode.usesB() {
				b.At(i+wi, j+wj).XorInto(acc)
			}
		}
	}
	return acc
}

// extent returns the common shape of the grids the mode reads.
func extent(a, b *grid.Grid, mode Mode) (rows, cols int, err error) {
	switch mode {
	case Horizontal:
		if a == nil {
			return 0, 0, ErrMissingGrid
		}
		return a.Rows(), a.Cols(), nil
	case Vertical:
		if b == nil {
			return 0, 0, ErrMissingGrid
		}
		return b.Rows(), b.Cols(), nil
	case Both:
		if a == nil || b == nil {
			return 0, 0, ErrMissingGrid
		}
		return min(a.Rows(), b.Rows()), min(a.Cols(), b.Cols()), nil
	default:
		return 0, 0, errors.New("unknown window mode " + mode.String())
	}
}
