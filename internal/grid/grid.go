// Package grid materializes a difference pyramid into dense 2D grids.
//
// Cells are explicit optionals rather than float NaN sentinels so that
// values wider than a float64 mantissa stay exact. Conversion to float64
// happens only at the presentation boundary via Float64s.
package grid

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Grid is a dense rows x cols table of cells stored row-major.
type Grid struct {
	rows, cols int
	cells      []Cell
}

// New returns a grid of the given shape with every cell missing.
// Negative dimensions are clamped to zero.
func New(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

// FromRows builds a grid from int64 rows; nil entries are missing. Short
// rows are padded with missing cells to the widest row.
func FromRows(rows [][]*int64) *Grid {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	g := New(len(rows), cols)
	for i, r := range rows {
		for j, v := range r {
			if v != nil {
				g.Set(i, j, DefinedInt64(*v))
			}
		}
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Empty reports whether the grid has no cells.
func (g *Grid) Empty() bool { return g.rows == 0 || g.cols == 0 }

// At returns the cell at (i, j). It panics when out of range.
func (g *Grid) At(i, j int) Cell {
	g.check(i, j)
	return g.cells[i*g.cols+j]
}

// Set stores c at (i, j). It panics when out of range.
func (g *Grid) Set(i, j int, c Cell) {
	g.check(i, j)
	g.cells[i*g.cols+j] = c
}

func (g *Grid) check(i, j int) {
	if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
		panic(fmt.Sprintf("grid: index (%d,%d) out of range %dx%d", i, j, g.rows, g.cols))
	}
}

// Defined counts the non-missing cells.
func (g *Grid) Defined() int {
	n := 0
	for _, c := range g.cells {
		if !c.IsMissing() {
			n++
		}
	}
	return n
}

// Float64s converts the grid for plotting. Missing cells become NaN.
func (g *Grid) Float64s() [][]float64 {
	out := make([][]float64, g.rows)
	for i := 0; i < g.rows; i++ {
		row := make([]float64, g.cols)
		for j := 0; j < g.cols; j++ {
			v, ok := g.At(i, j).Value()
			if !ok {
				row[j] = math.NaN()
				continue
			}
			row[j], _ = new(big.Float).SetInt(v).Float64()
		}
		out[i] = row
	}
	return out
}

// DefinedFloat64s returns the defined cells in row-major order, as used
// for summary statistics.
func (g *Grid) DefinedFloat64s() []float64 {
	out := make([]float64, 0, len(g.cells))
	for _, c := range g.cells {
		if v, ok := c.Value(); ok {
			f, _ := new(big.Float).SetInt(v).Float64()
			out = append(out, f)
		}
	}
	return out
}

// Clone returns an independent copy of g. Cell values are immutable, so
// they are shared.
func (g *Grid) Clone() *Grid {
	out := &Grid{rows: g.rows, cols: g.cols, cells: make([]Cell, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Transpose returns g with rows and columns swapped: for a horizontal grid,
// one row per input index and one column per level.
func (g *Grid) Transpose() *Grid {
	out := New(g.cols, g.rows)
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			out.cells[j*g.rows+i] = g.cells[i*g.cols+j]
		}
	}
	return out
}

// Equal reports whether two grids have the same shape and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.cells {
		if !g.cells[i].Equal(o.cells[i]) {
			return false
		}
	}
	return true
}

// String renders the grid one row per line, for test failures and logs.
func (g *Grid) String() string {
	var b strings.Builder
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(g.At(i, j).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
