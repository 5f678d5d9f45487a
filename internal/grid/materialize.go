package grid

import (
	"math/big"

	"github.com/banshee-data/xor-pyramid/internal/pyramid"
)

// Materialize reshapes the pyramid into its horizontal and vertical grids.
//
// The horizontal grid has one row per level, right-padded with missing
// cells to the width of level 0. The vertical grid has one row fewer; cell
// (k, j) is the XOR of horizontal rows k and k+1 at column j wherever both
// levels are defined, missing elsewhere.
func Materialize(p pyramid.Pyramid) (horizontal, vertical *Grid) {
	levels, width := p.Levels(), p.Width()

	horizontal = New(levels, width)
	for k := 0; k < levels; k++ {
		for j, v := range p.Level(k) {
			horizontal.cells[k*width+j] = Cell{v: v}
		}
	}

	vrows := levels - 1
	if vrows < 0 {
		vrows = 0
	}
	vertical = New(vrows, width)
	for k := 0; k < vrows; k++ {
		overlap := min(p.LevelLen(k), p.LevelLen(k+1))
		for j := 0; j < overlap; j++ {
			a := horizontal.cells[k*width+j].v
			b := horizontal.cells[(k+1)*width+j].v
			vertical.cells[k*width+j] = Cell{v: new(big.Int).Xor(a, b)}
		}
	}

	return horizontal, vertical
}
