package render

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/banshee-data/xor-pyramid/internal/fsutil"
	"github.com/banshee-data/xor-pyramid/internal/grid"
)

// GridCSV writes g with exact decimal integers, one grid row per line.
// Missing cells are written as empty fields.
func GridCSV(fsys fsutil.FileSystem, path string, g *grid.Grid) error {
	return writeTo(fsys, path, errOnly(func(w io.Writer) error {
		cw := csv.NewWriter(w)
		row := make([]string, g.Cols())
		for i := 0; i < g.Rows(); i++ {
			for j := range row {
				row[j] = ""
				if v, ok := g.At(i, j).Value(); ok {
					row[j] = v.String()
				}
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}))
}

// FloatCSV writes values with the shortest round-tripping representation.
// NaN cells are written as empty fields.
func FloatCSV(fsys fsutil.FileSystem, path string, values [][]float64) error {
	return writeTo(fsys, path, errOnly(func(w io.Writer) error {
		cw := csv.NewWriter(w)
		for _, r := range values {
			row := make([]string, len(r))
			for j, v := range r {
				if !math.IsNaN(v) {
					row[j] = strconv.FormatFloat(v, 'g', -1, 64)
				}
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}))
}
