package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/banshee-data/xor-pyramid/internal/fsutil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoData is returned when a grid has no finite values to draw.
var ErrNoData = errors.New("render: grid has no finite values")

// Size is a plot size in inches.
type Size struct {
	Width  float64
	Height float64
}

// DefaultSize matches the configuration default.
var DefaultSize = Size{Width: 10, Height: 6}

func (s Size) lengths() (vg.Length, vg.Length) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = DefaultSize.Width
	}
	if h <= 0 {
		h = DefaultSize.Height
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

// valueGrid adapts [][]float64 to plotter.GridXYZ. Row 0 is drawn at the
// top so the pyramid reads the same way it is printed.
type valueGrid struct {
	values [][]float64
	cols   int
}

func newValueGrid(values [][]float64) valueGrid {
	cols := 0
	for _, r := range values {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return valueGrid{values: values, cols: cols}
}

func (g valueGrid) Dims() (c, r int) { return g.cols, len(g.values) }

func (g valueGrid) Z(c, r int) float64 {
	row := g.values[len(g.values)-1-r]
	if c >= len(row) {
		return math.NaN()
	}
	return row[c]
}

func (g valueGrid) X(c int) float64 { return float64(c) }
func (g valueGrid) Y(r int) float64 { return float64(r) }

// finiteRange returns the min and max finite values.
func finiteRange(values [][]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range values {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

// NewHeatmapPlot builds a heatmap plot of values. Missing (NaN) cells are
// left transparent.
func NewHeatmapPlot(title string, values [][]float64) (*plot.Plot, error) {
	lo, hi, ok := finiteRange(values)
	if !ok {
		return nil, ErrNoData
	}
	if hi == lo {
		hi = lo + 1
	}

	hm := plotter.NewHeatMap(newValueGrid(values), palette.Heat(64, 1))
	hm.Min, hm.Max = lo, hi
	hm.NaN = color.Transparent

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row (from top)"
	p.Add(hm)
	return p, nil
}

// Heatmap writes a PNG heatmap of values to path.
func Heatmap(fsys fsutil.FileSystem, path, title string, values [][]float64, size Size) error {
	p, err := NewHeatmapPlot(title, values)
	if err != nil {
		return err
	}
	w, h := size.lengths()
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return fmt.Errorf("encode heatmap: %w", err)
	}
	return writeTo(fsys, path, wt.WriteTo)
}

// rasterize draws p onto an in-memory canvas of the given size.
func rasterize(p *plot.Plot, size Size) *vgimg.Canvas {
	w, h := size.lengths()
	c := vgimg.New(w, h)
	p.Draw(draw.New(c))
	return c
}
