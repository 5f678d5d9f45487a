package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/banshee-data/xor-pyramid/internal/fsutil"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// viridis is the visual map ramp shared by every HTML chart.
var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// echartsMissing is how echarts spells an empty data point. NaN cannot be
// used because it does not survive JSON encoding.
const echartsMissing = "-"

func axisLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

func visualMap(lo, hi float64) opts.VisualMap {
	return opts.VisualMap{
		Show:       opts.Bool(true),
		Calculable: opts.Bool(true),
		Min:        float32(lo),
		Max:        float32(hi),
		InRange:    &opts.VisualMapInRange{Color: viridis},
	}
}

// HeatmapHTML writes an interactive heatmap of values.
func HeatmapHTML(fsys fsutil.FileSystem, path, title string, values [][]float64) error {
	lo, hi, ok := finiteRange(values)
	if !ok {
		return ErrNoData
	}
	g := newValueGrid(values)
	cols, rows := g.Dims()

	data := make([]opts.HeatMapData, 0, rows*cols)
	for i, row := range values {
		for j := 0; j < cols; j++ {
			var v interface{} = echartsMissing
			if j < len(row) && !math.IsNaN(row[j]) && !math.IsInf(row[j], 0) {
				v = row[j]
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1000px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%dx%d", rows, cols)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "Column", Data: axisLabels(cols)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "Row", Data: axisLabels(rows)}),
		charts.WithVisualMapOpts(visualMap(lo, hi)),
	)
	hm.AddSeries("grid", data)

	return writeTo(fsys, path, errOnly(hm.Render))
}

// SurfaceLayer is one surface of a 3D chart. RowOffset shifts the layer
// along the row axis so stacked grids do not coincide.
type SurfaceLayer struct {
	Name      string
	Values    [][]float64
	RowOffset float64
}

// SurfaceHTML writes an interactive 3D chart with one surface per layer,
// x = column, y = row (+ RowOffset) and z = value. Layers without finite
// values are left out; ErrNoData is returned when none remain.
func SurfaceHTML(fsys fsutil.FileSystem, path, title string, layers ...SurfaceLayer) error {
	lo, hi := math.Inf(1), math.Inf(-1)
	var drawn []SurfaceLayer
	for _, l := range layers {
		llo, lhi, ok := finiteRange(l.Values)
		if !ok {
			continue
		}
		lo, hi = math.Min(lo, llo), math.Max(hi, lhi)
		drawn = append(drawn, l)
	}
	if len(drawn) == 0 {
		return ErrNoData
	}

	surface := charts.NewSurface3D()
	surface.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1000px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(drawn) > 1)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "Column"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Row"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Value"}),
		charts.WithVisualMapOpts(visualMap(lo, hi)),
	)
	for _, l := range drawn {
		surface.AddSeries(l.Name, surfaceData(l))
	}

	return writeTo(fsys, path, errOnly(surface.Render))
}

func surfaceData(l SurfaceLayer) []opts.Chart3DData {
	cols, rows := newValueGrid(l.Values).Dims()
	data := make([]opts.Chart3DData, 0, rows*cols)
	for i, row := range l.Values {
		for j := 0; j < cols; j++ {
			var z interface{} = echartsMissing
			if j < len(row) && !math.IsNaN(row[j]) && !math.IsInf(row[j], 0) {
				z = row[j]
			}
			data = append(data, opts.Chart3DData{Value: []interface{}{j, float64(i) + l.RowOffset, z}})
		}
	}
	return data
}
