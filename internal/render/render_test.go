package render

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/banshee-data/xor-pyramid/internal/fsutil"
	"github.com/banshee-data/xor-pyramid/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func scenarioValues() [][]float64 {
	return [][]float64{
		{1, 3, 7},
		{2, 4, nan},
		{6, nan, nan},
	}
}

var small = Size{Width: 3, Height: 2}

func TestHeatmapWritesPNG(t *testing.T) {
	t.Parallel()

	fsys := fsutil.NewMemoryFileSystem()
	require.NoError(t, Heatmap(fsys, "out/h.png", "Horizontal", scenarioValues(), small))

	data, err := fsys.ReadFile("out/h.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "expected PNG signature")
	assert.True(t, fsys.Exists("out"))
}

func TestHeatmapConstantGrid(t *testing.T) {
	t.Parallel()

	fsys := fsutil.NewMemoryFileSystem()
	require.NoError(t, Heatmap(fsys, "c.png", "Constant", [][]float64{{5, 5}, {5, 5}}, small))
}

func TestRenderersRejectEmpty(t *testing.T) {
	t.Parallel()

	fsys := fsutil.NewMemoryFileSystem()
	allMissing := [][]float64{{nan, nan}}

	assert.ErrorIs(t, Heatmap(fsys, "a.png", "x", allMissing, small), ErrNoData)
	assert.ErrorIs(t, Heatmap(fsys, "b.png", "x", nil, small), ErrNoData)
	assert.ErrorIs(t, HeatmapHTML(fsys, "a.html", "x", allMissing), ErrNoData)
	assert.ErrorIs(t, SurfaceHTML(fsys, "b.html", "x"), ErrNoData)
	assert.ErrorIs(t, SurfaceHTML(fsys, "c.html", "x", SurfaceLayer{Name: "blank", Values: allMissing}), ErrNoData)
	assert.Empty(t, fsys.Files(""))
}

func TestHTMLCharts(t *testing.T) {
	t.Parallel()

	fsys := fsutil.NewMemoryFileSystem()
	require.NoError(t, HeatmapHTML(fsys, "out/h.html", "Horizontal Grid", scenarioValues()))
	require.NoError(t, SurfaceHTML(fsys, "out/s.html", "Horizontal Surface", SurfaceLayer{Name: "horizontal", Values: scenarioValues()}))

	for _, path := range []string{"out/h.html", "out/s.html"} {
		data, err := fsys.ReadFile(path)
		require.NoError(t, err)
		html := string(data)
		assert.Contains(t, html, "echarts", path)
		assert.NotContains(t, html, "NaN", path)
	}

	data, err := fsys.ReadFile("out/s.html")
	require.NoError(t, err)
	assert.Contains(t, string(data), "surface")
}

func TestSurfaceHTMLLayers(t *testing.T) {
	t.Parallel()

	fsys := fsutil.NewMemoryFileSystem()
	require.NoError(t, SurfaceHTML(fsys, "grid.html", "Horizontal + Vertical",
		SurfaceLayer{Name: "horizontal", Values: scenarioValues()},
		SurfaceLayer{Name: "vertical", Values: [][]float64{{3, 7, nan}, {4, nan, nan}}, RowOffset: 0.5},
		SurfaceLayer{Name: "blank", Values: [][]float64{{nan}}},
	))

	data, err := fsys.ReadFile("grid.html")
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, `"name":"horizontal"`)
	assert.Contains(t, html, `"name":"vertical"`)
	assert.NotContains(t, html, `"name":"blank"`)
	assert.Contains(t, html, "0.5", "vertical rows are offset")
}

func TestGridCSVIsExact(t *testing.T) {
	t.Parallel()

	g := grid.New(2, 2)
	wide, ok := grid.DefinedInt64(0).Value()
	require.True(t, ok)
	wide.SetString("349b84b6431a6c4ef1", 16)
	g.Set(0, 0, grid.Defined(wide))
	g.Set(1, 1, grid.DefinedInt64(7))

	fsys := fsutil.NewMemoryFileSystem()
	require.NoError(t, GridCSV(fsys, "g.csv", g))

	data, err := fsys.ReadFile("g.csv")
	require.NoError(t, err)
	assert.Equal(t, wide.String()+",\n,7\n", string(data))
}

func TestFloatCSV(t *testing.T) {
	t.Parallel()

	fsys := fsutil.NewMemoryFileSystem()
	require.NoError(t, FloatCSV(fsys, "f.csv", [][]float64{{1.5, nan}, {0, 1e21}}))

	data, err := fsys.ReadFile("f.csv")
	require.NoError(t, err)
	assert.Equal(t, "1.5,\n0,1e+21\n", string(data))
}

func TestAnimation(t *testing.T) {
	t.Parallel()

	fsys := fsutil.NewMemoryFileSystem()
	anim := NewAnimation(fsys, "out/frames", "sweep", small, 50*time.Millisecond)

	assert.ErrorIs(t, anim.Finish("out/empty.gif"), ErrNoData)

	require.NoError(t, anim.AddFrame("frame 0", [][]float64{{4, nan}, {nan, nan}}))
	require.NoError(t, anim.AddFrame("frame 1", [][]float64{{4, 0}, {nan, nan}}))
	assert.ErrorIs(t, anim.AddFrame("blank", [][]float64{{nan}}), ErrNoData)
	assert.Equal(t, 2, anim.Len())

	require.NoError(t, anim.AddFrameAs("last.png", "named", [][]float64{{4, 0}, {0, 4}}))
	assert.Equal(t, 3, anim.Len())

	require.NoError(t, anim.Finish("out/sweep.gif"))

	frames := fsys.Files("out/frames/")
	assert.Equal(t, []string{"out/frames/last.png", "out/frames/sweep_0000.png", "out/frames/sweep_0001.png"}, frames)

	data, err := fsys.ReadFile("out/sweep.gif")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "GIF89a"))
}
