package analysis

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/xor-pyramid/internal/config"
	"github.com/banshee-data/xor-pyramid/internal/fsutil"
	"github.com/banshee-data/xor-pyramid/internal/monitoring"
	"github.com/banshee-data/xor-pyramid/internal/render"
	"github.com/banshee-data/xor-pyramid/internal/window"
)

// Titles of the whole-grid charts.
const (
	titlePyramid = "XOR Difference Pattern Visualization"
	titleSurface = "3D XOR Difference Visualization (Horizontal + Vertical)"
)

// verticalRowOffset lifts the vertical surface half a row off the
// horizontal one so both stay visible.
const verticalRowOffset = 0.5

// artifacts writes the files of one run and records their paths.
type artifacts struct {
	fs      fsutil.FileSystem
	dir     string
	cfg     *config.Config
	written []string
}

func (a *artifacts) path(name string) string {
	return filepath.Join(a.dir, name)
}

func (a *artifacts) size() render.Size {
	w, h := a.cfg.GetPlotSize()
	return render.Size{Width: w, Height: h}
}

// record notes a successful write. ErrNoData is logged and swallowed so an
// empty windowed grid never aborts the run.
func (a *artifacts) record(path string, err error) error {
	if errors.Is(err, render.ErrNoData) {
		monitoring.Logf("skipping %s: no data", path)
		return nil
	}
	if err != nil {
		return err
	}
	a.written = append(a.written, path)
	return nil
}

// heatmaps writes the PNG and HTML heatmaps of values as <base>_heatmap.*.
func (a *artifacts) heatmaps(base, title string, values [][]float64) error {
	p := a.path(base + "_heatmap.png")
	if err := a.record(p, render.Heatmap(a.fs, p, title, values, a.size())); err != nil {
		return err
	}
	p = a.path(base + "_heatmap.html")
	return a.record(p, render.HeatmapHTML(a.fs, p, title, values))
}

// writeGrids writes the pyramid, horizontal and vertical grids: heatmaps,
// the stacked horizontal + vertical surface (raw and log1p) and CSVs.
func (a *artifacts) writeGrids(rep *Report) error {
	hv, vv := rep.Horizontal.Float64s(), rep.Vertical.Float64s()

	if a.cfg.GetRenderHeatmap() {
		p := a.path("pyramid_heatmap.png")
		if err := a.record(p, render.Heatmap(a.fs, p, titlePyramid, rep.Horizontal.Transpose().Float64s(), a.size())); err != nil {
			return err
		}
		if err := a.heatmaps("horizontal", LabelHorizontal, hv); err != nil {
			return err
		}
		if err := a.heatmaps("vertical", LabelVertical, vv); err != nil {
			return err
		}
	}

	if a.cfg.GetRenderSurface() {
		for _, variant := range []struct {
			name, title string
			h, v        [][]float64
		}{
			{"grid_surface.html", titleSurface, hv, vv},
			{"grid_surface_log.html", titleSurface + " [Log Scale]", logScaled(hv), logScaled(vv)},
		} {
			p := a.path(variant.name)
			err := render.SurfaceHTML(a.fs, p, variant.title,
				render.SurfaceLayer{Name: "horizontal", Values: variant.h},
				render.SurfaceLayer{Name: "vertical", Values: variant.v, RowOffset: verticalRowOffset},
			)
			if err := a.record(p, err); err != nil {
				return err
			}
		}
	}

	if a.cfg.GetRenderCSV() {
		p := a.path("horizontal.csv")
		if err := a.record(p, render.GridCSV(a.fs, p, rep.Horizontal)); err != nil {
			return err
		}
		p = a.path("vertical.csv")
		if err := a.record(p, render.GridCSV(a.fs, p, rep.Vertical)); err != nil {
			return err
		}
	}
	return nil
}

// windowBase names the artifacts of one windowed output, for example
// window_both_2x2 or window_vertical_3x3_log.
func windowBase(res *window.Result, logScale bool) string {
	base := fmt.Sprintf("window_%s_%dx%d", res.Mode, res.Window, res.Window)
	if logScale {
		base += "_log"
	}
	return base
}

// writeWindows writes a heatmap, surface and CSV per windowed output.
func (a *artifacts) writeWindows(rep *Report) error {
	logScale := a.cfg.GetLogScale()
	for _, res := range rep.Windows {
		base := windowBase(res, logScale)
		values := res.Float64s(logScale)
		title := WindowLabel(res.Window, res.Mode)
		if logScale {
			title += " [log1p]"
		}

		if a.cfg.GetRenderHeatmap() {
			if err := a.heatmaps(base, title, values); err != nil {
				return err
			}
		}
		if a.cfg.GetRenderSurface() {
			p := a.path(base + "_surface.html")
			if err := a.record(p, render.SurfaceHTML(a.fs, p, title, render.SurfaceLayer{Name: res.Mode.String(), Values: values})); err != nil {
				return err
			}
		}
		if a.cfg.GetRenderCSV() {
			p := a.path(base + ".csv")
			var err error
			if logScale {
				err = render.FloatCSV(a.fs, p, values)
			} else {
				err = render.GridCSV(a.fs, p, res.Grid())
			}
			if err := a.record(p, err); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeSeries writes one PNG and one CSV per window size of the growing
// series, plus a GIF of the PNGs. It is a no-op unless the series was
// computed.
func (a *artifacts) writeSeries(rep *Report) error {
	if len(rep.Series) == 0 {
		return nil
	}
	logScale := a.cfg.GetLogScale()
	anim := render.NewAnimation(a.fs, a.dir, "series", a.size(), a.cfg.GetFrameDelay())
	for _, step := range rep.Series {
		name := fmt.Sprintf("series_window_%02d", step.Window)
		values := step.Result.Float64s(logScale)

		png := name + ".png"
		err := anim.AddFrameAs(png, SeriesLabel(step.Window, step.Result.Mode), values)
		if err := a.record(a.path(png), err); err != nil {
			return err
		}

		if a.cfg.GetRenderCSV() {
			p := a.path(name + ".csv")
			if logScale {
				err = render.FloatCSV(a.fs, p, values)
			} else {
				err = render.GridCSV(a.fs, p, step.Result.Grid())
			}
			if err := a.record(p, err); err != nil {
				return err
			}
		}
	}
	p := a.path("series.gif")
	return a.record(p, anim.Finish(p))
}

// writeSweepAnimation renders the fixed-window spatial sweep, sampling at
// most max_frames anchors evenly and always keeping the final frame.
func (a *artifacts) writeSweepAnimation(rep *Report, mode window.Mode, w int) error {
	frames, err := window.SpatialSweep(rep.Horizontal, rep.Vertical, w, mode, a.cfg.GetMaxFrames())
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		monitoring.Logf("skipping sweep animation: window %d leaves no anchors", w)
		return nil
	}

	anim := render.NewAnimation(a.fs, a.path("sweep_frames"), "sweep", a.size(), a.cfg.GetFrameDelay())
	for _, f := range frames {
		if err := a.addFrame(anim, f, w, mode); err != nil {
			return err
		}
	}
	monitoring.Logf("sweep animation: %d frames, last anchor %d", anim.Len(), frames[len(frames)-1].Index)

	p := a.path("sweep.gif")
	return a.record(p, anim.Finish(p))
}

func (a *artifacts) addFrame(anim *render.Animation, f window.SweepFrame, w int, mode window.Mode) error {
	values := f.Partial.Float64s()
	if a.cfg.GetLogScale() {
		values = logScaled(values)
	}
	title := fmt.Sprintf("%s at (%d,%d)", WindowLabel(w, mode), f.Row, f.Col)
	if err := anim.AddFrame(title, values); err != nil && !errors.Is(err, render.ErrNoData) {
		return err
	}
	return nil
}
