// Package analysis runs the full pipeline: parse the input set, build the
// difference pyramid, materialize its grids, aggregate them with a sliding
// window and hand the numbers to the renderers and the optional SQLite
// export.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/banshee-data/xor-pyramid/internal/config"
	"github.com/banshee-data/xor-pyramid/internal/fsutil"
	"github.com/banshee-data/xor-pyramid/internal/grid"
	"github.com/banshee-data/xor-pyramid/internal/monitoring"
	"github.com/banshee-data/xor-pyramid/internal/pyramid"
	"github.com/banshee-data/xor-pyramid/internal/security"
	"github.com/banshee-data/xor-pyramid/internal/stats"
	"github.com/banshee-data/xor-pyramid/internal/timeutil"
	"github.com/banshee-data/xor-pyramid/internal/window"
	"github.com/google/uuid"
)

// Summary labels printed for every run.
const (
	LabelHorizontal = "Horizontal XOR Differences"
	LabelVertical   = "Vertical XOR Differences"
)

// WindowLabel is the summary label of the windowed output of one mode.
func WindowLabel(w int, mode window.Mode) string {
	return fmt.Sprintf("Sliding Window XOR (%dx%d) %s", w, w, mode.Title())
}

// SeriesLabel is the summary label of one step of a growing window series.
func SeriesLabel(w int, mode window.Mode) string {
	return fmt.Sprintf("Full Sliding Window XOR (%dx%d) %s", w, w, mode.Title())
}

// runIDPrefix is how much of the run ID goes into the run directory name.
const runIDPrefix = 8

// Line is one printed summary; Summary is nil when the grid had no data.
type Line struct {
	Label   string
	Summary *stats.Summary
}

// String renders the line the way it is printed to stdout.
func (l Line) String() string {
	if l.Summary == nil {
		return l.Label + " - no data"
	}
	return l.Summary.Format(l.Label)
}

// Report is the outcome of a run.
type Report struct {
	RunID      string
	Label      string
	Dir        string
	Levels     int
	Horizontal *grid.Grid
	Vertical   *grid.Grid
	Windows    []*window.Result
	Series     []window.SeriesStep
	Lines      []Line
	Artifacts  []string
}

// Window returns the windowed output of mode, or nil when mode was not run.
func (r *Report) Window(mode window.Mode) *window.Result {
	for _, res := range r.Windows {
		if res.Mode == mode {
			return res
		}
	}
	return nil
}

// Deps carries the injectable collaborators of Run.
type Deps struct {
	FS    fsutil.FileSystem
	Clock timeutil.Clock
}

func (d Deps) withDefaults() Deps {
	if d.FS == nil {
		d.FS = fsutil.OSFileSystem{}
	}
	if d.Clock == nil {
		d.Clock = timeutil.RealClock{}
	}
	return d
}

// Run executes one analysis. Every configured window mode is aggregated
// and summarized. A malformed input set aborts before anything is written.
// A window larger than the grids is not an error: the windowed summary
// reports "no data" and its artifacts are skipped.
func Run(ctx context.Context, cfg *config.Config, deps Deps) (*Report, error) {
	if cfg == nil {
		cfg = config.Empty()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	deps = deps.withDefaults()

	in := cfg.GetInput()
	values, err := pyramid.ParseHexList(in.Values)
	if err != nil {
		return nil, fmt.Errorf("input set %s: %w", in.Label, err)
	}

	done := monitoring.Stage("build pyramid")
	p, err := pyramid.Build(values)
	if err != nil {
		return nil, err
	}
	h, v := grid.Materialize(p)
	done()

	w, logScale := cfg.GetWindowSize(), cfg.GetLogScale()
	now := deps.Clock.Now()
	rep := &Report{
		RunID:      uuid.NewString(),
		Label:      in.Label,
		Levels:     p.Levels(),
		Horizontal: h,
		Vertical:   v,
	}
	rep.Lines = []Line{
		summarize(LabelHorizontal, h.DefinedFloat64s()),
		summarize(LabelVertical, v.DefinedFloat64s()),
	}

	for _, mode := range cfg.GetModes() {
		done = monitoring.Stage(fmt.Sprintf("slide window=%d mode=%s", w, mode))
		res, err := window.Slide(h, v, w, mode)
		if err != nil {
			return nil, err
		}
		done()
		if res.Empty() {
			monitoring.Logf("window %d exceeds the %s grid extent; windowed output is empty", w, mode)
		}
		rep.Windows = append(rep.Windows, res)
		rep.Lines = append(rep.Lines, summarize(WindowLabel(w, mode), res.Flat(logScale)))
	}

	if cfg.GetSeries() {
		mode := cfg.GetMode()
		rep.Series, err = window.GrowingSeries(h, v, mode, cfg.GetSweepFrom())
		if err != nil {
			return nil, err
		}
		for _, step := range rep.Series {
			rep.Lines = append(rep.Lines, summarize(SeriesLabel(step.Window, mode), step.Result.Flat(logScale)))
		}
	}

	outDir := cfg.GetOutputDir()
	rep.Dir = filepath.Join(outDir, fmt.Sprintf("%s_%s_%s",
		security.SanitizeFilename(in.Label), timeutil.RunStamp(now), rep.RunID[:runIDPrefix]))
	if err := security.ValidatePathWithinDirectory(rep.Dir, outDir); err != nil {
		return nil, err
	}
	if err := deps.FS.MkdirAll(rep.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	art := &artifacts{fs: deps.FS, dir: rep.Dir, cfg: cfg}
	if err := art.writeGrids(rep); err != nil {
		return nil, err
	}
	if err := art.writeWindows(rep); err != nil {
		return nil, err
	}
	if err := art.writeSeries(rep); err != nil {
		return nil, err
	}
	if cfg.GetAnimate() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := art.writeSweepAnimation(rep, cfg.GetMode(), w); err != nil {
			return nil, err
		}
	}
	rep.Artifacts = art.written

	if path := cfg.GetSQLitePath(); path != "" {
		if err := export(ctx, path, cfg, rep, now); err != nil {
			return nil, err
		}
		rep.Artifacts = append(rep.Artifacts, path)
	}

	monitoring.Logf("run %s wrote %d artifacts to %s", rep.RunID, len(rep.Artifacts), rep.Dir)
	return rep, nil
}

func summarize(label string, values []float64) Line {
	s, err := stats.Summarize(values)
	if errors.Is(err, stats.ErrNoData) {
		return Line{Label: label}
	}
	return Line{Label: label, Summary: &s}
}

// logScaled applies log1p(|x|) to every finite value, keeping NaN cells.
func logScaled(values [][]float64) [][]float64 {
	out := make([][]float64, len(values))
	for i, row := range values {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				out[i][j] = v
				continue
			}
			out[i][j] = math.Log1p(math.Abs(v))
		}
	}
	return out
}
