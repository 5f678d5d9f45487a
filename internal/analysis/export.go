package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/banshee-data/xor-pyramid/internal/config"
	"github.com/banshee-data/xor-pyramid/internal/grid"
	"github.com/banshee-data/xor-pyramid/internal/monitoring"
	"github.com/banshee-data/xor-pyramid/internal/store"
	"github.com/banshee-data/xor-pyramid/internal/window"
)

// export writes the run, its grids and its summaries to the SQLite file at path.
func export(ctx context.Context, path string, cfg *config.Config, rep *Report, now time.Time) error {
	defer monitoring.Stage("sqlite export")()

	s, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer s.Close()

	run, err := s.SaveRun(ctx, store.Run{
		ID:         rep.RunID,
		Label:      rep.Label,
		InputLen:   rep.Levels,
		WindowSize: cfg.GetWindowSize(),
		Mode:       modeName(cfg.GetModes()),
		LogScale:   cfg.GetLogScale(),
		CreatedAt:  now,
	})
	if err != nil {
		return err
	}

	grids := map[string]*grid.Grid{
		"horizontal": rep.Horizontal,
		"vertical":   rep.Vertical,
	}
	for _, res := range rep.Windows {
		grids["window_"+res.Mode.String()] = res.Grid()
	}
	for name, g := range grids {
		if err := s.SaveGrid(ctx, run.ID, name, g); err != nil {
			return fmt.Errorf("export %s grid: %w", name, err)
		}
	}

	for _, line := range rep.Lines {
		if line.Summary == nil {
			continue
		}
		if err := s.SaveSummary(ctx, run.ID, line.Label, *line.Summary); err != nil {
			return err
		}
	}
	return nil
}

// modeName is the stored mode of a run: the single mode, or "all".
func modeName(modes []window.Mode) string {
	if len(modes) == 1 {
		return modes[0].String()
	}
	return "all"
}
