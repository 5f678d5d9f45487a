package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/banshee-data/xor-pyramid/internal/window"
)

//go:embed kh.defaults.json
var defaultInputJSON []byte

// InputSet is a labelled list of hexadecimal literals.
type InputSet struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// DefaultInputSet returns the embedded KH input set. A fresh copy is
// returned on every call.
func DefaultInputSet() InputSet {
	var in InputSet
	if err := json.Unmarshal(defaultInputJSON, &in); err != nil {
		panic("config: embedded kh.defaults.json is invalid: " + err.Error())
	}
	return in
}

// LoadInputSet reads an input set from a JSON file ({"label","values"}).
func LoadInputSet(path string) (InputSet, error) {
	data, err := readBounded(path)
	if err != nil {
		return InputSet{}, err
	}
	var in InputSet
	if err := json.Unmarshal(data, &in); err != nil {
		return InputSet{}, fmt.Errorf("failed to parse input set JSON: %w", err)
	}
	if len(in.Values) == 0 {
		return InputSet{}, fmt.Errorf("input set %s has no values", path)
	}
	if in.Label == "" {
		in.Label = "input"
	}
	return in, nil
}

// RenderConfig toggles individual artifact kinds.
type RenderConfig struct {
	Heatmap *bool `json:"heatmap,omitempty"`
	Surface *bool `json:"surface,omitempty"`
	CSV     *bool `json:"csv,omitempty"`
}

// Config is the analysis configuration. Every field is optional; the Get*
// accessors supply defaults for anything omitted, so partial files are
// safe. Command line flags override file values.
type Config struct {
	WindowSize   *int          `json:"window_size,omitempty"`
	LogScale     *bool         `json:"log_scale,omitempty"`
	Animate      *bool         `json:"animate,omitempty"`
	Series       *bool         `json:"series,omitempty"`
	Mode         *string       `json:"mode,omitempty"`
	OutputDir    *string       `json:"output_dir,omitempty"`
	Input        *InputSet     `json:"input,omitempty"`
	FrameDelay   *string       `json:"frame_delay,omitempty"` // duration string like "200ms"
	SweepFrom    *int          `json:"sweep_from,omitempty"`
	MaxFrames    *int          `json:"max_frames,omitempty"`
	Render       *RenderConfig `json:"render,omitempty"`
	PlotWidthIn  *float64      `json:"plot_width_in,omitempty"`
	PlotHeightIn *float64      `json:"plot_height_in,omitempty"`
	SQLitePath   *string       `json:"sqlite_path,omitempty"`
}

// Helper functions to create pointers
func PtrInt(v int) *int             { return &v }
func PtrBool(v bool) *bool          { return &v }
func PtrString(v string) *string    { return &v }
func PtrFloat64(v float64) *float64 { return &v }

// Empty returns a Config with every field unset.
func Empty() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file. The file must have a .json
// extension and be under 1MB.
func Load(path string) (*Config, error) {
	data, err := readBounded(path)
	if err != nil {
		return nil, err
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func readBounded(path string) ([]byte, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if c.WindowSize != nil && *c.WindowSize < 1 {
		return fmt.Errorf("window_size must be at least 1, got %d", *c.WindowSize)
	}
	if c.Mode != nil && !allModes(*c.Mode) {
		if _, err := window.ParseMode(*c.Mode); err != nil {
			return err
		}
	}
	if c.FrameDelay != nil && *c.FrameDelay != "" {
		d, err := time.ParseDuration(*c.FrameDelay)
		if err != nil {
			return fmt.Errorf("invalid frame_delay '%s': %w", *c.FrameDelay, err)
		}
		if d < 0 {
			return fmt.Errorf("frame_delay must be non-negative, got %s", d)
		}
	}
	if c.SweepFrom != nil && *c.SweepFrom < 1 {
		return fmt.Errorf("sweep_from must be at least 1, got %d", *c.SweepFrom)
	}
	if c.MaxFrames != nil && *c.MaxFrames < 1 {
		return fmt.Errorf("max_frames must be at least 1, got %d", *c.MaxFrames)
	}
	if c.PlotWidthIn != nil && *c.PlotWidthIn <= 0 {
		return fmt.Errorf("plot_width_in must be positive, got %f", *c.PlotWidthIn)
	}
	if c.PlotHeightIn != nil && *c.PlotHeightIn <= 0 {
		return fmt.Errorf("plot_height_in must be positive, got %f", *c.PlotHeightIn)
	}
	if c.Input != nil && len(c.Input.Values) == 0 {
		return fmt.Errorf("input.values must not be empty")
	}
	return nil
}

// GetWindowSize returns window_size or the default of 2.
func (c *Config) GetWindowSize() int {
	if c.WindowSize == nil {
		return 2
	}
	return *c.WindowSize
}

// GetLogScale returns log_scale or false.
func (c *Config) GetLogScale() bool {
	return c.LogScale != nil && *c.LogScale
}

// GetAnimate returns animate or false.
func (c *Config) GetAnimate() bool {
	return c.Animate != nil && *c.Animate
}

// GetSeries returns series or false.
func (c *Config) GetSeries() bool {
	return c.Series != nil && *c.Series
}

func allModes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "" || s == "all"
}

// GetModes returns the window modes to run. An unset mode, "" or "all"
// selects every mode; anything else selects just that one.
func (c *Config) GetModes() []window.Mode {
	if c.Mode == nil || allModes(*c.Mode) {
		return append([]window.Mode(nil), window.AllModes...)
	}
	m, err := window.ParseMode(*c.Mode)
	if err != nil {
		return append([]window.Mode(nil), window.AllModes...)
	}
	return []window.Mode{m}
}

// GetMode returns the single mode used by the sweep animation and the
// growing series: the configured mode, or both when every mode is run.
func (c *Config) GetMode() window.Mode {
	if c.Mode == nil || allModes(*c.Mode) {
		return window.Both
	}
	m, err := window.ParseMode(*c.Mode)
	if err != nil {
		return window.Both
	}
	return m
}

// GetOutputDir returns output_dir or "output".
func (c *Config) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "output"
	}
	return *c.OutputDir
}

// GetInput returns the configured input set or the embedded KH set.
func (c *Config) GetInput() InputSet {
	if c.Input == nil {
		return DefaultInputSet()
	}
	in := InputSet{Label: c.Input.Label, Values: append([]string(nil), c.Input.Values...)}
	if in.Label == "" {
		in.Label = "input"
	}
	return in
}

// GetFrameDelay returns frame_delay as a duration, defaulting to 200ms.
func (c *Config) GetFrameDelay() time.Duration {
	if c.FrameDelay == nil || *c.FrameDelay == "" {
		return 200 * time.Millisecond
	}
	d, err := time.ParseDuration(*c.FrameDelay)
	if err != nil {
		return 200 * time.Millisecond
	}
	return d
}

// GetSweepFrom returns the first window size of a growing series (2).
func (c *Config) GetSweepFrom() int {
	if c.SweepFrom == nil {
		return 2
	}
	return *c.SweepFrom
}

// GetMaxFrames caps the frames written by a spatial sweep animation (400).
func (c *Config) GetMaxFrames() int {
	if c.MaxFrames == nil {
		return 400
	}
	return *c.MaxFrames
}

// GetRenderHeatmap reports whether PNG/HTML heatmaps are written (default true).
func (c *Config) GetRenderHeatmap() bool {
	if c.Render == nil || c.Render.Heatmap == nil {
		return true
	}
	return *c.Render.Heatmap
}

// GetRenderSurface reports whether 3D surface HTML is written (default true).
func (c *Config) GetRenderSurface() bool {
	if c.Render == nil || c.Render.Surface == nil {
		return true
	}
	return *c.Render.Surface
}

// GetRenderCSV reports whether CSV grids are written (default true).
func (c *Config) GetRenderCSV() bool {
	if c.Render == nil || c.Render.CSV == nil {
		return true
	}
	return *c.Render.CSV
}

// GetPlotSize returns the PNG size in inches (default 10x6).
func (c *Config) GetPlotSize() (width, height float64) {
	width, height = 10, 6
	if c.PlotWidthIn != nil {
		width = *c.PlotWidthIn
	}
	if c.PlotHeightIn != nil {
		height = *c.PlotHeightIn
	}
	return width, height
}

// GetSQLitePath returns sqlite_path; empty disables the database export.
func (c *Config) GetSQLitePath() string {
	if c.SQLitePath == nil {
		return ""
	}
	return *c.SQLitePath
}
