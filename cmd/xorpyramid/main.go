// Command xorpyramid builds the XOR difference pyramid of a hexadecimal
// input set, aggregates it with a sliding window and writes heatmaps, 3D
// surfaces, CSV tables and optional animations to a run directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/xor-pyramid/internal/analysis"
	"github.com/banshee-data/xor-pyramid/internal/config"
	"github.com/banshee-data/xor-pyramid/internal/monitoring"
	"github.com/banshee-data/xor-pyramid/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("xorpyramid: %v", err)
	}
}

type options struct {
	configPath string
	inputPath  string
	window     int
	logScale   bool
	animate    bool
	series     bool
	mode       string
	outDir     string
	sqlitePath string
	quiet      bool
	version    bool
}

func parseFlags(args []string) (*options, map[string]bool, error) {
	fs := flag.NewFlagSet("xorpyramid", flag.ContinueOnError)
	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "JSON config file (flags override its values)")
	fs.StringVar(&o.inputPath, "input", "", "JSON input set file {\"label\":..., \"values\":[\"0x..\"]} (defaults to the embedded KH set)")
	fs.IntVar(&o.window, "window", 2, "Sliding window size")
	fs.BoolVar(&o.logScale, "log", false, "Apply log1p(|x|) to the windowed output")
	fs.BoolVar(&o.animate, "animate", false, "Export sweep animation frames and GIF")
	fs.BoolVar(&o.series, "series", false, "Also compute the growing window series (window 2 up to the grid size)")
	fs.StringVar(&o.mode, "mode", "all", "Window modes to run: all, horizontal, vertical or both")
	fs.StringVar(&o.outDir, "out", "output", "Output directory for run artifacts")
	fs.StringVar(&o.sqlitePath, "sqlite", "", "Also export the run into this SQLite file")
	fs.BoolVar(&o.quiet, "quiet", false, "Suppress diagnostic logging")
	fs.BoolVar(&o.version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

// buildConfig loads the config file (if any) and overlays the flags that
// were explicitly set on the command line.
func buildConfig(o *options, set map[string]bool) (*config.Config, error) {
	cfg := config.Empty()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if set["window"] {
		cfg.WindowSize = config.PtrInt(o.window)
	}
	if set["log"] {
		cfg.LogScale = config.PtrBool(o.logScale)
	}
	if set["animate"] {
		cfg.Animate = config.PtrBool(o.animate)
	}
	if set["series"] {
		cfg.Series = config.PtrBool(o.series)
	}
	if set["mode"] {
		cfg.Mode = config.PtrString(o.mode)
	}
	if set["out"] {
		cfg.OutputDir = config.PtrString(o.outDir)
	}
	if set["sqlite"] {
		cfg.SQLitePath = config.PtrString(o.sqlitePath)
	}
	if o.inputPath != "" {
		in, err := config.LoadInputSet(o.inputPath)
		if err != nil {
			return nil, err
		}
		cfg.Input = &in
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, set, err := parseFlags(args)
	if err != nil {
		return err
	}
	if o.version {
		fmt.Fprintln(stdout, version.String())
		return nil
	}
	if o.quiet {
		monitoring.SetLogger(nil)
	}

	cfg, err := buildConfig(o, set)
	if err != nil {
		return err
	}

	rep, err := analysis.Run(ctx, cfg, analysis.Deps{})
	if err != nil {
		return err
	}

	for _, line := range rep.Lines {
		fmt.Fprintln(stdout, line.String())
	}
	fmt.Fprintf(stdout, "Artifacts written to %s (%d files)\n", rep.Dir, len(rep.Artifacts))
	return nil
}
