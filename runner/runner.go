// Package runner drives a snapwell run: it loads the grid and the
// simulation fields, snaps every configured wellpath, and writes the
// adjusted paths and reports.
package runner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pthm-cable/snapwell/config"
	"github.com/pthm-cable/snapwell/field"
	"github.com/pthm-cable/snapwell/grid"
	"github.com/pthm-cable/snapwell/report"
	"github.com/pthm-cable/snapwell/snap"
	"github.com/pthm-cable/snapwell/wellpath"
)

// Runner executes one run over a loaded configuration.
type Runner struct {
	cfg *config.Config

	// ResInsight selects the ResInsight output variant over the RMS one.
	ResInsight bool
	// ReportDir enables CSV run reports when non-empty.
	ReportDir string
}

// New returns a runner for the given configuration.
func New(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Summary is the outcome of a run.
type Summary struct {
	Wells   int
	Failed  int
	Elapsed time.Duration
}

// Run loads the inputs, snaps every configured wellpath, and writes the
// output files. A well that fails is logged, skipped, and counted, so
// the remaining wells still get processed.
func (r *Runner) Run() (Summary, error) {
	start := time.Now()
	cfg := r.cfg

	g, restart, init, err := r.loadInputs()
	if err != nil {
		return Summary{}, err
	}
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return Summary{}, fmt.Errorf("could not create output directory: %w", err)
		}
	}

	rep, err := report.NewManager(r.ReportDir)
	if err != nil {
		return Summary{}, err
	}
	defer rep.Close()
	if err := rep.WriteConfig(cfg); err != nil {
		return Summary{}, err
	}

	pol := cfg.Policy()
	slog.Info("run settings",
		"delta_z", pol.Delta,
		"owc_offset", pol.OwcOffset,
		"owc_definition", fmt.Sprintf("%s:%g", pol.OwcKeyword, pol.OwcValue),
		"output", cfg.OutputDir)

	sum := Summary{Wells: len(cfg.WellpathFiles)}
	for i := range cfg.WellpathFiles {
		wpc := &cfg.WellpathFiles[i]
		slog.Info("snapping well", "index", i+1, "total", sum.Wells, "file", wpc.WellFile)
		if err := r.snapWell(wpc, g, restart, init, pol, rep); err != nil {
			slog.Error("well failed", "file", wpc.WellFile, "error", err)
			sum.Failed++
		}
	}

	sum.Elapsed = time.Since(start)
	if sum.Failed > 0 {
		return sum, fmt.Errorf("%d of %d wells failed", sum.Failed, sum.Wells)
	}
	return sum, nil
}

// loadInputs reads the grid, restart, and init files and checks that the
// field vectors match the grid. A broken init file is downgraded to a
// warning since permeability logs are optional.
func (r *Runner) loadInputs() (*grid.Grid, *field.Archive, *field.Static, error) {
	cfg := r.cfg

	slog.Info("loading grid", "file", cfg.GridFile)
	g, err := grid.Load(cfg.GridFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not load grid: %w", err)
	}

	slog.Info("loading restart", "file", cfg.RestartFile)
	restart, err := field.LoadArchive(cfg.RestartFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not load restart: %w", err)
	}
	if err := restart.Validate(g.NumActive()); err != nil {
		return nil, nil, nil, fmt.Errorf("restart does not match grid: %w", err)
	}

	var init *field.Static
	if cfg.InitFile == "" {
		slog.Info("no init file, permeability will not be logged")
	} else {
		slog.Info("loading init", "file", cfg.InitFile)
		init, err = field.LoadStatic(cfg.InitFile)
		if err != nil {
			slog.Warn("supplied init file not loaded", "file", cfg.InitFile, "error", err)
			init = nil
		} else if err := init.Validate(g.NumActive()); err != nil {
			return nil, nil, nil, fmt.Errorf("init does not match grid: %w", err)
		}
	}
	return g, restart, init, nil
}

func (r *Runner) snapWell(wpc *config.WellPathConfig, g *grid.Grid, restart *field.Archive,
	init *field.Static, pol snap.Policy, rep *report.Manager) error {

	start := time.Now()
	wp, err := r.loadWell(wpc)
	if err != nil {
		return err
	}

	res, err := snap.Snap(wp, g, restart, init, wpc.ParsedDate, pol)
	if err != nil {
		return err
	}

	rows, err := wp.Write("", r.cfg.Overwrite, r.ResInsight)
	if err != nil {
		return err
	}
	slog.Info("wrote wellpath", "rows", rows, "file", wp.FileName+".out")

	wr := report.FromResult(wp.WellName, wpc.WellFile, wpc.ParsedDate, res)
	wr.Seconds = time.Since(start).Seconds()
	if err := rep.WriteWell(wr); err != nil {
		slog.Warn("could not write well report", "error", err)
	}
	if err := rep.WritePoints(report.PointRows(wp.WellName, wp, res)); err != nil {
		slog.Warn("could not write point report", "error", err)
	}
	slog.Info("well completed", "report", wr)
	return nil
}

// loadWell parses one wellpath file and applies its per-well settings.
func (r *Runner) loadWell(wpc *config.WellPathConfig) (*wellpath.Path, error) {
	wp, err := wellpath.Load(wpc.WellFile, wpc.ParsedDate)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded wellpath", "well", wp.WellName, "points", wp.Len(), "logs", len(wp.Headers())-3)

	wp.FileName = outputPath(wp, r.cfg.OutputDir)
	if wpc.DepthType != "" {
		if err := wp.SetDepthType(wpc.DepthType); err != nil {
			return nil, err
		}
		wp.SetWindowDepth(wpc.Window())
		slog.Info("configured depth window", "well", wp.WellName,
			"depth_type", wpc.DepthType, "window_depth", wpc.Window())
	}
	if wpc.OwcDefinition != nil {
		wp.SetOwcDefinition(*wpc.OwcDefinition)
	}
	if wpc.OwcOffset != nil {
		wp.SetOwcOffset(*wpc.OwcOffset)
	}
	return wp, nil
}

// outputPath picks where a snapped path is written, without the ".out"
// suffix that Write appends. A well whose name makes a usable file name
// goes to the output directory under that name, anything else lands
// next to its input file.
func outputPath(wp *wellpath.Path, outputDir string) string {
	name := wp.WellName
	if len(name) > 1 && len(strings.Fields(name)) == 1 {
		return filepath.Join(outputDir, name)
	}
	return wp.FileName
}
