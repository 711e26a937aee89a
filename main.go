// Command snapwell adjusts well trajectories vertically to track a
// simulated fluid contact, keeping them at a configurable offset above
// the oil-water contact.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pthm-cable/snapwell/config"
	"github.com/pthm-cable/snapwell/runner"
)

const version = "1.0.0"

// formatDuration formats a duration as HhMMmSSs or MmSSs for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	os.Exit(run())
}

func run() int {
	// CLI flags
	outputDir := flag.String("o", "", "Output folder for the adjusted wellpath files")
	owcOffset := flag.Float64("z", 0, "Contact offset in meters, e.g. 0.5")
	owcDef := flag.String("f", "", "Contact definition, e.g. SWAT:0.7")
	delta := flag.Float64("d", 0, "Max dz/dxy inclination restriction, e.g. 0.0165")
	overwrite := flag.Bool("w", false, "Overwrite existing output files")
	resinsight := flag.Bool("r", false, "ResInsight compatible output format instead of RMS")
	reportDir := flag.String("report", "", "Directory for CSV run reports (empty = no reports)")
	logText := flag.Bool("log-text", false, "Human-readable log output instead of JSON")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("snapwell " + version)
		return 0
	}

	// Set up slog (JSON to stdout for structured logging), with
	// consecutive duplicates collapsed
	var handler slog.Handler
	if *logText {
		handler = slog.NewTextHandler(os.Stderr, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	dedup := runner.NewDedupHandler(handler)
	slog.SetDefault(slog.New(dedup))
	defer dedup.Flush()

	cfgPath := flag.Arg(0)
	if cfgPath == "" {
		fmt.Fprintln(os.Stderr, "error: a snapwell configuration file is required, e.g. snap.yaml")
		flag.Usage()
		return 2
	}
	switch filepath.Ext(cfgPath) {
	case ".yaml", ".yml":
	default:
		slog.Warn("a snapwell configuration file usually has a .yaml extension", "file", cfgPath)
	}

	slog.Info("snapwell launched", "version", version, "config", cfgPath)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("could not load config", "file", cfgPath, "error", err)
		return 2
	}
	cfg.SetBasePath(filepath.Dir(cfgPath))
	if code := applyOverrides(cfg, outputDir, owcOffset, owcDef, delta); code != 0 {
		return code
	}

	r := runner.New(cfg)
	r.ResInsight = *resinsight
	r.ReportDir = *reportDir
	if *overwrite {
		cfg.Overwrite = true
	}

	sum, err := r.Run()
	if err != nil {
		slog.Error("snapwell completed, but errors occurred", "error", err)
		return 1
	}
	slog.Info("snapwell completed", "wells", sum.Wells, "elapsed", formatDuration(sum.Elapsed))
	return 0
}

// applyOverrides folds explicitly set CLI flags over the file config.
// flag.Visit only reports flags given on the command line, so zero
// values stay distinguishable from absent flags.
func applyOverrides(cfg *config.Config, outputDir *string, owcOffset *float64, owcDef *string, delta *float64) int {
	code := 0
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			if st, err := os.Stat(*outputDir); err == nil && !st.IsDir() {
				fmt.Fprintln(os.Stderr, "error: output path is an existing file, delete it or choose a different output path")
				code = 2
				return
			}
			cfg.OutputDir = *outputDir
		case "z":
			cfg.OwcOffset = *owcOffset
		case "f":
			def, err := config.ParseOwcDefinition(*owcDef)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				code = 2
				return
			}
			cfg.OwcDefinition = def
		case "d":
			cfg.DeltaZ = *delta
		}
	})
	return code
}
