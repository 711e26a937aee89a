package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/snapwell/config"
)

const (
	runFileName    = "snapwell_run.csv"
	pointsFileName = "snapwell_points.csv"
	configFileName = "config.yaml"
)

// Manager writes run artifacts (summary CSV, per-point CSV, resolved
// config) into a single output directory. A nil Manager is valid and
// discards everything, so callers can skip reporting without branching.
type Manager struct {
	dir string

	runFile          *os.File
	runHeaderWritten bool

	pointsFile          *os.File
	pointsHeaderWritten bool
}

// NewManager creates the report directory and its CSV files. An empty
// dir returns a nil Manager, which disables reporting.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create report directory: %w", err)
	}

	runFile, err := os.Create(filepath.Join(dir, runFileName))
	if err != nil {
		return nil, fmt.Errorf("could not create run report: %w", err)
	}
	pointsFile, err := os.Create(filepath.Join(dir, pointsFileName))
	if err != nil {
		runFile.Close()
		return nil, fmt.Errorf("could not create point report: %w", err)
	}

	return &Manager{
		dir:        dir,
		runFile:    runFile,
		pointsFile: pointsFile,
	}, nil
}

// Dir returns the report directory, or "" for a nil Manager.
func (m *Manager) Dir() string {
	if m == nil {
		return ""
	}
	return m.dir
}

// WriteWell appends one well summary to the run report.
func (m *Manager) WriteWell(r WellReport) error {
	if m == nil {
		return nil
	}
	rows := []WellReport{r}
	if !m.runHeaderWritten {
		m.runHeaderWritten = true
		return gocsv.Marshal(&rows, m.runFile)
	}
	return gocsv.MarshalWithoutHeaders(&rows, m.runFile)
}

// WritePoints appends per-point rows to the point report.
func (m *Manager) WritePoints(rows []PointRow) error {
	if m == nil || len(rows) == 0 {
		return nil
	}
	if !m.pointsHeaderWritten {
		m.pointsHeaderWritten = true
		return gocsv.Marshal(&rows, m.pointsFile)
	}
	return gocsv.MarshalWithoutHeaders(&rows, m.pointsFile)
}

// WriteConfig saves the resolved run configuration alongside the CSVs.
func (m *Manager) WriteConfig(cfg *config.Config) error {
	if m == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(m.dir, configFileName))
}

// Close flushes and closes the report files.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	var firstErr error
	if err := m.runFile.Close(); err != nil {
		firstErr = err
	}
	if err := m.pointsFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
