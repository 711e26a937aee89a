package field

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveVersion is bumped when the archive file layout changes.
const ArchiveVersion = 1

const dateLayout = "2006-01-02"

type stepFile struct {
	Date   string               `json:"date"`
	Fields map[string][]float64 `json:"fields"`
}

type archiveFile struct {
	Version int        `json:"version"`
	Steps   []stepFile `json:"steps"`
}

type staticFile struct {
	Version int                  `json:"version"`
	Fields  map[string][]float64 `json:"fields"`
}

// SaveArchive writes the archive as indented JSON, creating parent
// directories as needed.
func SaveArchive(a *Archive, path string) error {
	out := archiveFile{Version: ArchiveVersion}
	for _, s := range a.steps {
		out.Steps = append(out.Steps, stepFile{
			Date:   s.Date.Format(dateLayout),
			Fields: s.Fields,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal restart archive: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create restart dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write restart archive: %w", err)
	}
	return nil
}

// LoadArchive reads an archive file written by SaveArchive.
func LoadArchive(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read restart archive: %w", err)
	}
	var in archiveFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse restart archive %s: %w", path, err)
	}
	if in.Version != ArchiveVersion {
		return nil, fmt.Errorf("restart archive %s: unsupported version %d", path, in.Version)
	}
	steps := make([]Step, 0, len(in.Steps))
	for i, s := range in.Steps {
		date, err := time.Parse(dateLayout, s.Date)
		if err != nil {
			return nil, fmt.Errorf("restart archive %s step %d: bad date %q", path, i, s.Date)
		}
		steps = append(steps, Step{Date: date, Fields: s.Fields})
	}
	a, err := NewArchive(steps)
	if err != nil {
		return nil, fmt.Errorf("restart archive %s: %w", path, err)
	}
	return a, nil
}

// SaveStatic writes the static archive as indented JSON.
func SaveStatic(s *Static, path string) error {
	out := staticFile{Version: ArchiveVersion, Fields: s.fields}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal init archive: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create init dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write init archive: %w", err)
	}
	return nil
}

// LoadStatic reads a static archive file written by SaveStatic.
func LoadStatic(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read init archive: %w", err)
	}
	var in staticFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse init archive %s: %w", path, err)
	}
	if in.Version != ArchiveVersion {
		return nil, fmt.Errorf("init archive %s: unsupported version %d", path, in.Version)
	}
	if in.Fields == nil {
		in.Fields = map[string][]float64{}
	}
	return &Static{fields: in.Fields}, nil
}
