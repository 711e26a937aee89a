package grid

import (
	"encoding/json"
	"fmt"
	"os"
)

// CaseVersion is incremented when the grid case format changes.
const CaseVersion = 1

// caseFile is the JSON form of a grid. Inactive cells are listed sparsely
// by flat scan index; all other cells are active.
type caseFile struct {
	Version int `json:"version"`

	NI int `json:"ni"`
	NJ int `json:"nj"`
	NK int `json:"nk"`

	XCoords []float64 `json:"x_coords"`
	YCoords []float64 `json:"y_coords"`
	ZCoords []float64 `json:"z_coords"`

	Inactive []int `json:"inactive,omitempty"`
}

// Save writes the grid as a JSON case file.
func Save(g *Grid, path string) error {
	cf := caseFile{
		Version: CaseVersion,
		NI:      g.ni,
		NJ:      g.nj,
		NK:      g.nk,
		XCoords: g.xs,
		YCoords: g.ys,
		ZCoords: g.zs,
	}
	for c, a := range g.activeIndex {
		if a < 0 {
			cf.Inactive = append(cf.Inactive, c)
		}
	}

	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal grid case: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write grid case: %w", err)
	}
	return nil
}

// Load reads a JSON grid case file.
func Load(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grid case: %w", err)
	}

	var cf caseFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("unmarshal grid case: %w", err)
	}
	if cf.Version != CaseVersion {
		return nil, fmt.Errorf("grid case version %d not supported", cf.Version)
	}

	var active []bool
	if len(cf.Inactive) > 0 {
		active = make([]bool, cf.NI*cf.NJ*cf.NK)
		for i := range active {
			active[i] = true
		}
		for _, c := range cf.Inactive {
			if c < 0 || c >= len(active) {
				return nil, fmt.Errorf("inactive cell index %d out of range", c)
			}
			active[c] = false
		}
	}

	g, err := New(cf.NI, cf.NJ, cf.NK, cf.XCoords, cf.YCoords, cf.ZCoords, active)
	if err != nil {
		return nil, fmt.Errorf("grid case %s: %w", path, err)
	}
	return g, nil
}
