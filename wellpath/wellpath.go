// Package wellpath models a well trajectory as a column table: x, y, z
// (UTM easting, northing, true vertical depth) plus any number of logs
// such as measured depth, inclination, and azimuth. It reads and writes
// the RMS WELLPATH text format.
package wellpath

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrColumnExists marks an attempt to add a column name already in the table.
var ErrColumnExists = errors.New("column exists")

// Path is a well trajectory. The x, y, and z columns always exist; logs
// are appended after them in header order.
type Path struct {
	Version  string
	WellType string
	WellName string
	FileName string
	Date     time.Time

	rkb     [3]float64
	headers []string
	columns map[string][]float64

	depthType   string
	windowDepth float64

	owcOffset     *float64
	owcDefinition *float64
}

// New returns an empty path with the three mandatory columns.
func New(version, welltype, wellname string) *Path {
	return &Path{
		Version:  version,
		WellType: welltype,
		WellName: wellname,
		headers:  []string{"x", "y", "z"},
		columns: map[string][]float64{
			"x": {}, "y": {}, "z": {},
		},
		windowDepth: math.Inf(-1),
	}
}

// Len returns the number of path points.
func (p *Path) Len() int {
	return len(p.columns["x"])
}

// Headers returns the column names in order.
func (p *Path) Headers() []string {
	out := make([]string, len(p.headers))
	copy(out, p.headers)
	return out
}

// HasColumn reports whether the named column exists.
func (p *Path) HasColumn(name string) bool {
	_, ok := p.columns[name]
	return ok
}

// Column returns the named column. The slice is live: writes to it are
// writes to the path.
func (p *Path) Column(name string) ([]float64, bool) {
	col, ok := p.columns[name]
	return col, ok
}

// AddColumn appends a named column. The data length must match the
// current number of points; nil counts as empty.
func (p *Path) AddColumn(name string, data []float64) error {
	if _, ok := p.columns[name]; ok {
		return fmt.Errorf("column %q: %w", name, ErrColumnExists)
	}
	if len(data) != p.Len() {
		return fmt.Errorf("column %q needs %d entries, got %d", name, p.Len(), len(data))
	}
	if data == nil {
		data = []float64{}
	}
	p.columns[name] = data
	p.headers = append(p.headers, name)
	return nil
}

// RemoveColumn deletes a log column. The x, y, and z columns cannot be
// removed.
func (p *Path) RemoveColumn(name string) error {
	switch name {
	case "x", "y", "z":
		return fmt.Errorf("cannot delete column %q, a well path must contain x, y, and z", name)
	}
	if _, ok := p.columns[name]; !ok {
		return nil
	}
	delete(p.columns, name)
	hs := p.headers[:0]
	for _, h := range p.headers {
		if h != name {
			hs = append(hs, h)
		}
	}
	p.headers = hs
	return nil
}

// AppendRow adds one point given in header order.
func (p *Path) AppendRow(row []float64) error {
	if len(row) != len(p.headers) {
		return fmt.Errorf("cannot insert row of %d values into table of %d columns",
			len(row), len(p.headers))
	}
	for i, h := range p.headers {
		p.columns[h] = append(p.columns[h], row[i])
	}
	if p.Len() == 1 {
		p.updateRKB()
	}
	return nil
}

// Row returns point idx in header order.
func (p *Path) Row(idx int) []float64 {
	row := make([]float64, len(p.headers))
	for i, h := range p.headers {
		row[i] = p.columns[h][idx]
	}
	return row
}

// X returns the easting of point idx.
func (p *Path) X(idx int) float64 { return p.columns["x"][idx] }

// Y returns the northing of point idx.
func (p *Path) Y(idx int) float64 { return p.columns["y"][idx] }

// Z returns the depth of point idx.
func (p *Path) Z(idx int) float64 { return p.columns["z"][idx] }

// SetZ updates the depth of point idx. Updating the first point also
// refreshes the RKB.
func (p *Path) SetZ(idx int, z float64) {
	p.columns["z"][idx] = z
	if idx == 0 {
		p.updateRKB()
	}
}

// Update sets the idx'th value of the named column.
func (p *Path) Update(name string, idx int, v float64) error {
	col, ok := p.columns[name]
	if !ok {
		return fmt.Errorf("no column named %q", name)
	}
	if idx < 0 || idx >= len(col) {
		return fmt.Errorf("row index out of range, 0 <= %d < %d", idx, len(col))
	}
	col[idx] = v
	return nil
}

// RKB returns the rotary kelly bushing reference point.
func (p *Path) RKB() (x, y, z float64) {
	return p.rkb[0], p.rkb[1], p.rkb[2]
}

// SetRKB sets the rotary kelly bushing reference point.
func (p *Path) SetRKB(x, y, z float64) {
	p.rkb = [3]float64{x, y, z}
}

// updateRKB derives rkb = (x0, y0, MD0-TVD0) from the first point. It
// does nothing without an MD column or with non-finite depths.
func (p *Path) updateRKB() bool {
	if p.Len() == 0 {
		return false
	}
	md, ok := p.columns["MD"]
	if !ok {
		return false
	}
	tvd := p.columns["z"][0]
	if math.IsNaN(md[0]) || math.IsInf(md[0], 0) || math.IsNaN(tvd) || math.IsInf(tvd, 0) {
		return false
	}
	p.rkb = [3]float64{p.columns["x"][0], p.columns["y"][0], md[0] - tvd}
	return true
}

// DepthType returns the depth window type: "", "MD", or "TVD".
func (p *Path) DepthType() string {
	return p.depthType
}

// SetDepthType sets the depth window type. The empty string clears the
// type and resets the window depth.
func (p *Path) SetDepthType(dt string) error {
	switch dt {
	case "":
		p.depthType = ""
		p.windowDepth = math.Inf(-1)
	case "MD", "TVD":
		p.depthType = dt
	default:
		return fmt.Errorf(`window depth type must be "", "MD", or "TVD", not %q`, dt)
	}
	return nil
}

// WindowDepth returns the depth above which points are left untouched.
func (p *Path) WindowDepth() float64 {
	return p.windowDepth
}

// SetWindowDepth sets the depth window threshold.
func (p *Path) SetWindowDepth(d float64) {
	p.windowDepth = d
}

// OwcOffset returns the per-well contact offset override, if set.
func (p *Path) OwcOffset() (float64, bool) {
	if p.owcOffset == nil {
		return 0, false
	}
	return *p.owcOffset, true
}

// SetOwcOffset sets the per-well contact offset override.
func (p *Path) SetOwcOffset(v float64) {
	p.owcOffset = &v
}

// OwcDefinition returns the per-well contact threshold override, if set.
func (p *Path) OwcDefinition() (float64, bool) {
	if p.owcDefinition == nil {
		return 0, false
	}
	return *p.owcDefinition, true
}

// SetOwcDefinition sets the per-well contact threshold override.
func (p *Path) SetOwcDefinition(v float64) {
	p.owcDefinition = &v
}

func (p *Path) String() string {
	return p.WellName
}
