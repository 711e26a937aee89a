// Package snap adjusts well trajectories vertically against a simulated
// fluid contact. Given a grid, restart results, and a date, it moves
// each wellpoint to the cell center nearest a fixed standoff above the
// oil-water contact, respecting an inclination cap, and appends
// requested diagnostic logs to the path.
package snap

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/pthm-cable/snapwell/field"
	"github.com/pthm-cable/snapwell/grid"
	"github.com/pthm-cable/snapwell/wellpath"
)

// Policy bundles the knobs for one snapping pass.
type Policy struct {
	// OwcKeyword and OwcValue define the contact: the restart field and
	// the value that marks the fluid boundary, typically SWAT 0.7.
	OwcKeyword string
	OwcValue   float64

	// OwcOffset is the standoff above the contact, in meters.
	OwcOffset float64

	// Delta caps the inclination: a point may move at most Delta meters
	// vertically per meter of lateral distance from its predecessor.
	Delta float64

	// Keywords are the diagnostic columns appended to the path.
	Keywords []Keyword
}

// DefaultPolicy is the stock configuration: SWAT 0.7 contact, half a
// meter of standoff, unbounded inclination.
func DefaultPolicy() Policy {
	return Policy{
		OwcKeyword: "SWAT",
		OwcValue:   0.7,
		OwcOffset:  0.5,
		Delta:      math.Inf(1),
	}
}

// Result summarizes one snapped path. The per-point slices follow the
// path order.
type Result struct {
	Points  int
	Snapped int

	OldTVD []float64
	NewTVD []float64
	Diff   []float64
	Owc    []float64
	Length []float64
}

// Snap moves each wellpoint of wp vertically to track the fluid contact
// defined by the policy, walking the path in order. Depths are updated
// in place, measured depth is recumulated when present, and requested
// log columns are appended to the path.
//
// Points are left untouched until the path passes its depth window;
// from there on every point is adjusted. Per-path offset and contact
// value overrides take precedence over the policy.
func Snap(wp *wellpath.Path, g *grid.Grid, restart *field.Archive, init *field.Static, date time.Time, pol Policy) (Result, error) {
	keywords := slices.Clone(pol.Keywords)

	var permx []float64
	if init != nil {
		var err error
		permx, err = init.Value("PERMX")
		if err != nil {
			return Result{}, fmt.Errorf("well %s: %w", wp.WellName, err)
		}
	} else if slices.Contains(keywords, KwPermX) {
		slog.Warn("PERMX requested but no init file given, ignoring keyword",
			"well", wp.WellName)
		keywords = slices.DeleteFunc(keywords, func(kw Keyword) bool { return kw == KwPermX })
	}

	offset := pol.OwcOffset
	if v, ok := wp.OwcOffset(); ok {
		slog.Info("overriding global owc offset", "well", wp.WellName, "value", v)
		offset = v
	}
	threshold := pol.OwcValue
	if v, ok := wp.OwcDefinition(); ok {
		slog.Info("overriding global owc definition", "well", wp.WellName, "value", v)
		threshold = v
	}

	owcVals, err := restart.ValueAtDate(pol.OwcKeyword, date)
	if err != nil {
		return Result{}, fmt.Errorf("contact field for well %s: %w", wp.WellName, err)
	}
	var swat, sgas []float64
	if slices.Contains(keywords, KwSwat) || slices.Contains(keywords, KwSoil) {
		if swat, err = restart.ValueAtDate("SWAT", date); err != nil {
			return Result{}, fmt.Errorf("log field for well %s: %w", wp.WellName, err)
		}
	}
	if slices.Contains(keywords, KwSgas) || slices.Contains(keywords, KwSoil) {
		if sgas, err = restart.ValueAtDate("SGAS", date); err != nil {
			return Result{}, fmt.Errorf("log field for well %s: %w", wp.WellName, err)
		}
	}

	var depthCol []float64
	switch wp.DepthType() {
	case "MD":
		col, ok := wp.Column("MD")
		if !ok {
			return Result{}, fmt.Errorf("well %s: depth window type MD needs an MD column", wp.WellName)
		}
		depthCol = col
	case "TVD":
		if col, ok := wp.Column("TVD"); ok {
			depthCol = col
		} else {
			depthCol, _ = wp.Column("z")
		}
	}

	mdCol, hasMD := wp.Column("MD")
	acc := grid.NewAccessor(g)

	n := wp.Len()
	res := Result{
		Points: n,
		OldTVD: make([]float64, 0, n),
		NewTVD: make([]float64, 0, n),
		Diff:   make([]float64, 0, n),
		Owc:    make([]float64, 0, n),
		Length: make([]float64, 0, n),
	}
	permxLog := make([]float64, 0, n)
	swatLog := make([]float64, 0, n)
	sgasLog := make([]float64, 0, n)
	soilLog := make([]float64, 0, n)

	inSnap := false
	for idx := 0; idx < n; idx++ {
		x, y, z := wp.X(idx), wp.Y(idx), wp.Z(idx)
		res.OldTVD = append(res.OldTVD, z)
		newTVD := z
		owc := math.NaN()

		if !inSnap && (depthCol == nil || depthCol[idx] > wp.WindowDepth()) {
			inSnap = true
			slog.Info("enabling snap mode", "well", wp.WellName, "point", idx,
				"depth", z, "window_type", wp.DepthType(), "window_depth", wp.WindowDepth())
		}

		if inSnap {
			res.Snapped++
			owc, newTVD = FindContact(acc, owcVals, x, y, z, threshold, offset)
		}

		// The inclination cap is measured against the previous, already
		// adjusted point. The very first adjusted point is free to jump.
		if inSnap && idx > 1 {
			px, py, pz := wp.X(idx-1), wp.Y(idx-1), wp.Z(idx-1)
			lo, hi := math.Inf(-1), math.Inf(1)
			if res.Snapped > 1 {
				// bound is NaN for a repeated footprint under an
				// unbounded cap (0 times Inf); that leaves the point
				// unconstrained.
				if bound := planarDistance(x, y, px, py) * pol.Delta; !math.IsNaN(bound) {
					lo, hi = math.Min(pz-bound, pz+bound), math.Max(pz-bound, pz+bound)
				}
			}
			newTVD = RoundAwayFromEven(math.Min(math.Max(newTVD, lo), hi))
		}

		if diff := math.Abs(z - newTVD); diff > maxAdjustment {
			slog.Warn("ignoring large vertical adjustment",
				"well", wp.WellName, "point", idx, "meters", int(diff))
			newTVD = z
		}

		res.Diff = append(res.Diff, newTVD-z)
		res.NewTVD = append(res.NewTVD, newTVD)
		wp.SetZ(idx, newTVD)

		i, j, k := acc.Locate(x, y, newTVD)
		cell := acc.ActiveIndex(i, j, k)
		if cell < 0 && inSnap {
			slog.Warn("snapped wellpoint lies in inactive cell",
				"i", i, "j", j, "k", k, "x", x, "y", y, "z", newTVD)
		}

		pv := math.NaN()
		if permx != nil && cell >= 0 {
			pv = permx[cell]
		}
		permxLog = append(permxLog, pv)

		sw, sg, so := math.NaN(), math.NaN(), math.NaN()
		if cell >= 0 && slices.Contains(keywords, KwSwat) {
			sw = swat[cell]
		}
		swatLog = append(swatLog, sw)
		if cell >= 0 && slices.Contains(keywords, KwSgas) {
			sg = sgas[cell]
		}
		sgasLog = append(sgasLog, sg)
		if cell >= 0 && slices.Contains(keywords, KwSoil) {
			so = swat[cell] + sgas[cell]
		}
		soilLog = append(soilLog, 1-so)

		res.Owc = append(res.Owc, owc)
		if idx > 0 {
			px, py, pz := wp.X(idx-1), wp.Y(idx-1), wp.Z(idx-1)
			res.Length = append(res.Length, planarDistance(x, y, px, py))
			if hasMD && inSnap {
				mdCol[idx] = mdCol[idx-1] + distance3(x, y, newTVD, px, py, pz)
			}
		} else {
			res.Length = append(res.Length, 0)
		}
	}

	for _, kw := range keywords {
		var data []float64
		switch kw {
		case KwLength:
			data = res.Length
		case KwTVDDiff:
			data = res.Diff
		case KwOldTVD:
			data = res.OldTVD
		case KwOWC:
			data = res.Owc
		case KwPermX:
			data = permxLog
		case KwSwat:
			data = swatLog
		case KwSgas:
			data = sgasLog
		case KwSoil:
			data = soilLog
		default:
			slog.Warn("unrecognized log keyword, ignoring", "keyword", string(kw))
			continue
		}
		if err := wp.AddColumn(string(kw), data); err != nil {
			return Result{}, fmt.Errorf("well %s: %w", wp.WellName, err)
		}
	}
	return res, nil
}
