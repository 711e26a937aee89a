package snap

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/snapwell/grid"
)

// thresholdTol widens the crossing test so cell values sitting exactly
// on the threshold count as having crossed it.
const thresholdTol = 0.0001

// crossingIndex returns the index of the first cell, scanning from the
// bottom of the column, whose value is below the threshold. Returns -1
// when the whole column stays above it.
func crossingIndex(col []Cell, threshold float64) int {
	for idx, c := range col {
		if c.Value < threshold+thresholdTol {
			return idx
		}
	}
	return -1
}

// interpolateContact places the contact between the centers of the
// crossing cell and the cell below it, linearly in the field value. A
// crossing at the very bottom of the column yields that cell's center.
func interpolateContact(acc *grid.Accessor, col []Cell, crossing int, threshold float64) float64 {
	above := col[crossing]
	if crossing == 0 {
		return acc.CellCenterZ(above.Active)
	}
	below := col[crossing-1]

	ratio := 1 - (below.Value-threshold)/(below.Value-above.Value)
	zAbove := acc.CellCenterZ(above.Active)
	zBelow := acc.CellCenterZ(below.Active)
	return zAbove + math.Abs(zAbove-zBelow)*ratio
}

// centerAbove walks the column from the bottom and returns the center
// depth of the first cell at or above the given depth.
func centerAbove(acc *grid.Accessor, col []Cell, depth float64) (float64, bool) {
	for _, c := range col {
		cz := acc.CellCenterZ(c.Active)
		if depth >= cz {
			return cz, true
		}
	}
	return 0, false
}

// FindContact locates the fluid contact in the cell column at (x, y):
// the depth where the contact field crosses the threshold, interpolated
// between cell centers. It returns the contact depth and the center of
// the first cell at or above contact - offset, which is where the path
// point belongs.
//
// When the column is empty or never crosses the threshold, the contact
// is NaN and the depth is returned unchanged.
func FindContact(acc *grid.Accessor, vals []float64, x, y, z, threshold, offset float64) (contact, depth float64) {
	col := activeCellColumn(acc, vals, x, y, z)
	if len(col) == 0 {
		slog.Warn("no active cell at wellpoint, contact is NaN", "x", x, "y", y, "z", z)
		return math.NaN(), z
	}
	crossing := crossingIndex(col, threshold)
	if crossing < 0 {
		slog.Warn("no cell in column below contact threshold, contact is NaN",
			"x", x, "y", y, "z", z)
		return math.NaN(), z
	}
	contact = interpolateContact(acc, col, crossing, threshold)

	center, ok := centerAbove(acc, col, contact-offset)
	if !ok {
		slog.Warn("target depth above all active cells, using shallowest active cell",
			"x", x, "y", y, "z", z)
		return contact, acc.CellCenterZ(col[len(col)-1].Active)
	}
	return contact, center
}
