package snap

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// maxAdjustment is the largest vertical move, in meters, accepted for a
// single wellpoint. Anything bigger is treated as an outlier and
// dropped.
const maxAdjustment = 100.0

// RoundAwayFromEven nudges a depth so it lands at least 0.1 m away from
// any even integer. Simulators with cell floors at even depths reject
// well segments sitting exactly on a cell boundary.
func RoundAwayFromEven(v float64) float64 {
	const epsilon = 0.1
	r := math.Mod(v, 2.0)
	if r < 0 {
		r += 2.0
	}
	if r < epsilon {
		return math.Round(v) + epsilon
	}
	if r > 2.0-epsilon {
		return math.Round(v) - epsilon
	}
	return v
}

// planarDistance is the map-view distance between two wellpoints.
func planarDistance(x1, y1, x2, y2 float64) float64 {
	return floats.Distance([]float64{x1, y1}, []float64{x2, y2}, 2)
}

// distance3 is the full 3D distance between two wellpoints.
func distance3(x1, y1, z1, x2, y2, z2 float64) float64 {
	return floats.Distance([]float64{x1, y1, z1}, []float64{x2, y2, z2}, 2)
}
