package snap

import (
	"math"
	"testing"

	"github.com/pthm-cable/snapwell/grid"
)

// layeredSwat fills a water saturation vector where layer k of nk
// carries the value k/nk, so saturation grows with depth.
func layeredSwat(g *grid.Grid) []float64 {
	ni, nj, nk := g.Dims()
	vals := make([]float64, g.NumActive())
	for a := range vals {
		k := a / (ni * nj)
		vals[a] = float64(k) / float64(nk)
	}
	return vals
}

var contactDataset = []float64{0.1, 0.271828, 0.333, 0.4, 0.55, 0.65, 0.7, 0.73, 0.86, 0.9}

func TestFindContact(t *testing.T) {
	g := grid.Rectangular(10, 10, 10, 1, 1, 1)
	swat := layeredSwat(g)

	// Cell centers sit at half meters, so the contact for threshold t
	// lands at 10t + 0.5.
	for _, thresh := range contactDataset {
		acc := grid.NewAccessor(g)
		owc, _ := FindContact(acc, swat, 5, 5, 1, thresh, 0.5)
		want := 10*thresh + 0.5
		if math.Abs(owc-want) > 1e-4 {
			t.Errorf("FindContact threshold %v: owc = %v, want %v", thresh, owc, want)
		}
	}
}

func TestFindContactTallCells(t *testing.T) {
	g := grid.Rectangular(10, 10, 10, 1, 1, 2)
	swat := layeredSwat(g)

	for _, thresh := range contactDataset {
		acc := grid.NewAccessor(g)
		owc, _ := FindContact(acc, swat, 5, 5, 1, thresh, 0.5)
		want := 20*thresh + 1
		if math.Abs(owc-want) > 1e-4 {
			t.Errorf("FindContact threshold %v: owc = %v, want %v", thresh, owc, want)
		}
	}
}

func TestFindContactSmallGrid(t *testing.T) {
	g := grid.Rectangular(3, 3, 3, 1, 1, 1)
	swat := layeredSwat(g)
	acc := grid.NewAccessor(g)

	// SWAT is 0, 1/3, 2/3 by layer; threshold 0.5 falls halfway between
	// the centers of layers 1 and 2.
	owc, _ := FindContact(acc, swat, 1.5, 1.5, 1, 0.5, 0)
	if math.Abs(owc-2.0) > 1e-4 {
		t.Errorf("owc = %v, want 2.0 between the bracketing centers", owc)
	}
}

func TestFindContactSnapDepth(t *testing.T) {
	g := grid.Rectangular(10, 10, 10, 1, 1, 1)
	swat := layeredSwat(g)
	acc := grid.NewAccessor(g)

	// Contact at 7.5, half a meter standoff targets 7.0, and the first
	// cell center at or above that is 6.5.
	owc, depth := FindContact(acc, swat, 5, 5, 1, 0.7, 0.5)
	if math.Abs(owc-7.5) > 1e-4 {
		t.Errorf("owc = %v, want 7.5", owc)
	}
	if math.Abs(depth-6.5) > 1e-4 {
		t.Errorf("depth = %v, want 6.5", depth)
	}
}

func TestFindContactOutsideGrid(t *testing.T) {
	g := grid.Rectangular(10, 10, 10, 1, 1, 1)
	swat := layeredSwat(g)
	acc := grid.NewAccessor(g)

	owc, depth := FindContact(acc, swat, -5, 5, 1, 0.7, 0.5)
	if !math.IsNaN(owc) {
		t.Errorf("owc = %v, want NaN outside grid", owc)
	}
	if depth != 1 {
		t.Errorf("depth = %v, want original 1", depth)
	}
}

func TestFindContactNoCrossing(t *testing.T) {
	g := grid.Rectangular(10, 10, 10, 1, 1, 1)
	swat := layeredSwat(g)
	acc := grid.NewAccessor(g)

	owc, depth := FindContact(acc, swat, 5, 5, 1, -0.5, 0.5)
	if !math.IsNaN(owc) {
		t.Errorf("owc = %v, want NaN when column never crosses", owc)
	}
	if depth != 1 {
		t.Errorf("depth = %v, want original 1", depth)
	}
}

func TestFindContactWalkOffTop(t *testing.T) {
	g := grid.Rectangular(10, 10, 10, 1, 1, 1)
	swat := layeredSwat(g)
	acc := grid.NewAccessor(g)

	// Threshold 0.05 interpolates the contact to 1.0; a full meter of
	// standoff targets 0.0, above every cell center, so the depth falls
	// back to the shallowest active center.
	owc, depth := FindContact(acc, swat, 5, 5, 1, 0.05, 1.0)
	if math.Abs(owc-1.0) > 1e-4 {
		t.Errorf("owc = %v, want 1.0", owc)
	}
	if math.Abs(depth-0.5) > 1e-4 {
		t.Errorf("depth = %v, want shallowest center 0.5", depth)
	}
}

func TestFindContactSkipsInactive(t *testing.T) {
	active := make([]bool, 10*10*10)
	for i := range active {
		active[i] = true
	}
	// Deactivate the whole (5,5) column below k=2.
	for k := 2; k < 10; k++ {
		active[(k*10+5)*10+5] = false
	}
	lines := func(n int) []float64 {
		cs := make([]float64, n+1)
		for i := range cs {
			cs[i] = float64(i)
		}
		return cs
	}
	g, err := grid.New(10, 10, 10, lines(10), lines(10), lines(10), active)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Active indices no longer match flat indices, so fill values per
	// active cell: k/10 by layer.
	vals := make([]float64, g.NumActive())
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			for k := 0; k < 10; k++ {
				if a := g.ActiveIndex(i, j, k); a >= 0 {
					vals[a] = float64(k) / 10.0
				}
			}
		}
	}

	acc := grid.NewAccessor(g)
	// Only k=0 and k=1 are active in this column; both values are below
	// a 0.7 threshold, so the crossing sits at the bottom of what is
	// left and the contact is that cell's center.
	owc, _ := FindContact(acc, vals, 5, 5, 1, 0.7, 0.5)
	if math.Abs(owc-1.5) > 1e-4 {
		t.Errorf("owc = %v, want 1.5 from deepest remaining cell", owc)
	}
}
