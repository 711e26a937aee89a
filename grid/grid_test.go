package grid

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestRectangularCenters(t *testing.T) {
	g := Rectangular(10, 10, 10, 1.0, 1.0, 1.0)

	if g.NumActive() != 1000 {
		t.Fatalf("NumActive() = %d, want 1000", g.NumActive())
	}
	if g.NumLayers() != 10 {
		t.Fatalf("NumLayers() = %d, want 10", g.NumLayers())
	}

	// Cell (2,3,4) center is (2.5, 3.5, 4.5).
	a := g.ActiveIndex(2, 3, 4)
	if a < 0 {
		t.Fatal("cell (2,3,4) should be active")
	}
	x, y, z := g.CellCenter(a)
	if math.Abs(x-2.5) > 1e-12 || math.Abs(y-3.5) > 1e-12 || math.Abs(z-4.5) > 1e-12 {
		t.Errorf("CellCenter = (%v, %v, %v), want (2.5, 3.5, 4.5)", x, y, z)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		ni   int
		xs   []float64
	}{
		{"zero dimension", 0, []float64{0}},
		{"wrong line count", 2, []float64{0, 1}},
		{"non ascending", 2, []float64{0, 2, 1}},
	}

	ys := []float64{0, 1}
	zs := []float64{0, 1}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.ni, 1, 1, tt.xs, ys, zs, nil); err == nil {
				t.Error("New() should fail")
			}
		})
	}
}

func TestActiveIndexSentinels(t *testing.T) {
	active := make([]bool, 8)
	for i := range active {
		active[i] = true
	}
	active[0] = false // cell (0,0,0)
	g, err := New(2, 2, 2, []float64{0, 1, 2}, []float64{0, 1, 2}, []float64{0, 1, 2}, active)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := []struct {
		name    string
		i, j, k int
		want    int
	}{
		{"negative i", -1, 0, 0, -1},
		{"negative k", 0, 0, -1, -1},
		{"out of bounds i", 2, 0, 0, -1},
		{"out of bounds k", 0, 0, 2, -1},
		{"inactive", 0, 0, 0, -1},
		{"first active", 1, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.ActiveIndex(tt.i, tt.j, tt.k); got != tt.want {
				t.Errorf("ActiveIndex(%d,%d,%d) = %d, want %d", tt.i, tt.j, tt.k, got, tt.want)
			}
		})
	}

	if g.NumActive() != 7 {
		t.Errorf("NumActive() = %d, want 7", g.NumActive())
	}
}

func TestLocate(t *testing.T) {
	g := Rectangular(10, 10, 10, 1.0, 1.0, 1.0)
	acc := NewAccessor(g)

	tests := []struct {
		name    string
		x, y, z float64
		i, j, k int
	}{
		{"interior", 5.5, 5.5, 5.5, 5, 5, 5},
		{"same cell via hint", 5.9, 5.1, 5.9, 5, 5, 5},
		{"other cell", 0.5, 0.5, 0.5, 0, 0, 0},
		{"upper boundary", 10.0, 10.0, 10.0, 9, 9, 9},
		{"z below grid, footprint kept", 3.5, 4.5, 25.0, 3, 4, 0},
		{"z above grid, footprint kept", 3.5, 4.5, -2.0, 3, 4, 0},
		{"outside in x", -1.0, 4.5, 5.0, -1, -1, 0},
		{"outside in y", 4.5, 11.0, 5.0, -1, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, j, k := acc.Locate(tt.x, tt.y, tt.z)
			if i != tt.i || j != tt.j || k != tt.k {
				t.Errorf("Locate(%v,%v,%v) = (%d,%d,%d), want (%d,%d,%d)",
					tt.x, tt.y, tt.z, i, j, k, tt.i, tt.j, tt.k)
			}
		})
	}
}

func TestLocateHintNotSharedAcrossAccessors(t *testing.T) {
	g := Rectangular(4, 4, 4, 1.0, 1.0, 1.0)

	a1 := NewAccessor(g)
	a1.Locate(3.5, 3.5, 3.5)

	// A fresh accessor must resolve from scratch and still be correct.
	a2 := NewAccessor(g)
	i, j, k := a2.Locate(0.5, 0.5, 0.5)
	if i != 0 || j != 0 || k != 0 {
		t.Errorf("Locate = (%d,%d,%d), want (0,0,0)", i, j, k)
	}
}

func TestCaseSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	active := make([]bool, 2*3*4)
	for i := range active {
		active[i] = true
	}
	active[5] = false
	active[17] = false
	g, err := New(2, 3, 4,
		[]float64{0, 100, 200},
		[]float64{0, 100, 200, 300},
		[]float64{1500, 1510, 1520, 1530, 1540},
		active)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	path := filepath.Join(tmpDir, "grid.json")
	if err := Save(g, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.NumActive() != g.NumActive() {
		t.Errorf("NumActive mismatch: got %d, want %d", loaded.NumActive(), g.NumActive())
	}
	ni, nj, nk := loaded.Dims()
	if ni != 2 || nj != 3 || nk != 4 {
		t.Errorf("Dims = (%d,%d,%d), want (2,3,4)", ni, nj, nk)
	}
	for c := 0; c < 2*3*4; c++ {
		i := c % 2
		j := (c / 2) % 3
		k := c / 6
		if got, want := loaded.ActiveIndex(i, j, k), g.ActiveIndex(i, j, k); got != want {
			t.Errorf("ActiveIndex(%d,%d,%d) = %d, want %d", i, j, k, got, want)
		}
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "grid.json")
	g := Rectangular(2, 2, 2, 1, 1, 1)
	if err := Save(g, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Rewrite with a bumped version field.
	data := []byte(`{"version": 99, "ni": 1, "nj": 1, "nk": 1, "x_coords": [0,1], "y_coords": [0,1], "z_coords": [0,1]}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should reject unknown version")
	}
}
