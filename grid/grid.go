// Package grid provides the structured reservoir grid: cell geometry,
// activity flags, and point-to-cell resolution with a locality hint.
package grid

import (
	"fmt"
	"sort"
)

// Grid is an immutable rectilinear 3-D grid. Cells are indexed (i,j,k) with
// k = 0 the top (shallowest) layer and k = nk-1 the bottom; z increases
// downward. Cell (i,j,k) spans the box between coordinate lines
// [xs[i], xs[i+1]] x [ys[j], ys[j+1]] x [zs[k], zs[k+1]]. Active cells carry
// a dense zero-based active index in flat scan order (i fastest, then j,
// then k).
type Grid struct {
	ni, nj, nk int

	xs []float64 // len ni+1, strictly ascending
	ys []float64 // len nj+1
	zs []float64 // len nk+1, ascending depth

	activeIndex []int32 // flat cell -> active index, -1 for inactive
	activeCells []int32 // active index -> flat cell
}

// New builds a grid from coordinate lines and per-cell activity flags.
// active is in flat scan order and may be nil, meaning all cells active.
func New(ni, nj, nk int, xs, ys, zs []float64, active []bool) (*Grid, error) {
	if ni < 1 || nj < 1 || nk < 1 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%dx%d", ni, nj, nk)
	}
	if len(xs) != ni+1 || len(ys) != nj+1 || len(zs) != nk+1 {
		return nil, fmt.Errorf("coordinate lines must have %d, %d, %d entries, got %d, %d, %d",
			ni+1, nj+1, nk+1, len(xs), len(ys), len(zs))
	}
	for name, cs := range map[string][]float64{"x": xs, "y": ys, "z": zs} {
		for i := 1; i < len(cs); i++ {
			if cs[i] <= cs[i-1] {
				return nil, fmt.Errorf("%s coordinates must be strictly ascending at index %d", name, i)
			}
		}
	}
	n := ni * nj * nk
	if active != nil && len(active) != n {
		return nil, fmt.Errorf("activity flags must have %d entries, got %d", n, len(active))
	}

	g := &Grid{ni: ni, nj: nj, nk: nk, xs: xs, ys: ys, zs: zs}
	g.activeIndex = make([]int32, n)
	for c := 0; c < n; c++ {
		if active == nil || active[c] {
			g.activeIndex[c] = int32(len(g.activeCells))
			g.activeCells = append(g.activeCells, int32(c))
		} else {
			g.activeIndex[c] = -1
		}
	}
	return g, nil
}

// Rectangular builds a fully active uniform grid with the given cell size
// and its origin at (0,0,0).
func Rectangular(ni, nj, nk int, dx, dy, dz float64) *Grid {
	lines := func(n int, d float64) []float64 {
		cs := make([]float64, n+1)
		for i := range cs {
			cs[i] = float64(i) * d
		}
		return cs
	}
	g, err := New(ni, nj, nk, lines(ni, dx), lines(nj, dy), lines(nk, dz), nil)
	if err != nil {
		panic(fmt.Sprintf("grid: rectangular: %v", err))
	}
	return g
}

// Dims returns the lattice dimensions (ni, nj, nk).
func (g *Grid) Dims() (ni, nj, nk int) {
	return g.ni, g.nj, g.nk
}

// NumLayers returns the number of k-layers.
func (g *Grid) NumLayers() int {
	return g.nk
}

// NumActive returns the number of active cells.
func (g *Grid) NumActive() int {
	return len(g.activeCells)
}

// flat returns the scan-order index of cell (i,j,k). Callers guarantee the
// indices are in range.
func (g *Grid) flat(i, j, k int) int {
	return (k*g.nj+j)*g.ni + i
}

// ActiveIndex returns the dense active index of cell (i,j,k), or -1 when
// the cell is inactive or any index is out of bounds. Negative indices
// never touch the grid.
func (g *Grid) ActiveIndex(i, j, k int) int {
	if i < 0 || j < 0 || k < 0 {
		return -1
	}
	if i >= g.ni || j >= g.nj || k >= g.nk {
		return -1
	}
	return int(g.activeIndex[g.flat(i, j, k)])
}

// CellCenter returns the center coordinate of the active cell a. The index
// must come from ActiveIndex or a column built on this grid.
func (g *Grid) CellCenter(a int) (x, y, z float64) {
	c := int(g.activeCells[a])
	i := c % g.ni
	j := (c / g.ni) % g.nj
	k := c / (g.ni * g.nj)
	return (g.xs[i] + g.xs[i+1]) / 2, (g.ys[j] + g.ys[j+1]) / 2, (g.zs[k] + g.zs[k+1]) / 2
}

// CellCenterZ returns the center depth of the active cell a.
func (g *Grid) CellCenterZ(a int) float64 {
	_, _, z := g.CellCenter(a)
	return z
}

// Extent returns the coordinate bounds of the grid.
func (g *Grid) Extent() (minX, maxX, minY, maxY, minZ, maxZ float64) {
	return g.xs[0], g.xs[g.ni], g.ys[0], g.ys[g.nj], g.zs[0], g.zs[g.nk]
}

// interval returns the cell index whose span contains v, or -1 when v lies
// outside the coordinate lines. A value exactly on the upper boundary
// belongs to the last cell.
func interval(cs []float64, v float64) int {
	n := len(cs) - 1
	if v < cs[0] || v > cs[n] {
		return -1
	}
	idx := sort.Search(n+1, func(i int) bool { return cs[i] > v }) - 1
	if idx == n {
		idx = n - 1
	}
	return idx
}

// contains reports whether cell (i,j,k) contains the point.
func (g *Grid) contains(i, j, k int, x, y, z float64) bool {
	if i < 0 || j < 0 || k < 0 || i >= g.ni || j >= g.nj || k >= g.nk {
		return false
	}
	return g.xs[i] <= x && x <= g.xs[i+1] &&
		g.ys[j] <= y && y <= g.ys[j+1] &&
		g.zs[k] <= z && z <= g.zs[k+1]
}
