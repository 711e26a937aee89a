package grid

// Accessor resolves points against a Grid and remembers the last resolved
// cell to speed up runs of nearby lookups. The hint is mutable single-writer
// state: create one Accessor per trajectory run and do not share it across
// concurrent runs.
type Accessor struct {
	g *Grid

	hintI, hintJ, hintK int
	hasHint             bool
}

// NewAccessor wraps g with a fresh locality hint.
func NewAccessor(g *Grid) *Accessor {
	return &Accessor{g: g}
}

// Grid returns the underlying grid.
func (a *Accessor) Grid() *Grid {
	return a.g
}

// Locate resolves the cell containing (x,y,z). When no cell contains the
// exact point but the (x,y) footprint is inside the grid, it falls back to
// (i,j,0): the horizontal footprint is authoritative even when z has been
// moved outside the geometry. When the footprint itself is outside the
// grid, i and j are -1.
func (a *Accessor) Locate(x, y, z float64) (i, j, k int) {
	if a.hasHint && a.g.contains(a.hintI, a.hintJ, a.hintK, x, y, z) {
		return a.hintI, a.hintJ, a.hintK
	}

	i = interval(a.g.xs, x)
	j = interval(a.g.ys, y)
	if i < 0 || j < 0 {
		return -1, -1, 0
	}
	k = interval(a.g.zs, z)
	if k < 0 {
		k = 0
	}
	a.hintI, a.hintJ, a.hintK = i, j, k
	a.hasHint = true
	return i, j, k
}

// ActiveIndex returns the active index of (i,j,k), or -1 (see
// Grid.ActiveIndex).
func (a *Accessor) ActiveIndex(i, j, k int) int {
	return a.g.ActiveIndex(i, j, k)
}

// CellCenterZ returns the center depth of active cell idx.
func (a *Accessor) CellCenterZ(idx int) float64 {
	return a.g.CellCenterZ(idx)
}

// NumLayers returns the number of k-layers in the grid.
func (a *Accessor) NumLayers() int {
	return a.g.NumLayers()
}
