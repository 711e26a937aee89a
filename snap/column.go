package snap

import "github.com/pthm-cable/snapwell/grid"

// Cell is one active cell in a vertical column, carrying its active
// index and the value of the contact field there.
type Cell struct {
	I, J, K int
	Active  int
	Value   float64
}

// activeCellColumn collects the active cells in the (i,j)-column of the
// cell containing (x, y, z), ordered deepest first. The column is empty
// when (x, y) falls outside the grid or the column has no active cells.
func activeCellColumn(acc *grid.Accessor, vals []float64, x, y, z float64) []Cell {
	i, j, _ := acc.Locate(x, y, z)
	var col []Cell
	for k := acc.NumLayers() - 1; k >= 0; k-- {
		a := acc.ActiveIndex(i, j, k)
		if a >= 0 {
			col = append(col, Cell{I: i, J: j, K: k, Active: a, Value: vals[a]})
		}
	}
	return col
}
