package report

import (
	"github.com/pthm-cable/snapwell/snap"
	"github.com/pthm-cable/snapwell/wellpath"
)

// PointRow is one snapped wellpath point in the per-point CSV log.
type PointRow struct {
	Well   string  `csv:"well"`
	Index  int     `csv:"point"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	OldTVD float64 `csv:"old_tvd"`
	NewTVD float64 `csv:"new_tvd"`
	Diff   float64 `csv:"tvd_diff"`
	Owc    float64 `csv:"owc"`
	Length float64 `csv:"length"`
}

// PointRows expands a snap result into per-point CSV rows for one well.
func PointRows(well string, wp *wellpath.Path, res snap.Result) []PointRow {
	rows := make([]PointRow, 0, res.Points)
	for i := 0; i < res.Points; i++ {
		rows = append(rows, PointRow{
			Well:   well,
			Index:  i,
			X:      wp.X(i),
			Y:      wp.Y(i),
			OldTVD: res.OldTVD[i],
			NewTVD: res.NewTVD[i],
			Diff:   res.Diff[i],
			Owc:    res.Owc[i],
			Length: res.Length[i],
		})
	}
	return rows
}
