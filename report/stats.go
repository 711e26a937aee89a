// Package report aggregates and persists the outcome of snapwell runs:
// per-well summary statistics and per-point CSV logs.
package report

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/snapwell/snap"
)

// WellReport holds aggregated statistics for one snapped well.
type WellReport struct {
	Well    string  `csv:"well"`
	File    string  `csv:"file"`
	Date    string  `csv:"date"`
	Points  int     `csv:"points"`
	Snapped int     `csv:"snapped"`
	Seconds float64 `csv:"seconds"`

	// Vertical shift distribution, absolute meters
	MeanShift   float64 `csv:"mean_shift"`
	MedianShift float64 `csv:"median_shift"`
	P90Shift    float64 `csv:"p90_shift"`
	MaxShift    float64 `csv:"max_shift"`

	// Planar length of the path and mean contact depth where defined
	TotalLength float64 `csv:"total_length"`
	OwcMean     float64 `csv:"owc_mean"`
}

// FromResult aggregates a snap result into a well report.
func FromResult(well, file string, date time.Time, res snap.Result) WellReport {
	r := WellReport{
		Well:    well,
		File:    file,
		Date:    date.Format("2006-01-02"),
		Points:  res.Points,
		Snapped: res.Snapped,
	}
	if len(res.Diff) > 0 {
		shifts := make([]float64, len(res.Diff))
		for i, d := range res.Diff {
			shifts[i] = math.Abs(d)
		}
		sort.Float64s(shifts)
		r.MeanShift = stat.Mean(shifts, nil)
		r.MedianShift = stat.Quantile(0.5, stat.Empirical, shifts, nil)
		r.P90Shift = stat.Quantile(0.9, stat.Empirical, shifts, nil)
		r.MaxShift = floats.Max(shifts)
	}
	for _, l := range res.Length {
		r.TotalLength += l
	}

	var owcSum float64
	var owcN int
	for _, v := range res.Owc {
		if !math.IsNaN(v) {
			owcSum += v
			owcN++
		}
	}
	if owcN > 0 {
		r.OwcMean = owcSum / float64(owcN)
	} else {
		r.OwcMean = math.NaN()
	}
	return r
}

// LogValue implements slog.LogValuer for structured logging.
func (r WellReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("well", r.Well),
		slog.String("date", r.Date),
		slog.Int("points", r.Points),
		slog.Int("snapped", r.Snapped),
		slog.Float64("seconds", r.Seconds),
		slog.Float64("mean_shift", r.MeanShift),
		slog.Float64("median_shift", r.MedianShift),
		slog.Float64("p90_shift", r.P90Shift),
		slog.Float64("max_shift", r.MaxShift),
		slog.Float64("total_length", r.TotalLength),
		slog.Float64("owc_mean", r.OwcMean),
	)
}
