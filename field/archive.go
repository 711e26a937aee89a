// Package field provides scalar simulation results indexed by active cell:
// a time-stepped archive for restart quantities (SWAT, SGAS, ...) and a
// static single-step archive for init quantities (PERMX, ...).
package field

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrUnknownField marks a lookup of a field name the archive does not hold.
var ErrUnknownField = errors.New("unknown field")

// Step is one report step: a date and the named vectors recorded at it.
// Vectors are indexed by active cell index.
type Step struct {
	Date   time.Time
	Fields map[string][]float64
}

// Archive is an ordered sequence of report steps.
type Archive struct {
	steps []Step
}

// NewArchive builds an archive from steps, which must be non-empty and
// ordered by ascending date.
func NewArchive(steps []Step) (*Archive, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("archive needs at least one report step")
	}
	for i := 1; i < len(steps); i++ {
		if !steps[i].Date.After(steps[i-1].Date) {
			return nil, fmt.Errorf("report step %d date %s does not follow step %d",
				i, steps[i].Date.Format("2006-01-02"), i-1)
		}
	}
	return &Archive{steps: steps}, nil
}

// NumSteps returns the number of report steps.
func (a *Archive) NumSteps() int {
	return len(a.steps)
}

// StepDate returns the date of report step k.
func (a *Archive) StepDate(k int) time.Time {
	return a.steps[k].Date
}

// StepForDate resolves the last report step whose date is at or before t.
// A date preceding the whole archive resolves to the first step with a
// warning, so that historical configs keep running.
func (a *Archive) StepForDate(t time.Time) int {
	if t.Before(a.steps[0].Date) {
		slog.Warn("date precedes first report step, using first step",
			"date", t.Format("2006-01-02"),
			"first_step", a.steps[0].Date.Format("2006-01-02"))
		return 0
	}
	for step := 1; step < len(a.steps); step++ {
		if a.steps[step].Date.After(t) {
			return step - 1
		}
	}
	return len(a.steps) - 1
}

// ValueAtStep returns the named vector at report step k.
func (a *Archive) ValueAtStep(name string, k int) ([]float64, error) {
	if k < 0 || k >= len(a.steps) {
		return nil, fmt.Errorf("restart step out of range 0 <= %d < %d", k, len(a.steps))
	}
	vals, ok := a.steps[k].Fields[name]
	if !ok {
		return nil, fmt.Errorf("field %q at step %d: %w", name, k, ErrUnknownField)
	}
	return vals, nil
}

// ValueAtDate returns the named vector at the step resolved for t.
func (a *Archive) ValueAtDate(name string, t time.Time) ([]float64, error) {
	return a.ValueAtStep(name, a.StepForDate(t))
}

// Validate checks that every vector in every step has one value per
// active cell.
func (a *Archive) Validate(numActive int) error {
	for k, step := range a.steps {
		for name, vals := range step.Fields {
			if len(vals) != numActive {
				return fmt.Errorf("field %q at step %d has %d values, grid has %d active cells",
					name, k, len(vals), numActive)
			}
		}
	}
	return nil
}

// Static holds time-independent properties, e.g. permeability.
type Static struct {
	fields map[string][]float64
}

// NewStatic builds a static archive from named vectors.
func NewStatic(fields map[string][]float64) *Static {
	return &Static{fields: fields}
}

// Value returns the named static vector.
func (s *Static) Value(name string) ([]float64, error) {
	vals, ok := s.fields[name]
	if !ok {
		return nil, fmt.Errorf("static field %q: %w", name, ErrUnknownField)
	}
	return vals, nil
}

// Validate checks that every static vector has one value per active cell.
func (s *Static) Validate(numActive int) error {
	for name, vals := range s.fields {
		if len(vals) != numActive {
			return fmt.Errorf("static field %q has %d values, grid has %d active cells",
				name, len(vals), numActive)
		}
	}
	return nil
}

// Names returns the field names held by the static archive.
func (s *Static) Names() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	return names
}
