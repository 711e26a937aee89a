package field

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := NewArchive([]Step{
		{Date: date("1997-01-01"), Fields: map[string][]float64{"SWAT": {0.1, 0.2}}},
		{Date: date("1997-06-15"), Fields: map[string][]float64{"SWAT": {0.3, 0.4}}},
		{Date: date("1998-01-01"), Fields: map[string][]float64{"SWAT": {0.5, 0.6}}},
		{Date: date("2000-03-01"), Fields: map[string][]float64{"SWAT": {0.7, 0.8}}},
	})
	if err != nil {
		t.Fatalf("NewArchive: %v", err)
	}
	return a
}

func TestStepForDate(t *testing.T) {
	a := testArchive(t)

	tests := []struct {
		name string
		date string
		want int
	}{
		{"exact first", "1997-01-01", 0},
		{"exact middle", "1997-06-15", 1},
		{"between steps", "1997-09-01", 1},
		{"day before step", "1997-12-31", 1},
		{"exact last", "2000-03-01", 3},
		{"after last", "2015-01-01", 3},
		{"before first", "1990-01-01", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.StepForDate(date(tc.date)); got != tc.want {
				t.Errorf("StepForDate(%s) = %d, want %d", tc.date, got, tc.want)
			}
		})
	}
}

func TestNewArchiveValidation(t *testing.T) {
	if _, err := NewArchive(nil); err == nil {
		t.Error("expected error for empty archive")
	}

	_, err := NewArchive([]Step{
		{Date: date("1998-01-01")},
		{Date: date("1997-01-01")},
	})
	if err == nil {
		t.Error("expected error for unordered steps")
	}
}

func TestValueAtStep(t *testing.T) {
	a := testArchive(t)

	vals, err := a.ValueAtStep("SWAT", 2)
	if err != nil {
		t.Fatalf("ValueAtStep: %v", err)
	}
	if vals[0] != 0.5 || vals[1] != 0.6 {
		t.Errorf("step 2 SWAT = %v, want [0.5 0.6]", vals)
	}

	if _, err := a.ValueAtStep("SWAT", -1); err == nil {
		t.Error("expected error for negative step")
	}
	if _, err := a.ValueAtStep("SWAT", 4); err == nil {
		t.Error("expected error for step past end")
	}

	_, err = a.ValueAtStep("SGAS", 0)
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("missing field error = %v, want ErrUnknownField", err)
	}
}

func TestValueAtDate(t *testing.T) {
	a := testArchive(t)

	vals, err := a.ValueAtDate("SWAT", date("1999-07-01"))
	if err != nil {
		t.Fatalf("ValueAtDate: %v", err)
	}
	if vals[0] != 0.5 {
		t.Errorf("SWAT at 1999-07-01 = %v, want step 2 values", vals)
	}
}

func TestValidate(t *testing.T) {
	a := testArchive(t)
	if err := a.Validate(2); err != nil {
		t.Errorf("Validate(2) = %v, want nil", err)
	}
	if err := a.Validate(3); err == nil {
		t.Error("expected error for mismatched cell count")
	}

	s := NewStatic(map[string][]float64{"PERMX": {100, 250}})
	if err := s.Validate(2); err != nil {
		t.Errorf("static Validate(2) = %v, want nil", err)
	}
	if err := s.Validate(5); err == nil {
		t.Error("expected error for mismatched static cell count")
	}
}

func TestStaticValue(t *testing.T) {
	s := NewStatic(map[string][]float64{"PERMX": {100, 250}})

	vals, err := s.Value("PERMX")
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if vals[1] != 250 {
		t.Errorf("PERMX[1] = %v, want 250", vals[1])
	}

	_, err = s.Value("PORO")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("missing field error = %v, want ErrUnknownField", err)
	}
}

func TestArchiveSaveLoad(t *testing.T) {
	a := testArchive(t)
	path := filepath.Join(t.TempDir(), "restart.json")

	if err := SaveArchive(a, path); err != nil {
		t.Fatalf("SaveArchive: %v", err)
	}
	loaded, err := LoadArchive(path)
	if err != nil {
		t.Fatalf("LoadArchive: %v", err)
	}

	if loaded.NumSteps() != a.NumSteps() {
		t.Fatalf("loaded %d steps, want %d", loaded.NumSteps(), a.NumSteps())
	}
	for k := 0; k < a.NumSteps(); k++ {
		if !loaded.StepDate(k).Equal(a.StepDate(k)) {
			t.Errorf("step %d date = %s, want %s", k, loaded.StepDate(k), a.StepDate(k))
		}
	}
	vals, err := loaded.ValueAtStep("SWAT", 3)
	if err != nil {
		t.Fatalf("ValueAtStep after load: %v", err)
	}
	if vals[0] != 0.7 {
		t.Errorf("loaded SWAT[0] at step 3 = %v, want 0.7", vals[0])
	}
}

func TestStaticSaveLoad(t *testing.T) {
	s := NewStatic(map[string][]float64{"PERMX": {1, 2, 3}})
	path := filepath.Join(t.TempDir(), "init.json")

	if err := SaveStatic(s, path); err != nil {
		t.Fatalf("SaveStatic: %v", err)
	}
	loaded, err := LoadStatic(path)
	if err != nil {
		t.Fatalf("LoadStatic: %v", err)
	}
	vals, err := loaded.Value("PERMX")
	if err != nil {
		t.Fatalf("Value after load: %v", err)
	}
	if len(vals) != 3 || vals[2] != 3 {
		t.Errorf("loaded PERMX = %v, want [1 2 3]", vals)
	}
}

func TestLoadArchiveRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restart.json")
	data := []byte(`{"version": 99, "steps": []}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadArchive(path); err == nil {
		t.Error("expected error for unknown version")
	}
}
