// Snapgen writes a small synthetic snapwell case: a layered grid, a
// restart archive in which the water table rises year by year, an init
// archive with permeability, one horizontal well, and a config that
// ties them together.
//
// Usage: snapgen -output demo
//        snapwell demo/snap.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pthm-cable/snapwell/config"
	"github.com/pthm-cable/snapwell/field"
	"github.com/pthm-cable/snapwell/grid"
	"github.com/pthm-cable/snapwell/wellpath"
)

const (
	cellDX = 50.0
	cellDY = 50.0
	cellDZ = 2.0

	// depth of the initial water table and how far it rises per step
	baseContact = 60.0
	risePerStep = 4.0

	firstYear = 2020
)

func main() {
	output := flag.String("output", "snapwell-demo", "Output directory for the generated case")
	nx := flag.Int("nx", 24, "Grid cells in the x direction")
	ny := flag.Int("ny", 24, "Grid cells in the y direction")
	nz := flag.Int("nz", 40, "Grid layers")
	steps := flag.Int("steps", 5, "Number of yearly report steps")
	seed := flag.Int64("seed", 42, "RNG seed for the permeability field")
	flag.Parse()

	if err := os.MkdirAll(*output, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	g := grid.Rectangular(*nx, *ny, *nz, cellDX, cellDY, cellDZ)
	if err := grid.Save(g, filepath.Join(*output, "grid.json")); err != nil {
		log.Fatalf("failed to write grid: %v", err)
	}
	fmt.Printf("grid.json: %dx%dx%d cells of %gx%gx%g m\n", *nx, *ny, *nz, cellDX, cellDY, cellDZ)

	arch, err := field.NewArchive(restartSteps(g, *steps))
	if err != nil {
		log.Fatalf("failed to build restart archive: %v", err)
	}
	if err := field.SaveArchive(arch, filepath.Join(*output, "restart.json")); err != nil {
		log.Fatalf("failed to write restart: %v", err)
	}
	fmt.Printf("restart.json: %d yearly steps, contact rising from %g m\n", *steps, baseContact)

	init := field.NewStatic(map[string][]float64{
		"PERMX": permeability(g, *seed),
	})
	if err := field.SaveStatic(init, filepath.Join(*output, "init.json")); err != nil {
		log.Fatalf("failed to write init: %v", err)
	}
	fmt.Println("init.json: layered PERMX field")

	wp := demoWell(g)
	if _, err := wp.Write(filepath.Join(*output, "well.w"), true, false); err != nil {
		log.Fatalf("failed to write wellpath: %v", err)
	}
	fmt.Printf("well.w: %s with %d points\n", wp.WellName, wp.Len())

	lastDate := fmt.Sprintf("%d-01-01", firstYear+*steps-1)
	cfg := &config.Config{
		GridFile:    "grid.json",
		RestartFile: "restart.json",
		InitFile:    "init.json",
		OutputDir:   "out",
		Overwrite:   true,
		DeltaZ:      0.0165,
		OwcOffset:   0.5,
		OwcDefinition: config.OwcDefinition{
			Keyword: "SWAT",
			Value:   0.7,
		},
		LogKeywords: []string{"LENGTH", "TVD_DIFF", "OLD_TVD", "OWC", "PERMX"},
		WellpathFiles: []config.WellPathConfig{
			{WellFile: "well.w", Date: lastDate},
		},
	}
	if err := cfg.WriteYAML(filepath.Join(*output, "snap.yaml")); err != nil {
		log.Fatalf("failed to write config: %v", err)
	}
	fmt.Println("snap.yaml: run configuration")

	fmt.Printf("\ncase written to %s, run it with:\n", *output)
	fmt.Printf("  snapwell %s\n", filepath.Join(*output, "snap.yaml"))
}

// contactDepth returns the water table depth at easting x for a report
// step. The table is gently folded in x and rises over time.
func contactDepth(x float64, step int) float64 {
	return baseContact - risePerStep*float64(step) + 3*math.Sin(x/300)
}

// restartSteps fills one SWAT vector per yearly report step. Water
// saturation follows a logistic profile over depth around the contact,
// from 0.25 in the oil leg to 1.0 in water.
func restartSteps(g *grid.Grid, steps int) []field.Step {
	ni, nj, nk := g.Dims()
	out := make([]field.Step, steps)
	for s := range out {
		vals := make([]float64, g.NumActive())
		for k := 0; k < nk; k++ {
			for j := 0; j < nj; j++ {
				for i := 0; i < ni; i++ {
					a := g.ActiveIndex(i, j, k)
					x, _, z := g.CellCenter(a)
					vals[a] = 0.25 + 0.75/(1+math.Exp(-(z-contactDepth(x, s))/1.5))
				}
			}
		}
		out[s] = field.Step{
			Date:   time.Date(firstYear+s, 1, 1, 0, 0, 0, 0, time.UTC),
			Fields: map[string][]float64{"SWAT": vals},
		}
	}
	return out
}

// permeability builds a layered PERMX field: a high permeability channel
// every seventh layer over a tight background, with lognormal jitter.
func permeability(g *grid.Grid, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	ni, nj, nk := g.Dims()
	vals := make([]float64, g.NumActive())
	for k := 0; k < nk; k++ {
		mean := 80.0
		if k%7 < 2 {
			mean = 500.0
		}
		for j := 0; j < nj; j++ {
			for i := 0; i < ni; i++ {
				vals[g.ActiveIndex(i, j, k)] = mean * math.Exp(0.4*rng.NormFloat64())
			}
		}
	}
	return vals
}

// demoWell builds a horizontal producer: a short descent followed by a
// lateral across the field, with a measured depth log.
func demoWell(g *grid.Grid) *wellpath.Path {
	minX, maxX, minY, maxY, _, _ := g.Extent()
	midY := (minY + maxY) / 2

	wp := wellpath.New("1.0", "PRODUCTION - DRILLED", "DEMO-1")
	if err := wp.AddColumn("MD", nil); err != nil {
		panic(err)
	}

	md := 0.0
	var px, py, pz float64
	for i := 0; ; i++ {
		x := minX + 100 + float64(i)*cellDX
		if x > maxX-100 {
			break
		}
		y := midY + 100*math.Sin(x/250)
		// descend to just above the initial contact, then run flat
		z := baseContact - 3.0
		if i < 4 {
			z = baseContact - 23.0 + 5*float64(i)
		}
		if i == 0 {
			md = z
		} else {
			md += math.Sqrt((x-px)*(x-px) + (y-py)*(y-py) + (z-pz)*(z-pz))
		}
		if err := wp.AppendRow([]float64{x, y, z, md}); err != nil {
			panic(err)
		}
		px, py, pz = x, y, z
	}
	return wp
}
