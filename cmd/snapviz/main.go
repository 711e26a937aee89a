// Snapviz draws well trajectories as 3D polylines.
//
// Usage: snapviz well_1.w ... conf_1.yaml ...
//
// Config file arguments are expanded to the wellpath files they list.
// Depth is drawn with a configurable vertical exaggeration, since well
// trajectories tend to be far longer than they are deep.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snapwell/camera"
	"github.com/pthm-cable/snapwell/config"
	"github.com/pthm-cable/snapwell/wellpath"
)

const version = "1.0.0"

const (
	windowWidth  = 1280
	windowHeight = 800

	// horizontal extent of the scene in raylib units
	sceneSize = 100
)

var palette = []color.RGBA{
	rl.Maroon, rl.DarkBlue, rl.DarkGreen, rl.Orange,
	rl.Purple, rl.DarkBrown, rl.Red, rl.Blue,
}

func main() {
	example := flag.Bool("example", false, "Print minimal example input files and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("snapviz " + version)
		fmt.Println("snapviz is part of the snapwell project.")
		return
	}
	if *example {
		printExamples()
		return
	}

	files := collectWellFiles(flag.Args())
	if len(files) == 0 {
		fmt.Println("Usage: snapviz well_1.w  ... well_n.w")
		fmt.Println("       snapviz conf_1.yaml ... conf_n.yaml")
		fmt.Println("       snapviz conf_1.yaml ... conf_n.yaml well_1.w ... well_m.w")
		fmt.Println()
		fmt.Println("Use    snapviz -example    to see minimal examples for paths and configs")
		fmt.Println("       snapviz -version    to see current version")
		return
	}

	wells := loadWells(files)
	if len(wells) == 0 {
		log.Fatal("no wellpath file could be read")
	}

	rl.InitWindow(windowWidth, windowHeight, "Snapviz")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	cam := camera.New(0, 0, 0, sceneSize*1.5)
	b := wellBounds(wells)

	exag := float32(1)
	showPoints := false
	needsRebuild := true
	var scene [][]rl.Vector3

	for !rl.WindowShouldClose() {
		if needsRebuild {
			scene = buildScene(wells, b, exag)
			needsRebuild = false
		}

		// Orbit, pan, and zoom. The strip along the bottom belongs to
		// the control panel, so drags there are left alone.
		overPanel := rl.GetMouseY() > windowHeight-50
		if !overPanel {
			delta := rl.GetMouseDelta()
			if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
				cam.Orbit(delta.X*0.01, delta.Y*0.01)
			}
			if rl.IsMouseButtonDown(rl.MouseButtonRight) {
				cam.Pan(delta.X/500, delta.Y/500)
			}
			if wheel := rl.GetMouseWheelMove(); wheel != 0 {
				cam.Dolly(1 - wheel*0.1)
			}
		}
		if rl.IsKeyPressed(rl.KeyR) {
			cam.Reset()
		}

		px, py, pz := cam.Position()
		rlCam := rl.Camera3D{
			Position:   rl.Vector3{X: px, Y: py, Z: pz},
			Target:     rl.Vector3{X: cam.TargetX, Y: cam.TargetY, Z: cam.TargetZ},
			Up:         rl.Vector3{Y: 1},
			Fovy:       45,
			Projection: rl.CameraPerspective,
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.BeginMode3D(rlCam)
		rl.DrawGrid(20, sceneSize/10)
		for w, pts := range scene {
			col := palette[w%len(palette)]
			for i := 1; i < len(pts); i++ {
				rl.DrawLine3D(pts[i-1], pts[i], col)
			}
			if showPoints {
				for _, p := range pts {
					rl.DrawCubeV(p, rl.Vector3{X: 0.6, Y: 0.6, Z: 0.6}, col)
				}
			}
		}
		rl.EndMode3D()

		// Well names at their first point
		for w, pts := range scene {
			if len(pts) == 0 {
				continue
			}
			sp := rl.GetWorldToScreen(pts[0], rlCam)
			if sp.X < 0 || sp.X > windowWidth || sp.Y < 0 || sp.Y > windowHeight {
				continue
			}
			rl.DrawText(wells[w].WellName, int32(sp.X)+6, int32(sp.Y)-6, 12, rl.DarkGray)
		}

		rl.DrawText(fmt.Sprintf("%d wells | drag: orbit, right-drag: pan, wheel: zoom, R: reset", len(wells)),
			10, 10, 14, rl.DarkGray)

		// Control panel
		panelY := float32(windowHeight - 34)
		rl.DrawText("Vertical exaggeration", 10, int32(panelY)+2, 14, rl.Gray)
		newExag := gui.SliderBar(
			rl.Rectangle{X: 170, Y: panelY, Width: 220, Height: 20},
			"1x", "20x",
			exag, 1, 20,
		)
		rl.DrawText(fmt.Sprintf("%.1fx", exag), 440, int32(panelY)+2, 14, rl.DarkGray)
		if newExag != exag {
			exag = newExag
			needsRebuild = true
		}
		showPoints = gui.CheckBox(
			rl.Rectangle{X: 510, Y: panelY, Width: 20, Height: 20},
			"Point markers", showPoints,
		)
		if gui.Button(rl.Rectangle{X: 660, Y: panelY, Width: 100, Height: 20}, "Reset view") {
			cam.Reset()
		}

		rl.EndDrawing()
	}
}

// collectWellFiles expands config file arguments to the wellpath files
// they list and keeps other arguments as they are.
func collectWellFiles(args []string) []string {
	var files []string
	for _, arg := range args {
		switch filepath.Ext(arg) {
		case ".yaml", ".yml":
			fmt.Printf("Reading snapwell config %s\n", arg)
			cfg, err := config.Load(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not read config %s: %v\n", arg, err)
				continue
			}
			cfg.SetBasePath(filepath.Dir(arg))
			for _, w := range cfg.WellpathFiles {
				files = append(files, w.WellFile)
			}
		default:
			files = append(files, arg)
		}
	}
	return files
}

func loadWells(files []string) []*wellpath.Path {
	var wells []*wellpath.Path
	for _, f := range files {
		fmt.Printf("Reading wellpath %s\n", f)
		wp, err := wellpath.Load(f, time.Time{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not parse wellpath %s: %v\n", f, err)
			continue
		}
		wells = append(wells, wp)
	}
	return wells
}

type bounds struct {
	minX, maxX, minY, maxY, minZ, maxZ float64
}

func wellBounds(wells []*wellpath.Path) bounds {
	b := bounds{
		minX: math.Inf(1), maxX: math.Inf(-1),
		minY: math.Inf(1), maxY: math.Inf(-1),
		minZ: math.Inf(1), maxZ: math.Inf(-1),
	}
	for _, wp := range wells {
		for i := 0; i < wp.Len(); i++ {
			b.minX = math.Min(b.minX, wp.X(i))
			b.maxX = math.Max(b.maxX, wp.X(i))
			b.minY = math.Min(b.minY, wp.Y(i))
			b.maxY = math.Max(b.maxY, wp.Y(i))
			b.minZ = math.Min(b.minZ, wp.Z(i))
			b.maxZ = math.Max(b.maxZ, wp.Z(i))
		}
	}
	return b
}

// buildScene maps UTM+depth coordinates into the raylib scene: x stays
// east, north becomes the Z axis, and depth is negated onto the up axis
// so deeper points draw lower.
func buildScene(wells []*wellpath.Path, b bounds, exag float32) [][]rl.Vector3 {
	cx := (b.minX + b.maxX) / 2
	cy := (b.minY + b.maxY) / 2
	cz := (b.minZ + b.maxZ) / 2
	extent := math.Max(b.maxX-b.minX, b.maxY-b.minY)
	if extent <= 0 {
		extent = 1
	}
	s := sceneSize / extent

	scene := make([][]rl.Vector3, len(wells))
	for w, wp := range wells {
		pts := make([]rl.Vector3, wp.Len())
		for i := range pts {
			pts[i] = rl.Vector3{
				X: float32((wp.X(i) - cx) * s),
				Y: float32(-(wp.Z(i) - cz) * s * float64(exag)),
				Z: float32((wp.Y(i) - cy) * s),
			}
		}
		scene[w] = pts
	}
	return scene
}

func printExamples() {
	fmt.Println(`
Example minimal wellpath file well.w:
1.0
DISPOSAL - DRILLED
NORNE-1  462651.97 7325861.57 2451.24
0
462440.00          7325660.00     2490.00
462300.00          7325330.00     2510.00
462160.00          7324930.00     2540.00

Example minimal snapwell config file snap.yaml:
grid_file: norne.grid.json
restart_file: norne.restart.json
init_file: norne.init.json
output_dir: out
log_keywords:
  - OWC
  - LENGTH
wellpath_files:
  - well_file: norne-well-B-2H.w
    date: 1998-01-01
  - well_file: norne-well-1.w
    date: 2001-01-01`)
}
