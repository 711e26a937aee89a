package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(10, 20, 30, 100)

	if cam.TargetX != 10 || cam.TargetY != 20 || cam.TargetZ != 30 {
		t.Errorf("expected target (10, 20, 30), got (%f, %f, %f)",
			cam.TargetX, cam.TargetY, cam.TargetZ)
	}
	if cam.Dist != 100 {
		t.Errorf("expected dist 100, got %f", cam.Dist)
	}
	if cam.MinDist != 5 || cam.MaxDist != 2000 {
		t.Errorf("expected dist limits (5, 2000), got (%f, %f)", cam.MinDist, cam.MaxDist)
	}
}

func TestPositionStraightOn(t *testing.T) {
	cam := New(10, 20, 30, 100)
	cam.Yaw = 0
	cam.Pitch = 0

	// At zero yaw and pitch the camera sits on the +X axis of the target
	x, y, z := cam.Position()
	if math.Abs(float64(x-110)) > 1e-4 || math.Abs(float64(y-20)) > 1e-4 || math.Abs(float64(z-30)) > 1e-4 {
		t.Errorf("expected position (110, 20, 30), got (%f, %f, %f)", x, y, z)
	}
}

func TestPositionPitched(t *testing.T) {
	cam := New(0, 0, 0, 100)
	cam.Yaw = 0
	cam.Pitch = math.Pi / 4

	x, y, z := cam.Position()
	want := 100 * float32(math.Sqrt(2)) / 2
	if math.Abs(float64(x-want)) > 1e-3 || math.Abs(float64(y-want)) > 1e-3 || math.Abs(float64(z)) > 1e-3 {
		t.Errorf("expected position (%f, %f, 0), got (%f, %f, %f)", want, want, x, y, z)
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := New(0, 0, 0, 100)

	cam.Orbit(0, 10)
	if math.Abs(float64(cam.Pitch-maxPitch)) > 1e-6 {
		t.Errorf("expected pitch clamped to %f, got %f", float32(maxPitch), cam.Pitch)
	}

	cam.Orbit(0, -20)
	if math.Abs(float64(cam.Pitch+maxPitch)) > 1e-6 {
		t.Errorf("expected pitch clamped to %f, got %f", -float32(maxPitch), cam.Pitch)
	}
}

func TestDollyClamp(t *testing.T) {
	cam := New(0, 0, 0, 100)

	cam.Dolly(0.0001)
	if cam.Dist != cam.MinDist {
		t.Errorf("expected dist clamped to %f, got %f", cam.MinDist, cam.Dist)
	}

	cam.Dolly(1e6)
	if cam.Dist != cam.MaxDist {
		t.Errorf("expected dist clamped to %f, got %f", cam.MaxDist, cam.Dist)
	}
}

func TestPanMovesTarget(t *testing.T) {
	cam := New(0, 0, 0, 100)
	cam.Yaw = 0

	// With zero yaw, a sideways pan moves the target along -Z and a
	// forward pan along -X
	cam.Pan(0.1, 0)
	if math.Abs(float64(cam.TargetX)) > 1e-4 || math.Abs(float64(cam.TargetZ+10)) > 1e-4 {
		t.Errorf("expected target (0, 0, -10), got (%f, %f, %f)",
			cam.TargetX, cam.TargetY, cam.TargetZ)
	}

	cam.Pan(0, 0.1)
	if math.Abs(float64(cam.TargetX+10)) > 1e-4 || math.Abs(float64(cam.TargetZ+10)) > 1e-4 {
		t.Errorf("expected target (-10, 0, -10), got (%f, %f, %f)",
			cam.TargetX, cam.TargetY, cam.TargetZ)
	}
}

func TestReset(t *testing.T) {
	cam := New(0, 0, 0, 100)
	cam.Orbit(1.5, 0.3)
	cam.Dolly(3)

	cam.Reset()

	if math.Abs(float64(cam.Yaw-defaultYaw)) > 1e-6 {
		t.Errorf("expected yaw %f, got %f", float32(defaultYaw), cam.Yaw)
	}
	if math.Abs(float64(cam.Pitch-defaultPitch)) > 1e-6 {
		t.Errorf("expected pitch %f, got %f", float32(defaultPitch), cam.Pitch)
	}
	if cam.Dist != 100 {
		t.Errorf("expected dist 100, got %f", cam.Dist)
	}
}
