// Package camera provides an orbit camera for 3D trajectory views.
package camera

import "math"

const (
	defaultYaw   = math.Pi / 4
	defaultPitch = 0.5

	// maxPitch keeps the camera short of straight up or down, so the
	// up vector stays well defined
	maxPitch = math.Pi/2 - 0.05
)

// Camera orbits a target point, described by a yaw and pitch angle pair
// and a distance. Angles are in radians.
type Camera struct {
	// Target is the point the camera orbits, in scene coordinates
	TargetX, TargetY, TargetZ float32

	// Yaw is the horizontal orbit angle
	Yaw float32

	// Pitch is the vertical orbit angle, positive looks down on the target
	Pitch float32

	// Dist is the distance from the target
	Dist float32

	// Distance constraints
	MinDist, MaxDist float32

	initDist float32
}

// New creates a camera orbiting the given target from distance dist.
func New(targetX, targetY, targetZ, dist float32) *Camera {
	return &Camera{
		TargetX:  targetX,
		TargetY:  targetY,
		TargetZ:  targetZ,
		Yaw:      defaultYaw,
		Pitch:    defaultPitch,
		Dist:     dist,
		MinDist:  dist * 0.05,
		MaxDist:  dist * 20,
		initDist: dist,
	}
}

// Orbit rotates the camera around the target by the given angle deltas.
func (c *Camera) Orbit(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch = clamp(c.Pitch+dpitch, -maxPitch, maxPitch)
}

// Dolly scales the distance to the target, clamped to the limits.
func (c *Camera) Dolly(factor float32) {
	c.Dist = clamp(c.Dist*factor, c.MinDist, c.MaxDist)
}

// Pan moves the target in the ground plane, relative to the view
// direction. Deltas are fractions of the orbit distance, so a drag
// covers the same screen distance at any zoom.
func (c *Camera) Pan(dx, dz float32) {
	sinY := float32(math.Sin(float64(c.Yaw)))
	cosY := float32(math.Cos(float64(c.Yaw)))
	c.TargetX += (sinY*dx - cosY*dz) * c.Dist
	c.TargetZ += (-cosY*dx - sinY*dz) * c.Dist
}

// Position returns the camera location in scene coordinates.
func (c *Camera) Position() (x, y, z float32) {
	sinP := float32(math.Sin(float64(c.Pitch)))
	cosP := float32(math.Cos(float64(c.Pitch)))
	sinY := float32(math.Sin(float64(c.Yaw)))
	cosY := float32(math.Cos(float64(c.Yaw)))

	x = c.TargetX + c.Dist*cosP*cosY
	y = c.TargetY + c.Dist*sinP
	z = c.TargetZ + c.Dist*cosP*sinY
	return x, y, z
}

// Reset returns the camera to its initial orbit around the current target.
func (c *Camera) Reset() {
	c.Yaw = defaultYaw
	c.Pitch = defaultPitch
	c.Dist = c.initDist
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
