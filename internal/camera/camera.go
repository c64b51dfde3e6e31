// Package camera provides the orbit camera used by the viewer.
package camera

import (
	gomath "math"

	"github.com/lumenforge/pointmorph/pkg/math"
)

// OrbitCamera orbits around a center point. Defaults are sized for a point
// cloud normalized to a few units across.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        8.0,
		RotationX:       0.3,
		RotationY:       0.0,
		MinDistance:     1.0,
		MaxDistance:     100.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return math.Vec3{
		X: c.Center.X + x,
		Y: c.Center.Y + y,
		Z: c.Center.Z + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// AutoOrbit slowly rotates the camera around the cloud; dt is in seconds.
func (c *OrbitCamera) AutoOrbit(dt float64, speed float32) {
	c.RotationY += speed * float32(dt)
}

// FitDistance places the camera so a cloud of the given longest-axis extent
// fills most of the view.
func (c *OrbitCamera) FitDistance(extent float32) {
	if extent <= 0 {
		return
	}
	c.Distance = extent * 2
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
