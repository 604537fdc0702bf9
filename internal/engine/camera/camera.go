// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/emoji-vend/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Projection
	FovY      float32 // radians
	Near, Far float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinYaw      float32
	MaxYaw      float32

	ZoomSensitivity float32
}

// NewOrbitCamera returns a camera framing the machine's front, slightly to
// the right so the button panel faces the viewer.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Center:          math.V3(1, 0.6, 0),
		Distance:        11,
		RotationX:       0.12,
		RotationY:       1.75,
		FovY:            0.75,
		Near:            0.1,
		Far:             100,
		MinDistance:     6,
		MaxDistance:     20,
		MinYaw:          1.0,
		MaxYaw:          2.3,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.V3(x, y, z))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.V3(0, 1, 0))
}

// Projection returns the perspective matrix for a viewport aspect ratio.
func (c *OrbitCamera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.Projection(aspect).Mul(c.ViewMatrix())
}

// InvViewProjection returns the inverse view-projection used for picking.
func (c *OrbitCamera) InvViewProjection(aspect float32) math.Mat4 {
	return c.ViewProjection(aspect).Inverse()
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleYaw turns the camera around the machine within its yaw limits.
func (c *OrbitCamera) HandleYaw(delta float32) {
	c.RotationY = math.Clamp(c.RotationY+delta, c.MinYaw, c.MaxYaw)
}
