package render

import (
	"math"

	"github.com/taigrr/easel/pkg/math3d"
)

// DefaultFOV is the default horizontal-scale field of view, in degrees.
const DefaultFOV = 70.0

// Camera is the single viewpoint of a frame.
//
// Rotation holds Euler angles in radians, applied Y (yaw), then X (pitch),
// then Z (roll). The camera looks down +Z in its own space.
type Camera struct {
	Position math3d.Vec3
	Rotation math3d.Vec3
	FOV      float64 // degrees
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{FOV: DefaultFOV}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// SetRotation sets the camera rotation (pitch, yaw, roll in radians).
func (c *Camera) SetRotation(pitch, yaw, roll float64) {
	c.Rotation = math3d.V3(pitch, yaw, roll)
}

// SetFOV sets the field of view in degrees.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
}

// Pitch returns the rotation around X.
func (c *Camera) Pitch() float64 { return c.Rotation.X }

// Yaw returns the rotation around Y.
func (c *Camera) Yaw() float64 { return c.Rotation.Y }

// Forward returns the horizontal heading the camera moves along. Pitch does
// not tilt movement.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(-math.Sin(c.Rotation.Y), 0, math.Cos(c.Rotation.Y))
}

// Right returns the horizontal strafe direction.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(math.Cos(c.Rotation.Y), 0, math.Sin(c.Rotation.Y))
}

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// MoveUp moves the camera up (or down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.Position.Y += distance
}

// Rotate rotates the camera by the given angles (in radians).
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Rotation.X += deltaPitch
	c.Rotation.Y += deltaYaw

	// Clamp pitch so the view never flips over the vertical.
	const maxPitch = math.Pi/2 - 0.01
	c.Rotation.X = math.Max(-maxPitch, math.Min(maxPitch, c.Rotation.X))
}
