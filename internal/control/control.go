// Package control turns key and mouse input into smooth free-fly camera
// motion.
package control

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/easel/pkg/render"
)

// Move is one movement direction.
type Move int

const (
	Forward Move = iota
	Back
	Left
	Right
	Up
	Down
)

// Settings tunes a Controller.
type Settings struct {
	FPS       int     // frame rate the springs are stepped at
	MoveSpeed float64 // units per second at full input
	LookRate  float64 // degrees of turn per mouse cell
	Frequency float64 // spring angular frequency
	Damping   float64 // spring damping ratio; 1 is critically damped
}

// DefaultSettings mirrors a brisk walk with a quick, overshoot-free stop.
func DefaultSettings(fps int) Settings {
	return Settings{
		FPS:       fps,
		MoveSpeed: 4,
		LookRate:  0.3,
		Frequency: 6,
		Damping:   1,
	}
}

// axis tracks a velocity that a spring pulls toward a target.
type axis struct {
	Velocity float64
	accel    float64 // spring velocity of Velocity
	spring   harmonica.Spring
}

func newAxis(s Settings) axis {
	return axis{spring: harmonica.NewSpring(harmonica.FPS(s.FPS), s.Frequency, s.Damping)}
}

// update moves Velocity one frame toward target.
func (a *axis) update(target float64) {
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, target)
}

// Controller drives a camera. Look input is an impulse that decays; movement
// input is a held intent the velocity springs toward. Terminals often never
// report key releases, so intent also fades by itself.
//
// A Controller is used from the frame goroutine only.
type Controller struct {
	cam      *render.Camera
	settings Settings

	yaw, pitch axis // turn per frame, radians

	intent                [3]float64 // forward, right, up in [-1, 1]
	forward, strafe, lift axis
}

// New creates a controller for cam. Zero settings take their defaults.
func New(cam *render.Camera, s Settings) *Controller {
	if s.FPS <= 0 {
		s.FPS = 60
	}
	def := DefaultSettings(s.FPS)
	if s.MoveSpeed <= 0 {
		s.MoveSpeed = def.MoveSpeed
	}
	if s.LookRate <= 0 {
		s.LookRate = def.LookRate
	}
	if s.Frequency <= 0 {
		s.Frequency = def.Frequency
	}
	if s.Damping <= 0 {
		s.Damping = def.Damping
	}
	c := &Controller{cam: cam, settings: s}
	c.Reset()
	return c
}

// Reset stops all motion.
func (c *Controller) Reset() {
	c.yaw = newAxis(c.settings)
	c.pitch = newAxis(c.settings)
	c.forward = newAxis(c.settings)
	c.strafe = newAxis(c.settings)
	c.lift = newAxis(c.settings)
	c.intent = [3]float64{}
}

// Look applies a mouse movement of dx, dy cells. Moving right turns left
// around +Y, moving down pitches up, as in the classic demo controls.
func (c *Controller) Look(dx, dy float64) {
	rate := c.settings.LookRate * math.Pi / 180
	c.yaw.Velocity -= dx * rate
	c.pitch.Velocity += dy * rate
}

// Press starts moving in direction m.
func (c *Controller) Press(m Move) {
	i, sign := m.axis()
	c.intent[i] = sign
}

// Release stops moving in direction m. A release of the opposite direction
// is ignored.
func (c *Controller) Release(m Move) {
	i, sign := m.axis()
	if c.intent[i]*sign > 0 {
		c.intent[i] = 0
	}
}

func (m Move) axis() (int, float64) {
	switch m {
	case Forward:
		return 0, 1
	case Back:
		return 0, -1
	case Right:
		return 1, 1
	case Left:
		return 1, -1
	case Up:
		return 2, 1
	default:
		return 2, -1
	}
}

// Velocity returns the current forward, strafe and vertical speeds.
func (c *Controller) Velocity() (forward, strafe, lift float64) {
	return c.forward.Velocity, c.strafe.Velocity, c.lift.Velocity
}

// Update advances one frame of dt seconds and moves the camera.
func (c *Controller) Update(dt float64) {
	c.cam.Rotate(c.pitch.Velocity, c.yaw.Velocity)
	c.yaw.update(0)
	c.pitch.update(0)

	speed := c.settings.MoveSpeed
	c.forward.update(c.intent[0] * speed)
	c.strafe.update(c.intent[1] * speed)
	c.lift.update(c.intent[2] * speed)

	c.cam.MoveForward(c.forward.Velocity * dt)
	c.cam.MoveRight(c.strafe.Velocity * dt)
	c.cam.MoveUp(c.lift.Velocity * dt)

	// Key release events are unreliable, so held input fades.
	for i := range c.intent {
		c.intent[i] *= 0.9
		if math.Abs(c.intent[i]) < 0.01 {
			c.intent[i] = 0
		}
	}
}
