// Package scene holds the objects, camera and light of a frame loop and
// advances their animation.
package scene

import (
	"math"

	"github.com/taigrr/easel/pkg/math3d"
	"github.com/taigrr/easel/pkg/render"
)

// Entity is an object plus the motion applied to it every update.
type Entity struct {
	*render.Object

	Spin  math3d.Vec3 // radians per second around each axis
	Drive float64     // units per second along the object's yaw heading
}

// Heading returns the horizontal direction the entity drives along. It
// matches Camera.Forward for the same yaw.
func (e *Entity) Heading() math3d.Vec3 {
	yaw := e.Rotation.Y
	return math3d.V3(-math.Sin(yaw), 0, math.Cos(yaw))
}

// Scene is everything drawn in one frame: a camera, a light direction and a
// list of entities. Meshes may be shared between entities.
type Scene struct {
	Camera   *render.Camera
	Sun      math3d.Vec3
	Entities []*Entity
}

// New creates an empty scene with a default camera and sun.
func New() *Scene {
	return &Scene{
		Camera: render.NewCamera(),
		Sun:    render.DefaultSun,
	}
}

// Add appends an entity wrapping obj and returns it.
func (s *Scene) Add(obj *render.Object) *Entity {
	e := &Entity{Object: obj}
	s.Entities = append(s.Entities, e)
	return e
}

// Find returns the first entity with the given name, or nil.
func (s *Scene) Find(name string) *Entity {
	for _, e := range s.Entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Update advances every entity by dt seconds. Spin is applied before
// driving, so a turning entity drives along its new heading.
func (s *Scene) Update(dt float64) {
	for _, e := range s.Entities {
		e.Rotation = e.Rotation.Add(e.Spin.Scale(dt))
		if e.Drive != 0 {
			e.Position = e.Position.Add(e.Heading().Scale(e.Drive * dt))
		}
	}
}

// SetTextures turns texturing on or off for every entity that has a texture.
func (s *Scene) SetTextures(enabled bool) {
	for _, e := range s.Entities {
		e.TextureEnabled = enabled && e.Texture != nil
	}
}

// TriangleCount returns the number of triangles one frame submits before
// culling.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, e := range s.Entities {
		if e.Mesh != nil {
			n += e.Mesh.TriangleCount()
		}
	}
	return n
}

// Render draws one frame: every entity is shaded into ctx and the result is
// painted back to front with r. Buffer overflow is reported in the returned
// statistics and logged by ctx; it never aborts the frame.
func (s *Scene) Render(ctx *render.Context, r render.Rasterizer) render.FrameStats {
	ctx.BeginFrame()
	for _, e := range s.Entities {
		_ = ctx.DrawObject(e.Object)
	}
	return ctx.EndFrame(r)
}
