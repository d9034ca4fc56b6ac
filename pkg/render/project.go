package render

import (
	"math"

	"github.com/taigrr/easel/pkg/math3d"
)

// DefaultNearEpsilon is the depth substituted for vertices behind the
// camera.
const DefaultNearEpsilon = 0.01

// minDepth is the smallest depth divided by. Anything at or below it is
// treated as behind the camera.
const minDepth = 1e-9

// Projector maps camera-space points to screen pixels.
type Projector struct {
	Width       int
	Height      int
	NearEpsilon float64
}

// NewProjector creates a projector for a width×height screen.
func NewProjector(width, height int) Projector {
	return Projector{Width: width, Height: height, NearEpsilon: DefaultNearEpsilon}
}

// Project perspective-projects p with the given field of view (degrees).
// Depths at or below zero are clamped to NearEpsilon first.
func (pr Projector) Project(p math3d.Vec3, fov float64) math3d.Vec2 {
	p = pr.ClampNear(p)
	w, h := float64(pr.Width), float64(pr.Height)
	scale := math.Tan(fov / 2 * math.Pi / 180)
	aspect := w / h
	return math3d.V2(
		(p.X/(p.Z*scale*aspect))*w/2+w/2,
		-(p.Y/(p.Z*scale))*h/2+h/2,
	)
}

// ProjectTriangle projects three camera-space points.
//
// If all three are behind the camera the triangle is culled and ok is
// false. Otherwise each point behind the camera has its depth clamped to
// NearEpsilon. This is not clipping: triangles crossing the camera plane are
// visibly distorted.
func (pr Projector) ProjectTriangle(a, b, c math3d.Vec3, fov float64) (pts [3]math3d.Vec2, ok bool) {
	if a.Z < 0 && b.Z < 0 && c.Z < 0 {
		return pts, false
	}
	pts[0] = pr.Project(a, fov)
	pts[1] = pr.Project(b, fov)
	pts[2] = pr.Project(c, fov)
	return pts, true
}

// ClampNear returns p with its depth replaced by NearEpsilon when p is at or
// behind the camera plane.
func (pr Projector) ClampNear(p math3d.Vec3) math3d.Vec3 {
	if p.Z < minDepth {
		p.Z = pr.nearEpsilon()
	}
	return p
}

func (pr Projector) nearEpsilon() float64 {
	if pr.NearEpsilon <= minDepth {
		return DefaultNearEpsilon
	}
	return pr.NearEpsilon
}
