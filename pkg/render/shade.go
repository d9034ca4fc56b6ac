package render

import (
	"fmt"
	"math"

	"github.com/taigrr/easel/pkg/math3d"
	"github.com/taigrr/easel/pkg/models"
)

// DefaultAmbientFloor is the minimum light a face receives.
const DefaultAmbientFloor = 0.15

// Luminance returns the Lambert term of a unit normal against a unit light
// direction, never less than floor (and never negative).
func Luminance(normal, sun math3d.Vec3, floor float64) float64 {
	return math.Max(normal.Dot(sun), math.Max(floor, 0))
}

// FaceNormal returns the unit normal of the triangle (a, b, c) with the
// winding (b-a) × (c-a).
func FaceNormal(a, b, c math3d.Vec3) math3d.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// FaceColor returns the flat base color of face: the texel at the face's
// average UV when obj is textured, white otherwise. Faces that lack UVs on
// any vertex are white.
func FaceColor(obj *Object, face models.Face) Color {
	if !obj.TextureEnabled || obj.Texture == nil || !face.HasUVs() {
		return ColorWhite
	}
	uvs := obj.Mesh.UVs
	var sum math3d.Vec2
	for _, v := range face.Vertices {
		if v.UV < 0 || v.UV >= len(uvs) {
			return ColorWhite
		}
		sum = sum.Add(uvs[v.UV])
	}
	return obj.Texture.Sample(sum.Scale(1 / float64(face.Len())))
}

// ShadeFace fan-triangulates face, shades and projects each triangle, and
// submits the survivors. It returns the number of triangles submitted and
// culled; the error is ErrBufferOverflow if any were dropped. A face whose
// indices do not resolve against obj's mesh submits nothing and returns a
// models.ErrIndexRange (or ErrTooFewVertices) error.
func (c *Context) ShadeFace(obj *Object, face models.Face) (submitted, culled int, err error) {
	if err := obj.Mesh.ValidateFace(face); err != nil {
		return 0, 0, fmt.Errorf("object %q: %w", obj.Name, err)
	}
	return c.shadeFace(obj, face)
}

// shadeFace is ShadeFace for a face already known to be valid.
func (c *Context) shadeFace(obj *Object, face models.Face) (submitted, culled int, err error) {
	base := FaceColor(obj, face)
	positions := obj.Mesh.Positions

	p0, c0 := ToCameraSpace(positions[face.Vertices[0].Pos], obj, c.Camera)
	for i := 1; i < face.Len()-1; i++ {
		p1, c1 := ToCameraSpace(positions[face.Vertices[i].Pos], obj, c.Camera)
		p2, c2 := ToCameraSpace(positions[face.Vertices[i+1].Pos], obj, c.Camera)

		pts, ok := c.proj.ProjectTriangle(p0, p1, p2, c.Camera.FOV)
		if !ok {
			culled++
			continue
		}

		normal := FaceNormal(c0, c1, c2)
		tri := Triangle{
			P:      pts,
			Normal: normal,
			Color:  MultiplyColor(base, Luminance(normal, c.sun, c.ambient)),
			Dist:   math3d.Centroid(c0, c1, c2).Len(),
		}
		if serr := c.buf.Submit(tri); serr != nil {
			err = serr
			continue
		}
		submitted++
	}
	return submitted, culled, err
}
