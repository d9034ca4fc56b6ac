// Package models provides mesh loading and representation for easel.
package models

import (
	"fmt"

	"github.com/taigrr/easel/pkg/math3d"
)

// Absent marks a face vertex attribute (UV or normal) that the asset did not
// provide.
const Absent = -1

// Mesh is an indexed polygon mesh. Positions, normals and UVs are separate
// pools, as in the OBJ format; each face vertex picks one entry from each.
//
// A Mesh is immutable once loaded and may be shared by any number of scene
// objects.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	Normals   []math3d.Vec3
	UVs       []math3d.Vec2
	Faces     []Face
}

// FaceVertex holds 0-based indices into a mesh's attribute pools.
// UV and Normal may be Absent.
type FaceVertex struct {
	Pos    int
	UV     int
	Normal int
}

// Face is a planar polygon with at least three vertices.
type Face struct {
	Vertices []FaceVertex
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Len returns the number of vertices in the face.
func (f Face) Len() int {
	return len(f.Vertices)
}

// HasUVs reports whether every vertex of the face references a UV.
func (f Face) HasUVs() bool {
	for _, v := range f.Vertices {
		if v.UV == Absent {
			return false
		}
	}
	return len(f.Vertices) > 0
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// FaceCount returns the number of polygon faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// TriangleCount returns the number of triangles the mesh expands to under
// fan triangulation (k-2 per face of k vertices).
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, f := range m.Faces {
		if f.Len() >= 3 {
			n += f.Len() - 2
		}
	}
	return n
}

// Bounds computes the axis-aligned bounding box of the positions.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if len(m.Positions) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// Fit translates the positions so the bounding box is centered on the
// origin and scales them uniformly so its largest side is size. Call it
// before the mesh is shared.
func (m *Mesh) Fit(size float64) {
	lo, hi := m.Bounds()
	center := lo.Add(hi).Scale(0.5)
	ext := hi.Sub(lo)
	maxDim := max(ext.X, ext.Y, ext.Z)
	scale := 1.0
	if maxDim > 0 {
		scale = size / maxDim
	}
	for i, p := range m.Positions {
		m.Positions[i] = p.Sub(center).Scale(scale)
	}
}

// Validate checks that every face has at least three vertices and that every
// index resolves inside the mesh's pools.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		if err := m.ValidateFace(f); err != nil {
			return fmt.Errorf("face %d: %w", i, err)
		}
	}
	return nil
}

// ValidateFace checks that f has at least three vertices and that every
// index it holds resolves against m.
func (m *Mesh) ValidateFace(f Face) error {
	if f.Len() < 3 {
		return fmt.Errorf("%w: got %d", ErrTooFewVertices, f.Len())
	}
	for j, v := range f.Vertices {
		if v.Pos < 0 || v.Pos >= len(m.Positions) {
			return fmt.Errorf("vertex %d: position %d of %d: %w", j, v.Pos+1, len(m.Positions), ErrIndexRange)
		}
		if v.UV != Absent && (v.UV < 0 || v.UV >= len(m.UVs)) {
			return fmt.Errorf("vertex %d: uv %d of %d: %w", j, v.UV+1, len(m.UVs), ErrIndexRange)
		}
		if v.Normal != Absent && (v.Normal < 0 || v.Normal >= len(m.Normals)) {
			return fmt.Errorf("vertex %d: normal %d of %d: %w", j, v.Normal+1, len(m.Normals), ErrIndexRange)
		}
	}
	return nil
}
