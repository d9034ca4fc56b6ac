package render

import (
	"cmp"
	"errors"
	"slices"

	"github.com/taigrr/easel/pkg/math3d"
)

// DefaultCapacity is the default number of triangles a frame may submit.
const DefaultCapacity = 25000

// ErrBufferOverflow is returned by Submit once the buffer is full. The
// rejected triangle is dropped.
var ErrBufferOverflow = errors.New("triangle buffer overflow")

// Triangle is a projected, shaded triangle waiting to be drawn.
type Triangle struct {
	P      [3]math3d.Vec2 // screen-space corners
	Normal math3d.Vec3    // camera-space face normal
	Color  Color          // resolved draw color
	Dist   float64        // camera-space centroid distance, for ordering only
}

// Rasterizer paints one solid triangle given its screen-space corners.
type Rasterizer interface {
	FillTriangle(p1, p2, p3 math3d.Vec2, c Color)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(p1, p2, p3 math3d.Vec2, c Color)

// FillTriangle calls f.
func (f RasterizerFunc) FillTriangle(p1, p2, p3 math3d.Vec2, c Color) {
	f(p1, p2, p3, c)
}

// TriangleBuffer is a fixed-capacity, frame-scoped pool of triangles.
//
// The backing storage is allocated once and never grows. A buffer is owned
// by a single frame loop and is not safe for concurrent use.
type TriangleBuffer struct {
	tris    []Triangle
	count   int
	dropped int
}

// NewTriangleBuffer allocates a buffer holding up to capacity triangles.
// A non-positive capacity selects DefaultCapacity.
func NewTriangleBuffer(capacity int) *TriangleBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &TriangleBuffer{tris: make([]Triangle, capacity)}
}

// Cap returns the fixed capacity.
func (b *TriangleBuffer) Cap() int { return len(b.tris) }

// Len returns the number of triangles submitted this frame.
func (b *TriangleBuffer) Len() int { return b.count }

// Dropped returns the number of triangles rejected this frame.
func (b *TriangleBuffer) Dropped() int { return b.dropped }

// Reset empties the buffer. Call once at the start of every frame.
func (b *TriangleBuffer) Reset() {
	b.count = 0
	b.dropped = 0
}

// Submit appends t, or drops it and returns ErrBufferOverflow when full.
func (b *TriangleBuffer) Submit(t Triangle) error {
	if b.count >= len(b.tris) {
		b.dropped++
		return ErrBufferOverflow
	}
	b.tris[b.count] = t
	b.count++
	return nil
}

// Triangles returns the submitted triangles. The slice aliases the buffer
// and is only valid until the next Reset.
func (b *TriangleBuffer) Triangles() []Triangle {
	return b.tris[:b.count]
}

// Sort orders the submitted triangles farthest first. Equal distances are
// left in no particular order.
func (b *TriangleBuffer) Sort() {
	slices.SortFunc(b.tris[:b.count], func(x, y Triangle) int {
		return cmp.Compare(y.Dist, x.Dist)
	})
}

// Draw hands every submitted triangle to r in buffer order.
func (b *TriangleBuffer) Draw(r Rasterizer) {
	for _, t := range b.tris[:b.count] {
		r.FillTriangle(t.P[0], t.P[1], t.P[2], t.Color)
	}
}

// SortAndDraw sorts the buffer and draws it back to front. Overlapping or
// interpenetrating triangles may still be drawn in the wrong order; there is
// no per-pixel depth test.
func (b *TriangleBuffer) SortAndDraw(r Rasterizer) {
	b.Sort()
	b.Draw(r)
}
