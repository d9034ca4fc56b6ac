package render

import "github.com/taigrr/easel/pkg/math3d"

// Wireframe is a Rasterizer that outlines triangles instead of filling them.
// Painter's order still applies, but outlines do not hide anything.
type Wireframe struct {
	fb *Framebuffer

	// Color overrides the triangle color when its alpha is non-zero.
	Color Color
}

// NewWireframe creates a wireframe rasterizer drawing into fb.
func NewWireframe(fb *Framebuffer) *Wireframe {
	return &Wireframe{fb: fb}
}

// FillTriangle draws the three edges of the triangle.
func (w *Wireframe) FillTriangle(p1, p2, p3 math3d.Vec2, c Color) {
	if w.Color.A != 0 {
		c = w.Color
	}
	w.edge(p1, p2, c)
	w.edge(p2, p3, c)
	w.edge(p3, p1, c)
}

// edge draws one segment. Endpoints pushed far off screen by the near clamp
// are skipped whole rather than walked pixel by pixel, as are NaN endpoints.
func (w *Wireframe) edge(a, b math3d.Vec2, c Color) {
	limit := float64(4 * max(w.fb.Width, w.fb.Height))
	for _, p := range [2]math3d.Vec2{a, b} {
		if !(p.X >= -limit && p.X <= limit && p.Y >= -limit && p.Y <= limit) {
			return
		}
	}
	w.fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), c)
}
