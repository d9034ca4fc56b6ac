// Package render turns posed meshes into a back-to-front list of flat-shaded
// screen triangles and paints them into a framebuffer.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/taigrr/easel/pkg/math3d"
)

// Framebuffer is a row-major grid of pixels. It implements Rasterizer by
// filling triangles with no depth test, so later triangles overwrite earlier
// ones.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Resize changes the dimensions, reusing the pixel storage when it is large
// enough. Contents are undefined afterwards.
func (fb *Framebuffer) Resize(width, height int) {
	n := width * height
	if cap(fb.Pixels) < n {
		fb.Pixels = make([]Color, n)
	}
	fb.Pixels = fb.Pixels[:n]
	fb.Width, fb.Height = width, height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	if len(fb.Pixels) == 0 {
		return
	}
	// Copy-doubling fill
	fb.Pixels[0] = c
	for i := 1; i < len(fb.Pixels); i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y). Out-of-bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or transparent black if out of
// bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// edgeCoeffs returns A, B, C such that A*x + B*y + C is the signed edge
// function of the line (x0, y0) -> (x1, y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (a, b, c float64) {
	return y0 - y1, x1 - x0, x0*y1 - x1*y0
}

// FillTriangle paints every pixel whose center lies inside the triangle.
// Either winding is accepted. Corners may lie far off screen (the near clamp
// produces such triangles); the scan is limited to the visible area.
func (fb *Framebuffer) FillTriangle(p1, p2, p3 math3d.Vec2, c Color) {
	if fb.Width == 0 || fb.Height == 0 {
		return
	}
	area2 := p2.Sub(p1).Cross(p3.Sub(p1))
	if area2 == 0 || math.IsNaN(area2) {
		return
	}
	if area2 < 0 {
		p2, p3 = p3, p2
	}

	// Clamp in float space first so huge coordinates never overflow int.
	minX := math.Max(0, math.Floor(min(p1.X, p2.X, p3.X)))
	maxX := math.Min(float64(fb.Width-1), math.Ceil(max(p1.X, p2.X, p3.X)))
	minY := math.Max(0, math.Floor(min(p1.Y, p2.Y, p3.Y)))
	maxY := math.Min(float64(fb.Height-1), math.Ceil(max(p1.Y, p2.Y, p3.Y)))
	if minX > maxX || minY > maxY {
		return
	}
	x0, x1 := int(minX), int(maxX)
	y0, y1 := int(minY), int(maxY)

	// Edge 0: p2 -> p3, Edge 1: p3 -> p1, Edge 2: p1 -> p2
	a0, b0, c0 := edgeCoeffs(p2.X, p2.Y, p3.X, p3.Y)
	a1, b1, c1 := edgeCoeffs(p3.X, p3.Y, p1.X, p1.Y)
	a2, b2, c2 := edgeCoeffs(p1.X, p1.Y, p2.X, p2.Y)

	px := float64(x0) + 0.5
	for y := y0; y <= y1; y++ {
		py := float64(y) + 0.5
		w0 := a0*px + b0*py + c0
		w1 := a1*px + b1*py + c1
		w2 := a2*px + b2*py + c2
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		for x := x0; x <= x1; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				row[x] = c
			}
			w0 += a0
			w1 += a1
			w2 += a2
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		for x := range fb.Width {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// EncodePNG writes the framebuffer to w as a PNG.
func (fb *Framebuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, fb.ToImage())
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := fb.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}
