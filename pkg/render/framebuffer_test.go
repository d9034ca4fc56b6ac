package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/taigrr/easel/pkg/math3d"
)

func TestFillTriangle(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2, p3 math3d.Vec2
	}{
		{"counter-clockwise", math3d.V2(0, 0), math3d.V2(10, 0), math3d.V2(0, 10)},
		{"clockwise", math3d.V2(0, 0), math3d.V2(0, 10), math3d.V2(10, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.FillTriangle(tc.p1, tc.p2, tc.p3, ColorRed)

			if fb.GetPixel(1, 1) != ColorRed {
				t.Error("pixel inside the triangle was not filled")
			}
			if fb.GetPixel(8, 8) == ColorRed {
				t.Error("pixel outside the triangle was filled")
			}
		})
	}
}

func TestFillTriangleOffscreen(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	// Corners this far out come from the near-plane clamp.
	fb.FillTriangle(math3d.V2(-1e9, -1e9), math3d.V2(1e9, -1e9), math3d.V2(0, 1e9), ColorGreen)
	if fb.GetPixel(5, 5) != ColorGreen {
		t.Error("huge triangle did not cover the screen center")
	}

	fb.Clear(ColorBlack)
	fb.FillTriangle(math3d.V2(-50, -50), math3d.V2(-40, -50), math3d.V2(-45, -40), ColorGreen)
	for _, p := range fb.Pixels {
		if p != ColorBlack {
			t.Fatal("off-screen triangle touched the framebuffer")
		}
	}
}

func TestFillTriangleDegenerate(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.FillTriangle(math3d.V2(0, 0), math3d.V2(1, 1), math3d.V2(2, 2), ColorRed)
	for _, p := range fb.Pixels {
		if p == ColorRed {
			t.Fatal("zero-area triangle was filled")
		}
	}
}

func TestPainterOverwrites(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	buf := NewTriangleBuffer(4)
	full := [3]math3d.Vec2{math3d.V2(-20, -20), math3d.V2(40, -20), math3d.V2(-20, 40)}
	buf.Submit(Triangle{P: full, Color: ColorRed, Dist: 1})
	buf.Submit(Triangle{P: full, Color: ColorBlue, Dist: 9})
	buf.SortAndDraw(fb)

	if got := fb.GetPixel(5, 5); got != ColorRed {
		t.Errorf("nearest triangle should be drawn last: got %v", got)
	}
}

func TestFramebufferResizeAndClear(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Resize(3, 2)
	if fb.Width != 3 || fb.Height != 2 || len(fb.Pixels) != 6 {
		t.Fatalf("Resize: %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
	fb.Clear(ColorGray)
	for i, p := range fb.Pixels {
		if p != ColorGray {
			t.Errorf("pixel %d = %v after Clear", i, p)
		}
	}
	fb.SetPixel(-1, 0, ColorRed)
	fb.SetPixel(3, 0, ColorRed)
	if fb.GetPixel(5, 5) != (Color{}) {
		t.Error("out-of-bounds GetPixel is not transparent")
	}
}

func TestEncodePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(2, 1, ColorBlue)

	var buf bytes.Buffer
	if err := fb.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if r != 0 || g != 0 || b>>8 != 255 {
		t.Errorf("decoded pixel = %d %d %d", r, g, b)
	}
}

func TestWireframe(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	w := NewWireframe(fb)
	w.FillTriangle(math3d.V2(1, 1), math3d.V2(8, 1), math3d.V2(1, 8), ColorRed)

	if fb.GetPixel(4, 1) != ColorRed {
		t.Error("edge pixel not drawn")
	}
	if fb.GetPixel(3, 3) == ColorRed {
		t.Error("interior pixel drawn")
	}

	w.Color = ColorGreen
	w.FillTriangle(math3d.V2(1, 1), math3d.V2(8, 1), math3d.V2(1, 8), ColorRed)
	if fb.GetPixel(4, 1) != ColorGreen {
		t.Error("override color not used")
	}
}

func TestWireframeSkipsUnprojectablePoints(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name       string
		p1, p2, p3 math3d.Vec2
	}{
		{"nan corner", math3d.V2(nan, nan), math3d.V2(8, 1), math3d.V2(1, 8)},
		{"infinite corner", math3d.V2(math.Inf(1), 2), math3d.V2(8, 1), math3d.V2(1, 8)},
		{"far corner", math3d.V2(1e12, -1e12), math3d.V2(8, 1), math3d.V2(1, 8)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.Clear(ColorBlack)

			done := make(chan struct{})
			go func() {
				defer close(done)
				NewWireframe(fb).FillTriangle(tc.p1, tc.p2, tc.p3, ColorRed)
			}()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("wireframe did not return")
			}

			// The edge between the two finite corners is still drawn.
			if fb.GetPixel(4, 5) != ColorRed {
				t.Error("finite edge not drawn")
			}
			if fb.GetPixel(1, 1) == ColorRed {
				t.Error("edge to the unprojectable corner drawn")
			}
		})
	}
}

func TestFillTriangleNaN(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.Clear(ColorBlack)
	nan := math.NaN()
	fb.FillTriangle(math3d.V2(nan, 0), math3d.V2(8, 1), math3d.V2(1, 8), ColorRed)
	for i, c := range fb.Pixels {
		if c != ColorBlack {
			t.Fatalf("pixel %d painted by NaN triangle", i)
		}
	}
}

func BenchmarkFillTriangle(b *testing.B) {
	fb := NewFramebuffer(320, 180)
	for b.Loop() {
		fb.FillTriangle(math3d.V2(10, 10), math3d.V2(300, 40), math3d.V2(120, 170), ColorRed)
	}
}
