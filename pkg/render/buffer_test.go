package render

import (
	"errors"
	"testing"

	"github.com/taigrr/easel/pkg/math3d"
)

func TestTriangleBufferSortDescending(t *testing.T) {
	buf := NewTriangleBuffer(8)
	for _, d := range []float64{1, 5, 3} {
		if err := buf.Submit(Triangle{Dist: d}); err != nil {
			t.Fatalf("Submit(%v) = %v", d, err)
		}
	}
	buf.Sort()

	want := []float64{5, 3, 1}
	got := buf.Triangles()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Dist != want[i] {
			t.Errorf("tri[%d].Dist = %v, want %v", i, got[i].Dist, want[i])
		}
	}
}

func TestTriangleBufferDrawOrder(t *testing.T) {
	buf := NewTriangleBuffer(8)
	for i, d := range []float64{2, 9, 4, 7} {
		buf.Submit(Triangle{Dist: d, Color: RGB(uint8(i), 0, 0)})
	}

	var drawn []uint8
	buf.SortAndDraw(RasterizerFunc(func(_, _, _ math3d.Vec2, c Color) {
		drawn = append(drawn, c.R)
	}))

	// Farthest first: 9 (1), 7 (3), 4 (2), 2 (0)
	want := []uint8{1, 3, 2, 0}
	if len(drawn) != len(want) {
		t.Fatalf("drew %d triangles, want %d", len(drawn), len(want))
	}
	for i := range want {
		if drawn[i] != want[i] {
			t.Errorf("draw[%d] = %d, want %d", i, drawn[i], want[i])
		}
	}
}

func TestTriangleBufferOverflow(t *testing.T) {
	buf := NewTriangleBuffer(2)
	for i := range 2 {
		if err := buf.Submit(Triangle{Dist: float64(i)}); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}

	err := buf.Submit(Triangle{Dist: 99})
	if !errors.Is(err, ErrBufferOverflow) {
		t.Fatalf("third Submit = %v, want ErrBufferOverflow", err)
	}
	buf.Submit(Triangle{})

	if buf.Len() != 2 {
		t.Errorf("Len = %d, want 2", buf.Len())
	}
	if buf.Dropped() != 2 {
		t.Errorf("Dropped = %d, want 2", buf.Dropped())
	}
	for _, tri := range buf.Triangles() {
		if tri.Dist == 99 {
			t.Error("overflowing triangle was stored")
		}
	}
}

func TestTriangleBufferReset(t *testing.T) {
	buf := NewTriangleBuffer(1)
	buf.Submit(Triangle{})
	buf.Submit(Triangle{})
	buf.Reset()

	if buf.Len() != 0 || buf.Dropped() != 0 {
		t.Errorf("after Reset: Len = %d, Dropped = %d", buf.Len(), buf.Dropped())
	}
	if buf.Cap() != 1 {
		t.Errorf("Cap = %d, want 1", buf.Cap())
	}
	if err := buf.Submit(Triangle{}); err != nil {
		t.Errorf("Submit after Reset = %v", err)
	}
}

func TestNewTriangleBufferDefaultCapacity(t *testing.T) {
	if got := NewTriangleBuffer(0).Cap(); got != DefaultCapacity {
		t.Errorf("Cap = %d, want %d", got, DefaultCapacity)
	}
}

func BenchmarkTriangleBufferSort(b *testing.B) {
	buf := NewTriangleBuffer(DefaultCapacity)
	for b.Loop() {
		buf.Reset()
		for i := range DefaultCapacity {
			buf.Submit(Triangle{Dist: float64((i * 7919) % DefaultCapacity)})
		}
		buf.Sort()
	}
}
