package math3d

import (
	"math"
	"testing"
)

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != V3(3, 3, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(b); got != V3(4, 10, 18) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("Cross = %v, want (0,0,1)", got)
	}
	if got := V3(3, 4, 0).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := V3(0, 0, 0).Distance(V3(0, 3, 4)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := V3(10, 0, 0).Normalize()
	if n != V3(1, 0, 0) {
		t.Errorf("Normalize = %v", n)
	}
	n = V3(3, 4, 12).Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("normalized length = %v", n.Len())
	}
	if z := Zero3().Normalize(); z != Zero3() {
		t.Errorf("zero vector normalized to %v", z)
	}
}

func TestCentroid(t *testing.T) {
	c := Centroid(V3(0, 0, 0), V3(3, 0, 0), V3(0, 3, 6))
	if !c.ApproxEqual(V3(1, 1, 2), 1e-12) {
		t.Errorf("Centroid = %v, want (1,1,2)", c)
	}
}

func TestVec2(t *testing.T) {
	if got := V2(1, 2).Add(V2(3, 4)); got != V2(4, 6) {
		t.Errorf("Add = %v", got)
	}
	if got := V2(4, 6).Scale(0.5); got != V2(2, 3) {
		t.Errorf("Scale = %v", got)
	}
	if got := V2(-0.5, 1.5).Clamp01(); got != V2(0, 1) {
		t.Errorf("Clamp01 = %v", got)
	}
	if got := V2(1, 0).Cross(V2(0, 1)); got != 1 {
		t.Errorf("Cross = %v", got)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 0, 0)
	v2 := V3(0, 1, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v1.Cross(v2)
	}
}
