package math

import (
	"testing"
)

func TestVec2Cross(t *testing.T) {
	a := Vec2{1, 0}
	b := Vec2{0, 1}
	if got := a.Cross(b); got != 1 {
		t.Errorf("Vec2.Cross() = %v, want 1", got)
	}
	if got := b.Cross(a); got != -1 {
		t.Errorf("Vec2.Cross() reversed = %v, want -1", got)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", z)
	}
}

func TestWeighted(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}
	c := Vec3{0, 0, 1}
	got := Weighted(a, b, c, 0.2, 0.3, 0.5)
	want := Vec3{0.2, 0.3, 0.5}
	if got != want {
		t.Errorf("Weighted() = %v, want %v", got, want)
	}
}

func TestPerspectiveDivide(t *testing.T) {
	got := Vec4{2, 4, 6, 2}.PerspectiveDivide()
	want := Vec4{1, 2, 3, 2}
	if got != want {
		t.Errorf("PerspectiveDivide() = %v, want %v", got, want)
	}

	zero := Vec4{2, 4, 6, 0}
	if got := zero.PerspectiveDivide(); got != zero {
		t.Errorf("PerspectiveDivide() with w=0 = %v, want %v", got, zero)
	}
}
