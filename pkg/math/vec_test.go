package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	got := v.Length()
	want := float32(7)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	got := (Vec3{}).Normalize()
	if got != (Vec3{}) {
		t.Errorf("zero vector Normalize() = %v, want zero vector", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, -6}
	got := a.Lerp(b, 0.5)
	want := Vec3{1, 2, -3}
	if got != want {
		t.Errorf("Vec3.Lerp(0.5) = %v, want %v", got, want)
	}
	if a.Lerp(b, 0) != a {
		t.Error("Lerp(0) should return the start point")
	}
	if a.Lerp(b, 1) != b {
		t.Error("Lerp(1) should return the end point")
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, 2, -4}
	gotMin := a.Min(b)
	wantMin := Vec3{1, 2, -4}
	if gotMin != wantMin {
		t.Errorf("Vec3.Min() = %v, want %v", gotMin, wantMin)
	}
	gotMax := a.Max(b)
	wantMax := Vec3{3, 5, -2}
	if gotMax != wantMax {
		t.Errorf("Vec3.Max() = %v, want %v", gotMax, wantMax)
	}
}
