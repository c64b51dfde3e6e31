package math

import (
	gomath "math"
	"testing"
)

func mat4Near(a, b Mat4, eps float32) bool {
	for i := range a {
		d := a[i] - b[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}

func vec3Near(a, b Vec3, eps float32) bool {
	return a.Distance(b) <= eps
}

func TestMat4TransformPoint(t *testing.T) {
	m := Translate(1, 2, 3)
	got := m.TransformPoint(Vec3{10, 20, 30})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("Translate.TransformPoint() = %v, want %v", got, want)
	}
}

func TestMat4TransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(5, 5, 5)
	got := m.TransformDirection(Vec3{0, 1, 0})
	want := Vec3{0, 1, 0}
	if got != want {
		t.Errorf("TransformDirection() = %v, want %v", got, want)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Translate(1, -2, 3).Mul(RotateY(0.7)).Mul(Scale(2, 2, 2))
	inv := m.Inverse()
	if !mat4Near(m.Mul(inv), Identity(), 1e-5) {
		t.Errorf("M * M^-1 != I, got %v", m.Mul(inv))
	}
}

func TestMat4InverseSingular(t *testing.T) {
	m := Scale(0, 0, 0)
	if m.Inverse() != Identity() {
		t.Error("singular matrix Inverse() should return identity")
	}
}

func TestMat4NormalMatrix(t *testing.T) {
	// Non-uniform scale: a surface normal must be transformed by the
	// inverse-transpose, not by the matrix itself. A plane sloping at 45
	// degrees in XY, squashed 2x along Y, has a steeper normal.
	m := Scale(1, 0.5, 1)
	nm := m.NormalMatrix()

	s := float32(gomath.Sqrt(0.5))
	n := nm.TransformDirection(Vec3{s, s, 0}).Normalize()

	// Expected: direction (1, 2, 0) normalized.
	inv := float32(gomath.Sqrt(5))
	want := Vec3{1 / inv, 2 / inv, 0}
	if !vec3Near(n, want, 1e-5) {
		t.Errorf("NormalMatrix normal = %v, want %v", n, want)
	}
}

func TestMat4Transpose(t *testing.T) {
	m := Translate(1, 2, 3)
	tt := m.Transpose()
	if tt.Transpose() != m {
		t.Error("double Transpose() should return the original matrix")
	}
	if tt[3] != 1 || tt[7] != 2 || tt[11] != 3 {
		t.Errorf("Transpose() rows/cols not swapped: %v", tt)
	}
}
