package morph

import "testing"

func TestEasingEndpoints(t *testing.T) {
	curves := map[string]Easing{
		"linear": Linear,
		"quad":   QuadInOut,
		"cubic":  CubicInOut,
		"sine":   SineInOut,
	}

	for name, f := range curves {
		if got := f(0); got < -1e-5 || got > 1e-5 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := f(1); got < 1-1e-5 || got > 1+1e-5 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
		if got := f(0.5); got < 0.5-1e-5 || got > 0.5+1e-5 {
			t.Errorf("%s(0.5) = %v, want 0.5 (in-out symmetry)", name, got)
		}
	}
}

func TestEasingMonotonic(t *testing.T) {
	curves := map[string]Easing{
		"linear": Linear,
		"quad":   QuadInOut,
		"cubic":  CubicInOut,
		"sine":   SineInOut,
	}

	for name, f := range curves {
		prev := float32(0)
		for i := 1; i <= 100; i++ {
			v := f(float32(i) / 100)
			if v < prev-1e-6 {
				t.Errorf("%s not monotonic at t=%v: %v < %v", name, float32(i)/100, v, prev)
				break
			}
			prev = v
		}
	}
}

func TestEasingByName(t *testing.T) {
	if _, ok := EasingByName("cubic"); !ok {
		t.Error("cubic should resolve")
	}
	if _, ok := EasingByName(""); !ok {
		t.Error("empty name should resolve to linear")
	}

	f, ok := EasingByName("bounce")
	if ok {
		t.Error("unknown easing name should report failure")
	}
	if f(0.3) != 0.3 {
		t.Error("unknown easing should fall back to linear")
	}
}
