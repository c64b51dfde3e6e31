package morph

import gomath "math"

// Easing maps linear transition time in [0,1] to interpolation progress
// in [0,1]. Every curve is anchored: f(0) = 0 and f(1) = 1.
type Easing func(t float32) float32

// Linear is the identity curve.
func Linear(t float32) float32 { return t }

// QuadInOut accelerates, then decelerates, quadratically.
func QuadInOut(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

// CubicInOut accelerates, then decelerates, cubically.
func CubicInOut(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 1 - t
	return 1 - 4*u*u*u
}

// SineInOut follows a half cosine wave.
func SineInOut(t float32) float32 {
	return float32(0.5 - 0.5*gomath.Cos(gomath.Pi*float64(t)))
}

// EasingByName resolves a config easing name. The second return is false
// for unknown names, with Linear as the fallback curve.
func EasingByName(name string) (Easing, bool) {
	switch name {
	case "", "linear":
		return Linear, true
	case "quad":
		return QuadInOut, true
	case "cubic":
		return CubicInOut, true
	case "sine":
		return SineInOut, true
	}
	return Linear, false
}
