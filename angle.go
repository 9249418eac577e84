package orrery

import "math"

// NormalizeAngle wraps degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// AngleDifference returns the smallest unsigned difference between two angles
// in degrees. The result is symmetric and lies in [0, 180]; it is wrap-aware,
// so AngleDifference(10, 350) == 20.
func AngleDifference(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	return math.Min(d, 360-d)
}

// VectorAngle returns the direction of v in degrees in [0, 360), measured
// counter-clockwise from +X. v is interpreted in a Y-up frame.
func VectorAngle(v Vec2) float64 {
	return NormalizeAngle(math.Atan2(v.Y, v.X) * 180 / math.Pi)
}

// screenToYUp converts a screen-space displacement (Y down) to a Y-up vector.
func screenToYUp(d Vec2) Vec2 {
	return Vec2{d.X, -d.Y}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
