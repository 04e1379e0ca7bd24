package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ClampFloat clamps num between min and max.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	} else if num > max {
		return max
	}
	return num
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// SnapToZero zeroes v if its magnitude is below eps.
func SnapToZero(v, eps float32) float32 {
	if math32.Abs(v) < eps {
		return 0
	}
	return v
}

// Horizontal returns the X and Y components of v.
func Horizontal(v mgl32.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{v[0], v[1]}
}

// WithHorizontal returns v with its X and Y components replaced by h.
func WithHorizontal(v mgl32.Vec3, h mgl32.Vec2) mgl32.Vec3 {
	return mgl32.Vec3{h[0], h[1], v[2]}
}

// FacingVector returns the unit direction of a facing angle in radians.
func FacingVector(facing float32) mgl32.Vec2 {
	return mgl32.Vec2{math32.Cos(facing), math32.Sin(facing)}
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
