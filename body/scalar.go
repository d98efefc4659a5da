package body

import (
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/exp/constraints"
)

// Cross returns the scalar 2D cross product a.X*b.Y - a.Y*b.X.
// Its sign gives the winding of b relative to a.
func Cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// CrossScalar returns w × v for a scalar angular velocity w,
// the 2D analogue of the 3D cross product with the z axis.
func CrossScalar(w float64, v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-w * v.Y(), w * v.X()}
}

// Perp returns v rotated 90° counter-clockwise.
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

// Clamp restricts x to the range [lo, hi].
func Clamp[T constraints.Float](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp linearly interpolates between a and b by t in [0,1].
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}
