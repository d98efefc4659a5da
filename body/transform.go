package body

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a body's placement in the 2D world:
// a translation plus a rotation around the center of mass.
type Transform struct {
	Position mgl64.Vec2
	Angle    float64

	rotation mgl64.Mat2
	inverse  mgl64.Mat2
}

// NewTransform creates a transform at the given position and orientation.
func NewTransform(position mgl64.Vec2, angle float64) Transform {
	t := Transform{Position: position}
	t.SetAngle(angle)
	return t
}

// SetAngle updates the orientation and refreshes the cached rotation matrices.
func (t *Transform) SetAngle(angle float64) {
	t.Angle = angle
	t.rotation = mgl64.Rotate2D(angle)
	t.inverse = t.rotation.Transpose()
}

// ToWorld transforms a point from body coordinates to world coordinates.
func (t Transform) ToWorld(local mgl64.Vec2) mgl64.Vec2 {
	return t.rotation.Mul2x1(local).Add(t.Position)
}

// ToBody transforms a point from world coordinates to body coordinates.
func (t Transform) ToBody(world mgl64.Vec2) mgl64.Vec2 {
	return t.inverse.Mul2x1(world.Sub(t.Position))
}

// DirToWorld rotates a direction from body space to world space.
func (t Transform) DirToWorld(local mgl64.Vec2) mgl64.Vec2 {
	return t.rotation.Mul2x1(local)
}

// DirToBody rotates a direction from world space to body space.
func (t Transform) DirToBody(world mgl64.Vec2) mgl64.Vec2 {
	return t.inverse.Mul2x1(world)
}
