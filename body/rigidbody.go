package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by forces and collisions
	// They have finite mass and can move freely
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable and have infinite mass
	// They are not affected by forces (e.g., floor, walls)
	BodyTypeStatic
)

type Material struct {
	Density    float64
	mass       float64
	Elasticity float64 // 0 = no rebound, 1 = perfect restitution
	Friction   float64
}

func (material Material) GetMass() float64 {
	return material.mass
}

// RigidBody is a polygon: a closed, counter-clockwise loop of edges
// with mass, moment of inertia, a world transform and velocities. The
// body exclusively owns its edges and vertices; edges hold a back
// reference for coordinate transforms.
type RigidBody struct {
	Name string

	Transform       Transform
	Velocity        mgl64.Vec2 // Linear velocity of the center of mass (m/s)
	AngularVelocity float64    // Rotation speed (rad/s)

	Material Material
	BodyType BodyType

	inertia        float64 // moment of inertia about the center of mass
	boundingRadius float64

	edges    []Edge
	vertices []*Vertex

	accumulatedForce  mgl64.Vec2
	accumulatedTorque float64
}

// Edges returns the body's ordered edge loop.
func (rb *RigidBody) Edges() []Edge { return rb.edges }

// Vertices returns all vertices, boundary and decorated.
func (rb *RigidBody) Vertices() []*Vertex { return rb.vertices }

// Inertia returns the moment of inertia about the center of mass.
func (rb *RigidBody) Inertia() float64 { return rb.inertia }

// BoundingRadius is the radius of the bounding circle around the
// center of mass covering the whole boundary.
func (rb *RigidBody) BoundingRadius() float64 { return rb.boundingRadius }

// GetAABB returns the world-space bounding box of the bounding circle.
func (rb *RigidBody) GetAABB() AABB {
	r := mgl64.Vec2{rb.boundingRadius, rb.boundingRadius}
	return AABB{
		Min: rb.Transform.Position.Sub(r),
		Max: rb.Transform.Position.Add(r),
	}
}

func (rb *RigidBody) InvMass() float64 {
	if rb.BodyType == BodyTypeStatic {
		return 0
	}
	return 1 / rb.Material.GetMass()
}

func (rb *RigidBody) InvInertia() float64 {
	if rb.BodyType == BodyTypeStatic {
		return 0
	}
	return 1 / rb.inertia
}

// AddForce accumulates a force acting at the center of mass.
func (rb *RigidBody) AddForce(force mgl64.Vec2) {
	if rb.BodyType != BodyTypeStatic {
		rb.accumulatedForce = rb.accumulatedForce.Add(force)
	}
}

// AddForceAt accumulates a force acting at a world point, contributing
// torque about the center of mass.
func (rb *RigidBody) AddForceAt(force mgl64.Vec2, at mgl64.Vec2) {
	if rb.BodyType != BodyTypeStatic {
		rb.accumulatedForce = rb.accumulatedForce.Add(force)
		rb.accumulatedTorque += Cross(at.Sub(rb.Transform.Position), force)
	}
}

// AddTorque accumulates a pure torque (N·m).
func (rb *RigidBody) AddTorque(torque float64) {
	if rb.BodyType != BodyTypeStatic {
		rb.accumulatedTorque += torque
	}
}

func (rb *RigidBody) ClearForces() {
	rb.accumulatedForce = mgl64.Vec2{}
	rb.accumulatedTorque = 0
}

// Force returns the currently accumulated force.
func (rb *RigidBody) Force() mgl64.Vec2 { return rb.accumulatedForce }

// Torque returns the currently accumulated torque.
func (rb *RigidBody) Torque() float64 { return rb.accumulatedTorque }

// Integrate advances the body by dt with semi-implicit Euler using the
// accumulated force and torque. The accumulators are left untouched so
// a backtracked trial can re-integrate from a restored state.
func (rb *RigidBody) Integrate(dt float64) {
	if rb.BodyType == BodyTypeStatic {
		return
	}

	rb.Velocity = rb.Velocity.Add(rb.accumulatedForce.Mul(dt / rb.Material.GetMass()))
	rb.AngularVelocity += rb.accumulatedTorque * dt / rb.inertia

	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))
	rb.Transform.SetAngle(rb.Transform.Angle + rb.AngularVelocity*dt)
}

// State is the part of a body mutated by integration, captured for
// backtracking to the start of a trial step.
type State struct {
	Transform       Transform
	Velocity        mgl64.Vec2
	AngularVelocity float64
}

func (rb *RigidBody) State() State {
	return State{
		Transform:       rb.Transform,
		Velocity:        rb.Velocity,
		AngularVelocity: rb.AngularVelocity,
	}
}

func (rb *RigidBody) SetState(s State) {
	rb.Transform = s.Transform
	rb.Velocity = s.Velocity
	rb.AngularVelocity = s.AngularVelocity
}

// VelocityAt returns the velocity of the body material at a world point.
func (rb *RigidBody) VelocityAt(p mgl64.Vec2) mgl64.Vec2 {
	return rb.Velocity.Add(CrossScalar(rb.AngularVelocity, p.Sub(rb.Transform.Position)))
}

// KineticEnergy returns the body's translational plus rotational
// kinetic energy. Static bodies carry none.
func (rb *RigidBody) KineticEnergy() float64 {
	if rb.BodyType == BodyTypeStatic {
		return 0
	}
	m := rb.Material.GetMass()
	v2 := rb.Velocity.Dot(rb.Velocity)
	return 0.5*m*v2 + 0.5*rb.inertia*rb.AngularVelocity*rb.AngularVelocity
}

// Accel returns the linear acceleration implied by the accumulated force.
func (rb *RigidBody) Accel() mgl64.Vec2 {
	if rb.BodyType == BodyTypeStatic {
		return mgl64.Vec2{}
	}
	return rb.accumulatedForce.Mul(1 / rb.Material.GetMass())
}

// AngularAccel returns the angular acceleration implied by the
// accumulated torque.
func (rb *RigidBody) AngularAccel() float64 {
	if rb.BodyType == BodyTypeStatic {
		return 0
	}
	return rb.accumulatedTorque / rb.inertia
}

// ContainsLocal reports whether a body-frame point is inside the
// body's bounding circle. Joint attachment points are validated with
// this at registration.
func (rb *RigidBody) ContainsLocal(p mgl64.Vec2) bool {
	return p.Len() <= rb.boundingRadius+1e-12
}

func staticMaterial() Material {
	return Material{mass: math.Inf(1)}
}
