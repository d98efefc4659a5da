package rigid2d

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yea55/rigid2d/body"
)

// Force is one contribution to a body's force accumulation for the
// coming integration interval: a linear force acting at a world point
// plus an optional pure torque.
type Force struct {
	Body   *body.RigidBody
	Linear mgl64.Vec2
	At     mgl64.Vec2
	Torque float64
}

func (f Force) apply() {
	f.Body.AddForceAt(f.Linear, f.At)
	if f.Torque != 0 {
		f.Body.AddTorque(f.Torque)
	}
}

// ForceLaw produces forces from the current state of the simulation.
// External contributors (drag springs, thrusters, user input) register
// through this interface; the engine treats them as opaque.
type ForceLaw interface {
	CalculateForces(bodies []*body.RigidBody, t float64) []Force
}

// GravityLaw applies a uniform gravitational acceleration to every
// dynamic body.
type GravityLaw struct {
	Gravity mgl64.Vec2
}

func (g GravityLaw) CalculateForces(bodies []*body.RigidBody, t float64) []Force {
	forces := make([]Force, 0, len(bodies))
	for _, rb := range bodies {
		if rb.BodyType == body.BodyTypeStatic {
			continue
		}
		forces = append(forces, Force{
			Body:   rb,
			Linear: g.Gravity.Mul(rb.Material.GetMass()),
			At:     rb.Transform.Position,
		})
	}
	return forces
}

// PotentialEnergy is the gravitational potential of all dynamic bodies
// relative to the world origin.
func (g GravityLaw) PotentialEnergy(bodies []*body.RigidBody) float64 {
	var pe float64
	for _, rb := range bodies {
		if rb.BodyType == body.BodyTypeStatic {
			continue
		}
		pe -= rb.Material.GetMass() * g.Gravity.Dot(rb.Transform.Position)
	}
	return pe
}

// DampingLaw applies forces proportional and opposite to each dynamic
// body's linear and angular velocity.
type DampingLaw struct {
	Linear  float64
	Angular float64
}

func (d DampingLaw) CalculateForces(bodies []*body.RigidBody, t float64) []Force {
	forces := make([]Force, 0, len(bodies))
	for _, rb := range bodies {
		if rb.BodyType == body.BodyTypeStatic {
			continue
		}
		forces = append(forces, Force{
			Body:   rb,
			Linear: rb.Velocity.Mul(-d.Linear),
			At:     rb.Transform.Position,
			Torque: -d.Angular * rb.AngularVelocity,
		})
	}
	return forces
}

// Spring connects attachment points on two bodies with a linear spring
// and optional damping. With BodyB nil the second end is fixed at the
// world point AnchorB. A drag spring from user input is exactly this
// with a moving anchor.
type Spring struct {
	BodyA *body.RigidBody
	BodyB *body.RigidBody

	// AnchorA/AnchorB are body-local, except AnchorB is a world point
	// when BodyB is nil.
	AnchorA mgl64.Vec2
	AnchorB mgl64.Vec2

	Stiffness  float64
	RestLength float64
	Damping    float64
}

func (s *Spring) CalculateForces(bodies []*body.RigidBody, t float64) []Force {
	pA := s.BodyA.Transform.ToWorld(s.AnchorA)
	pB := s.AnchorB
	if s.BodyB != nil {
		pB = s.BodyB.Transform.ToWorld(s.AnchorB)
	}

	span := pB.Sub(pA)
	length := span.Len()
	if length == 0 {
		return nil
	}
	dir := span.Mul(1 / length)

	magnitude := s.Stiffness * (length - s.RestLength)
	if s.Damping > 0 {
		vB := mgl64.Vec2{}
		if s.BodyB != nil {
			vB = s.BodyB.VelocityAt(pB)
		}
		magnitude += s.Damping * dir.Dot(vB.Sub(s.BodyA.VelocityAt(pA)))
	}

	forces := []Force{{Body: s.BodyA, Linear: dir.Mul(magnitude), At: pA}}
	if s.BodyB != nil {
		forces = append(forces, Force{Body: s.BodyB, Linear: dir.Mul(-magnitude), At: pB})
	}
	return forces
}

// PotentialEnergy is the elastic energy stored in the spring.
func (s *Spring) PotentialEnergy(bodies []*body.RigidBody) float64 {
	pA := s.BodyA.Transform.ToWorld(s.AnchorA)
	pB := s.AnchorB
	if s.BodyB != nil {
		pB = s.BodyB.Transform.ToWorld(s.AnchorB)
	}
	stretch := pB.Sub(pA).Len() - s.RestLength
	return 0.5 * s.Stiffness * stretch * stretch
}
