package constraint

import (
	"math"

	"github.com/yea55/rigid2d/body"
)

// Resolve applies the instantaneous impulse for an actual collision so
// the post-impact relative normal velocity equals -e times the
// pre-impact one, splitting the velocity change between both bodies
// according to their mass and moment of inertia. A tangential impulse
// capped by Coulomb's law removes sliding velocity. Only velocities
// are mutated; positions are untouched.
//
// Returns the magnitude of the normal impulse applied.
func Resolve(c *Contact) float64 {
	bodyA := c.BodyA
	bodyB := c.BodyB
	n := c.Normal

	invMassA := bodyA.InvMass()
	invMassB := bodyB.InvMass()
	invIA := bodyA.InvInertia()
	invIB := bodyB.InvInertia()

	rel := bodyA.VelocityAt(c.Position).Sub(bodyB.VelocityAt(c.Position))
	vn := n.Dot(rel)
	if vn >= 0 {
		// Already separating, nothing to undo.
		return 0
	}

	raCrossN := body.Cross(c.RA, n)
	rbCrossN := body.Cross(c.RB, n)
	kn := invMassA + invMassB + raCrossN*raCrossN*invIA + rbCrossN*rbCrossN*invIB
	if kn < 1e-12 {
		return 0
	}

	j := -(1 + c.Elasticity) * vn / kn
	impulse := n.Mul(j)

	bodyA.Velocity = bodyA.Velocity.Add(impulse.Mul(invMassA))
	bodyA.AngularVelocity += body.Cross(c.RA, impulse) * invIA
	bodyB.Velocity = bodyB.Velocity.Sub(impulse.Mul(invMassB))
	bodyB.AngularVelocity -= body.Cross(c.RB, impulse) * invIB

	if c.Friction > 0 {
		resolveFriction(c, j)
	}

	return j
}

// resolveFriction applies the tangential impulse, bounded by mu times
// the normal impulse magnitude.
func resolveFriction(c *Contact, normalImpulse float64) {
	bodyA := c.BodyA
	bodyB := c.BodyB

	t := body.Perp(c.Normal)
	rel := bodyA.VelocityAt(c.Position).Sub(bodyB.VelocityAt(c.Position))
	vt := t.Dot(rel)
	if math.Abs(vt) < 1e-12 {
		return
	}

	invMassA := bodyA.InvMass()
	invMassB := bodyB.InvMass()
	invIA := bodyA.InvInertia()
	invIB := bodyB.InvInertia()

	raCrossT := body.Cross(c.RA, t)
	rbCrossT := body.Cross(c.RB, t)
	kt := invMassA + invMassB + raCrossT*raCrossT*invIA + rbCrossT*rbCrossT*invIB
	if kt < 1e-12 {
		return
	}

	jt := -vt / kt
	maxFriction := c.Friction * math.Abs(normalImpulse)
	jt = body.Clamp(jt, -maxFriction, maxFriction)

	impulse := t.Mul(jt)
	bodyA.Velocity = bodyA.Velocity.Add(impulse.Mul(invMassA))
	bodyA.AngularVelocity += body.Cross(c.RA, impulse) * invIA
	bodyB.Velocity = bodyB.Velocity.Sub(impulse.Mul(invMassB))
	bodyB.AngularVelocity -= body.Cross(c.RB, impulse) * invIB
}
