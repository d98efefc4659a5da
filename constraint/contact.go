package constraint

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yea55/rigid2d/body"
)

// Contact records one geometric interaction between two bodies: either
// an instantaneous collision (penetrating with closing velocity),
// resolved by impulse, or a persistent contact (near-zero distance),
// resolved by continuous force. Records are created fresh by each
// detection pass and never persist across steps.
type Contact struct {
	BodyA *body.RigidBody
	BodyB *body.RigidBody

	// EdgeA/EdgeB are the interfering edges; one may be nil when a
	// vertex stands in for its edge pair.
	EdgeA body.Edge
	EdgeB body.Edge
	// VertexA is set for vertex-of-A-on-edge-of-B contacts.
	VertexA *body.Vertex

	// NormalBody owns the edge supplying the normal. Nil for
	// joint-generated contacts, whose axes are fixed in the world.
	NormalBody *body.RigidBody

	Position mgl64.Vec2 // world impact point
	Normal   mgl64.Vec2 // unit, pointing from BodyB toward BodyA
	Distance float64    // separation along Normal, negative = penetrating

	// RA/RB are the moment arms from each body's center of mass to the
	// impact point.
	RA mgl64.Vec2
	RB mgl64.Vec2

	NormalVelocity float64 // relative velocity along Normal, negative = closing
	Elasticity     float64
	Friction       float64
	DetectedAt     float64

	// Bilateral contacts come from joints: their force may pull as
	// well as push.
	Bilateral bool
}

// UpdateArms recomputes the moment arms from the current transforms.
func (c *Contact) UpdateArms() {
	c.RA = c.Position.Sub(c.BodyA.Transform.Position)
	c.RB = c.Position.Sub(c.BodyB.Transform.Position)
}

// UpdateVelocity recomputes the relative normal velocity at the impact
// point from the current body velocities.
func (c *Contact) UpdateVelocity() {
	rel := c.BodyA.VelocityAt(c.Position).Sub(c.BodyB.VelocityAt(c.Position))
	c.NormalVelocity = c.Normal.Dot(rel)
}

// IsCollision reports whether the record is an actual impact: bodies
// interpenetrating beyond tolerance and approaching.
func (c *Contact) IsCollision(distanceTol, velocityTol float64) bool {
	if c.Bilateral {
		return false
	}
	return c.Distance < -distanceTol && c.NormalVelocity < -velocityTol
}

// IsContact reports whether the record belongs to the active contact
// set handed to the force solver: separation within tolerance,
// regardless of closing velocity.
func (c *Contact) IsContact(distanceTol float64) bool {
	return c.Distance <= distanceTol
}

// Penetration returns how far the bodies overlap, zero when separated.
func (c *Contact) Penetration() float64 {
	return math.Max(0, -c.Distance)
}

// ComputeElasticity combines two materials' restitution coefficients.
func ComputeElasticity(matA, matB body.Material) float64 {
	return (matA.Elasticity + matB.Elasticity) / 2
}

// ComputeFriction combines two materials' friction coefficients with
// the geometric mean.
func ComputeFriction(matA, matB body.Material) float64 {
	return math.Sqrt(matA.Friction * matB.Friction)
}
