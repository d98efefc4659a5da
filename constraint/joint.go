package constraint

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yea55/rigid2d/body"
)

// Joint is a bilateral constraint pinning an attachment point on one
// body to an attachment point on another (or to a fixed world anchor).
// Each step it expands into two zero-distance bidirectional contacts,
// one per world axis, solved by the same contact force solver as
// unilateral contacts.
type Joint struct {
	BodyA *body.RigidBody
	BodyB *body.RigidBody

	// Attachment points in each body's local frame.
	AnchorA mgl64.Vec2
	AnchorB mgl64.Vec2
}

// NewJoint creates a body-to-body joint. Attachment points are
// validated against each body's bounding circle at registration.
func NewJoint(bodyA, bodyB *body.RigidBody, anchorA, anchorB mgl64.Vec2) (*Joint, error) {
	if bodyA == nil || bodyB == nil {
		return nil, fmt.Errorf("joint needs two bodies: %w", body.ErrConfiguration)
	}
	if bodyA == bodyB {
		return nil, fmt.Errorf("joint cannot connect %q to itself: %w", bodyA.Name, body.ErrConfiguration)
	}
	if bodyA.BodyType == body.BodyTypeStatic && bodyB.BodyType == body.BodyTypeStatic {
		return nil, fmt.Errorf("joint between two immovable bodies: %w", body.ErrConfiguration)
	}
	if !bodyA.ContainsLocal(anchorA) {
		return nil, fmt.Errorf("attachment point outside body %q: %w", bodyA.Name, body.ErrConfiguration)
	}
	if !bodyB.ContainsLocal(anchorB) {
		return nil, fmt.Errorf("attachment point outside body %q: %w", bodyB.Name, body.ErrConfiguration)
	}

	return &Joint{BodyA: bodyA, BodyB: bodyB, AnchorA: anchorA, AnchorB: anchorB}, nil
}

// NewFixedJoint pins an attachment point on a body to a fixed world
// position, using an internal static anchor body as the second side.
func NewFixedJoint(bodyA *body.RigidBody, anchorA, worldPoint mgl64.Vec2) (*Joint, error) {
	if bodyA == nil {
		return nil, fmt.Errorf("fixed joint needs a body: %w", body.ErrConfiguration)
	}
	if bodyA.BodyType == body.BodyTypeStatic {
		return nil, fmt.Errorf("fixed joint on immovable body %q: %w", bodyA.Name, body.ErrConfiguration)
	}
	if !bodyA.ContainsLocal(anchorA) {
		return nil, fmt.Errorf("attachment point outside body %q: %w", bodyA.Name, body.ErrConfiguration)
	}

	anchor := body.NewAnchor(bodyA.Name+".anchor", worldPoint)
	return &Joint{BodyA: bodyA, BodyB: anchor, AnchorA: anchorA}, nil
}

// Connects reports whether the joint ties the two given bodies.
func (j *Joint) Connects(a, b *body.RigidBody) bool {
	return (j.BodyA == a && j.BodyB == b) || (j.BodyA == b && j.BodyB == a)
}

// Contacts expands the joint into its two bilateral contact records
// for the current transforms.
func (j *Joint) Contacts(now float64) []*Contact {
	pA := j.BodyA.Transform.ToWorld(j.AnchorA)
	pB := j.BodyB.Transform.ToWorld(j.AnchorB)
	mid := pA.Add(pB).Mul(0.5)
	offset := pA.Sub(pB)

	axes := [2]mgl64.Vec2{{1, 0}, {0, 1}}
	contacts := make([]*Contact, 0, 2)
	for _, axis := range axes {
		c := &Contact{
			BodyA:      j.BodyA,
			BodyB:      j.BodyB,
			Position:   mid,
			Normal:     axis,
			Distance:   axis.Dot(offset),
			Bilateral:  true,
			DetectedAt: now,
		}
		c.UpdateArms()
		c.UpdateVelocity()
		contacts = append(contacts, c)
	}

	return contacts
}
