// Package collide implements the narrow phase of collision detection:
// exact pairwise interference tests between the edges of two polygons,
// behind the O(1) bounding-circle rejection filter, and the accuracy
// refinement of collision records after the time-stepping controller
// has backed up close to the impact time.
package collide

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yea55/rigid2d/body"
	"github.com/yea55/rigid2d/constraint"
)

// TestPair runs every edge-by-edge and vertex-by-edge combination of
// two bodies and returns the interference candidates whose separation
// is within tol. Each physical contact appears once; iteration order
// is the bodies' edge order, so results are deterministic.
func TestPair(a, b *body.RigidBody, now, tol float64) []*constraint.Contact {
	var contacts []*constraint.Contact

	for _, ea := range a.Edges() {
		for _, eb := range b.Edges() {
			if !body.IntersectionPossible(ea, eb, tol) {
				continue
			}
			for _, c := range testEdgePair(ea, eb, now, tol) {
				if c.Distance <= tol {
					contacts = append(contacts, c)
				}
			}
		}
	}

	// Decorated midpoint vertices sample curved boundaries that the
	// closed-form pair tests cannot cover.
	contacts = append(contacts, decoratedContacts(a, b, now, tol)...)
	contacts = append(contacts, decoratedContacts(b, a, now, tol)...)

	return contacts
}

// decoratedContacts tests the decorated vertices of `of` against every
// edge of `on`.
func decoratedContacts(of, on *body.RigidBody, now, tol float64) []*constraint.Contact {
	var contacts []*constraint.Contact
	for _, v := range of.Vertices() {
		if !v.Decorated {
			continue
		}
		w := v.World(of.Transform)
		for _, e := range on.Edges() {
			if w.Sub(e.CentroidWorld()).Len() > e.CentroidRadius()+tol {
				continue
			}
			d := e.DistanceToPoint(w)
			if math.IsInf(d, 1) || d < -tol || d > tol {
				continue
			}
			n := e.NormalAt(w)
			c := newContact(of, on, w.Sub(n.Mul(d)), n, d, now)
			c.VertexA = v
			c.EdgeA = v.Edge1
			c.EdgeB = e
			contacts = append(contacts, c)
		}
	}
	return contacts
}

// testEdgePair dispatches on the closed set of edge variants. Records
// are oriented so that BodyA is the body being pushed out along the
// other body's outward edge normal.
func testEdgePair(ea, eb body.Edge, now, tol float64) []*constraint.Contact {
	switch e1 := ea.(type) {
	case *body.StraightEdge:
		switch e2 := eb.(type) {
		case *body.StraightEdge:
			return straightStraight(e1, e2, now, tol)
		case *body.CircularEdge:
			return circleStraight(e2, e1, now, tol)
		}
	case *body.CircularEdge:
		switch e2 := eb.(type) {
		case *body.StraightEdge:
			return circleStraight(e1, e2, now, tol)
		case *body.CircularEdge:
			return circleCircle(e1, e2, now, tol)
		}
	}
	return nil
}

// newContact fills the derived fields shared by every candidate:
// vertexBody's vertex or edge is pressed against the outward normal of
// edgeOwner's edge.
func newContact(vertexBody, edgeOwner *body.RigidBody, pos, normal mgl64.Vec2, distance, now float64) *constraint.Contact {
	c := &constraint.Contact{
		BodyA:      vertexBody,
		BodyB:      edgeOwner,
		NormalBody: edgeOwner,
		Position:   pos,
		Normal:     normal,
		Distance:   distance,
		Elasticity: constraint.ComputeElasticity(vertexBody.Material, edgeOwner.Material),
		Friction:   constraint.ComputeFriction(vertexBody.Material, edgeOwner.Material),
		DetectedAt: now,
	}
	c.UpdateArms()
	c.UpdateVelocity()
	return c
}

// straightStraight tests two line segments. A crossing yields a single
// collision candidate at the crossing point, carried by the deepest
// penetrating endpoint; otherwise nearby endpoints yield contact
// candidates against the opposite segment.
func straightStraight(e1, e2 *body.StraightEdge, now, tol float64) []*constraint.Contact {
	a1 := e1.V1().World(e1.Body().Transform)
	a2 := e1.V2().World(e1.Body().Transform)
	crossings := e2.Intersect(a1, a2)

	if len(crossings) > 0 {
		if c := crossingContact(e1, e2, crossings[0], now); c != nil {
			return []*constraint.Contact{c}
		}
		return nil
	}

	var contacts []*constraint.Contact
	contacts = append(contacts, endpointContacts(e1, e2, now, tol)...)
	contacts = append(contacts, endpointContacts(e2, e1, now, tol)...)
	return contacts
}

// crossingContact picks the deepest penetrating endpoint among the four
// segment endpoints and records the collision at the crossing point
// with the opposite edge's normal.
func crossingContact(e1, e2 *body.StraightEdge, crossing mgl64.Vec2, now float64) *constraint.Contact {
	type candidate struct {
		vertex     *body.Vertex
		vertexEdge *body.StraightEdge
		normalEdge *body.StraightEdge
		distance   float64
	}
	best := candidate{distance: math.Inf(1)}

	consider := func(v *body.Vertex, own, other *body.StraightEdge) {
		d := other.DistanceToPoint(v.World(own.Body().Transform))
		if d < best.distance {
			best = candidate{vertex: v, vertexEdge: own, normalEdge: other, distance: d}
		}
	}
	consider(e1.V1(), e1, e2)
	consider(e1.V2(), e1, e2)
	consider(e2.V1(), e2, e1)
	consider(e2.V2(), e2, e1)

	if math.IsInf(best.distance, 1) {
		// Crossing without any projecting endpoint: measure the
		// supporting lines instead of the segments.
		consider2 := func(v *body.Vertex, own, other *body.StraightEdge) {
			d := other.DistanceToLine(v.World(own.Body().Transform))
			if d < best.distance {
				best = candidate{vertex: v, vertexEdge: own, normalEdge: other, distance: d}
			}
		}
		consider2(e1.V1(), e1, e2)
		consider2(e1.V2(), e1, e2)
		consider2(e2.V1(), e2, e1)
		consider2(e2.V2(), e2, e1)
	}

	c := newContact(best.vertexEdge.Body(), best.normalEdge.Body(),
		crossing, best.normalEdge.NormalWorld(), best.distance, now)
	c.VertexA = best.vertex
	c.EdgeA = best.vertexEdge
	c.EdgeB = best.normalEdge
	return c
}

// endpointContacts produces contact candidates for the endpoints of
// edge `of` resting near edge `on`.
func endpointContacts(of, on *body.StraightEdge, now, tol float64) []*constraint.Contact {
	var contacts []*constraint.Contact
	for _, v := range []*body.Vertex{of.V1(), of.V2()} {
		w := v.World(of.Body().Transform)
		d := on.DistanceToPoint(w)
		if math.IsInf(d, 1) || d < -tol || d > tol {
			continue
		}
		pos, _ := on.Project(w)
		c := newContact(of.Body(), on.Body(), pos, on.NormalWorld(), d, now)
		c.VertexA = v
		c.EdgeA = of
		c.EdgeB = on
		contacts = append(contacts, c)
	}
	return contacts
}

// circleStraight tests a circular arc against a line segment using the
// circle/line closed form, plus the segment's endpoints against the
// arc for corner-on-ball contacts.
func circleStraight(arc *body.CircularEdge, seg *body.StraightEdge, now, tol float64) []*constraint.Contact {
	var contacts []*constraint.Contact

	center := arc.CenterWorld()
	foot, within := seg.Project(center)
	dc := seg.DistanceToLine(center)
	// The center must sit on the outward side of the segment's line;
	// otherwise the nearest surface point faces away from the edge.
	if within && dc > 0 {
		n := seg.NormalWorld()
		surface := center.Sub(n.Mul(arc.Radius()))
		if arc.Complete() || arcContains(arc, surface) {
			c := newContact(arc.Body(), seg.Body(), foot, n, dc-arc.Radius(), now)
			c.EdgeA = arc
			c.EdgeB = seg
			contacts = append(contacts, c)
		}
	}

	// Segment corners against the arc surface.
	for _, v := range []*body.Vertex{seg.V1(), seg.V2()} {
		w := v.World(seg.Body().Transform)
		d := arc.DistanceToPoint(w)
		if math.IsInf(d, 1) || d < -tol || d > tol {
			continue
		}
		n := arc.NormalAt(w)
		pos := center.Add(n.Mul(arc.Radius()))
		c := newContact(seg.Body(), arc.Body(), pos, n, d, now)
		c.VertexA = v
		c.EdgeA = seg
		c.EdgeB = arc
		contacts = append(contacts, c)
	}

	return contacts
}

// circleCircle tests two convex arcs by the distance of their centers.
func circleCircle(e1, e2 *body.CircularEdge, now, tol float64) []*constraint.Contact {
	c1 := e1.CenterWorld()
	c2 := e2.CenterWorld()
	span := c1.Sub(c2)
	dist := span.Len()
	if dist == 0 {
		// Concentric arcs have no separating direction.
		return nil
	}

	n := span.Mul(1 / dist)
	d := dist - e1.Radius() - e2.Radius()
	pos := c2.Add(n.Mul(e2.Radius() + d/2))

	if !e1.Complete() && !arcContains(e1, c1.Sub(n.Mul(e1.Radius()))) {
		return nil
	}
	if !e2.Complete() && !arcContains(e2, pos) {
		return nil
	}

	c := newContact(e1.Body(), e2.Body(), pos, n, d, now)
	c.EdgeA = e1
	c.EdgeB = e2
	return []*constraint.Contact{c}
}

// arcContains reports whether a world point falls within the arc's
// angular range. DistanceToPoint is +Inf outside the range.
func arcContains(arc *body.CircularEdge, p mgl64.Vec2) bool {
	return !math.IsInf(arc.DistanceToPoint(p), 1)
}
