package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CircularEdge is a convex circular arc between two boundary vertices,
// curving around a center point given in body coordinates. A complete
// edge is a full circle whose start and end vertex coincide, used for
// ball-shaped bodies.
type CircularEdge struct {
	edgeBase
	center   mgl64.Vec2
	radius   float64
	complete bool
	// Arc angular range, counter-clockwise from angle1 to angle2,
	// with angle2 > angle1. Unused when complete.
	angle1 float64
	angle2 float64
}

func newCircularEdge(body *RigidBody, index int, v1, v2 *Vertex, center mgl64.Vec2) *CircularEdge {
	e := &CircularEdge{
		edgeBase: edgeBase{body: body, index: index, v1: v1, v2: v2},
		center:   center,
		radius:   v1.Local.Sub(center).Len(),
	}

	if v1 == v2 || v1.Local.Sub(v2.Local).Len() == 0 {
		e.complete = true
		return e
	}

	d1 := v1.Local.Sub(center)
	d2 := v2.Local.Sub(center)
	e.angle1 = math.Atan2(d1.Y(), d1.X())
	e.angle2 = math.Atan2(d2.Y(), d2.X())
	for e.angle2 <= e.angle1 {
		e.angle2 += 2 * math.Pi
	}

	return e
}

// Complete reports whether the edge is a full circle.
func (e *CircularEdge) Complete() bool { return e.complete }

// Radius returns the arc radius.
func (e *CircularEdge) Radius() float64 { return e.radius }

// CenterWorld returns the arc center in world coordinates.
func (e *CircularEdge) CenterWorld() mgl64.Vec2 {
	return e.body.Transform.ToWorld(e.center)
}

// withinArc reports whether a body-frame direction angle falls in the
// arc's angular range.
func (e *CircularEdge) withinArc(theta float64) bool {
	if e.complete {
		return true
	}
	for theta < e.angle1 {
		theta += 2 * math.Pi
	}
	return theta <= e.angle2
}

// containsWorld reports whether the world point's direction from the
// center falls in the arc's angular range.
func (e *CircularEdge) containsWorld(p mgl64.Vec2) bool {
	if e.complete {
		return true
	}
	d := e.body.Transform.ToBody(p).Sub(e.center)
	return e.withinArc(math.Atan2(d.Y(), d.X()))
}

func (e *CircularEdge) Centroid() mgl64.Vec2 {
	// The full circle around the center bounds any arc of it; the
	// conservative cache keeps the broad-phase test false-negative free.
	return e.center
}

func (e *CircularEdge) CentroidRadius() float64 { return e.radius }

func (e *CircularEdge) CentroidWorld() mgl64.Vec2 {
	return e.body.Transform.ToWorld(e.center)
}

func (e *CircularEdge) DistanceToLine(p mgl64.Vec2) float64 {
	return p.Sub(e.CenterWorld()).Len() - e.radius
}

func (e *CircularEdge) DistanceToPoint(p mgl64.Vec2) float64 {
	if !e.containsWorld(p) {
		return math.Inf(1)
	}
	return p.Sub(e.CenterWorld()).Len() - e.radius
}

func (e *CircularEdge) NormalAt(p mgl64.Vec2) mgl64.Vec2 {
	d := p.Sub(e.CenterWorld())
	length := d.Len()
	if length == 0 {
		// Degenerate query at the exact center; any direction works.
		return mgl64.Vec2{1, 0}
	}
	return d.Mul(1 / length)
}

func (e *CircularEdge) Curvature() float64 { return 1 / e.radius }

// Intersect computes the crossings of the world segment p1-p2 with the
// arc by the circle/line closed form, keeping only roots within the
// segment's parameter range and the arc's angular range.
func (e *CircularEdge) Intersect(p1, p2 mgl64.Vec2) []mgl64.Vec2 {
	c := e.CenterWorld()
	d := p2.Sub(p1)
	f := p1.Sub(c)

	a := d.Dot(d)
	if a == 0 {
		return nil
	}
	b := 2 * f.Dot(d)
	cc := f.Dot(f) - e.radius*e.radius

	disc := b*b - 4*a*cc
	if disc < 0 {
		return nil
	}
	sqrtDisc := math.Sqrt(disc)

	var points []mgl64.Vec2
	for _, u := range []float64{(-b - sqrtDisc) / (2 * a), (-b + sqrtDisc) / (2 * a)} {
		if u < 0 || u > 1 {
			continue
		}
		p := p1.Add(d.Mul(u))
		if e.containsWorld(p) {
			points = append(points, p)
		}
	}
	if disc == 0 && len(points) == 2 {
		// Tangent grazing produces one geometric point
		points = points[:1]
	}

	return points
}
