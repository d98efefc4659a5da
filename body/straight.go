package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// StraightEdge is a line segment between two boundary vertices. Its
// outward normal is fixed in body coordinates, perpendicular to the
// segment on the outside of the counter-clockwise vertex loop.
type StraightEdge struct {
	edgeBase
	normal mgl64.Vec2 // body-frame outward unit normal
}

func newStraightEdge(body *RigidBody, index int, v1, v2 *Vertex) *StraightEdge {
	d := v2.Local.Sub(v1.Local)
	length := d.Len()
	// Outward normal of a CCW loop points to the right of the direction
	// of travel.
	n := mgl64.Vec2{d.Y() / length, -d.X() / length}

	return &StraightEdge{
		edgeBase: edgeBase{body: body, index: index, v1: v1, v2: v2},
		normal:   n,
	}
}

func (e *StraightEdge) Centroid() mgl64.Vec2 {
	if !e.centroidOK {
		e.centroid = e.v1.Local.Add(e.v2.Local).Mul(0.5)
		e.centroidRadius = e.v2.Local.Sub(e.v1.Local).Len() / 2
		e.centroidOK = true
	}
	return e.centroid
}

func (e *StraightEdge) CentroidRadius() float64 {
	e.Centroid()
	return e.centroidRadius
}

func (e *StraightEdge) CentroidWorld() mgl64.Vec2 {
	return e.body.Transform.ToWorld(e.Centroid())
}

// NormalWorld returns the outward unit normal in world coordinates.
// It is constant along a straight edge.
func (e *StraightEdge) NormalWorld() mgl64.Vec2 {
	return e.body.Transform.DirToWorld(e.normal)
}

func (e *StraightEdge) DistanceToLine(p mgl64.Vec2) float64 {
	a := e.v1.World(e.body.Transform)
	return e.NormalWorld().Dot(p.Sub(a))
}

func (e *StraightEdge) DistanceToPoint(p mgl64.Vec2) float64 {
	a := e.v1.World(e.body.Transform)
	b := e.v2.World(e.body.Transform)
	d := b.Sub(a)
	t := p.Sub(a).Dot(d) / d.Dot(d)
	if t < 0 || t > 1 {
		return math.Inf(1)
	}
	return e.NormalWorld().Dot(p.Sub(a))
}

// Project returns the point of the supporting line nearest to p and
// whether that point lies within the segment.
func (e *StraightEdge) Project(p mgl64.Vec2) (mgl64.Vec2, bool) {
	a := e.v1.World(e.body.Transform)
	b := e.v2.World(e.body.Transform)
	d := b.Sub(a)
	t := p.Sub(a).Dot(d) / d.Dot(d)
	return a.Add(d.Mul(Clamp(t, 0.0, 1.0))), t >= 0 && t <= 1
}

func (e *StraightEdge) NormalAt(p mgl64.Vec2) mgl64.Vec2 {
	return e.NormalWorld()
}

func (e *StraightEdge) Curvature() float64 { return 0 }

// Intersect computes the crossing of the world segment p1-p2 with this
// edge using the standard two-segment parametric solve. Parallel and
// collinear segments report no crossing.
func (e *StraightEdge) Intersect(p1, p2 mgl64.Vec2) []mgl64.Vec2 {
	a := e.v1.World(e.body.Transform)
	b := e.v2.World(e.body.Transform)
	r := b.Sub(a)
	s := p2.Sub(p1)

	denom := Cross(r, s)
	if denom == 0 {
		return nil
	}

	ap := p1.Sub(a)
	t := Cross(ap, s) / denom
	u := Cross(ap, r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return nil
	}

	return []mgl64.Vec2{a.Add(r.Mul(t))}
}
