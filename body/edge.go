package body

import "github.com/go-gl/mathgl/mgl64"

// Edge is one piece of a polygon's boundary. The boundary is a closed
// loop of edges: edge i ends at the vertex where edge i+1 starts.
// Edges are owned by their polygon and hold a non-owning reference
// back to it for coordinate transforms.
//
// The concrete variants form a closed set: StraightEdge and
// CircularEdge. Pairwise interference tests dispatch on the concrete
// type rather than on runtime capability probing.
type Edge interface {
	// Body returns the polygon this edge belongs to.
	Body() *RigidBody
	// Index is the edge's position in the polygon's ordered edge list.
	Index() int
	V1() *Vertex
	V2() *Vertex

	// Centroid returns the edge's centroid in body coordinates.
	Centroid() mgl64.Vec2
	// CentroidRadius is the maximum distance from the centroid to any
	// point on the edge, the radius of the edge's bounding circle.
	CentroidRadius() float64
	// CentroidWorld returns the centroid in world coordinates.
	CentroidWorld() mgl64.Vec2

	// DistanceToLine returns the signed distance from a world point to
	// the edge's supporting line or circle. Positive means outside the
	// body on this edge's side.
	DistanceToLine(p mgl64.Vec2) float64
	// DistanceToPoint returns the signed distance from a world point to
	// the edge along its outward normal, or +Inf when the point does
	// not project onto the edge.
	DistanceToPoint(p mgl64.Vec2) float64
	// NormalAt returns the outward unit normal, in world coordinates,
	// at the point of the edge nearest to the given world point.
	NormalAt(p mgl64.Vec2) mgl64.Vec2
	// Curvature returns the edge curvature: zero for straight edges,
	// 1/radius for convex circular edges.
	Curvature() float64
	// Intersect returns the 0, 1 or 2 points where the world segment
	// p1-p2 crosses this edge.
	Intersect(p1, p2 mgl64.Vec2) []mgl64.Vec2
}

// IntersectionPossible is the broad-phase filter for a pair of edges:
// an O(1) bounding-circle rejection test. It must never reject a pair
// whose exact geometries are within swell of each other.
func IntersectionPossible(a, b Edge, swell float64) bool {
	d := a.CentroidWorld().Sub(b.CentroidWorld()).Len()
	return d <= a.CentroidRadius()+b.CentroidRadius()+swell
}

// edgeBase carries the state shared by all edge variants: the owning
// body, the loop index, the boundary vertices, and the lazily computed
// bounding-circle cache.
type edgeBase struct {
	body  *RigidBody
	index int
	v1    *Vertex
	v2    *Vertex

	centroid       mgl64.Vec2
	centroidRadius float64
	centroidOK     bool
}

func (e *edgeBase) Body() *RigidBody { return e.body }
func (e *edgeBase) Index() int       { return e.index }
func (e *edgeBase) V1() *Vertex      { return e.v1 }
func (e *edgeBase) V2() *Vertex      { return e.v2 }
