package body

import "github.com/go-gl/mathgl/mgl64"

// Vertex is a point in a body's local coordinate frame. Adjacent edges
// of the polygon share their boundary vertices. Decorated vertices are
// midpoint insertions along curved edges; they are not part of the edge
// loop but participate in vertex-on-edge proximity tests to improve the
// sampling of curved boundaries.
type Vertex struct {
	Local     mgl64.Vec2
	Decorated bool

	// Edges meeting at this vertex; decorated vertices only have Edge1.
	Edge1 Edge
	Edge2 Edge
}

// World returns the vertex position in world coordinates for the given
// body transform.
func (v *Vertex) World(t Transform) mgl64.Vec2 {
	return t.ToWorld(v.Local)
}
