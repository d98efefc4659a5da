package body

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrConfiguration reports an invalid body or joint setup, rejected at
// registration time before any step runs.
var ErrConfiguration = errors.New("invalid configuration")

// Number of decorated midpoint vertices inserted along each circular
// edge to sample curved boundaries in vertex-on-edge tests.
const arcDecorations = 8

// NewPolygon creates a dynamic or static body from a counter-clockwise
// vertex loop. The vertices are re-expressed about the polygon's
// centroid, which becomes the center of mass. Mass and moment of
// inertia are computed from the shape and density.
func NewPolygon(name string, loop []mgl64.Vec2, density float64, bodyType BodyType) (*RigidBody, error) {
	if len(loop) < 3 {
		return nil, fmt.Errorf("polygon %q needs at least 3 vertices: %w", name, ErrConfiguration)
	}
	if bodyType == BodyTypeDynamic && density <= 0 {
		return nil, fmt.Errorf("polygon %q needs positive density: %w", name, ErrConfiguration)
	}

	n := len(loop)
	for i := range loop {
		if loop[(i+1)%n].Sub(loop[i]).Len() == 0 {
			return nil, fmt.Errorf("polygon %q has a zero-length edge at %d: %w", name, i, ErrConfiguration)
		}
	}

	// Shoelace area; negative means the loop winds clockwise.
	var area2 float64
	for i := range loop {
		area2 += Cross(loop[i], loop[(i+1)%n])
	}
	if area2 <= 0 {
		return nil, fmt.Errorf("polygon %q must wind counter-clockwise: %w", name, ErrConfiguration)
	}
	area := area2 / 2

	// Centroid of the polygon, the center of mass for uniform density.
	var centroid mgl64.Vec2
	for i := range loop {
		next := loop[(i+1)%n]
		c := Cross(loop[i], next)
		centroid = centroid.Add(loop[i].Add(next).Mul(c))
	}
	centroid = centroid.Mul(1 / (3 * area2))

	local := make([]mgl64.Vec2, n)
	for i := range loop {
		local[i] = loop[i].Sub(centroid)
	}

	rb := &RigidBody{Name: name, BodyType: bodyType, Transform: NewTransform(mgl64.Vec2{}, 0)}

	if bodyType == BodyTypeStatic {
		rb.Material = staticMaterial()
		rb.inertia = math.Inf(1)
	} else {
		mass := density * area
		rb.Material = Material{Density: density, mass: mass}
		rb.inertia = polygonInertia(local, mass)
	}

	vertices := make([]*Vertex, n)
	for i := range local {
		vertices[i] = &Vertex{Local: local[i]}
	}
	for i := range vertices {
		v1 := vertices[i]
		v2 := vertices[(i+1)%n]
		edge := newStraightEdge(rb, i, v1, v2)
		v1.Edge2 = edge
		v2.Edge1 = edge
		rb.edges = append(rb.edges, edge)
	}
	rb.vertices = vertices

	for _, v := range vertices {
		rb.boundingRadius = math.Max(rb.boundingRadius, v.Local.Len())
	}

	return rb, nil
}

// polygonInertia computes the moment of inertia about the origin for a
// uniform polygon with vertices already expressed about the centroid.
func polygonInertia(local []mgl64.Vec2, mass float64) float64 {
	n := len(local)
	var num, den float64
	for i := range local {
		a := local[i]
		b := local[(i+1)%n]
		c := Cross(a, b)
		num += c * (a.Dot(a) + a.Dot(b) + b.Dot(b))
		den += c
	}
	return mass / 6 * num / den
}

// NewBox creates an axis-aligned rectangular body centered on its
// center of mass.
func NewBox(name string, width, height, density float64, bodyType BodyType) (*RigidBody, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("box %q needs positive extent: %w", name, ErrConfiguration)
	}
	w, h := width/2, height/2
	return NewPolygon(name, []mgl64.Vec2{
		{-w, -h},
		{w, -h},
		{w, h},
		{-w, h},
	}, density, bodyType)
}

// NewBall creates a circular body: a single complete circular edge
// around the center of mass, with decorated midpoint vertices for
// vertex-on-edge sampling.
func NewBall(name string, radius, density float64, bodyType BodyType) (*RigidBody, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("ball %q needs positive radius: %w", name, ErrConfiguration)
	}
	if bodyType == BodyTypeDynamic && density <= 0 {
		return nil, fmt.Errorf("ball %q needs positive density: %w", name, ErrConfiguration)
	}

	rb := &RigidBody{Name: name, BodyType: bodyType, Transform: NewTransform(mgl64.Vec2{}, 0)}

	if bodyType == BodyTypeStatic {
		rb.Material = staticMaterial()
		rb.inertia = math.Inf(1)
	} else {
		mass := density * math.Pi * radius * radius
		rb.Material = Material{Density: density, mass: mass}
		rb.inertia = mass * radius * radius / 2
	}

	v := &Vertex{Local: mgl64.Vec2{radius, 0}}
	edge := newCircularEdge(rb, 0, v, v, mgl64.Vec2{})
	v.Edge1 = edge
	v.Edge2 = edge
	rb.edges = []Edge{edge}
	rb.vertices = []*Vertex{v}
	rb.boundingRadius = radius

	for i := 1; i < arcDecorations; i++ {
		theta := 2 * math.Pi * float64(i) / arcDecorations
		d := &Vertex{
			Local:     mgl64.Vec2{radius * math.Cos(theta), radius * math.Sin(theta)},
			Decorated: true,
			Edge1:     edge,
		}
		rb.vertices = append(rb.vertices, d)
	}

	return rb, nil
}

// NewAnchor creates a static, shapeless body used as the fixed world
// side of a joint. It has no edges and never takes part in collision
// detection.
func NewAnchor(name string, position mgl64.Vec2) *RigidBody {
	return &RigidBody{
		Name:      name,
		BodyType:  BodyTypeStatic,
		Transform: NewTransform(position, 0),
		Material:  staticMaterial(),
		inertia:   math.Inf(1),
	}
}
