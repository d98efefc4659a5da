package body

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewBox_MassProperties(t *testing.T) {
	rb, err := NewBox("crate", 2, 1, 3, BodyTypeDynamic)
	if err != nil {
		t.Fatal(err)
	}

	if m := rb.Material.GetMass(); math.Abs(m-6) > 1e-12 {
		t.Errorf("mass = %v, want 6", m)
	}
	// Rectangle: I = m(w^2+h^2)/12.
	if i := rb.Inertia(); math.Abs(i-2.5) > 1e-9 {
		t.Errorf("inertia = %v, want 2.5", i)
	}
	if r := rb.BoundingRadius(); math.Abs(r-math.Sqrt(1.25)) > 1e-12 {
		t.Errorf("bounding radius = %v, want sqrt(1.25)", r)
	}
	if len(rb.Edges()) != 4 || len(rb.Vertices()) != 4 {
		t.Errorf("box has %d edges, %d vertices", len(rb.Edges()), len(rb.Vertices()))
	}
}

func TestNewPolygon_RecentersOnCentroid(t *testing.T) {
	rb, err := NewPolygon("tri", []mgl64.Vec2{{0, 0}, {3, 0}, {0, 3}}, 2, BodyTypeDynamic)
	if err != nil {
		t.Fatal(err)
	}

	if m := rb.Material.GetMass(); math.Abs(m-9) > 1e-12 {
		t.Errorf("mass = %v, want 9 (area 4.5 x density 2)", m)
	}

	// Local vertices are expressed about the centroid, so they sum to
	// zero for a triangle.
	var sum mgl64.Vec2
	for _, v := range rb.Vertices() {
		sum = sum.Add(v.Local)
	}
	if sum.Len() > 1e-12 {
		t.Errorf("centroid-relative vertices sum to %v, want zero", sum)
	}
}

func TestNewPolygon_EdgeLoopIsClosed(t *testing.T) {
	rb, err := NewPolygon("quad", []mgl64.Vec2{{0, 0}, {2, 0}, {2, 1}, {0, 1}}, 1, BodyTypeDynamic)
	if err != nil {
		t.Fatal(err)
	}

	edges := rb.Edges()
	for i, e := range edges {
		next := edges[(i+1)%len(edges)]
		if e.V2() != next.V1() {
			t.Errorf("edge %d does not end where edge %d starts", i, (i+1)%len(edges))
		}
		if e.V1().Edge2 != e || e.V2().Edge1 != e {
			t.Errorf("edge %d vertex back references broken", i)
		}
	}
}

func TestNewPolygon_Validation(t *testing.T) {
	cases := []struct {
		name    string
		loop    []mgl64.Vec2
		density float64
	}{
		{"too few vertices", []mgl64.Vec2{{0, 0}, {1, 0}}, 1},
		{"clockwise winding", []mgl64.Vec2{{0, 0}, {0, 1}, {1, 0}}, 1},
		{"zero-length edge", []mgl64.Vec2{{0, 0}, {0, 0}, {1, 0}, {0, 1}}, 1},
		{"zero density", []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}}, 0},
		{"negative density", []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}}, -2},
	}
	for _, tc := range cases {
		_, err := NewPolygon(tc.name, tc.loop, tc.density, BodyTypeDynamic)
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: err = %v, want ErrConfiguration", tc.name, err)
		}
	}
}

func TestNewBall_MassProperties(t *testing.T) {
	rb, err := NewBall("ball", 2, 1, BodyTypeDynamic)
	if err != nil {
		t.Fatal(err)
	}

	wantMass := math.Pi * 4
	if m := rb.Material.GetMass(); math.Abs(m-wantMass) > 1e-9 {
		t.Errorf("mass = %v, want %v", m, wantMass)
	}
	// Disc: I = m r^2 / 2.
	if i := rb.Inertia(); math.Abs(i-wantMass*2) > 1e-9 {
		t.Errorf("inertia = %v, want %v", i, wantMass*2)
	}
	if r := rb.BoundingRadius(); r != 2 {
		t.Errorf("bounding radius = %v, want 2", r)
	}

	if len(rb.Edges()) != 1 {
		t.Fatalf("ball has %d edges, want 1", len(rb.Edges()))
	}
	if !rb.Edges()[0].(*CircularEdge).Complete() {
		t.Error("ball edge is not a complete circle")
	}

	decorated := 0
	for _, v := range rb.Vertices() {
		if !v.Decorated {
			continue
		}
		decorated++
		if math.Abs(v.Local.Len()-2) > 1e-12 {
			t.Errorf("decorated vertex %v is off the surface", v.Local)
		}
	}
	if decorated != arcDecorations-1 {
		t.Errorf("%d decorated vertices, want %d", decorated, arcDecorations-1)
	}
}

func TestNewBall_Validation(t *testing.T) {
	if _, err := NewBall("flat", 0, 1, BodyTypeDynamic); !errors.Is(err, ErrConfiguration) {
		t.Errorf("zero radius: err = %v, want ErrConfiguration", err)
	}
	if _, err := NewBall("hollow", 1, 0, BodyTypeDynamic); !errors.Is(err, ErrConfiguration) {
		t.Errorf("zero density: err = %v, want ErrConfiguration", err)
	}
}

func TestStaticBody_Immovable(t *testing.T) {
	rb, err := NewBox("floor", 10, 1, 0, BodyTypeStatic)
	if err != nil {
		t.Fatal(err)
	}

	if rb.InvMass() != 0 || rb.InvInertia() != 0 {
		t.Errorf("static body invMass=%v invInertia=%v, want 0", rb.InvMass(), rb.InvInertia())
	}

	rb.AddForce(mgl64.Vec2{0, 100})
	rb.AddTorque(5)
	rb.Integrate(1)
	if rb.Velocity.Len() != 0 || rb.AngularVelocity != 0 || rb.Transform.Position.Len() != 0 {
		t.Error("static body moved under force")
	}
	if rb.KineticEnergy() != 0 {
		t.Error("static body reports kinetic energy")
	}
}

func TestNewAnchor_Shapeless(t *testing.T) {
	anchor := NewAnchor("pin", mgl64.Vec2{3, 4})

	if anchor.BodyType != BodyTypeStatic {
		t.Error("anchor is not static")
	}
	if len(anchor.Edges()) != 0 {
		t.Errorf("anchor has %d edges, want none", len(anchor.Edges()))
	}
	if !anchor.ContainsLocal(mgl64.Vec2{}) {
		t.Error("anchor does not contain its own origin")
	}
	if anchor.ContainsLocal(mgl64.Vec2{0.1, 0}) {
		t.Error("anchor contains an offset point")
	}
}
