package collide

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yea55/rigid2d/body"
	"github.com/yea55/rigid2d/constraint"
)

const testTolerance = 0.01

// Helper function to create a dynamic box at a position and angle
func createBox(t *testing.T, name string, width, height float64, position mgl64.Vec2, angle float64) *body.RigidBody {
	t.Helper()
	rb, err := body.NewBox(name, width, height, 1.0, body.BodyTypeDynamic)
	if err != nil {
		t.Fatalf("NewBox(%q): %v", name, err)
	}
	rb.Transform = body.NewTransform(position, angle)
	return rb
}

// Helper function to create the static floor with its top surface at y=0
func createFloor(t *testing.T) *body.RigidBody {
	t.Helper()
	rb, err := body.NewBox("floor", 10, 1, 0, body.BodyTypeStatic)
	if err != nil {
		t.Fatalf("NewBox(floor): %v", err)
	}
	rb.Transform = body.NewTransform(mgl64.Vec2{0, -0.5}, 0)
	return rb
}

// Helper function to create a dynamic ball at a position
func createBall(t *testing.T, name string, radius float64, position mgl64.Vec2) *body.RigidBody {
	t.Helper()
	rb, err := body.NewBall(name, radius, 1.0, body.BodyTypeDynamic)
	if err != nil {
		t.Fatalf("NewBall(%q): %v", name, err)
	}
	rb.Transform = body.NewTransform(position, 0)
	return rb
}

func vecNear(a, b mgl64.Vec2, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestPair_SquareRestingOnFloor(t *testing.T) {
	square := createBox(t, "square", 1, 1, mgl64.Vec2{0, 0.5}, 0)
	floor := createFloor(t)

	contacts := TestPair(square, floor, 0, testTolerance)
	if len(contacts) < 2 {
		t.Fatalf("got %d contacts, want at least both bottom corners", len(contacts))
	}

	var left, right bool
	for _, c := range contacts {
		if c.BodyA != square || c.BodyB != floor {
			t.Errorf("contact bodies %s/%s, want square/floor", c.BodyA.Name, c.BodyB.Name)
		}
		if math.Abs(c.Distance) > testTolerance {
			t.Errorf("contact distance %v beyond tolerance", c.Distance)
		}
		if !vecNear(c.Normal, mgl64.Vec2{0, 1}, 1e-9) {
			t.Errorf("contact normal %v, want (0,1)", c.Normal)
		}
		if vecNear(c.Position, mgl64.Vec2{-0.5, 0}, 1e-9) {
			left = true
		}
		if vecNear(c.Position, mgl64.Vec2{0.5, 0}, 1e-9) {
			right = true
		}
	}
	if !left || !right {
		t.Errorf("missing corner contact: left=%v right=%v", left, right)
	}
}

func TestPair_OverlappingBoxesReportPenetration(t *testing.T) {
	square := createBox(t, "square", 1, 1, mgl64.Vec2{0, 0.4}, 0)
	floor := createFloor(t)

	contacts := TestPair(square, floor, 0, testTolerance)
	if len(contacts) == 0 {
		t.Fatal("no contacts for overlapping boxes")
	}

	deepest := contacts[0]
	for _, c := range contacts[1:] {
		if c.Distance < deepest.Distance {
			deepest = c
		}
	}
	if math.Abs(deepest.Distance+0.1) > 1e-9 {
		t.Errorf("deepest distance = %v, want -0.1", deepest.Distance)
	}
	if math.Abs(deepest.Penetration()-0.1) > 1e-9 {
		t.Errorf("penetration = %v, want 0.1", deepest.Penetration())
	}
	if !vecNear(deepest.Normal, mgl64.Vec2{0, 1}, 1e-9) {
		t.Errorf("normal = %v, want (0,1)", deepest.Normal)
	}
	if deepest.VertexA == nil || deepest.EdgeA == nil || deepest.EdgeB == nil {
		t.Error("crossing record is missing its geometry references")
	}
}

func TestPair_SeparatedBodiesYieldNothing(t *testing.T) {
	square := createBox(t, "square", 1, 1, mgl64.Vec2{0, 2}, 0)
	floor := createFloor(t)

	if contacts := TestPair(square, floor, 0, testTolerance); len(contacts) != 0 {
		t.Errorf("got %d contacts for separated bodies, want 0", len(contacts))
	}
}

func TestPair_BallNearFloor(t *testing.T) {
	ball := createBall(t, "ball", 0.5, mgl64.Vec2{0, 0.505})
	floor := createFloor(t)

	contacts := TestPair(ball, floor, 0, testTolerance)
	if len(contacts) == 0 {
		t.Fatal("no contacts for ball near floor")
	}

	var closest *constraint.Contact
	for _, c := range contacts {
		if closest == nil || c.Distance < closest.Distance {
			closest = c
		}
	}
	if math.Abs(closest.Distance-0.005) > 1e-9 {
		t.Errorf("distance = %v, want 0.005", closest.Distance)
	}
	if !vecNear(closest.Normal, mgl64.Vec2{0, 1}, 1e-9) {
		t.Errorf("normal = %v, want (0,1)", closest.Normal)
	}
	if !vecNear(closest.Position, mgl64.Vec2{0, 0}, 1e-9) {
		t.Errorf("position = %v, want the foot of the center", closest.Position)
	}
	if closest.BodyA != ball {
		t.Errorf("BodyA = %s, want ball", closest.BodyA.Name)
	}
}

func TestPair_BallBall(t *testing.T) {
	a := createBall(t, "a", 0.5, mgl64.Vec2{0, 0})
	b := createBall(t, "b", 0.5, mgl64.Vec2{1.005, 0})

	contacts := TestPair(a, b, 0, testTolerance)
	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(contacts))
	}

	c := contacts[0]
	if math.Abs(c.Distance-0.005) > 1e-9 {
		t.Errorf("distance = %v, want 0.005", c.Distance)
	}
	// Normal points from b toward a.
	if !vecNear(c.Normal, mgl64.Vec2{-1, 0}, 1e-9) {
		t.Errorf("normal = %v, want (-1,0)", c.Normal)
	}
	// Impact point sits midway across the gap.
	if !vecNear(c.Position, mgl64.Vec2{0.5025, 0}, 1e-9) {
		t.Errorf("position = %v, want (0.5025,0)", c.Position)
	}
}

func TestPair_BallBallSeparated(t *testing.T) {
	a := createBall(t, "a", 0.5, mgl64.Vec2{0, 0})
	b := createBall(t, "b", 0.5, mgl64.Vec2{1.2, 0})

	if contacts := TestPair(a, b, 0, testTolerance); len(contacts) != 0 {
		t.Errorf("got %d contacts for separated balls, want 0", len(contacts))
	}
}

func TestPair_TiltedBoxCornerOnFloor(t *testing.T) {
	// A box balancing on one corner: the lone corner is the only deep
	// candidate and the normal comes from the floor.
	square := createBox(t, "square", 1, 1, mgl64.Vec2{0, math.Sqrt2 / 2}, math.Pi/4)
	floor := createFloor(t)

	contacts := TestPair(square, floor, 0, testTolerance)
	if len(contacts) == 0 {
		t.Fatal("no contacts for corner-balanced box")
	}
	for _, c := range contacts {
		if !vecNear(c.Normal, mgl64.Vec2{0, 1}, 1e-9) {
			t.Errorf("normal = %v, want floor normal (0,1)", c.Normal)
		}
		if !vecNear(c.Position, mgl64.Vec2{0, 0}, 1e-6) {
			t.Errorf("position = %v, want the corner at the origin", c.Position)
		}
	}
}

func TestPair_Deterministic(t *testing.T) {
	run := func() []*constraint.Contact {
		square := createBox(t, "square", 1, 1, mgl64.Vec2{0.1, 0.45}, 0.02)
		floor := createFloor(t)
		return TestPair(square, floor, 0, testTolerance)
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("contact count differs between identical runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Position != second[i].Position ||
			first[i].Distance != second[i].Distance ||
			first[i].Normal != second[i].Normal {
			t.Errorf("contact %d differs between identical runs", i)
		}
	}
}
