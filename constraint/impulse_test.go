package constraint

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yea55/rigid2d/body"
)

// Helper function to create a dynamic ball with a position, velocity
// and restitution
func createBall(t *testing.T, name string, position, velocity mgl64.Vec2, elasticity float64) *body.RigidBody {
	t.Helper()
	rb, err := body.NewBall(name, 0.5, 1.0, body.BodyTypeDynamic)
	if err != nil {
		t.Fatalf("NewBall(%q): %v", name, err)
	}
	rb.Transform = body.NewTransform(position, 0)
	rb.Velocity = velocity
	rb.Material.Elasticity = elasticity
	return rb
}

// Helper function to create a static floor body
func createFloor(t *testing.T) *body.RigidBody {
	t.Helper()
	rb, err := body.NewBox("floor", 10, 1, 0, body.BodyTypeStatic)
	if err != nil {
		t.Fatalf("NewBox(floor): %v", err)
	}
	rb.Transform = body.NewTransform(mgl64.Vec2{0, -0.5}, 0)
	return rb
}

// Helper function to build a contact record between two bodies at a
// world point with a normal pointing from B toward A
func createContact(a, b *body.RigidBody, position, normal mgl64.Vec2, distance float64) *Contact {
	c := &Contact{
		BodyA:      a,
		BodyB:      b,
		NormalBody: b,
		Position:   position,
		Normal:     normal,
		Distance:   distance,
		Elasticity: ComputeElasticity(a.Material, b.Material),
		Friction:   ComputeFriction(a.Material, b.Material),
	}
	c.UpdateArms()
	c.UpdateVelocity()
	return c
}

func TestResolve_EqualMassElasticExchange(t *testing.T) {
	// Head-on impact between equal balls with perfect restitution: the
	// velocities swap.
	a := createBall(t, "left", mgl64.Vec2{-0.5, 0}, mgl64.Vec2{1, 0}, 1)
	b := createBall(t, "right", mgl64.Vec2{0.5, 0}, mgl64.Vec2{-1, 0}, 1)
	c := createContact(a, b, mgl64.Vec2{0, 0}, mgl64.Vec2{-1, 0}, 0)

	keBefore := a.KineticEnergy() + b.KineticEnergy()
	j := Resolve(c)

	if j <= 0 {
		t.Fatalf("impulse = %v, want positive", j)
	}
	wantJ := 2 * a.Material.GetMass()
	if math.Abs(j-wantJ) > 1e-9 {
		t.Errorf("impulse = %v, want %v", j, wantJ)
	}
	if !vecNear(a.Velocity, mgl64.Vec2{-1, 0}, 1e-9) {
		t.Errorf("left velocity = %v, want (-1,0)", a.Velocity)
	}
	if !vecNear(b.Velocity, mgl64.Vec2{1, 0}, 1e-9) {
		t.Errorf("right velocity = %v, want (1,0)", b.Velocity)
	}

	keAfter := a.KineticEnergy() + b.KineticEnergy()
	if math.Abs(keAfter-keBefore) > 1e-9 {
		t.Errorf("elastic impact changed energy: %v -> %v", keBefore, keAfter)
	}
}

func TestResolve_SeparatingBodiesUntouched(t *testing.T) {
	a := createBall(t, "left", mgl64.Vec2{-0.5, 0}, mgl64.Vec2{-1, 0}, 1)
	b := createBall(t, "right", mgl64.Vec2{0.5, 0}, mgl64.Vec2{1, 0}, 1)
	c := createContact(a, b, mgl64.Vec2{0, 0}, mgl64.Vec2{-1, 0}, 0)

	if j := Resolve(c); j != 0 {
		t.Errorf("impulse on separating pair = %v, want 0", j)
	}
	if !vecNear(a.Velocity, mgl64.Vec2{-1, 0}, 0) || !vecNear(b.Velocity, mgl64.Vec2{1, 0}, 0) {
		t.Error("velocities changed without an impulse")
	}
}

func TestResolve_EnergyNeverIncreases(t *testing.T) {
	floorVelocity := mgl64.Vec2{}
	for _, elasticity := range []float64{0, 0.3, 0.7, 1} {
		// Off-center impact with spin against a static floor.
		a := createBall(t, "ball", mgl64.Vec2{0.2, 0.5}, mgl64.Vec2{0.3, -2}, elasticity)
		a.AngularVelocity = 1.5
		floor := createFloor(t)

		c := createContact(a, floor, mgl64.Vec2{0.2, 0}, mgl64.Vec2{0, 1}, 0)

		keBefore := a.KineticEnergy()
		Resolve(c)
		keAfter := a.KineticEnergy()

		if keAfter > keBefore+1e-9 {
			t.Errorf("e=%v: energy grew %v -> %v", elasticity, keBefore, keAfter)
		}
		if !vecNear(floor.Velocity, floorVelocity, 0) {
			t.Errorf("e=%v: static floor gained velocity %v", elasticity, floor.Velocity)
		}
		if vn := c.Normal.Dot(a.VelocityAt(c.Position).Sub(floor.VelocityAt(c.Position))); vn < -1e-9 {
			t.Errorf("e=%v: still closing after impulse: vn=%v", elasticity, vn)
		}
	}
}

func TestResolve_RestitutionScalesRebound(t *testing.T) {
	for _, elasticity := range []float64{0, 0.5, 1} {
		a := createBall(t, "ball", mgl64.Vec2{0, 0.5}, mgl64.Vec2{0, -2}, elasticity)
		floor := createFloor(t)
		floor.Material.Elasticity = elasticity
		c := createContact(a, floor, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 1}, 0)

		Resolve(c)
		if math.Abs(a.Velocity.Y()-2*elasticity) > 1e-9 {
			t.Errorf("e=%v: rebound velocity = %v, want %v", elasticity, a.Velocity.Y(), 2*elasticity)
		}
	}
}

func TestResolve_FrictionSlowsSliding(t *testing.T) {
	a := createBall(t, "ball", mgl64.Vec2{0, 0.5}, mgl64.Vec2{1, -1}, 0)
	a.Material.Friction = 0.8
	floor := createFloor(t)
	floor.Material.Friction = 0.8
	c := createContact(a, floor, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 1}, 0)

	tangent := body.Perp(c.Normal)
	vtBefore := tangent.Dot(a.VelocityAt(c.Position))

	Resolve(c)

	vtAfter := tangent.Dot(a.VelocityAt(c.Position))
	if math.Abs(vtAfter) >= math.Abs(vtBefore) {
		t.Errorf("sliding speed did not drop: %v -> %v", vtBefore, vtAfter)
	}
	if vtBefore*vtAfter < 0 {
		t.Errorf("friction reversed the sliding direction: %v -> %v", vtBefore, vtAfter)
	}
}

func TestComputeFriction_GeometricMean(t *testing.T) {
	matA := body.Material{Friction: 0.4}
	matB := body.Material{Friction: 0.9}
	if f := ComputeFriction(matA, matB); math.Abs(f-0.6) > 1e-12 {
		t.Errorf("friction = %v, want 0.6", f)
	}
	if f := ComputeFriction(matA, body.Material{}); f != 0 {
		t.Errorf("friction against frictionless = %v, want 0", f)
	}
}

func TestContact_Classification(t *testing.T) {
	a := createBall(t, "ball", mgl64.Vec2{0, 0.5}, mgl64.Vec2{0, -1}, 0)
	floor := createFloor(t)

	closing := createContact(a, floor, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 1}, -0.05)
	if !closing.IsCollision(0.01, 0.005) {
		t.Error("penetrating, approaching record not classified as collision")
	}
	if !closing.IsContact(0.01) {
		t.Error("penetrating record not classified as contact")
	}

	resting := createContact(a, floor, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 1}, 0.005)
	if resting.IsCollision(0.01, 0.005) {
		t.Error("touching record classified as collision")
	}
	if !resting.IsContact(0.01) {
		t.Error("touching record not classified as contact")
	}

	separated := createContact(a, floor, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 1}, 0.2)
	if separated.IsContact(0.01) {
		t.Error("separated record classified as contact")
	}

	bilateral := createContact(a, floor, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 1}, -0.05)
	bilateral.Bilateral = true
	if bilateral.IsCollision(0.01, 0.005) {
		t.Error("bilateral record classified as collision")
	}

	if p := closing.Penetration(); math.Abs(p-0.05) > 1e-12 {
		t.Errorf("penetration = %v, want 0.05", p)
	}
	if p := separated.Penetration(); p != 0 {
		t.Errorf("penetration of separated record = %v, want 0", p)
	}
}

func vecNear(a, b mgl64.Vec2, tol float64) bool {
	return a.Sub(b).Len() <= tol
}
