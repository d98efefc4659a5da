package constraint

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yea55/rigid2d/body"
)

// ErrNoConvergence reports that the contact force solver exceeded its
// iteration bound without satisfying the complementarity conditions.
// The caller may retry with a smaller time step; the result must never
// be used as a best-effort approximation.
var ErrNoConvergence = errors.New("contact solver failed to converge")

// Solver computes the simultaneous normal forces for the active set of
// contacts and joints: non-negative forces for unilateral contacts,
// unrestricted for bilateral joints, such that no active contact
// accelerates into penetration and separated contacts carry zero force
// (complementarity). The coupled system is solved by projected
// Gauss-Seidel iteration; one contact's force changes the normal
// acceleration at every other contact sharing a body, so redundant
// contact sets converge to *a* valid solution rather than a unique one.
type Solver struct {
	MaxIterations int
	Tolerance     float64
}

// Solve returns the force magnitude along each contact's normal. The
// forces are not applied; the caller feeds them into the next
// integration interval.
func (s Solver) Solve(contacts []*Contact) ([]float64, error) {
	n := len(contacts)
	if n == 0 {
		return nil, nil
	}

	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := range a[i] {
			a[i][j] = matrixEntry(contacts[i], contacts[j])
		}
	}
	b := make([]float64, n)
	for i, c := range contacts {
		b[i] = freeAcceleration(c)
	}

	f := make([]float64, n)
	for iter := 0; iter < s.MaxIterations; iter++ {
		for i := range contacts {
			if a[i][i] < 1e-12 {
				// Contact between effectively immovable parts carries
				// no solvable force.
				f[i] = 0
				continue
			}
			sum := b[i]
			for j := range contacts {
				if j != i {
					sum += a[i][j] * f[j]
				}
			}
			fi := -sum / a[i][i]
			if !contacts[i].Bilateral && fi < 0 {
				fi = 0
			}
			f[i] = fi
		}

		if s.satisfied(a, b, f, contacts) {
			return f, nil
		}
	}

	return nil, fmt.Errorf("%d contacts after %d iterations: %w", n, s.MaxIterations, ErrNoConvergence)
}

// satisfied checks the complementarity conditions: every active contact
// has non-negative normal acceleration, and force is zero wherever the
// acceleration is strictly positive.
func (s Solver) satisfied(a [][]float64, b, f []float64, contacts []*Contact) bool {
	for i, c := range contacts {
		accel := b[i]
		for j := range f {
			accel += a[i][j] * f[j]
		}
		if c.Bilateral {
			if math.Abs(accel) > s.Tolerance {
				return false
			}
			continue
		}
		if accel < -s.Tolerance {
			return false
		}
		if f[i] < -s.Tolerance {
			return false
		}
		if f[i]*accel > s.Tolerance {
			return false
		}
	}
	return true
}

// matrixEntry computes d(normal acceleration at contact ci) per unit
// force along contact cj's normal.
func matrixEntry(ci, cj *Contact) float64 {
	entry := bodyEntry(ci.BodyA, ci.RA, ci, cj)
	entry -= bodyEntry(ci.BodyB, ci.RB, ci, cj)
	return entry
}

// bodyEntry is the acceleration change of the material point of b at
// contact ci's position caused by a unit force at contact cj, projected
// on ci's normal.
func bodyEntry(b *body.RigidBody, rEval mgl64.Vec2, ci, cj *Contact) float64 {
	if b.BodyType == body.BodyTypeStatic {
		return 0
	}

	var force mgl64.Vec2
	var rApply mgl64.Vec2
	switch b {
	case cj.BodyA:
		force = cj.Normal
		rApply = cj.RA
	case cj.BodyB:
		force = cj.Normal.Mul(-1)
		rApply = cj.RB
	default:
		return 0
	}

	lin := force.Mul(b.InvMass())
	alpha := body.Cross(rApply, force) * b.InvInertia()
	return ci.Normal.Dot(lin.Add(body.CrossScalar(alpha, rEval)))
}

// freeAcceleration is the relative normal acceleration at the contact
// under the currently accumulated external forces alone, including the
// centripetal terms and the rotation of the contact normal.
func freeAcceleration(c *Contact) float64 {
	apA := pointAccel(c.BodyA, c.RA)
	apB := pointAccel(c.BodyB, c.RB)
	accel := c.Normal.Dot(apA.Sub(apB))

	if c.NormalBody != nil {
		// The normal rotates with the edge that supplies it.
		nDot := body.CrossScalar(c.NormalBody.AngularVelocity, c.Normal)
		rel := c.BodyA.VelocityAt(c.Position).Sub(c.BodyB.VelocityAt(c.Position))
		accel += 2 * nDot.Dot(rel)
	}

	return accel
}

// pointAccel is the acceleration of the body material at offset r from
// the center of mass: linear, angular and centripetal parts.
func pointAccel(b *body.RigidBody, r mgl64.Vec2) mgl64.Vec2 {
	if b.BodyType == body.BodyTypeStatic {
		return mgl64.Vec2{}
	}
	acc := b.Accel()
	acc = acc.Add(body.CrossScalar(b.AngularAccel(), r))
	acc = acc.Sub(r.Mul(b.AngularVelocity * b.AngularVelocity))
	return acc
}
