package rigid2d

import (
	"errors"
	"fmt"

	"github.com/yea55/rigid2d/body"
	"github.com/yea55/rigid2d/collide"
	"github.com/yea55/rigid2d/constraint"
)

// ErrStuckTime reports that the stepping loop repeatedly failed to
// make forward time progress: collisions keep occurring at the very
// start of the interval and resolution does not separate the bodies.
var ErrStuckTime = errors.New("no forward progress in time stepping")

// Advance runs the simulation forward by dt: integrate a trial step,
// detect interpenetration, back up to the moment of impact when one is
// found, resolve it by impulse, and continue with the remaining time.
// Before each sub-step commits, the contact force solver computes the
// steady forces holding resting contacts apart during the following
// integration interval.
//
// On error the in-progress sub-step is rolled back and the last
// committed state is left intact; the caller may retry with a smaller
// dt or halt. Advance runs to completion before returning; there is no
// suspension within a step.
func (w *World) Advance(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("time step %v must be positive: %w", dt, body.ErrConfiguration)
	}

	remaining := dt
	stuck := 0
	for remaining > w.Config.TimeTolerance {
		committed, err := w.substep(remaining)
		if err != nil {
			w.Events.flush()
			return err
		}

		if committed <= w.Config.TimeTolerance {
			stuck++
			if stuck > w.Config.MaxBacktracks {
				w.Events.flush()
				return fmt.Errorf("at t=%v with %v remaining: %w", w.time, remaining, ErrStuckTime)
			}
		} else {
			stuck = 0
		}
		remaining -= committed
	}

	w.Events.flush()
	return nil
}

// substep tries to integrate the bodies forward by h from the current
// committed state. It returns the amount of simulated time actually
// committed: h when the trial state is clean, or the backed-up impact
// time when a collision had to be resolved first.
func (w *World) substep(h float64) (float64, error) {
	saved := w.saveStates()

	if err := w.accumulateForces(); err != nil {
		w.clearForces()
		return 0, err
	}

	w.integrate(h)

	collisions := w.findCollisions(w.time + h)
	committed := h

	if len(collisions) > 0 {
		backed, cols, err := w.backtrack(saved, h, collisions)
		if err != nil {
			w.restoreStates(saved)
			w.clearForces()
			return 0, err
		}

		for _, c := range cols {
			if err := collide.Refine(c); err != nil {
				w.restoreStates(saved)
				w.clearForces()
				return 0, err
			}
		}
		for _, c := range cols {
			c.UpdateVelocity()
			if c.NormalVelocity < 0 {
				impulse := constraint.Resolve(c)
				w.Events.emit(CollisionEvent{
					BodyA:    c.BodyA,
					BodyB:    c.BodyB,
					Position: c.Position,
					Impulse:  impulse,
				})
			}
		}
		committed = backed
	}

	w.clearForces()
	w.time += committed
	return committed, nil
}

// backtrack locates the approximate collision time within (0, h] by
// bisection: the saved state at 0 is clean, the trial state at h
// penetrates. The world is left integrated to the returned time, with
// the collision records detected there.
func (w *World) backtrack(saved []body.State, h float64, collisions []*constraint.Contact) (float64, []*constraint.Contact, error) {
	lo, hi := 0.0, h

	// Narrow until the deepest penetration sits just past the collision
	// threshold: deep enough to still classify as an impact at hi,
	// shallow enough that the refined geometry is accurate.
	for iter := 0; iter < w.Config.MaxBacktracks; iter++ {
		if maxPenetration(collisions) <= 2*w.Config.DistanceTolerance {
			break
		}
		if hi-lo <= w.Config.TimeTolerance {
			break
		}

		mid := (lo + hi) / 2
		w.restoreStates(saved)
		w.integrate(mid)
		midCollisions := w.findCollisions(w.time + mid)
		if len(midCollisions) == 0 {
			lo = mid
		} else {
			hi = mid
			collisions = midCollisions
		}
	}

	w.restoreStates(saved)
	w.integrate(hi)
	collisions = w.findCollisions(w.time + hi)
	if len(collisions) == 0 {
		// The bisection boundary itself is clean enough to commit.
		return hi, nil, nil
	}

	return hi, collisions, nil
}

func maxPenetration(collisions []*constraint.Contact) float64 {
	var deepest float64
	for _, c := range collisions {
		if p := c.Penetration(); p > deepest {
			deepest = p
		}
	}
	return deepest
}

// accumulateForces prepares the force accumulation for the coming
// interval: external force laws first, then the steady contact forces
// from the constraint solver over the active contact and joint set.
func (w *World) accumulateForces() error {
	for _, rb := range w.Bodies {
		rb.ClearForces()
	}

	for _, law := range w.forceLaws {
		for _, f := range law.CalculateForces(w.Bodies, w.time) {
			f.apply()
		}
	}

	contacts := w.findContacts(w.time)
	if len(contacts) == 0 {
		w.contactForces = w.contactForces[:0]
		return nil
	}

	solver := constraint.Solver{
		MaxIterations: w.Config.MaxSolverIterations,
		Tolerance:     w.Config.SolverTolerance,
	}
	magnitudes, err := solver.Solve(contacts)
	if err != nil {
		return fmt.Errorf("at t=%v: %w", w.time, err)
	}

	w.contactForces = w.contactForces[:0]
	for i, c := range contacts {
		if magnitudes[i] == 0 {
			continue
		}
		fA := Force{Body: c.BodyA, Linear: c.Normal.Mul(magnitudes[i]), At: c.Position}
		fB := Force{Body: c.BodyB, Linear: c.Normal.Mul(-magnitudes[i]), At: c.Position}
		fA.apply()
		fB.apply()
		w.contactForces = append(w.contactForces, fA, fB)

		w.Events.emit(ContactEvent{
			BodyA:    c.BodyA,
			BodyB:    c.BodyB,
			Position: c.Position,
			Force:    magnitudes[i],
		})
	}

	return nil
}

func (w *World) integrate(h float64) {
	for _, rb := range w.Bodies {
		rb.Integrate(h)
	}
}

func (w *World) clearForces() {
	for _, rb := range w.Bodies {
		rb.ClearForces()
	}
}

func (w *World) saveStates() []body.State {
	states := make([]body.State, len(w.Bodies))
	for i, rb := range w.Bodies {
		states[i] = rb.State()
	}
	return states
}

func (w *World) restoreStates(states []body.State) {
	for i, rb := range w.Bodies {
		rb.SetState(states[i])
	}
}
