// Package rigid2d is a deterministic, time-stepped 2D rigid-body
// simulator. Bodies are polygons of straight and circular edges;
// interpenetration is resolved by impulse at the backed-up moment of
// impact, and sustained touching by continuous contact forces from a
// complementarity solver. A fixed sequence of mutations and Advance
// calls always reproduces the same trajectories bit for bit.
package rigid2d

import (
	"fmt"
	"math"

	"github.com/yea55/rigid2d/body"
	"github.com/yea55/rigid2d/constraint"
)

// World owns the simulation state: the body list, joints, registered
// force laws and the accumulated simulated time. All mutation happens
// either inside Advance or through the explicit add/remove calls
// between Advance calls; the two must not interleave. The world is not
// safe for concurrent use.
type World struct {
	// List of all rigid bodies in the world
	Bodies []*body.RigidBody
	Joints []*constraint.Joint

	Config Config
	Events Events

	grid      *SpatialGrid
	forceLaws []ForceLaw

	// Contact forces computed at the last commit, observable for
	// diagnostics and tests.
	contactForces []Force

	time float64
}

// NewWorld creates an empty world with the given tolerances.
func NewWorld(cfg Config) *World {
	return &World{
		Config: cfg,
		Events: NewEvents(),
		grid:   NewSpatialGrid(cfg.GridCellSize, cfg.GridCells, cfg.DistanceTolerance),
	}
}

// GetTime returns the accumulated simulated time.
func (w *World) GetTime() float64 {
	return w.time
}

// AddBody adds a rigid body to the world. Invalid setups are rejected
// before any step runs.
func (w *World) AddBody(rb *body.RigidBody) error {
	if rb.BodyType == body.BodyTypeDynamic {
		m := rb.Material.GetMass()
		if m <= 0 || math.IsInf(m, 1) || rb.Inertia() <= 0 {
			return fmt.Errorf("movable body %q needs positive finite mass and inertia: %w",
				rb.Name, body.ErrConfiguration)
		}
	}
	if len(rb.Edges()) == 0 {
		return fmt.Errorf("body %q has no boundary: %w", rb.Name, body.ErrConfiguration)
	}

	w.Bodies = append(w.Bodies, rb)
	w.Events.dispatch(ObjectAddedEvent{Name: rb.Name, Kind: "body"})
	return nil
}

// RemoveBody removes a rigid body from the world, together with any
// joints attached to it.
func (w *World) RemoveBody(rb *body.RigidBody) {
	k := -1
	for i, b := range w.Bodies {
		if b == rb {
			k = i
			break
		}
	}
	if k == -1 {
		return
	}
	w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)

	joints := w.Joints[:0]
	for _, j := range w.Joints {
		if j.BodyA == rb || j.BodyB == rb {
			w.Events.dispatch(ObjectRemovedEvent{Name: j.BodyA.Name + "-" + j.BodyB.Name, Kind: "joint"})
			continue
		}
		joints = append(joints, j)
	}
	w.Joints = joints

	w.Events.dispatch(ObjectRemovedEvent{Name: rb.Name, Kind: "body"})
}

// AddJoint registers a bilateral constraint. Both bodies must already
// be in the world (the internal anchor of a fixed joint excepted).
func (w *World) AddJoint(j *constraint.Joint) error {
	if !w.contains(j.BodyA) {
		return fmt.Errorf("joint body %q not in world: %w", j.BodyA.Name, body.ErrConfiguration)
	}
	if len(j.BodyB.Edges()) > 0 && !w.contains(j.BodyB) {
		return fmt.Errorf("joint body %q not in world: %w", j.BodyB.Name, body.ErrConfiguration)
	}

	w.Joints = append(w.Joints, j)
	w.Events.dispatch(ObjectAddedEvent{Name: j.BodyA.Name + "-" + j.BodyB.Name, Kind: "joint"})
	return nil
}

func (w *World) contains(rb *body.RigidBody) bool {
	for _, b := range w.Bodies {
		if b == rb {
			return true
		}
	}
	return false
}

// AddForceLaw registers an external force contributor.
func (w *World) AddForceLaw(law ForceLaw) {
	w.forceLaws = append(w.forceLaws, law)
}

// RemoveForceLaw unregisters a force contributor.
func (w *World) RemoveForceLaw(law ForceLaw) {
	for i, l := range w.forceLaws {
		if l == law {
			w.forceLaws = append(w.forceLaws[:i], w.forceLaws[i+1:]...)
			return
		}
	}
}

// ContactForces returns a copy of the steady contact forces computed
// at the last committed state.
func (w *World) ContactForces() []Force {
	out := make([]Force, len(w.contactForces))
	copy(out, w.contactForces)
	return out
}

// EnergyInfo returns the total kinetic energy of all bodies and the
// total potential energy of force laws that define one.
func (w *World) EnergyInfo() (kinetic, potential float64) {
	for _, rb := range w.Bodies {
		kinetic += rb.KineticEnergy()
	}
	for _, law := range w.forceLaws {
		if p, ok := law.(interface {
			PotentialEnergy([]*body.RigidBody) float64
		}); ok {
			potential += p.PotentialEnergy(w.Bodies)
		}
	}
	return kinetic, potential
}
