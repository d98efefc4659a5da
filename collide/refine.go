package collide

import (
	"errors"
	"fmt"
	"math"

	"github.com/yea55/rigid2d/constraint"
)

// ErrGeometry reports degenerate impact geometry: a collision record
// whose edges no longer yield any valid impact point. It is fatal for
// the step in progress and must never be ignored.
var ErrGeometry = errors.New("degenerate impact geometry")

// refineTolerance is the (generous) separation window used when
// recomputing a backed-up collision: the controller may have overshot
// the impact instant slightly in either direction.
const refineTolerance = 0.1

// Refine recomputes a record's impact point, normal, moment arms and
// relative velocity from the current body transforms. The controller
// calls this after backing the clock up to the estimated impact time,
// so the stored geometry is stale. If the edges still intersect, the
// crossing point is used directly; otherwise the nearest vertex with
// the smallest separation against the opposite edge stands in. No
// valid point at all means the geometry degenerated.
func Refine(c *constraint.Contact) error {
	if c.Bilateral {
		// Joint contacts are regenerated from their anchors each step.
		return nil
	}
	if c.EdgeA == nil || c.EdgeB == nil {
		return fmt.Errorf("record without edge pair: %w", ErrGeometry)
	}

	candidates := testEdgePair(c.EdgeA, c.EdgeB, c.DetectedAt, refineTolerance)
	if len(candidates) == 0 {
		return fmt.Errorf("%s edge %d against %s edge %d: %w",
			c.BodyA.Name, c.EdgeA.Index(), c.BodyB.Name, c.EdgeB.Index(), ErrGeometry)
	}

	// The refined record is the candidate continuing the original one:
	// the nearest impact point wins.
	best := candidates[0]
	bestDist := best.Position.Sub(c.Position).Len()
	for _, cand := range candidates[1:] {
		if d := cand.Position.Sub(c.Position).Len(); d < bestDist {
			best = cand
			bestDist = d
		}
	}

	if best.Normal.Len() == 0 || math.IsNaN(best.Distance) {
		return fmt.Errorf("%s against %s: invalid refined normal: %w", c.BodyA.Name, c.BodyB.Name, ErrGeometry)
	}

	*c = *best
	return nil
}
