package rigid2d

import (
	"github.com/yea55/rigid2d/body"
	"github.com/yea55/rigid2d/collide"
	"github.com/yea55/rigid2d/constraint"
)

// detect runs the full detection pass at the current state: spatial
// grid broad phase over bodies, bounding-circle filter and exact tests
// over edges. Pairs tied by a joint are excluded; near-duplicate
// records from adjacent edges are filtered down to one per physical
// contact.
func (w *World) detect(now float64) []*constraint.Contact {
	w.grid.Clear()
	for i, rb := range w.Bodies {
		if len(rb.Edges()) > 0 {
			w.grid.Insert(i, rb)
		}
	}
	w.grid.SortCells()

	var records []*constraint.Contact
	for _, pair := range w.grid.FindPairs(w.Bodies) {
		if w.jointConnected(pair.BodyA, pair.BodyB) {
			continue
		}
		records = append(records, collide.TestPair(pair.BodyA, pair.BodyB, now, w.Config.DistanceTolerance)...)
	}

	return w.filterSimilar(records)
}

// findCollisions returns the actual impacts at the current state:
// penetrating beyond tolerance and closing.
func (w *World) findCollisions(now float64) []*constraint.Contact {
	var collisions []*constraint.Contact
	for _, c := range w.detect(now) {
		if c.IsCollision(w.Config.DistanceTolerance, w.Config.VelocityTolerance) {
			collisions = append(collisions, c)
		}
	}
	return collisions
}

// findContacts returns the active set for the force solver: every
// detected record within distance tolerance plus the joints' bilateral
// contacts, in stable order.
func (w *World) findContacts(now float64) []*constraint.Contact {
	var contacts []*constraint.Contact
	for _, c := range w.detect(now) {
		if c.IsContact(w.Config.DistanceTolerance) {
			contacts = append(contacts, c)
		}
	}
	for _, j := range w.Joints {
		contacts = append(contacts, j.Contacts(now)...)
	}
	return contacts
}

// jointConnected reports whether a joint ties the pair; jointed pairs
// are excluded from interference testing.
func (w *World) jointConnected(a, b *body.RigidBody) bool {
	for _, j := range w.Joints {
		if j.Connects(a, b) {
			return true
		}
	}
	return false
}

// filterSimilar drops records duplicating an earlier one: same body
// pair, impact points within the similarity tolerance, near-parallel
// normals. The deeper of the two survives.
func (w *World) filterSimilar(records []*constraint.Contact) []*constraint.Contact {
	tol := w.Config.SimilarityTolerance
	kept := records[:0]

	for _, c := range records {
		duplicate := false
		for i, k := range kept {
			if !samePair(c, k) {
				continue
			}
			if c.Position.Sub(k.Position).Len() > tol {
				continue
			}
			if c.Normal.Dot(k.Normal) < 0.98 {
				continue
			}
			duplicate = true
			if c.Distance < k.Distance {
				kept[i] = c
			}
			break
		}
		if !duplicate {
			kept = append(kept, c)
		}
	}

	return kept
}

func samePair(a, b *constraint.Contact) bool {
	return (a.BodyA == b.BodyA && a.BodyB == b.BodyB) ||
		(a.BodyA == b.BodyB && a.BodyB == b.BodyA)
}
