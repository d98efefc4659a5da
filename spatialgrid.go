package rigid2d

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yea55/rigid2d/body"
)

// CellKey - coordinates of a cell in the 2D plane
type CellKey struct {
	X, Y int
}

// Cell - container of body indices falling in a cell
type Cell struct {
	bodyIndices []int
}

// Pair - pair of bodies potentially in collision
type Pair struct {
	BodyA *body.RigidBody
	BodyB *body.RigidBody
}

// SpatialGrid - uniform hashed grid for the body-level broad phase.
// Pair enumeration is strictly sequential and index-ordered so a fixed
// body list always yields the same pair sequence.
type SpatialGrid struct {
	cellSize float64
	// swell inflates every bounding box so pairs separated by less
	// than the contact tolerance still register.
	swell    float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid - creates a new spatial grid
func NewSpatialGrid(cellSize float64, numCells int, swell float64) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		swell:    swell,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func (sg *SpatialGrid) inflate(aabb body.AABB) body.AABB {
	s := mgl64.Vec2{sg.swell, sg.swell}
	return body.AABB{Min: aabb.Min.Sub(s), Max: aabb.Max.Add(s)}
}

// nextPowerOfTwo - rounds up to the next power of 2
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - inserts a body into every cell its bounding box covers
func (sg *SpatialGrid) Insert(bodyIndex int, rb *body.RigidBody) {
	aabb := sg.inflate(rb.GetAABB())
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})
			sg.cells[cellIdx].bodyIndices = append(
				sg.cells[cellIdx].bodyIndices,
				bodyIndex,
			)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// FindPairs enumerates candidate pairs in ascending body-index order.
// A pair spanning several shared cells is reported once.
func (sg *SpatialGrid) FindPairs(bodies []*body.RigidBody) []Pair {
	pairs := make([]Pair, 0, len(bodies)/2)
	seen := make([]bool, len(bodies))

	for bodyIdx := 0; bodyIdx < len(bodies); bodyIdx++ {
		bodyA := bodies[bodyIdx]
		if len(bodyA.Edges()) == 0 {
			// Shapeless anchors never collide.
			continue
		}

		for i := range seen {
			seen[i] = false
		}

		aabb := sg.inflate(bodyA.GetAABB())
		minCell := sg.worldToCell(aabb.Min)
		maxCell := sg.worldToCell(aabb.Max)

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				cellIdx := sg.hashCell(CellKey{x, y})

				for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
					// Ascending index order avoids both (A,B)/(B,A)
					// duplicates and nondeterministic orderings.
					if otherIdx <= bodyIdx || seen[otherIdx] {
						continue
					}
					seen[otherIdx] = true

					bodyB := bodies[otherIdx]
					if len(bodyB.Edges()) == 0 {
						continue
					}
					if bodyA.BodyType == body.BodyTypeStatic && bodyB.BodyType == body.BodyTypeStatic {
						continue
					}

					if aabb.Overlaps(bodyB.GetAABB()) {
						pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
					}
				}
			}
		}
	}

	return pairs
}

// worldToCell - converts a world position into cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec2) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
	}
}

// hashCell - hashes a cell into an index in the array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663)
	return h & sg.cellMask
}
