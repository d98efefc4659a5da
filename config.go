package rigid2d

// Config gathers the numeric tolerances and iteration bounds of the
// engine. It is passed at world construction; there is no process-wide
// tolerance state.
type Config struct {
	// DistanceTolerance is the separation below which two bodies are in
	// contact, and the penetration beyond which an approach counts as a
	// collision.
	DistanceTolerance float64
	// VelocityTolerance separates "resting" from "closing" relative
	// normal velocity.
	VelocityTolerance float64
	// TimeTolerance is the smallest meaningful sub-step; backtracking
	// stops narrowing below it.
	TimeTolerance float64
	// SimilarityTolerance filters duplicate contact records produced by
	// adjacent edge pairs at the same physical point.
	SimilarityTolerance float64

	// MaxSolverIterations bounds the contact force solver.
	MaxSolverIterations int
	// SolverTolerance is the complementarity acceptance threshold.
	SolverTolerance float64
	// MaxBacktracks bounds the collision time search and the number of
	// consecutive zero-progress sub-steps before the step is declared
	// stuck.
	MaxBacktracks int

	// Broad-phase grid sizing.
	GridCellSize float64
	GridCells    int
}

// DefaultConfig returns the documented defaults. They suit bodies of
// roughly unit scale; scale DistanceTolerance with the scene.
func DefaultConfig() Config {
	return Config{
		DistanceTolerance:   0.01,
		VelocityTolerance:   0.005,
		TimeTolerance:       1e-7,
		SimilarityTolerance: 0.005,
		MaxSolverIterations: 400,
		SolverTolerance:     1e-6,
		MaxBacktracks:       60,
		GridCellSize:        2.0,
		GridCells:           1024,
	}
}
