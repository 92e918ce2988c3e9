// Package kakuro: solver statistics.
package kakuro

import "time"

// SolverStats collects counters describing one solve. A solver instance
// owns its stats exclusively; read them from the Result after Solve
// returns.
type SolverStats struct {
	// Search statistics
	Assignments    int           // values tentatively assigned
	Backtracks     int           // chronological one-level retreats
	Backjumps      int           // multi-level conflict-directed retreats
	LevelsSkipped  int           // decision levels jumped over in total
	SolutionsFound int           // solutions recorded
	MaxDepth       int           // deepest decision stack seen
	SearchTime     time.Duration // wall time of the whole solve

	// Propagation statistics
	ArcRevisions int // (variable, run) arcs revised by AC-3
	ValuesPruned int // domain values removed by any technique
	Wipeouts     int // domains emptied during lookahead

	// Memory statistics
	PeakTrailSize int // largest number of live trail records
}

func (st *SolverStats) recordDepth(depth int) {
	if depth > st.MaxDepth {
		st.MaxDepth = depth
	}
}

func (st *SolverStats) recordTrail(size int) {
	if size > st.PeakTrailSize {
		st.PeakTrailSize = size
	}
}
