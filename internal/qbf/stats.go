package qbf

import "time"

// Stats accumulates counters over one Solve call, surfaced on Solver the
// way TotalConflicts/TotalRestarts are surfaced on a CDCL solver.
// Grounded on original_source's incdet/stats.rs.
type Stats struct {
	Decisions              int
	Conflicts              int
	ClausesAdded           int
	ConstantPropagations   int
	FunctionPropagations   int
	LocalConflictChecks    int
	GlobalConflictChecks   int
	LocalDeterminismChecks int
	SolveTime              time.Duration
	// ConflictRate is an exponential moving average of conflicts per
	// decision, updated after every decision.
	ConflictRate float64
}
