package solver

import "errors"

// Sentinel errors every high-level solver in this package returns from
// Solve, matching spec.md §7's taxonomy of infeasibility vs. resource
// exhaustion vs. genuine bugs.
var (
	errNoInitialPaths     = errors.New("solver: no feasible unconstrained path for some agent")
	errNoSolution         = errors.New("solver: constraint tree exhausted without a conflict-free node")
	errTimedOut           = errors.New("solver: computation time budget exceeded")
	errNodeBudgetExceeded = errors.New("solver: high-level node budget exceeded")
)
