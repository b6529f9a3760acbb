package libcbs

import "github.com/elektrokombinacija/mapf-solver/internal/mapf"

// Classify labels a conflict cardinal/semi-cardinal/non-cardinal using the
// two agents' MDDs at the conflict's timestep, per spec.md §4.3: cardinal
// if both sides' MDD layers are forced through the conflict, semi-cardinal
// if exactly one side is, non-cardinal otherwise.
func Classify(c *Conflict, mdd1, mdd2 *MDD) ConflictKind {
	var forced1, forced2 bool
	if c.IsEdge {
		forced1 = mdd1.IsMandatoryEdge(c.T, c.A, c.B)
		forced2 = mdd2.IsMandatoryEdge(c.T, c.B, c.A)
	} else {
		forced1 = mdd1.IsMandatory(c.T, c.V)
		forced2 = mdd2.IsMandatory(c.T, c.V)
	}
	switch {
	case forced1 && forced2:
		return Cardinal
	case forced1 || forced2:
		return SemiCardinal
	default:
		return NonCardinal
	}
}

// GetPrioritizedConflict returns the branch constraints for the
// highest-priority conflict in paths (cardinal, then semi-cardinal, then
// non-cardinal; ties broken by discovery order: smallest timestep, then
// topmost agent pair by id). Returns nil if paths is conflict-free.
func GetPrioritizedConflict(paths mapf.Paths, mdds []*MDD) Constraints {
	conflicts := FindAllConflicts(paths)
	if len(conflicts) == 0 {
		return nil
	}

	best := conflicts[0]
	best.Kind = Classify(best, mdds[best.Agent1], mdds[best.Agent2])
	for _, c := range conflicts[1:] {
		c.Kind = Classify(c, mdds[c.Agent1], mdds[c.Agent2])
		if c.Kind > best.Kind {
			best = c
		}
	}

	branch := best.Branch()
	return Constraints{branch[0], branch[1]}
}
