// Package kakuro: forward checking.
//
// Forward checking is the cheap, assignment-scoped lookahead: when a value
// is committed to a cell, only the one or two runs through that cell are
// examined. Unassigned members of those runs lose any candidate that either
// repeats an already-used digit or cannot appear in a distinct-digit
// combination covering the remaining target with the remaining slots. The
// feasibility test reuses the same combination tables as the AC-3
// propagator.
package kakuro

// forwardChecker prunes the runs touching a single assignment. It shares
// the solver's domains, trail, and conflict bookkeeping.
type forwardChecker struct {
	g        *ConstraintGraph
	doms     []Domain
	tr       *trail
	stats    *SolverStats
	cs       *conflictState
	assigned []int
	culprits varSet
}

func newForwardChecker(g *ConstraintGraph, doms []Domain, tr *trail, stats *SolverStats, cs *conflictState, assigned []int) *forwardChecker {
	return &forwardChecker{
		g:        g,
		doms:     doms,
		tr:       tr,
		stats:    stats,
		cs:       cs,
		assigned: assigned,
		culprits: newVarSet(g.VariableCount()),
	}
}

// check prunes after assigning varID. Returns the wiped-out variable ID, or
// -1 if every touched domain stayed non-empty.
func (f *forwardChecker) check(varID int) int {
	for _, rid := range f.g.Variables()[varID].Runs {
		if wiped := f.checkRun(&f.g.Runs()[rid], varID); wiped >= 0 {
			return wiped
		}
	}
	return -1
}

// checkRun prunes the unassigned members of one run.
func (f *forwardChecker) checkRun(run *Run, trigger int) int {
	used := Domain(0)
	partial := 0
	remaining := 0
	for _, vid := range run.Vars {
		if v := f.assigned[vid]; v != 0 {
			used |= SingleDigit(v)
			partial += v
		} else {
			remaining++
		}
	}
	if remaining == 0 {
		return -1 // fully assigned; consistency was checked at assignment time
	}

	residual := run.Target - partial
	for _, vid := range run.Vars {
		if f.assigned[vid] != 0 {
			continue
		}
		removedAny := false
		dom := f.doms[vid]
		dom.Iterate(func(w int) {
			if f.valueFeasible(w, used, residual, remaining) {
				return
			}
			f.doms[vid] = f.doms[vid].Remove(w)
			f.tr.push(vid, w)
			if f.stats != nil {
				f.stats.ValuesPruned++
				f.stats.recordTrail(f.tr.size())
			}
			removedAny = true
		})
		if removedAny {
			if f.cs != nil {
				f.attributeCause(vid, run)
			}
			if f.doms[vid].IsEmpty() {
				if f.stats != nil {
					f.stats.Wipeouts++
				}
				return vid
			}
		}
	}
	return -1
}

// valueFeasible reports whether digit w can still be placed in the run:
// it must not repeat an assigned digit, and some combination of `remaining`
// distinct digits summing to `residual` must contain w while avoiding every
// used digit.
func (f *forwardChecker) valueFeasible(w int, used Domain, residual, remaining int) bool {
	if used.Has(w) {
		return false
	}
	for _, combo := range Combinations(remaining, residual) {
		if combo.Has(w) && combo&used == 0 {
			return true
		}
	}
	return false
}

// attributeCause mirrors the propagator's attribution: the assigned members
// of the run are the culprits for prunes made on vid.
func (f *forwardChecker) attributeCause(vid int, run *Run) {
	f.culprits.clear()
	for _, member := range run.Vars {
		if member != vid && f.assigned[member] != 0 {
			f.culprits.add(member)
		}
	}
	f.cs.addCause(vid, f.culprits)
}
