// Package kakuro: arc-consistency propagation (AC-3 over n-ary runs).
//
// The classical AC-3 worklist is generalized: an "arc" is a (variable, run)
// pair, and revising it removes every candidate digit of the variable that
// cannot take part in any distinct-digit combination of the run summing to
// the target, given the other members' current domains. The existence test
// uses the shared combination tables plus an exact digit matching, so no
// tuple enumeration happens per call.
//
// The same machinery serves three configurations: a one-shot preprocessing
// pass before search, full maintenance after every assignment (MAC), and the
// standalone EnforceArcConsistency helper.
package kakuro

import (
	"errors"
	"fmt"
)

// ErrDomainWipeout reports that propagation emptied a variable's domain.
// Inside the solver wipeouts are handled by backtracking; the error is only
// surfaced by the standalone propagation helpers, where an empty domain
// proves the puzzle unsatisfiable from the given state.
var ErrDomainWipeout = errors.New("domain wipeout")

// arc pairs a variable with one of the runs containing it.
type arc struct {
	varID int
	runID int
}

// propagator holds the transient worklist state for one propagation pass.
// It mutates the domains and trail it is given; cause tracking is enabled
// only when cs is non-nil (during search, for backjumping).
type propagator struct {
	g        *ConstraintGraph
	doms     []Domain
	tr       *trail
	stats    *SolverStats
	cs       *conflictState
	assigned []int // nil outside search; 0 means unassigned

	queue    []arc
	queued   []uint8 // bit r set when (var, var.Runs[r]) is enqueued
	culprits varSet
	scratch  []Domain
}

func newPropagator(g *ConstraintGraph, doms []Domain, tr *trail, stats *SolverStats) *propagator {
	return &propagator{
		g:       g,
		doms:    doms,
		tr:      tr,
		stats:   stats,
		queued:  make([]uint8, g.VariableCount()),
		scratch: make([]Domain, 0, 8),
	}
}

// enableCauses turns on conflict-set attribution for search-time use.
func (p *propagator) enableCauses(cs *conflictState, assigned []int) {
	p.cs = cs
	p.assigned = assigned
	p.culprits = newVarSet(p.g.VariableCount())
}

func (p *propagator) enqueue(varID, runID int) {
	v := &p.g.Variables()[varID]
	for slot, rid := range v.Runs {
		if rid == runID {
			bit := uint8(1) << uint(slot)
			if p.queued[varID]&bit == 0 {
				p.queued[varID] |= bit
				p.queue = append(p.queue, arc{varID: varID, runID: runID})
			}
			return
		}
	}
}

// enqueueAll seeds every (variable, run) arc in the graph.
func (p *propagator) enqueueAll() {
	for _, r := range p.g.Runs() {
		for _, vid := range r.Vars {
			p.enqueue(vid, r.ID)
		}
	}
}

// enqueueNeighbors seeds the arcs of every variable sharing a run with
// varID, excluding varID itself. Used after an assignment (MAC).
func (p *propagator) enqueueNeighbors(varID int) {
	v := &p.g.Variables()[varID]
	for _, rid := range v.Runs {
		for _, other := range p.g.Runs()[rid].Vars {
			if other != varID {
				p.enqueue(other, rid)
			}
		}
	}
}

// run processes the worklist to a fixed point. Returns the wiped-out
// variable ID, or -1 if local arc consistency was reached.
func (p *propagator) run() int {
	for len(p.queue) > 0 {
		a := p.queue[0]
		p.queue = p.queue[1:]
		p.unmarkQueued(a)

		if wiped := p.revise(a.varID, a.runID); wiped {
			p.queue = p.queue[:0]
			for i := range p.queued {
				p.queued[i] = 0
			}
			return a.varID
		}
	}
	return -1
}

func (p *propagator) unmarkQueued(a arc) {
	v := &p.g.Variables()[a.varID]
	for slot, rid := range v.Runs {
		if rid == a.runID {
			p.queued[a.varID] &^= uint8(1) << uint(slot)
		}
	}
}

// revise removes every unsupported candidate of varID with respect to the
// run. Returns true if the domain was wiped out. Any removal re-enqueues
// the sibling arcs of the run (their support may be gone too).
func (p *propagator) revise(varID, runID int) bool {
	run := &p.g.Runs()[runID]
	if p.stats != nil {
		p.stats.ArcRevisions++
	}

	// Domains of the other run members, in run order.
	others := p.scratch[:0]
	for _, vid := range run.Vars {
		if vid != varID {
			others = append(others, p.doms[vid])
		}
	}

	combos := Combinations(run.Len(), run.Target)
	removedAny := false
	dom := p.doms[varID]
	dom.Iterate(func(v int) {
		if p.supported(others, combos, v) {
			return
		}
		p.doms[varID] = p.doms[varID].Remove(v)
		p.tr.push(varID, v)
		if p.stats != nil {
			p.stats.ValuesPruned++
			p.stats.recordTrail(p.tr.size())
		}
		removedAny = true
	})

	if removedAny {
		if p.cs != nil {
			p.attributeCause(varID, run)
		}
		if p.doms[varID].IsEmpty() {
			if p.stats != nil {
				p.stats.Wipeouts++
			}
			return true
		}
		for _, vid := range run.Vars {
			if vid != varID {
				p.enqueue(vid, runID)
			}
		}
		// The members of the variable's other run consulted the now-smaller
		// domain for their support, so their arcs need revisiting too. The
		// variable's own remaining values are unaffected by its own shrink.
		for _, rid := range p.g.Variables()[varID].Runs {
			if rid == runID {
				continue
			}
			for _, vid := range p.g.Runs()[rid].Vars {
				if vid != varID {
					p.enqueue(vid, rid)
				}
			}
		}
	}
	return false
}

// supported reports whether candidate v of the revised variable has at
// least one distinct-digit combination of the run compatible with the other
// members' domains.
func (p *propagator) supported(others []Domain, combos []Domain, v int) bool {
	match := make([]Domain, len(others))
	for _, combo := range combos {
		if !combo.Has(v) {
			continue
		}
		rest := combo.Remove(v)
		feasible := true
		for i, d := range others {
			match[i] = d & rest
			if match[i] == 0 {
				feasible = false
				break
			}
		}
		if feasible && hasSupport(match, rest) {
			return true
		}
	}
	return false
}

// attributeCause records which assigned variables are responsible for the
// prunes just made on varID: the assigned members of the run plus everyone
// already implicated in pruning any member of the run.
func (p *propagator) attributeCause(varID int, run *Run) {
	p.culprits.clear()
	for _, vid := range run.Vars {
		if vid != varID && p.assigned[vid] != 0 {
			p.culprits.add(vid)
		}
		p.culprits.union(p.cs.causes[vid])
	}
	p.culprits.remove(varID)
	p.cs.addCause(varID, p.culprits)
}

// EnforceArcConsistency runs AC-3 to a fixed point over a copy of the given
// domains (pass nil for full initial domains) and returns the pruned copy.
// Returns ErrDomainWipeout (wrapped, naming the cell) if some domain
// empties, which proves no solution is reachable from the given state.
func EnforceArcConsistency(g *ConstraintGraph, doms []Domain) ([]Domain, error) {
	work := make([]Domain, g.VariableCount())
	if doms == nil {
		copy(work, g.InitialDomains())
	} else {
		if len(doms) != g.VariableCount() {
			return nil, fmt.Errorf("domain slice has %d entries, graph has %d variables",
				len(doms), g.VariableCount())
		}
		copy(work, doms)
	}

	var tr trail
	p := newPropagator(g, work, &tr, nil)
	p.enqueueAll()
	if wiped := p.run(); wiped >= 0 {
		return work, fmt.Errorf("%w at cell %s", ErrDomainWipeout, g.Variables()[wiped].Cell)
	}
	return work, nil
}
