// Package kakuro: conflict set bookkeeping for backjumping.
//
// Conflict sets are plain data: for each variable, the set of
// earlier-assigned variables implicated in the failures observed while
// trying to extend the assignment through it. They are stored as bitmask
// words over variable IDs, mirroring how domains are stored over digits.
package kakuro

import "math/bits"

// varSet is a set of variable IDs backed by uint64 words.
type varSet []uint64

func newVarSet(n int) varSet { return make(varSet, (n+63)/64) }

func (s varSet) add(id int)      { s[id/64] |= 1 << uint(id%64) }
func (s varSet) remove(id int)   { s[id/64] &^= 1 << uint(id%64) }
func (s varSet) has(id int) bool { return s[id/64]&(1<<uint(id%64)) != 0 }

func (s varSet) clear() {
	for i := range s {
		s[i] = 0
	}
}

func (s varSet) isEmpty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

// union merges other into s.
func (s varSet) union(other varSet) {
	for i := range other {
		s[i] |= other[i]
	}
}

func (s varSet) count() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// conflictState tracks, per variable, two ancestor sets:
//
//   - conflicts: ancestors implicated by failed value attempts at this
//     variable (wipeouts and direct constraint violations while it was the
//     current decision).
//   - causes: ancestors whose propagation pruned values from this
//     variable's domain. A variable that exhausts its domain owes part of
//     that failure to whoever shrank the domain before it was even picked.
//
// When a decision is unwound, its variable is removed from every set; the
// sets therefore only ever name currently assigned ancestors, which keeps
// backjump targets valid.
type conflictState struct {
	conflicts []varSet
	causes    []varSet
	scratch   varSet
}

func newConflictState(n int) *conflictState {
	cs := &conflictState{
		conflicts: make([]varSet, n),
		causes:    make([]varSet, n),
		scratch:   newVarSet(n),
	}
	for i := 0; i < n; i++ {
		cs.conflicts[i] = newVarSet(n)
		cs.causes[i] = newVarSet(n)
	}
	return cs
}

// addCause records that pruning variable `victim` was (partly) caused by
// the assigned variables in `culprits`.
func (cs *conflictState) addCause(victim int, culprits varSet) {
	cs.causes[victim].union(culprits)
}

// addConflict records culprits for a failed value attempt at variable v.
func (cs *conflictState) addConflict(v int, culprits varSet) {
	cs.conflicts[v].union(culprits)
}

// accumulated builds the full conflict set for an exhausted variable:
// everything implicated by its failed values plus everything that pruned
// its domain, excluding the variable itself. The returned set aliases
// internal scratch space and is only valid until the next call.
func (cs *conflictState) accumulated(v int) varSet {
	cs.scratch.clear()
	cs.scratch.union(cs.conflicts[v])
	cs.scratch.union(cs.causes[v])
	cs.scratch.remove(v)
	return cs.scratch
}

// forget removes variable v from every conflict and cause set and clears
// v's own conflict set. Called when v's decision is unwound: its assignment
// (and all prunes it caused) no longer exist, and its accumulated conflicts
// have been consumed by the backjump. Its cause set is kept: prunes made on
// v by still-assigned ancestors remain on the trail.
func (cs *conflictState) forget(v int) {
	for i := range cs.conflicts {
		cs.conflicts[i].remove(v)
		cs.causes[i].remove(v)
	}
	cs.conflicts[v].clear()
}
