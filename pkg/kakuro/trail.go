// Package kakuro: the undo trail.
//
// Every domain pruning during propagation or search is appended to a trail
// of single-value removals. Backtracking and backjumping restore domains by
// replaying the trail in reverse down to a saved mark, which guarantees that
// after unwinding past a decision point every domain equals its state
// immediately before that decision — not just the domain of the variable
// being reassigned.
package kakuro

// pruneRecord is one removed value: digit `value` was deleted from the
// domain of variable `varID`.
type pruneRecord struct {
	varID int
	value int
}

// trail is an append-only log of prune records owned by a single solver
// instance.
type trail struct {
	records []pruneRecord
}

// mark returns the current trail position for later undo.
func (t *trail) mark() int { return len(t.records) }

// push records the removal of value from varID's domain.
func (t *trail) push(varID, value int) {
	t.records = append(t.records, pruneRecord{varID: varID, value: value})
}

// undoTo replays removals in reverse back to the mark, restoring the pruned
// values into doms.
func (t *trail) undoTo(mark int, doms []Domain) {
	for i := len(t.records) - 1; i >= mark; i-- {
		rec := t.records[i]
		doms[rec.varID] |= SingleDigit(rec.value)
	}
	t.records = t.records[:mark]
}

// size returns the number of live records.
func (t *trail) size() int { return len(t.records) }
