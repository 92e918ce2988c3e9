// Package kakuro: variable and value ordering.
//
// The fail-first principle: branch on the variable most likely to fail so
// failures surface near the top of the tree. Selection is minimum remaining
// values, tie-broken by the tightest run (fewest unassigned slots), then by
// lowest variable ID so runs are deterministic.
package kakuro

// ValueOrder controls the order in which candidate digits are tried.
type ValueOrder int

const (
	ValueOrderAsc ValueOrder = iota
	ValueOrderDesc
)

func (o ValueOrder) String() string {
	if o == ValueOrderDesc {
		return "descending"
	}
	return "ascending"
}

// selectVariable returns the unassigned variable to branch on next, or -1
// if every variable is assigned. When failFirst is false the lowest
// unassigned ID is returned (the baseline static order, matching the
// original lexicographic behavior).
func selectVariable(g *ConstraintGraph, doms []Domain, assigned []int, failFirst bool) int {
	best := -1
	bestSize := 0
	bestSlack := 0
	for i := range g.Variables() {
		if assigned[i] != 0 {
			continue
		}
		if !failFirst {
			return i
		}
		size := doms[i].Count()
		slack := minRunSlack(g, assigned, i)
		if best == -1 || size < bestSize || (size == bestSize && slack < bestSlack) {
			best, bestSize, bestSlack = i, size, slack
		}
	}
	return best
}

// minRunSlack returns the smallest number of unassigned slots across the
// runs containing the variable. Fewer open slots means a denser constraint,
// which breaks MRV ties toward the more constrained cell.
func minRunSlack(g *ConstraintGraph, assigned []int, varID int) int {
	slack := 10
	for _, rid := range g.Variables()[varID].Runs {
		open := 0
		for _, vid := range g.Runs()[rid].Vars {
			if assigned[vid] == 0 {
				open++
			}
		}
		if open < slack {
			slack = open
		}
	}
	return slack
}

// orderValues lists the candidate digits of a domain in the configured
// order. Ordering only changes which solution is found first, never whether
// one is found.
func orderValues(dom Domain, order ValueOrder) []int {
	vals := dom.Values()
	if order == ValueOrderDesc {
		for i, j := 0, len(vals)-1; i < j; i, j = i+1, j-1 {
			vals[i], vals[j] = vals[j], vals[i]
		}
	}
	return vals
}
