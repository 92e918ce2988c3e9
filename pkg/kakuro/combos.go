// Package kakuro: precomputed distinct-digit combination tables.
//
// A Kakuro run of length n with target sum s can only be filled with a set
// of n pairwise-distinct digits from 1..9 summing to s. There are only 511
// non-empty digit subsets, so every (length, sum) bucket is enumerated once
// at package initialization and shared read-only by all solver instances.
// Both the AC-3 propagator and the forward checker consult these tables
// instead of re-enumerating tuples per call.
package kakuro

// comboTable[n][s] lists every digit set of cardinality n summing to s.
// comboUnion[n][s] is the union of those sets: the digits that can appear
// anywhere in a length-n run with target s.
var (
	comboTable [10][46][]Domain
	comboUnion [10][46]Domain
)

func init() {
	for mask := Domain(1); mask <= FullDomain; mask++ {
		n := mask.Count()
		s := mask.Sum()
		comboTable[n][s] = append(comboTable[n][s], mask)
		comboUnion[n][s] |= mask
	}
}

// MinRunSum returns the smallest achievable sum for a run of the given
// length: 1+2+...+length.
func MinRunSum(length int) int { return length * (length + 1) / 2 }

// MaxRunSum returns the largest achievable sum for a run of the given
// length: 9+8+...+(10-length).
func MaxRunSum(length int) int { return length * (19 - length) / 2 }

// Combinations returns every set of `length` distinct digits summing to
// `sum`. The returned slice is shared and must not be modified.
// Returns nil when no combination exists.
func Combinations(length, sum int) []Domain {
	if length < 1 || length > 9 || sum < 0 || sum > 45 {
		return nil
	}
	return comboTable[length][sum]
}

// FeasibleDigits returns the union of all combinations for (length, sum):
// the digits that can participate at all in such a run.
func FeasibleDigits(length, sum int) Domain {
	if length < 1 || length > 9 || sum < 0 || sum > 45 {
		return 0
	}
	return comboUnion[length][sum]
}

// hasSupport reports whether the digits of combo can be assigned one-to-one
// to the variables whose domains are given, each variable receiving a digit
// its domain contains. combo has exactly len(doms) digits. This is the exact
// existence test behind the n-ary arc-consistency revise: a perfect matching
// between run positions and combination digits.
//
// len(doms) <= 8 here (the revised variable is excluded), so a fail-first
// backtracking match is cheap: at each step the variable with the fewest
// remaining digit options is matched first.
func hasSupport(doms []Domain, combo Domain) bool {
	unmatched := combo
	matched := make([]bool, len(doms))
	return matchDigits(doms, matched, unmatched)
}

func matchDigits(doms []Domain, matched []bool, unmatched Domain) bool {
	if unmatched == 0 {
		return true
	}
	// Pick the unmatched variable with the fewest options.
	best := -1
	bestCount := 10
	for i, d := range doms {
		if matched[i] {
			continue
		}
		c := (d & unmatched).Count()
		if c == 0 {
			return false
		}
		if c < bestCount {
			best, bestCount = i, c
		}
	}
	if best == -1 {
		// More digits than variables left; cannot happen for exact combos.
		return false
	}
	options := doms[best] & unmatched
	ok := false
	options.Iterate(func(v int) {
		if ok {
			return
		}
		matched[best] = true
		if matchDigits(doms, matched, unmatched.Remove(v)) {
			ok = true
		}
		matched[best] = false
	})
	return ok
}
