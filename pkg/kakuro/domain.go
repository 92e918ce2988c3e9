// Package kakuro provides a constraint-satisfaction solver for Kakuro puzzles.
// This file defines the Domain type representing the candidate digits of a
// blank cell as a compact bitmask.
package kakuro

import (
	"fmt"
	"math/bits"
	"strings"
)

// Domain represents a set of candidate digits for a single cell.
// Bit i (0-based) set means digit i+1 is still a candidate. Domains are
// value types: operations return new domains rather than mutating in place,
// so snapshots on the undo trail stay valid without defensive copying.
type Domain uint16

// FullDomain contains every digit 1..9.
const FullDomain Domain = (1 << 9) - 1

// DomainOf builds a domain containing exactly the given digits.
// Digits outside 1..9 are ignored.
func DomainOf(digits ...int) Domain {
	var d Domain
	for _, v := range digits {
		if v >= 1 && v <= 9 {
			d |= 1 << uint(v-1)
		}
	}
	return d
}

// SingleDigit returns the singleton domain {v}.
func SingleDigit(v int) Domain {
	if v < 1 || v > 9 {
		return 0
	}
	return 1 << uint(v-1)
}

// Has returns true if the domain contains the digit.
func (d Domain) Has(v int) bool {
	if v < 1 || v > 9 {
		return false
	}
	return d&(1<<uint(v-1)) != 0
}

// Remove returns a new domain without the digit.
func (d Domain) Remove(v int) Domain {
	if v < 1 || v > 9 {
		return d
	}
	return d &^ (1 << uint(v-1))
}

// Count returns the number of candidate digits.
func (d Domain) Count() int {
	return bits.OnesCount16(uint16(d))
}

// IsEmpty returns true if no candidates remain. An empty domain marks a
// dead end in the search.
func (d Domain) IsEmpty() bool { return d == 0 }

// IsSingleton returns true if exactly one candidate remains.
func (d Domain) IsSingleton() bool {
	return d != 0 && d&(d-1) == 0
}

// SingletonValue returns the single digit if IsSingleton() is true.
// Panics otherwise.
func (d Domain) SingletonValue() int {
	if !d.IsSingleton() {
		panic(fmt.Sprintf("SingletonValue called on non-singleton domain %s", d))
	}
	return bits.TrailingZeros16(uint16(d)) + 1
}

// Min returns the smallest candidate digit, or 0 if the domain is empty.
func (d Domain) Min() int {
	if d == 0 {
		return 0
	}
	return bits.TrailingZeros16(uint16(d)) + 1
}

// Max returns the largest candidate digit, or 0 if the domain is empty.
func (d Domain) Max() int {
	if d == 0 {
		return 0
	}
	return 16 - bits.LeadingZeros16(uint16(d))
}

// Iterate calls f for each candidate digit in ascending order.
func (d Domain) Iterate(f func(v int)) {
	for w := uint16(d); w != 0; w &= w - 1 {
		f(bits.TrailingZeros16(w) + 1)
	}
}

// Values returns the candidate digits as a sorted slice.
func (d Domain) Values() []int {
	out := make([]int, 0, d.Count())
	d.Iterate(func(v int) { out = append(out, v) })
	return out
}

// Intersect returns the digits present in both domains.
func (d Domain) Intersect(other Domain) Domain { return d & other }

// Union returns the digits present in either domain.
func (d Domain) Union(other Domain) Domain { return d | other }

// Sum returns the total of all candidate digits. For a combination set
// this is the sum the combination achieves.
func (d Domain) Sum() int {
	total := 0
	d.Iterate(func(v int) { total += v })
	return total
}

// String returns a human-readable representation, e.g. "{1,3,5}".
func (d Domain) String() string {
	if d == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	first := true
	d.Iterate(func(v int) {
		if !first {
			b.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&b, "%d", v)
	})
	b.WriteByte('}')
	return b.String()
}
