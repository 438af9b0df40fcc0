// Package dbm implements the difference-bound-matrix engine of spec.md §4.F:
// canonicalisation (Floyd–Warshall), time elapse ("future"), reset,
// intersection with a guard atom, emptiness, and inclusion. The
// canonicalisation algorithm is grounded on the teacher's
// matrix/impl_floydwarshall.go: same fixed k→i→j loop order and in-place,
// O(1)-extra-space closure, adapted from "+Inf means no path" over plain
// floats to "(bound, strictness) tightened under the bound order" over
// exact rationals.
//
// Errors:
//
//	ErrClockSetMismatch - operating on two DBMs with different clock lists.
package dbm

import (
	"errors"

	"github.com/katalvlaran/dtalearn/rational"
)

// ErrClockSetMismatch indicates two DBMs (or a DBM and a clock reference)
// disagree on the governing clock list.
var ErrClockSetMismatch = errors.New("dbm: clock set mismatch")

// Bound is a single DBM entry: cell (i,j) bounds c_i - c_j by (Value,
// Closed): <= Value if Closed, < Value if not.
type Bound struct {
	Value  rational.Rational
	Closed bool
}

// infBound is the absence of an upper bound: c_i - c_j < +∞.
var infBound = Bound{Value: rational.PosInf, Closed: false}

// zeroClosed is the tightest possible bound of 0, used on the diagonal and
// for row 0 of the initial DBM.
var zeroClosed = Bound{Value: rational.Zero, Closed: true}

// lessTight reports whether bound a is strictly tighter than bound b under
// the DBM order: smaller Value wins; at equal Value, Closed=false (strict,
// "<") is tighter than Closed=true ("<=").
func lessTight(a, b Bound) bool {
	cmp := rational.Compare(a.Value, b.Value)
	if cmp != 0 {
		return cmp < 0
	}
	return !a.Closed && b.Closed
}

// min returns the tighter (smaller) of a and b.
func minBound(a, b Bound) Bound {
	if lessTight(a, b) {
		return a
	}
	return b
}

// addBounds implements the DBM bound semiring's sum: (a,α)+(b,β) =
// (a+b, α∧β) — both endpoints must be closed for the sum to be closed.
func addBounds(a, b Bound) Bound {
	if a.Value.IsInfinite() || b.Value.IsInfinite() {
		return infBound
	}
	v, err := rational.Add(a.Value, b.Value)
	if err != nil {
		return infBound
	}
	return Bound{Value: v, Closed: a.Closed && b.Closed}
}

// leq reports whether bound a is at least as tight as bound b (a implies
// b), i.e. a <= b under the DBM order used by DBM.Include.
func leq(a, b Bound) bool {
	return !lessTight(b, a)
}
