// Package guard implements the symbolic guard algebra of spec.md §4.D:
// atomic difference constraints, conjunctions, DNF, and the combinators
// (and/or/negate/minus/implies/simplify) that let the table and automaton
// packages reason about clock constraints without numeric enumeration.
//
// Errors:
//
//	ErrClockSetMismatch - and/or/minus/implies across different clock sets.
//	ErrAtomTrivial       - negating an atom whose dual is trivially TRUE/FALSE.
package guard

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/rational"
)

// ErrClockSetMismatch indicates two constraints over different clock sets
// were combined.
var ErrClockSetMismatch = errors.New("guard: clock set mismatch")

// ErrAtomTrivial indicates an atom's negation would be trivially TRUE or
// FALSE; see AtomConstraint.Negate.
var ErrAtomTrivial = errors.New("guard: atom negation is trivial")

// AtomConstraint is the primitive difference atom c1 - c2 <=|< V, per
// spec.md §3. c2 == clock.ZeroClock encodes a single-clock bound c1 <=|< V.
type AtomConstraint struct {
	C1     clock.Clock
	C2     clock.Clock
	Bound  rational.Rational
	Closed bool // true: <=, false: <

	// implicit marks an atom NewConjunction auto-added (the c>=0 bound for
	// every non-zero clock) rather than one the caller supplied. Negate
	// skips implicit atoms: their dual is never a meaningful disjunct of
	// the guard the caller wrote, only restates the always-true clock
	// invariant.
	implicit bool
}

// NewAtom constructs c1 - c2 <=|< bound, honoring the invariant of spec.md
// §3: when c1==c2 the pair (closed, bound) must not be (false, bound<=0) nor
// (true, bound<0) -- those are the only atom-level contradictions, which
// would make every valuation violate the atom. Returns the error directly
// rather than silently producing an unsatisfiable-by-construction atom.
func NewAtom(c1, c2 clock.Clock, bound rational.Rational, closed bool) (AtomConstraint, error) {
	if c1.Equal(c2) {
		if !closed && rational.LessEqual(bound, rational.Zero) {
			return AtomConstraint{}, fmt.Errorf("guard: atom c-c < %s is never satisfiable: %w", bound, ErrAtomTrivial)
		}
		if closed && rational.Less(bound, rational.Zero) {
			return AtomConstraint{}, fmt.Errorf("guard: atom c-c <= %s is never satisfiable: %w", bound, ErrAtomTrivial)
		}
	}
	return AtomConstraint{C1: c1, C2: c2, Bound: bound, Closed: closed}, nil
}

// NewSingleClockAtom builds the atom c <=|< bound (c - x0 <=|< bound).
func NewSingleClockAtom(c clock.Clock, bound rational.Rational, closed bool) (AtomConstraint, error) {
	return NewAtom(c, clock.ZeroClock, bound, closed)
}

// NewLowerBoundAtom builds the atom c >=|> bound, represented as
// x0 - c <=|< -bound.
func NewLowerBoundAtom(c clock.Clock, bound rational.Rational, closed bool) (AtomConstraint, error) {
	return NewAtom(clock.ZeroClock, c, rational.Neg(bound), closed)
}

// IsImplicit reports whether NewConjunction added this atom automatically
// rather than the caller supplying it.
func (a AtomConstraint) IsImplicit() bool { return a.implicit }

// IsTrivial reports whether the atom is one of the at-most-single-clock
// trivial shapes `c - c <=|< V` (always true when V>=0 / always true when
// strict and V>0) — informational only; construction already rejects the
// contradictory cases.
func (a AtomConstraint) IsTrivial() bool { return a.C1.Equal(a.C2) }

// Negate returns the single dual atom c2 - c1 <|<= -V, per spec.md §4.D's de
// Morgan rule for a single atom. Fails with ErrAtomTrivial if a is the
// trivial self-difference atom (its dual would be unconditionally
// unsatisfiable or unconditionally satisfiable, not expressible as a single
// well-formed atom on the same clock pair).
func (a AtomConstraint) Negate() (AtomConstraint, error) {
	if a.C1.Equal(a.C2) {
		return AtomConstraint{}, ErrAtomTrivial
	}
	return AtomConstraint{
		C1:     a.C2,
		C2:     a.C1,
		Bound:  rational.Neg(a.Bound),
		Closed: !a.Closed,
	}, nil
}

// IsSatisfied evaluates the atom against a concrete (c1,c2) difference.
func (a AtomConstraint) IsSatisfied(diff rational.Rational) bool {
	if a.Closed {
		return rational.LessEqual(diff, a.Bound)
	}
	return rational.Less(diff, a.Bound)
}

// String renders "c1 - c2 <= V" / "c1 - c2 < V".
func (a AtomConstraint) String() string {
	op := "<"
	if a.Closed {
		op = "<="
	}
	if a.C2.IsZero() {
		return fmt.Sprintf("%s %s %s", a.C1.Name(), op, a.Bound)
	}
	if a.C1.IsZero() {
		return fmt.Sprintf("-%s %s %s", a.C2.Name(), op, a.Bound)
	}
	return fmt.Sprintf("%s - %s %s %s", a.C1.Name(), a.C2.Name(), op, a.Bound)
}
