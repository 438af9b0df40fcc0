package dbm

import (
	"errors"

	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/valuation"
)

// ErrInfeasibleDelay indicates SolveDelay found no non-negative d satisfying
// guard from v, per spec.md §4.F / §7 (GuessInfeasible at the table layer
// wraps this).
var ErrInfeasibleDelay = errors.New("dbm: no feasible delay satisfies guard")

type delayBound struct {
	set    bool
	value  rational.Rational
	closed bool
}

func tightenLower(b *delayBound, v rational.Rational, closed bool) {
	if !b.set || rational.Less(b.value, v) || (rational.Equal(b.value, v) && b.closed && !closed) {
		b.set, b.value, b.closed = true, v, closed
	}
}

func tightenUpper(b *delayBound, v rational.Rational, closed bool) {
	if !b.set || rational.Less(v, b.value) || (rational.Equal(b.value, v) && b.closed && !closed) {
		b.set, b.value, b.closed = true, v, closed
	}
}

// SolveDelay finds a concrete non-negative delay d such that v.Delay(d)
// satisfies g, per spec.md §4.F's solveDelay. For each atom c1-c2 op V:
//   - both non-zero: the atom doesn't constrain d (the difference is
//     delay-invariant); if already violated, the guard is infeasible.
//   - c1 non-zero, c2 zero: an upper bound on v(c1)+d.
//   - c1 zero, c2 non-zero: a lower bound on v(c2)+d, hence on d.
//   - both zero: checked directly against the concrete (zero) difference.
//
// The chosen open-question resolution (spec.md §9): prefer the interval's
// own lower bound when it is already closed; only add rational.Epsilon when
// the tightest lower bound is strict, rather than always nudging.
func SolveDelay(v valuation.Valuation, g guard.Constraint) (rational.Rational, error) {
	var lower, upper delayBound
	tightenLower(&lower, rational.Zero, true)

	for _, a := range g.Atoms() {
		c1NonZero, c2NonZero := !a.C1.IsZero(), !a.C2.IsZero()
		switch {
		case c1NonZero && c2NonZero:
			d1, err := v.Value(a.C1)
			if err != nil {
				return rational.Rational{}, err
			}
			d2, err := v.Value(a.C2)
			if err != nil {
				return rational.Rational{}, err
			}
			diff, err := rational.Sub(d1, d2)
			if err != nil {
				return rational.Rational{}, err
			}
			if !a.IsSatisfied(diff) {
				return rational.Rational{}, ErrInfeasibleDelay
			}
		case c1NonZero && !c2NonZero:
			// v(c1)+d <=|< V  =>  d <=|< V - v(c1)
			val, err := v.Value(a.C1)
			if err != nil {
				return rational.Rational{}, err
			}
			bound, err := rational.Sub(a.Bound, val)
			if err != nil {
				return rational.Rational{}, err
			}
			tightenUpper(&upper, bound, a.Closed)
		case !c1NonZero && c2NonZero:
			// x0-c2 <=|< V  =>  v(c2)+d >= -V (closed) / > -V (strict)  =>  d >= -V - v(c2)
			val, err := v.Value(a.C2)
			if err != nil {
				return rational.Rational{}, err
			}
			negV := rational.Neg(a.Bound)
			bound, err := rational.Sub(negV, val)
			if err != nil {
				return rational.Rational{}, err
			}
			tightenLower(&lower, bound, a.Closed)
		default:
			if !a.IsSatisfied(rational.Zero) {
				return rational.Rational{}, ErrInfeasibleDelay
			}
		}
	}

	if upper.set {
		cmp := rational.Compare(lower.value, upper.value)
		if cmp > 0 {
			return rational.Rational{}, ErrInfeasibleDelay
		}
		if cmp == 0 && !(lower.closed && upper.closed) {
			return rational.Rational{}, ErrInfeasibleDelay
		}
	}

	d := lower.value
	if !lower.closed {
		d, _ = rational.Add(d, rational.Epsilon)
		if upper.set {
			cmp := rational.Compare(d, upper.value)
			if cmp > 0 || (cmp == 0 && !upper.closed) {
				return rational.Rational{}, ErrInfeasibleDelay
			}
		}
	}
	return d, nil
}

// CheckAtomAgainstDiff is a small exported helper that evaluates a single
// atom against an already-known concrete difference between two clocks,
// without constructing a full DBM.
func CheckAtomAgainstDiff(a guard.AtomConstraint, diff rational.Rational) bool {
	return a.IsSatisfied(diff)
}
