package guard_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T, name string, kappa int) clock.Clock {
	t.Helper()
	c, err := clock.NewClock(name, kappa)
	require.NoError(t, err)
	return c
}

func TestAtomNegateDual(t *testing.T) {
	x := mustClock(t, "x", 2)
	a, err := guard.NewSingleClockAtom(x, rational.FromInt(3), true) // x <= 3
	require.NoError(t, err)

	na, err := a.Negate()
	require.NoError(t, err)
	assert.False(t, na.Closed) // x > 3, i.e. -x < -3
	assert.True(t, rational.Equal(na.Bound, rational.FromInt(-3)))

	nna, err := na.Negate()
	require.NoError(t, err)
	assert.Equal(t, a.Closed, nna.Closed)
	assert.True(t, rational.Equal(a.Bound, nna.Bound))
}

func TestAtomTrivialConstructionRejected(t *testing.T) {
	x := mustClock(t, "x", 2)
	_, err := guard.NewAtom(x, x, rational.FromInt(-1), true) // x - x <= -1
	assert.ErrorIs(t, err, guard.ErrAtomTrivial)
}

func TestAndRequiresSameClockSet(t *testing.T) {
	x := mustClock(t, "x", 2)
	y := mustClock(t, "y", 2)
	cx := guard.NewConjunction([]clock.Clock{x})
	cy := guard.NewConjunction([]clock.Clock{y})
	_, err := cx.And(cy)
	assert.ErrorIs(t, err, guard.ErrClockSetMismatch)
}

func TestNegateThenAndIsUnsatisfiableShape(t *testing.T) {
	x := mustClock(t, "x", 3)
	atom, err := guard.NewSingleClockAtom(x, rational.FromInt(2), true) // x <= 2
	require.NoError(t, err)
	c := guard.NewConjunction([]clock.Clock{x}, atom)

	dnf := c.Negate() // x > 2
	require.Len(t, dnf.Disjuncts(), 1)

	joined, err := c.And(dnf.Disjuncts()[0])
	require.NoError(t, err)
	// x<=2 AND x>2 over a concrete valuation must reject every value.
	assert.False(t, joined.IsSatisfiedBy(func(c1, c2 clock.Clock) rational.Rational {
		return rational.FromInt(2)
	}))
}

func TestSimplifyFoldsBoundsAndDetectsUnsat(t *testing.T) {
	x := mustClock(t, "x", 5)
	lo, err := guard.NewLowerBoundAtom(x, rational.FromInt(1), true) // x >= 1
	require.NoError(t, err)
	hi, err := guard.NewSingleClockAtom(x, rational.FromInt(3), true) // x <= 3
	require.NoError(t, err)
	tighterHi, err := guard.NewSingleClockAtom(x, rational.FromInt(2), true) // x <= 2
	require.NoError(t, err)

	c := guard.NewConjunction([]clock.Clock{x}, lo, hi, tighterHi)
	simplified := c.Simplify()

	foundUpper := false
	for _, a := range simplified.Atoms() {
		if a.C2.IsZero() && a.C1.Equal(x) {
			assert.True(t, rational.Equal(a.Bound, rational.FromInt(2)), "tighter upper bound must win")
			foundUpper = true
		}
	}
	assert.True(t, foundUpper)

	badLo, err := guard.NewLowerBoundAtom(x, rational.FromInt(5), true) // x >= 5
	require.NoError(t, err)
	contradiction := guard.NewConjunction([]clock.Clock{x}, badLo, hi).Simplify() // x>=5 and x<=3
	assert.Equal(t, guard.False, contradiction.Status())
}

func TestDisjunctiveNegateDisjointIsDisjoint(t *testing.T) {
	x := mustClock(t, "x", 3)
	a1, _ := guard.NewSingleClockAtom(x, rational.FromInt(1), true) // x<=1
	a2, _ := guard.NewLowerBoundAtom(x, rational.FromInt(2), true)  // x>=2
	dnf := guard.NewDisjunction([]clock.Clock{x},
		guard.NewConjunction([]clock.Clock{x}, a1),
		guard.NewConjunction([]clock.Clock{x}, a2),
	)
	disjoint := dnf.NegateDisjoint()
	// ¬(x<=1 ∨ x>=2) = 1<x<2, a single disjunct region.
	assert.Len(t, disjoint.Disjuncts(), 1)
}
