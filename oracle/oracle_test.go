package oracle_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/oracle"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSatisfiableAndIsTrue(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	o := oracle.New()

	upper, err := guard.NewSingleClockAtom(x, rational.FromInt(2), true) // x<=2
	require.NoError(t, err)
	lower, err := guard.NewLowerBoundAtom(x, rational.FromInt(1), true) // x>=1
	require.NoError(t, err)
	c := guard.NewConjunction([]clock.Clock{x}, upper, lower)

	sat, err := o.IsSatisfiable(c)
	require.NoError(t, err)
	assert.True(t, sat)

	valid, err := o.IsTrue(c)
	require.NoError(t, err)
	assert.False(t, valid, "1<=x<=2 is not valid over all x>=0")

	contradictory := guard.NewConjunction([]clock.Clock{x}, upper,
		mustLower(t, x, rational.FromInt(5)))
	sat, err = o.IsSatisfiable(contradictory)
	require.NoError(t, err)
	assert.False(t, sat)
}

func mustLower(t *testing.T, c clock.Clock, bound rational.Rational) guard.AtomConstraint {
	t.Helper()
	a, err := guard.NewLowerBoundAtom(c, bound, true)
	require.NoError(t, err)
	return a
}

func TestTrueConjunctionIsValid(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	o := oracle.New()
	empty := guard.NewConjunction([]clock.Clock{x}) // just x>=0
	valid, err := o.IsTrue(empty)
	require.NoError(t, err)
	assert.True(t, valid, "x>=0 holds for every x in the non-negative orthant")
}
