package dbm_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/dbm"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveDelaySatisfiesGuard(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	v := valuation.New([]clock.Clock{x})

	atom, err := guard.NewLowerBoundAtom(x, rational.FromInt(1), true) // x>=1
	require.NoError(t, err)
	g := guard.NewConjunction([]clock.Clock{x}, atom)

	d, err := dbm.SolveDelay(v, g)
	require.NoError(t, err)
	assert.True(t, rational.LessEqual(rational.FromInt(1), d))

	nv, err := v.Delay(d)
	require.NoError(t, err)
	val, err := nv.Value(x)
	require.NoError(t, err)
	assert.True(t, rational.LessEqual(rational.FromInt(1), val))
}

func TestSolveDelayStrictLowerBoundAddsEpsilon(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	v := valuation.New([]clock.Clock{x})

	atom, err := guard.NewLowerBoundAtom(x, rational.FromInt(1), false) // x>1
	require.NoError(t, err)
	g := guard.NewConjunction([]clock.Clock{x}, atom)

	d, err := dbm.SolveDelay(v, g)
	require.NoError(t, err)
	nv, err := v.Delay(d)
	require.NoError(t, err)
	val, err := nv.Value(x)
	require.NoError(t, err)
	assert.True(t, rational.Less(rational.FromInt(1), val))
}

func TestSolveDelayInfeasible(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	v := valuation.New([]clock.Clock{x})
	v, err = v.WithValue(x, rational.FromInt(5))
	require.NoError(t, err)

	atom, err := guard.NewSingleClockAtom(x, rational.FromInt(2), true) // x<=2, unreachable since x only grows
	require.NoError(t, err)
	g := guard.NewConjunction([]clock.Clock{x}, atom)

	_, err = dbm.SolveDelay(v, g)
	assert.ErrorIs(t, err, dbm.ErrInfeasibleDelay)
}
