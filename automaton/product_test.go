package automaton_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/automaton"
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRejectsMismatchedClockSets(t *testing.T) {
	d1, _, _ := buildSingleClock(t)
	y, err := clock.NewClock("y", 2)
	require.NoError(t, err)
	alpha := clock.NewAlphabet()
	_, err = alpha.CreateAction("a")
	require.NoError(t, err)
	d2 := automaton.New([]clock.Clock{y}, alpha)
	q, err := clock.NewLocation("q")
	require.NoError(t, err)
	d2.AddLocation(q)
	require.NoError(t, d2.SetInit(q))

	_, err = automaton.Product(d1, d2, oracle.New())
	assert.ErrorIs(t, err, automaton.ErrIncompatibleClockSets)
}

func TestProductInitAcceptingRequiresBoth(t *testing.T) {
	d, _, _ := buildSingleClock(t)
	o := oracle.New()

	prod, err := automaton.Product(d, d, o)
	require.NoError(t, err)
	assert.False(t, prod.IsAccepting(prod.Init()))
}
