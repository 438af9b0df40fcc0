package automaton_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/automaton"
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/oracle"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildThreshold builds a single-clock, single-location-pair DTA accepting
// after an a-transition guarded by x>=bound.
func buildThreshold(t *testing.T, x clock.Clock, alpha *clock.Alphabet, a clock.Action, bound int64) *automaton.DTA {
	t.Helper()
	d := automaton.New([]clock.Clock{x}, alpha)
	q0, err := clock.NewLocation("q0")
	require.NoError(t, err)
	q1, err := clock.NewLocation("q1")
	require.NoError(t, err)
	d.AddLocation(q0)
	d.AddLocation(q1)
	require.NoError(t, d.SetInit(q0))
	d.MarkAccepting(q1)

	atom, err := guard.NewLowerBoundAtom(x, rational.FromInt(bound), true)
	require.NoError(t, err)
	g := guard.NewConjunction([]clock.Clock{x}, atom)
	_, err = d.AddTransition(q0, a, g, nil, q1)
	require.NoError(t, err)

	atomLt, err := guard.NewSingleClockAtom(x, rational.FromInt(bound), false)
	require.NoError(t, err)
	gLoop := guard.NewConjunction([]clock.Clock{x}, atomLt)
	_, err = d.AddTransition(q0, a, gLoop, nil, q0)
	require.NoError(t, err)
	gTrue := guard.NewConjunction([]clock.Clock{x})
	_, err = d.AddTransition(q1, a, gTrue, nil, q1)
	require.NoError(t, err)
	return d
}

func TestFindWitnessDistinguishesDifferentThresholds(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	alpha := clock.NewAlphabet()
	a, err := alpha.CreateAction("a")
	require.NoError(t, err)

	d1 := buildThreshold(t, x, alpha, a, 1)
	d2 := buildThreshold(t, x, alpha, a, 2)

	o := oracle.New()
	w, found, err := automaton.FindWitness(d1, d2, o)
	require.NoError(t, err)
	require.True(t, found)
	require.NotEmpty(t, w)

	r1 := automaton.NewRuntime(d1)
	ok1, _, err := r1.Execute(w)
	require.NoError(t, err)
	r2 := automaton.NewRuntime(d2)
	ok2, _, err := r2.Execute(w)
	require.NoError(t, err)
	assert.NotEqual(t, ok1, ok2, "witness word must be accepted by exactly one of the two DTAs")
}

func TestFindWitnessNoneForIdenticalAutomata(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	alpha := clock.NewAlphabet()
	a, err := alpha.CreateAction("a")
	require.NoError(t, err)

	d1 := buildThreshold(t, x, alpha, a, 1)
	d2 := buildThreshold(t, x, alpha, a, 1)

	o := oracle.New()
	_, found, err := automaton.FindWitness(d1, d2, o)
	require.NoError(t, err)
	assert.False(t, found)
}
