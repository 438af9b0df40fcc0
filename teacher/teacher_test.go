package teacher_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/automaton"
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/teacher"
	"github.com/katalvlaran/dtalearn/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTarget(t *testing.T) *automaton.DTA {
	t.Helper()
	x, err := clock.NewClock("x", 2)
	require.NoError(t, err)
	alpha := clock.NewAlphabet()
	a, err := alpha.CreateAction("a")
	require.NoError(t, err)
	d := automaton.New([]clock.Clock{x}, alpha)
	q0, err := clock.NewLocation("q0")
	require.NoError(t, err)
	q1, err := clock.NewLocation("q1")
	require.NoError(t, err)
	d.AddLocation(q0)
	d.AddLocation(q1)
	require.NoError(t, d.SetInit(q0))
	d.MarkAccepting(q1)

	geq1, err := guard.NewLowerBoundAtom(x, rational.FromInt(1), true)
	require.NoError(t, err)
	_, err = d.AddTransition(q0, a, guard.NewConjunction([]clock.Clock{x}, geq1), nil, q1)
	require.NoError(t, err)
	_, err = d.AddTransition(q1, a, guard.NewConjunction([]clock.Clock{x}), nil, q1)
	require.NoError(t, err)
	return d
}

func TestMembershipMatchesRuntime(t *testing.T) {
	target := buildTarget(t)
	tch := teacher.FromDTA(target)

	a, _ := target.Alphabet.Lookup("a")
	ok, err := tch.Membership(word.DelayTimedWord{{Action: a, Delay: rational.FromInt(1)}})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = tch.Membership(word.DelayTimedWord{{Action: a, Delay: rational.Zero}})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEquivalenceFindsWitnessForWrongHypothesis(t *testing.T) {
	target := buildTarget(t)
	tch := teacher.FromDTA(target)

	// A hypothesis that never accepts is wrong.
	alpha := target.Alphabet
	hyp := automaton.New(target.Clocks, alpha)
	q0, err := clock.NewLocation("q0")
	require.NoError(t, err)
	hyp.AddLocation(q0)
	require.NoError(t, hyp.SetInit(q0))
	a, _ := alpha.Lookup("a")
	_, err = hyp.AddTransition(q0, a, guard.NewConjunction(target.Clocks), nil, q0)
	require.NoError(t, err)

	w, equiv, err := tch.Equivalence(hyp)
	require.NoError(t, err)
	assert.False(t, equiv)
	assert.NotNil(t, w)
}
