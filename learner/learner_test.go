package learner_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/automaton"
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/learner"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/teacher"
	"github.com/katalvlaran/dtalearn/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTarget is the same single-clock, single-action, threshold-1 target
// used throughout the automaton and table test suites.
func buildTarget(t *testing.T) *automaton.DTA {
	t.Helper()
	x, err := clock.NewClock("x", 1)
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

func TestLearnConvergesOnThresholdTarget(t *testing.T) {
	target := buildTarget(t)
	tch := teacher.FromDTA(target)

	hyp, stats, err := learner.Learn(target.Clocks, target.Alphabet, tch, learner.WithMaxRounds(5000))
	require.NoError(t, err)
	require.NotNil(t, hyp)
	assert.Greater(t, stats.Rounds, 0)
	assert.GreaterOrEqual(t, stats.EquivalenceQueries, 1)

	a, ok := target.Alphabet.Lookup("a")
	require.True(t, ok)

	rt := automaton.NewRuntime(hyp)
	accepted, err := rt.ExecuteResetDelay(word.ResetDelayWord{{Action: a, Delay: rational.FromInt(1)}})
	require.NoError(t, err)
	assert.True(t, accepted)

	rt = automaton.NewRuntime(hyp)
	accepted, err = rt.ExecuteResetDelay(word.ResetDelayWord{{Action: a, Delay: rational.Zero}})
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestLearnRespectsMaxRounds(t *testing.T) {
	target := buildTarget(t)
	tch := teacher.FromDTA(target)

	_, stats, err := learner.Learn(target.Clocks, target.Alphabet, tch, learner.WithMaxRounds(1))
	if err != nil {
		assert.ErrorIs(t, err, learner.ErrExhausted)
	}
	assert.LessOrEqual(t, stats.Rounds, 1)
}
