package automaton_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/automaton"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntimeExecuteAcceptsAfterDelay(t *testing.T) {
	d, _, a := buildSingleClock(t)
	r := automaton.NewRuntime(d)

	w := word.DelayTimedWord{{Action: a, Delay: rational.FromInt(1)}}
	ok, trace, err := r.Execute(w)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, r.Accepting())
	require.Len(t, trace, 1)
}

func TestRuntimeExecuteRejectsStuckWord(t *testing.T) {
	d, _, a := buildSingleClock(t)
	r := automaton.NewRuntime(d)

	// x has not advanced, guard x>=1 fails: q0 has no enabled a-transition.
	w := word.DelayTimedWord{{Action: a, Delay: rational.Zero}}
	ok, _, err := r.Execute(w)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuntimePushPop(t *testing.T) {
	d, _, a := buildSingleClock(t)
	r := automaton.NewRuntime(d)
	r.Push()

	w := word.DelayTimedWord{{Action: a, Delay: rational.FromInt(1)}}
	_, _, err := r.Execute(w)
	require.NoError(t, err)
	assert.True(t, r.Accepting())

	require.NoError(t, r.Pop())
	assert.False(t, r.Accepting())
	assert.Equal(t, d.Init(), r.Location())
}

func TestRuntimePopEmptyStack(t *testing.T) {
	d, _, _ := buildSingleClock(t)
	r := automaton.NewRuntime(d)
	assert.ErrorIs(t, r.Pop(), automaton.ErrEmptyStack)
}
