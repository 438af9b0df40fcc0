package clock_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClockRejectsEmptyName(t *testing.T) {
	_, err := clock.NewClock("", 3)
	assert.ErrorIs(t, err, clock.ErrEmptyName)
}

func TestClockIdentityAndZero(t *testing.T) {
	x, err := clock.NewClock("x", 2)
	require.NoError(t, err)
	y, err := clock.NewClock("x", 2)
	require.NoError(t, err)

	assert.False(t, x.Equal(y), "distinct NewClock calls must allocate distinct ids even with the same name")
	assert.True(t, x.Equal(x))
	assert.False(t, x.IsZero())
	assert.True(t, clock.ZeroClock.IsZero())
	assert.Equal(t, 2, x.Kappa())
}

func TestActionEqualityIsByName(t *testing.T) {
	a, err := clock.NewAction("a")
	require.NoError(t, err)
	b, err := clock.NewAction("a")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID(), "ids are still allocated independently")
	assert.True(t, a.Equal(b), "actions with the same name must compare equal")
}

func TestLocationSinkFactory(t *testing.T) {
	q, err := clock.NewLocation("q0")
	require.NoError(t, err)
	assert.False(t, q.IsSink())

	sink := clock.NewSinkLocation("sink")
	assert.True(t, sink.IsSink())
	assert.False(t, q.Equal(sink))
}

func TestAlphabetCreateActionIsIdempotent(t *testing.T) {
	alpha := clock.NewAlphabet()
	a1, err := alpha.CreateAction("a")
	require.NoError(t, err)
	a2, err := alpha.CreateAction("a")
	require.NoError(t, err)
	assert.Equal(t, a1.ID(), a2.ID(), "re-creating an action with the same name must return the original")

	b, err := alpha.CreateAction("b")
	require.NoError(t, err)
	assert.Equal(t, 2, alpha.Len())

	got, ok := alpha.Lookup("b")
	require.True(t, ok)
	assert.True(t, got.Equal(b))

	_, ok = alpha.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, []clock.Action{a1, b}, alpha.Actions(), "Actions preserves insertion order")
}
