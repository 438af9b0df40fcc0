package word_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/valuation"
	"github.com/katalvlaran/dtalearn/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetDelayRoundTrip(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	y, err := clock.NewClock("y", 3)
	require.NoError(t, err)
	a, err := clock.NewAction("a")
	require.NoError(t, err)
	b, err := clock.NewAction("b")
	require.NoError(t, err)
	clocks := []clock.Clock{x, y}

	w := word.ResetDelayWord{
		{Action: a, Delay: rational.FromInt(2), Resets: []clock.Clock{x}},
		{Action: b, Delay: rational.FromInts(3, 2), Resets: nil},
	}

	rc, err := word.ResetDelayToResetClock(w, clocks)
	require.NoError(t, err)
	require.Len(t, rc, 2)

	back, err := word.ResetClockToResetDelay(rc, clocks)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.True(t, rational.Equal(back[0].Delay, rational.FromInt(2)))
	assert.True(t, rational.Equal(back[1].Delay, rational.FromInts(3, 2)))
}

func TestInconsistentTimingDetected(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	y, err := clock.NewClock("y", 3)
	require.NoError(t, err)
	a, err := clock.NewAction("a")
	require.NoError(t, err)
	clocks := []clock.Clock{x, y}

	v0 := valuation.New(clocks)
	v1, err := v0.WithValue(x, rational.FromInt(1))
	require.NoError(t, err)
	v1, err = v1.WithValue(y, rational.FromInt(2)) // disagrees with x's implied delay
	require.NoError(t, err)

	rc := word.ResetClockWord{{Action: a, Valuation: v1}}
	_, err = word.ResetClockToResetDelay(rc, clocks)
	assert.ErrorIs(t, err, word.ErrInconsistentTiming)
}
