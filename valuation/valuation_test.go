package valuation_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValuationIsAllZeroAndIncludesZeroClock(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	v := valuation.New([]clock.Clock{x})

	val, err := v.Value(x)
	require.NoError(t, err)
	assert.True(t, rational.Equal(rational.Zero, val))

	zv, err := v.Value(clock.ZeroClock)
	require.NoError(t, err)
	assert.True(t, rational.Equal(rational.Zero, zv))
}

func TestDelayAdvancesNonZeroClocksOnly(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	v := valuation.New([]clock.Clock{x})

	v2, err := v.Delay(rational.FromInt(2))
	require.NoError(t, err)

	val, err := v2.Value(x)
	require.NoError(t, err)
	assert.True(t, rational.Equal(rational.FromInt(2), val))

	zv, err := v2.Value(clock.ZeroClock)
	require.NoError(t, err)
	assert.True(t, rational.Equal(rational.Zero, zv), "the zero clock never advances")
}

func TestDelayRejectsNegativeDuration(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	v := valuation.New([]clock.Clock{x})

	_, err = v.Delay(rational.FromInt(-1))
	assert.ErrorIs(t, err, valuation.ErrNegativeDelay)
}

func TestResetSetsOnlyNamedClocks(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	y, err := clock.NewClock("y", 3)
	require.NoError(t, err)
	v := valuation.New([]clock.Clock{x, y})

	v, err = v.Delay(rational.FromInt(2))
	require.NoError(t, err)
	v, err = v.Reset([]clock.Clock{x})
	require.NoError(t, err)

	vx, err := v.Value(x)
	require.NoError(t, err)
	assert.True(t, rational.Equal(rational.Zero, vx))

	vy, err := v.Value(y)
	require.NoError(t, err)
	assert.True(t, rational.Equal(rational.FromInt(2), vy))
}

func TestValueAndResetRejectUnknownClock(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	stray, err := clock.NewClock("stray", 1)
	require.NoError(t, err)
	v := valuation.New([]clock.Clock{x})

	_, err = v.Value(stray)
	assert.ErrorIs(t, err, valuation.ErrUnknownClock)

	_, err = v.Reset([]clock.Clock{stray})
	assert.ErrorIs(t, err, valuation.ErrUnknownClock)
}

func TestFractionAndIsFractionZero(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	v := valuation.New([]clock.Clock{x})

	v, err = v.Delay(rational.FromInts(5, 2))
	require.NoError(t, err)

	frac, err := v.Fraction(x)
	require.NoError(t, err)
	assert.True(t, rational.Equal(rational.FromInts(1, 2), frac))

	isZero, err := v.IsFractionZero(x)
	require.NoError(t, err)
	assert.False(t, isZero)
}

func TestWithValueOverridesDirectly(t *testing.T) {
	x, err := clock.NewClock("x", 3)
	require.NoError(t, err)
	v := valuation.New([]clock.Clock{x})

	v2, err := v.WithValue(x, rational.FromInt(7))
	require.NoError(t, err)
	val, err := v2.Value(x)
	require.NoError(t, err)
	assert.True(t, rational.Equal(rational.FromInt(7), val))

	orig, err := v.Value(x)
	require.NoError(t, err)
	assert.True(t, rational.Equal(rational.Zero, orig), "WithValue must not mutate the receiver")
}
