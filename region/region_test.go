package region_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/region"
	"github.com/katalvlaran/dtalearn/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValuationContainsItself(t *testing.T) {
	x, err := clock.NewClock("x", 2)
	require.NoError(t, err)
	y, err := clock.NewClock("y", 2)
	require.NoError(t, err)

	v := valuation.New([]clock.Clock{x, y})
	v, err = v.WithValue(x, rational.FromInts(3, 2)) // 1.5
	require.NoError(t, err)
	v, err = v.WithValue(y, rational.FromInt(1))
	require.NoError(t, err)

	r, err := region.FromValuation(v)
	require.NoError(t, err)

	ok, err := r.Contains(v)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegionRoundTrip(t *testing.T) {
	x, err := clock.NewClock("x", 2)
	require.NoError(t, err)
	y, err := clock.NewClock("y", 2)
	require.NoError(t, err)

	cases := [][2]rational.Rational{
		{rational.FromInt(0), rational.FromInt(0)},
		{rational.FromInts(3, 2), rational.FromInts(1, 2)},
		{rational.FromInt(3), rational.FromInt(3)},
	}

	for _, c := range cases {
		v := valuation.New([]clock.Clock{x, y})
		v, err = v.WithValue(x, c[0])
		require.NoError(t, err)
		v, err = v.WithValue(y, c[1])
		require.NoError(t, err)

		r1, err := region.FromValuation(v)
		require.NoError(t, err)

		built, err := r1.BuildValuation()
		require.NoError(t, err)

		r2, err := region.FromValuation(built)
		require.NoError(t, err)

		assert.Equal(t, r1.FractionOrder(), r2.FractionOrder())
		assert.Equal(t, r1.IntegerPart(x), r2.IntegerPart(x))
		assert.Equal(t, r1.IntegerPart(y), r2.IntegerPart(y))
		assert.Equal(t, r1.IsSaturated(x), r2.IsSaturated(x))
		assert.Equal(t, r1.IsSaturated(y), r2.IsSaturated(y))
	}
}
