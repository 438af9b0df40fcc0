package dbm_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/dbm"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T, name string, kappa int) clock.Clock {
	t.Helper()
	c, err := clock.NewClock(name, kappa)
	require.NoError(t, err)
	return c
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	x := mustClock(t, "x", 3)
	y := mustClock(t, "y", 3)
	d := dbm.New([]clock.Clock{x, y})
	atom, err := guard.NewSingleClockAtom(x, rational.FromInt(2), true)
	require.NoError(t, err)
	d, err = d.IntersectAtom(atom)
	require.NoError(t, err)

	d.Canonicalize()
	once := d.Copy()
	d.Canonicalize()
	assert.True(t, d.Equal(once), "canonicalizing twice must be a no-op")
}

func TestEmptyZoneDetected(t *testing.T) {
	x := mustClock(t, "x", 3)
	d := dbm.New([]clock.Clock{x})
	upper, err := guard.NewSingleClockAtom(x, rational.FromInt(1), true) // x<=1
	require.NoError(t, err)
	lower, err := guard.NewLowerBoundAtom(x, rational.FromInt(2), true) // x>=2
	require.NoError(t, err)
	d, err = d.IntersectAtom(upper)
	require.NoError(t, err)
	d, err = d.IntersectAtom(lower)
	require.NoError(t, err)
	d.Canonicalize()
	assert.True(t, d.IsEmpty())
}

func TestIncludeSoundness(t *testing.T) {
	x := mustClock(t, "x", 5)
	base := dbm.New([]clock.Clock{x})
	tight, err := guard.NewSingleClockAtom(x, rational.FromInt(2), true) // x<=2
	require.NoError(t, err)
	d2, err := base.IntersectAtom(tight)
	require.NoError(t, err)
	d2.Canonicalize()
	base.Canonicalize()

	included, err := base.Include(d2)
	require.NoError(t, err)
	assert.True(t, included, "a looser zone must include a tighter one")

	includedRev, err := d2.Include(base)
	require.NoError(t, err)
	assert.False(t, includedRev)
}

func TestFutureThenResetEmptyIsNoOp(t *testing.T) {
	x := mustClock(t, "x", 3)
	d := dbm.New([]clock.Clock{x})
	d.Future()
	canon := d.Copy()
	canon.Canonicalize()
	d2, err := d.ResetAll(nil)
	require.NoError(t, err)
	d2.Canonicalize()
	assert.True(t, d2.Equal(canon))
}
