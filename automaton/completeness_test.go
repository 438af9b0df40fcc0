package automaton_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncompleteThenCTAIsComplete(t *testing.T) {
	d, _, _ := buildSingleClock(t)
	o := oracle.New()

	complete, err := d.Complete(o)
	require.NoError(t, err)
	assert.False(t, complete, "q0 has no a-transition for x<1")

	det, err := d.Deterministic(o)
	require.NoError(t, err)
	assert.True(t, det)

	cta, err := d.ToCTA(o)
	require.NoError(t, err)
	complete, err = cta.Complete(o)
	require.NoError(t, err)
	assert.True(t, complete)
}

func TestToCTASinkTransitionsFullyResetClocks(t *testing.T) {
	d, x, a := buildSingleClock(t)
	o := oracle.New()

	cta, err := d.ToCTA(o)
	require.NoError(t, err)

	sink, ok := cta.Sink()
	require.True(t, ok)

	found := false
	for _, loc := range d.Locations() {
		for _, tr := range cta.OutgoingByAction(loc, a) {
			if tr.Target.ID() != sink.ID() {
				continue
			}
			found = true
			require.Len(t, tr.Resets, 1)
			assert.Equal(t, x.ID(), tr.Resets[0].ID())
		}
	}
	assert.True(t, found, "ToCTA should have added at least one transition into the sink")
}

func TestComplementFlipsAcceptance(t *testing.T) {
	d, _, a := buildSingleClock(t)
	o := oracle.New()

	comp, err := d.Complement(o)
	require.NoError(t, err)

	_ = a
	complete, err := comp.Complete(o)
	require.NoError(t, err)
	assert.True(t, complete)
	assert.True(t, comp.IsAccepting(comp.Init()), "q0 was non-accepting in d, so it is accepting in the complement")
}
