package word

import (
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/valuation"
)

// ResetDelayToResetClock converts w to a ResetClockWord by accumulating a
// valuation over clocks, delaying then resetting at each step, annotating
// the valuation *before* the reset is applied, per spec.md §4.I.
func ResetDelayToResetClock(w ResetDelayWord, clocks []clock.Clock) (ResetClockWord, error) {
	v := valuation.New(clocks)
	out := make(ResetClockWord, 0, len(w))
	for _, step := range w {
		nv, err := v.Delay(step.Delay)
		if err != nil {
			return nil, err
		}
		out = append(out, ResetClockStep{Action: step.Action, Valuation: nv, Resets: step.Resets})
		rv, err := nv.Reset(step.Resets)
		if err != nil {
			return nil, err
		}
		v = rv
	}
	return out, nil
}

// ResetClockToResetDelay recovers a ResetDelayWord from w by inferring each
// step's delay from v_i = v'_{i-1} + t_i*1 where v'_{i-1} is the prior
// post-reset valuation, per spec.md §4.I. All non-zero clocks not reset
// since v'_{i-1} must agree on the inferred delay; disagreement or a
// negative inferred delay fails with ErrInconsistentTiming.
func ResetClockToResetDelay(w ResetClockWord, clocks []clock.Clock) (ResetDelayWord, error) {
	prev := valuation.New(clocks)
	out := make(ResetDelayWord, 0, len(w))
	for _, step := range w {
		t, err := inferDelay(prev, step.Valuation, clocks)
		if err != nil {
			return nil, err
		}
		out = append(out, ResetDelayStep{Action: step.Action, Delay: t, Resets: step.Resets})
		rv, err := step.Valuation.Reset(step.Resets)
		if err != nil {
			return nil, err
		}
		prev = rv
	}
	return out, nil
}

// inferDelay finds t such that prev.Delay(t) agrees with cur on every
// non-zero clock, failing with ErrInconsistentTiming on disagreement or a
// negative result.
func inferDelay(prev, cur valuation.Valuation, clocks []clock.Clock) (rational.Rational, error) {
	var t rational.Rational
	have := false
	for _, c := range clocks {
		if c.IsZero() {
			continue
		}
		pv, err := prev.Value(c)
		if err != nil {
			return rational.Rational{}, err
		}
		cv, err := cur.Value(c)
		if err != nil {
			return rational.Rational{}, err
		}
		diff, err := rational.Sub(cv, pv)
		if err != nil {
			return rational.Rational{}, err
		}
		if !have {
			t = diff
			have = true
			continue
		}
		if !rational.Equal(t, diff) {
			return rational.Rational{}, ErrInconsistentTiming
		}
	}
	if !have {
		t = rational.Zero
	}
	if t.Sign() < 0 {
		return rational.Rational{}, ErrInconsistentTiming
	}
	return t, nil
}

// ResetRegionToResetDelay converts a ResetRegionWord into a ResetDelayWord
// by resolving each step's region to a concrete delay via RegionResetToResetClock
// then recovering delays via ResetClockToResetDelay, per spec.md §4.I.
func ResetRegionToResetDelay(w ResetRegionWord, clocks []clock.Clock) (ResetDelayWord, error) {
	steps := make(RegionTimedWord, len(w))
	resets := make([][]clock.Clock, len(w))
	for i, s := range w {
		steps[i] = RegionStep{Action: s.Action, Region: s.Region}
		resets[i] = s.Resets
	}
	rc, err := RegionResetToResetClock(steps, resets, clocks)
	if err != nil {
		return nil, err
	}
	return ResetClockToResetDelay(rc, clocks)
}

// RegionResetToResetClock converts a RegionTimedWord plus a parallel
// reset-sequence into a ResetClockWord by calling the region delay solver
// (region.Region.SolveDelay) at each step, per spec.md §4.I. Fails if any
// step has no valid delay (wraps region.ErrUnreachable).
func RegionResetToResetClock(steps RegionTimedWord, resets [][]clock.Clock, clocks []clock.Clock) (ResetClockWord, error) {
	v := valuation.New(clocks)
	out := make(ResetClockWord, 0, len(steps))
	for i, step := range steps {
		d, err := step.Region.SolveDelay(v)
		if err != nil {
			return nil, err
		}
		nv, err := v.Delay(d)
		if err != nil {
			return nil, err
		}
		var rs []clock.Clock
		if i < len(resets) {
			rs = resets[i]
		}
		out = append(out, ResetClockStep{Action: step.Action, Valuation: nv, Resets: rs})
		rv, err := nv.Reset(rs)
		if err != nil {
			return nil, err
		}
		v = rv
	}
	return out, nil
}
