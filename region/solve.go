package region

import (
	"errors"

	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/valuation"
)

// ErrUnreachable indicates the delay computed by Region.SolveDelay does not
// place v in region r, i.e. the "alternative delay solver... for a target
// region" of spec.md §4.F failed to find a feasible d.
var ErrUnreachable = errors.New("region: no delay from valuation reaches region")

// SolveDelay computes a non-negative delay d such that v.Delay(d) lies in
// r, per spec.md §4.F's region-targeted delay solver:
// per-clock minimum d to hit either the exact target integer (zero-fraction
// clocks) or the needed floor (everyone else, saturated clocks targeting
// κ+1); take the pointwise max; verify the resulting valuation lies in the
// region; report ErrUnreachable otherwise.
func (r Region) SolveDelay(v valuation.Valuation) (rational.Rational, error) {
	d := rational.Zero
	for _, c := range r.clocks {
		val, err := v.Value(c)
		if err != nil {
			return rational.Rational{}, err
		}
		var targetFloor rational.Rational
		if r.saturated[c.ID()] {
			targetFloor = rational.FromInt(int64(c.Kappa() + 1))
		} else {
			targetFloor = rational.FromInt(int64(r.integerPart[c.ID()]))
		}
		need, err := rational.Sub(targetFloor, val)
		if err != nil {
			return rational.Rational{}, err
		}
		// A non-saturated, nonzero-fraction clock must land strictly past
		// its integer part, not exactly on it; nudge the needed delay into
		// the open interval the same way dbm.SolveDelay nudges a strict
		// lower bound.
		if !r.saturated[c.ID()] && !r.zeroFrac[c.ID()] {
			need, err = rational.Add(need, rational.Epsilon)
			if err != nil {
				return rational.Rational{}, err
			}
		}
		if rational.Less(d, need) {
			d = need
		}
	}
	if d.Sign() < 0 {
		d = rational.Zero
	}
	out, err := v.Delay(d)
	if err != nil {
		return rational.Rational{}, err
	}
	ok, err := r.Contains(out)
	if err != nil {
		return rational.Rational{}, err
	}
	if !ok {
		return rational.Rational{}, ErrUnreachable
	}
	return d, nil
}
