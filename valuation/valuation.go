// Package valuation implements clock valuations: total maps from a fixed
// clock set to ℚ≥0, with copy-on-write delay/reset operations, matching the
// value-semantics discipline the teacher uses throughout core/methods*.go
// (every mutator returns a fresh value; nothing is mutated in place).
//
// Errors:
//
//	ErrNegativeDelay - delay was called with d<0.
//	ErrUnknownClock  - reset/value/fraction referenced a clock outside the domain.
package valuation

import (
	"errors"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/rational"
)

// ErrNegativeDelay indicates Delay was called with a negative duration.
var ErrNegativeDelay = errors.New("valuation: delay must be non-negative")

// ErrUnknownClock indicates an operation referenced a clock outside the
// valuation's domain.
var ErrUnknownClock = errors.New("valuation: unknown clock")

// Valuation is an immutable total map from a clock set (always including the
// zero clock) to ℚ≥0.
type Valuation struct {
	clocks []clock.Clock          // domain, in a fixed order; index 0 is always the zero clock
	index  map[uint64]int         // clock id -> index into clocks/values
	values []rational.Rational    // parallel to clocks
}

// New builds the all-zero valuation over clocks (which need not include the
// zero clock; it is added automatically).
func New(clocks []clock.Clock) Valuation {
	dom := make([]clock.Clock, 0, len(clocks)+1)
	dom = append(dom, clock.ZeroClock)
	for _, c := range clocks {
		if !c.IsZero() {
			dom = append(dom, c)
		}
	}
	idx := make(map[uint64]int, len(dom))
	vals := make([]rational.Rational, len(dom))
	for i, c := range dom {
		idx[c.ID()] = i
		vals[i] = rational.Zero
	}
	return Valuation{clocks: dom, index: idx, values: vals}
}

// Clocks returns the valuation's domain, in stable order. The caller must
// not mutate the returned slice.
func (v Valuation) Clocks() []clock.Clock { return v.clocks }

// Value returns v(c). Fails with ErrUnknownClock if c is outside the domain.
func (v Valuation) Value(c clock.Clock) (rational.Rational, error) {
	i, ok := v.index[c.ID()]
	if !ok {
		return rational.Rational{}, ErrUnknownClock
	}
	return v.values[i], nil
}

// Fraction returns frac(v(c)). Fails with ErrUnknownClock if c is outside
// the domain.
func (v Valuation) Fraction(c clock.Clock) (rational.Rational, error) {
	val, err := v.Value(c)
	if err != nil {
		return rational.Rational{}, err
	}
	return val.Frac()
}

// IsFractionZero reports whether v(c) is an integer.
func (v Valuation) IsFractionZero(c clock.Clock) (bool, error) {
	val, err := v.Value(c)
	if err != nil {
		return false, err
	}
	return val.IsInteger()
}

// Delay returns v with every non-zero clock advanced by d. Fails with
// ErrNegativeDelay if d<0.
func (v Valuation) Delay(d rational.Rational) (Valuation, error) {
	if d.Sign() < 0 {
		return Valuation{}, ErrNegativeDelay
	}
	out := v.clone()
	for i, c := range out.clocks {
		if c.IsZero() {
			continue
		}
		nv, err := rational.Add(out.values[i], d)
		if err != nil {
			return Valuation{}, err
		}
		out.values[i] = nv
	}
	return out, nil
}

// Reset returns v with every clock in resets set to 0. Fails with
// ErrUnknownClock if any clock in resets is outside the domain.
func (v Valuation) Reset(resets []clock.Clock) (Valuation, error) {
	out := v.clone()
	for _, c := range resets {
		i, ok := out.index[c.ID()]
		if !ok {
			return Valuation{}, ErrUnknownClock
		}
		out.values[i] = rational.Zero
	}
	return out, nil
}

func (v Valuation) clone() Valuation {
	vals := make([]rational.Rational, len(v.values))
	copy(vals, v.values)
	return Valuation{clocks: v.clocks, index: v.index, values: vals}
}

// WithValue returns a copy of v with c set to val directly. Used by callers
// (region reconstruction) that need to place a concrete value rather than
// delay/reset relative to the current one. Fails with ErrUnknownClock if c
// is outside the domain.
func (v Valuation) WithValue(c clock.Clock, val rational.Rational) (Valuation, error) {
	out := v.clone()
	i, ok := out.index[c.ID()]
	if !ok {
		return Valuation{}, ErrUnknownClock
	}
	out.values[i] = val
	return out, nil
}
