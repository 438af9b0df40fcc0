// Package word implements the six timed-word representations of spec.md
// §4.I (delay/clock/region-timed, each with a reset-annotated variant) and
// the conversions between them. The conversion discipline -- replay deltas,
// check consistency, fail loudly on disagreement -- is grounded on the
// teacher's dtw package, which already converts between sequence-of-samples
// representations of a timed signal.
//
// Errors:
//
//	ErrInconsistentTiming - reset-clock -> reset-delay recovery disagreed
//	                         across non-reset clocks, or implied a negative delay.
package word

import (
	"errors"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/region"
	"github.com/katalvlaran/dtalearn/valuation"
)

// ErrInconsistentTiming indicates a reset-clock word's steps imply
// disagreeing or negative delays when recovering a reset-delay word.
var ErrInconsistentTiming = errors.New("word: inconsistent timing on reset-clock conversion")

// DelayStep is one (action, delay) step of a DelayTimedWord.
type DelayStep struct {
	Action clock.Action
	Delay  rational.Rational
}

// DelayTimedWord is a sequence of (action, delay) steps, spec.md §4.I.
type DelayTimedWord []DelayStep

// ClockStep is one (action, valuation) step of a ClockTimedWord.
type ClockStep struct {
	Action    clock.Action
	Valuation valuation.Valuation
}

// ClockTimedWord is a sequence of (action, valuation) steps, spec.md §4.I.
type ClockTimedWord []ClockStep

// RegionStep is one (action, region) step of a RegionTimedWord.
type RegionStep struct {
	Action clock.Action
	Region region.Region
}

// RegionTimedWord is a sequence of (action, region) steps, spec.md §4.I.
type RegionTimedWord []RegionStep

// ResetDelayStep is a DelayStep annotated with the reset set applied after
// the step's action.
type ResetDelayStep struct {
	Action clock.Action
	Delay  rational.Rational
	Resets []clock.Clock
}

// ResetDelayWord is the reset-annotated counterpart of DelayTimedWord.
type ResetDelayWord []ResetDelayStep

// StripResets discards w's reset annotations, returning the plain
// DelayTimedWord a membership oracle sees per spec.md §6: a query never
// reveals the asker's reset guess, only the (action, delay) pairs.
func StripResets(w ResetDelayWord) DelayTimedWord {
	out := make(DelayTimedWord, len(w))
	for i, s := range w {
		out[i] = DelayStep{Action: s.Action, Delay: s.Delay}
	}
	return out
}

// ResetClockStep is a ClockStep annotated with the reset set applied after
// the step; Valuation is the valuation *before* the reset, per spec.md §4.I.
type ResetClockStep struct {
	Action    clock.Action
	Valuation valuation.Valuation
	Resets    []clock.Clock
}

// ResetClockWord is the reset-annotated counterpart of ClockTimedWord, also
// known as the "reset-clocked word" of the GLOSSARY.
type ResetClockWord []ResetClockStep

// ResetRegionStep is a RegionStep annotated with the reset set applied
// after the step.
type ResetRegionStep struct {
	Action clock.Action
	Region region.Region
	Resets []clock.Clock
}

// ResetRegionWord is the reset-annotated counterpart of RegionTimedWord.
type ResetRegionWord []ResetRegionStep
