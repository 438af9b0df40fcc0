package automaton

import (
	"errors"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/valuation"
	"github.com/katalvlaran/dtalearn/word"
)

// ErrResetMismatch indicates a reset-annotated word step's declared reset
// set disagreed with the reset set the taken transition actually applies.
var ErrResetMismatch = errors.New("automaton: declared resets disagree with transition")

type snapshot struct {
	loc clock.Location
	val valuation.Valuation
}

// Runtime drives a DTA over concrete timed words from a current
// (location, valuation) configuration, per spec.md §4.H. Push/Pop
// implement a snapshot stack that lets a caller explore a tentative
// continuation and roll it back.
type Runtime struct {
	dta   *DTA
	loc   clock.Location
	val   valuation.Valuation
	stack []snapshot
}

// NewRuntime returns a Runtime positioned at d's initial location with the
// all-zero valuation.
func NewRuntime(d *DTA) *Runtime {
	return &Runtime{dta: d, loc: d.Init(), val: valuation.New(d.Clocks)}
}

// Location returns the runtime's current location.
func (r *Runtime) Location() clock.Location { return r.loc }

// Valuation returns the runtime's current valuation.
func (r *Runtime) Valuation() valuation.Valuation { return r.val }

// Accepting reports whether the runtime's current location is accepting.
func (r *Runtime) Accepting() bool { return r.dta.IsAccepting(r.loc) }

// Push saves the current configuration onto the snapshot stack.
func (r *Runtime) Push() { r.stack = append(r.stack, snapshot{loc: r.loc, val: r.val}) }

// Pop restores the most recently pushed configuration. Fails with
// ErrEmptyStack if nothing was pushed.
func (r *Runtime) Pop() error {
	if len(r.stack) == 0 {
		return ErrEmptyStack
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.loc, r.val = top.loc, top.val
	return nil
}

// ErrEmptyStack indicates Pop was called with no matching Push.
var ErrEmptyStack = errors.New("automaton: pop with empty snapshot stack")

func diffFunc(v valuation.Valuation) func(c1, c2 clock.Clock) rational.Rational {
	return func(c1, c2 clock.Clock) rational.Rational {
		v1, _ := v.Value(c1)
		v2, _ := v.Value(c2)
		d, _ := rational.Sub(v1, v2)
		return d
	}
}

// findEnabled returns the first outgoing transition from loc labelled a
// whose guard is satisfied by delayedVal, and whether one was found.
// Determinism (at most one match) is a DTA-level invariant checked
// separately by Deterministic; Runtime trusts it and takes the first match.
func (r *Runtime) findEnabled(a clock.Action, delayedVal valuation.Valuation) (Transition, bool) {
	for _, t := range r.dta.OutgoingByAction(r.loc, a) {
		if t.Guard.IsSatisfiedBy(diffFunc(delayedVal)) {
			return t, true
		}
	}
	return Transition{}, false
}

func (r *Runtime) take(t Transition, delayedVal valuation.Valuation) error {
	rv, err := delayedVal.Reset(t.Resets)
	if err != nil {
		return err
	}
	r.loc = t.Target
	r.val = rv
	return nil
}

// Execute drives the runtime through w, delaying then taking the unique
// enabled transition at each step. Returns whether the word was fully
// consumed (no stuck step) and the final location is accepting, plus the
// full ResetClockWord trace actually taken.
func (r *Runtime) Execute(w word.DelayTimedWord) (bool, word.ResetClockWord, error) {
	trace := make(word.ResetClockWord, 0, len(w))
	for _, step := range w {
		dv, err := r.val.Delay(step.Delay)
		if err != nil {
			return false, trace, err
		}
		t, ok := r.findEnabled(step.Action, dv)
		if !ok {
			return false, trace, nil
		}
		trace = append(trace, word.ResetClockStep{Action: step.Action, Valuation: dv, Resets: t.Resets})
		if err := r.take(t, dv); err != nil {
			return false, trace, err
		}
	}
	return r.Accepting(), trace, nil
}

// ExecuteClock drives the runtime through w, where each step already
// carries the absolute (post-delay, pre-transition) valuation rather than a
// relative delay.
func (r *Runtime) ExecuteClock(w word.ClockTimedWord) (bool, error) {
	for _, step := range w {
		t, ok := r.findEnabled(step.Action, step.Valuation)
		if !ok {
			return false, nil
		}
		if err := r.take(t, step.Valuation); err != nil {
			return false, err
		}
	}
	return r.Accepting(), nil
}

// ExecuteResetDelay drives the runtime through w like Execute, additionally
// verifying each step's declared reset set agrees with the transition the
// DTA actually takes. Fails with ErrResetMismatch on disagreement.
func (r *Runtime) ExecuteResetDelay(w word.ResetDelayWord) (bool, error) {
	for _, step := range w {
		dv, err := r.val.Delay(step.Delay)
		if err != nil {
			return false, err
		}
		t, ok := r.findEnabled(step.Action, dv)
		if !ok {
			return false, nil
		}
		if !sameClockSet(t.Resets, step.Resets) {
			return false, ErrResetMismatch
		}
		if err := r.take(t, dv); err != nil {
			return false, err
		}
	}
	return r.Accepting(), nil
}

// ExecuteResetClock is the absolute-valuation counterpart of
// ExecuteResetDelay.
func (r *Runtime) ExecuteResetClock(w word.ResetClockWord) (bool, error) {
	for _, step := range w {
		t, ok := r.findEnabled(step.Action, step.Valuation)
		if !ok {
			return false, nil
		}
		if !sameClockSet(t.Resets, step.Resets) {
			return false, ErrResetMismatch
		}
		if err := r.take(t, step.Valuation); err != nil {
			return false, err
		}
	}
	return r.Accepting(), nil
}

func sameClockSet(a, b []clock.Clock) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[uint64]struct{}, len(a))
	for _, c := range a {
		ids[c.ID()] = struct{}{}
	}
	for _, c := range b {
		if _, ok := ids[c.ID()]; !ok {
			return false
		}
	}
	return true
}
