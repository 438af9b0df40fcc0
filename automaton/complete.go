package automaton

import (
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
)

// trueConstraint returns the conjunction with no atoms beyond the implicit
// non-negativity ones: satisfiable by every valuation in the orthant.
func trueConstraint(clocks []clock.Clock) guard.Constraint {
	return guard.NewConjunction(clocks)
}

// ToCTA returns a complete DTA equivalent to d: every (location, action)
// pair whose transition guards don't cover the whole non-negative orthant
// gets an extra transition per uncovered disjunct, routed to a shared sink
// with a full reset of every clock, unless oracle deems the disjunct
// unsatisfiable (NegateDisjoint can emit disjuncts that are syntactically
// present but empty after folding in atom trivialities). The sink
// self-loops on every action over TRUE, per spec.md §4.G. d itself is left
// unmodified.
func (d *DTA) ToCTA(oracle guard.Oracle) (*DTA, error) {
	out := New(d.Clocks, d.Alphabet)
	for _, loc := range d.Locations() {
		out.AddLocation(loc)
	}
	if d.hasInit {
		_ = out.SetInit(d.init)
	}
	for loc := range d.accepting {
		for _, l := range d.locations {
			if l.ID() == loc {
				out.MarkAccepting(l)
			}
		}
	}
	for _, t := range d.Transitions() {
		if _, err := out.AddTransition(t.Source, t.Action, t.Guard, t.Resets, t.Target); err != nil {
			return nil, err
		}
	}

	sink := out.EnsureSink()
	for _, loc := range d.Locations() {
		for _, a := range d.Alphabet.Actions() {
			gap := Uncovered(d, loc, a)
			for _, disjunct := range gap.Disjuncts() {
				sat, err := oracle.IsSatisfiable(disjunct)
				if err != nil {
					return nil, err
				}
				if !sat {
					continue
				}
				if _, err := out.AddTransition(loc, a, disjunct, out.Clocks, sink); err != nil {
					return nil, err
				}
			}
		}
	}
	trueGuard := trueConstraint(out.Clocks)
	for _, a := range out.Alphabet.Actions() {
		if len(out.OutgoingByAction(sink, a)) == 0 {
			if _, err := out.AddTransition(sink, a, trueGuard, nil, sink); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
