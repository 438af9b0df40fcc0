package automaton

import (
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
)

// Complete reports whether every (location, action) pair has at least one
// enabled transition for every reachable valuation, per spec.md §4.G: the
// disjunction of that pair's transition guards must be oracle-valid, i.e.
// its negation must be unsatisfiable in every disjunct.
func (d *DTA) Complete(oracle guard.Oracle) (bool, error) {
	for _, loc := range d.Locations() {
		for _, a := range d.Alphabet.Actions() {
			ok, err := locationActionComplete(d, loc, a, oracle)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

// locationActionComplete reports whether the guards of loc's a-transitions
// cover the whole non-negative orthant.
func locationActionComplete(d *DTA, loc clock.Location, a clock.Action, oracle guard.Oracle) (bool, error) {
	ts := d.OutgoingByAction(loc, a)
	if len(ts) == 0 {
		return false, nil
	}
	guards := make([]guard.Constraint, 0, len(ts))
	for _, t := range ts {
		guards = append(guards, t.Guard)
	}
	dnf := guard.NewDisjunction(d.Clocks, guards...)
	gap := dnf.Negate()
	for _, disjunct := range gap.Disjuncts() {
		sat, err := oracle.IsSatisfiable(disjunct)
		if err != nil {
			return false, err
		}
		if sat {
			return false, nil
		}
	}
	return true, nil
}

// Uncovered returns, for (loc,a), a DNF of the pairwise-disjoint region not
// covered by any existing transition's guard, per spec.md §4.G — the
// region ToCTA routes to the sink.
func Uncovered(d *DTA, loc clock.Location, a clock.Action) guard.DisjunctiveConstraint {
	ts := d.OutgoingByAction(loc, a)
	guards := make([]guard.Constraint, 0, len(ts))
	for _, t := range ts {
		guards = append(guards, t.Guard)
	}
	dnf := guard.NewDisjunction(d.Clocks, guards...)
	return dnf.NegateDisjoint()
}

// Deterministic reports whether, for every (location, action) pair, no two
// distinct transitions have satisfiable-together guards.
func (d *DTA) Deterministic(oracle guard.Oracle) (bool, error) {
	for _, loc := range d.Locations() {
		for _, a := range d.Alphabet.Actions() {
			ts := d.OutgoingByAction(loc, a)
			for i := 0; i < len(ts); i++ {
				for j := i + 1; j < len(ts); j++ {
					combined, err := ts[i].Guard.And(ts[j].Guard)
					if err != nil {
						return false, err
					}
					sat, err := oracle.IsSatisfiable(combined)
					if err != nil {
						return false, err
					}
					if sat {
						return false, nil
					}
				}
			}
		}
	}
	return true, nil
}
