package automaton

import (
	"errors"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
)

// ErrIncompatibleClockSets indicates Product or FindWitness was called on two DTAs that do
// not share an identical clock vocabulary. Synchronising automata over
// distinct clock sets would require a clock-renaming embedding this module
// does not implement; every caller in this module (equivalence checking
// between a hypothesis and a target DTA) always compares automata built
// over the same clock set, per spec.md §4.K.
var ErrIncompatibleClockSets = errors.New("automaton: product requires identical clock sets")

type pairKey struct{ a, b uint64 }

// Product returns the synchronised product of a and b: a BFS over reachable
// location pairs, taking the joint transition (ta,tb) for a shared action
// whenever ta.Guard ∧ tb.Guard is satisfiable. A pair is accepting iff both
// components are. Requires a and b to share an identical clock list.
func Product(a, b *DTA, oracle guard.Oracle) (*DTA, error) {
	if !sameClockSet(a.Clocks, b.Clocks) {
		return nil, ErrIncompatibleClockSets
	}
	out := New(a.Clocks, a.Alphabet)

	locOf := make(map[pairKey]clock.Location)
	newLoc := func(la, lb clock.Location) clock.Location {
		key := pairKey{la.ID(), lb.ID()}
		if l, ok := locOf[key]; ok {
			return l
		}
		l, _ := clock.NewLocation(la.Label() + "×" + lb.Label())
		locOf[key] = l
		out.AddLocation(l)
		if a.IsAccepting(la) && b.IsAccepting(lb) {
			out.MarkAccepting(l)
		}
		return l
	}

	initLoc := newLoc(a.Init(), b.Init())
	_ = out.SetInit(initLoc)

	type queued struct{ la, lb clock.Location }
	queue := []queued{{a.Init(), b.Init()}}
	visited := map[pairKey]bool{{a.Init().ID(), b.Init().ID()}: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		srcLoc := newLoc(cur.la, cur.lb)

		for _, act := range a.Alphabet.Actions() {
			for _, ta := range a.OutgoingByAction(cur.la, act) {
				for _, tb := range b.OutgoingByAction(cur.lb, act) {
					combined, err := ta.Guard.And(tb.Guard)
					if err != nil {
						continue // disjoint clock vocab on this pairing; skip
					}
					sat, err := oracle.IsSatisfiable(combined)
					if err != nil {
						return nil, err
					}
					if !sat {
						continue
					}
					resets := unionResets(ta.Resets, tb.Resets)
					dstLoc := newLoc(ta.Target, tb.Target)
					if _, err := out.AddTransition(srcLoc, act, combined, resets, dstLoc); err != nil {
						return nil, err
					}
					key := pairKey{ta.Target.ID(), tb.Target.ID()}
					if !visited[key] {
						visited[key] = true
						queue = append(queue, queued{ta.Target, tb.Target})
					}
				}
			}
		}
	}
	return out, nil
}

func unionResets(a, b []clock.Clock) []clock.Clock {
	seen := make(map[uint64]bool)
	out := make([]clock.Clock, 0, len(a)+len(b))
	for _, c := range a {
		if !seen[c.ID()] {
			seen[c.ID()] = true
			out = append(out, c)
		}
	}
	for _, c := range b {
		if !seen[c.ID()] {
			seen[c.ID()] = true
			out = append(out, c)
		}
	}
	return out
}
