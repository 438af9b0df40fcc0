package automaton

import (
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/dbm"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/valuation"
	"github.com/katalvlaran/dtalearn/word"
)

// FindWitness searches the zone graph of the synchronised pair (a,b) for a
// location pair with disagreeing acceptance reachable by some timed word,
// per spec.md §4.K (the learner's equivalence oracle). The search is a BFS
// over (location,location) pairs carrying a canonical, future-closed DBM
// zone, pruned by a passed list of previously explored zones per pair (a
// new zone included in an already-passed one contributes nothing new).
// Requires a and b to share an identical clock list.
//
// On success, the word is reconstructed by walking the predecessor chain
// back to the root and forward-simulating: at each step, dbm.SolveDelay
// picks a concrete delay satisfying that step's guard from the current
// concrete valuation, which is exactly a witness trace distinguishing a
// from b.
func FindWitness(a, b *DTA, oracle guard.Oracle) (word.DelayTimedWord, bool, error) {
	if !sameClockSet(a.Clocks, b.Clocks) {
		return nil, false, ErrIncompatibleClockSets
	}

	type node struct {
		id     int
		la, lb clock.Location
		zone   *dbm.DBM
	}
	type step struct {
		parent int
		action clock.Action
		guard  guard.Constraint
		resets []clock.Clock
	}

	rootZone := dbm.New(a.Clocks)
	rootZone.Future()
	nodes := []node{{id: 0, la: a.Init(), lb: b.Init(), zone: rootZone}}
	preds := map[int]step{}
	passed := map[pairKey][]*dbm.DBM{{a.Init().ID(), b.Init().ID()}: {rootZone}}

	reconstruct := func(targetID int) (word.DelayTimedWord, error) {
		var chain []step
		for id := targetID; id != 0; {
			s, ok := preds[id]
			if !ok {
				break
			}
			chain = append([]step{s}, chain...)
			id = s.parent
		}
		v := valuation.New(a.Clocks)
		out := make(word.DelayTimedWord, 0, len(chain))
		for _, s := range chain {
			d, err := dbm.SolveDelay(v, s.guard)
			if err != nil {
				return nil, err
			}
			nv, err := v.Delay(d)
			if err != nil {
				return nil, err
			}
			out = append(out, word.DelayStep{Action: s.action, Delay: d})
			rv, err := nv.Reset(s.resets)
			if err != nil {
				return nil, err
			}
			v = rv
		}
		return out, nil
	}

	if a.IsAccepting(nodes[0].la) != b.IsAccepting(nodes[0].lb) {
		w, err := reconstruct(0)
		return w, true, err
	}

	queue := []int{0}
	nextID := 1
	for len(queue) > 0 {
		curID := queue[0]
		queue = queue[1:]
		cur := nodes[curID]

		for _, act := range a.Alphabet.Actions() {
			for _, ta := range a.OutgoingByAction(cur.la, act) {
				for _, tb := range b.OutgoingByAction(cur.lb, act) {
					combined, err := ta.Guard.And(tb.Guard)
					if err != nil {
						continue
					}
					nz, err := cur.zone.IntersectConstraint(combined)
					if err != nil {
						return nil, false, err
					}
					nz.Canonicalize()
					if nz.IsEmpty() {
						continue
					}
					resets := unionResets(ta.Resets, tb.Resets)
					nz, err = nz.ResetAll(resets)
					if err != nil {
						return nil, false, err
					}
					nz.Future()

					key := pairKey{ta.Target.ID(), tb.Target.ID()}
					subsumed := false
					for _, p := range passed[key] {
						inc, err := p.Include(nz)
						if err != nil {
							return nil, false, err
						}
						if inc {
							subsumed = true
							break
						}
					}
					if subsumed {
						continue
					}
					passed[key] = append(passed[key], nz)

					id := nextID
					nextID++
					nodes = append(nodes, node{id: id, la: ta.Target, lb: tb.Target, zone: nz})
					preds[id] = step{parent: curID, action: act, guard: combined, resets: resets}

					if a.IsAccepting(ta.Target) != b.IsAccepting(tb.Target) {
						w, err := reconstruct(id)
						return w, true, err
					}
					queue = append(queue, id)
				}
			}
		}
	}
	return nil, false, nil
}
