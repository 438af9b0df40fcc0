// Package teacher implements the two-operation Teacher interface of
// spec.md §4.K (membership and equivalence queries) and a reference
// implementation backed by a concrete target DTA, using the automaton
// package's own runtime and zone-based witness search as the decision
// procedure a real black-box teacher would hide behind an opaque oracle.
package teacher

import (
	"github.com/katalvlaran/dtalearn/automaton"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/oracle"
	"github.com/katalvlaran/dtalearn/word"
)

// Teacher answers the two queries the learner (package learner) issues
// during active learning, per spec.md §4.K.
type Teacher interface {
	// Membership reports whether w is accepted by the target language. w
	// carries no reset annotation: per spec.md §6 the membership oracle is
	// a plain (action, delay) query, and the target DTA applies whatever
	// resets its own transitions carry regardless of what a learner may
	// have guessed internally.
	Membership(w word.DelayTimedWord) (bool, error)
	// Equivalence reports whether hyp recognises the same language as the
	// target. If not, it returns a distinguishing DelayTimedWord.
	Equivalence(hyp *automaton.DTA) (word.DelayTimedWord, bool, error)
}

// dtaTeacher answers queries against a concrete reference DTA.
type dtaTeacher struct {
	target *automaton.DTA
	oracle guard.Oracle
}

// FromDTA returns a Teacher backed by target, using target.Clocks as the
// common clock vocabulary every hypothesis DTA presented to Equivalence
// must share (automaton.ErrIncompatibleClockSets otherwise).
func FromDTA(target *automaton.DTA) Teacher {
	return &dtaTeacher{target: target, oracle: oracle.New()}
}

// Membership runs w against the target DTA's runtime from its initial
// configuration, ignoring any reset guess a caller might otherwise have
// attached: resets are the target's own business, never the query's.
func (t *dtaTeacher) Membership(w word.DelayTimedWord) (bool, error) {
	r := automaton.NewRuntime(t.target)
	ok, _, err := r.Execute(w)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Equivalence checks hyp against the target via the zone-based witness
// search (automaton.FindWitness); if a witness exists the two DTAs disagree
// somewhere, so the languages are not equivalent.
func (t *dtaTeacher) Equivalence(hyp *automaton.DTA) (word.DelayTimedWord, bool, error) {
	w, found, err := automaton.FindWitness(hyp, t.target, t.oracle)
	if err != nil {
		return nil, false, err
	}
	if found {
		return w, false, nil
	}
	return nil, true, nil
}
