// Package table implements the observation table of spec.md §4.J: a
// Myhill–Nerode-style S/R/E table generalised from the classic L* algorithm
// to timed automata by replacing "next symbol" with "next (action, region)"
// — the region abstraction (package region) supplies the finite time
// abstraction a DTA learner needs in place of L*'s finite input alphabet.
// Reset behaviour of the hidden target is unknown, so the table also
// carries a reset policy g: one guessed reset subset per action, committed
// for the table's lifetime. Filling (fillTable) explores alternative
// policies as sibling tables rather than folding them into a single table's
// rows, so a caller (package learner) can race candidate policies through
// its priority queue, per spec.md §4.K.
//
// Errors:
//
//	ErrNotClosed     - Hypothesis was called before the table was closed.
//	ErrNotConsistent - Hypothesis was called before the table was consistent.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/dtalearn/automaton"
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/region"
	"github.com/katalvlaran/dtalearn/teacher"
	"github.com/katalvlaran/dtalearn/valuation"
	"github.com/katalvlaran/dtalearn/word"
)

// ErrNotClosed indicates Hypothesis was requested before Closed() held.
var ErrNotClosed = errors.New("table: not closed")

// ErrNotConsistent indicates Hypothesis was requested before Consistent() held.
var ErrNotConsistent = errors.New("table: not consistent")

// Row is one access sequence: a sequence of (action, region, reset-guess)
// steps, per spec.md §4.J/§4.I. The reset guess on each step always mirrors
// the owning table's current policy for that step's action; observe uses
// these per-step resets to resolve the row into concrete delays, while
// Hypothesis stamps transitions from the table's policy.
type Row = word.ResetRegionWord

// Step is one extension step of a Row.
type Step = word.ResetRegionStep

// Mismatch records why the table failed Closed or Consistent.
type Mismatch struct {
	Kind   string // "closed" or "consistent"
	RRow   Row    // offending R-row (closed) or extension (consistent)
	Suffix Row    // new suffix to add to E, set for "consistent"
}

// ObservationTable is the S/R/E table of spec.md §4.J.
type ObservationTable struct {
	clocks   []clock.Clock
	alphabet *clock.Alphabet
	teach    teacher.Teacher

	regions []region.Region
	resets  [][]clock.Clock

	// resetPolicy is this table's committed reset guess g: one reset subset
	// per action, per spec.md §3. fillTable branches over alternatives by
	// cloning the table and overriding the entries the new row/suffix needs.
	resetPolicy map[string][]clock.Clock

	S []Row
	R []Row
	E []Row

	cache      map[string]bool
	guessCount int
}

// New builds the initial table under the all-empty reset policy: S={ε},
// E={ε}, R = the one-step extensions of ε over every (action, region).
func New(clocks []clock.Clock, alphabet *clock.Alphabet, teach teacher.Teacher) (*ObservationTable, error) {
	policy := make(map[string][]clock.Clock, alphabet.Len())
	for _, a := range alphabet.Actions() {
		policy[a.Name()] = nil
	}
	return NewWithPolicy(clocks, alphabet, teach, policy)
}

// NewWithPolicy builds the initial table under a caller-supplied reset
// policy, the per-branch seed spec.md §4.K's learner loop needs when it
// races every initial action->reset-subset assignment (see InitialPolicies)
// through its priority queue.
func NewWithPolicy(clocks []clock.Clock, alphabet *clock.Alphabet, teach teacher.Teacher, policy map[string][]clock.Clock) (*ObservationTable, error) {
	regions, err := region.AllRegions(clocks)
	if err != nil {
		return nil, err
	}
	t := &ObservationTable{
		clocks:      clocks,
		alphabet:    alphabet,
		teach:       teach,
		regions:     regions,
		resets:      powerset(clocks),
		resetPolicy: cloneGuessPolicy(policy),
		S:           []Row{{}},
		E:           []Row{{}},
		cache:       make(map[string]bool),
	}
	t.R = t.extensions(t.S)
	return t, nil
}

// InitialPolicies enumerates every action -> reset-subset assignment over
// clocks' powerset: the cartesian product spec.md §4.K directs the learner
// loop to seed its priority-queue frontier with.
func InitialPolicies(clocks []clock.Clock, alphabet *clock.Alphabet) []map[string][]clock.Clock {
	return policyCombinations(alphabet.Actions(), powerset(clocks))
}

func policyCombinations(actions []clock.Action, resets [][]clock.Clock) []map[string][]clock.Clock {
	combos := []map[string][]clock.Clock{{}}
	for _, a := range actions {
		next := make([]map[string][]clock.Clock, 0, len(combos)*len(resets))
		for _, p := range combos {
			for _, rs := range resets {
				np := make(map[string][]clock.Clock, len(p)+1)
				for k, v := range p {
					np[k] = v
				}
				np[a.Name()] = rs
				next = append(next, np)
			}
		}
		combos = next
	}
	return combos
}

func cloneGuessPolicy(p map[string][]clock.Clock) map[string][]clock.Clock {
	out := make(map[string][]clock.Clock, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func powerset(clocks []clock.Clock) [][]clock.Clock {
	out := [][]clock.Clock{{}}
	for _, c := range clocks {
		if c.IsZero() {
			continue
		}
		n := len(out)
		for i := 0; i < n; i++ {
			next := append(append([]clock.Clock{}, out[i]...), c)
			out = append(out, next)
		}
	}
	return out
}

// extensions returns, for every row in rows, every one-step extension not
// already present in rows (the table's frontier), per spec.md §4.J. Each
// extension's reset guess is the table's current policy for that action.
func (t *ObservationTable) extensions(rows []Row) []Row {
	known := make(map[string]bool, len(rows))
	for _, r := range rows {
		known[rowKey(r)] = true
	}
	var out []Row
	for _, r := range rows {
		for _, a := range t.alphabet.Actions() {
			rs := t.resetPolicy[a.Name()]
			for _, rg := range t.regions {
				ext := appendRow(r, Step{Action: a, Region: rg, Resets: rs})
				k := rowKey(ext)
				if !known[k] {
					known[k] = true
					out = append(out, ext)
				}
			}
		}
	}
	return out
}

func appendRow(r Row, s Step) Row {
	out := make(Row, len(r)+1)
	copy(out, r)
	out[len(r)] = s
	return out
}

// concatRows returns a followed by b, used where a one-step prefix needs to
// be joined with a multi-step suffix rather than a single further Step.
func concatRows(a, b Row) Row {
	out := make(Row, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// withPolicy rebuilds row with every step's reset guess replaced by
// policy's current entry for that step's action, so a row handed to
// GuessClosing/GuessConsistency/AddCounterExample always carries whichever
// policy the successor table it lands in actually committed to.
func withPolicy(row Row, policy map[string][]clock.Clock) Row {
	out := make(Row, len(row))
	for i, s := range row {
		out[i] = Step{Action: s.Action, Region: s.Region, Resets: policy[s.Action.Name()]}
	}
	return out
}

func rowKey(r Row) string {
	var b strings.Builder
	for _, s := range r {
		fmt.Fprintf(&b, "%s|%s|", s.Action.Name(), s.Region.String())
		for _, c := range s.Resets {
			fmt.Fprintf(&b, "%s,", c.Name())
		}
		b.WriteString(";")
	}
	return b.String()
}

func distinctActions(row Row) []clock.Action {
	seen := make(map[uint64]bool)
	var out []clock.Action
	for _, s := range row {
		if !seen[s.Action.ID()] {
			seen[s.Action.ID()] = true
			out = append(out, s.Action)
		}
	}
	return out
}

// rowFeasible reports whether row's steps, resolved under t's current reset
// policy, admit a concrete non-negative delay at every step -- the region
// delay solver (region.Region.SolveDelay, via word.RegionResetToResetClock)
// failing with region.ErrUnreachable is the "reset guess produces no
// timing-feasible concrete word" case of spec.md §7's GuessInfeasible.
func (t *ObservationTable) rowFeasible(row Row) (bool, error) {
	if len(row) == 0 {
		return true, nil
	}
	steps := make(word.RegionTimedWord, len(row))
	resets := make([][]clock.Clock, len(row))
	for i, s := range row {
		steps[i] = word.RegionStep{Action: s.Action, Region: s.Region}
		resets[i] = t.resetPolicy[s.Action.Name()]
	}
	if _, err := word.RegionResetToResetClock(steps, resets, t.clocks); err != nil {
		if errors.Is(err, region.ErrUnreachable) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// fillTable is spec.md §4.J's Filling step: enumerate every combination of
// reset-subset guesses, one per distinct action appearing in row, commit
// each feasible combination as a sibling table's policy, and run mutate on
// the resulting table to fold the new row(s) in. A combination whose
// resolved word has no feasible delay at some step is silently dropped
// (spec.md §7, GuessInfeasible) rather than surfaced as an error; if every
// combination turns out infeasible the table's own existing policy is kept
// so the caller always gets at least one successor to continue from.
func (t *ObservationTable) fillTable(row Row, mutate func(*ObservationTable)) ([]*ObservationTable, error) {
	actions := distinctActions(row)
	if len(actions) == 0 {
		clone := t.Clone()
		mutate(clone)
		return []*ObservationTable{clone}, nil
	}
	combos := policyCombinations(actions, t.resets)
	out := make([]*ObservationTable, 0, len(combos))
	for _, combo := range combos {
		cand := t.Clone()
		for name, rs := range combo {
			cand.resetPolicy[name] = rs
		}
		feasible, err := cand.rowFeasible(row)
		if err != nil {
			return nil, err
		}
		if !feasible {
			continue
		}
		mutate(cand)
		out = append(out, cand)
	}
	if len(out) == 0 {
		clone := t.Clone()
		mutate(clone)
		out = append(out, clone)
	}
	return out, nil
}

// observe returns f(row, suffix): whether teaching on row followed by
// suffix accepts, caching by (row,suffix) signature. The reset guesses
// carried by row/suffix (the table's g) are used only to resolve the
// combined word's concrete delays; the query actually sent to the teacher
// is a plain DelayTimedWord, per spec.md §6 -- resets are the target's own
// business. A guess that cannot be resolved into a feasible delay word is
// silently pruned (spec.md §7, GuessInfeasible) rather than erroring.
func (t *ObservationTable) observe(row, suffix Row) (bool, error) {
	key := rowKey(row) + "#" + rowKey(suffix)
	if v, ok := t.cache[key]; ok {
		return v, nil
	}
	combined := make(Row, 0, len(row)+len(suffix))
	combined = append(combined, row...)
	combined = append(combined, suffix...)
	rdw, err := word.ResetRegionToResetDelay(combined, t.clocks)
	if err != nil {
		if errors.Is(err, region.ErrUnreachable) {
			t.cache[key] = false
			return false, nil
		}
		return false, err
	}
	ok, err := t.teach.Membership(word.StripResets(rdw))
	if err != nil {
		return false, err
	}
	t.cache[key] = ok
	t.guessCount++
	return ok, nil
}

// vector returns row's observation vector over E.
func (t *ObservationTable) vector(row Row) ([]bool, error) {
	out := make([]bool, len(t.E))
	for i, e := range t.E {
		v, err := t.observe(row, e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func vectorKey(v []bool) string {
	b := make([]byte, len(v))
	for i, x := range v {
		if x {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// Closed reports whether every R-row's observation vector matches some
// S-row's. Returns a Mismatch naming the first offending R-row otherwise.
func (t *ObservationTable) Closed() (bool, *Mismatch, error) {
	sVecs := make(map[string]bool, len(t.S))
	for _, s := range t.S {
		v, err := t.vector(s)
		if err != nil {
			return false, nil, err
		}
		sVecs[vectorKey(v)] = true
	}
	for _, r := range t.R {
		v, err := t.vector(r)
		if err != nil {
			return false, nil, err
		}
		if !sVecs[vectorKey(v)] {
			return false, &Mismatch{Kind: "closed", RRow: r}, nil
		}
	}
	return true, nil, nil
}

// GuessClosing moves r (an R-row reported by Closed) into S, under every
// feasible reset-sequence combination for r's actions, per spec.md §4.J:
// each feasible combination yields an independent successor table for the
// caller (package learner) to race against the others.
func (t *ObservationTable) GuessClosing(r Row) ([]*ObservationTable, error) {
	return t.fillTable(r, func(tb *ObservationTable) {
		tb.S = append(tb.S, withPolicy(r, tb.resetPolicy))
		tb.R = tb.extensions(tb.S)
	})
}

// Consistent reports whether every pair of S-rows with equal observation
// vectors also agree after every one-step extension. Returns a Mismatch
// naming the distinguishing suffix to add to E otherwise.
func (t *ObservationTable) Consistent() (bool, *Mismatch, error) {
	vecs := make([][]bool, len(t.S))
	for i, s := range t.S {
		v, err := t.vector(s)
		if err != nil {
			return false, nil, err
		}
		vecs[i] = v
	}
	for i := 0; i < len(t.S); i++ {
		for j := i + 1; j < len(t.S); j++ {
			if vectorKey(vecs[i]) != vectorKey(vecs[j]) {
				continue
			}
			for _, a := range t.alphabet.Actions() {
				rs := t.resetPolicy[a.Name()]
				for _, rg := range t.regions {
					step := Step{Action: a, Region: rg, Resets: rs}
					ei := appendRow(t.S[i], step)
					for _, e := range t.E {
						suffix := concatRows(Row{step}, e)
						vi, err := t.observe(t.S[i], suffix)
						if err != nil {
							return false, nil, err
						}
						vj, err := t.observe(t.S[j], suffix)
						if err != nil {
							return false, nil, err
						}
						if vi != vj {
							return false, &Mismatch{Kind: "consistent", RRow: ei, Suffix: suffix}, nil
						}
					}
				}
			}
		}
	}
	return true, nil, nil
}

// GuessConsistency adds suffix (as reported by Consistent) to E under every
// feasible reset-sequence combination for suffix's actions, per spec.md
// §4.J, returning one successor table per feasible combination.
func (t *ObservationTable) GuessConsistency(suffix Row) ([]*ObservationTable, error) {
	return t.fillTable(suffix, func(tb *ObservationTable) {
		tb.E = append(tb.E, withPolicy(suffix, tb.resetPolicy))
	})
}

// AddCounterExample incorporates a counterexample returned by the teacher's
// equivalence oracle: it regions every prefix of ce, then (per spec.md
// §4.J's counter-example handling) guesses all reset-sequence combinations
// for the actions appearing in ce, adding every non-empty prefix of ce (ce
// itself included) not already present to S under each feasible
// combination and returning one successor table per combination. Prefixes
// go to S only; none is placed in R directly (R is rebuilt as the one-step
// extensions of S).
func (t *ObservationTable) AddCounterExample(ce word.DelayTimedWord) ([]*ObservationTable, error) {
	v := valuation.New(t.clocks)
	var full Row
	for _, step := range ce {
		nv, err := v.Delay(step.Delay)
		if err != nil {
			return nil, err
		}
		r, err := region.FromValuation(nv)
		if err != nil {
			return nil, err
		}
		full = appendRow(full, Step{Action: step.Action, Region: r})
		v = nv
	}
	return t.fillTable(full, func(tb *ObservationTable) {
		committed := withPolicy(full, tb.resetPolicy)
		inS := make(map[string]bool, len(tb.S))
		for _, s := range tb.S {
			inS[rowKey(s)] = true
		}
		for i := 1; i <= len(committed); i++ {
			prefix := committed[:i]
			if inS[rowKey(prefix)] {
				continue
			}
			inS[rowKey(prefix)] = true
			cp := make(Row, len(prefix))
			copy(cp, prefix)
			tb.S = append(tb.S, cp)
		}
		tb.R = tb.extensions(tb.S)
	})
}

// GuessCount returns the number of distinct membership queries issued so
// far (cache hits excluded).
func (t *ObservationTable) GuessCount() int { return t.guessCount }

// evidenceClosed reports whether t has observed enough to trust its current
// reset guesses as final. Per spec.md §9 the source left this predicate
// unspecified; it is stubbed to always return true, per the spec's explicit
// direction to leave it as a documented no-op rather than invent semantics.
func (t *ObservationTable) evidenceClosed() bool { return true }

// EvidenceClosed exports evidenceClosed for callers (package learner) that
// need the "prepared" condition of spec.md §4.K: closed, consistent, and
// evidence-closed.
func (t *ObservationTable) EvidenceClosed() bool { return t.evidenceClosed() }

// Clone returns an independent copy of t: S, R, E, the reset policy, and
// the membership cache are deep-copied so that guessing on the clone never
// mutates t, letting callers (fillTable, package learner) branch the table
// into independent candidates.
func (t *ObservationTable) Clone() *ObservationTable {
	clone := &ObservationTable{
		clocks:      t.clocks,
		alphabet:    t.alphabet,
		teach:       t.teach,
		regions:     t.regions,
		resets:      t.resets,
		resetPolicy: cloneGuessPolicy(t.resetPolicy),
		S:           cloneRows(t.S),
		R:           cloneRows(t.R),
		E:           cloneRows(t.E),
		cache:       make(map[string]bool, len(t.cache)),
		guessCount:  t.guessCount,
	}
	for k, v := range t.cache {
		clone.cache[k] = v
	}
	return clone
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		cp := make(Row, len(r))
		copy(cp, r)
		out[i] = cp
	}
	return out
}

// regionSaturated reports whether any of rg's clocks is saturated.
func regionSaturated(rg region.Region) bool {
	for _, c := range rg.Clocks() {
		if rg.IsSaturated(c) {
			return true
		}
	}
	return false
}

// cubeConstraint returns rg's coarse unit-cube constraint: integer parts
// pinned exactly as in rg, fractional ordering between clocks left
// unconstrained. This is the Uᵢ of spec.md §4.J's partition function step
// 3 -- deliberately coarser than region.Region.ToConstraint so that
// fraction-order siblings of the same integer cube can be recovered as one
// guard when they share a destination.
func cubeConstraint(rg region.Region, clocks []clock.Clock) guard.Constraint {
	var atoms []guard.AtomConstraint
	add := func(a guard.AtomConstraint, err error) {
		if err == nil {
			atoms = append(atoms, a)
		}
	}
	for _, c := range rg.Clocks() {
		ip := rational.FromInt(int64(rg.IntegerPart(c)))
		ipPlus1 := rational.FromInt(int64(rg.IntegerPart(c) + 1))
		add(guard.NewLowerBoundAtom(c, ip, true))
		add(guard.NewSingleClockAtom(c, ipPlus1, false))
	}
	return guard.NewConjunction(clocks, atoms...)
}

// cubeKey renders the integer-part signature cubeConstraint is built from,
// used to find regions that share a cube (spec.md §4.J's refinement loop).
func cubeKey(rg region.Region) string {
	var b strings.Builder
	for _, c := range rg.Clocks() {
		fmt.Fprintf(&b, "%s:%d;", c.Name(), rg.IntegerPart(c))
	}
	return b.String()
}

// partitionRegions is the partition function of spec.md §4.J's guard
// recovery: given, for one (location, action) pair, the regions reached
// grouped by their destination, it computes a disjoint guard per
// destination from the regions' own canonical valuations.
//
// Saturated regions get their exact region constraint as Aᵢ directly,
// since ToConstraint already pins every clock (including which are
// saturated), making distinct saturated regions' Aᵢ pairwise disjoint by
// construction. Non-saturated regions instead contribute a coarse unit
// cube Uᵢ; processing them in reverse canonical order and subtracting
// everything already claimed (the saturated union U₀ plus every later
// Wⱼ) yields each region's disjoint cell Iᵢ = Wᵢ. A final refinement pass
// copies a non-empty Iᵢ onto any fraction-order sibling that shares its
// cube but was zeroed out by the backward subtraction, so every region
// still resolves to a usable guard. Each destination's guard is the union
// of its member regions' Iᵢ, simplified.
func (t *ObservationTable) partitionRegions(groups map[uint64][]region.Region, order []uint64) (map[uint64]guard.DisjunctiveConstraint, error) {
	iOf := make(map[string]guard.DisjunctiveConstraint, len(t.regions))
	var saturatedDisjuncts []guard.Constraint
	var nonSaturated []region.Region
	for _, rg := range t.regions {
		if regionSaturated(rg) {
			a := rg.ToConstraint(true)
			saturatedDisjuncts = append(saturatedDisjuncts, a)
			iOf[rg.String()] = guard.NewDisjunction(t.clocks, a)
		} else {
			nonSaturated = append(nonSaturated, rg)
		}
	}
	excluded := guard.NewDisjunction(t.clocks, saturatedDisjuncts...)

	for i := len(nonSaturated) - 1; i >= 0; i-- {
		rg := nonSaturated[i]
		u := guard.NewDisjunction(t.clocks, cubeConstraint(rg, t.clocks))
		wi := u.Minus(excluded)
		iOf[rg.String()] = wi
		excluded = excluded.Or(wi)
	}

	byCube := make(map[string][]region.Region)
	for _, rg := range nonSaturated {
		byCube[cubeKey(rg)] = append(byCube[cubeKey(rg)], rg)
	}
	for _, members := range byCube {
		if len(members) < 2 {
			continue
		}
		var shared guard.DisjunctiveConstraint
		found := false
		for _, rg := range members {
			if !iOf[rg.String()].IsEmpty() {
				shared = iOf[rg.String()]
				found = true
				break
			}
		}
		if !found {
			continue
		}
		for _, rg := range members {
			iOf[rg.String()] = shared
		}
	}

	out := make(map[uint64]guard.DisjunctiveConstraint, len(order))
	for _, id := range order {
		var disjuncts []guard.Constraint
		for _, rg := range groups[id] {
			disjuncts = append(disjuncts, iOf[rg.String()].Disjuncts()...)
		}
		out[id] = guard.NewDisjunction(t.clocks, disjuncts...).Simplify()
	}
	return out, nil
}

// destGroup is one destination location reached from a (row, action) pair,
// together with every region whose step lands there.
type destGroup struct {
	dst     clock.Location
	regions []region.Region
}

// Hypothesis builds a DTA from a closed and consistent table: one location
// per distinct S-row/R-row observation vector, and, for every (S-row,
// action, destination) triple, one transition per disjunct of the guard
// synthesised by the partition function from the regions observed to reach
// that destination, per spec.md §4.J.
func (t *ObservationTable) Hypothesis() (*automaton.DTA, error) {
	closed, _, err := t.Closed()
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, ErrNotClosed
	}
	consistent, _, err := t.Consistent()
	if err != nil {
		return nil, err
	}
	if !consistent {
		return nil, ErrNotConsistent
	}

	locOf := make(map[string]clock.Location)
	locFor := func(row Row) (clock.Location, error) {
		v, err := t.vector(row)
		if err != nil {
			return clock.Location{}, err
		}
		key := vectorKey(v)
		if l, ok := locOf[key]; ok {
			return l, nil
		}
		l, err := clock.NewLocation(fmt.Sprintf("q%d", len(locOf)))
		if err != nil {
			return clock.Location{}, err
		}
		locOf[key] = l
		return l, nil
	}

	d := automaton.New(t.clocks, t.alphabet)
	initLoc, err := locFor(t.S[0])
	if err != nil {
		return nil, err
	}
	d.AddLocation(initLoc)
	if err := d.SetInit(initLoc); err != nil {
		return nil, err
	}

	allRows := append(append([]Row{}, t.S...), t.R...)
	for _, row := range allRows {
		srcLoc, err := locFor(row)
		if err != nil {
			return nil, err
		}
		d.AddLocation(srcLoc)
		emptySuffixAccepts, err := t.observe(row, Row{})
		if err != nil {
			return nil, err
		}
		if emptySuffixAccepts {
			d.MarkAccepting(srcLoc)
		}
	}

	for _, row := range t.S {
		srcLoc, err := locFor(row)
		if err != nil {
			return nil, err
		}
		for _, a := range t.alphabet.Actions() {
			rs := t.resetPolicy[a.Name()]
			byID := make(map[uint64]*destGroup)
			var order []uint64
			for _, rg := range t.regions {
				ext := appendRow(row, Step{Action: a, Region: rg, Resets: rs})
				dstLoc, err := locFor(ext)
				if err != nil {
					return nil, err
				}
				d.AddLocation(dstLoc)
				g, ok := byID[dstLoc.ID()]
				if !ok {
					g = &destGroup{dst: dstLoc}
					byID[dstLoc.ID()] = g
					order = append(order, dstLoc.ID())
				}
				g.regions = append(g.regions, rg)
			}
			regionGroups := make(map[uint64][]region.Region, len(order))
			for _, id := range order {
				regionGroups[id] = byID[id].regions
			}
			guards, err := t.partitionRegions(regionGroups, order)
			if err != nil {
				return nil, err
			}
			for _, id := range order {
				g := byID[id]
				for _, disjunct := range guards[id].Disjuncts() {
					if _, err := d.AddTransition(srcLoc, a, disjunct, rs, g.dst); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return d, nil
}
