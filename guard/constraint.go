package guard

import (
	"sort"
	"sync"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/rational"
)

// validityCache is the sole point of internal mutation on an otherwise
// value-semantic Constraint, per spec.md §5: reads/writes are coordinated by
// a per-value lock, double-checked, so a concurrent observer sees either the
// old or the new status, never a torn one.
type validityCache struct {
	mu     sync.RWMutex
	status Status
}

func (c *validityCache) get() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

func (c *validityCache) setIfUnset(s Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == NotChecked {
		c.status = s
	}
}

// Constraint is a conjunction of AtomConstraint values over a fixed clock
// set, per spec.md §3. The empty conjunction (no atoms beyond the implicit
// non-negativity atoms) is TRUE.
type Constraint struct {
	clocks []clock.Clock
	atoms  []AtomConstraint
	cache  *validityCache
}

func cloneClocks(clocks []clock.Clock) []clock.Clock {
	out := make([]clock.Clock, len(clocks))
	copy(out, clocks)
	return out
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

// NewConjunction builds a Constraint over clocks from atoms, automatically
// adding `c >= 0` for every non-zero clock in clocks, per spec.md §3.
func NewConjunction(clocks []clock.Clock, atoms ...AtomConstraint) Constraint {
	all := make([]AtomConstraint, 0, len(atoms)+len(clocks))
	all = append(all, atoms...)
	for _, c := range clocks {
		if c.IsZero() {
			continue
		}
		nn, err := NewLowerBoundAtom(c, rational.Zero, true)
		if err == nil {
			nn.implicit = true
			all = append(all, nn)
		}
	}
	return Constraint{clocks: cloneClocks(clocks), atoms: dedupAtoms(all), cache: &validityCache{}}
}

func dedupAtoms(atoms []AtomConstraint) []AtomConstraint {
	type key struct {
		c1, c2 uint64
		bound  string
		closed bool
	}
	seen := make(map[key]struct{}, len(atoms))
	out := make([]AtomConstraint, 0, len(atoms))
	for _, a := range atoms {
		k := key{a.C1.ID(), a.C2.ID(), a.Bound.String(), a.Closed}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].C1.ID() != out[j].C1.ID() {
			return out[i].C1.ID() < out[j].C1.ID()
		}
		return out[i].C2.ID() < out[j].C2.ID()
	})
	return out
}

// Clocks returns the constraint's clock set.
func (c Constraint) Clocks() []clock.Clock { return c.clocks }

// Atoms returns the constraint's atoms (including the implicit
// non-negativity atoms added at construction). The returned slice must not
// be mutated.
func (c Constraint) Atoms() []AtomConstraint { return c.atoms }

// Status returns the cached validity status, NotChecked if no oracle call
// has filled it yet.
func (c Constraint) Status() Status {
	if c.cache == nil {
		return NotChecked
	}
	return c.cache.get()
}

// Validate asks oracle to decide c's satisfiability/validity and caches the
// result, using the double-checked "only write once" discipline of
// spec.md §5. Returns the (possibly already-cached) status.
func (c Constraint) Validate(oracle Oracle) (Status, error) {
	if s := c.Status(); s != NotChecked {
		return s, nil
	}
	sat, err := oracle.IsSatisfiable(c)
	if err != nil {
		return SatUnknown, err
	}
	if !sat {
		c.cache.setIfUnset(False)
		return False, nil
	}
	valid, err := oracle.IsTrue(c)
	if err != nil {
		c.cache.setIfUnset(SatUnknown)
		return SatUnknown, err
	}
	if valid {
		c.cache.setIfUnset(True)
		return True, nil
	}
	c.cache.setIfUnset(SatUnknown)
	return SatUnknown, nil
}

// And returns a new conjunction on the same clock set as c and other. Fails
// with ErrClockSetMismatch if the clock sets differ.
func (c Constraint) And(other Constraint) (Constraint, error) {
	if !sameClockSet(c.clocks, other.clocks) {
		return Constraint{}, ErrClockSetMismatch
	}
	all := append(append([]AtomConstraint{}, c.atoms...), other.atoms...)
	return Constraint{clocks: cloneClocks(c.clocks), atoms: dedupAtoms(all), cache: &validityCache{}}, nil
}

// Or returns the DNF {c, other}. Fails with ErrClockSetMismatch if the clock
// sets differ.
func (c Constraint) Or(other Constraint) (DisjunctiveConstraint, error) {
	if !sameClockSet(c.clocks, other.clocks) {
		return DisjunctiveConstraint{}, ErrClockSetMismatch
	}
	return NewDisjunction(c.clocks, c, other), nil
}

// Negate returns ¬c as a DNF by de Morgan over c's atoms: each atom
// contributes one disjunct, except trivial self-difference atoms which are
// dropped (their negation is handled by the non-negativity atoms already
// present everywhere else in the conjunction; see ErrAtomTrivial).
func (c Constraint) Negate() DisjunctiveConstraint {
	disjuncts := make([]Constraint, 0, len(c.atoms))
	for _, a := range c.atoms {
		if a.IsImplicit() {
			continue
		}
		na, err := a.Negate()
		if err != nil {
			continue
		}
		disjuncts = append(disjuncts, NewConjunction(c.clocks, na))
	}
	if len(disjuncts) == 0 {
		return NewDisjunction(c.clocks) // FALSE: every atom was trivial/always-true
	}
	return NewDisjunction(c.clocks, disjuncts...)
}

// Minus returns c ∧ ¬other, per spec.md §4.D.
func (c Constraint) Minus(other Constraint) (DisjunctiveConstraint, error) {
	if !sameClockSet(c.clocks, other.clocks) {
		return DisjunctiveConstraint{}, ErrClockSetMismatch
	}
	notOther := other.Negate()
	out := make([]Constraint, 0, len(notOther.Disjuncts()))
	for _, d := range notOther.Disjuncts() {
		joined, err := c.And(d)
		if err != nil {
			return DisjunctiveConstraint{}, err
		}
		out = append(out, joined)
	}
	return NewDisjunction(c.clocks, out...), nil
}

// Implies returns the DNF c ∧ ¬other (the same result as Minus): c implies
// other exactly when that DNF is unsatisfiable, i.e. when Validate reports
// False for every one of its disjuncts.
func (c Constraint) Implies(other Constraint) (DisjunctiveConstraint, error) {
	return c.Minus(other)
}

// IsSatisfiedBy evaluates every atom concretely against diffs, a function
// returning the concrete value of c1-c2 for each atom's pair. Used by
// Runtime/Valuation-level satisfaction checks where a full decision
// procedure is unnecessary because the valuation is already concrete.
func (c Constraint) IsSatisfiedBy(diff func(c1, c2 clock.Clock) rational.Rational) bool {
	for _, a := range c.atoms {
		if !a.IsSatisfied(diff(a.C1, a.C2)) {
			return false
		}
	}
	return true
}

// Simplify folds every `c op V` / `x0-c op V` atom per-clock into at most one
// lower and one upper bound, per spec.md §4.D. Atoms between two non-zero
// clocks (true difference atoms) are kept untouched. If the folded lower
// bound exceeds the upper bound for some clock, the result's Status is
// forced to False.
func (c Constraint) Simplify() Constraint {
	type bounds struct {
		hasLower, hasUpper   bool
		lower, upper         rational.Rational
		lowerClosed, upperClosed bool
	}
	perClock := make(map[uint64]*bounds)
	kept := make([]AtomConstraint, 0, len(c.atoms))

	order := make([]uint64, 0)
	for _, a := range c.atoms {
		switch {
		case a.C2.IsZero() && !a.C1.IsZero():
			// c <=|< V : upper bound on c
			b := perClock[a.C1.ID()]
			if b == nil {
				b = &bounds{}
				perClock[a.C1.ID()] = b
				order = append(order, a.C1.ID())
			}
			if !b.hasUpper || rational.Less(a.Bound, b.upper) || (rational.Equal(a.Bound, b.upper) && !a.Closed) {
				b.hasUpper, b.upper, b.upperClosed = true, a.Bound, a.Closed
			}
		case a.C1.IsZero() && !a.C2.IsZero():
			// x0 - c <=|< V  <=>  c >= -V (closed) / c > -V (strict)
			b := perClock[a.C2.ID()]
			if b == nil {
				b = &bounds{}
				perClock[a.C2.ID()] = b
				order = append(order, a.C2.ID())
			}
			lb := rational.Neg(a.Bound)
			if !b.hasLower || rational.Less(b.lower, lb) || (rational.Equal(b.lower, lb) && !a.Closed) {
				b.hasLower, b.lower, b.lowerClosed = true, lb, a.Closed
			}
		default:
			kept = append(kept, a)
		}
	}

	clockByID := make(map[uint64]clock.Clock, len(c.clocks))
	for _, cl := range c.clocks {
		clockByID[cl.ID()] = cl
	}

	result := make([]AtomConstraint, 0, len(kept)+2*len(order))
	result = append(result, kept...)
	unsat := false
	for _, id := range order {
		b := perClock[id]
		cl := clockByID[id]
		if b.hasLower && b.hasUpper {
			if rational.Less(b.upper, b.lower) {
				unsat = true
			} else if rational.Equal(b.upper, b.lower) && !(b.lowerClosed && b.upperClosed) {
				unsat = true
			}
		}
		if b.hasUpper {
			a, _ := NewSingleClockAtom(cl, b.upper, b.upperClosed)
			result = append(result, a)
		}
		if b.hasLower {
			a, _ := NewLowerBoundAtom(cl, b.lower, b.lowerClosed)
			result = append(result, a)
		}
	}

	out := NewConjunction(c.clocks, result...)
	if unsat {
		out.cache.setIfUnset(False)
	}
	return out
}
