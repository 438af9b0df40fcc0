package guard

import "github.com/katalvlaran/dtalearn/clock"

// DisjunctiveConstraint is a DNF over a fixed clock set: the empty set of
// disjuncts is FALSE; a set containing a TRUE conjunction is TRUE
// (spec.md §3).
type DisjunctiveConstraint struct {
	clocks    []clock.Clock
	disjuncts []Constraint
}

// NewDisjunction builds a DNF over clocks from the given disjuncts.
func NewDisjunction(clocks []clock.Clock, disjuncts ...Constraint) DisjunctiveConstraint {
	return DisjunctiveConstraint{clocks: cloneClocks(clocks), disjuncts: append([]Constraint{}, disjuncts...)}
}

// Clocks returns the DNF's clock set.
func (d DisjunctiveConstraint) Clocks() []clock.Clock { return d.clocks }

// Disjuncts returns the DNF's disjuncts. The returned slice must not be
// mutated.
func (d DisjunctiveConstraint) Disjuncts() []Constraint { return d.disjuncts }

// IsEmpty reports whether d has no disjuncts at all (syntactically FALSE).
func (d DisjunctiveConstraint) IsEmpty() bool { return len(d.disjuncts) == 0 }

// Or appends other's disjuncts to d.
func (d DisjunctiveConstraint) Or(other DisjunctiveConstraint) DisjunctiveConstraint {
	all := append(append([]Constraint{}, d.disjuncts...), other.disjuncts...)
	return NewDisjunction(d.clocks, all...)
}

// And distributes other over every disjunct of d (conjunction of two DNFs).
// Fails with ErrClockSetMismatch if any pairing's clock sets differ.
func (d DisjunctiveConstraint) And(other Constraint) (DisjunctiveConstraint, error) {
	out := make([]Constraint, 0, len(d.disjuncts))
	for _, dj := range d.disjuncts {
		joined, err := dj.And(other)
		if err != nil {
			return DisjunctiveConstraint{}, err
		}
		out = append(out, joined)
	}
	return NewDisjunction(d.clocks, out...), nil
}

// Negate returns ¬d = ⋀ᵢ ¬dᵢ, distributed back out into DNF.
func (d DisjunctiveConstraint) Negate() DisjunctiveConstraint {
	acc := NewDisjunction(d.clocks, NewConjunction(d.clocks)) // TRUE (single empty conjunct)
	for _, dj := range d.disjuncts {
		negated := dj.Negate()
		next := make([]Constraint, 0, len(acc.disjuncts)*len(negated.disjuncts))
		for _, a := range acc.disjuncts {
			for _, b := range negated.disjuncts {
				joined, err := a.And(b)
				if err != nil {
					continue
				}
				next = append(next, joined)
			}
		}
		acc = NewDisjunction(d.clocks, next...)
	}
	return acc
}

// Minus returns d ∧ ¬other.
func (d DisjunctiveConstraint) Minus(other DisjunctiveConstraint) DisjunctiveConstraint {
	notOther := other.Negate()
	out := make([]Constraint, 0, len(d.disjuncts)*len(notOther.disjuncts))
	for _, a := range d.disjuncts {
		for _, b := range notOther.disjuncts {
			joined, err := a.And(b)
			if err != nil {
				continue
			}
			out = append(out, joined)
		}
	}
	return NewDisjunction(d.clocks, out...)
}

// NegateDisjoint returns a DNF logically equivalent to ¬d whose disjuncts
// are pairwise disjoint, by iteratively subtracting each already-emitted
// disjunct from the next candidate using Minus, per spec.md §4.D. Used to
// materialise "uncovered region" when completing a DTA (§4.G ToCTA).
func (d DisjunctiveConstraint) NegateDisjoint() DisjunctiveConstraint {
	notD := d.Negate()
	var emitted []Constraint
	var result []Constraint
	for _, candidate := range notD.disjuncts {
		cur := NewDisjunction(d.clocks, candidate)
		for _, e := range emitted {
			cur = cur.Minus(NewDisjunction(d.clocks, e))
		}
		result = append(result, cur.disjuncts...)
		emitted = append(emitted, cur.disjuncts...)
	}
	return NewDisjunction(d.clocks, result...)
}

// Simplify simplifies every disjunct independently.
func (d DisjunctiveConstraint) Simplify() DisjunctiveConstraint {
	out := make([]Constraint, len(d.disjuncts))
	for i, dj := range d.disjuncts {
		out[i] = dj.Simplify()
	}
	return NewDisjunction(d.clocks, out...)
}
