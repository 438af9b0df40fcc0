// Package oracle implements the constraint-oracle decision procedure
// spec.md §4.D/§9 calls for in place of an SMT back-end: satisfiability and
// validity of a conjunction of linear rational difference atoms. The
// procedure is the one grounded directly in this module's own DBM engine
// (package dbm), itself transplanted from the teacher's
// matrix/impl_floydwarshall.go closure: a conjunction of difference atoms is
// satisfiable over ℚ iff its constraint graph has no negative cycle, which
// DBM.Canonicalize (Floyd–Warshall) detects on the diagonal via DBM.IsEmpty.
package oracle

import (
	"github.com/katalvlaran/dtalearn/dbm"
	"github.com/katalvlaran/dtalearn/guard"
)

// DBMOracle is the reference guard.Oracle implementation. It holds no
// mutable state and is safe for concurrent use.
type DBMOracle struct{}

// New returns a DBMOracle.
func New() *DBMOracle { return &DBMOracle{} }

// IsSatisfiable reports whether some valuation in the non-negative orthant
// satisfies c, by building the corresponding DBM and checking it is not
// empty after canonicalisation.
func (o *DBMOracle) IsSatisfiable(c guard.Constraint) (bool, error) {
	d := dbm.New(c.Clocks())
	d, err := d.IntersectConstraint(c)
	if err != nil {
		return false, err
	}
	d.Canonicalize()
	return !d.IsEmpty(), nil
}

// IsTrue reports whether c holds for every valuation in the non-negative
// orthant, i.e. ¬c is unsatisfiable: every disjunct of c.Negate() must be
// unsatisfiable.
func (o *DBMOracle) IsTrue(c guard.Constraint) (bool, error) {
	negated := c.Negate()
	for _, disjunct := range negated.Disjuncts() {
		sat, err := o.IsSatisfiable(disjunct)
		if err != nil {
			return false, err
		}
		if sat {
			return false, nil
		}
	}
	return true, nil
}

// IsSatisfiableDNF reports whether some disjunct of d is satisfiable.
func (o *DBMOracle) IsSatisfiableDNF(d guard.DisjunctiveConstraint) (bool, error) {
	for _, disjunct := range d.Disjuncts() {
		sat, err := o.IsSatisfiable(disjunct)
		if err != nil {
			return false, err
		}
		if sat {
			return true, nil
		}
	}
	return false, nil
}
