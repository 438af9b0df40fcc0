package dbm

import (
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/rational"
)

// DBM is a difference bound matrix over a fixed clock list with the zero
// clock at index 0 (size n+1), per spec.md §3. Matrix entries are stored
// flat, row-major, following the teacher's Dense storage shape
// (matrix/impl_dense.go).
type DBM struct {
	clocks []clock.Clock  // index 0 is always clock.ZeroClock
	index  map[uint64]int
	n      int // len(clocks)
	cells  []Bound // flat, row-major, n*n
}

// New returns the initial DBM over clocks (zero clock prepended
// automatically if absent): diagonal (0,<=); row 0 (0,<=); everything else
// (+∞,<), matching spec.md §3's "Initial DBM".
func New(clocks []clock.Clock) *DBM {
	dom := make([]clock.Clock, 0, len(clocks)+1)
	dom = append(dom, clock.ZeroClock)
	for _, c := range clocks {
		if !c.IsZero() {
			dom = append(dom, c)
		}
	}
	n := len(dom)
	idx := make(map[uint64]int, n)
	for i, c := range dom {
		idx[c.ID()] = i
	}
	cells := make([]Bound, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch {
			case i == j:
				cells[i*n+j] = zeroClosed
			case i == 0:
				cells[i*n+j] = zeroClosed
			default:
				cells[i*n+j] = infBound
			}
		}
	}
	return &DBM{clocks: dom, index: idx, n: n, cells: cells}
}

// Clocks returns the DBM's governing clock list, index 0 is the zero clock.
func (d *DBM) Clocks() []clock.Clock { return d.clocks }

func (d *DBM) idx(c clock.Clock) (int, bool) {
	i, ok := d.index[c.ID()]
	return i, ok
}

// At returns the bound at (i,j).
func (d *DBM) At(i, j int) Bound { return d.cells[i*d.n+j] }

func (d *DBM) set(i, j int, b Bound) { d.cells[i*d.n+j] = b }

// Copy returns a deep clone of d, per spec.md §3 ("Copy: deep clone of
// matrices").
func (d *DBM) Copy() *DBM {
	cells := make([]Bound, len(d.cells))
	copy(cells, d.cells)
	return &DBM{clocks: d.clocks, index: d.index, n: d.n, cells: cells}
}

func (d *DBM) sameClocksAs(other *DBM) bool {
	if d.n != other.n {
		return false
	}
	for id, i := range d.index {
		j, ok := other.index[id]
		if !ok || i != j {
			return false
		}
	}
	return true
}

// Up advances every non-zero clock's upper bound to +∞ (step 1 of "future"),
// per spec.md §4.F.
func (d *DBM) Up() {
	for i := 1; i < d.n; i++ {
		d.set(i, 0, infBound)
	}
}

// Future applies Up then canonicalises, per spec.md §4.F.
func (d *DBM) Future() {
	d.Up()
	d.Canonicalize()
}

// Reset returns a copy of d with clock c reset to 0: row 0 copied into c's
// row, column 0 copied into c's column, diagonal entry (0,<=), per
// spec.md §4.F.
func (d *DBM) Reset(c clock.Clock) (*DBM, error) {
	i, ok := d.idx(c)
	if !ok {
		return nil, ErrClockSetMismatch
	}
	out := d.Copy()
	for j := 0; j < d.n; j++ {
		out.set(i, j, d.At(0, j))
	}
	for k := 0; k < d.n; k++ {
		out.set(k, i, d.At(k, 0))
	}
	out.set(i, i, zeroClosed)
	return out, nil
}

// ResetAll resets every clock in cs in sequence.
func (d *DBM) ResetAll(cs []clock.Clock) (*DBM, error) {
	cur := d
	for _, c := range cs {
		next, err := cur.Reset(c)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// IntersectAtom tightens M[i][j] where i=index(a.C1), j=index(a.C2) with
// (a.Bound, a.Closed) using the min of (value,closed) under the DBM bound
// order, per spec.md §4.F. Returns a new DBM; d is not mutated.
func (d *DBM) IntersectAtom(a guard.AtomConstraint) (*DBM, error) {
	i, ok1 := d.idx(a.C1)
	j, ok2 := d.idx(a.C2)
	if !ok1 || !ok2 {
		return nil, ErrClockSetMismatch
	}
	out := d.Copy()
	out.set(i, j, minBound(out.At(i, j), Bound{Value: a.Bound, Closed: a.Closed}))
	return out, nil
}

// IntersectConstraint intersects d with every atom of c in turn.
func (d *DBM) IntersectConstraint(c guard.Constraint) (*DBM, error) {
	cur := d
	for _, a := range c.Atoms() {
		next, err := cur.IntersectAtom(a)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Canonicalize runs Floyd–Warshall closure in place over the bound
// semiring, fixed k→i→j loop order, per spec.md §4.F — transplanted
// directly from the teacher's floydWarshallInPlace (matrix/
// impl_floydwarshall.go), generalised from float64 "+Inf means no path" to
// (value,strictness) tightening.
func (d *DBM) Canonicalize() {
	n := d.n
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			ik := d.At(i, k)
			if ik.Value.IsPosInf() {
				continue
			}
			for j := 0; j < n; j++ {
				kj := d.At(k, j)
				if kj.Value.IsPosInf() {
					continue
				}
				cand := addBounds(ik, kj)
				cur := d.At(i, j)
				if lessTight(cand, cur) {
					d.set(i, j, cand)
				} else if rational.Equal(cand.Value, cur.Value) && cur.Closed && !cand.Closed {
					// equal values, path is strict, direct was non-strict: downgrade.
					d.set(i, j, Bound{Value: cur.Value, Closed: false})
				}
			}
		}
	}
}

// IsEmpty reports whether d's zone is empty: some diagonal entry is
// (V,<=) with V<0 or (0,<), per spec.md §4.F. d should be canonical first
// for this to be a sound emptiness test on an arbitrary (not necessarily
// closed-form) DBM; Canonicalize already establishes that via negative-cycle
// detection on the diagonal.
func (d *DBM) IsEmpty() bool {
	for i := 0; i < d.n; i++ {
		diag := d.At(i, i)
		if rational.Less(diag.Value, rational.Zero) {
			return true
		}
		if rational.Equal(diag.Value, rational.Zero) && !diag.Closed {
			return true
		}
	}
	return false
}

// Include reports whether d includes other: pointwise M_d[i][j] >=
// M_other[i][j] under the bound order (other implies d, i.e. every
// valuation satisfying other satisfies d), per spec.md §4.F. Fails with
// ErrClockSetMismatch if the clock lists disagree.
func (d *DBM) Include(other *DBM) (bool, error) {
	if !d.sameClocksAs(other) {
		return false, ErrClockSetMismatch
	}
	for i := 0; i < d.n; i++ {
		for j := 0; j < d.n; j++ {
			if !leq(other.At(i, j), d.At(i, j)) {
				return false, nil
			}
		}
	}
	return true, nil
}

// Equal reports whether d and other have identical bounds (both assumed
// canonical).
func (d *DBM) Equal(other *DBM) bool {
	if !d.sameClocksAs(other) {
		return false
	}
	for i := range d.cells {
		if !rational.Equal(d.cells[i].Value, other.cells[i].Value) || d.cells[i].Closed != other.cells[i].Closed {
			return false
		}
	}
	return true
}

// Diff returns the bound for c1 - c2, i.e. At(index(c1), index(c2)).
// Fails with ErrClockSetMismatch if either clock is outside d's domain.
func (d *DBM) Diff(c1, c2 clock.Clock) (Bound, error) {
	i, ok1 := d.idx(c1)
	j, ok2 := d.idx(c2)
	if !ok1 || !ok2 {
		return Bound{}, ErrClockSetMismatch
	}
	return d.At(i, j), nil
}
