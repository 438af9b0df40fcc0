// Package region implements the region abstraction of spec.md §4.E/§3: the
// finite equivalence classes over clock valuations induced by integer parts
// (up to a per-clock ceiling κ) and fractional ordering, plus the
// region<->valuation<->guard conversions the table's partition function
// (package table) needs.
package region

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/valuation"
)

// Region is the canonical equivalence class of spec.md §3.
type Region struct {
	clocks       []clock.Clock // non-zero clocks, in a fixed order
	integerPart  map[uint64]int
	saturated    map[uint64]bool
	zeroFrac     map[uint64]bool
	fractionOrder []clock.Clock // non-saturated, non-zero-fraction clocks, ascending fractional value
	kappa        map[uint64]int
}

func intOf(t rational.Rational) int {
	// t is finite (caller guarantees, since it comes from Floor() of a
	// concrete ℚ≥0 valuation), and fits in an int for any realistic κ range.
	n := t.BigRat().Num()
	d := t.BigRat().Denom()
	q := new(big.Int).Quo(n, d)
	return int(q.Int64())
}

// FromValuation computes the canonical region for v, per spec.md §4.C/§4.E:
// a clock is saturated iff ⌊v(c)⌋ > κ(c); non-saturated clocks with
// fractional value 0 go into the zero-fraction set; the rest are ordered by
// fractional value into fractionOrder.
func FromValuation(v valuation.Valuation) (Region, error) {
	clocks := make([]clock.Clock, 0)
	for _, c := range v.Clocks() {
		if !c.IsZero() {
			clocks = append(clocks, c)
		}
	}
	r := Region{
		clocks:      clocks,
		integerPart: make(map[uint64]int, len(clocks)),
		saturated:   make(map[uint64]bool, len(clocks)),
		zeroFrac:    make(map[uint64]bool, len(clocks)),
		kappa:       make(map[uint64]int, len(clocks)),
	}
	type fracEntry struct {
		c    clock.Clock
		frac rational.Rational
	}
	var fracs []fracEntry
	for _, c := range clocks {
		r.kappa[c.ID()] = c.Kappa()
		val, err := v.Value(c)
		if err != nil {
			return Region{}, err
		}
		floor, err := val.Floor()
		if err != nil {
			return Region{}, err
		}
		ip := intOf(floor)
		if ip > c.Kappa() {
			r.saturated[c.ID()] = true
			continue
		}
		r.integerPart[c.ID()] = ip
		frac, err := val.Frac()
		if err != nil {
			return Region{}, err
		}
		if frac.Sign() == 0 {
			r.zeroFrac[c.ID()] = true
		} else {
			fracs = append(fracs, fracEntry{c: c, frac: frac})
		}
	}
	sort.SliceStable(fracs, func(i, j int) bool {
		cmp := rational.Compare(fracs[i].frac, fracs[j].frac)
		if cmp != 0 {
			return cmp < 0
		}
		return fracs[i].c.ID() < fracs[j].c.ID() // deterministic tie-break
	})
	for _, fe := range fracs {
		r.fractionOrder = append(r.fractionOrder, fe.c)
	}
	return r, nil
}

// Clocks returns the region's non-zero clocks.
func (r Region) Clocks() []clock.Clock { return r.clocks }

// String renders a stable signature for r, used as a map/dedup key by
// callers (package table's row bookkeeping, region enumeration dedup).
func (r Region) String() string {
	var b strings.Builder
	for _, c := range r.clocks {
		switch {
		case r.saturated[c.ID()]:
			fmt.Fprintf(&b, "%s:sat;", c.Name())
		case r.zeroFrac[c.ID()]:
			fmt.Fprintf(&b, "%s:%d+0;", c.Name(), r.integerPart[c.ID()])
		default:
			fmt.Fprintf(&b, "%s:%d+;", c.Name(), r.integerPart[c.ID()])
		}
	}
	b.WriteString("order:")
	for _, c := range r.fractionOrder {
		fmt.Fprintf(&b, "%s,", c.Name())
	}
	return b.String()
}

// FractionOrder returns the clocks with a nonzero, non-saturated fractional
// part, ascending by fractional value.
func (r Region) FractionOrder() []clock.Clock { return r.fractionOrder }

// IsSaturated reports whether c is saturated in this region.
func (r Region) IsSaturated(c clock.Clock) bool { return r.saturated[c.ID()] }

// IsZeroFraction reports whether c is non-saturated with a zero fractional
// part in this region.
func (r Region) IsZeroFraction(c clock.Clock) bool { return r.zeroFrac[c.ID()] }

// IntegerPart returns the recorded integer part of c (meaningless if c is
// saturated).
func (r Region) IntegerPart(c clock.Clock) int { return r.integerPart[c.ID()] }

// Contains reports whether valuation v belongs to this region: integer
// parts match (with saturation equivalence: both > κ), every zero-fraction
// clock has fractional 0, and fractions sort exactly in the recorded order,
// per spec.md §4.E.
func (r Region) Contains(v valuation.Valuation) (bool, error) {
	for _, c := range r.clocks {
		val, err := v.Value(c)
		if err != nil {
			return false, err
		}
		floor, err := val.Floor()
		if err != nil {
			return false, err
		}
		ip := intOf(floor)
		if r.saturated[c.ID()] {
			if ip <= c.Kappa() {
				return false, nil
			}
			continue
		}
		if ip > c.Kappa() {
			return false, nil
		}
		if ip != r.integerPart[c.ID()] {
			return false, nil
		}
		frac, err := val.Frac()
		if err != nil {
			return false, err
		}
		if r.zeroFrac[c.ID()] {
			if frac.Sign() != 0 {
				return false, nil
			}
		} else {
			if frac.Sign() == 0 {
				return false, nil
			}
		}
	}
	// verify fraction order is preserved
	for i := 1; i < len(r.fractionOrder); i++ {
		prev, err := v.Fraction(r.fractionOrder[i-1])
		if err != nil {
			return false, err
		}
		cur, err := v.Fraction(r.fractionOrder[i])
		if err != nil {
			return false, err
		}
		if rational.Less(cur, prev) {
			return false, nil
		}
	}
	return true, nil
}

// BuildValuation returns a canonical concrete representative of r: integer
// parts placed as recorded (saturated clocks get κ+1), zero-fraction clocks
// get fraction 0, and the n clocks of fractionOrder get fractional values
// k/(n+1) for k=1..n, preserving order, per spec.md §4.E.
func (r Region) BuildValuation() (valuation.Valuation, error) {
	v := valuation.New(r.clocks)
	for _, c := range r.clocks {
		var val rational.Rational
		switch {
		case r.saturated[c.ID()]:
			val = rational.FromInt(int64(c.Kappa() + 1))
		case r.zeroFrac[c.ID()]:
			val = rational.FromInt(int64(r.integerPart[c.ID()]))
		default:
			val = rational.FromInt(int64(r.integerPart[c.ID()]))
		}
		var err error
		v, err = v.WithValue(c, val)
		if err != nil {
			return valuation.Valuation{}, err
		}
	}
	n := len(r.fractionOrder)
	for k, c := range r.fractionOrder {
		base, err := v.Value(c)
		if err != nil {
			return valuation.Valuation{}, err
		}
		frac := rational.FromInts(int64(k+1), int64(n+1))
		nv, err := rational.Add(base, frac)
		if err != nil {
			return valuation.Valuation{}, err
		}
		v, err = v.WithValue(c, nv)
		if err != nil {
			return valuation.Valuation{}, err
		}
	}
	return v, nil
}

// ToConstraint emits the conjunctive guard characterising r, per spec.md
// §4.E:
//   - for a saturated clock c: c > κ(c).
//   - for a zero-fraction clock c: c >= intPart ∧ c <= intPart.
//   - for a non-saturated nonzero-fraction clock c: c > intPart (and,
//     to pin the integer part precisely, c < intPart+1 -- the prose leaves
//     this upper pin implicit; it is made explicit here).
//   - pairwise cᵢ - cⱼ > intᵢ - intⱼ for cⱼ preceding cᵢ in fractionOrder,
//     and for every zero-fraction clock cⱼ.
//   - when needFraction is set, equal-fraction atoms among zeroFrac clocks:
//     cᵢ - cⱼ == intᵢ - intⱼ.
func (r Region) ToConstraint(needFraction bool) guard.Constraint {
	var atoms []guard.AtomConstraint
	add := func(a guard.AtomConstraint, err error) {
		if err == nil {
			atoms = append(atoms, a)
		}
	}

	for _, c := range r.clocks {
		switch {
		case r.saturated[c.ID()]:
			add(guard.NewLowerBoundAtom(c, rational.FromInt(int64(c.Kappa())), false))
		case r.zeroFrac[c.ID()]:
			ip := rational.FromInt(int64(r.integerPart[c.ID()]))
			add(guard.NewLowerBoundAtom(c, ip, true))
			add(guard.NewSingleClockAtom(c, ip, true))
		default:
			ip := rational.FromInt(int64(r.integerPart[c.ID()]))
			ipPlus1 := rational.FromInt(int64(r.integerPart[c.ID()] + 1))
			add(guard.NewLowerBoundAtom(c, ip, false))
			add(guard.NewSingleClockAtom(c, ipPlus1, false))
		}
	}

	for i, ci := range r.fractionOrder {
		intI := r.integerPart[ci.ID()]
		for j := 0; j < i; j++ {
			cj := r.fractionOrder[j]
			intJ := r.integerPart[cj.ID()]
			add(guard.NewAtom(cj, ci, rational.FromInt(int64(intJ-intI)), false))
		}
		for _, cj := range r.clocks {
			if !r.zeroFrac[cj.ID()] {
				continue
			}
			intJ := r.integerPart[cj.ID()]
			add(guard.NewAtom(cj, ci, rational.FromInt(int64(intJ-intI)), false))
		}
	}

	if needFraction {
		zf := make([]clock.Clock, 0)
		for _, c := range r.clocks {
			if r.zeroFrac[c.ID()] {
				zf = append(zf, c)
			}
		}
		for i := 0; i < len(zf); i++ {
			for j := i + 1; j < len(zf); j++ {
				diff := rational.FromInt(int64(r.integerPart[zf[i].ID()] - r.integerPart[zf[j].ID()]))
				add(guard.NewAtom(zf[i], zf[j], diff, true))
				add(guard.NewAtom(zf[j], zf[i], rational.Neg(diff), true))
			}
		}
	}

	return guard.NewConjunction(r.clocks, atoms...)
}
