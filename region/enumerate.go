package region

import (
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/valuation"
)

type classKind int8

const (
	classSaturated classKind = iota
	classZeroFrac
	classNonZeroFrac
)

type classChoice struct {
	kind classKind
	intPart int
}

// AllRegions enumerates every canonical region over clocks, per spec.md
// §4.E's finite-index argument: each clock is either saturated or has an
// integer part in [0,κ] with a zero or nonzero fractional part, and the
// nonzero-fraction clocks are totally ordered. Used by package table to
// drive the observation table's frontier over a finite time abstraction
// instead of sampling arbitrary reals.
func AllRegions(clocks []clock.Clock) ([]Region, error) {
	nz := make([]clock.Clock, 0, len(clocks))
	for _, c := range clocks {
		if !c.IsZero() {
			nz = append(nz, c)
		}
	}

	var results []Region
	seen := make(map[string]bool)
	choices := make([]classChoice, len(nz))

	var assign func(i int) error
	assign = func(i int) error {
		if i == len(nz) {
			return enumerateOrderings(nz, choices, &results, seen)
		}
		c := nz[i]
		choices[i] = classChoice{kind: classSaturated}
		if err := assign(i + 1); err != nil {
			return err
		}
		for ip := 0; ip <= c.Kappa(); ip++ {
			choices[i] = classChoice{kind: classZeroFrac, intPart: ip}
			if err := assign(i + 1); err != nil {
				return err
			}
			choices[i] = classChoice{kind: classNonZeroFrac, intPart: ip}
			if err := assign(i + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := assign(0); err != nil {
		return nil, err
	}
	return results, nil
}

func enumerateOrderings(clocks []clock.Clock, choices []classChoice, results *[]Region, seen map[string]bool) error {
	var frac []clock.Clock
	for i, c := range choices {
		if c.kind == classNonZeroFrac {
			frac = append(frac, clocks[i])
		}
	}
	return permute(frac, func(order []clock.Clock) error {
		v := valuation.New(clocks)
		var err error
		for i, c := range clocks {
			ch := choices[i]
			switch ch.kind {
			case classSaturated:
				v, err = v.WithValue(c, rational.FromInt(int64(c.Kappa()+1)))
			default:
				v, err = v.WithValue(c, rational.FromInt(int64(ch.intPart)))
			}
			if err != nil {
				return err
			}
		}
		n := len(order)
		for k, c := range order {
			base, err := v.Value(c)
			if err != nil {
				return err
			}
			frac := rational.FromInts(int64(k+1), int64(n+1))
			nv, err := rational.Add(base, frac)
			if err != nil {
				return err
			}
			v, err = v.WithValue(c, nv)
			if err != nil {
				return err
			}
		}
		r, err := FromValuation(v)
		if err != nil {
			return err
		}
		key := r.String()
		if !seen[key] {
			seen[key] = true
			*results = append(*results, r)
		}
		return nil
	})
}

// permute calls fn once per permutation of items (n! calls), short-circuiting
// on the first error.
func permute(items []clock.Clock, fn func([]clock.Clock) error) error {
	n := len(items)
	buf := make([]clock.Clock, n)
	copy(buf, items)
	var rec func(k int) error
	rec = func(k int) error {
		if k == n {
			cp := make([]clock.Clock, n)
			copy(cp, buf)
			return fn(cp)
		}
		for i := k; i < n; i++ {
			buf[k], buf[i] = buf[i], buf[k]
			if err := rec(k + 1); err != nil {
				return err
			}
			buf[k], buf[i] = buf[i], buf[k]
		}
		return nil
	}
	return rec(0)
}
