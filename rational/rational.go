// Package rational implements exact arithmetic over the rationals extended
// with ±∞, the numeric substrate every other package in this module builds
// on (clock valuations, guard bounds, DBM entries).
//
// Errors:
//
//	ErrInvalidRational - an operation produced an undefined value (0/0, ∞−∞).
//	ErrNotFinite        - floor/frac/isInteger called on a non-finite value.
package rational

import (
	"errors"
	"math/big"
)

// ErrInvalidRational indicates an operation with no well-defined result,
// such as 0/0 or ∞ + (−∞).
var ErrInvalidRational = errors.New("rational: invalid operation (0/0 or ∞−∞)")

// ErrNotFinite indicates floor/frac/isInteger was called on ±∞.
var ErrNotFinite = errors.New("rational: value is not finite")

// kind distinguishes finite values from the two infinite sentinels.
type kind int8

const (
	kindFinite kind = iota
	kindPosInf
	kindNegInf
)

// Rational is an exact rational number, or +∞/−∞. The zero value is the
// rational 0.
type Rational struct {
	k kind
	r big.Rat // meaningful only when k == kindFinite
}

// Epsilon is a small positive rational used by the DBM delay solver (see
// package dbm) as a last-resort nudge to satisfy a strict inequality with a
// concrete value. Its exact magnitude is an implementation choice; it must
// only be positive and reproducible. 1/10^9 matches the magnitude spec.md
// §4.A suggests.
var Epsilon = FromInts(1, 1000000000)

// Zero is the rational 0.
var Zero = Rational{}

// PosInf is +∞.
var PosInf = Rational{k: kindPosInf}

// NegInf is −∞.
var NegInf = Rational{k: kindNegInf}

// FromInt returns the rational n/1.
func FromInt(n int64) Rational {
	var r Rational
	r.r.SetInt64(n)
	return r
}

// FromInts returns the rational n/d in lowest terms. Panics if d == 0, which
// is a programmer error (callers must not construct a rational from a
// zero denominator).
func FromInts(n, d int64) Rational {
	if d == 0 {
		panic("rational: zero denominator")
	}
	var r Rational
	r.r.SetFrac64(n, d)
	return r
}

// FromBigRat wraps an existing big.Rat as a finite Rational.
func FromBigRat(v *big.Rat) Rational {
	var r Rational
	r.r.Set(v)
	return r
}

// IsInfinite reports whether x is +∞ or −∞.
func (x Rational) IsInfinite() bool { return x.k != kindFinite }

// IsPosInf reports whether x is +∞.
func (x Rational) IsPosInf() bool { return x.k == kindPosInf }

// IsNegInf reports whether x is −∞.
func (x Rational) IsNegInf() bool { return x.k == kindNegInf }

// BigRat returns the underlying big.Rat for a finite value. Callers must
// check IsInfinite first; the returned pointer must not be mutated.
func (x *Rational) BigRat() *big.Rat { return &x.r }

// Sign returns -1, 0, or 1, treating −∞ < 0 < +∞.
func (x Rational) Sign() int {
	switch x.k {
	case kindPosInf:
		return 1
	case kindNegInf:
		return -1
	default:
		return x.r.Sign()
	}
}

// Add returns x+y. Fails with ErrInvalidRational for ∞ + (−∞).
func Add(x, y Rational) (Rational, error) {
	if x.k == kindFinite && y.k == kindFinite {
		var out Rational
		out.r.Add(&x.r, &y.r)
		return out, nil
	}
	if x.IsInfinite() && y.IsInfinite() && x.k != y.k {
		return Rational{}, ErrInvalidRational
	}
	if x.k != kindFinite {
		return x, nil
	}
	return y, nil
}

// Sub returns x-y. Fails with ErrInvalidRational for ∞ − ∞ (same sign).
func Sub(x, y Rational) (Rational, error) {
	return Add(x, Neg(y))
}

// Neg returns -x.
func Neg(x Rational) Rational {
	switch x.k {
	case kindPosInf:
		return NegInf
	case kindNegInf:
		return PosInf
	default:
		var out Rational
		out.r.Neg(&x.r)
		return out
	}
}

// Mul returns x*y. Fails with ErrInvalidRational for 0 * ∞.
func Mul(x, y Rational) (Rational, error) {
	if x.k == kindFinite && y.k == kindFinite {
		var out Rational
		out.r.Mul(&x.r, &y.r)
		return out, nil
	}
	if (x.k == kindFinite && x.r.Sign() == 0) || (y.k == kindFinite && y.r.Sign() == 0) {
		return Rational{}, ErrInvalidRational
	}
	neg := (x.Sign() < 0) != (y.Sign() < 0)
	if neg {
		return NegInf, nil
	}
	return PosInf, nil
}

// Div returns x/y. Fails with ErrInvalidRational for 0/0, ∞/∞, or division
// by exact zero.
func Div(x, y Rational) (Rational, error) {
	if x.k == kindFinite && y.k == kindFinite {
		if y.r.Sign() == 0 {
			return Rational{}, ErrInvalidRational
		}
		var out Rational
		out.r.Quo(&x.r, &y.r)
		return out, nil
	}
	if x.IsInfinite() && y.IsInfinite() {
		return Rational{}, ErrInvalidRational
	}
	if y.IsInfinite() {
		return Zero, nil
	}
	// x infinite, y finite
	if y.r.Sign() == 0 {
		return Rational{}, ErrInvalidRational
	}
	neg := (x.Sign() < 0) != (y.r.Sign() < 0)
	if neg {
		return NegInf, nil
	}
	return PosInf, nil
}

// Compare returns -1, 0, or 1 as x<y, x==y, or x>y, under −∞ < finite < +∞.
func Compare(x, y Rational) int {
	if x.k == y.k {
		if x.k == kindFinite {
			return x.r.Cmp(&y.r)
		}
		return 0
	}
	// different kinds: order by rank NegInf < Finite < PosInf
	rank := func(r Rational) int {
		switch r.k {
		case kindNegInf:
			return 0
		case kindPosInf:
			return 2
		default:
			return 1
		}
	}
	xr, yr := rank(x), rank(y)
	switch {
	case xr < yr:
		return -1
	case xr > yr:
		return 1
	default:
		return 0
	}
}

// Equal reports whether x == y.
func Equal(x, y Rational) bool { return Compare(x, y) == 0 }

// Less reports whether x < y.
func Less(x, y Rational) bool { return Compare(x, y) < 0 }

// LessEqual reports whether x <= y.
func LessEqual(x, y Rational) bool { return Compare(x, y) <= 0 }

// Max returns the greater of x and y.
func Max(x, y Rational) Rational {
	if Less(x, y) {
		return y
	}
	return x
}

// Min returns the lesser of x and y.
func Min(x, y Rational) Rational {
	if Less(x, y) {
		return x
	}
	return y
}

// IsInteger reports whether x is a finite integer. Fails with ErrNotFinite
// for ±∞.
func (x Rational) IsInteger() (bool, error) {
	if x.k != kindFinite {
		return false, ErrNotFinite
	}
	return x.r.IsInt(), nil
}

// Floor returns ⌊x⌋ as a finite Rational. Fails with ErrNotFinite for ±∞.
func (x Rational) Floor() (Rational, error) {
	if x.k != kindFinite {
		return Rational{}, ErrNotFinite
	}
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(x.r.Num(), x.r.Denom(), m)
	var out Rational
	out.r.SetInt(q)
	return out, nil
}

// Frac returns x − ⌊x⌋, a value in [0,1). Fails with ErrNotFinite for ±∞.
func (x Rational) Frac() (Rational, error) {
	f, err := x.Floor()
	if err != nil {
		return Rational{}, err
	}
	out, err := Sub(x, f)
	if err != nil {
		return Rational{}, err
	}
	return out, nil
}

// ErrInvalidLiteral indicates Parse was given text that is neither a
// "+Inf"/"-Inf" sentinel nor a decimal or "p/q" literal big.Rat accepts.
var ErrInvalidLiteral = errors.New("rational: invalid numeric literal")

// Parse reads a decimal ("1.5") or fraction ("3/2") literal, or the
// sentinels "+Inf"/"-Inf", into a Rational. Used by package dtafile to
// decode guard-interval bounds from their JSON string form.
func Parse(s string) (Rational, error) {
	switch s {
	case "+Inf":
		return PosInf, nil
	case "-Inf":
		return NegInf, nil
	}
	var out Rational
	if _, ok := out.r.SetString(s); !ok {
		return Rational{}, ErrInvalidLiteral
	}
	return out, nil
}

// String renders x as "p/q" ("p" when x is an integer), "+Inf", or "-Inf".
func (x Rational) String() string {
	switch x.k {
	case kindPosInf:
		return "+Inf"
	case kindNegInf:
		return "-Inf"
	default:
		return x.r.RatString()
	}
}
