package runtime

import (
	"math"
	"math/big"
)

// Rational is the heap payload of an exact ratio. big.Rat is used for the
// representation: the retrieved corpus has no third-party arbitrary-
// precision or rational-arithmetic library, so this is a deliberate
// standard-library choice (see DESIGN.md) rather than an ecosystem one.
// big.Rat always keeps itself reduced with a positive denominator, which is
// exactly the invariant §3 requires.
type Rational struct {
	Val *big.Rat
}

// Trace reports no referenced Values; rationals are atomic.
func (r *Rational) Trace(func(Value)) {}

// Real is the heap payload of an inexact IEEE-754 double.
type Real struct {
	Val float64
}

// Trace reports no referenced Values; reals are atomic.
func (r *Real) Trace(func(Value)) {}

// Complex is the heap payload of an inexact complex pair.
type Complex struct {
	Val complex128
}

// Trace reports no referenced Values; complexes are atomic.
func (c *Complex) Trace(func(Value)) {}

// NewRational allocates a reduced exact ratio. If the denominator reduces
// to 1 and the numerator fits an int64, the caller should prefer NewExact
// to get back an inline integer instead — Rational is reserved for ratios
// that are not whole numbers.
func (a *Arena) NewRational(r *big.Rat) Value {
	return a.alloc(KindRational, &Rational{Val: new(big.Rat).Set(r)})
}

// NewComplex allocates an inexact complex pair.
func (a *Arena) NewComplex(c complex128) Value {
	return a.alloc(KindComplex, &Complex{Val: c})
}

// Rational resolves a KindRational Value to its *big.Rat.
func (a *Arena) Rational(v Value) *big.Rat {
	e := a.lookup(v)
	if e == nil {
		return new(big.Rat)
	}
	r, _ := e.Obj.(*Rational)
	if r == nil {
		return new(big.Rat)
	}
	return r.Val
}

// Real resolves a KindReal Value to its float64.
func (a *Arena) Real(v Value) float64 {
	e := a.lookup(v)
	if e == nil {
		return 0
	}
	r, _ := e.Obj.(*Real)
	if r == nil {
		return 0
	}
	return r.Val
}

// Complex resolves a KindComplex Value to its complex128.
func (a *Arena) Complex(v Value) complex128 {
	e := a.lookup(v)
	if e == nil {
		return 0
	}
	c, _ := e.Obj.(*Complex)
	if c == nil {
		return 0
	}
	return c.Val
}

// NewExactRatio reduces a numerator/denominator pair to the tightest exact
// representation: an inline integer when the ratio is whole, a Rational
// heap value otherwise.
func (a *Arena) NewExactRatio(r *big.Rat) Value {
	if r.IsInt() {
		if n := r.Num(); n.IsInt64() {
			return Int(n.Int64())
		}
		// A reduced integer too large for int64 is promoted to inexact —
		// the tower described by the specification has no bignum rung
		// above rational, only real.
		f, _ := new(big.Float).SetRat(r).Float64()
		return a.NewReal(f)
	}
	return a.NewRational(r)
}

// numberRank orders the numeric tower for coercion joins: integer <
// rational < real < complex.
func numberRank(k Kind) int {
	switch k {
	case KindInteger:
		return 0
	case KindRational:
		return 1
	case KindReal:
		return 2
	case KindComplex:
		return 3
	default:
		return -1
	}
}

// IsExact reports whether v is an exact number (integer or rational).
func (a *Arena) IsExact(v Value) bool {
	return v.Kind == KindInteger || v.Kind == KindRational
}

// ToRat converts an exact (integer or rational) value to a *big.Rat.
func (a *Arena) ToRat(v Value) *big.Rat {
	switch v.Kind {
	case KindInteger:
		return new(big.Rat).SetInt64(v.AsInt())
	case KindRational:
		return new(big.Rat).Set(a.Rational(v))
	default:
		return new(big.Rat)
	}
}

// ToFloat converts any number to a float64, the widening used whenever an
// operand must be lifted to real.
func (a *Arena) ToFloat(v Value) float64 {
	switch v.Kind {
	case KindInteger:
		return float64(v.AsInt())
	case KindRational:
		f, _ := new(big.Float).SetRat(a.Rational(v)).Float64()
		return f
	case KindReal:
		return a.Real(v)
	case KindComplex:
		return real(a.Complex(v))
	default:
		return math.NaN()
	}
}

// ToComplex converts any number to a complex128, the widening used whenever
// an operand must be lifted to complex.
func (a *Arena) ToComplex(v Value) complex128 {
	if v.Kind == KindComplex {
		return a.Complex(v)
	}
	return complex(a.ToFloat(v), 0)
}

// Coerce lifts x and y to the join of their kinds, returning Go values
// typed to the common rung so kernels only need to implement one case.
// Exactly one of the four return groups is populated depending on rank.
type CoercedPair struct {
	Rank int
	I    [2]int64
	R    [2]*big.Rat
	F    [2]float64
	C    [2]complex128
}

// Coerce computes the join rank of x and y and widens both to it.
func (a *Arena) Coerce(x, y Value) CoercedPair {
	rank := numberRank(x.Kind)
	if r := numberRank(y.Kind); r > rank {
		rank = r
	}
	var p CoercedPair
	p.Rank = rank
	switch rank {
	case 0:
		p.I = [2]int64{x.AsInt(), y.AsInt()}
	case 1:
		p.R = [2]*big.Rat{a.ToRat(x), a.ToRat(y)}
	case 2:
		p.F = [2]float64{a.ToFloat(x), a.ToFloat(y)}
	case 3:
		p.C = [2]complex128{a.ToComplex(x), a.ToComplex(y)}
	}
	return p
}

// IsZero reports whether v is the numeric zero of its kind.
func (a *Arena) IsZero(v Value) bool {
	switch v.Kind {
	case KindInteger:
		return v.AsInt() == 0
	case KindRational:
		return a.Rational(v).Sign() == 0
	case KindReal:
		return a.Real(v) == 0
	case KindComplex:
		return a.Complex(v) == 0
	default:
		return false
	}
}
