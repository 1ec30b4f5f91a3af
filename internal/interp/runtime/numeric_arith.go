package runtime

import (
	"math"
	"math/big"
	"math/cmplx"
)

// addOverflows reports whether a+b overflows int64, and if so the widened
// big.Int sum for promotion.
func addOverflows(a, b int64) (*big.Int, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return new(big.Int).Add(big.NewInt(a), big.NewInt(b)), true
	}
	return nil, false
}

func subOverflows(a, b int64) (*big.Int, bool) {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return new(big.Int).Sub(big.NewInt(a), big.NewInt(b)), true
	}
	return nil, false
}

func mulOverflows(a, b int64) (*big.Int, bool) {
	if a == 0 || b == 0 {
		return nil, false
	}
	prod := a * b
	if prod/b != a {
		return new(big.Int).Mul(big.NewInt(a), big.NewInt(b)), true
	}
	return nil, false
}

// promoteOverflow converts a big.Int that did not fit int64 to a real,
// matching the worked example in §8 ("a*b overflows machine integer, * yields
// a real equal within ε to the true product") — overflow promotes straight
// to the real rung rather than to an arbitrary-precision rational.
func (a *Arena) promoteOverflow(n *big.Int) Value {
	f := new(big.Float).SetInt(n)
	fv, _ := f.Float64()
	return a.NewReal(fv)
}

// Add implements the binary kernel of +.
func (a *Arena) Add(x, y Value) Value {
	p := a.Coerce(x, y)
	switch p.Rank {
	case 0:
		if n, ok := addOverflows(p.I[0], p.I[1]); ok {
			return a.promoteOverflow(n)
		}
		return Int(p.I[0] + p.I[1])
	case 1:
		return a.NewExactRatio(new(big.Rat).Add(p.R[0], p.R[1]))
	case 2:
		return a.NewReal(p.F[0] + p.F[1])
	default:
		return a.NewComplex(p.C[0] + p.C[1])
	}
}

// Sub implements the binary kernel of -.
func (a *Arena) Sub(x, y Value) Value {
	p := a.Coerce(x, y)
	switch p.Rank {
	case 0:
		if n, ok := subOverflows(p.I[0], p.I[1]); ok {
			return a.promoteOverflow(n)
		}
		return Int(p.I[0] - p.I[1])
	case 1:
		return a.NewExactRatio(new(big.Rat).Sub(p.R[0], p.R[1]))
	case 2:
		return a.NewReal(p.F[0] - p.F[1])
	default:
		return a.NewComplex(p.C[0] - p.C[1])
	}
}

// Mul implements the binary kernel of *.
func (a *Arena) Mul(x, y Value) Value {
	p := a.Coerce(x, y)
	switch p.Rank {
	case 0:
		if n, ok := mulOverflows(p.I[0], p.I[1]); ok {
			return a.promoteOverflow(n)
		}
		return Int(p.I[0] * p.I[1])
	case 1:
		return a.NewExactRatio(new(big.Rat).Mul(p.R[0], p.R[1]))
	case 2:
		return a.NewReal(p.F[0] * p.F[1])
	default:
		return a.NewComplex(p.C[0] * p.C[1])
	}
}

// Div implements the binary kernel of /. Division of two exact integers
// yields an exact integer when it divides evenly, otherwise an exact
// rational — never a real, per §4.4.
func (a *Arena) Div(x, y Value) (Value, error) {
	if a.IsZero(y) && y.Kind != KindReal && y.Kind != KindComplex {
		return Undefined, NewNumericError("division by zero")
	}
	p := a.Coerce(x, y)
	switch p.Rank {
	case 0:
		if p.I[1] == 0 {
			return Undefined, NewNumericError("division by zero")
		}
		if p.I[0]%p.I[1] == 0 {
			return Int(p.I[0] / p.I[1]), nil
		}
		r := new(big.Rat).SetFrac(big.NewInt(p.I[0]), big.NewInt(p.I[1]))
		return a.NewExactRatio(r), nil
	case 1:
		if p.R[1].Sign() == 0 {
			return Undefined, NewNumericError("division by zero")
		}
		return a.NewExactRatio(new(big.Rat).Quo(p.R[0], p.R[1])), nil
	case 2:
		return a.NewReal(p.F[0] / p.F[1]), nil
	default:
		return a.NewComplex(p.C[0] / p.C[1]), nil
	}
}

// requireInt resolves v to an int64, erroring for non-integer operands —
// quotient/remainder/modulo/gcd/lcm require both arguments to be integers.
func requireInt(v Value) (int64, error) {
	if v.Kind != KindInteger {
		return 0, NewNumericError("integer required, got %s", v.Kind)
	}
	return v.AsInt(), nil
}

// Quotient implements truncating integer division.
func (a *Arena) Quotient(x, y Value) (Value, error) {
	xi, err := requireInt(x)
	if err != nil {
		return Undefined, err
	}
	yi, err := requireInt(y)
	if err != nil {
		return Undefined, err
	}
	if yi == 0 {
		return Undefined, NewNumericError("division by zero")
	}
	return Int(xi / yi), nil
}

// Remainder implements the remainder of truncating division (sign follows
// the dividend).
func (a *Arena) Remainder(x, y Value) (Value, error) {
	xi, err := requireInt(x)
	if err != nil {
		return Undefined, err
	}
	yi, err := requireInt(y)
	if err != nil {
		return Undefined, err
	}
	if yi == 0 {
		return Undefined, NewNumericError("division by zero")
	}
	return Int(xi % yi), nil
}

// Modulo implements the modulo of flooring division (sign follows the
// divisor).
func (a *Arena) Modulo(x, y Value) (Value, error) {
	xi, err := requireInt(x)
	if err != nil {
		return Undefined, err
	}
	yi, err := requireInt(y)
	if err != nil {
		return Undefined, err
	}
	if yi == 0 {
		return Undefined, NewNumericError("division by zero")
	}
	m := xi % yi
	if m != 0 && (m < 0) != (yi < 0) {
		m += yi
	}
	return Int(m), nil
}

// Gcd implements (gcd ...) pairwise reduction.
func (a *Arena) Gcd(x, y Value) (Value, error) {
	xi, err := requireInt(x)
	if err != nil {
		return Undefined, err
	}
	yi, err := requireInt(y)
	if err != nil {
		return Undefined, err
	}
	g := new(big.Int).GCD(nil, nil, big.NewInt(abs64(xi)), big.NewInt(abs64(yi)))
	return Int(g.Int64()), nil
}

// Lcm implements (lcm ...) pairwise reduction.
func (a *Arena) Lcm(x, y Value) (Value, error) {
	xi, err := requireInt(x)
	if err != nil {
		return Undefined, err
	}
	yi, err := requireInt(y)
	if err != nil {
		return Undefined, err
	}
	if xi == 0 || yi == 0 {
		return Int(0), nil
	}
	g := new(big.Int).GCD(nil, nil, big.NewInt(abs64(xi)), big.NewInt(abs64(yi)))
	l := new(big.Int).Div(new(big.Int).Mul(big.NewInt(abs64(xi)), big.NewInt(abs64(yi))), g)
	if l.IsInt64() {
		return Int(l.Int64()), nil
	}
	return a.promoteOverflow(l), nil
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Abs implements the unary absolute value across the tower.
func (a *Arena) Abs(x Value) (Value, error) {
	switch x.Kind {
	case KindInteger:
		n := x.AsInt()
		if n == math.MinInt64 {
			return a.NewReal(-float64(n)), nil
		}
		return Int(abs64(n)), nil
	case KindRational:
		return a.NewExactRatio(new(big.Rat).Abs(a.Rational(x))), nil
	case KindReal:
		return a.NewReal(math.Abs(a.Real(x))), nil
	case KindComplex:
		return Undefined, NewNumericError("abs is undefined on complex numbers")
	default:
		return Undefined, NewNumericError("abs requires a number")
	}
}

// Neg implements unary negation.
func (a *Arena) Neg(x Value) Value {
	switch x.Kind {
	case KindInteger:
		n := x.AsInt()
		if n == math.MinInt64 {
			return a.NewReal(-float64(n))
		}
		return Int(-n)
	case KindRational:
		return a.NewExactRatio(new(big.Rat).Neg(a.Rational(x)))
	case KindReal:
		return a.NewReal(-a.Real(x))
	case KindComplex:
		return a.NewComplex(-a.Complex(x))
	default:
		return x
	}
}

// CPow implements expt for a complex base, used once either operand widens
// to complex.
func CPow(base, exp complex128) complex128 {
	return cmplx.Pow(base, exp)
}
