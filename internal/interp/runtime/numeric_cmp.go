package runtime

import "math"

// Compare implements the mathematical ordering used by =, <, >, <=, >=.
// Complex operands with a nonzero imaginary part are a numeric-error per
// §4.4 ("complex ordering is an error"); equality still falls through to
// NumEqual, which is defined for all kinds.
func (a *Arena) Compare(x, y Value) (int, error) {
	if err := a.checkOrderable(x); err != nil {
		return 0, err
	}
	if err := a.checkOrderable(y); err != nil {
		return 0, err
	}
	p := a.Coerce(x, y)
	switch p.Rank {
	case 0:
		switch {
		case p.I[0] < p.I[1]:
			return -1, nil
		case p.I[0] > p.I[1]:
			return 1, nil
		default:
			return 0, nil
		}
	case 1:
		return p.R[0].Cmp(p.R[1]), nil
	default:
		switch {
		case p.F[0] < p.F[1]:
			return -1, nil
		case p.F[0] > p.F[1]:
			return 1, nil
		default:
			return 0, nil
		}
	}
}

func (a *Arena) checkOrderable(v Value) error {
	if v.Kind == KindComplex && imagPart(a.Complex(v)) != 0 {
		return NewNumericError("cannot order a complex number with nonzero imaginary part")
	}
	return nil
}

func imagPart(c complex128) float64 { return imag(c) }

// NumEqual implements = : mathematical value equality after coercion,
// deliberately distinct from Eqv which also compares exactness.
func (a *Arena) NumEqual(x, y Value) bool {
	p := a.Coerce(x, y)
	switch p.Rank {
	case 0:
		return p.I[0] == p.I[1]
	case 1:
		return p.R[0].Cmp(p.R[1]) == 0
	case 2:
		return p.F[0] == p.F[1]
	default:
		return p.C[0] == p.C[1]
	}
}

// IsPositive, IsNegative report the sign of a real-valued number.
func (a *Arena) IsPositive(v Value) (bool, error) {
	c, err := a.Compare(v, Int(0))
	return c > 0, err
}

func (a *Arena) IsNegative(v Value) (bool, error) {
	c, err := a.Compare(v, Int(0))
	return c < 0, err
}

// IsOdd, IsEven require an integer operand.
func IsOdd(n int64) bool  { return n%2 != 0 }
func IsEven(n int64) bool { return n%2 == 0 }

// IsInteger reports whether v's mathematical value is a whole number,
// regardless of exactness (3.0 is integer? in R5RS).
func (a *Arena) IsInteger(v Value) bool {
	switch v.Kind {
	case KindInteger:
		return true
	case KindRational:
		return a.Rational(v).IsInt()
	case KindReal:
		f := a.Real(v)
		return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
	default:
		return false
	}
}

// IsRational reports whether v belongs to the rational or tighter rungs,
// plus finite reals (every finite double is rational).
func (a *Arena) IsRational(v Value) bool {
	switch v.Kind {
	case KindInteger, KindRational:
		return true
	case KindReal:
		f := a.Real(v)
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	default:
		return false
	}
}

// IsReal reports whether v has a zero imaginary part.
func (a *Arena) IsReal(v Value) bool {
	if v.Kind == KindComplex {
		return imag(a.Complex(v)) == 0
	}
	return v.Kind.IsNumber()
}
