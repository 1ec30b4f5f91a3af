package runtime

import (
	"math"
	"math/big"
	"math/cmplx"
	"strconv"
)

// unaryReal applies fn to the real-valued widening of x and returns an
// inexact result, the shape shared by exp/sin/cos/tan/atan.
func (a *Arena) unaryReal(x Value, fn func(float64) float64) Value {
	return a.NewReal(fn(a.ToFloat(x)))
}

func (a *Arena) Exp(x Value) Value { return a.unaryReal(x, math.Exp) }
func (a *Arena) Sin(x Value) Value { return a.unaryReal(x, math.Sin) }
func (a *Arena) Cos(x Value) Value { return a.unaryReal(x, math.Cos) }
func (a *Arena) Tan(x Value) Value { return a.unaryReal(x, math.Tan) }

// Log implements (log z) and (log z base); z may be complex, in which case
// the principal complex logarithm is used.
func (a *Arena) Log(x Value) Value {
	if x.Kind == KindComplex {
		return a.NewComplex(cmplx.Log(a.Complex(x)))
	}
	f := a.ToFloat(x)
	if f < 0 {
		return a.NewComplex(cmplx.Log(complex(f, 0)))
	}
	return a.NewReal(math.Log(f))
}

// Asin, Acos are defined over the reals here; values outside [-1, 1] widen
// to complex, matching the numeric tower's promotion discipline.
func (a *Arena) Asin(x Value) Value {
	f := a.ToFloat(x)
	if f < -1 || f > 1 {
		return a.NewComplex(cmplx.Asin(complex(f, 0)))
	}
	return a.NewReal(math.Asin(f))
}

func (a *Arena) Acos(x Value) Value {
	f := a.ToFloat(x)
	if f < -1 || f > 1 {
		return a.NewComplex(cmplx.Acos(complex(f, 0)))
	}
	return a.NewReal(math.Acos(f))
}

// Atan implements both the one- and two-argument forms.
func (a *Arena) Atan(x Value) Value { return a.unaryReal(x, math.Atan) }

func (a *Arena) Atan2(y, x Value) Value {
	return a.NewReal(math.Atan2(a.ToFloat(y), a.ToFloat(x)))
}

// Sqrt returns an exact result when x is an exact integer that is a
// perfect square (exact non-integer rationals are not tried), otherwise
// an inexact real, or a complex result when x is negative.
func (a *Arena) Sqrt(x Value) Value {
	if x.Kind == KindComplex {
		return a.NewComplex(cmplx.Sqrt(a.Complex(x)))
	}
	if x.Kind == KindInteger {
		n := x.AsInt()
		if n >= 0 {
			r := int64(math.Sqrt(float64(n)))
			for _, cand := range []int64{r - 1, r, r + 1} {
				if cand >= 0 && cand*cand == n {
					return Int(cand)
				}
			}
		}
	}
	f := a.ToFloat(x)
	if f < 0 {
		return a.NewComplex(cmplx.Sqrt(complex(f, 0)))
	}
	return a.NewReal(math.Sqrt(f))
}

// Expt implements (expt base exp), including exact-integer exponents of
// exact bases staying exact, and promoting to complex when the base is
// negative and the exponent is not an integer.
func (a *Arena) Expt(base, exp Value) Value {
	if base.Kind == KindInteger && exp.Kind == KindInteger && exp.AsInt() >= 0 {
		r := new(big.Int).Exp(big.NewInt(base.AsInt()), big.NewInt(exp.AsInt()), nil)
		if r.IsInt64() {
			return Int(r.Int64())
		}
		return a.promoteOverflow(r)
	}
	if (base.Kind == KindInteger || base.Kind == KindRational) && exp.Kind == KindInteger {
		rat := a.ToRat(base)
		n := exp.AsInt()
		neg := n < 0
		if neg {
			n = -n
		}
		acc := big.NewRat(1, 1)
		for i := int64(0); i < n; i++ {
			acc.Mul(acc, rat)
		}
		if neg {
			acc.Inv(acc)
		}
		return a.NewExactRatio(acc)
	}
	if base.Kind == KindComplex || exp.Kind == KindComplex {
		return a.NewComplex(CPow(a.ToComplex(base), a.ToComplex(exp)))
	}
	bf := a.ToFloat(base)
	if bf < 0 {
		ef := a.ToFloat(exp)
		if ef != math.Trunc(ef) {
			return a.NewComplex(CPow(complex(bf, 0), complex(ef, 0)))
		}
	}
	return a.NewReal(math.Pow(bf, a.ToFloat(exp)))
}

// Floor, Ceiling, Truncate, Round preserve exactness.
func (a *Arena) Floor(x Value) Value    { return a.roundLike(x, math.Floor, bigFloorQuo) }
func (a *Arena) Ceiling(x Value) Value  { return a.roundLike(x, math.Ceil, bigCeilQuo) }
func (a *Arena) Truncate(x Value) Value { return a.roundLike(x, math.Trunc, bigTruncQuo) }
func (a *Arena) Round(x Value) Value    { return a.roundLike(x, math.RoundToEven, bigRoundQuo) }

func (a *Arena) roundLike(x Value, ffn func(float64) float64, rfn func(*big.Rat) *big.Int) Value {
	switch x.Kind {
	case KindInteger:
		return x
	case KindRational:
		n := rfn(a.Rational(x))
		if n.IsInt64() {
			return Int(n.Int64())
		}
		return a.promoteOverflow(n)
	case KindReal:
		return a.NewReal(ffn(a.Real(x)))
	default:
		return x
	}
}

func bigFloorQuo(r *big.Rat) *big.Int {
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(r.Num(), r.Denom(), m)
	return q
}

func bigCeilQuo(r *big.Rat) *big.Int {
	f := bigFloorQuo(r)
	if new(big.Rat).SetInt(f).Cmp(r) == 0 {
		return f
	}
	return f.Add(f, big.NewInt(1))
}

func bigTruncQuo(r *big.Rat) *big.Int {
	return new(big.Int).Quo(r.Num(), r.Denom())
}

func bigRoundQuo(r *big.Rat) *big.Int {
	floor := bigFloorQuo(r)
	rem := new(big.Rat).Sub(r, new(big.Rat).SetInt(floor))
	half := big.NewRat(1, 2)
	switch rem.Cmp(half) {
	case -1:
		return floor
	case 1:
		return floor.Add(floor, big.NewInt(1))
	default:
		if floor.Bit(0) == 0 {
			return floor
		}
		return floor.Add(floor, big.NewInt(1))
	}
}

// Numerator, Denominator decompose an exact rational (or integer, trivially).
func (a *Arena) Numerator(x Value) Value {
	switch x.Kind {
	case KindInteger:
		return x
	case KindRational:
		n := a.Rational(x).Num()
		if n.IsInt64() {
			return Int(n.Int64())
		}
		return a.promoteOverflow(n)
	default:
		f := a.ToFloat(x)
		r := new(big.Rat).SetFloat64(f)
		if r == nil {
			return a.NewReal(math.NaN())
		}
		nf, _ := new(big.Float).SetInt(r.Num()).Float64()
		return a.NewReal(nf)
	}
}

func (a *Arena) Denominator(x Value) Value {
	switch x.Kind {
	case KindInteger:
		return Int(1)
	case KindRational:
		d := a.Rational(x).Denom()
		if d.IsInt64() {
			return Int(d.Int64())
		}
		return a.promoteOverflow(d)
	default:
		f := a.ToFloat(x)
		r := new(big.Rat).SetFloat64(f)
		if r == nil {
			return a.NewReal(1)
		}
		df, _ := new(big.Float).SetInt(r.Denom()).Float64()
		return a.NewReal(df)
	}
}

// ExactToInexact widens an exact number to the tightest inexact rung that
// preserves its real/complex shape.
func (a *Arena) ExactToInexact(x Value) Value {
	switch x.Kind {
	case KindInteger, KindRational:
		return a.NewReal(a.ToFloat(x))
	default:
		return x
	}
}

// InexactToExact narrows an inexact number to an exact rational.
func (a *Arena) InexactToExact(x Value) (Value, error) {
	switch x.Kind {
	case KindInteger, KindRational:
		return x, nil
	case KindReal:
		f := a.Real(x)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Undefined, NewNumericError("cannot convert non-finite real to exact")
		}
		r := new(big.Rat).SetFloat64(f)
		return a.NewExactRatio(r), nil
	default:
		return Undefined, NewNumericError("cannot convert complex to exact")
	}
}

// Rationalize finds a simplest rational within tolerance ε of x, following
// R5RS's "simplest rational between x-e and x+e" definition via the
// continued-fraction approach big.Rat already implements for float64
// sources; for exact inputs the search is done directly on big.Rat bounds.
func (a *Arena) Rationalize(x, eps Value) Value {
	var lo, hi *big.Rat
	if a.IsExact(x) && a.IsExact(eps) {
		xr, er := a.ToRat(x), new(big.Rat).Abs(a.ToRat(eps))
		lo, hi = new(big.Rat).Sub(xr, er), new(big.Rat).Add(xr, er)
	} else {
		xf := a.ToFloat(x)
		ef := math.Abs(a.ToFloat(eps))
		lo = new(big.Rat).SetFloat64(xf - ef)
		hi = new(big.Rat).SetFloat64(xf + ef)
		if lo == nil || hi == nil {
			return x
		}
	}
	simplest := simplestRatBetween(lo, hi)
	if a.IsExact(x) && a.IsExact(eps) {
		return a.NewExactRatio(simplest)
	}
	f, _ := new(big.Float).SetRat(simplest).Float64()
	return a.NewReal(f)
}

// simplestRatBetween implements the classic Stern-Brocot search for the
// fraction with smallest denominator in [lo, hi].
func simplestRatBetween(lo, hi *big.Rat) *big.Rat {
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	if lo.Sign() <= 0 && hi.Sign() >= 0 {
		return big.NewRat(0, 1)
	}
	if hi.Sign() < 0 {
		r := simplestRatBetween(new(big.Rat).Neg(hi), new(big.Rat).Neg(lo))
		return r.Neg(r)
	}
	return simplestPositive(lo, hi)
}

func simplestPositive(lo, hi *big.Rat) *big.Rat {
	loFloor := new(big.Int).Quo(lo.Num(), lo.Denom())
	hiFloor := new(big.Int).Quo(hi.Num(), hi.Denom())
	if loFloor.Cmp(hiFloor) < 0 || (new(big.Rat).SetInt(loFloor).Cmp(lo) == 0) {
		n := loFloor
		if new(big.Rat).SetInt(loFloor).Cmp(lo) != 0 {
			n = new(big.Int).Add(loFloor, big.NewInt(1))
		}
		return new(big.Rat).SetInt(n)
	}
	loFrac := new(big.Rat).Sub(lo, new(big.Rat).SetInt(loFloor))
	hiFrac := new(big.Rat).Sub(hi, new(big.Rat).SetInt(loFloor))
	inner := simplestPositive(new(big.Rat).Inv(hiFrac), new(big.Rat).Inv(loFrac))
	result := new(big.Rat).Add(new(big.Rat).SetInt(loFloor), new(big.Rat).Inv(inner))
	return result
}

// MakeRectangular, MakePolar, RealPart, ImagPart, Magnitude, Angle implement
// the complex constructor/selector family.
func (a *Arena) MakeRectangular(re, im Value) Value {
	if a.IsZero(im) && a.IsExact(im) {
		return re
	}
	return a.NewComplex(complex(a.ToFloat(re), a.ToFloat(im)))
}

func (a *Arena) MakePolar(mag, ang Value) Value {
	m, t := a.ToFloat(mag), a.ToFloat(ang)
	return a.NewComplex(complex(m*math.Cos(t), m*math.Sin(t)))
}

func (a *Arena) RealPart(x Value) Value {
	if x.Kind == KindComplex {
		return a.NewReal(real(a.Complex(x)))
	}
	return x
}

func (a *Arena) ImagPart(x Value) Value {
	if x.Kind == KindComplex {
		return a.NewReal(imag(a.Complex(x)))
	}
	return Int(0)
}

func (a *Arena) Magnitude(x Value) Value {
	if x.Kind == KindComplex {
		return a.NewReal(cmplx.Abs(a.Complex(x)))
	}
	v, _ := a.Abs(x)
	return v
}

func (a *Arena) Angle(x Value) Value {
	if x.Kind == KindComplex {
		return a.NewReal(cmplx.Phase(a.Complex(x)))
	}
	f := a.ToFloat(x)
	if f < 0 {
		return a.NewReal(math.Pi)
	}
	return a.NewReal(0)
}

// NumberToString renders a number in the given radix (2, 8, 10, 16); radix
// other than 10 requires an exact integer per R5RS.
func (a *Arena) NumberToString(x Value, radix int) (string, error) {
	if radix != 10 {
		if x.Kind != KindInteger {
			return "", NewNumericError("radix other than 10 requires an exact integer")
		}
		return strconv.FormatInt(x.AsInt(), radix), nil
	}
	switch x.Kind {
	case KindInteger:
		return strconv.FormatInt(x.AsInt(), 10), nil
	case KindRational:
		return a.Rational(x).RatString(), nil
	case KindReal:
		return formatReal(a.Real(x)), nil
	case KindComplex:
		c := a.Complex(x)
		return formatReal(real(c)) + formatSignedImag(imag(c)) + "i", nil
	default:
		return "", NewTypeError("number->string requires a number")
	}
}

func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'n' || c == 'i' {
			return s
		}
	}
	return s + "."
}

func formatSignedImag(f float64) string {
	if f >= 0 {
		return "+" + formatReal(f)
	}
	return formatReal(f)
}

// StringToNumber parses a number literal in the given radix, returning
// (Undefined, false) on failure per R5RS's string->number contract.
func (a *Arena) StringToNumber(s string, radix int) (Value, bool) {
	if s == "" {
		return Undefined, false
	}
	if radix == 10 {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(n), true
		}
		if r := new(big.Rat); func() bool { _, ok := r.SetString(s); return ok }() && isRatioLiteral(s) {
			return a.NewExactRatio(r), true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return a.NewReal(f), true
		}
		return Undefined, false
	}
	if n, err := strconv.ParseInt(s, radix, 64); err == nil {
		return Int(n), true
	}
	return Undefined, false
}

func isRatioLiteral(s string) bool {
	for _, c := range s {
		if c == '/' {
			return true
		}
	}
	return false
}
