package builtins

import (
	"math"
	"math/big"

	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

// installNumeric wires R5RS §6.2's numeric tower: arithmetic, comparison,
// the predicates (zero?, positive?, even?, ...), and the exactness/rounding
// conversions. Every arithmetic kernel (Add, Sub, Mul, Div, Compare, ...) is
// Arena-owned, since the numeric tower's coercion rules live with the Value
// representation itself — these wrappers just fold the variadic argument
// list R5RS's grammar allows.
func installNumeric(r *Registry) {
	variadic := func(required int) runtime.ArityInfo { return runtime.ArityInfo{Required: required, Max: -1} }
	unary := runtime.ArityInfo{Required: 1, Max: 1}
	binary := runtime.ArityInfo{Required: 2, Max: 2}

	r.Register("+", variadic(0), biAdd, CategoryNumeric, "sum of its arguments, 0 if none")
	r.Register("*", variadic(0), biMul, CategoryNumeric, "product of its arguments, 1 if none")
	r.Register("-", variadic(1), biSub, CategoryNumeric, "difference, or negation of a single argument")
	r.Register("/", variadic(1), biDiv, CategoryNumeric, "quotient, or reciprocal of a single argument")

	r.Register("=", variadic(1), numCompareAll(func(c int) bool { return c == 0 }), CategoryNumeric, "numeric equality")
	r.Register("<", variadic(1), numCompareAll(func(c int) bool { return c < 0 }), CategoryNumeric, "strictly increasing")
	r.Register(">", variadic(1), numCompareAll(func(c int) bool { return c > 0 }), CategoryNumeric, "strictly decreasing")
	r.Register("<=", variadic(1), numCompareAll(func(c int) bool { return c <= 0 }), CategoryNumeric, "nondecreasing")
	r.Register(">=", variadic(1), numCompareAll(func(c int) bool { return c >= 0 }), CategoryNumeric, "nonincreasing")

	r.Register("quotient", binary, biQuotient, CategoryNumeric, "truncating integer division")
	r.Register("remainder", binary, biRemainder, CategoryNumeric, "remainder with the sign of the dividend")
	r.Register("modulo", binary, biModulo, CategoryNumeric, "remainder with the sign of the divisor")
	r.Register("gcd", variadic(0), biGcdLcm(true), CategoryNumeric, "greatest common divisor")
	r.Register("lcm", variadic(0), biGcdLcm(false), CategoryNumeric, "least common multiple")

	r.Register("abs", unary, biAbs, CategoryNumeric, "absolute value")
	r.Register("min", variadic(1), biMinMax(-1), CategoryNumeric, "smallest argument")
	r.Register("max", variadic(1), biMinMax(1), CategoryNumeric, "largest argument")
	r.Register("expt", binary, biExpt, CategoryNumeric, "exponentiation")
	r.Register("sqrt", unary, biSqrt, CategoryNumeric, "square root")
	r.Register("floor", unary, biRound(math.Floor), CategoryNumeric, "largest integer not greater than its argument")
	r.Register("ceiling", unary, biRound(math.Ceil), CategoryNumeric, "smallest integer not less than its argument")
	r.Register("truncate", unary, biRound(math.Trunc), CategoryNumeric, "truncate toward zero")
	r.Register("round", unary, biRound(math.RoundToEven), CategoryNumeric, "round to even")

	r.Register("exact->inexact", unary, biExactToInexact, CategoryNumeric, "convert to an inexact real")
	r.Register("inexact->exact", unary, biInexactToExact, CategoryNumeric, "convert to an exact number")

	r.Register("zero?", unary, numPredicate(func(a *runtime.Arena, v runtime.Value) bool { return a.IsZero(v) }), CategoryNumeric, "is the argument zero")
	r.Register("positive?", unary, numPredicate(func(a *runtime.Arena, v runtime.Value) bool { ok, _ := a.IsPositive(v); return ok }), CategoryNumeric, "is the argument positive")
	r.Register("negative?", unary, numPredicate(func(a *runtime.Arena, v runtime.Value) bool { ok, _ := a.IsNegative(v); return ok }), CategoryNumeric, "is the argument negative")
	r.Register("odd?", unary, numPredicate(func(a *runtime.Arena, v runtime.Value) bool { return runtime.IsOdd(v.AsInt()) }), CategoryNumeric, "is the argument odd")
	r.Register("even?", unary, numPredicate(func(a *runtime.Arena, v runtime.Value) bool { return runtime.IsEven(v.AsInt()) }), CategoryNumeric, "is the argument even")
	r.Register("number?", unary, typePredicate(func(v runtime.Value) bool { return v.Kind.IsNumber() }), CategoryNumeric, "is the argument a number")
	r.Register("integer?", unary, numPredicate(func(a *runtime.Arena, v runtime.Value) bool { return a.IsInteger(v) }), CategoryNumeric, "is the argument an integer")
	r.Register("rational?", unary, numPredicate(func(a *runtime.Arena, v runtime.Value) bool { return a.IsRational(v) }), CategoryNumeric, "is the argument rational")
	r.Register("real?", unary, numPredicate(func(a *runtime.Arena, v runtime.Value) bool { return a.IsReal(v) }), CategoryNumeric, "is the argument real")
	r.Register("complex?", unary, typePredicate(func(v runtime.Value) bool { return v.Kind.IsNumber() }), CategoryNumeric, "is the argument complex (every number is)")
	r.Register("exact?", unary, numPredicate(func(a *runtime.Arena, v runtime.Value) bool { return a.IsExact(v) }), CategoryNumeric, "is the argument exact")
	r.Register("inexact?", unary, numPredicate(func(a *runtime.Arena, v runtime.Value) bool { return !a.IsExact(v) }), CategoryNumeric, "is the argument inexact")

	r.Register("exp", unary, unaryKernel((*runtime.Arena).Exp), CategoryNumeric, "e raised to the argument")
	r.Register("log", runtime.ArityInfo{Required: 1, Max: 2}, biLog, CategoryNumeric, "natural logarithm, or logarithm to an explicit base")
	r.Register("sin", unary, unaryKernel((*runtime.Arena).Sin), CategoryNumeric, "sine")
	r.Register("cos", unary, unaryKernel((*runtime.Arena).Cos), CategoryNumeric, "cosine")
	r.Register("tan", unary, unaryKernel((*runtime.Arena).Tan), CategoryNumeric, "tangent")
	r.Register("asin", unary, unaryKernel((*runtime.Arena).Asin), CategoryNumeric, "arcsine")
	r.Register("acos", unary, unaryKernel((*runtime.Arena).Acos), CategoryNumeric, "arccosine")
	r.Register("atan", runtime.ArityInfo{Required: 1, Max: 2}, biAtan, CategoryNumeric, "arctangent, one- or two-argument form")

	r.Register("numerator", unary, unaryKernel((*runtime.Arena).Numerator), CategoryNumeric, "numerator of a rational")
	r.Register("denominator", unary, unaryKernel((*runtime.Arena).Denominator), CategoryNumeric, "denominator of a rational")
	r.Register("rationalize", binary, binaryKernel((*runtime.Arena).Rationalize), CategoryNumeric, "simplest rational within tolerance of its argument")

	r.Register("make-rectangular", binary, binaryKernel((*runtime.Arena).MakeRectangular), CategoryNumeric, "build a complex from real and imaginary parts")
	r.Register("make-polar", binary, binaryKernel((*runtime.Arena).MakePolar), CategoryNumeric, "build a complex from magnitude and angle")
	r.Register("real-part", unary, unaryKernel((*runtime.Arena).RealPart), CategoryNumeric, "real part of a complex")
	r.Register("imag-part", unary, unaryKernel((*runtime.Arena).ImagPart), CategoryNumeric, "imaginary part of a complex")
	r.Register("magnitude", unary, unaryKernel((*runtime.Arena).Magnitude), CategoryNumeric, "absolute value / modulus")
	r.Register("angle", unary, unaryKernel((*runtime.Arena).Angle), CategoryNumeric, "polar angle")
}

// unaryKernel adapts an Arena method of the shape func(Value) Value into a
// NativeFunc, the pattern every transcendental and complex selector shares.
func unaryKernel(fn func(*runtime.Arena, runtime.Value) runtime.Value) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		return []runtime.Value{fn(a, args[0])}, nil
	}
}

// binaryKernel is unaryKernel's two-argument counterpart, for make-rectangular,
// make-polar, and rationalize.
func binaryKernel(fn func(*runtime.Arena, runtime.Value, runtime.Value) runtime.Value) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		return []runtime.Value{fn(a, args[0], args[1])}, nil
	}
}

func biLog(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	if len(args) == 2 {
		num, den := a.Log(args[0]), a.Log(args[1])
		v, err := a.Div(num, den)
		return []runtime.Value{v}, err
	}
	return []runtime.Value{a.Log(args[0])}, nil
}

func biAtan(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	if len(args) == 2 {
		return []runtime.Value{a.Atan2(args[0], args[1])}, nil
	}
	return []runtime.Value{a.Atan(args[0])}, nil
}

func numPredicate(pred func(*runtime.Arena, runtime.Value) bool) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		if args[0].Kind != runtime.KindInteger && !args[0].Kind.IsNumber() {
			return nil, runtime.NewTypeError("expected a number")
		}
		return []runtime.Value{runtime.Bool(pred(a, args[0]))}, nil
	}
}

func typePredicate(pred func(runtime.Value) bool) runtime.NativeFunc {
	return func(_ *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		return []runtime.Value{runtime.Bool(pred(args[0]))}, nil
	}
}

func biAdd(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	sum := runtime.Int(0)
	for _, v := range args {
		sum = a.Add(sum, v)
	}
	return []runtime.Value{sum}, nil
}

func biMul(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	prod := runtime.Int(1)
	for _, v := range args {
		prod = a.Mul(prod, v)
	}
	return []runtime.Value{prod}, nil
}

func biSub(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	if len(args) == 1 {
		return []runtime.Value{a.Sub(runtime.Int(0), args[0])}, nil
	}
	acc := args[0]
	for _, v := range args[1:] {
		acc = a.Sub(acc, v)
	}
	return []runtime.Value{acc}, nil
}

func biDiv(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	if len(args) == 1 {
		v, err := a.Div(runtime.Int(1), args[0])
		return []runtime.Value{v}, err
	}
	acc := args[0]
	var err error
	for _, v := range args[1:] {
		acc, err = a.Div(acc, v)
		if err != nil {
			return nil, err
		}
	}
	return []runtime.Value{acc}, nil
}

func numCompareAll(ok func(int) bool) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		for i := 0; i+1 < len(args); i++ {
			c, err := a.Compare(args[i], args[i+1])
			if err != nil {
				return nil, err
			}
			if !ok(c) {
				return []runtime.Value{runtime.False}, nil
			}
		}
		return []runtime.Value{runtime.True}, nil
	}
}

func biQuotient(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	v, err := a.Quotient(args[0], args[1])
	return []runtime.Value{v}, err
}

func biRemainder(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	v, err := a.Remainder(args[0], args[1])
	return []runtime.Value{v}, err
}

func biModulo(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	v, err := a.Modulo(args[0], args[1])
	return []runtime.Value{v}, err
}

func biGcdLcm(gcd bool) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		identity := runtime.Int(0)
		if !gcd {
			identity = runtime.Int(1)
		}
		if len(args) == 0 {
			return []runtime.Value{identity}, nil
		}
		acc := args[0]
		var err error
		for _, v := range args[1:] {
			if gcd {
				acc, err = a.Gcd(acc, v)
			} else {
				acc, err = a.Lcm(acc, v)
			}
			if err != nil {
				return nil, err
			}
		}
		return []runtime.Value{acc}, nil
	}
}

func biAbs(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	v, err := a.Abs(args[0])
	return []runtime.Value{v}, err
}

func biMinMax(want int) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		best := args[0]
		inexact := !a.IsExact(best)
		for _, v := range args[1:] {
			if !a.IsExact(v) {
				inexact = true
			}
			c, err := a.Compare(v, best)
			if err != nil {
				return nil, err
			}
			if c == want {
				best = v
			}
		}
		if inexact && a.IsExact(best) {
			best = a.NewReal(a.ToFloat(best))
		}
		return []runtime.Value{best}, nil
	}
}

func biExpt(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	base, exp := args[0], args[1]
	if a.IsExact(base) && exp.Kind == runtime.KindInteger && exp.AsInt() >= 0 {
		acc := runtime.Int(1)
		for i := int64(0); i < exp.AsInt(); i++ {
			acc = a.Mul(acc, base)
		}
		return []runtime.Value{acc}, nil
	}
	return []runtime.Value{a.NewReal(math.Pow(a.ToFloat(base), a.ToFloat(exp)))}, nil
}

func biSqrt(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	f := a.ToFloat(args[0])
	if f < 0 {
		return nil, runtime.NewNumericError("sqrt of a negative real is not supported")
	}
	root := math.Sqrt(f)
	if a.IsExact(args[0]) {
		if whole := math.Round(root); whole*whole == f {
			return []runtime.Value{runtime.Int(int64(whole))}, nil
		}
	}
	return []runtime.Value{a.NewReal(root)}, nil
}

func biRound(fn func(float64) float64) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		v := args[0]
		if v.Kind == runtime.KindInteger {
			return []runtime.Value{v}, nil
		}
		rounded := fn(a.ToFloat(v))
		if a.IsExact(v) {
			return []runtime.Value{a.NewExactRatio(new(big.Rat).SetFloat64(rounded))}, nil
		}
		return []runtime.Value{a.NewReal(rounded)}, nil
	}
}

func biExactToInexact(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{a.NewReal(a.ToFloat(args[0]))}, nil
}

func biInexactToExact(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	if a.IsExact(args[0]) {
		return []runtime.Value{args[0]}, nil
	}
	return []runtime.Value{a.NewExactRatio(new(big.Rat).SetFloat64(a.ToFloat(args[0])))}, nil
}
