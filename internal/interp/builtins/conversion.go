package builtins

import (
	"math/big"
	"strconv"

	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

// installConversion wires the conversions R5RS scatters across §6.2 (number
// <-> string), §6.3.3 (symbol <-> string, char <-> integer), and §6.3.5/6.3.6
// (list <-> string/vector) rather than grouping them under a single
// section — they share this file because each is a one-line bridge between
// two of the tower's representations, not because R5RS treats them as one
// family. string->symbol needs the symbol table (not just the Arena) to
// intern correctly, so it is the one conversion built as a closure here
// rather than a free function.
func installConversion(r *Registry, syms *runtime.SymbolTable) {
	unary := runtime.ArityInfo{Required: 1, Max: 1}

	r.Register("symbol->string", unary, biSymbolToString, CategoryConversion, "the name of a symbol as a string")
	r.Register("string->symbol", unary, func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		return []runtime.Value{syms.Intern(a.String(args[0]))}, nil
	}, CategoryConversion, "intern a string as a symbol")
	r.Register("char->integer", unary, biCharToInteger, CategoryConversion, "a character's code point")
	r.Register("integer->char", unary, biIntegerToChar, CategoryConversion, "the character at a code point")
	r.Register("list->string", unary, biListToString, CategoryConversion, "build a string from a list of characters")
	r.Register("string->list", runtime.ArityInfo{Required: 1, Max: 3}, biStringToList, CategoryConversion, "a string's characters as a list")
	r.Register("list->vector", unary, biListToVector, CategoryConversion, "build a vector from a list")
	r.Register("vector->list", runtime.ArityInfo{Required: 1, Max: 3}, biVectorToList, CategoryConversion, "a vector's elements as a list")
	r.Register("number->string", runtime.ArityInfo{Required: 1, Max: 2}, biNumberToString, CategoryConversion, "format a number as a string")
	r.Register("string->number", runtime.ArityInfo{Required: 1, Max: 2}, biStringToNumber, CategoryConversion, "parse a string as a number")
}

func biSymbolToString(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{a.NewString(a.SymbolName(args[0]))}, nil
}

func biCharToInteger(_ *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{runtime.Int(int64(args[0].AsChar()))}, nil
}

func biIntegerToChar(_ *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{runtime.Char(rune(args[0].AsInt()))}, nil
}

func biListToString(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	items, ok := a.ListToSlice(args[0])
	if !ok {
		return nil, runtime.NewTypeError("list->string: improper list")
	}
	chars := make([]rune, len(items))
	for i, v := range items {
		chars[i] = v.AsChar()
	}
	return []runtime.Value{a.NewString(string(chars))}, nil
}

func biStringToList(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	start, end := 0, a.StringLen(args[0])
	if len(args) > 1 {
		start = int(args[1].AsInt())
	}
	if len(args) > 2 {
		end = int(args[2].AsInt())
	}
	var out []runtime.Value
	for i := start; i < end; i++ {
		c, err := a.StringRef(args[0], i)
		if err != nil {
			return nil, err
		}
		out = append(out, runtime.Char(c))
	}
	return []runtime.Value{a.SliceToList(out)}, nil
}

func biListToVector(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	items, ok := a.ListToSlice(args[0])
	if !ok {
		return nil, runtime.NewTypeError("list->vector: improper list")
	}
	return []runtime.Value{a.NewVector(items)}, nil
}

func biVectorToList(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	start, end := 0, a.VectorLen(args[0])
	if len(args) > 1 {
		start = int(args[1].AsInt())
	}
	if len(args) > 2 {
		end = int(args[2].AsInt())
	}
	var out []runtime.Value
	for i := start; i < end; i++ {
		v, err := a.VectorRef(args[0], i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return []runtime.Value{a.SliceToList(out)}, nil
}

// biNumberToString and biStringToNumber round-trip through Go's strconv,
// the same standard-library seam the reader and printer packages use for
// numeric literal syntax — there is no bignum/rational-aware formatting
// library anywhere in the retrieved corpus, so an exact rational falls
// back to big.Rat's own "num/den" rendering.
func biNumberToString(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	radix := 10
	if len(args) > 1 {
		radix = int(args[1].AsInt())
	}
	v := args[0]
	switch v.Kind {
	case runtime.KindInteger:
		return []runtime.Value{a.NewString(strconv.FormatInt(v.AsInt(), radix))}, nil
	case runtime.KindRational:
		return []runtime.Value{a.NewString(a.Rational(v).RatString())}, nil
	default:
		return []runtime.Value{a.NewString(strconv.FormatFloat(a.ToFloat(v), 'g', -1, 64))}, nil
	}
}

func biStringToNumber(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	radix := 10
	if len(args) > 1 {
		radix = int(args[1].AsInt())
	}
	s := a.String(args[0])
	if radix == 10 {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return []runtime.Value{runtime.Int(i)}, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return []runtime.Value{a.NewReal(f)}, nil
		}
		if rat, ok := new(big.Rat).SetString(s); ok {
			return []runtime.Value{a.NewExactRatio(rat)}, nil
		}
		return []runtime.Value{runtime.False}, nil
	}
	if i, err := strconv.ParseInt(s, radix, 64); err == nil {
		return []runtime.Value{runtime.Int(i)}, nil
	}
	return []runtime.Value{runtime.False}, nil
}
