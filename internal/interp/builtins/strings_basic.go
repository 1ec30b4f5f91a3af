package builtins

import (
	"strings"

	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

// installStrings wires R5RS §6.3.5's string procedures: construction,
// access, comparison, and the case-folding/substring helpers. Scheme
// strings are mutable fixed buffers (SchemeString), so string-set!/
// string-fill! mutate in place rather than allocating, exactly as
// runtime/string.go already implements them.
func installStrings(r *Registry) {
	unary := runtime.ArityInfo{Required: 1, Max: 1}
	binary := runtime.ArityInfo{Required: 2, Max: 2}

	r.Register("string?", unary, typePredicate(func(v runtime.Value) bool { return v.Kind == runtime.KindString }), CategoryStrings, "is the argument a string")
	r.Register("make-string", runtime.ArityInfo{Required: 1, Max: 2}, biMakeString, CategoryStrings, "a new mutable string of a given length")
	r.Register("string", runtime.ArityInfo{Required: 0, Max: -1}, biString, CategoryStrings, "a new string from its character arguments")
	r.Register("string-length", unary, biStringLength, CategoryStrings, "the number of characters in a string")
	r.Register("string-ref", binary, biStringRef, CategoryStrings, "the character at an index")
	r.Register("string-set!", runtime.ArityInfo{Required: 3, Max: 3}, biStringSet, CategoryStrings, "mutate the character at an index")
	r.Register("string-append", runtime.ArityInfo{Required: 0, Max: -1}, biStringAppend, CategoryStrings, "concatenate strings")
	r.Register("substring", runtime.ArityInfo{Required: 3, Max: 3}, biSubstring, CategoryStrings, "a copy of a character range")
	r.Register("string-copy", runtime.ArityInfo{Required: 1, Max: 3}, biStringCopy, CategoryStrings, "a fresh copy of a string or a range of it")
	r.Register("string-fill!", binary, biStringFill, CategoryStrings, "fill every position with a character")
	r.Register("string-upcase", unary, stringMap(strings.ToUpper), CategoryStrings, "an uppercased copy")
	r.Register("string-downcase", unary, stringMap(strings.ToLower), CategoryStrings, "a lowercased copy")

	r.Register("string=?", runtime.ArityInfo{Required: 1, Max: -1}, stringCompareAll(func(c int) bool { return c == 0 }), CategoryStrings, "string equality")
	r.Register("string<?", runtime.ArityInfo{Required: 1, Max: -1}, stringCompareAll(func(c int) bool { return c < 0 }), CategoryStrings, "lexicographic less-than")
	r.Register("string>?", runtime.ArityInfo{Required: 1, Max: -1}, stringCompareAll(func(c int) bool { return c > 0 }), CategoryStrings, "lexicographic greater-than")
	r.Register("string<=?", runtime.ArityInfo{Required: 1, Max: -1}, stringCompareAll(func(c int) bool { return c <= 0 }), CategoryStrings, "lexicographic less-or-equal")
	r.Register("string>=?", runtime.ArityInfo{Required: 1, Max: -1}, stringCompareAll(func(c int) bool { return c >= 0 }), CategoryStrings, "lexicographic greater-or-equal")
	r.Register("string-ci=?", runtime.ArityInfo{Required: 1, Max: -1}, stringCompareAllCI(func(c int) bool { return c == 0 }), CategoryStrings, "case-insensitive string equality")

	installChars(r)
}

// installChars wires R5RS §6.3.4's character predicates and comparisons.
func installChars(r *Registry) {
	unary := runtime.ArityInfo{Required: 1, Max: 1}

	r.Register("char?", unary, typePredicate(func(v runtime.Value) bool { return v.Kind == runtime.KindCharacter }), CategoryChars, "is the argument a character")
	r.Register("char-upcase", unary, charMap(func(c rune) rune { return []rune(strings.ToUpper(string(c)))[0] }), CategoryChars, "the uppercase equivalent")
	r.Register("char-downcase", unary, charMap(func(c rune) rune { return []rune(strings.ToLower(string(c)))[0] }), CategoryChars, "the lowercase equivalent")
	r.Register("char-alphabetic?", unary, charPredicate(isAlpha), CategoryChars, "is the argument a letter")
	r.Register("char-numeric?", unary, charPredicate(func(c rune) bool { return c >= '0' && c <= '9' }), CategoryChars, "is the argument a digit")
	r.Register("char-whitespace?", unary, charPredicate(isSpace), CategoryChars, "is the argument whitespace")
	r.Register("char-upper-case?", unary, charPredicate(func(c rune) bool { return c >= 'A' && c <= 'Z' }), CategoryChars, "is the argument an uppercase letter")
	r.Register("char-lower-case?", unary, charPredicate(func(c rune) bool { return c >= 'a' && c <= 'z' }), CategoryChars, "is the argument a lowercase letter")

	r.Register("char=?", runtime.ArityInfo{Required: 1, Max: -1}, charCompareAll(func(c int) bool { return c == 0 }), CategoryChars, "character equality")
	r.Register("char<?", runtime.ArityInfo{Required: 1, Max: -1}, charCompareAll(func(c int) bool { return c < 0 }), CategoryChars, "character less-than")
	r.Register("char>?", runtime.ArityInfo{Required: 1, Max: -1}, charCompareAll(func(c int) bool { return c > 0 }), CategoryChars, "character greater-than")
	r.Register("char<=?", runtime.ArityInfo{Required: 1, Max: -1}, charCompareAll(func(c int) bool { return c <= 0 }), CategoryChars, "character less-or-equal")
	r.Register("char>=?", runtime.ArityInfo{Required: 1, Max: -1}, charCompareAll(func(c int) bool { return c >= 0 }), CategoryChars, "character greater-or-equal")
}

func isAlpha(c rune) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isSpace(c rune) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v' }

func biMakeString(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	n := int(args[0].AsInt())
	fill := ' '
	if len(args) > 1 {
		fill = args[1].AsChar()
	}
	return []runtime.Value{a.NewStringOfLength(n, fill)}, nil
}

func biString(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	chars := make([]rune, len(args))
	for i, v := range args {
		chars[i] = v.AsChar()
	}
	return []runtime.Value{a.NewString(string(chars))}, nil
}

func biStringLength(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{runtime.Int(int64(a.StringLen(args[0])))}, nil
}

func biStringRef(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	c, err := a.StringRef(args[0], int(args[1].AsInt()))
	if err != nil {
		return nil, err
	}
	return []runtime.Value{runtime.Char(c)}, nil
}

func biStringSet(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	if err := a.StringSet(args[0], int(args[1].AsInt()), args[2].AsChar()); err != nil {
		return nil, err
	}
	return []runtime.Value{runtime.Undefined}, nil
}

func biStringAppend(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{a.StringAppend(args...)}, nil
}

func biSubstring(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	v, err := a.SubString(args[0], int(args[1].AsInt()), int(args[2].AsInt()))
	return []runtime.Value{v}, err
}

func biStringCopy(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	start, end := 0, a.StringLen(args[0])
	if len(args) > 1 {
		start = int(args[1].AsInt())
	}
	if len(args) > 2 {
		end = int(args[2].AsInt())
	}
	v, err := a.SubString(args[0], start, end)
	return []runtime.Value{v}, err
}

func biStringFill(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	n := a.StringLen(args[0])
	fill := args[1].AsChar()
	for i := 0; i < n; i++ {
		if err := a.StringSet(args[0], i, fill); err != nil {
			return nil, err
		}
	}
	return []runtime.Value{runtime.Undefined}, nil
}

func stringMap(fn func(string) string) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		return []runtime.Value{a.NewString(fn(a.String(args[0])))}, nil
	}
}

func stringCompareAll(ok func(int) bool) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		for i := 0; i+1 < len(args); i++ {
			if !ok(strings.Compare(a.String(args[i]), a.String(args[i+1]))) {
				return []runtime.Value{runtime.False}, nil
			}
		}
		return []runtime.Value{runtime.True}, nil
	}
}

func stringCompareAllCI(ok func(int) bool) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		for i := 0; i+1 < len(args); i++ {
			l, r := strings.ToLower(a.String(args[i])), strings.ToLower(a.String(args[i+1]))
			if !ok(strings.Compare(l, r)) {
				return []runtime.Value{runtime.False}, nil
			}
		}
		return []runtime.Value{runtime.True}, nil
	}
}

func charMap(fn func(rune) rune) runtime.NativeFunc {
	return func(_ *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		return []runtime.Value{runtime.Char(fn(args[0].AsChar()))}, nil
	}
}

func charPredicate(fn func(rune) bool) runtime.NativeFunc {
	return func(_ *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		return []runtime.Value{runtime.Bool(fn(args[0].AsChar()))}, nil
	}
}

func charCompareAll(ok func(int) bool) runtime.NativeFunc {
	return func(_ *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		for i := 0; i+1 < len(args); i++ {
			a, b := args[i].AsChar(), args[i+1].AsChar()
			c := 0
			switch {
			case a < b:
				c = -1
			case a > b:
				c = 1
			}
			if !ok(c) {
				return []runtime.Value{runtime.False}, nil
			}
		}
		return []runtime.Value{runtime.True}, nil
	}
}
