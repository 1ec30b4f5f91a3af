package macro

import (
	"github.com/cwbudde/goscheme/internal/interp/runtime"
	"github.com/cwbudde/goscheme/internal/interp/syntax"
)

// Capture is the pattern-match result for one pattern variable. Depth 0
// means the variable matched exactly once (Value holds the match); Depth N
// means it sat under N nested ellipses, and Reps holds one Capture per
// repetition, each at Depth-1 — this is how `((a ...) ...)` (depth-2
// capture) works without a separate representation per depth.
type Capture struct {
	Depth int
	Value runtime.Value
	Reps  []*Capture
}

// Bindings maps pattern-variable names to their captures for one rule.
type Bindings map[string]*Capture

// Match attempts to match form against pattern under the given literal set
// and ellipsis identifier, per §4.7 rule 1. defEnv is the environment the
// macro was defined in (literals resolve here); useEnv is the environment
// the macro use form appears in (the form's identifiers resolve here).
// The pattern's own leading keyword position is the caller's
// responsibility to skip (conventionally matched against `_`).
func Match(a *runtime.Arena, pattern, form runtime.Value, literals []string, ellipsisName string, defEnv, useEnv runtime.Value) (Bindings, bool) {
	b := Bindings{}
	if matchOne(a, pattern, form, literals, ellipsisName, defEnv, useEnv, b) {
		return b, true
	}
	return nil, false
}

func isLiteral(name string, literals []string) bool {
	for _, l := range literals {
		if l == name {
			return true
		}
	}
	return false
}

func matchOne(a *runtime.Arena, pat, form runtime.Value, literals []string, ellipsis string, defEnv, useEnv runtime.Value, b Bindings) bool {
	switch pat.Kind {
	case runtime.KindSymbol:
		name := a.SymbolName(pat)
		switch {
		case name == "_":
			return true
		case isLiteral(name, literals):
			return matchLiteral(a, pat, defEnv, form, useEnv)
		default:
			b[name] = &Capture{Value: form}
			return true
		}
	case runtime.KindSyntacticClosure:
		// A syntactic closure in pattern position behaves like its wrapped
		// identifier for matching purposes.
		return matchOne(a, a.StripSyntax(pat), form, literals, ellipsis, defEnv, useEnv, b)
	case runtime.KindCons:
		if pat.IsNil() {
			return form.IsNil()
		}
		return matchList(a, pat, form, literals, ellipsis, defEnv, useEnv, b)
	case runtime.KindVector:
		if form.Kind != runtime.KindVector {
			return false
		}
		pv, fv := a.Vector(pat), a.Vector(form)
		return matchSlice(a, pv.Items, fv.Items, literals, ellipsis, defEnv, useEnv, b)
	default:
		// Self-evaluating literal in pattern position: match by equal?.
		return runtime.Equal(a, pat, form)
	}
}

func matchLiteral(a *runtime.Arena, litID, defEnv, form, useEnv runtime.Value) bool {
	fs := a.StripSyntax(form)
	if fs.Kind != runtime.KindSymbol {
		return false
	}
	litEnv, litSym := syntax.Resolve(a, litID, defEnv)
	formEnv, formSym := syntax.Resolve(a, form, useEnv)
	_, litBound := a.Find(litEnv, litSym)
	_, formBound := a.Find(formEnv, formSym)
	if litBound != formBound {
		return false
	}
	if litBound {
		return runtime.SameHandle(litEnv, formEnv) && runtime.SameHandle(litSym, formSym)
	}
	return a.SymbolName(litSym) == a.SymbolName(formSym)
}

// ellipsisFollows reports whether cdr's car names the ellipsis identifier.
func ellipsisFollows(a *runtime.Arena, cdr runtime.Value, ellipsis string) bool {
	if cdr.Kind != runtime.KindCons || cdr.IsNil() {
		return false
	}
	c := a.Cons(cdr)
	return c.Car.Kind == runtime.KindSymbol && a.SymbolName(c.Car) == ellipsis
}

// matchList matches a (possibly improper, possibly ellipsis-containing)
// pattern list against a form, which need not itself be a proper list.
func matchList(a *runtime.Arena, pat, form runtime.Value, literals []string, ellipsis string, defEnv, useEnv runtime.Value, b Bindings) bool {
	pc := a.Cons(pat)
	sub, rest := pc.Car, pc.Cdr

	if ellipsisFollows(a, rest, ellipsis) {
		afterEllipsis := a.Cons(rest).Cdr
		tailLen, tailProper := properLen(a, afterEllipsis)
		items, tail := splitTail(a, form)
		if !tailProper {
			// A dotted pattern tail after `...` is not supported; fail closed.
			return false
		}
		if len(items) < tailLen {
			return false
		}
		repCount := len(items) - tailLen
		vars := collectPatternVars(a, sub, literals)
		reps := make(map[string][]*Capture, len(vars))
		for _, i := range items[:repCount] {
			sb := Bindings{}
			if !matchOne(a, sub, i, literals, ellipsis, defEnv, useEnv, sb) {
				return false
			}
			for _, v := range vars {
				reps[v] = append(reps[v], sb[v])
			}
		}
		for _, v := range vars {
			depth := 1
			if len(reps[v]) > 0 {
				depth = reps[v][0].Depth + 1
			}
			b[v] = &Capture{Depth: depth, Reps: reps[v]}
		}
		// Match the fixed tail against the remaining items plus the
		// original improper terminator.
		return matchSlice(a, toValueSlice(afterEllipsis, a), items[repCount:], literals, ellipsis, defEnv, useEnv, b) &&
			matchOne(a, improperTerminator(a, afterEllipsis), tail, literals, ellipsis, defEnv, useEnv, b)
	}

	if form.Kind != runtime.KindCons || form.IsNil() {
		return false
	}
	fc := a.Cons(form)
	if !matchOne(a, sub, fc.Car, literals, ellipsis, defEnv, useEnv, b) {
		return false
	}
	return matchOne(a, rest, fc.Cdr, literals, ellipsis, defEnv, useEnv, b)
}

// properLen returns the number of fixed leading elements before v's
// improper terminator (or its end), and whether v is a proper list.
func properLen(a *runtime.Arena, v runtime.Value) (int, bool) {
	n := 0
	cur := v
	for cur.Kind == runtime.KindCons && !cur.IsNil() {
		n++
		cur = a.Cons(cur).Cdr
	}
	return n, cur.IsNil()
}

// splitTail returns a list's elements and its (possibly non-nil, for an
// improper list) terminator.
func splitTail(a *runtime.Arena, v runtime.Value) ([]runtime.Value, runtime.Value) {
	var out []runtime.Value
	cur := v
	for cur.Kind == runtime.KindCons && !cur.IsNil() {
		c := a.Cons(cur)
		out = append(out, c.Car)
		cur = c.Cdr
	}
	return out, cur
}

// toValueSlice returns the fixed leading elements of a pattern tail.
func toValueSlice(v runtime.Value, a *runtime.Arena) []runtime.Value {
	out, _ := splitTail(a, v)
	return out
}

// improperTerminator returns the non-cons value terminating v (NIL for a
// proper list).
func improperTerminator(a *runtime.Arena, v runtime.Value) runtime.Value {
	_, tail := splitTail(a, v)
	return tail
}

func matchSlice(a *runtime.Arena, pats, forms []runtime.Value, literals []string, ellipsis string, defEnv, useEnv runtime.Value, b Bindings) bool {
	if len(pats) != len(forms) {
		return false
	}
	for i := range pats {
		if !matchOne(a, pats[i], forms[i], literals, ellipsis, defEnv, useEnv, b) {
			return false
		}
	}
	return true
}

// collectPatternVars returns the names of every pattern variable appearing
// in pat (excluding literals, `_`, and the ellipsis identifier itself).
func collectPatternVars(a *runtime.Arena, pat runtime.Value, literals []string) []string {
	var out []string
	var walk func(runtime.Value)
	walk = func(v runtime.Value) {
		switch v.Kind {
		case runtime.KindSymbol:
			name := a.SymbolName(v)
			if name != "_" && name != "..." && !isLiteral(name, literals) {
				out = append(out, name)
			}
		case runtime.KindCons:
			for it := a.Iter(v); !it.Done(); it.Next() {
				walk(it.Value())
			}
			if tail := improperTerminator(a, v); !tail.IsNil() {
				walk(tail)
			}
		case runtime.KindVector:
			for _, item := range a.Vector(v).Items {
				walk(item)
			}
		}
	}
	walk(pat)
	return out
}
