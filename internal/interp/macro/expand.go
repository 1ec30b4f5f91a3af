package macro

import "github.com/cwbudde/goscheme/internal/interp/runtime"

// Expand matches use (the whole macro-use form, including its keyword in
// head position) against each of tr's rules in turn and instantiates the
// first one that matches, per §4.7. useEnv is the environment the macro use
// form appears in.
func Expand(a *runtime.Arena, tr *runtime.SyntaxRules, use, useEnv runtime.Value) (runtime.Value, error) {
	literals := symbolNames(a, tr.Literals)
	ellipsis := "..."
	if tr.Ellipsis.Kind == runtime.KindSymbol {
		ellipsis = a.SymbolName(tr.Ellipsis)
	}
	for it := a.Iter(tr.Rules); !it.Done(); it.Next() {
		rule := a.Cons(it.Value())
		pattern, template := rule.Car, a.Cons(rule.Cdr).Car
		// The pattern's keyword position (its car) is conventionally `_`
		// or the macro's own name; match everything after it against the
		// use form's arguments so the keyword itself is never a binding
		// site.
		patRest := a.Cons(pattern).Cdr
		useRest := use
		if use.Kind == runtime.KindCons && !use.IsNil() {
			useRest = a.Cons(use).Cdr
		}
		b, ok := Match(a, patRest, useRest, literals, ellipsis, tr.DefEnv, useEnv)
		if !ok {
			continue
		}
		return Instantiate(a, template, b, ellipsis, tr.DefEnv)
	}
	return runtime.Undefined, runtime.NewMacroError("no matching syntax-rules pattern for use form")
}

func symbolNames(a *runtime.Arena, list runtime.Value) []string {
	var out []string
	for it := a.Iter(list); !it.Done(); it.Next() {
		out = append(out, a.SymbolName(it.Value()))
	}
	return out
}
