package macro

import (
	"github.com/cwbudde/goscheme/internal/interp/runtime"
	"github.com/cwbudde/goscheme/internal/interp/syntax"
)

// Instantiate builds the expansion of template given the bindings produced
// by Match, per §4.7 rule 2. Every identifier in template that is not a
// pattern variable is wrapped in a syntactic closure over defEnv so it
// resolves hygienically regardless of where the expansion is spliced in.
func Instantiate(a *runtime.Arena, template runtime.Value, b Bindings, ellipsis string, defEnv runtime.Value) (runtime.Value, error) {
	return instantiate(a, template, b, ellipsis, defEnv)
}

func instantiate(a *runtime.Arena, tmpl runtime.Value, b Bindings, ellipsis string, defEnv runtime.Value) (runtime.Value, error) {
	switch tmpl.Kind {
	case runtime.KindSymbol:
		name := a.SymbolName(tmpl)
		if cap, ok := b[name]; ok {
			if cap.Depth != 0 {
				return runtime.Undefined, runtime.NewMacroError("pattern variable %q used without enough ellipses", name)
			}
			return cap.Value, nil
		}
		return syntax.MakeSyntacticClosure(a, defEnv, runtime.Nil, tmpl), nil

	case runtime.KindCons:
		if tmpl.IsNil() {
			return runtime.Nil, nil
		}
		c := a.Cons(tmpl)
		if isEllipsisEscape(a, c, ellipsis) {
			// (... template) escapes the inner template from ellipsis
			// processing, yielding a literal `...` in the expansion.
			return instantiateLiteralEllipsis(a, a.Cons(c.Cdr).Car, b, defEnv)
		}
		return instantiateList(a, tmpl, b, ellipsis, defEnv)

	case runtime.KindVector:
		items, err := instantiateSlice(a, a.Vector(tmpl).Items, b, ellipsis, defEnv)
		if err != nil {
			return runtime.Undefined, err
		}
		return a.NewVector(items), nil

	default:
		return tmpl, nil
	}
}

func isEllipsisEscape(a *runtime.Arena, c *runtime.Cons, ellipsis string) bool {
	if c.Car.Kind != runtime.KindSymbol || a.SymbolName(c.Car) != ellipsis {
		return false
	}
	return c.Cdr.Kind == runtime.KindCons && !c.Cdr.IsNil() && a.Cons(c.Cdr).Cdr.IsNil()
}

// instantiateLiteralEllipsis instantiates an escaped sub-template without
// treating any further `...` within it as repetition syntax — it is still
// substituted for pattern variables, just not ellipsis-expanded.
func instantiateLiteralEllipsis(a *runtime.Arena, tmpl runtime.Value, b Bindings, defEnv runtime.Value) (runtime.Value, error) {
	return instantiate(a, tmpl, b, "\x00no-such-ellipsis\x00", defEnv)
}

func instantiateList(a *runtime.Arena, tmpl runtime.Value, b Bindings, ellipsis string, defEnv runtime.Value) (runtime.Value, error) {
	c := a.Cons(tmpl)
	sub, rest := c.Car, c.Cdr

	if ellipsisFollows(a, rest, ellipsis) {
		restAfter := a.Cons(rest).Cdr
		vars := repeatedVars(a, sub, b)
		n := -1
		for _, v := range vars {
			cap := b[v]
			if cap == nil || cap.Depth == 0 {
				continue
			}
			if n == -1 {
				n = len(cap.Reps)
			} else if n != len(cap.Reps) {
				return runtime.Undefined, runtime.NewMacroError("mismatched ellipsis repetition counts for pattern variables under the same `...`")
			}
		}
		if n == -1 {
			n = 0
		}
		g := runtime.NewGrowList(a)
		for i := 0; i < n; i++ {
			sb := narrowBindings(b, vars, i)
			v, err := instantiate(a, sub, sb, ellipsis, defEnv)
			if err != nil {
				return runtime.Undefined, err
			}
			g.Push(v)
		}
		restVal, err := instantiate(a, restAfter, b, ellipsis, defEnv)
		if err != nil {
			return runtime.Undefined, err
		}
		return g.ExtractWithTail(restVal), nil
	}

	carVal, err := instantiate(a, sub, b, ellipsis, defEnv)
	if err != nil {
		return runtime.Undefined, err
	}
	cdrVal, err := instantiate(a, rest, b, ellipsis, defEnv)
	if err != nil {
		return runtime.Undefined, err
	}
	return a.NewCons(carVal, cdrVal), nil
}

func instantiateSlice(a *runtime.Arena, items []runtime.Value, b Bindings, ellipsis string, defEnv runtime.Value) ([]runtime.Value, error) {
	out := make([]runtime.Value, 0, len(items))
	for _, it := range items {
		v, err := instantiate(a, it, b, ellipsis, defEnv)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// repeatedVars returns the names of sub's free symbols that are bound in b
// at ellipsis depth > 0 — the variables that actually drive this
// repetition's iteration count.
func repeatedVars(a *runtime.Arena, sub runtime.Value, b Bindings) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(runtime.Value)
	walk = func(v runtime.Value) {
		switch v.Kind {
		case runtime.KindSymbol:
			name := a.SymbolName(v)
			if cap, ok := b[name]; ok && cap.Depth > 0 && !seen[name] {
				seen[name] = true
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
	walk(sub)
	return out
}

// narrowBindings produces the bindings seen by one iteration of an
// ellipsis-repeated sub-template: every variable named in vars is replaced
// by its i-th repetition (one depth shallower), everything else passes
// through unchanged.
func narrowBindings(b Bindings, vars []string, i int) Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	for _, v := range vars {
		cap := b[v]
		if cap == nil || i >= len(cap.Reps) {
			continue
		}
		out[v] = cap.Reps[i]
	}
	return out
}
