package syntax

import "github.com/cwbudde/goscheme/internal/interp/runtime"

// Resolve walks a chain of syntactic closures down to the bare symbol it
// ultimately names, tracking which environment a reference to that symbol
// should actually be looked up in — §4.7's resolution rule. Starting from
// id as used in useEnv:
//
//   - a bare symbol resolves in useEnv, unchanged;
//   - a syntactic closure whose wrapped symbol appears in its free-names
//     list defers to the *use* environment, exactly as if the wrapping
//     closure were not there — this is how a macro writer frees an
//     identifier to be visitor-visible;
//   - otherwise the closure's own definition environment takes over as the
//     env for the remainder of the walk, which is what makes references
//     the macro introduced resolve where the macro was defined rather than
//     where it was used.
func Resolve(a *runtime.Arena, id, useEnv runtime.Value) (env, sym runtime.Value) {
	env = useEnv
	for {
		switch id.Kind {
		case runtime.KindSymbol:
			return env, id
		case runtime.KindSyntacticClosure:
			sc := a.SyntacticClosure(id)
			if sc == nil {
				return env, id
			}
			if isFree(a, sc) {
				id = sc.Expr
				// env stays as the enclosing use environment.
				continue
			}
			id = sc.Expr
			env = sc.Env
		default:
			return env, id
		}
	}
}

// isFree reports whether sc's wrapped expression is a bare symbol present
// in sc's free-names list.
func isFree(a *runtime.Arena, sc *runtime.SyntacticClosure) bool {
	if sc.Expr.Kind != runtime.KindSymbol {
		return false
	}
	for it := a.Iter(sc.FreeNames); !it.Done(); it.Next() {
		if runtime.SameHandle(it.Value(), sc.Expr) {
			return true
		}
	}
	return false
}

// IdentifierEqual implements identifier=?: two (possibly wrapped)
// identifiers are the same binding if, resolved against their respective
// use environments, they name the same symbol looked up in the same
// environment.
func IdentifierEqual(a *runtime.Arena, id1, useEnv1, id2, useEnv2 runtime.Value) bool {
	env1, sym1 := Resolve(a, id1, useEnv1)
	env2, sym2 := Resolve(a, id2, useEnv2)
	return runtime.SameHandle(env1, env2) && runtime.SameHandle(sym1, sym2)
}

// MakeSyntacticClosure wraps expr as used in env, freeing the identifiers
// named in freeNames to resolve in whatever environment the closure is
// ultimately used in — the primitive behind `make-syntactic-closure` and
// the macro expander's hygienic renaming of template-introduced
// identifiers.
func MakeSyntacticClosure(a *runtime.Arena, env, freeNames, expr runtime.Value) runtime.Value {
	return a.NewSyntacticClosure(env, freeNames, expr)
}

// Identifier reports whether v denotes an identifier: a bare symbol, or a
// syntactic closure ultimately wrapping one.
func Identifier(a *runtime.Arena, v runtime.Value) bool {
	return a.Identifier(v)
}

// SymbolName returns the underlying name of a (possibly wrapped)
// identifier, stripping hygiene wrappers without resolving an environment —
// used for diagnostics and for matching against syntax-rules literals,
// which compare by printed name rather than by binding.
func SymbolName(a *runtime.Arena, id runtime.Value) string {
	return a.SymbolName(a.StripSyntax(id))
}
