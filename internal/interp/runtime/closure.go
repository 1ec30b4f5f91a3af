package runtime

// SyntacticClosure is the hygiene primitive described by §4.7: an
// expression paired with the environment it was produced in and the set of
// identifiers it deliberately leaves free (to be resolved in the *use*
// environment rather than the closure's own). The macro expander wraps
// every template-introduced identifier in one of these so that references
// a macro writer did not intend to be user-visible cannot capture, and
// identifiers the writer explicitly frees can.
type SyntacticClosure struct {
	Env       Value // KindEnv this closure resolves free identifiers against
	FreeNames Value // KindCons list of symbols resolved in the *use* environment instead
	Expr      Value // the wrapped expression or identifier
}

// Trace visits the environment, the free-name list, and the wrapped
// expression.
func (s *SyntacticClosure) Trace(fn func(Value)) {
	fn(s.Env)
	fn(s.FreeNames)
	fn(s.Expr)
}

// NewSyntacticClosure allocates a hygienic identifier wrapper.
func (a *Arena) NewSyntacticClosure(env, freeNames, expr Value) Value {
	return a.alloc(KindSyntacticClosure, &SyntacticClosure{Env: env, FreeNames: freeNames, Expr: expr})
}

// SyntacticClosure resolves a KindSyntacticClosure Value to its payload.
func (a *Arena) SyntacticClosure(v Value) *SyntacticClosure {
	e := a.lookup(v)
	if e == nil {
		return nil
	}
	s, _ := e.Obj.(*SyntacticClosure)
	return s
}

// StripSyntax peels away any number of nested syntactic closures, returning
// the innermost wrapped expression — used wherever code needs to inspect an
// identifier's printed name or an expression's outer shape (e.g. `car` of a
// form) without caring about hygiene.
func (a *Arena) StripSyntax(v Value) Value {
	for v.Kind == KindSyntacticClosure {
		sc := a.SyntacticClosure(v)
		if sc == nil {
			return v
		}
		v = sc.Expr
	}
	return v
}

// Identifier reports whether v denotes an identifier for the purposes of
// §4.7's identifier?: a bare symbol, or a syntactic closure wrapping one.
func (a *Arena) Identifier(v Value) bool {
	return a.StripSyntax(v).Kind == KindSymbol
}
