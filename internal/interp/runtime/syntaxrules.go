package runtime

// SyntaxRules is the heap representation of a syntax-rules transformer
// (§4.8's macro data type): the environment the `define-syntax` form was
// evaluated in (used to resolve template identifiers hygienically), the
// literal identifiers that must match verbatim rather than bind, and the
// ordered list of (pattern template) rewrite rules. Pattern matching and
// template instantiation themselves live in the macro-expander package,
// which only needs read access to these fields.
type SyntaxRules struct {
	DefEnv   Value // KindEnv in effect when define-syntax ran
	Literals Value // KindCons list of literal symbols
	Rules    Value // KindCons list of (pattern . template) pairs
	Ellipsis Value // the ellipsis identifier, ordinarily `...`
}

// Trace visits the definition environment, the two cons-list fields, and
// the ellipsis identifier.
func (s *SyntaxRules) Trace(fn func(Value)) {
	fn(s.DefEnv)
	fn(s.Literals)
	fn(s.Rules)
	fn(s.Ellipsis)
}

// NewSyntaxRules allocates a syntax-rules transformer.
func (a *Arena) NewSyntaxRules(defEnv, literals, rules, ellipsis Value) Value {
	return a.alloc(KindSyntaxRules, &SyntaxRules{
		DefEnv:   defEnv,
		Literals: literals,
		Rules:    rules,
		Ellipsis: ellipsis,
	})
}

// SyntaxRules resolves a KindSyntaxRules Value to its payload.
func (a *Arena) SyntaxRules(v Value) *SyntaxRules {
	e := a.lookup(v)
	if e == nil {
		return nil
	}
	s, _ := e.Obj.(*SyntaxRules)
	return s
}

// IsTransformer reports whether v is a macro transformer, as opposed to an
// ordinary procedure — the distinction the evaluator uses at the head of a
// combination to decide between macro expansion and procedure call.
func (v Value) IsTransformer() bool {
	return v.Kind == KindSyntaxRules
}
