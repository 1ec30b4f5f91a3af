package runtime

// Passing classifies how a procedure wants each argument expression handed
// to it, per §4.6: most procedures want evaluated arguments, special forms
// and macro transformers want the unevaluated form, and PassingWhole hands
// over the entire argument list as one value. No builtin is registered with
// PassingWhole; apply and call/cc are handled inside the evaluator.
type Passing int

const (
	// PassingEval evaluates the argument before passing it — ordinary
	// procedure-call discipline.
	PassingEval Passing = iota
	// PassingQuote passes the argument expression unevaluated.
	PassingQuote
	// PassingWhole passes every remaining argument as a single list Value
	// rather than distributing them positionally.
	PassingWhole
)

// Returning classifies how a native procedure hands its result back to the
// VM, per §4.6.
type Returning int

const (
	// ReturningValue pushes a single Value as the call's result.
	ReturningValue Returning = iota
	// ReturningCode splices VM code onto the code stack to continue
	// evaluation in the caller's place.
	ReturningCode
	// ReturningStackSplice leaves zero or more than one Value already
	// pushed on the data stack.
	ReturningStackSplice
)

// ArityInfo bounds and classifies a procedure's arguments, per §4.6.
// Max of -1 means unbounded (a rest parameter).
type ArityInfo struct {
	Required int
	Max      int
	Passing  Passing
	Returning Returning
}

// Accepts reports whether n arguments satisfy this arity.
func (ar ArityInfo) Accepts(n int) bool {
	if n < ar.Required {
		return false
	}
	return ar.Max < 0 || n <= ar.Max
}

// InterpretedProcedure is a closure formed by lambda: a parameter list, a
// body (the lambda's body forms, which the evaluator runs in sequence),
// and the environment it closed over, per §4.6 and §4.3's "closures
// capture their defining environment, not their call-time environment".
type InterpretedProcedure struct {
	Name     string // empty for an anonymous lambda; set by `define` sugar
	Params   []Value // interned symbols, in order
	RestName Value   // KindUndefined if there is no rest parameter
	Body     Value   // body forms, a KindCons list
	Env      Value   // KindEnv the closure was created in
	Arity    ArityInfo
}

// Trace visits the parameter symbols, the body, and the closed-over
// environment — everything keeping this procedure's captured state alive.
func (p *InterpretedProcedure) Trace(fn func(Value)) {
	for _, prm := range p.Params {
		fn(prm)
	}
	if !p.RestName.IsUndefined() {
		fn(p.RestName)
	}
	fn(p.Body)
	fn(p.Env)
}

// NewInterpretedProcedure allocates a closure.
func (a *Arena) NewInterpretedProcedure(name string, params []Value, rest, body, env Value) Value {
	required := len(params)
	max := required
	if !rest.IsUndefined() {
		max = -1
	}
	return a.alloc(KindIProcedure, &InterpretedProcedure{
		Name:     name,
		Params:   params,
		RestName: rest,
		Body:     body,
		Env:      env,
		Arity:    ArityInfo{Required: required, Max: max, Passing: PassingEval, Returning: ReturningValue},
	})
}

// InterpretedProcedure resolves a KindIProcedure Value to its payload.
func (a *Arena) InterpretedProcedure(v Value) *InterpretedProcedure {
	e := a.lookup(v)
	if e == nil {
		return nil
	}
	p, _ := e.Obj.(*InterpretedProcedure)
	return p
}

// NativeFunc is the Go-level implementation of a primitive procedure. It
// receives the arena (for allocation and heap access), the current
// environment (primitives that need it, like `eval` and `apply`), and the
// argument values already resolved per the procedure's Passing discipline.
// It returns the result Value(s) or a *RuntimeError.
type NativeFunc func(a *Arena, env Value, args []Value) ([]Value, error)

// NativeProcedure is a builtin registered by §4.8's registry.
type NativeProcedure struct {
	Name  string
	Fn    NativeFunc
	Arity ArityInfo
}

// Trace reports no referenced Values; native procedures close over nothing
// but their own Go closure, which the Go garbage collector (not the arena)
// keeps alive.
func (p *NativeProcedure) Trace(func(Value)) {}

// NewNativeProcedure allocates a builtin procedure.
func (a *Arena) NewNativeProcedure(name string, arity ArityInfo, fn NativeFunc) Value {
	return a.alloc(KindNProcedure, &NativeProcedure{Name: name, Fn: fn, Arity: arity})
}

// NativeProcedure resolves a KindNProcedure Value to its payload.
func (a *Arena) NativeProcedure(v Value) *NativeProcedure {
	e := a.lookup(v)
	if e == nil {
		return nil
	}
	p, _ := e.Obj.(*NativeProcedure)
	return p
}

// ProcedureName returns a procedure's name for error messages and the
// printer's #<procedure name> form, or "" for an anonymous lambda.
func (a *Arena) ProcedureName(v Value) string {
	switch v.Kind {
	case KindIProcedure:
		if p := a.InterpretedProcedure(v); p != nil {
			return p.Name
		}
	case KindNProcedure:
		if p := a.NativeProcedure(v); p != nil {
			return p.Name
		}
	}
	return ""
}

// ProcedureArity returns a procedure's arity bounds, regardless of kind.
func (a *Arena) ProcedureArity(v Value) ArityInfo {
	switch v.Kind {
	case KindIProcedure:
		if p := a.InterpretedProcedure(v); p != nil {
			return p.Arity
		}
	case KindNProcedure:
		if p := a.NativeProcedure(v); p != nil {
			return p.Arity
		}
	}
	return ArityInfo{}
}

// IsProcedure reports whether v is callable.
func (v Value) IsProcedure() bool {
	return v.Kind == KindIProcedure || v.Kind == KindNProcedure || v.Kind == KindContinuation
}
