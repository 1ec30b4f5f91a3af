package runtime

// Env is a lexical frame: an unordered symbol-to-value binding table plus a
// parent link to the enclosing frame, per §4.2. Env is itself a heap kind
// so continuations and closures can hold a Value reference to their
// defining frame and the GC can trace it like any other container.
type Env struct {
	vars   map[*Handle]Value // keyed by the interned symbol's Handle, not its name
	outer  *Handle
	refcnt int // see refcount.go — a ref-counted fast path, GC remains authoritative
}

// Trace visits every bound value and the parent frame.
func (e *Env) Trace(fn func(Value)) {
	for _, v := range e.vars {
		fn(v)
	}
	if e.outer != nil {
		fn(fromHandle(KindEnv, e.outer))
	}
}

// NewEnv allocates a root-level frame with no parent.
func (a *Arena) NewEnv() Value {
	return a.alloc(KindEnv, &Env{vars: make(map[*Handle]Value)})
}

// PushEnv allocates a child frame enclosed by outer.
func (a *Arena) PushEnv(outer Value) Value {
	e := &Env{vars: make(map[*Handle]Value)}
	if outer.Kind == KindEnv {
		e.outer = outer.ptr
		a.IncRef(outer)
	}
	return a.alloc(KindEnv, e)
}

// env resolves a KindEnv Value to its payload.
func (a *Arena) env(v Value) *Env {
	e := a.lookup(v)
	if e == nil {
		return nil
	}
	env, _ := e.Obj.(*Env)
	return env
}

// Find walks the parent chain outward from env looking for id, returning
// the bound value and whether it was found — §4.2's find(id) → (value, bound?).
func (a *Arena) Find(env, id Value) (Value, bool) {
	for cur := env; cur.Kind == KindEnv; {
		e := a.env(cur)
		if e == nil {
			return Undefined, false
		}
		if v, ok := e.vars[id.ptr]; ok {
			return v, true
		}
		if e.outer == nil {
			return Undefined, false
		}
		cur = fromHandle(KindEnv, e.outer)
	}
	return Undefined, false
}

// Set rebinds the innermost occurrence of id, erroring if it is unbound
// anywhere in the chain — set! semantics.
func (a *Arena) Set(env, id, val Value) error {
	for cur := env; cur.Kind == KindEnv; {
		e := a.env(cur)
		if e == nil {
			break
		}
		if _, ok := e.vars[id.ptr]; ok {
			e.vars[id.ptr] = val
			return nil
		}
		if e.outer == nil {
			break
		}
		cur = fromHandle(KindEnv, e.outer)
	}
	return NewUnboundVariableError(a.SymbolName(id))
}

// LocalSet always binds id in this exact frame, replacing any prior local
// binding — define semantics.
func (a *Arena) LocalSet(env, id, val Value) {
	e := a.env(env)
	if e == nil {
		return
	}
	e.vars[id.ptr] = val
}

// Outer returns the parent frame, or Undefined at the root.
func (a *Arena) Outer(env Value) Value {
	e := a.env(env)
	if e == nil || e.outer == nil {
		return Undefined
	}
	return fromHandle(KindEnv, e.outer)
}

// Bindings returns the symbol names bound directly in this frame (not
// parents), for the `environment-bindings` introspection builtin.
func (a *Arena) Bindings(env Value) []string {
	e := a.env(env)
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.vars))
	for h := range e.vars {
		names = append(names, a.SymbolName(fromHandle(KindSymbol, h)))
	}
	return names
}
