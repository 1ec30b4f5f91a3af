package runtime

// Symbol is the heap payload of an interned identifier. Two symbols with
// the same Name are always the same Handle — see SymbolTable.Intern.
type Symbol struct {
	Name string
}

// Trace reports no referenced Values; symbols are an atomic heap kind.
func (s *Symbol) Trace(func(Value)) {}

// SymbolTable interns symbol names to a single canonical Handle per name so
// that symbol equality is pointer equality, as required by §3's "two
// symbols with the same name are pointer-equal" invariant.
//
// The table itself is never swept: interned symbols are long-lived process
// state (much like Go's own string interning of small literals), and
// letting the GC reclaim a symbol would violate the pointer-equality
// invariant for any later re-interning of the same name.
type SymbolTable struct {
	arena *Arena
	names map[string]Value
}

// NewSymbolTable creates an empty table backed by the given arena.
func NewSymbolTable(a *Arena) *SymbolTable {
	return &SymbolTable{arena: a, names: make(map[string]Value, 256)}
}

// Intern returns the canonical Value for name, allocating it on first use.
func (t *SymbolTable) Intern(name string) Value {
	if v, ok := t.names[name]; ok {
		return v
	}
	v := t.arena.alloc(KindSymbol, &Symbol{Name: name})
	t.names[name] = v
	return v
}

// SymbolName returns the underlying string of a symbol Value.
func (a *Arena) SymbolName(v Value) string {
	e := a.lookup(v)
	if e == nil {
		return ""
	}
	s, _ := e.Obj.(*Symbol)
	if s == nil {
		return ""
	}
	return s.Name
}

// Roots returns every interned symbol, for use as a permanent GC root set
// so the table's own entries are never collected even though Intern keeps
// its own reference outside the arena's root-tracing walk.
func (t *SymbolTable) Roots() []Value {
	out := make([]Value, 0, len(t.names))
	for _, v := range t.names {
		out = append(out, v)
	}
	return out
}
