package runtime

// HeapObject is implemented by every concrete heap-kind payload (Cons,
// SchemeString, Vector, Symbol, Rational, Real, Complex, Env, procedures,
// Continuation, SyntacticClosure, SyntaxRules, ports). Trace must invoke fn
// once for every Value the object directly references; atomic kinds
// (Symbol, Rational, Real, Complex, SchemeString, ports) implement it as a
// no-op, matching the specification's "marked without descent" rule.
type HeapObject interface {
	Trace(fn func(Value))
}

// entry is the Arena's bookkeeping record for one live heap object.
type entry struct {
	Tag    Kind
	Marked bool
	Obj    HeapObject
}

// Arena is the process-wide heap-object registry described by the
// specification: a mapping from live heap pointer to {tag, mark-bit}.
// It is not safe for concurrent use — the evaluator is the sole mutator,
// per the single-threaded cooperative concurrency model.
type Arena struct {
	objects map[*Handle]*entry
	allocs  uint64
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{objects: make(map[*Handle]*entry, 1024)}
}

// Len reports the number of live heap objects, for GC-scheduling and tests.
func (a *Arena) Len() int { return len(a.objects) }

// Allocs reports the total number of objects ever allocated, for tests
// asserting on allocation pressure.
func (a *Arena) Allocs() uint64 { return a.allocs }

// alloc registers obj under a fresh handle and returns the Value addressing
// it. This is the only way a Handle is minted, so every live Handle is, by
// construction, registered — invariant (i) in §4.1 of the specification.
func (a *Arena) alloc(kind Kind, obj HeapObject) Value {
	h := &Handle{id: a.allocs}
	a.allocs++
	a.objects[h] = &entry{Tag: kind, Obj: obj}
	return fromHandle(kind, h)
}

// lookup resolves a Value to its entry, or nil if the Value is NIL or
// otherwise does not address a live object.
func (a *Arena) lookup(v Value) *entry {
	if v.ptr == nil {
		return nil
	}
	return a.objects[v.ptr]
}

// Free immediately deregisters a handle outside of GC, mirroring the
// specification's "deallocation removes the entry" path used by the
// reference-counted fast path in refcount.go. Freeing an unregistered
// handle is a programming error in the evaluator, so it panics rather than
// silently succeeding — see §4.9's "missing arena entry on free" fatal.
func (a *Arena) Free(v Value) {
	if v.ptr == nil {
		return
	}
	e, ok := a.objects[v.ptr]
	if !ok {
		panic("runtime: free of value not present in arena")
	}
	delete(a.objects, v.ptr)
	recycle(e.Obj)
}

// GCStats summarizes one collection cycle.
type GCStats struct {
	Live  int
	Freed int
}

// Collect runs one mark-sweep cycle. Mark traces from roots; sweep frees
// every entry left unmarked and resets the mark bit on survivors, which is
// invariant (ii): after sweep every arena entry is unmarked.
func (a *Arena) Collect(roots []Value) GCStats {
	for _, r := range roots {
		a.mark(r)
	}
	freed := 0
	for h, e := range a.objects {
		if !e.Marked {
			delete(a.objects, h)
			recycle(e.Obj)
			freed++
		} else {
			e.Marked = false
		}
	}
	return GCStats{Live: len(a.objects), Freed: freed}
}

// mark marks v and, for container kinds, recursively marks everything it
// traces. Atomic kinds report no referenced Values and terminate here.
func (a *Arena) mark(v Value) {
	if !v.Kind.IsHeapKind() {
		return
	}
	e := a.lookup(v)
	if e == nil || e.Marked {
		return
	}
	e.Marked = true
	e.Obj.Trace(a.mark)
}
