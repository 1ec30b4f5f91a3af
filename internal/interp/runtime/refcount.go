package runtime

// Reference counting is a fast-path cache layered on top of the arena's
// authoritative mark-sweep collector, per §4.1 ("the collector remains
// correct even if every refcnt were zero"). Env frames are the only kind
// that carries a count today: closures and continuations capture them far
// more often than any other heap value, and the count lets the evaluator
// free a frame the moment its last referer pops without waiting for the
// next collection cycle.
//
// IncRef/DecRef must never be the sole path to freeing an object — Free is
// only ever called when DecRef's bookkeeping independently agrees with a
// zero count, and a missed DecRef merely defers reclamation to the next
// Collect, never corrupts it.

// IncRef bumps the ref count of a heap-kind Value that carries one. It is a
// no-op for kinds without a count.
func (a *Arena) IncRef(v Value) {
	if v.Kind != KindEnv {
		return
	}
	if e := a.env(v); e != nil {
		e.refcnt++
	}
}

// DecRef drops the ref count of a heap-kind Value that carries one, freeing
// it immediately once the count reaches zero. Freeing also decrements the
// parent frame's count, so releasing the innermost frame of a chain can
// cascade outward.
func (a *Arena) DecRef(v Value) {
	if v.Kind != KindEnv {
		return
	}
	e := a.env(v)
	if e == nil {
		return
	}
	e.refcnt--
	if e.refcnt > 0 {
		return
	}
	var outer Value
	if e.outer != nil {
		outer = fromHandle(KindEnv, e.outer)
	}
	a.Free(v)
	if outer.Kind == KindEnv {
		a.DecRef(outer)
	}
}
