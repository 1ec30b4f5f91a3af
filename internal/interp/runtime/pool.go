package runtime

import "sync"

// realPool recycles the *Real payload struct, the single most frequently
// allocated heap object in numeric-heavy programs (every inexact arithmetic
// result mints one). Integers, booleans, and characters are inline and need
// no pooling; rationals and complexes are comparatively rare and are left to
// the ordinary allocator.
var realPool = sync.Pool{
	New: func() any { return new(Real) },
}

func acquireReal(f float64) *Real {
	r := realPool.Get().(*Real)
	r.Val = f
	return r
}

func releaseReal(r *Real) {
	r.Val = 0
	realPool.Put(r)
}

// NewReal allocates an inexact double, drawing its payload from realPool.
func (a *Arena) NewReal(f float64) Value {
	return a.alloc(KindReal, acquireReal(f))
}

// recycle returns a swept object's payload to its pool, if it has one. It is
// called from Free and from Collect's sweep so pooled kinds never leak their
// Go-level allocation just because the Scheme-level Value died.
func recycle(obj HeapObject) {
	if r, ok := obj.(*Real); ok {
		releaseReal(r)
	}
}
