package runtime

// Cons is a pair cell. NIL is represented not by a *Cons but by a KindCons
// Value with a nil Handle — Cons itself is only ever the payload of a
// non-empty pair.
type Cons struct {
	Car Value
	Cdr Value
}

// Trace visits Car and Cdr.
func (c *Cons) Trace(fn func(Value)) {
	fn(c.Car)
	fn(c.Cdr)
}

// NewCons allocates a pair cell.
func (a *Arena) NewCons(car, cdr Value) Value {
	return a.alloc(KindCons, &Cons{Car: car, Cdr: cdr})
}

// Cons resolves a KindCons Value to its payload, or nil for NIL or a
// reclaimed handle.
func (a *Arena) Cons(v Value) *Cons {
	e := a.lookup(v)
	if e == nil {
		return nil
	}
	c, _ := e.Obj.(*Cons)
	return c
}

// Nullp reports whether v is the empty list.
func Nullp(v Value) bool { return v.IsNil() }

// IsNonNullCons reports whether v is a non-empty pair.
func (a *Arena) IsNonNullCons(v Value) bool {
	return v.Kind == KindCons && !v.IsNil()
}

// GrowList is an append-efficient list builder. It tracks the head of the
// list and a pointer to the most recently appended cell's cdr slot so that
// push is O(1) regardless of list length. Once Extract or ExtractWithTail
// closes the list the builder must not be reused.
type GrowList struct {
	arena     *Arena
	head      Value
	tailValue Value
	hasTail   bool
	extracted bool
}

// NewGrowList starts an empty builder.
func NewGrowList(a *Arena) *GrowList {
	return &GrowList{arena: a, head: Nil}
}

// Push appends v as a new final cell.
func (g *GrowList) Push(v Value) {
	if g.extracted {
		panic("runtime: push on extracted GrowList")
	}
	cell := g.arena.NewCons(v, Nil)
	if g.head.IsNil() {
		g.head = cell
	} else {
		g.arena.Cons(g.tailValue).Cdr = cell
	}
	g.tailValue = cell
}

// Len reports the number of cells pushed so far.
func (g *GrowList) Len() int {
	n := 0
	for it := g.arena.Iter(g.head); !it.Done(); it.Next() {
		n++
	}
	return n
}

// Extract closes the list with NIL and invalidates the builder.
func (g *GrowList) Extract() Value {
	g.extracted = true
	return g.head
}

// ExtractWithTail closes the list with an arbitrary cdr (for constructing
// improper lists, e.g. a variadic parameter list's rest binding) and
// invalidates the builder.
func (g *GrowList) ExtractWithTail(tail Value) Value {
	g.extracted = true
	if g.head.IsNil() {
		return tail
	}
	g.arena.Cons(g.tailValue).Cdr = tail
	return g.head
}

// ConsIter is a forward iterator over a (possibly improper) cons chain.
type ConsIter struct {
	arena *Arena
	cur   Value
}

// Iter starts an iterator at the head of a cons chain.
func (a *Arena) Iter(v Value) *ConsIter {
	return &ConsIter{arena: a, cur: v}
}

// Done reports whether the iterator has reached NIL or an improper tail.
func (it *ConsIter) Done() bool {
	return it.cur.Kind != KindCons || it.cur.IsNil()
}

// Value returns the element at the iterator's current cell. Calling it when
// Done is true is a programming error.
func (it *ConsIter) Value() Value {
	return it.arena.Cons(it.cur).Car
}

// Next advances the iterator by one cell.
func (it *ConsIter) Next() {
	it.cur = it.arena.Cons(it.cur).Cdr
}

// Base returns the remaining tail: NIL for a proper list exhausted to its
// end, or the non-cons improper terminator otherwise.
func (it *ConsIter) Base() Value {
	return it.cur
}

// EqualBase reports whether two iterators sit at the same remaining tail.
func (it *ConsIter) EqualBase(other *ConsIter) bool {
	return SameHandle(it.cur, other.cur) || (it.cur.IsNil() && other.cur.IsNil())
}

// ListLen returns the length of a proper list, or -1 if v is improper or
// circular-looking beyond a generous bound.
func (a *Arena) ListLen(v Value) int {
	n := 0
	for it := a.Iter(v); !it.Done(); it.Next() {
		n++
		if n > 1<<24 {
			return -1
		}
	}
	if !it0(a, v, n) {
		return -1
	}
	return n
}

func it0(a *Arena, v Value, n int) bool {
	cur := v
	for i := 0; i < n; i++ {
		cur = a.Cons(cur).Cdr
	}
	return cur.IsNil()
}

// Nth returns the value at the given zero-based index of a proper list,
// raising via the returned bool when the chain is shorter than expected or
// improper before reaching it.
func (a *Arena) Nth(v Value, n int) (Value, bool) {
	cur := v
	for i := 0; i < n; i++ {
		if cur.Kind != KindCons || cur.IsNil() {
			return Undefined, false
		}
		cur = a.Cons(cur).Cdr
	}
	if cur.Kind != KindCons || cur.IsNil() {
		return Undefined, false
	}
	return a.Cons(cur).Car, true
}

// NthCdr returns the tail remaining after dropping n elements.
func (a *Arena) NthCdr(v Value, n int) (Value, bool) {
	cur := v
	for i := 0; i < n; i++ {
		if cur.Kind != KindCons || cur.IsNil() {
			return Undefined, false
		}
		cur = a.Cons(cur).Cdr
	}
	return cur, true
}

// ListToSlice collects a proper list's elements. The second return is false
// if the chain is improper.
func (a *Arena) ListToSlice(v Value) ([]Value, bool) {
	var out []Value
	cur := v
	for cur.Kind == KindCons && !cur.IsNil() {
		c := a.Cons(cur)
		out = append(out, c.Car)
		cur = c.Cdr
	}
	return out, cur.IsNil()
}

// SliceToList builds a proper list from a slice.
func (a *Arena) SliceToList(vs []Value) Value {
	g := NewGrowList(a)
	for _, v := range vs {
		g.Push(v)
	}
	return g.Extract()
}
