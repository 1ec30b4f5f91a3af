package runtime

import (
	"math/big"
	"testing"
)

func TestArenaConsRoundTrip(t *testing.T) {
	a := NewArena()
	pair := a.NewCons(Int(1), Int(2))
	c := a.Cons(pair)
	if c.Car.AsInt() != 1 || c.Cdr.AsInt() != 2 {
		t.Fatalf("Cons = (%v . %v), want (1 . 2)", c.Car, c.Cdr)
	}
}

func TestArenaCollectFreesUnreachable(t *testing.T) {
	a := NewArena()
	kept := a.NewCons(Int(1), Nil)
	_ = a.NewCons(Int(2), Nil) // unreachable once Collect runs

	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 before collection", a.Len())
	}

	stats := a.Collect([]Value{kept})
	if stats.Freed != 1 {
		t.Errorf("Freed = %d, want 1", stats.Freed)
	}
	if stats.Live != 1 {
		t.Errorf("Live = %d, want 1", stats.Live)
	}
	if a.Cons(kept) == nil {
		t.Error("kept cons was collected")
	}
}

func TestArenaCollectTracesThroughContainers(t *testing.T) {
	a := NewArena()
	inner := a.NewCons(Int(42), Nil)
	outer := a.NewCons(inner, Nil)

	stats := a.Collect([]Value{outer})
	if stats.Freed != 0 {
		t.Errorf("Freed = %d, want 0 (inner reachable through outer)", stats.Freed)
	}
	if a.Cons(inner).Car.AsInt() != 42 {
		t.Error("inner cons payload was lost")
	}
}

func TestGrowListBuildsProperList(t *testing.T) {
	a := NewArena()
	g := NewGrowList(a)
	g.Push(Int(1))
	g.Push(Int(2))
	g.Push(Int(3))
	lst := g.Extract()

	vals, proper := a.ListToSlice(lst)
	if !proper {
		t.Fatal("list not proper")
	}
	want := []int64{1, 2, 3}
	if len(vals) != len(want) {
		t.Fatalf("len = %d, want %d", len(vals), len(want))
	}
	for i, w := range want {
		if vals[i].AsInt() != w {
			t.Errorf("vals[%d] = %d, want %d", i, vals[i].AsInt(), w)
		}
	}
}

func TestGrowListBuildsImproperListWithTail(t *testing.T) {
	a := NewArena()
	g := NewGrowList(a)
	g.Push(Int(1))
	g.Push(Int(2))
	lst := g.ExtractWithTail(Int(3))

	_, proper := a.ListToSlice(lst)
	if proper {
		t.Fatal("expected an improper list")
	}
	tail, ok := a.NthCdr(lst, 2)
	if !ok || tail.AsInt() != 3 {
		t.Errorf("tail = %v, ok=%v, want 3", tail, ok)
	}
}

func TestEnvFindSetAndLocalSet(t *testing.T) {
	a := NewArena()
	syms := NewSymbolTable(a)
	root := a.NewEnv()
	x := syms.Intern("x")

	if _, ok := a.Find(root, x); ok {
		t.Fatal("x should be unbound in a fresh environment")
	}

	a.LocalSet(root, x, Int(10))
	v, ok := a.Find(root, x)
	if !ok || v.AsInt() != 10 {
		t.Fatalf("Find(x) = %v, %v, want 10, true", v, ok)
	}

	child := a.PushEnv(root)
	v, ok = a.Find(child, x)
	if !ok || v.AsInt() != 10 {
		t.Errorf("Find through parent = %v, %v, want 10, true", v, ok)
	}

	if err := a.Set(child, x, Int(20)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, _ = a.Find(root, x)
	if v.AsInt() != 20 {
		t.Errorf("set! through child did not reach parent binding: got %v", v)
	}
}

func TestEnvSetUnboundIsAnError(t *testing.T) {
	a := NewArena()
	syms := NewSymbolTable(a)
	root := a.NewEnv()
	if err := a.Set(root, syms.Intern("never-defined"), Int(1)); err == nil {
		t.Fatal("expected an unbound-variable error from set!")
	}
}

func TestEnvBindingsListsLocalFrameOnly(t *testing.T) {
	a := NewArena()
	syms := NewSymbolTable(a)
	root := a.NewEnv()
	a.LocalSet(root, syms.Intern("a"), Int(1))
	a.LocalSet(root, syms.Intern("b"), Int(2))

	child := a.PushEnv(root)
	a.LocalSet(child, syms.Intern("c"), Int(3))

	names := a.Bindings(child)
	if len(names) != 1 || names[0] != "c" {
		t.Errorf("Bindings(child) = %v, want [c]", names)
	}
}

func TestSymbolTableInterningIsStable(t *testing.T) {
	a := NewArena()
	syms := NewSymbolTable(a)
	s1 := syms.Intern("foo")
	s2 := syms.Intern("foo")
	if !SameHandle(s1, s2) {
		t.Error("interning the same name twice produced different handles")
	}
	if a.SymbolName(s1) != "foo" {
		t.Errorf("SymbolName = %q, want foo", a.SymbolName(s1))
	}
}

func TestArithmeticPromotesOnOverflow(t *testing.T) {
	a := NewArena()
	big1 := Int(1 << 62)
	sum := a.Add(big1, big1)
	if sum.Kind == KindInteger {
		t.Fatal("expected overflow to promote out of an inline integer")
	}
}

func TestArithmeticBasics(t *testing.T) {
	a := NewArena()
	if got := a.Add(Int(2), Int(3)); got.AsInt() != 5 {
		t.Errorf("Add(2,3) = %v, want 5", got)
	}
	if got := a.Sub(Int(5), Int(3)); got.AsInt() != 2 {
		t.Errorf("Sub(5,3) = %v, want 2", got)
	}
	if got := a.Mul(Int(4), Int(3)); got.AsInt() != 12 {
		t.Errorf("Mul(4,3) = %v, want 12", got)
	}
}

func TestDivByZeroIsAnError(t *testing.T) {
	a := NewArena()
	if _, err := a.Div(Int(1), Int(0)); err == nil {
		t.Fatal("expected an error dividing by zero")
	}
}

func TestNewExactRatioReducesWholeRatiosToIntegers(t *testing.T) {
	a := NewArena()
	v := a.NewExactRatio(big.NewRat(4, 2))
	if v.Kind != KindInteger || v.AsInt() != 2 {
		t.Errorf("NewExactRatio(4/2) = %v, want inline integer 2", v)
	}
}

func TestCompareOrdersAcrossNumericTower(t *testing.T) {
	a := NewArena()
	cmp, err := a.Compare(Int(1), a.NewReal(1.5))
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp >= 0 {
		t.Errorf("Compare(1, 1.5) = %d, want negative", cmp)
	}
}

func TestVectorRefSetAndBounds(t *testing.T) {
	a := NewArena()
	v := a.NewVector([]Value{Int(1), Int(2), Int(3)})
	if a.VectorLen(v) != 3 {
		t.Fatalf("VectorLen = %d, want 3", a.VectorLen(v))
	}
	if err := a.VectorSet(v, 1, Int(99)); err != nil {
		t.Fatalf("VectorSet: %v", err)
	}
	got, err := a.VectorRef(v, 1)
	if err != nil || got.AsInt() != 99 {
		t.Errorf("VectorRef(1) = %v, %v, want 99, nil", got, err)
	}
	if _, err := a.VectorRef(v, 5); err == nil {
		t.Error("expected an out-of-range error")
	}
}

func TestStringRefSetAndAppend(t *testing.T) {
	a := NewArena()
	s := a.NewString("hello")
	if a.StringLen(s) != 5 {
		t.Fatalf("StringLen = %d, want 5", a.StringLen(s))
	}
	if err := a.StringSet(s, 0, 'H'); err != nil {
		t.Fatalf("StringSet: %v", err)
	}
	if a.String(s) != "Hello" {
		t.Errorf("String() = %q, want Hello", a.String(s))
	}
	joined := a.StringAppend(s, a.NewString(" world"))
	if a.String(joined) != "Hello world" {
		t.Errorf("StringAppend = %q, want %q", a.String(joined), "Hello world")
	}
}

func TestListLenDetectsImproperLists(t *testing.T) {
	a := NewArena()
	proper := a.SliceToList([]Value{Int(1), Int(2), Int(3)})
	if n := a.ListLen(proper); n != 3 {
		t.Errorf("ListLen(proper) = %d, want 3", n)
	}
	improper := a.NewCons(Int(1), Int(2))
	if n := a.ListLen(improper); n != -1 {
		t.Errorf("ListLen(improper) = %d, want -1", n)
	}
}
