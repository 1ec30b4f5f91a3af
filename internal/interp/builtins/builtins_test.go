package builtins

import (
	"testing"

	"github.com/cwbudde/goscheme/internal/interp/printer"
	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

type fixture struct {
	a    *runtime.Arena
	syms *runtime.SymbolTable
	env  runtime.Value
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	env := a.NewEnv()
	Install(a, syms, env)
	return &fixture{a: a, syms: syms, env: env}
}

func (f *fixture) call(t *testing.T, name string, args ...runtime.Value) []runtime.Value {
	t.Helper()
	proc, ok := f.a.Find(f.env, f.syms.Intern(name))
	if !ok {
		t.Fatalf("%s is not bound by Install", name)
	}
	np := f.a.NativeProcedure(proc)
	if np == nil {
		t.Fatalf("%s did not resolve to a native procedure", name)
	}
	vals, err := np.Fn(f.a, f.env, args)
	if err != nil {
		t.Fatalf("%s%v: %v", name, args, err)
	}
	return vals
}

func (f *fixture) call1(t *testing.T, name string, args ...runtime.Value) runtime.Value {
	t.Helper()
	vals := f.call(t, name, args...)
	if len(vals) != 1 {
		t.Fatalf("%s%v returned %d values, want 1", name, args, len(vals))
	}
	return vals[0]
}

func TestInstallBindsBuiltinsByExactCaseSensitiveName(t *testing.T) {
	f := newFixture(t)
	if _, ok := f.a.Find(f.env, f.syms.Intern("+")); !ok {
		t.Error("+ is not bound after Install")
	}
	if _, ok := f.a.Find(f.env, f.syms.Intern("CAR")); ok {
		t.Error("CAR resolved even though Scheme identifiers are case-sensitive")
	}
}

func TestArithmeticBuiltins(t *testing.T) {
	f := newFixture(t)
	if got := f.call1(t, "+", runtime.Int(1), runtime.Int(2), runtime.Int(3)); got.AsInt() != 6 {
		t.Errorf("(+ 1 2 3) = %v, want 6", got)
	}
	if got := f.call1(t, "-", runtime.Int(10), runtime.Int(4)); got.AsInt() != 6 {
		t.Errorf("(- 10 4) = %v, want 6", got)
	}
	if got := f.call1(t, "*"); got.AsInt() != 1 {
		t.Errorf("(*) = %v, want 1 (the empty product)", got)
	}
	if got := f.call1(t, "+"); got.AsInt() != 0 {
		t.Errorf("(+) = %v, want 0 (the empty sum)", got)
	}
}

func TestComparisonBuiltinsAreVariadic(t *testing.T) {
	f := newFixture(t)
	got := f.call1(t, "<", runtime.Int(1), runtime.Int(2), runtime.Int(3))
	if !got.Truthy() {
		t.Error("(< 1 2 3) should be true")
	}
	got = f.call1(t, "<", runtime.Int(1), runtime.Int(3), runtime.Int(2))
	if got.Truthy() {
		t.Error("(< 1 3 2) should be false")
	}
}

func TestPairBuiltins(t *testing.T) {
	f := newFixture(t)
	pair := f.call1(t, "cons", runtime.Int(1), runtime.Int(2))
	if got := f.call1(t, "car", pair); got.AsInt() != 1 {
		t.Errorf("car = %v, want 1", got)
	}
	if got := f.call1(t, "cdr", pair); got.AsInt() != 2 {
		t.Errorf("cdr = %v, want 2", got)
	}

	lst := f.call1(t, "list", runtime.Int(1), runtime.Int(2), runtime.Int(3))
	if got := f.call1(t, "length", lst); got.AsInt() != 3 {
		t.Errorf("length = %v, want 3", got)
	}
	rev := f.call1(t, "reverse", lst)
	if got := printer.Write(f.a, rev); got != "(3 2 1)" {
		t.Errorf("reverse = %q, want (3 2 1)", got)
	}
}

func TestCarOfNonPairIsATypeError(t *testing.T) {
	f := newFixture(t)
	proc, _ := f.a.Find(f.env, f.syms.Intern("car"))
	np := f.a.NativeProcedure(proc)
	if _, err := np.Fn(f.a, f.env, []runtime.Value{runtime.Int(1)}); err == nil {
		t.Fatal("expected a type error taking car of a non-pair")
	}
}

func TestEquivalencePredicates(t *testing.T) {
	f := newFixture(t)
	if !f.call1(t, "eq?", runtime.Int(1), runtime.Int(1)).Truthy() {
		t.Error("eq? on the same inline integer should be true")
	}
	if !f.call1(t, "equal?", f.a.NewString("abc"), f.a.NewString("abc")).Truthy() {
		t.Error("equal? on two distinct equal strings should be true")
	}
	if f.call1(t, "eq?", f.a.NewString("abc"), f.a.NewString("abc")).Truthy() {
		t.Error("eq? on two distinct string objects should be false")
	}
}

func TestStringBuiltins(t *testing.T) {
	f := newFixture(t)
	s := f.call1(t, "string-append", f.a.NewString("foo"), f.a.NewString("bar"))
	if f.a.String(s) != "foobar" {
		t.Errorf("string-append = %q, want foobar", f.a.String(s))
	}
	if got := f.call1(t, "string-length", s); got.AsInt() != 6 {
		t.Errorf("string-length = %v, want 6", got)
	}
}

func TestVectorBuiltins(t *testing.T) {
	f := newFixture(t)
	v := f.call1(t, "vector", runtime.Int(1), runtime.Int(2), runtime.Int(3))
	if got := f.call1(t, "vector-length", v); got.AsInt() != 3 {
		t.Errorf("vector-length = %v, want 3", got)
	}
	if got := f.call1(t, "vector-ref", v, runtime.Int(1)); got.AsInt() != 2 {
		t.Errorf("vector-ref = %v, want 2", got)
	}
}

func TestTranscendentalAndComplexBuiltinsAreWired(t *testing.T) {
	f := newFixture(t)
	if got := f.call1(t, "exp", runtime.Int(0)); got.AsInt() != 1 && f.a.ToFloat(got) != 1 {
		t.Errorf("(exp 0) = %v, want 1", got)
	}
	if got := f.call1(t, "sin", runtime.Int(0)); f.a.ToFloat(got) != 0 {
		t.Errorf("(sin 0) = %v, want 0", got)
	}
	if got := f.call1(t, "atan", runtime.Int(1), runtime.Int(1)); f.a.ToFloat(got) <= 0 {
		t.Errorf("(atan 1 1) = %v, want a positive angle", got)
	}
	c := f.call1(t, "make-rectangular", runtime.Int(3), runtime.Int(4))
	if got := f.call1(t, "magnitude", c); f.a.ToFloat(got) != 5 {
		t.Errorf("(magnitude (make-rectangular 3 4)) = %v, want 5", got)
	}
	if got := f.call1(t, "real-part", c); f.a.ToFloat(got) != 3 {
		t.Errorf("(real-part (make-rectangular 3 4)) = %v, want 3", got)
	}
	if got := f.call1(t, "numerator", f.call1(t, "/", runtime.Int(4), runtime.Int(6))); got.AsInt() != 2 {
		t.Errorf("(numerator 2/3) = %v, want 2", got)
	}
}

func TestEnvironmentAccessorsRespectTheCategorySplit(t *testing.T) {
	f := newFixture(t)

	nullEnv := f.call1(t, "null-environment")
	if _, ok := f.a.Find(nullEnv, f.syms.Intern("car")); ok {
		t.Error("null-environment should not bind car")
	}

	reportEnv := f.call1(t, "scheme-report-environment")
	if _, ok := f.a.Find(reportEnv, f.syms.Intern("car")); !ok {
		t.Error("scheme-report-environment should bind car")
	}
	if _, ok := f.a.Find(reportEnv, f.syms.Intern("gensym")); ok {
		t.Error("scheme-report-environment should not bind the extension procedure gensym")
	}
	if _, ok := f.a.Find(reportEnv, f.syms.Intern("with-exception-handler")); ok {
		t.Error("scheme-report-environment should not bind with-exception-handler")
	}

	interactionEnv := f.call1(t, "interaction-environment")
	if _, ok := f.a.Find(interactionEnv, f.syms.Intern("gensym")); !ok {
		t.Error("interaction-environment should bind gensym")
	}
	if _, ok := f.a.Find(interactionEnv, f.syms.Intern("with-exception-handler")); !ok {
		t.Error("interaction-environment should bind with-exception-handler")
	}
}

func TestRegistryTracksCategoriesAndCount(t *testing.T) {
	f := newFixture(t)
	_ = f
	r := NewRegistry()
	installNumeric(r)
	installPairs(r)

	if r.Count() == 0 {
		t.Fatal("no builtins registered")
	}
	numeric := r.GetByCategory(CategoryNumeric)
	if len(numeric) == 0 {
		t.Error("no numeric builtins in CategoryNumeric")
	}
	if _, ok := r.Lookup("+"); !ok {
		t.Error("+ missing from the registry after installNumeric")
	}
}
