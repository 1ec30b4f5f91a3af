package macro

import (
	"testing"

	"github.com/cwbudde/goscheme/internal/interp/printer"
	"github.com/cwbudde/goscheme/internal/interp/reader"
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
	return &fixture{a: a, syms: syms, env: a.NewEnv()}
}

func (f *fixture) read(t *testing.T, src string) runtime.Value {
	t.Helper()
	v, err := reader.NewFromString(f.a, f.syms, src).Read()
	if err != nil {
		t.Fatalf("reading %q: %v", src, err)
	}
	return v
}

func TestMatchCapturesSimplePatternVariables(t *testing.T) {
	f := newFixture(t)
	pattern := f.read(t, "(a b)")
	form := f.read(t, "(1 2)")

	b, ok := Match(f.a, pattern, form, nil, "...", f.env, f.env)
	if !ok {
		t.Fatal("expected the pattern to match")
	}
	if printer.Write(f.a, b["a"].Value) != "1" || printer.Write(f.a, b["b"].Value) != "2" {
		t.Errorf("captures = %+v", b)
	}
}

func TestMatchFailsOnArityMismatch(t *testing.T) {
	f := newFixture(t)
	pattern := f.read(t, "(a b)")
	form := f.read(t, "(1 2 3)")

	if _, ok := Match(f.a, pattern, form, nil, "...", f.env, f.env); ok {
		t.Fatal("expected a pattern of length 2 to reject a form of length 3")
	}
}

func TestMatchCollectsEllipsisRepetitions(t *testing.T) {
	f := newFixture(t)
	pattern := f.read(t, "(a b ...)")
	form := f.read(t, "(1 2 3 4)")

	b, ok := Match(f.a, pattern, form, nil, "...", f.env, f.env)
	if !ok {
		t.Fatal("expected the ellipsis pattern to match")
	}
	if len(b["b"].Reps) != 3 {
		t.Fatalf("b ... captured %d repetitions, want 3", len(b["b"].Reps))
	}
	for i, want := range []string{"2", "3", "4"} {
		if got := printer.Write(f.a, b["b"].Reps[i].Value); got != want {
			t.Errorf("b ...[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestMatchTreatsLiteralsAsVerbatimKeywords(t *testing.T) {
	f := newFixture(t)
	pattern := f.read(t, "(a => b)")

	if _, ok := Match(f.a, pattern, f.read(t, "(1 => 2)"), []string{"=>"}, "...", f.env, f.env); !ok {
		t.Error("expected a literal keyword to match itself")
	}
	if _, ok := Match(f.a, pattern, f.read(t, "(1 arrow 2)"), []string{"=>"}, "...", f.env, f.env); ok {
		t.Error("expected a literal keyword to reject a different symbol in its place")
	}
}

func TestInstantiateSubstitutesCaptures(t *testing.T) {
	f := newFixture(t)
	b, ok := Match(f.a, f.read(t, "(a b)"), f.read(t, "(1 2)"), nil, "...", f.env, f.env)
	if !ok {
		t.Fatal("match failed")
	}
	out, err := Instantiate(f.a, f.read(t, "(+ a b)"), b, "...", f.env)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if got := printer.Write(f.a, out); got != "(+ 1 2)" {
		t.Errorf("Instantiate = %q, want %q", got, "(+ 1 2)")
	}
}

func TestInstantiateExpandsEllipsisTemplates(t *testing.T) {
	f := newFixture(t)
	b, ok := Match(f.a, f.read(t, "(a b ...)"), f.read(t, "(1 2 3 4)"), nil, "...", f.env, f.env)
	if !ok {
		t.Fatal("match failed")
	}
	out, err := Instantiate(f.a, f.read(t, "(list b ...)"), b, "...", f.env)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if got := printer.Write(f.a, out); got != "(list 2 3 4)" {
		t.Errorf("Instantiate = %q, want %q", got, "(list 2 3 4)")
	}
}

func TestExpandRewritesSwapUseForm(t *testing.T) {
	f := newFixture(t)
	literals := f.read(t, "()")
	rules := f.read(t, "(((_ x y) (let ((tmp x)) (set! x y) (set! y tmp))))")
	tr := f.a.SyntaxRules(f.a.NewSyntaxRules(f.env, literals, rules, runtime.Undefined))

	use := f.read(t, "(swap! a b)")
	out, err := Expand(f.a, tr, use, f.env)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := "(let ((tmp a)) (set! a b) (set! b tmp))"
	if got := printer.Write(f.a, out); got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestExpandReturnsMacroErrorWhenNoRuleMatches(t *testing.T) {
	f := newFixture(t)
	rules := f.read(t, "(((_ x y) x))")
	tr := f.a.SyntaxRules(f.a.NewSyntaxRules(f.env, f.read(t, "()"), rules, runtime.Undefined))

	if _, err := Expand(f.a, tr, f.read(t, "(m 1)"), f.env); err == nil {
		t.Fatal("expected a macro error when no rule's pattern matches")
	}
}
