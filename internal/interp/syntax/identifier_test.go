package syntax

import (
	"testing"

	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

func TestResolveBareSymbolUsesTheUseEnvironment(t *testing.T) {
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	useEnv := a.NewEnv()
	x := syms.Intern("x")

	env, sym := Resolve(a, x, useEnv)
	if !runtime.SameHandle(env, useEnv) || !runtime.SameHandle(sym, x) {
		t.Errorf("Resolve(bare symbol) = %v, %v, want useEnv, x", env, sym)
	}
}

func TestResolveClosureDefersToDefEnvForBoundIdentifiers(t *testing.T) {
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	defEnv := a.NewEnv()
	useEnv := a.NewEnv()
	x := syms.Intern("x")

	closure := a.NewSyntacticClosure(defEnv, runtime.Nil, x)
	env, sym := Resolve(a, closure, useEnv)
	if !runtime.SameHandle(env, defEnv) || !runtime.SameHandle(sym, x) {
		t.Errorf("Resolve(closure) = %v, %v, want defEnv, x", env, sym)
	}
}

func TestResolveClosureFreesListedIdentifiersToUseEnv(t *testing.T) {
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	defEnv := a.NewEnv()
	useEnv := a.NewEnv()
	x := syms.Intern("x")
	freeNames := a.SliceToList([]runtime.Value{x})

	closure := a.NewSyntacticClosure(defEnv, freeNames, x)
	env, sym := Resolve(a, closure, useEnv)
	if !runtime.SameHandle(env, useEnv) || !runtime.SameHandle(sym, x) {
		t.Errorf("Resolve(freed closure) = %v, %v, want useEnv, x", env, sym)
	}
}

func TestIdentifierEqualComparesResolvedBindings(t *testing.T) {
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	env := a.NewEnv()
	x := syms.Intern("x")
	y := syms.Intern("y")

	if !IdentifierEqual(a, x, env, x, env) {
		t.Error("identifier=? on the same symbol in the same env should be true")
	}
	if IdentifierEqual(a, x, env, y, env) {
		t.Error("identifier=? on distinct symbols should be false")
	}
}

func TestSymbolNameStripsSyntacticClosures(t *testing.T) {
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	defEnv := a.NewEnv()
	x := syms.Intern("x")
	closure := MakeSyntacticClosure(a, defEnv, runtime.Nil, x)

	if got := SymbolName(a, closure); got != "x" {
		t.Errorf("SymbolName(closure) = %q, want %q", got, "x")
	}
}

func TestIdentifierRecognizesSymbolsAndClosures(t *testing.T) {
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	env := a.NewEnv()
	x := syms.Intern("x")
	closure := MakeSyntacticClosure(a, env, runtime.Nil, x)

	if !Identifier(a, x) {
		t.Error("a bare symbol should be an identifier")
	}
	if !Identifier(a, closure) {
		t.Error("a syntactic closure wrapping a symbol should be an identifier")
	}
	if Identifier(a, runtime.Int(1)) {
		t.Error("an integer should not be an identifier")
	}
}
