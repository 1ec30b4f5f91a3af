package evaluator

import (
	"testing"

	"github.com/cwbudde/goscheme/internal/interp/builtins"
	"github.com/cwbudde/goscheme/internal/interp/printer"
	"github.com/cwbudde/goscheme/internal/interp/reader"
	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

func newTestVM(t *testing.T) (*VM, runtime.Value) {
	t.Helper()
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	env := a.NewEnv()
	builtins.Install(a, syms, env)
	vm := NewVM(a, syms, env)
	if _, err := evalSource(t, vm, env, builtins.Prelude); err != nil {
		t.Fatalf("evaluating prelude: %v", err)
	}
	return vm, env
}

func evalSource(t *testing.T, vm *VM, env runtime.Value, src string) (runtime.Value, error) {
	t.Helper()
	r := reader.NewFromString(vm.Arena, vm.Symbols, src)
	var last runtime.Value
	for {
		form, err := r.Read()
		if err != nil {
			return runtime.Undefined, err
		}
		if form.Kind == runtime.KindNotation && form.NotationTag() == runtime.NotationEOF {
			return last, nil
		}
		vals, err := vm.Eval(form, env)
		if err != nil {
			return runtime.Undefined, err
		}
		if len(vals) > 0 {
			last = vals[0]
		}
	}
}

func mustEval(t *testing.T, vm *VM, env runtime.Value, src string) runtime.Value {
	t.Helper()
	v, err := evalSource(t, vm, env, src)
	if err != nil {
		t.Fatalf("evaluating %q: %v", src, err)
	}
	return v
}

func TestEvalIfAndDefine(t *testing.T) {
	vm, env := newTestVM(t)
	got := mustEval(t, vm, env, `(if (> 2 1) "yes" "no")`)
	if vm.Arena.String(got) != "yes" {
		t.Errorf("if = %q, want yes", vm.Arena.String(got))
	}
}

func TestEvalLetrecSupportsMutualRecursion(t *testing.T) {
	vm, env := newTestVM(t)
	src := `
(letrec ((even? (lambda (n) (if (= n 0) #t (odd? (- n 1)))))
         (odd? (lambda (n) (if (= n 0) #f (even? (- n 1))))))
  (even? 10))`
	got := mustEval(t, vm, env, src)
	if !got.Truthy() {
		t.Error("letrec mutual recursion produced false, want true")
	}
}

func TestEvalNamedLambdaTailCallsDoNotGrowControlStack(t *testing.T) {
	vm, env := newTestVM(t)
	before := len(vm.Konts)
	src := `
(define (loop n)
  (if (= n 0) 'done (loop (- n 1))))
(loop 50000)`
	got := mustEval(t, vm, env, src)
	if vm.Arena.SymbolName(got) != "done" {
		t.Errorf("loop result = %v, want the symbol done", got)
	}
	if len(vm.Konts) != before {
		t.Errorf("Konts grew from %d to %d across a tail-recursive loop", before, len(vm.Konts))
	}
}

func TestEvalDynamicWindRunsBeforeAndAfterInOrder(t *testing.T) {
	vm, env := newTestVM(t)
	src := `
(define trace '())
(dynamic-wind
  (lambda () (set! trace (cons 'before trace)))
  (lambda () (set! trace (cons 'during trace)))
  (lambda () (set! trace (cons 'after trace))))
(reverse trace)`
	got := mustEval(t, vm, env, src)
	if want := "(before during after)"; printer.Write(vm.Arena, got) != want {
		t.Errorf("trace = %s, want %s", printer.Write(vm.Arena, got), want)
	}
}

func TestEvalCallCCEscapesEnclosingComputation(t *testing.T) {
	vm, env := newTestVM(t)
	got := mustEval(t, vm, env, `(+ 1 (call/cc (lambda (k) (k 41) (error "unreached"))))`)
	if got.AsInt() != 42 {
		t.Errorf("call/cc escape = %v, want 42", got)
	}
}

// TestEvalCallCCReenteringRunsTheContinuationTwice captures a continuation
// at the top level and invokes it from two later, independent forms,
// confirming it behaves as a reusable (multi-shot) value rather than a
// one-shot escape that becomes stale after its first use.
func TestEvalCallCCReenteringRunsTheContinuationTwice(t *testing.T) {
	vm, env := newTestVM(t)
	if _, err := evalSource(t, vm, env, `
(define saved-k #f)
(+ 1 (call/cc (lambda (k) (set! saved-k k) 0)))`); err != nil {
		t.Fatalf("capturing the continuation: %v", err)
	}

	first := mustEval(t, vm, env, "(saved-k 10)")
	if first.AsInt() != 11 {
		t.Errorf("first invocation of saved-k = %v, want 11", first)
	}

	second := mustEval(t, vm, env, "(saved-k 20)")
	if second.AsInt() != 21 {
		t.Errorf("second invocation of saved-k = %v, want 21", second)
	}
}

func TestEvalWithExceptionHandlerCatchesRaise(t *testing.T) {
	vm, env := newTestVM(t)
	src := `
(call/cc (lambda (k)
  (with-exception-handler
    (lambda (e) (k (list 'caught e)))
    (lambda () (raise 'boom)))))`
	got := mustEval(t, vm, env, src)
	if want := "(caught boom)"; printer.Write(vm.Arena, got) != want {
		t.Errorf("handler result = %s, want %s", printer.Write(vm.Arena, got), want)
	}
}

func TestEvalDefineSyntaxExpandsUserMacros(t *testing.T) {
	vm, env := newTestVM(t)
	src := `
(define-syntax my-if
  (syntax-rules ()
    ((_ c t e) (cond (c t) (else e)))))
(my-if #t 'yes 'no)`
	got := mustEval(t, vm, env, src)
	if vm.Arena.SymbolName(got) != "yes" {
		t.Errorf("my-if = %v, want the symbol yes", got)
	}
}

func TestGensymProducesDistinctUninternedLookingNames(t *testing.T) {
	vm, _ := newTestVM(t)
	a := vm.gensym("tmp")
	b := vm.gensym("tmp")
	if runtime.SameHandle(a, b) {
		t.Error("two gensym calls with the same tag produced the same symbol")
	}
}

func TestRootsCoversTheControlStackDataStackAndEnvironment(t *testing.T) {
	vm, env := newTestVM(t)
	vm.Env = env
	vm.Data = append(vm.Data, runtime.Int(7))
	vm.pushKont(Kont{A: runtime.Int(9)})

	roots := vm.Roots()
	var sawData, sawKontA, sawEnv bool
	for _, r := range roots {
		if r.Kind == runtime.KindInteger && r.AsInt() == 7 {
			sawData = true
		}
		if r.Kind == runtime.KindInteger && r.AsInt() == 9 {
			sawKontA = true
		}
		if runtime.SameHandle(r, env) {
			sawEnv = true
		}
	}
	if !sawData || !sawKontA || !sawEnv {
		t.Errorf("Roots() missed expected entries: data=%v kontA=%v env=%v", sawData, sawKontA, sawEnv)
	}
}

func TestCollectSurvivesAPeriodicGCTick(t *testing.T) {
	vm, env := newTestVM(t)
	vm.SetGCInterval(4)
	got := mustEval(t, vm, env, `(define (build n acc) (if (= n 0) acc (build (- n 1) (cons n acc)))) (length (build 100 '()))`)
	if got.AsInt() != 100 {
		t.Errorf("length after GC ticks = %v, want 100", got)
	}
}
