package interp

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/goscheme/internal/interp/printer"
)

func newTestInterpreter(t *testing.T) *Interpreter {
	t.Helper()
	it, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return it
}

func TestEvalStringArithmetic(t *testing.T) {
	it := newTestInterpreter(t)
	vals, err := it.EvalString("(+ 1 2 (* 3 4))")
	if err != nil {
		t.Fatalf("EvalString: %v", err)
	}
	if len(vals) != 1 {
		t.Fatalf("got %d values, want 1", len(vals))
	}
	if got := printer.Write(it.Arena, vals[0]); got != "15" {
		t.Errorf("result = %q, want %q", got, "15")
	}
}

func TestEvalStringDefineAndRecall(t *testing.T) {
	it := newTestInterpreter(t)
	if _, err := it.EvalString("(define (square x) (* x x))"); err != nil {
		t.Fatalf("define: %v", err)
	}
	vals, err := it.EvalString("(square 7)")
	if err != nil {
		t.Fatalf("EvalString: %v", err)
	}
	if got := printer.Write(it.Arena, vals[0]); got != "49" {
		t.Errorf("result = %q, want %q", got, "49")
	}
}

func TestEvalStringTailCallDoesNotOverflow(t *testing.T) {
	it := newTestInterpreter(t)
	src := `
(define (count-to n acc)
  (if (= n acc) acc (count-to n (+ acc 1))))
(count-to 100000 0)`
	vals, err := it.EvalString(src)
	if err != nil {
		t.Fatalf("EvalString: %v", err)
	}
	if got := printer.Write(it.Arena, vals[0]); got != "100000" {
		t.Errorf("result = %q, want %q", got, "100000")
	}
}

func TestEvalStringUnboundVariableReportsError(t *testing.T) {
	it := newTestInterpreter(t)
	if _, err := it.EvalString("(+ 1 never-defined)"); err == nil {
		t.Fatal("expected an unbound-variable error")
	}
}

func TestEvalStringCallCC(t *testing.T) {
	it := newTestInterpreter(t)
	src := `(+ 1 (call/cc (lambda (k) (k 10) 999)))`
	vals, err := it.EvalString(src)
	if err != nil {
		t.Fatalf("EvalString: %v", err)
	}
	if got := printer.Write(it.Arena, vals[0]); got != "11" {
		t.Errorf("result = %q, want %q", got, "11")
	}
}

// TestEvalStringSnapshots captures a broader sample of forms with go-snaps,
// mirroring the reference interpreter's own fixture-based snapshot style.
func TestEvalStringSnapshots(t *testing.T) {
	samples := []struct {
		name string
		src  string
	}{
		{"map", `(map (lambda (x) (* x 2)) '(1 2 3))`},
		{"let-star", `(let* ((x 1) (y (+ x 1))) (list x y))`},
		{"named-let", `(let loop ((i 0) (acc '())) (if (= i 5) (reverse acc) (loop (+ i 1) (cons i acc))))`},
		{"quasiquote", "`(1 ,(+ 1 1) ,@(list 3 4))"},
		{"string-append", `(string-append "foo" "bar" "baz")`},
	}

	for _, sample := range samples {
		it := newTestInterpreter(t)
		vals, err := it.EvalString(sample.src)
		if err != nil {
			t.Fatalf("%s: EvalString: %v", sample.name, err)
		}
		out := ""
		if len(vals) > 0 {
			out = printer.Write(it.Arena, vals[0])
		}
		snaps.MatchSnapshot(t, sample.name, out)
	}
}
