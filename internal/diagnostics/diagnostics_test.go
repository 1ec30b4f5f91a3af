package diagnostics

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/cwbudde/goscheme/internal/interp/reader"
	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

func TestFromErrorClassifiesSyntaxError(t *testing.T) {
	src := "(foo\n  bar"
	synErr := &reader.SyntaxError{Pos: reader.Position{Line: 2, Column: 3}, Msg: "unterminated list"}

	d := FromError(synErr, src, "test.scm")
	if d.Kind != "syntax-error" {
		t.Errorf("Kind = %q, want syntax-error", d.Kind)
	}
	if d.Line != 2 || d.Column != 3 {
		t.Errorf("position = %d:%d, want 2:3", d.Line, d.Column)
	}
	if d.Message != "unterminated list" {
		t.Errorf("Message = %q", d.Message)
	}
}

func TestFromErrorClassifiesRuntimeError(t *testing.T) {
	rerr := runtime.NewUnboundVariableError("foo")
	d := FromError(rerr, "", "")
	if d.Kind != string(runtime.CategoryUnbound) {
		t.Errorf("Kind = %q, want %q", d.Kind, runtime.CategoryUnbound)
	}
	if d.Line != 0 {
		t.Errorf("Line = %d, want 0 (runtime errors carry no position)", d.Line)
	}
}

func TestFormatIncludesSourceContextAndCaret(t *testing.T) {
	d := &Diagnostic{
		Message: "unexpected token",
		Source:  "(define x\n  (+ 1 ))",
		File:    "test.scm",
		Line:    2,
		Column:  8,
		Kind:    "syntax-error",
	}
	out := d.Format(false)
	if !strings.Contains(out, "test.scm") {
		t.Errorf("Format output missing file name: %q", out)
	}
	if !strings.Contains(out, "(+ 1 ))") {
		t.Errorf("Format output missing source line: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("Format output missing caret: %q", out)
	}
}

func TestJSONIsQueryableWithGJSON(t *testing.T) {
	d := &Diagnostic{Message: "unbound variable: x", Kind: "unbound-variable", File: "a.scm", Line: 3, Column: 1}
	doc, err := d.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if got := gjson.Get(doc, "message").String(); got != d.Message {
		t.Errorf("message = %q, want %q", got, d.Message)
	}
	if got := gjson.Get(doc, "line").Int(); got != 3 {
		t.Errorf("line = %d, want 3", got)
	}
	if got := gjson.Get(doc, "kind").String(); got != "unbound-variable" {
		t.Errorf("kind = %q, want unbound-variable", got)
	}
}
