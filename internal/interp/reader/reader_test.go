package reader

import (
	"bufio"
	"strings"
	"testing"

	"github.com/cwbudde/goscheme/internal/interp/printer"
	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

func readOne(t *testing.T, input string) (runtime.Value, *runtime.Arena) {
	t.Helper()
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	v, err := NewFromString(a, syms, input).Read()
	if err != nil {
		t.Fatalf("Read(%q): %v", input, err)
	}
	return v, a
}

func TestReadDatumRoundTrips(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", "42", "42"},
		{"negative integer", "-17", "-17"},
		{"hex integer", "#x2A", "42"},
		{"rational", "1/2", "1/2"},
		{"real", "3.14", "3.14"},
		{"symbol", "foo-bar?", "foo-bar?"},
		{"empty list", "()", "()"},
		{"simple list", "(1 2 3)", "(1 2 3)"},
		{"dotted pair", "(1 . 2)", "(1 . 2)"},
		{"nested list", "(1 (2 3) 4)", "(1 (2 3) 4)"},
		{"quote shorthand", "'foo", "(quote foo)"},
		{"quasiquote shorthand", "`(a ,b ,@c)", "(quasiquote (a (unquote b) (unquote-splicing c)))"},
		{"string", `"hello\nworld"`, `"hello\nworld"`},
		{"boolean true", "#t", "#t"},
		{"boolean false", "#f", "#f"},
		{"character", `#\a`, `#\a`},
		{"named character", `#\space`, `#\space`},
		{"vector", "#(1 2 3)", "#(1 2 3)"},
		{"line comment skipped", "; comment\n42", "42"},
		{"block comment skipped", "#| nested #| comment |# |# 42", "42"},
		{"datum comment skipped", "(1 #;2 3)", "(1 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, a := readOne(t, tt.input)
			if got := printer.Write(a, v); got != tt.want {
				t.Errorf("Read(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadReturnsEofOnEmptySource(t *testing.T) {
	v, _ := readOne(t, "   ")
	if v.Kind != runtime.KindNotation || v.NotationTag() != runtime.NotationEOF {
		t.Errorf("Read on empty source = %v, want Eof", v)
	}
}

func TestReadResumesAcrossCallsOnLivePort(t *testing.T) {
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	src := bufio.NewReader(strings.NewReader("1 2 3"))

	var got []string
	for {
		v, err := New(a, syms, src).Read()
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if v.Kind == runtime.KindNotation && v.NotationTag() == runtime.NotationEOF {
			break
		}
		got = append(got, printer.Write(a, v))
	}

	want := []string{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("form %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadRejectsUnmatchedCloseParen(t *testing.T) {
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	_, err := NewFromString(a, syms, ")").Read()
	if err == nil {
		t.Fatal("expected a SyntaxError for an unmatched close paren")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Errorf("err = %T, want *SyntaxError", err)
	}
}
