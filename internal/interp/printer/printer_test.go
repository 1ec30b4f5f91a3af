package printer

import (
	"testing"

	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

func TestDisplayAndWriteDivergeOnStrings(t *testing.T) {
	a := runtime.NewArena()
	s := a.NewString("a\nb")

	if got := Display(a, s); got != "a\nb" {
		t.Errorf("Display(string) = %q, want literal contents", got)
	}
	if got := Write(a, s); got != `"a\nb"` {
		t.Errorf("Write(string) = %q, want quoted and escaped", got)
	}
}

func TestDisplayAndWriteDivergeOnCharacters(t *testing.T) {
	a := runtime.NewArena()
	c := runtime.Char(' ')

	if got := Display(a, c); got != " " {
		t.Errorf("Display(char) = %q, want a literal space", got)
	}
	if got := Write(a, c); got != `#\space` {
		t.Errorf("Write(char) = %q, want %q", got, `#\space`)
	}
}

func TestWriteRendersBooleansAndNumbers(t *testing.T) {
	a := runtime.NewArena()
	cases := []struct {
		v    runtime.Value
		want string
	}{
		{runtime.Bool(true), "#t"},
		{runtime.Bool(false), "#f"},
		{runtime.Int(42), "42"},
		{a.NewReal(1.0), "1."},
	}
	for _, c := range cases {
		if got := Write(a, c.v); got != c.want {
			t.Errorf("Write(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestWriteRendersProperAndDottedLists(t *testing.T) {
	a := runtime.NewArena()
	proper := a.SliceToList([]runtime.Value{runtime.Int(1), runtime.Int(2), runtime.Int(3)})
	if got := Write(a, proper); got != "(1 2 3)" {
		t.Errorf("Write(proper) = %q, want %q", got, "(1 2 3)")
	}

	dotted := a.NewCons(runtime.Int(1), runtime.Int(2))
	if got := Write(a, dotted); got != "(1 . 2)" {
		t.Errorf("Write(dotted) = %q, want %q", got, "(1 . 2)")
	}

	if got := Write(a, runtime.Nil); got != "()" {
		t.Errorf("Write(Nil) = %q, want ()", got)
	}
}

func TestWriteRendersVectors(t *testing.T) {
	a := runtime.NewArena()
	v := a.NewVector([]runtime.Value{runtime.Int(1), runtime.Int(2)})
	if got := Write(a, v); got != "#(1 2)" {
		t.Errorf("Write(vector) = %q, want %q", got, "#(1 2)")
	}
}

func TestWriteHandlesCircularListsWithoutLooping(t *testing.T) {
	a := runtime.NewArena()
	cell := a.NewCons(runtime.Int(1), runtime.Nil)
	a.Cons(cell).Cdr = cell // circular: cell's cdr points back to itself

	if got := Write(a, cell); got == "" {
		t.Error("Write on a circular list returned an empty string")
	}
}

func TestWriteRendersProcedureWithName(t *testing.T) {
	a := runtime.NewArena()
	p := a.NewNativeProcedure("car", runtime.ArityInfo{Required: 1, Max: 1}, func(*runtime.Arena, runtime.Value, []runtime.Value) ([]runtime.Value, error) {
		return nil, nil
	})
	if got := Write(a, p); got != "#<procedure car>" {
		t.Errorf("Write(procedure) = %q, want %q", got, "#<procedure car>")
	}
}
