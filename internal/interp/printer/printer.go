// Package printer renders runtime Values back to their textual form, the
// write side of read/write/display's round trip (§4.11, R5RS §6.6.3).
// Display renders the human-readable form (strings and characters appear
// literally); Write renders the machine-readable external representation
// R5RS calls for (strings quoted and escaped, characters as #\-literals) —
// the same split the teacher's runtime Value.String() methods made between
// a debug form and a user-facing one, generalized here to Scheme's own
// two-mode convention instead of collapsing to a single String().
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

// Display renders v the way `display` does: strings and characters appear
// as their own contents, with no quoting.
func Display(a *runtime.Arena, v runtime.Value) string {
	var b strings.Builder
	render(&b, a, v, false, make(map[runtime.Value]bool))
	return b.String()
}

// Write renders v the way `write` does: the external representation that,
// read back, reproduces an equal? value — strings quoted and escaped,
// characters as #\-literals.
func Write(a *runtime.Arena, v runtime.Value) string {
	var b strings.Builder
	render(&b, a, v, true, make(map[runtime.Value]bool))
	return b.String()
}

func render(b *strings.Builder, a *runtime.Arena, v runtime.Value, write bool, seen map[runtime.Value]bool) {
	switch v.Kind {
	case runtime.KindUndefined:
		b.WriteString("#<unspecified>")
	case runtime.KindBoolean:
		if v.Truthy() {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case runtime.KindCharacter:
		if write {
			b.WriteString(charLiteral(v.AsChar()))
		} else {
			b.WriteRune(v.AsChar())
		}
	case runtime.KindInteger:
		b.WriteString(strconv.FormatInt(v.AsInt(), 10))
	case runtime.KindRational:
		b.WriteString(a.Rational(v).RatString())
	case runtime.KindReal:
		b.WriteString(formatReal(a.Real(v)))
	case runtime.KindComplex:
		c := a.Complex(v)
		im := formatReal(imag(c))
		if !strings.HasPrefix(im, "-") && !strings.HasPrefix(im, "+") {
			im = "+" + im
		}
		fmt.Fprintf(b, "%s%si", formatReal(real(c)), im)
	case runtime.KindSymbol:
		b.WriteString(a.SymbolName(v))
	case runtime.KindString:
		if write {
			writeQuotedString(b, a.String(v))
		} else {
			b.WriteString(a.String(v))
		}
	case runtime.KindCons:
		renderList(b, a, v, write, seen)
	case runtime.KindVector:
		b.WriteString("#(")
		items := a.Vector(v).Items
		for i, item := range items {
			if i > 0 {
				b.WriteByte(' ')
			}
			render(b, a, item, write, seen)
		}
		b.WriteByte(')')
	case runtime.KindIProcedure, runtime.KindNProcedure:
		name := a.ProcedureName(v)
		if name == "" {
			name = "anonymous"
		}
		fmt.Fprintf(b, "#<procedure %s>", name)
	case runtime.KindContinuation:
		b.WriteString("#<continuation>")
	case runtime.KindEnv:
		b.WriteString("#<environment>")
	case runtime.KindInputPort:
		b.WriteString("#<input-port>")
	case runtime.KindOutputPort:
		b.WriteString("#<output-port>")
	case runtime.KindSyntaxRules:
		b.WriteString("#<macro>")
	case runtime.KindSyntacticClosure:
		render(b, a, a.StripSyntax(v), write, seen)
	default:
		fmt.Fprintf(b, "#<%s>", v.Kind)
	}
}

func renderList(b *strings.Builder, a *runtime.Arena, v runtime.Value, write bool, seen map[runtime.Value]bool) {
	if v.IsNil() {
		b.WriteString("()")
		return
	}
	if seen[v] {
		b.WriteString("...")
		return
	}
	seen[v] = true
	b.WriteByte('(')
	first := true
	cur := v
	for cur.Kind == runtime.KindCons && !cur.IsNil() {
		if !first {
			if seen[cur] {
				b.WriteString(" . ...")
				cur = runtime.Nil
				break
			}
			seen[cur] = true
			b.WriteByte(' ')
		}
		first = false
		c := a.Cons(cur)
		render(b, a, c.Car, write, seen)
		cur = c.Cdr
	}
	if cur.Kind != runtime.KindCons || !cur.IsNil() {
		b.WriteString(" . ")
		render(b, a, cur, write, seen)
	}
	b.WriteByte(')')
}

func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += "."
	}
	return s
}

func writeQuotedString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
}

var namedChars = map[rune]string{
	' ':      "space",
	'\n':     "newline",
	'\t':     "tab",
	0:        "nul",
	127:      "delete",
	'\r':     "return",
	'\x1b':   "escape",
	'\x07':   "alarm",
	'\x08':   "backspace",
}

func charLiteral(c rune) string {
	if name, ok := namedChars[c]; ok {
		return "#\\" + name
	}
	return "#\\" + string(c)
}
