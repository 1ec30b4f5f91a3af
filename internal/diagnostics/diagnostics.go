// Package diagnostics formats conditions surfaced to the host — reader
// syntax errors and evaluator runtime errors — the way the reference
// interpreter's internal/errors.CompilerError does: a position header, a
// source-context excerpt, and a caret, with an optional JSON rendering for
// tooling that wants structured output instead of text.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/cwbudde/goscheme/internal/interp/reader"
	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

// Diagnostic is a condition paired with the source it was read from, ready
// to be formatted for a terminal or serialized to JSON.
type Diagnostic struct {
	Message string
	Source  string
	File    string
	Line    int // 0 when the underlying error carries no position
	Column  int
	Kind    string // "syntax-error", "numeric-error", ... mirrors runtime.ErrorCategory
}

// FromError classifies err into a Diagnostic. A *reader.SyntaxError carries
// a source position; a *runtime.RuntimeError carries a category but (in
// this implementation) no position, since the VM does not thread source
// locations through evaluation — only the reader does.
func FromError(err error, source, file string) *Diagnostic {
	d := &Diagnostic{Message: err.Error(), Source: source, File: file, Kind: "error"}
	switch e := err.(type) {
	case *reader.SyntaxError:
		d.Line, d.Column = e.Pos.Line, e.Pos.Column
		d.Kind = "syntax-error"
		d.Message = e.Msg
	case *runtime.RuntimeError:
		d.Kind = string(e.Category)
		d.Message = e.Message
	}
	return d
}

// Format renders the diagnostic the way CompilerError.Format does: a
// position header, the offending source line with a line-number gutter,
// and a caret under the column — color optionally via ANSI escapes for a
// terminal.
func (d *Diagnostic) Format(color bool) string {
	var b strings.Builder

	if d.File != "" {
		fmt.Fprintf(&b, "Error in %s", d.File)
	} else {
		fmt.Fprint(&b, "Error")
	}
	if d.Line > 0 {
		fmt.Fprintf(&b, " at %d:%d", d.Line, d.Column)
	}
	b.WriteByte('\n')

	if line := d.sourceLine(); line != "" {
		gutter := fmt.Sprintf("%4d | ", d.Line)
		b.WriteString(gutter)
		b.WriteString(line)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", len(gutter)+d.Column-1))
		if color {
			b.WriteString("\033[1;31m")
		}
		b.WriteByte('^')
		if color {
			b.WriteString("\033[0m")
		}
		b.WriteByte('\n')
	}

	if color {
		b.WriteString("\033[1m")
	}
	b.WriteString(d.Message)
	if color {
		b.WriteString("\033[0m")
	}
	return b.String()
}

func (d *Diagnostic) sourceLine() string {
	if d.Source == "" || d.Line < 1 {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if d.Line > len(lines) {
		return ""
	}
	return lines[d.Line-1]
}

// JSON renders the diagnostic as a JSON object for --json-errors, built
// incrementally with sjson rather than a struct tagged for
// encoding/json, matching how the rest of this project reaches for
// tidwall/sjson over the standard marshaler wherever a document is
// assembled field-by-field.
func (d *Diagnostic) JSON() (string, error) {
	doc := "{}"
	var err error
	for _, set := range []struct {
		path string
		val  any
	}{
		{"message", d.Message},
		{"kind", d.Kind},
		{"file", d.File},
		{"line", d.Line},
		{"column", d.Column},
	} {
		doc, err = sjson.Set(doc, set.path, set.val)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
