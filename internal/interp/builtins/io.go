package builtins

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cwbudde/goscheme/internal/interp/printer"
	"github.com/cwbudde/goscheme/internal/interp/reader"
	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

// installIO wires R5RS §6.6's input/output operations. currentOutput and
// currentInput are captured by the closures below rather than looked up
// through a dynamic parameter each call, since this implementation does not
// model current-output-port/current-input-port as a true dynamic binding —
// a documented simplification, recorded in DESIGN.md, over R5RS's
// parameter-object semantics.
func installIO(r *Registry, syms *runtime.SymbolTable, currentOutput, currentInput runtime.Value) {
	r.Register("display", runtime.ArityInfo{Required: 1, Max: 2}, portWriter(currentOutput, printer.Display), CategoryIO, "write a value in human-readable form")
	r.Register("write", runtime.ArityInfo{Required: 1, Max: 2}, portWriter(currentOutput, printer.Write), CategoryIO, "write a value in re-readable form")
	r.Register("newline", runtime.ArityInfo{Required: 0, Max: 1}, biNewline(currentOutput), CategoryIO, "write a line break")
	r.Register("write-char", runtime.ArityInfo{Required: 1, Max: 2}, biWriteChar(currentOutput), CategoryIO, "write a single character")
	r.Register("write-string", runtime.ArityInfo{Required: 1, Max: 2}, portWriter(currentOutput, func(a *runtime.Arena, v runtime.Value) string { return a.String(v) }), CategoryIO, "write a string's characters without quoting")

	r.Register("current-output-port", runtime.ArityInfo{Required: 0, Max: 0}, constValue(currentOutput), CategoryIO, "the default output port")
	r.Register("current-input-port", runtime.ArityInfo{Required: 0, Max: 0}, constValue(currentInput), CategoryIO, "the default input port")
	r.Register("open-output-string", runtime.ArityInfo{Required: 0, Max: 0}, biOpenOutputString, CategoryIO, "a new in-memory output port")
	r.Register("get-output-string", runtime.ArityInfo{Required: 1, Max: 1}, biGetOutputString, CategoryIO, "the text accumulated on a string output port")
	r.Register("open-input-string", runtime.ArityInfo{Required: 1, Max: 1}, biOpenInputString, CategoryIO, "an input port reading from a string")
	r.Register("close-port", runtime.ArityInfo{Required: 1, Max: 1}, biClosePort, CategoryIO, "close an input or output port")
	r.Register("port?", runtime.ArityInfo{Required: 1, Max: 1}, typePredicate(func(v runtime.Value) bool {
		return v.Kind == runtime.KindInputPort || v.Kind == runtime.KindOutputPort
	}), CategoryIO, "is the argument a port")
	r.Register("input-port?", runtime.ArityInfo{Required: 1, Max: 1}, typePredicate(func(v runtime.Value) bool { return v.Kind == runtime.KindInputPort }), CategoryIO, "is the argument an input port")
	r.Register("output-port?", runtime.ArityInfo{Required: 1, Max: 1}, typePredicate(func(v runtime.Value) bool { return v.Kind == runtime.KindOutputPort }), CategoryIO, "is the argument an output port")

	r.Register("read", runtime.ArityInfo{Required: 0, Max: 1}, biRead(syms, currentInput), CategoryIO, "parse and return the next datum from a port")
	r.Register("read-char", runtime.ArityInfo{Required: 0, Max: 1}, biReadChar(currentInput, false), CategoryIO, "consume and return the next character")
	r.Register("peek-char", runtime.ArityInfo{Required: 0, Max: 1}, biReadChar(currentInput, true), CategoryIO, "return the next character without consuming it")
	r.Register("read-line", runtime.ArityInfo{Required: 0, Max: 1}, biReadLine(currentInput), CategoryIO, "consume and return a line of text")
	r.Register("eof-object?", runtime.ArityInfo{Required: 1, Max: 1}, typePredicate(func(v runtime.Value) bool {
		return v.Kind == runtime.KindNotation && v.NotationTag() == runtime.NotationEOF
	}), CategoryIO, "is the argument the end-of-file marker")
	r.Register("eof-object", runtime.ArityInfo{Required: 0, Max: 0}, constValue(runtime.Eof), CategoryIO, "the end-of-file object")
}

func resolvePort(a *runtime.Arena, args []runtime.Value, idx int, fallback runtime.Value) runtime.Value {
	if len(args) > idx {
		return args[idx]
	}
	return fallback
}

func portWriter(fallback runtime.Value, format func(*runtime.Arena, runtime.Value) string) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		port := resolvePort(a, args, 1, fallback)
		p := a.OutputPort(port)
		if p == nil {
			return nil, runtime.NewTypeError("not an output port")
		}
		io.WriteString(p.W, format(a, args[0]))
		return []runtime.Value{runtime.Undefined}, nil
	}
}

func biNewline(fallback runtime.Value) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		port := resolvePort(a, args, 0, fallback)
		p := a.OutputPort(port)
		if p == nil {
			return nil, runtime.NewTypeError("not an output port")
		}
		io.WriteString(p.W, "\n")
		return []runtime.Value{runtime.Undefined}, nil
	}
}

func biWriteChar(fallback runtime.Value) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		port := resolvePort(a, args, 1, fallback)
		p := a.OutputPort(port)
		if p == nil {
			return nil, runtime.NewTypeError("not an output port")
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], args[0].AsChar())
		p.W.Write(buf[:n])
		return []runtime.Value{runtime.Undefined}, nil
	}
}

func constValue(v runtime.Value) runtime.NativeFunc {
	return func(_ *runtime.Arena, _ runtime.Value, _ []runtime.Value) ([]runtime.Value, error) {
		return []runtime.Value{v}, nil
	}
}

func biOpenOutputString(a *runtime.Arena, _ runtime.Value, _ []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{a.NewOutputPort(&stringSink{}, "string")}, nil
}

func biGetOutputString(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	p := a.OutputPort(args[0])
	if p == nil {
		return nil, runtime.NewTypeError("not an output port")
	}
	sink, ok := p.W.(*stringSink)
	if !ok {
		return nil, runtime.NewTypeError("get-output-string: not a string output port")
	}
	return []runtime.Value{a.NewString(sink.buf.String())}, nil
}

func biOpenInputString(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{a.NewInputPort(newStringReader(a.String(args[0])), "string")}, nil
}

func biClosePort(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	a.ClosePort(args[0])
	return []runtime.Value{runtime.Undefined}, nil
}

func biReadChar(fallback runtime.Value, peek bool) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		port := resolvePort(a, args, 0, fallback)
		p := a.InputPort(port)
		if p == nil {
			return nil, runtime.NewTypeError("not an input port")
		}
		if peek {
			c, _, err := p.R.ReadRune()
			if err != nil {
				return []runtime.Value{runtime.Eof}, nil
			}
			p.R.UnreadRune()
			return []runtime.Value{runtime.Char(c)}, nil
		}
		c, _, err := p.R.ReadRune()
		if err != nil {
			return []runtime.Value{runtime.Eof}, nil
		}
		return []runtime.Value{runtime.Char(c)}, nil
	}
}

// biRead parses one datum per call from the port's underlying *bufio.Reader,
// so repeated calls against the same port resume exactly where the last
// one stopped — the same incremental contract read-char and read-line give.
func biRead(syms *runtime.SymbolTable, fallback runtime.Value) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		port := resolvePort(a, args, 0, fallback)
		p := a.InputPort(port)
		if p == nil {
			return nil, runtime.NewTypeError("not an input port")
		}
		v, err := reader.New(a, syms, p.R).Read()
		if err != nil {
			return nil, runtime.NewSyntaxError("%s", err)
		}
		return []runtime.Value{v}, nil
	}
}

func biReadLine(fallback runtime.Value) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		port := resolvePort(a, args, 0, fallback)
		p := a.InputPort(port)
		if p == nil {
			return nil, runtime.NewTypeError("not an input port")
		}
		line, err := p.R.ReadString('\n')
		if line == "" && err != nil {
			return []runtime.Value{runtime.Eof}, nil
		}
		return []runtime.Value{a.NewString(strings.TrimSuffix(line, "\n"))}, nil
	}
}

// stringSink backs open-output-string: an io.Writer over a growable
// buffer, since runtime.OutputPort only needs an io.Writer and Scheme's
// string ports are exactly that plus a way to read the result back.
type stringSink struct{ buf strings.Builder }

func (s *stringSink) Write(p []byte) (int, error) { return s.buf.Write(p) }

func newStringReader(s string) io.Reader { return strings.NewReader(s) }

// standardPorts builds the process-wide stdout/stdin ports every starting
// environment installs current-output-port/current-input-port against.
func standardPorts(a *runtime.Arena) (output, input runtime.Value) {
	return a.NewOutputPort(os.Stdout, "stdout"), a.NewInputPort(os.Stdin, "stdin")
}
