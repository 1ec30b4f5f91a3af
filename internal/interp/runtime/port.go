package runtime

import (
	"bufio"
	"io"
)

// InputPort wraps a bufio.Reader so the reader (§4.11) can push back a
// rune when it over-reads while tokenizing, and so `read-char`/`peek-char`
// share one buffering layer regardless of the underlying source (stdin, a
// string port, a file).
type InputPort struct {
	R      *bufio.Reader
	Name   string
	closed bool
}

// Trace reports no referenced Values; ports are atomic.
func (p *InputPort) Trace(func(Value)) {}

// OutputPort wraps an io.Writer for `write`, `display`, and `write-char`.
type OutputPort struct {
	W      io.Writer
	Name   string
	closed bool
}

// Trace reports no referenced Values; ports are atomic.
func (p *OutputPort) Trace(func(Value)) {}

// NewInputPort allocates an input port over r.
func (a *Arena) NewInputPort(r io.Reader, name string) Value {
	return a.alloc(KindInputPort, &InputPort{R: bufio.NewReader(r), Name: name})
}

// NewOutputPort allocates an output port over w.
func (a *Arena) NewOutputPort(w io.Writer, name string) Value {
	return a.alloc(KindOutputPort, &OutputPort{W: w, Name: name})
}

// InputPort resolves a KindInputPort Value to its payload.
func (a *Arena) InputPort(v Value) *InputPort {
	e := a.lookup(v)
	if e == nil {
		return nil
	}
	p, _ := e.Obj.(*InputPort)
	return p
}

// OutputPort resolves a KindOutputPort Value to its payload.
func (a *Arena) OutputPort(v Value) *OutputPort {
	e := a.lookup(v)
	if e == nil {
		return nil
	}
	p, _ := e.Obj.(*OutputPort)
	return p
}

// ClosePort marks a port closed; further reads or writes are io-errors.
// Closing is idempotent.
func (a *Arena) ClosePort(v Value) {
	switch v.Kind {
	case KindInputPort:
		if p := a.InputPort(v); p != nil {
			p.closed = true
		}
	case KindOutputPort:
		if p := a.OutputPort(v); p != nil {
			p.closed = true
		}
	}
}

// PortOpen reports whether a port is still usable.
func (a *Arena) PortOpen(v Value) bool {
	switch v.Kind {
	case KindInputPort:
		p := a.InputPort(v)
		return p != nil && !p.closed
	case KindOutputPort:
		p := a.OutputPort(v)
		return p != nil && !p.closed
	default:
		return false
	}
}
