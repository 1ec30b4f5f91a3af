package interp

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/goscheme/internal/interp/builtins"
	"github.com/cwbudde/goscheme/internal/interp/evaluator"
	"github.com/cwbudde/goscheme/internal/interp/reader"
	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

// Interpreter is one self-contained Scheme world: its own arena, symbol
// table, global environment, and VM. Programs never share these across
// Interpreter values — every field a running program can mutate (the
// heap, the environment, the VM's control stack) lives here, not in a
// package-level variable, so multiple Interpreters can run independently
// in the same process.
type Interpreter struct {
	Arena   *runtime.Arena
	Symbols *runtime.SymbolTable
	Env     runtime.Value
	VM      *evaluator.VM

	loadPath []string
}

// New builds an Interpreter with a fresh global environment: the native
// registry and Scheme-source prelude from package builtins are installed
// first, then a `load` procedure is wired in directly (it needs the reader
// and the VM's own Eval, so it can't live in package builtins without
// that package importing this one).
func New(opts Options) (*Interpreter, error) {
	a := runtime.NewArena()
	syms := runtime.NewSymbolTable(a)
	env := a.NewEnv()

	builtins.Install(a, syms, env)

	vm := evaluator.NewVM(a, syms, env)
	vm.SetGCInterval(opts.GCInterval)

	it := &Interpreter{Arena: a, Symbols: syms, Env: env, VM: vm, loadPath: opts.LoadPath}

	if _, err := it.EvalString(builtins.Prelude); err != nil {
		return nil, fmt.Errorf("evaluating prelude: %w", err)
	}

	a.LocalSet(env, syms.Intern("load"), a.NewNativeProcedure("load", runtime.ArityInfo{Required: 1, Max: 1}, it.biLoad))

	return it, nil
}

// EvalString reads every datum out of source and evaluates each in turn
// against the global environment, returning the last form's values (or
// nil if source held no forms at all).
func (it *Interpreter) EvalString(source string) ([]runtime.Value, error) {
	r := reader.NewFromString(it.Arena, it.Symbols, source)
	return it.evalForms(r)
}

// EvalPort behaves like EvalString but reads from an already-open port,
// the shape the REPL and `load` both need: a live *bufio.Reader that the
// reader resumes against one datum at a time.
func (it *Interpreter) EvalPort(src *bufio.Reader) ([]runtime.Value, error) {
	r := reader.New(it.Arena, it.Symbols, src)
	return it.evalForms(r)
}

// ReadEval parses and evaluates exactly one datum off src, for a REPL loop
// that wants to print each result (or report each error) as it happens and
// keep prompting afterward, rather than running a whole port to completion
// the way EvalPort/LoadFile do. eof is true once src has no more data; in
// that case vals and err are both nil.
func (it *Interpreter) ReadEval(src *bufio.Reader) (vals []runtime.Value, eof bool, err error) {
	form, err := reader.New(it.Arena, it.Symbols, src).Read()
	if err != nil {
		return nil, false, err
	}
	if form.Kind == runtime.KindNotation && form.NotationTag() == runtime.NotationEOF {
		return nil, true, nil
	}
	vals, err = it.VM.Eval(form, it.Env)
	return vals, false, err
}

func (it *Interpreter) evalForms(r *reader.Reader) ([]runtime.Value, error) {
	var last []runtime.Value
	for {
		form, err := r.Read()
		if err != nil {
			return nil, err
		}
		if form.Kind == runtime.KindNotation && form.NotationTag() == runtime.NotationEOF {
			return last, nil
		}
		vals, err := it.VM.Eval(form, it.Env)
		if err != nil {
			return nil, err
		}
		last = vals
	}
}

// LoadFile reads and evaluates path in full, per-datum, the way the CLI's
// `run` command and the `load` procedure both do.
func (it *Interpreter) LoadFile(path string) ([]runtime.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return it.EvalPort(bufio.NewReader(f))
}

// biLoad implements R5RS `load`: given a library name or path, first try it
// literally (as given, or relative to the current directory), then each
// directory in the configured load-path in order, and evaluate the first
// file found.
func (it *Interpreter) biLoad(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	name := a.String(args[0])
	for _, candidate := range it.candidatePaths(name) {
		if _, err := os.Stat(candidate); err == nil {
			vals, err := it.LoadFile(candidate)
			if err != nil {
				return nil, err
			}
			return vals, nil
		}
	}
	return nil, runtime.NewIOError("load: cannot find %q", name)
}

func (it *Interpreter) candidatePaths(name string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}
	paths := make([]string, 0, len(it.loadPath)+1)
	paths = append(paths, name)
	for _, dir := range it.loadPath {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}
