package builtins

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/maruel/natural"

	"github.com/cwbudde/goscheme/internal/interp/printer"
	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

// installControl wires the remaining R5RS §6.4/§7.2 control procedures plus
// installPrivileged's placeholder bindings for the VM-privileged set (apply,
// call/cc, dynamic-wind, with-exception-handler, raise, raise-continuable,
// values, call-with-values, eval, force), which need the control stack itself and
// so are actually implemented in the evaluator, not here. gensym's counter
// is process-wide and independent of the
// evaluator's own hygiene-only gensym, since user code calling (gensym) and
// the macro expander's internal renaming must never collide.
func installControl(r *Registry, syms *runtime.SymbolTable) {
	unary := runtime.ArityInfo{Required: 1, Max: 1}

	r.Register("error", runtime.ArityInfo{Required: 1, Max: -1}, biError, CategoryControl, "raise a user error with a message and irritants")
	r.Register("make-promise", unary, biMakePromise, CategoryControl, "wrap a value as an already-forced promise")
	r.Register("identifier?", unary, typePredicate(func(v runtime.Value) bool {
		return v.Kind == runtime.KindSymbol || v.Kind == runtime.KindSyntacticClosure
	}), CategoryExtension, "is the argument usable as a bound name")
	r.Register("gensym", runtime.ArityInfo{Required: 0, Max: 1}, biGensym(syms), CategoryExtension, "a fresh, never-before-interned symbol")
	r.Register("exit", runtime.ArityInfo{Required: 0, Max: 1}, biExit, CategoryExtension, "terminate the process")
	r.Register("environment-bindings", runtime.ArityInfo{Required: 0, Max: 1}, biEnvironmentBindings, CategoryExtension, "the names bound directly in an environment frame")

	installPrivileged(r)
}

// extensionPrivilegedNames marks which of installPrivileged's names are
// interaction-environment-only per spec.md §6's three-tier split: call/cc,
// dynamic-wind, apply, values, call-with-values, force, and eval are
// ordinary R5RS report procedures, but the condition system
// (with-exception-handler, raise, raise-continuable) is grouped with the
// other debugging/extension bindings.
var extensionPrivilegedNames = map[string]bool{
	"with-exception-handler": true,
	"raise":                  true,
	"raise-continuable":      true,
}

// biEnvironmentBindings implements the `environment-bindings` builtin: the
// names bound in one frame (the current
// environment, or an explicit frame Value), naturally ordered so `foo2`
// sorts before `foo10` the way a human scanning the list expects.
func biEnvironmentBindings(a *runtime.Arena, env runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	frame := env
	if len(args) > 0 {
		frame = args[0]
	}
	names := a.Bindings(frame)
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
	out := make([]runtime.Value, len(names))
	for i, n := range names {
		out[i] = a.NewString(n)
	}
	return []runtime.Value{a.SliceToList(out)}, nil
}

// installPrivileged registers placeholder NativeProcedure values for every
// VM-privileged name (call/cc, dynamic-wind, apply, values, raise, eval,
// force, ...). The list below is the same set as evaluator.PrivilegedNames,
// kept here so this package does not import the evaluator. applyProcedure
// intercepts calls to these by
// name before it would ever invoke the Function stored here, so the bodies
// below never actually run in a correctly wired VM — they exist only so
// procedure?, eqv?, and a shadowing (define apply ...) see an ordinary
// first-class procedure sitting in the environment, exactly as the
// evaluator package's own doc comment on PrivilegedNames specifies.
func installPrivileged(r *Registry) {
	variadic := runtime.ArityInfo{Required: 0, Max: -1}
	privilegedNames := []string{
		"call-with-current-continuation", "call/cc",
		"dynamic-wind",
		"with-exception-handler",
		"apply",
		"call-with-values",
		"values",
		"raise", "raise-continuable",
		"eval",
		"force",
	}
	for _, name := range privilegedNames {
		category := CategoryControl
		if extensionPrivilegedNames[name] {
			category = CategoryExtension
		}
		r.Register(name, variadic, privilegedStub(name), category, "VM-privileged primitive")
	}
}

func privilegedStub(name string) runtime.NativeFunc {
	return func(_ *runtime.Arena, _ runtime.Value, _ []runtime.Value) ([]runtime.Value, error) {
		return nil, runtime.NewTypeError("%s: called outside the evaluator's privileged dispatch", name)
	}
}

func biError(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	msg := printer.Display(a, args[0])
	irritants := a.SliceToList(args[1:])
	cond := a.NewCons(args[0], irritants)
	if len(args) > 1 {
		var b strings.Builder
		b.WriteString(msg)
		for _, irr := range args[1:] {
			b.WriteByte(' ')
			b.WriteString(printer.Write(a, irr))
		}
		msg = b.String()
	}
	return nil, runtime.NewUserCondition(cond, msg)
}

// biMakePromise wraps v as an already-forced promise, unless v is already
// one of this implementation's 2-vector promises (see derived.go's
// evalDelay), in which case it's returned unchanged.
func biMakePromise(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	if isPromise(a, args[0]) {
		return []runtime.Value{args[0]}, nil
	}
	return []runtime.Value{a.NewVector([]runtime.Value{runtime.True, args[0]})}, nil
}

func isPromise(a *runtime.Arena, v runtime.Value) bool {
	if v.Kind != runtime.KindVector || a.VectorLen(v) != 2 {
		return false
	}
	flag, err := a.VectorRef(v, 0)
	return err == nil && flag.Kind == runtime.KindBoolean
}

var gensymCounter int64

func biGensym(syms *runtime.SymbolTable) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		tag := "g"
		if len(args) > 0 {
			tag = printer.Display(a, args[0])
		}
		n := atomic.AddInt64(&gensymCounter, 1)
		return []runtime.Value{syms.Intern(tag + strconv.FormatInt(n, 10))}, nil
	}
}

func biExit(_ *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	code := 0
	if len(args) > 0 {
		if args[0].Kind == runtime.KindBoolean && !args[0].Truthy() {
			code = 1
		} else if args[0].Kind == runtime.KindInteger {
			code = int(args[0].AsInt())
		}
	}
	os.Exit(code)
	return nil, nil
}
