package evaluator

import "github.com/cwbudde/goscheme/internal/interp/runtime"

// PrivilegedNames lists the procedures that need direct VM access rather
// than the arena-and-arguments-only NativeFunc signature: they apply
// another procedure and resume around its result (call/cc, dynamic-wind,
// with-exception-handler, apply, call-with-values, force) or touch the
// control stack directly (raise, eval). The builtins package registers
// them as ordinary first-class NativeProcedure values — callable, passable,
// redefinable-by-shadowing like anything else — so procedure? and eqv? see
// them as real procedures; applyProcedure simply intercepts the call by
// name before it would otherwise invoke their (unused) NativeFunc.
var PrivilegedNames = []string{
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

func isPrivileged(name string) bool {
	for _, n := range PrivilegedNames {
		if n == name {
			return true
		}
	}
	return false
}

// applyPrivileged implements the primitives in PrivilegedNames. Every case
// that needs to run another procedure and look at the result (dynamic-wind,
// with-exception-handler, force, call-with-values) uses runToCompletion rather than
// leaving the inner call in tail position relative to the primitive — see
// runToCompletion's doc comment for why, and DESIGN.md for the resulting
// scope limitation on continuations that try to escape across one of these
// boundaries.
func (vm *VM) applyPrivileged(name string, _ runtime.Value, args []runtime.Value, tail bool) stepResult {
	switch name {
	case "call-with-current-continuation", "call/cc":
		if len(args) != 1 {
			return failWith(runtime.NewArityError(name, 1, 1, len(args)))
		}
		k := vm.captureContinuation()
		return vm.applyProcedure(args[0], []runtime.Value{k}, tail)

	case "dynamic-wind":
		if len(args) != 3 {
			return failWith(runtime.NewArityError(name, 3, 3, len(args)))
		}
		before, main, after := args[0], args[1], args[2]
		if _, err := vm.runToCompletion(before, nil); err != nil {
			return failWith(err)
		}
		vm.Winds = append(vm.Winds, WindEntry{Before: before, After: after})
		mainVals, mainErr := vm.runToCompletion(main, nil)
		if len(vm.Winds) > 0 {
			vm.Winds = vm.Winds[:len(vm.Winds)-1]
		}
		if _, err := vm.runToCompletion(after, nil); err != nil {
			return failWith(err)
		}
		if mainErr != nil {
			return failWith(mainErr)
		}
		return doneWith(mainVals...)

	case "with-exception-handler":
		if len(args) != 2 {
			return failWith(runtime.NewArityError(name, 2, 2, len(args)))
		}
		handler, thunk := args[0], args[1]
		vm.Handlers = append(vm.Handlers, handler)
		vals, err := vm.runToCompletion(thunk, nil)
		installed := len(vm.Handlers) > 0 && vm.Handlers[len(vm.Handlers)-1] == handler
		if err != nil && installed {
			// Something other than an explicit raise propagated straight out
			// of the thunk (error, an unbound variable, ...); the raise case
			// below already consults tryHandle itself, so reaching here with
			// the handler still installed means nothing did yet. Give it the
			// same chance raise would have.
			if _, hvals, ok := vm.tryHandle(err); ok {
				return doneWith(hvals...)
			}
			return failWith(err)
		}
		if installed {
			vm.Handlers = vm.Handlers[:len(vm.Handlers)-1]
		}
		if err != nil {
			return failWith(err)
		}
		return doneWith(vals...)

	case "apply":
		if len(args) < 2 {
			return failWith(runtime.NewArityError(name, 2, -1, len(args)))
		}
		proc := args[0]
		flat := append([]runtime.Value(nil), args[1:len(args)-1]...)
		tailList, ok := vm.Arena.ListToSlice(args[len(args)-1])
		if !ok {
			return failWith(runtime.NewTypeError("apply: last argument must be a proper list"))
		}
		flat = append(flat, tailList...)
		return vm.applyProcedure(proc, flat, tail)

	case "call-with-values":
		if len(args) != 2 {
			return failWith(runtime.NewArityError(name, 2, 2, len(args)))
		}
		produced, err := vm.runToCompletion(args[0], nil)
		if err != nil {
			return failWith(err)
		}
		return vm.applyProcedure(args[1], produced, tail)

	case "values":
		return doneWith(args...)

	case "raise", "raise-continuable":
		irritant := runtime.Undefined
		if len(args) > 0 {
			irritant = args[0]
		}
		err := runtime.NewUserCondition(irritant, "raised condition")
		// tryHandle must run here, with the handler still on top of
		// vm.Handlers, rather than bubbling err as a Go error: by the time
		// that would unwind back out through with-exception-handler's
		// runToCompletion call, the handler has already been popped.
		_, vals, ok := vm.tryHandle(err)
		if !ok {
			return failWith(err)
		}
		return doneWith(vals...)

	case "eval":
		if len(args) < 1 {
			return failWith(runtime.NewArityError(name, 1, 2, len(args)))
		}
		env := vm.Env
		if len(args) > 1 && args[1].Kind == runtime.KindEnv {
			env = args[1]
		}
		return contTo(args[0], env)

	case "force":
		if len(args) != 1 {
			return failWith(runtime.NewArityError(name, 1, 1, len(args)))
		}
		return vm.force(args[0])

	default:
		return failWith(runtime.NewTypeError("internal: unregistered privileged procedure %q", name))
	}
}

// force resolves a promise built by `delay`: a two-element vector of
// (#f . thunk) until first forced, then (#t . value) forever after —
// R5RS's memoization requirement for delay/force.
func (vm *VM) force(v runtime.Value) stepResult {
	if v.Kind != runtime.KindVector || vm.Arena.VectorLen(v) != 2 {
		return doneWith(v)
	}
	forced, _ := vm.Arena.VectorRef(v, 0)
	if forced.Truthy() {
		cached, _ := vm.Arena.VectorRef(v, 1)
		return doneWith(cached)
	}
	thunk, _ := vm.Arena.VectorRef(v, 1)
	vals, err := vm.runToCompletion(thunk, nil)
	if err != nil {
		return failWith(err)
	}
	result := runtime.Undefined
	if len(vals) > 0 {
		result = vals[0]
	}
	vm.Arena.VectorSet(v, 0, runtime.True)
	vm.Arena.VectorSet(v, 1, result)
	return doneWith(result)
}
