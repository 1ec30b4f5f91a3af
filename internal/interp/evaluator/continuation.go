package evaluator

import "github.com/cwbudde/goscheme/internal/interp/runtime"

// captureContinuation snapshots the control stack, dynamic-wind chain, and
// exception-handler stack exactly as §4.9 describes: plain data, not the Go
// call stack, so the result can be invoked later — any number of times,
// from anywhere its lifetime permits.
func (vm *VM) captureContinuation() runtime.Value {
	v := vm.Arena.NewContinuation(runtime.Undefined, runtime.Undefined, runtime.Undefined, runtime.Undefined)
	vm.contStore[v] = &capturedCont{
		Konts:    vm.snapshotKonts(),
		Winds:    vm.snapshotWinds(),
		Handlers: append([]runtime.Value(nil), vm.Handlers...),
	}
	return v
}

// invokeContinuation replays dynamic-wind thunks across the common-prefix
// boundary between the current wind chain and the captured one, then
// replaces the VM's control stack outright and resumes it with the
// supplied values — the "full-state jump" §4.9 specifies, as opposed to a
// one-shot escape.
func (vm *VM) invokeContinuation(contVal runtime.Value, args []runtime.Value) stepResult {
	cap, ok := vm.contStore[contVal]
	if !ok {
		return failWith(runtime.NewTypeError("attempt to invoke a stale continuation"))
	}
	if err := vm.rewind(cap.Winds); err != nil {
		return failWith(err)
	}
	vm.Konts = append([]Kont(nil), cap.Konts...)
	vm.Winds = append([]WindEntry(nil), cap.Winds...)
	vm.Handlers = append([]runtime.Value(nil), cap.Handlers...)
	return doneWith(args...)
}

// rewind runs the after-thunks of every wind entry above the common prefix
// of the current chain and dest (innermost first), then the before-thunks
// of dest's entries above that same prefix (outermost first) — the order
// R5RS's dynamic-wind/call-with-current-continuation interaction requires.
func (vm *VM) rewind(dest []WindEntry) error {
	prefix := commonWindPrefix(vm.Winds, dest)

	for i := len(vm.Winds) - 1; i >= prefix; i-- {
		if _, err := vm.runToCompletion(vm.Winds[i].After, nil); err != nil {
			return err
		}
	}
	for i := prefix; i < len(dest); i++ {
		if _, err := vm.runToCompletion(dest[i].Before, nil); err != nil {
			return err
		}
	}
	return nil
}

// commonWindPrefix returns how many leading entries two wind chains share.
// WindEntry holds only procedure Values, which are comparable, so ordinary
// equality is identity here — exactly eq? on the installed thunks.
func commonWindPrefix(a, b []WindEntry) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
