package evaluator

import (
	"strconv"

	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

// Kont is one frame of the VM's control stack: an opcode tag plus the
// handful of fields that opcode's action needs, per §4.5. Using one struct
// for every case (rather than one Go type per opcode) mirrors the
// specification's own choice to keep the control stack a single
// homogeneous sequence rather than a family of unrelated record types.
type Kont struct {
	Op   runtime.OpCode
	Env  runtime.Value   // the frame this continuation resumes in
	A    runtime.Value   // primary payload: branch taken, bound identifier, saved env
	B    runtime.Value   // secondary payload: the untaken branch, the callee
	Rest runtime.Value   // remaining unevaluated forms (args, body, template)
	Vals []runtime.Value // values accumulated so far by this continuation
	Tail bool            // whether resuming this continuation is itself a tail position
}

// WindEntry is one entry of the dynamic-wind chain: the before/after thunks
// installed by a single dynamic-wind call, per §4.5's "Continuation
// capture/invocation" rules.
type WindEntry struct {
	Before runtime.Value
	After  runtime.Value
}

// VM holds every piece of state §4.5 lists for the evaluator: the control
// stack (its "code stack"), the data stack used while collecting call
// arguments, the current lexical frame, the dynamic-wind chain, and the
// exception-handler stack. It also holds the process-wide symbol table,
// which it interns generated names into and reports as GC roots.
type VM struct {
	Arena   *runtime.Arena
	Symbols *runtime.SymbolTable

	Konts   []Kont
	Data    []runtime.Value
	Env     runtime.Value
	Winds   []WindEntry
	Handlers []runtime.Value

	instrCount uint64
	gcEvery    uint64

	CallDepth    int
	MaxCallDepth int

	// contStore holds the Go-native state behind each captured continuation
	// Value, keyed by the runtime.Continuation heap Value itself (a struct
	// of Kind/num/ptr, so it is comparable and serves as its own identity
	// key). runtime.Continuation's own fields stay Undefined placeholders —
	// see DESIGN.md's evaluator decision 6 for why the snapshot lives here instead
	// of encoded into Values. A captured continuation's referenced state is
	// kept alive for the life of the process once taken, a conservative
	// simplification over tracking its handle's arena liveness.
	contStore map[runtime.Value]*capturedCont
	nextContID int64

	gensymCounter int
}

// gensym returns a fresh identifier not written by any program text, for
// derived-syntax expansions (`cond`, `case`, `or`, `do`, `guard`) that need a temporary
// binding without risking capture of a user identifier of the same name.
func (vm *VM) gensym(tag string) runtime.Value {
	vm.gensymCounter++
	return vm.Symbols.Intern("%" + tag + "%" + strconv.Itoa(vm.gensymCounter))
}

// capturedCont is one call/cc snapshot: the control stack, dynamic-wind
// chain, and exception-handler stack exactly as they stood at capture time.
type capturedCont struct {
	Konts    []Kont
	Winds    []WindEntry
	Handlers []runtime.Value
}

// NewVM creates a VM rooted at the given global environment.
func NewVM(a *runtime.Arena, syms *runtime.SymbolTable, globalEnv runtime.Value) *VM {
	return &VM{
		Arena:        a,
		Symbols:      syms,
		Env:          globalEnv,
		gcEvery:      256,
		MaxCallDepth: 10000,
		contStore:    make(map[runtime.Value]*capturedCont),
	}
}

// SetGCInterval overrides the number of primitive steps between collections.
// n <= 0 is ignored, leaving NewVM's default in place.
func (vm *VM) SetGCInterval(n int) {
	if n > 0 {
		vm.gcEvery = uint64(n)
	}
}

// Roots returns every Value the VM keeps alive outside of the Arena's own
// bookkeeping, for use as the GC root set — §4.1's "roots are whatever the
// evaluator currently holds live": the control stack, the data stack, the
// current frame, the dynamic-wind chain, the handler stack, and the
// interned symbol table.
func (vm *VM) Roots() []runtime.Value {
	roots := make([]runtime.Value, 0, len(vm.Konts)*4+len(vm.Data)+len(vm.Winds)*2+len(vm.Handlers)+2)
	for _, k := range vm.Konts {
		roots = append(roots, k.Env, k.A, k.B, k.Rest)
		roots = append(roots, k.Vals...)
	}
	roots = append(roots, vm.Data...)
	roots = append(roots, vm.Env)
	for _, w := range vm.Winds {
		roots = append(roots, w.Before, w.After)
	}
	roots = append(roots, vm.Handlers...)
	roots = append(roots, vm.Symbols.Roots()...)
	for contVal, cap := range vm.contStore {
		roots = append(roots, contVal)
		for _, k := range cap.Konts {
			roots = append(roots, k.Env, k.A, k.B, k.Rest)
			roots = append(roots, k.Vals...)
		}
		for _, w := range cap.Winds {
			roots = append(roots, w.Before, w.After)
		}
		roots = append(roots, cap.Handlers...)
	}
	return roots
}

// tickGC runs a collection every gcEvery primitive steps, per the prior
// design note that periodic rather than allocation-triggered collection
// keeps the hot path free of a live-byte counter.
func (vm *VM) tickGC() {
	vm.instrCount++
	if vm.instrCount%vm.gcEvery == 0 {
		vm.Arena.Collect(vm.Roots())
	}
}

func (vm *VM) pushKont(k Kont) {
	vm.Konts = append(vm.Konts, k)
}

func (vm *VM) popKont() (Kont, bool) {
	if len(vm.Konts) == 0 {
		return Kont{}, false
	}
	k := vm.Konts[len(vm.Konts)-1]
	vm.Konts = vm.Konts[:len(vm.Konts)-1]
	return k, true
}

// snapshotKonts copies the control stack for continuation capture — plain
// data, not the Go call stack, so the copy can be resumed any number of
// times later (§4.9).
func (vm *VM) snapshotKonts() []Kont {
	cp := make([]Kont, len(vm.Konts))
	for i, k := range vm.Konts {
		cp[i] = k
		cp[i].Vals = append([]runtime.Value(nil), k.Vals...)
	}
	return cp
}

func (vm *VM) snapshotWinds() []WindEntry {
	return append([]WindEntry(nil), vm.Winds...)
}
