package evaluator

import (
	"github.com/cwbudde/goscheme/internal/interp/macro"
	"github.com/cwbudde/goscheme/internal/interp/runtime"
	"github.com/cwbudde/goscheme/internal/interp/syntax"
)

// Internal continuation tags. The sixteen opcodes named in runtime/opcode.go
// are the specification's public vocabulary (what a trace or debugger would
// print); the eval loop needs a few more private bookkeeping tags to drive
// argument collection, sequencing, and the privileged primitives. They share
// runtime.OpCode's underlying type so Kont stays a single homogeneous
// struct, but they have no spec-given name — String() on them falls back to
// "unknown_op", which is fine since nothing surfaces them to the user.
const (
	kEvalHead runtime.OpCode = iota + 64
	kEvalArg
	kIf
	kSet
	kDefine
	kSeq
	kLeaveFrame
)

// stepResult is what one iteration of the eval loop produces: either "keep
// going, evaluate form in env next" (Cont true) or "this step is finished,
// here are its values" (Cont false).
type stepResult struct {
	Form runtime.Value
	Env  runtime.Value
	Cont bool
	Vals []runtime.Value
	Err  error
}

func contTo(form, env runtime.Value) stepResult { return stepResult{Form: form, Env: env, Cont: true} }
func doneWith(vals ...runtime.Value) stepResult  { return stepResult{Vals: vals} }
func failWith(err error) stepResult              { return stepResult{Err: err} }

// Eval drives the control-stack loop to a fixed point for one top-level
// form, per §4.5. The control stack starts and ends at the same depth for a
// single Eval call; nested evaluation (arguments, bodies, special forms)
// never recurses into Eval again — it is expressed entirely as pushed Kont
// frames, which is what gives tail calls their O(1) control-stack bound.
func (vm *VM) Eval(form, env runtime.Value) ([]runtime.Value, error) {
	base := len(vm.Konts)
	cur, curEnv := form, env
	var vals []runtime.Value
	haveVals := false

	for {
		vm.tickGC()

		var res stepResult
		if haveVals {
			res = vm.resume(vals)
		} else {
			res = vm.evalStep(cur, curEnv, len(vm.Konts) == base)
		}

		if res.Err != nil {
			recovered, newVals, ok := vm.tryHandle(res.Err)
			if !ok {
				vm.Konts = vm.Konts[:base]
				return nil, res.Err
			}
			cur, curEnv, vals, haveVals = recovered, vm.Env, newVals, true
			continue
		}

		if res.Cont {
			cur, curEnv = res.Form, res.Env
			haveVals = false
			continue
		}

		vals, haveVals = res.Vals, true
		if len(vm.Konts) <= base {
			return vals, nil
		}
	}
}

// resume pops the top continuation and applies the action named by its
// opcode to the incoming values, per §4.5's per-opcode action column.
func (vm *VM) resume(vals []runtime.Value) stepResult {
	k, ok := vm.popKont()
	if !ok {
		return doneWith(vals...)
	}
	one := runtime.Undefined
	if len(vals) > 0 {
		one = vals[0]
	}

	switch k.Op {
	case kEvalHead:
		return vm.continueCall(one, k.A, k.Tail)

	case kEvalArg:
		args := append(k.Vals, one)
		rest := k.Rest
		if rest.Kind == runtime.KindCons && !rest.IsNil() {
			c := vm.Arena.Cons(rest)
			vm.pushKont(Kont{Op: kEvalArg, B: k.B, Vals: args, Rest: c.Cdr, Env: k.Env, Tail: k.Tail})
			return contTo(c.Car, k.Env)
		}
		return vm.applyProcedure(k.B, args, k.Tail)

	case runtime.OpIf, kIf:
		if one.Truthy() {
			return contTo(k.A, k.Env)
		}
		if k.B.IsUndefined() {
			return doneWith(runtime.Undefined)
		}
		return contTo(k.B, k.Env)

	case runtime.OpSet, kSet:
		if err := vm.Arena.Set(k.Env, k.A, one); err != nil {
			return failWith(err)
		}
		return doneWith(runtime.Undefined)

	case runtime.OpDefine, kDefine:
		vm.Arena.LocalSet(k.Env, k.A, one)
		if one.Kind == runtime.KindIProcedure {
			if p := vm.Arena.InterpretedProcedure(one); p != nil && p.Name == "" {
				p.Name = vm.Arena.SymbolName(k.A)
			}
		}
		return doneWith(runtime.Undefined)

	case runtime.OpLeaveFrame, kLeaveFrame:
		vm.Env = k.A
		return doneWith(vals...)

	case runtime.OpReevaluate:
		return contTo(one, k.Env)

	case kSeq:
		return vm.stepSeq(k, vals)

	case runtime.OpRestoreValues:
		return doneWith(k.Vals...)

	default:
		return failWith(runtime.NewSyntaxError("internal: unhandled continuation opcode %v", k.Op))
	}
}

// evalStep evaluates one form that is not itself the resumption of a
// pending continuation: self-evaluating atoms and identifiers resolve
// immediately, combinations push whatever continuation their head and
// arguments require.
func (vm *VM) evalStep(form, env runtime.Value, tail bool) stepResult {
	switch form.Kind {
	case runtime.KindSymbol, runtime.KindSyntacticClosure:
		resEnv, sym := syntax.Resolve(vm.Arena, form, env)
		if sym.Kind != runtime.KindSymbol {
			return doneWith(form)
		}
		v, ok := vm.Arena.Find(resEnv, sym)
		if !ok {
			return failWith(runtime.NewUnboundVariableError(vm.Arena.SymbolName(sym)))
		}
		return doneWith(v)

	case runtime.KindCons:
		if form.IsNil() {
			return doneWith(form)
		}
		c := vm.Arena.Cons(form)
		if name, ok := keywordName(vm.Arena, c.Car); ok {
			if fn, ok := specialForms[name]; ok {
				return fn(vm, c.Cdr, env, tail)
			}
		}
		vm.pushKont(Kont{Op: kEvalHead, A: form, Env: env, Tail: tail})
		return contTo(c.Car, env)

	default:
		return doneWith(form)
	}
}

// keywordName reports the reserved-word name at the head of a combination,
// if any. Core and derived syntax is not first-class and cannot be
// shadowed by a user binding — a deliberate simplification over full
// syntactic hygiene for the ~20 keywords every Scheme reserves, documented
// as an Open Question resolution in DESIGN.md.
func keywordName(a *runtime.Arena, head runtime.Value) (string, bool) {
	stripped := a.StripSyntax(head)
	if stripped.Kind != runtime.KindSymbol {
		return "", false
	}
	name := a.SymbolName(stripped)
	_, ok := specialForms[name]
	return name, ok
}

// continueCall resolves what the now-evaluated head means for the pending
// combination: a macro transformer expands and is re-pushed as code; an
// ordinary procedure proceeds to argument evaluation per its Passing.
func (vm *VM) continueCall(callee, form runtime.Value, tail bool) stepResult {
	if callee.IsTransformer() {
		tr := vm.Arena.SyntaxRules(callee)
		expansion, err := macro.Expand(vm.Arena, tr, form, vm.Env)
		if err != nil {
			return failWith(err)
		}
		return contTo(expansion, vm.Env)
	}
	if !callee.IsProcedure() {
		return failWith(runtime.NewTypeError("attempt to call a non-procedure"))
	}
	args := vm.Arena.Cons(form).Cdr
	arity := vm.Arena.ProcedureArity(callee)

	switch arity.Passing {
	case runtime.PassingQuote:
		slice, _ := vm.Arena.ListToSlice(args)
		return vm.applyProcedure(callee, slice, tail)
	case runtime.PassingWhole:
		return vm.applyProcedure(callee, []runtime.Value{form, vm.Env}, tail)
	default:
		if args.Kind != runtime.KindCons || args.IsNil() {
			return vm.applyProcedure(callee, nil, tail)
		}
		c := vm.Arena.Cons(args)
		vm.pushKont(Kont{Op: kEvalArg, B: callee, Rest: c.Cdr, Env: vm.Env, Tail: tail})
		return contTo(c.Car, vm.Env)
	}
}

// applyProcedure dispatches a fully-evaluated call. Entering an interpreted
// procedure in tail position never pushes a frame-restore continuation,
// which is exactly what bounds a self-recursive loop to O(1) control-stack
// depth regardless of how many iterations it runs.
func (vm *VM) applyProcedure(callee runtime.Value, args []runtime.Value, tail bool) stepResult {
	if name := vm.Arena.ProcedureName(callee); callee.Kind == runtime.KindNProcedure && isPrivileged(name) {
		return vm.applyPrivileged(name, callee, args, tail)
	}

	switch callee.Kind {
	case runtime.KindContinuation:
		return vm.invokeContinuation(callee, args)

	case runtime.KindNProcedure:
		np := vm.Arena.NativeProcedure(callee)
		if np == nil {
			return failWith(runtime.NewTypeError("stale native procedure"))
		}
		if !np.Arity.Accepts(len(args)) {
			return failWith(runtime.NewArityError(np.Name, np.Arity.Required, np.Arity.Max, len(args)))
		}
		results, err := np.Fn(vm.Arena, vm.Env, args)
		if err != nil {
			return failWith(err)
		}
		return doneWith(results...)

	case runtime.KindIProcedure:
		ip := vm.Arena.InterpretedProcedure(callee)
		if ip == nil {
			return failWith(runtime.NewTypeError("stale compound procedure"))
		}
		if !ip.Arity.Accepts(len(args)) {
			return failWith(runtime.NewArityError(ip.Name, ip.Arity.Required, ip.Arity.Max, len(args)))
		}
		child := vm.Arena.PushEnv(ip.Env)
		for i, p := range ip.Params {
			vm.Arena.LocalSet(child, p, args[i])
		}
		if !ip.RestName.IsUndefined() {
			vm.Arena.LocalSet(child, ip.RestName, vm.Arena.SliceToList(args[len(ip.Params):]))
		}
		savedEnv := vm.Env
		vm.Env = child
		if !tail {
			vm.pushKont(Kont{Op: kLeaveFrame, A: savedEnv})
		}
		return vm.enterBody(ip.Body, child)

	default:
		return failWith(runtime.NewTypeError("attempt to call a non-procedure"))
	}
}

// enterBody sequences a procedure or special form's body: every form but
// the last is evaluated for effect, and the last is left in tail position —
// R5RS's "the last expression of a body is a tail call" rule.
func (vm *VM) enterBody(body, env runtime.Value) stepResult {
	if body.Kind != runtime.KindCons || body.IsNil() {
		return doneWith(runtime.Undefined)
	}
	c := vm.Arena.Cons(body)
	if c.Cdr.Kind != runtime.KindCons || c.Cdr.IsNil() {
		return contTo(c.Car, env)
	}
	vm.pushKont(Kont{Op: kSeq, Rest: c.Cdr, Env: env})
	return contTo(c.Car, env)
}

func (vm *VM) stepSeq(k Kont, _ []runtime.Value) stepResult {
	rest := k.Rest
	c := vm.Arena.Cons(rest)
	if c.Cdr.Kind != runtime.KindCons || c.Cdr.IsNil() {
		return contTo(c.Car, k.Env)
	}
	vm.pushKont(Kont{Op: kSeq, Rest: c.Cdr, Env: k.Env})
	return contTo(c.Car, k.Env)
}

// runToCompletion drives a self-contained call to completion against the
// same control stack the outer loop uses, returning once the stack is back
// at the depth it started from. It is how VM-privileged primitives
// (dynamic-wind's thunks, with-exception-handler's protected thunk, force,
// call-with-values' producer) invoke a procedure and get its result back into ordinary Go
// control flow without recursing into Eval — the call still runs through
// the full opcode machinery, including proper tail calls internal to it,
// it just isn't left in tail position relative to the privileged form that
// invoked it. That is a deliberate, documented narrowing of tail-call space
// at exactly the primitives whose own arguments are never themselves in a
// Scheme-level tail position per §4.6.
func (vm *VM) runToCompletion(proc runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	base := len(vm.Konts)
	res := vm.applyProcedure(proc, args, false)
	for {
		if res.Err != nil {
			vm.Konts = vm.Konts[:base]
			return nil, res.Err
		}
		if res.Cont {
			vm.tickGC()
			res = vm.evalStep(res.Form, res.Env, len(vm.Konts) == base)
			continue
		}
		if len(vm.Konts) <= base {
			return res.Vals, nil
		}
		vm.tickGC()
		res = vm.resume(res.Vals)
	}
}

// tryHandle offers err to the top of the exception-handler stack, per §4.5's
// "Exception handling": raise pops the top handler and invokes it with the
// condition value. If no handler is installed the error escapes to the
// caller of Eval, which is what surfaces it to the REPL or script runner.
func (vm *VM) tryHandle(err error) (runtime.Value, []runtime.Value, bool) {
	if len(vm.Handlers) == 0 {
		return runtime.Undefined, nil, false
	}
	handler := vm.Handlers[len(vm.Handlers)-1]
	vm.Handlers = vm.Handlers[:len(vm.Handlers)-1]

	condition := conditionValue(vm.Arena, err)
	base := len(vm.Konts)
	res := vm.applyProcedure(handler, []runtime.Value{condition}, false)
	for {
		if res.Err != nil {
			vm.Konts = vm.Konts[:base]
			return vm.tryHandle(res.Err)
		}
		if res.Cont {
			vm.tickGC()
			res = vm.evalStep(res.Form, res.Env, len(vm.Konts) == base)
			continue
		}
		if len(vm.Konts) <= base {
			return runtime.Undefined, res.Vals, true
		}
		vm.tickGC()
		res = vm.resume(res.Vals)
	}
}

// conditionValue turns a Go error into the first-class condition object
// the handler receives: the irritant payload `raise` was called with, or a
// fresh opaque condition Value for an internally-generated RuntimeError.
func conditionValue(a *runtime.Arena, err error) runtime.Value {
	if re, ok := err.(*runtime.RuntimeError); ok && re.HasIrritant {
		return re.Irritant
	}
	return a.NewString(err.Error())
}
