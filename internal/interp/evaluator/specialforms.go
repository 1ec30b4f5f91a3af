package evaluator

import "github.com/cwbudde/goscheme/internal/interp/runtime"

// specialForm is a core or derived syntax handler: given the unevaluated
// argument list (the combination's cdr), the environment it appears in, and
// whether it occupies a tail position, it produces the next step.
type specialForm func(vm *VM, args, env runtime.Value, tail bool) stepResult

// specialForms is the reserved-word table keywordName and evalStep consult
// before falling back to ordinary procedure-call dispatch. Core syntax
// (quote, if, set!, define, lambda, begin) lives in this file; the rest of
// R5RS's derived syntax is registered from derived.go's init.
var specialForms = map[string]specialForm{}

func init() {
	specialForms["quote"] = evalQuote
	specialForms["if"] = evalIf
	specialForms["set!"] = evalSet
	specialForms["define"] = evalDefine
	specialForms["lambda"] = evalLambda
	specialForms["begin"] = evalBegin
}

func evalQuote(vm *VM, args, _ runtime.Value, _ bool) stepResult {
	c := vm.Arena.Cons(args)
	return doneWith(c.Car)
}

// evalIf implements the two- and three-argument forms of `if`. The taken
// branch is returned as a new step rather than looped into directly so it
// keeps whatever tail status the `if` form itself had.
func evalIf(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	test, rest := c.Car, c.Cdr
	rc := vm.Arena.Cons(rest)
	thenForm := rc.Car
	elseForm := runtime.Undefined
	if rc.Cdr.Kind == runtime.KindCons && !rc.Cdr.IsNil() {
		elseForm = vm.Arena.Cons(rc.Cdr).Car
	}
	vm.pushKont(Kont{Op: kIf, A: thenForm, B: elseForm, Env: env, Tail: tail})
	return contTo(test, env)
}

func evalSet(vm *VM, args, env runtime.Value, _ bool) stepResult {
	c := vm.Arena.Cons(args)
	name := vm.Arena.StripSyntax(c.Car)
	rc := vm.Arena.Cons(c.Cdr)
	vm.pushKont(Kont{Op: kSet, A: name, Env: env})
	return contTo(rc.Car, env)
}

// evalDefine handles both `(define name expr)` and the procedure-definition
// sugar `(define (name . params) body...)`, per R5RS §5.2.
func evalDefine(vm *VM, args, env runtime.Value, _ bool) stepResult {
	c := vm.Arena.Cons(args)
	target := c.Car

	if target.Kind == runtime.KindCons && !target.IsNil() {
		tc := vm.Arena.Cons(target)
		name := vm.Arena.StripSyntax(tc.Car)
		params, rest := parseParamList(vm.Arena, tc.Cdr)
		proc := vm.Arena.NewInterpretedProcedure(vm.Arena.SymbolName(name), params, rest, c.Cdr, env)
		vm.Arena.LocalSet(env, name, proc)
		return doneWith(runtime.Undefined)
	}

	name := vm.Arena.StripSyntax(target)
	rc := vm.Arena.Cons(c.Cdr)
	if rc.Cdr.Kind != runtime.KindCons || rc.Cdr.IsNil() {
		vm.pushKont(Kont{Op: kDefine, A: name, Env: env})
		return contTo(rc.Car, env)
	}
	// (define name) with no value: bind to undefined.
	vm.Arena.LocalSet(env, name, runtime.Undefined)
	return doneWith(runtime.Undefined)
}

func evalLambda(vm *VM, args, env runtime.Value, _ bool) stepResult {
	c := vm.Arena.Cons(args)
	params, rest := parseParamList(vm.Arena, c.Car)
	proc := vm.Arena.NewInterpretedProcedure("", params, rest, c.Cdr, env)
	return doneWith(proc)
}

func evalBegin(vm *VM, args, env runtime.Value, _ bool) stepResult {
	return vm.enterBody(args, env)
}

// parseParamList splits a lambda parameter spec into its fixed names and
// optional rest name, accepting a bare symbol (all-rest), a proper list
// (fixed only), or a dotted list (fixed plus rest) per R5RS §4.1.4.
func parseParamList(a *runtime.Arena, spec runtime.Value) ([]runtime.Value, runtime.Value) {
	stripped := a.StripSyntax(spec)
	if stripped.Kind == runtime.KindSymbol {
		return nil, stripped
	}
	var params []runtime.Value
	cur := spec
	for cur.Kind == runtime.KindCons && !cur.IsNil() {
		c := a.Cons(cur)
		params = append(params, a.StripSyntax(c.Car))
		cur = c.Cdr
	}
	rest := runtime.Undefined
	if s := a.StripSyntax(cur); s.Kind == runtime.KindSymbol {
		rest = s
	}
	return params, rest
}
