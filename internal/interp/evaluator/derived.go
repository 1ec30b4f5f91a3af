package evaluator

import "github.com/cwbudde/goscheme/internal/interp/runtime"

// Derived syntax is handled the way R5RS itself characterizes it in
// §7.3 — as expressions in terms of the core forms in specialforms.go —
// rather than as its own family of Kont types. Each handler rewrites its
// form once and hands the rewritten form back to the eval loop via contTo,
// so a derived form in tail position stays a tail call all the way down to
// whatever core form it bottoms out at.
func init() {
	specialForms["let"] = evalLet
	specialForms["let*"] = evalLetStar
	specialForms["letrec"] = evalLetrec
	specialForms["letrec*"] = evalLetrec
	specialForms["cond"] = evalCond
	specialForms["case"] = evalCase
	specialForms["when"] = evalWhen
	specialForms["unless"] = evalUnless
	specialForms["and"] = evalAnd
	specialForms["or"] = evalOr
	specialForms["do"] = evalDo
	specialForms["guard"] = evalGuard
	specialForms["quasiquote"] = evalQuasiquote
	specialForms["delay"] = evalDelay
	specialForms["define-syntax"] = evalDefineSyntax
	specialForms["let-syntax"] = evalLetSyntax
	specialForms["letrec-syntax"] = evalLetSyntax
}

func (vm *VM) sym(name string) runtime.Value { return vm.Symbols.Intern(name) }

func (vm *VM) list(items ...runtime.Value) runtime.Value { return vm.Arena.SliceToList(items) }

func (vm *VM) beginOf(body runtime.Value) runtime.Value {
	return vm.Arena.NewCons(vm.sym("begin"), body)
}

// evalLet implements both plain `let` and named `let`: the latter desugars
// to a letrec binding the loop name to a lambda, per R5RS §4.2.4.
func evalLet(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	if c.Car.Kind == runtime.KindSymbol {
		name := c.Car
		rest := vm.Arena.Cons(c.Cdr)
		bindings := rest.Car
		body := rest.Cdr

		var names, inits []runtime.Value
		for it := vm.Arena.Iter(bindings); !it.Done(); it.Next() {
			b := vm.Arena.Cons(it.Value())
			names = append(names, b.Car)
			inits = append(inits, vm.Arena.Cons(b.Cdr).Car)
		}
		lambda := vm.Arena.NewCons(vm.sym("lambda"), vm.Arena.NewCons(vm.list(names...), body))
		binding := vm.list(vm.list(name, lambda))
		loopCall := vm.Arena.NewCons(name, vm.list(inits...))
		letrecBody := vm.list(loopCall)
		form := vm.Arena.NewCons(vm.sym("letrec"), vm.Arena.NewCons(binding, letrecBody))
		return contTo(form, env)
	}

	bindings, body := c.Car, c.Cdr
	var params, inits []runtime.Value
	for it := vm.Arena.Iter(bindings); !it.Done(); it.Next() {
		b := vm.Arena.Cons(it.Value())
		params = append(params, b.Car)
		inits = append(inits, vm.Arena.Cons(b.Cdr).Car)
	}
	lambda := vm.Arena.NewCons(vm.sym("lambda"), vm.Arena.NewCons(vm.list(params...), body))
	call := vm.Arena.NewCons(lambda, vm.list(inits...))
	return contTo(call, env)
}

// evalLetStar desugars (let* ((v e) rest...) body) into nested plain lets,
// one binding at a time, so each init sees the ones before it.
func evalLetStar(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	bindings, body := c.Car, c.Cdr
	if bindings.Kind != runtime.KindCons || bindings.IsNil() {
		form := vm.Arena.NewCons(vm.sym("let"), vm.Arena.NewCons(runtime.Nil, body))
		return contTo(form, env)
	}
	bc := vm.Arena.Cons(bindings)
	inner := vm.Arena.NewCons(vm.sym("let*"), vm.Arena.NewCons(bc.Cdr, body))
	form := vm.Arena.NewCons(vm.sym("let"), vm.Arena.NewCons(vm.list(bc.Car), vm.list(inner)))
	return contTo(form, env)
}

// evalLetrec desugars to unspecified bindings followed by set!s, per the
// "letrec can be expressed in terms of let and set!" note in R5RS §7.3.
func evalLetrec(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	bindings, body := c.Car, c.Cdr

	var names, inits []runtime.Value
	for it := vm.Arena.Iter(bindings); !it.Done(); it.Next() {
		b := vm.Arena.Cons(it.Value())
		names = append(names, b.Car)
		inits = append(inits, vm.Arena.Cons(b.Cdr).Car)
	}

	var undefBindings []runtime.Value
	var sets []runtime.Value
	for i, n := range names {
		undefBindings = append(undefBindings, vm.list(n))
		sets = append(sets, vm.list(vm.sym("set!"), n, inits[i]))
	}
	newBody := append(sets, listToSlice(vm, body)...)
	form := vm.Arena.NewCons(vm.sym("let"), vm.Arena.NewCons(vm.list(undefBindings...), vm.list(newBody...)))
	return contTo(form, env)
}

func listToSlice(vm *VM, v runtime.Value) []runtime.Value {
	s, _ := vm.Arena.ListToSlice(v)
	return s
}

// evalCond walks clauses left to right: an `else` clause always fires; a
// `test => proc` clause applies proc to the test's value; a test-only
// clause returns the test's value if truthy; otherwise the body runs.
func evalCond(vm *VM, args, env runtime.Value, tail bool) stepResult {
	if args.Kind != runtime.KindCons || args.IsNil() {
		return doneWith(runtime.Undefined)
	}
	c := vm.Arena.Cons(args)
	clause := vm.Arena.Cons(c.Car)
	test, body := clause.Car, clause.Cdr

	if test.Kind == runtime.KindSymbol && vm.Arena.SymbolName(test) == "else" {
		return contTo(vm.beginOf(body), env)
	}

	rest := c.Cdr
	restCond := vm.Arena.NewCons(vm.sym("cond"), rest)

	if body.Kind != runtime.KindCons || body.IsNil() {
		t := vm.gensym("cond")
		form := vm.list(vm.sym("let"), vm.list(vm.list(t, test)),
			vm.list(vm.sym("if"), t, t, restCond))
		return contTo(form, env)
	}

	bc := vm.Arena.Cons(body)
	if bc.Car.Kind == runtime.KindSymbol && vm.Arena.SymbolName(bc.Car) == "=>" {
		proc := vm.Arena.Cons(bc.Cdr).Car
		t := vm.gensym("cond")
		form := vm.list(vm.sym("let"), vm.list(vm.list(t, test)),
			vm.list(vm.sym("if"), t, vm.list(proc, t), restCond))
		return contTo(form, env)
	}

	form := vm.list(vm.sym("if"), test, vm.beginOf(body), restCond)
	return contTo(form, env)
}

// evalCase desugars to a let binding the key once, then a cond testing
// membership in each clause's datum list with memv, per R5RS §4.2.1.
func evalCase(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	key, clauses := c.Car, c.Cdr
	t := vm.gensym("case")

	var condClauses []runtime.Value
	for it := vm.Arena.Iter(clauses); !it.Done(); it.Next() {
		clause := vm.Arena.Cons(it.Value())
		data, body := clause.Car, clause.Cdr
		if data.Kind == runtime.KindSymbol && vm.Arena.SymbolName(data) == "else" {
			condClauses = append(condClauses, vm.Arena.NewCons(vm.sym("else"), body))
			continue
		}
		test := vm.list(vm.sym("memv"), t, vm.list(vm.sym("quote"), data))
		condClauses = append(condClauses, vm.Arena.NewCons(test, body))
	}
	condForm := vm.Arena.NewCons(vm.sym("cond"), vm.list(condClauses...))
	form := vm.list(vm.sym("let"), vm.list(vm.list(t, key)), condForm)
	return contTo(form, env)
}

func evalWhen(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	test, body := c.Car, c.Cdr
	vm.pushKont(Kont{Op: kIf, A: vm.beginOf(body), B: runtime.Undefined, Env: env, Tail: tail})
	return contTo(test, env)
}

func evalUnless(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	test, body := c.Car, c.Cdr
	vm.pushKont(Kont{Op: kIf, A: runtime.Undefined, B: vm.beginOf(body), Env: env, Tail: tail})
	return contTo(test, env)
}

// evalAnd and evalOr desugar the whole form into nested `if`s in one shot,
// matching R5RS §7.3's "and/or can be expressed in terms of if".
func evalAnd(vm *VM, args, env runtime.Value, tail bool) stepResult {
	exprs := listToSlice(vm, args)
	if len(exprs) == 0 {
		return doneWith(runtime.True)
	}
	form := exprs[len(exprs)-1]
	for i := len(exprs) - 2; i >= 0; i-- {
		form = vm.list(vm.sym("if"), exprs[i], form, runtime.False)
	}
	return contTo(form, env)
}

func evalOr(vm *VM, args, env runtime.Value, tail bool) stepResult {
	exprs := listToSlice(vm, args)
	if len(exprs) == 0 {
		return doneWith(runtime.False)
	}
	form := exprs[len(exprs)-1]
	for i := len(exprs) - 2; i >= 0; i-- {
		t := vm.gensym("or")
		form = vm.list(vm.sym("let"), vm.list(vm.list(t, exprs[i])), vm.list(vm.sym("if"), t, t, form))
	}
	return contTo(form, env)
}

// evalDo desugars to a named let, per R5RS §7.3's own `do` expansion.
func evalDo(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	specs, rest := c.Car, vm.Arena.Cons(c.Cdr)
	testClause, commands := vm.Arena.Cons(rest.Car), rest.Cdr
	test, resultBody := testClause.Car, testClause.Cdr

	var vars, inits, steps []runtime.Value
	for it := vm.Arena.Iter(specs); !it.Done(); it.Next() {
		spec := listToSlice(vm, it.Value())
		vars = append(vars, spec[0])
		inits = append(inits, spec[1])
		if len(spec) > 2 {
			steps = append(steps, spec[2])
		} else {
			steps = append(steps, spec[0])
		}
	}

	loop := vm.gensym("do")
	var bindings []runtime.Value
	for i, v := range vars {
		bindings = append(bindings, vm.list(v, inits[i]))
	}
	loopCall := vm.Arena.NewCons(loop, vm.list(steps...))
	bodyForms := append(listToSlice(vm, commands), loopCall)
	ifForm := vm.list(vm.sym("if"), test, vm.beginOf(resultBody), vm.beginOf(vm.list(bodyForms...)))
	letBody := vm.list(ifForm)
	form := vm.Arena.NewCons(vm.sym("let"), vm.Arena.NewCons(loop, vm.Arena.NewCons(vm.list(bindings...), letBody)))
	return contTo(form, env)
}

// evalGuard implements `guard` (the condition-handling form shared by
// R6RS and SRFI 34, widely carried into R5RS implementations alongside
// with-exception-handler) as call/cc plus with-exception-handler: the
// handler invokes the captured continuation with the matching clause's
// value, and re-raises if no clause (including an implicit else) matches.
func evalGuard(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	spec := vm.Arena.Cons(c.Car)
	condVar, clauses := spec.Car, spec.Cdr
	body := c.Cdr

	hasElse := false
	for it := vm.Arena.Iter(clauses); !it.Done(); it.Next() {
		clause := vm.Arena.Cons(it.Value())
		if clause.Car.Kind == runtime.KindSymbol && vm.Arena.SymbolName(clause.Car) == "else" {
			hasElse = true
		}
	}
	if !hasElse {
		reraise := vm.list(vm.list(vm.sym("else"), vm.list(vm.sym("raise-continuable"), condVar)))
		clauses = vm.Arena.SliceToList(append(listToSlice(vm, clauses), listToSlice(vm, reraise)...))
	}
	condForm := vm.Arena.NewCons(vm.sym("cond"), clauses)

	k := vm.gensym("guard-k")
	handler := vm.list(vm.sym("lambda"), vm.list(condVar), vm.list(k, condForm))
	thunk := vm.Arena.NewCons(vm.sym("lambda"), vm.Arena.NewCons(runtime.Nil, body))
	inner := vm.list(vm.sym("with-exception-handler"), handler, thunk)
	form := vm.list(vm.sym("call-with-current-continuation"), vm.list(vm.sym("lambda"), vm.list(k), inner))
	return contTo(form, env)
}

// evalDelay builds a promise directly: a zero-argument closure over the
// delayed expression, wrapped in the two-element vector `force` expects
// (forced-flag, value-or-thunk). The thunk is a closure built the same way
// evalLambda builds one, not a form evaluated through the loop, since
// delay's whole point is that its body never runs until forced.
func evalDelay(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	thunk := vm.Arena.NewInterpretedProcedure("", nil, runtime.Undefined, vm.list(c.Car), env)
	v := vm.Arena.NewVector([]runtime.Value{runtime.False, thunk})
	return doneWith(v)
}

// evalDefineSyntax binds name to a syntax-rules transformer built directly
// from its literal list/rule list — the sub-forms are data, not code, so
// this never goes through general evaluation.
func evalDefineSyntax(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	name := vm.Arena.StripSyntax(c.Car)
	spec := vm.Arena.Cons(c.Cdr).Car
	tr, err := vm.parseSyntaxRules(spec, env)
	if err != nil {
		return failWith(err)
	}
	vm.Arena.LocalSet(env, name, tr)
	return doneWith(runtime.Undefined)
}

// evalLetSyntax handles both let-syntax and letrec-syntax: both bind macro
// keywords for the body only, differing (per R5RS §4.3.1) in whether a
// transformer's own template can see the other keywords being bound — a
// distinction this implementation does not enforce, since syntax-rules
// templates here are always resolved against DefEnv at expansion time
// rather than at definition time.
func evalLetSyntax(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	bindings, body := c.Car, c.Cdr
	child := vm.Arena.PushEnv(env)
	for it := vm.Arena.Iter(bindings); !it.Done(); it.Next() {
		b := vm.Arena.Cons(it.Value())
		name := vm.Arena.StripSyntax(b.Car)
		spec := vm.Arena.Cons(b.Cdr).Car
		tr, err := vm.parseSyntaxRules(spec, child)
		if err != nil {
			return failWith(err)
		}
		vm.Arena.LocalSet(child, name, tr)
	}
	return vm.enterBody(body, child)
}

// parseSyntaxRules parses (syntax-rules [ellipsis] (literal...) (pattern
// template)...) into a runtime.SyntaxRules value. The rule list's wire
// format (a list of (pattern template) pairs) already matches what
// macro.Expand expects, so the rules sub-list is reused as-is.
func (vm *VM) parseSyntaxRules(spec, defEnv runtime.Value) (runtime.Value, error) {
	c := vm.Arena.Cons(spec)
	if c == nil || vm.Arena.SymbolName(vm.Arena.StripSyntax(c.Car)) != "syntax-rules" {
		return runtime.Undefined, runtime.NewSyntaxError("define-syntax: expected a syntax-rules transformer")
	}
	rest := vm.Arena.Cons(c.Cdr)
	ellipsis := vm.sym("...")
	first := rest.Car
	if first.Kind == runtime.KindSymbol {
		ellipsis = first
		rest = vm.Arena.Cons(rest.Cdr)
	}
	literals := rest.Car
	rules := rest.Cdr
	return vm.Arena.NewSyntaxRules(defEnv, literals, rules, ellipsis), nil
}

// evalQuasiquote expands a quasiquote template into a form built from
// `cons`, `append`, and `list->vector`, per R5RS §4.2.6's note that
// quasiquote is itself expressible this way — so nested evaluation,
// tail calls, and continuations inside an unquoted expression all work
// without the evaluator needing any quasiquote-specific machinery.
func evalQuasiquote(vm *VM, args, env runtime.Value, tail bool) stepResult {
	c := vm.Arena.Cons(args)
	form := vm.quasiExpand(c.Car, 1)
	return contTo(form, env)
}

func (vm *VM) quasiExpand(tmpl runtime.Value, depth int) runtime.Value {
	if tmpl.Kind == runtime.KindVector {
		items := vm.Arena.Vector(tmpl).Items
		listForm := vm.quasiExpand(vm.Arena.SliceToList(items), depth)
		return vm.list(vm.sym("list->vector"), listForm)
	}
	if tmpl.Kind != runtime.KindCons || tmpl.IsNil() {
		return vm.list(vm.sym("quote"), tmpl)
	}
	c := vm.Arena.Cons(tmpl)

	if head, ok := vm.headName(c.Car); ok {
		switch head {
		case "unquote":
			arg := vm.Arena.Cons(c.Cdr).Car
			if depth == 1 {
				return arg
			}
			return vm.list(vm.sym("list"), vm.list(vm.sym("quote"), vm.sym("unquote")), vm.quasiExpand(arg, depth-1))
		case "quasiquote":
			arg := vm.Arena.Cons(c.Cdr).Car
			return vm.list(vm.sym("list"), vm.list(vm.sym("quote"), vm.sym("quasiquote")), vm.quasiExpand(arg, depth+1))
		}
	}

	if c.Car.Kind == runtime.KindCons && !c.Car.IsNil() {
		inner := vm.Arena.Cons(c.Car)
		if head, ok := vm.headName(inner.Car); ok && head == "unquote-splicing" && depth == 1 {
			spliced := vm.Arena.Cons(inner.Cdr).Car
			return vm.list(vm.sym("append"), spliced, vm.quasiExpand(c.Cdr, depth))
		}
	}

	return vm.list(vm.sym("cons"), vm.quasiExpand(c.Car, depth), vm.quasiExpand(c.Cdr, depth))
}

func (vm *VM) headName(v runtime.Value) (string, bool) {
	stripped := vm.Arena.StripSyntax(v)
	if stripped.Kind != runtime.KindSymbol {
		return "", false
	}
	return vm.Arena.SymbolName(stripped), true
}
