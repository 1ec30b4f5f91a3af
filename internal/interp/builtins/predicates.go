package builtins

import "github.com/cwbudde/goscheme/internal/interp/runtime"

// installPredicates wires the general-purpose predicates of R5RS §6.1's
// equivalence chapter (eq?/eqv?/equal?) plus the handful of type tests
// (boolean?, symbol?, procedure?) that don't belong to any single data-type
// file the way string?/vector?/pair? do.
func installPredicates(r *Registry) {
	unary := runtime.ArityInfo{Required: 1, Max: 1}
	binary := runtime.ArityInfo{Required: 2, Max: 2}

	r.Register("eq?", binary, biEq, CategoryPredicates, "identity comparison")
	r.Register("eqv?", binary, biEqv, CategoryPredicates, "identity comparison, numbers compared by value")
	r.Register("equal?", binary, biEqual, CategoryPredicates, "recursive structural comparison")
	r.Register("not", unary, biNot, CategoryPredicates, "logical negation")

	r.Register("boolean?", unary, typePredicate(func(v runtime.Value) bool { return v.Kind == runtime.KindBoolean }), CategoryPredicates, "is the argument a boolean")
	r.Register("symbol?", unary, typePredicate(func(v runtime.Value) bool { return v.Kind == runtime.KindSymbol }), CategoryPredicates, "is the argument a symbol")
	r.Register("procedure?", unary, typePredicate(func(v runtime.Value) bool {
		return v.Kind == runtime.KindIProcedure || v.Kind == runtime.KindNProcedure || v.Kind == runtime.KindContinuation
	}), CategoryPredicates, "is the argument callable")
}

func biEq(_ *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{runtime.Bool(runtime.Eq(args[0], args[1]))}, nil
}

func biEqv(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{runtime.Bool(runtime.Eqv(a, a, args[0], args[1]))}, nil
}

func biEqual(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{runtime.Bool(runtime.Equal(a, args[0], args[1]))}, nil
}

func biNot(_ *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{runtime.Bool(!args[0].Truthy())}, nil
}
