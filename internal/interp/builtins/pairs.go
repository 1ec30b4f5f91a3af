package builtins

import "github.com/cwbudde/goscheme/internal/interp/runtime"

// installPairs wires R5RS §6.3.2's pair and list procedures: construction,
// the c[ad]+r accessors, membership and association search, and the
// mutation forms (set-car!/set-cdr!) that only make sense because pairs are
// themselves mutable cells here, exactly as runtime/cons.go represents them.
func installPairs(r *Registry) {
	unary := runtime.ArityInfo{Required: 1, Max: 1}
	binary := runtime.ArityInfo{Required: 2, Max: 2}

	r.Register("cons", binary, biCons, CategoryPairs, "allocate a new pair")
	r.Register("car", unary, biCar, CategoryPairs, "the first element of a pair")
	r.Register("cdr", unary, biCdr, CategoryPairs, "the rest of a pair")
	r.Register("set-car!", binary, biSetCar, CategoryPairs, "mutate a pair's first element")
	r.Register("set-cdr!", binary, biSetCdr, CategoryPairs, "mutate a pair's rest")

	for _, combo := range []string{"aa", "ad", "da", "dd", "aaa", "aad", "ada", "add", "daa", "dad", "dda", "ddd",
		"aaaa", "aaad", "aada", "aadd", "adaa", "adad", "adda", "addd",
		"daaa", "daad", "dada", "dadd", "ddaa", "ddad", "ddda", "dddd"} {
		r.Register("c"+combo+"r", unary, cxrAccessor(combo), CategoryPairs, "compose car/cdr: c"+combo+"r")
	}

	r.Register("pair?", unary, typePredicate(func(v runtime.Value) bool { return v.Kind == runtime.KindCons && !v.IsNil() }), CategoryPairs, "is the argument a non-empty pair")
	r.Register("null?", unary, typePredicate(func(v runtime.Value) bool { return v.IsNil() }), CategoryPairs, "is the argument the empty list")
	r.Register("list?", unary, biListP, CategoryPairs, "is the argument a proper, finite list")
	r.Register("list", runtime.ArityInfo{Required: 0, Max: -1}, biList, CategoryPairs, "a new list of the arguments")
	r.Register("length", unary, biLength, CategoryPairs, "the number of elements in a proper list")
	r.Register("append", runtime.ArityInfo{Required: 0, Max: -1}, biAppend, CategoryPairs, "concatenate lists")
	r.Register("reverse", unary, biReverse, CategoryPairs, "a list with elements in reverse order")
	r.Register("list-tail", binary, biListTail, CategoryPairs, "the sublist after dropping k elements")
	r.Register("list-ref", binary, biListRef, CategoryPairs, "the kth element of a list")
	r.Register("list-copy", unary, biListCopy, CategoryPairs, "a fresh shallow copy of a list")

	r.Register("memq", binary, memberBy(eq2), CategoryPairs, "search a list by eq?")
	r.Register("memv", binary, memberBy(eqv2), CategoryPairs, "search a list by eqv?")
	r.Register("member", binary, memberBy(equal2), CategoryPairs, "search a list by equal?")
	r.Register("assq", binary, assocBy(eq2), CategoryPairs, "search an alist by eq?")
	r.Register("assv", binary, assocBy(eqv2), CategoryPairs, "search an alist by eqv?")
	r.Register("assoc", binary, assocBy(equal2), CategoryPairs, "search an alist by equal?")
}

func biCons(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{a.NewCons(args[0], args[1])}, nil
}

func biCar(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	c := a.Cons(args[0])
	if c == nil {
		return nil, runtime.NewTypeError("car: not a pair")
	}
	return []runtime.Value{c.Car}, nil
}

func biCdr(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	c := a.Cons(args[0])
	if c == nil {
		return nil, runtime.NewTypeError("cdr: not a pair")
	}
	return []runtime.Value{c.Cdr}, nil
}

func biSetCar(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	c := a.Cons(args[0])
	if c == nil {
		return nil, runtime.NewTypeError("set-car!: not a pair")
	}
	c.Car = args[1]
	return []runtime.Value{runtime.Undefined}, nil
}

func biSetCdr(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	c := a.Cons(args[0])
	if c == nil {
		return nil, runtime.NewTypeError("set-cdr!: not a pair")
	}
	c.Cdr = args[1]
	return []runtime.Value{runtime.Undefined}, nil
}

// cxrAccessor builds a cNNNr accessor from its letter sequence, applied
// right-to-left the way (cadr x) means (car (cdr x)).
func cxrAccessor(combo string) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		v := args[0]
		for i := len(combo) - 1; i >= 0; i-- {
			c := a.Cons(v)
			if c == nil {
				return nil, runtime.NewTypeError("c" + combo + "r: not a pair")
			}
			if combo[i] == 'a' {
				v = c.Car
			} else {
				v = c.Cdr
			}
		}
		return []runtime.Value{v}, nil
	}
}

func biListP(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{runtime.Bool(a.ListLen(args[0]) >= 0)}, nil
}

func biList(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{a.SliceToList(args)}, nil
}

func biLength(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	n := a.ListLen(args[0])
	if n < 0 {
		return nil, runtime.NewTypeError("length: not a proper list")
	}
	return []runtime.Value{runtime.Int(int64(n))}, nil
}

func biAppend(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	if len(args) == 0 {
		return []runtime.Value{runtime.Nil}, nil
	}
	g := runtime.NewGrowList(a)
	for i := 0; i < len(args)-1; i++ {
		elems, proper := a.ListToSlice(args[i])
		if !proper {
			return nil, runtime.NewTypeError("append: not a proper list")
		}
		for _, e := range elems {
			g.Push(e)
		}
	}
	return []runtime.Value{g.ExtractWithTail(args[len(args)-1])}, nil
}

func biReverse(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	elems, proper := a.ListToSlice(args[0])
	if !proper {
		return nil, runtime.NewTypeError("reverse: not a proper list")
	}
	out := runtime.Nil
	for _, e := range elems {
		out = a.NewCons(e, out)
	}
	return []runtime.Value{out}, nil
}

func biListTail(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	tail, ok := a.NthCdr(args[0], int(args[1].AsInt()))
	if !ok {
		return nil, runtime.NewRangeError("list-tail: index out of range")
	}
	return []runtime.Value{tail}, nil
}

func biListRef(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	v, ok := a.Nth(args[0], int(args[1].AsInt()))
	if !ok {
		return nil, runtime.NewRangeError("list-ref: index out of range")
	}
	return []runtime.Value{v}, nil
}

func biListCopy(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	elems, _ := a.ListToSlice(args[0])
	return []runtime.Value{a.SliceToList(elems)}, nil
}

func memberBy(eq func(*runtime.Arena, runtime.Value, runtime.Value) bool) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		needle, cur := args[0], args[1]
		for cur.Kind == runtime.KindCons && !cur.IsNil() {
			c := a.Cons(cur)
			if eq(a, needle, c.Car) {
				return []runtime.Value{cur}, nil
			}
			cur = c.Cdr
		}
		return []runtime.Value{runtime.False}, nil
	}
}

func assocBy(eq func(*runtime.Arena, runtime.Value, runtime.Value) bool) runtime.NativeFunc {
	return func(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
		key, cur := args[0], args[1]
		for cur.Kind == runtime.KindCons && !cur.IsNil() {
			c := a.Cons(cur)
			entry := a.Cons(c.Car)
			if entry != nil && eq(a, key, entry.Car) {
				return []runtime.Value{c.Car}, nil
			}
			cur = c.Cdr
		}
		return []runtime.Value{runtime.False}, nil
	}
}

func eq2(_ *runtime.Arena, x, y runtime.Value) bool    { return runtime.Eq(x, y) }
func eqv2(a *runtime.Arena, x, y runtime.Value) bool   { return runtime.Eqv(a, a, x, y) }
func equal2(a *runtime.Arena, x, y runtime.Value) bool { return runtime.Equal(a, x, y) }
