package builtins

import "github.com/cwbudde/goscheme/internal/interp/runtime"

// installVectors wires R5RS §6.3.6's vector procedures. list->vector and
// vector->list live in conversion.go alongside the rest of the type-coercion
// builtins; everything vector-native lives here.
func installVectors(r *Registry) {
	unary := runtime.ArityInfo{Required: 1, Max: 1}
	binary := runtime.ArityInfo{Required: 2, Max: 2}

	r.Register("vector?", unary, typePredicate(func(v runtime.Value) bool { return v.Kind == runtime.KindVector }), CategoryVectors, "is the argument a vector")
	r.Register("make-vector", runtime.ArityInfo{Required: 1, Max: 2}, biMakeVector, CategoryVectors, "a new vector of a given length")
	r.Register("vector", runtime.ArityInfo{Required: 0, Max: -1}, biVector, CategoryVectors, "a new vector from its arguments")
	r.Register("vector-length", unary, biVectorLength, CategoryVectors, "the number of elements in a vector")
	r.Register("vector-ref", binary, biVectorRef, CategoryVectors, "the element at an index")
	r.Register("vector-set!", runtime.ArityInfo{Required: 3, Max: 3}, biVectorSet, CategoryVectors, "mutate the element at an index")
	r.Register("vector-fill!", binary, biVectorFill, CategoryVectors, "fill every position with a value")
	r.Register("vector-copy", runtime.ArityInfo{Required: 1, Max: 3}, biVectorCopy, CategoryVectors, "a fresh copy of a vector or a range of it")
}

func biMakeVector(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	n := int(args[0].AsInt())
	fill := runtime.Undefined
	if len(args) > 1 {
		fill = args[1]
	}
	return []runtime.Value{a.NewVectorOfLength(n, fill)}, nil
}

func biVector(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	items := make([]runtime.Value, len(args))
	copy(items, args)
	return []runtime.Value{a.NewVector(items)}, nil
}

func biVectorLength(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	return []runtime.Value{runtime.Int(int64(a.VectorLen(args[0])))}, nil
}

func biVectorRef(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	v, err := a.VectorRef(args[0], int(args[1].AsInt()))
	if err != nil {
		return nil, err
	}
	return []runtime.Value{v}, nil
}

func biVectorSet(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	if err := a.VectorSet(args[0], int(args[1].AsInt()), args[2]); err != nil {
		return nil, err
	}
	return []runtime.Value{runtime.Undefined}, nil
}

func biVectorFill(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	a.VectorFill(args[0], args[1])
	return []runtime.Value{runtime.Undefined}, nil
}

func biVectorCopy(a *runtime.Arena, _ runtime.Value, args []runtime.Value) ([]runtime.Value, error) {
	items := a.Vector(args[0]).Items
	start, end := 0, len(items)
	if len(args) > 1 {
		start = int(args[1].AsInt())
	}
	if len(args) > 2 {
		end = int(args[2].AsInt())
	}
	if start < 0 || end > len(items) || start > end {
		return nil, runtime.NewRangeError("vector-copy: index out of range")
	}
	out := make([]runtime.Value, end-start)
	copy(out, items[start:end])
	return []runtime.Value{a.NewVector(out)}, nil
}
