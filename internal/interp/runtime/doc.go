// Package runtime provides the core runtime value system for the Scheme
// interpreter: the uniform tagged Value representation, the heap arena and
// its mark-sweep collector, lexical environments, the four-kind numeric
// tower, and the procedure/continuation/syntactic-closure heap kinds.
//
// Unlike a typical tree-walking interpreter, values here are not one
// interface implementation per kind. The specification calls for a uniform
// 2-word tagged union so the evaluator's code and data stacks can hold any
// value — including internal opcodes — without boxing. Value is therefore a
// small struct carrying a Kind tag, an inline payload, and an optional heap
// Handle; everything else in this package either produces or consumes that
// struct.
//
// The package is organized as:
//   - kind.go: the Kind tag enumeration
//   - value.go: the Value struct, constructors, and Eq/Eqv/Equal
//   - arena.go: the heap arena and mark-sweep collector
//   - cons.go: pair cells, GrowList, ConsIter
//   - symbol.go: the interned symbol table
//   - numeric*.go: the integer/rational/real/complex tower
//   - string.go: the mutable string heap kind
//   - vector.go: the mutable vector heap kind
//   - procedure.go: interpreted and native procedures
//   - continuation.go: the continuation heap kind
//   - closure.go: the syntactic-closure heap kind
//   - syntaxrules.go: the syntax-rules transformer heap kind
//   - port.go: input/output port heap kinds
//   - environment.go: lexical frame chains
//   - errors.go: RuntimeError and its categories
//   - refcount.go: the ref-counted fast path over environment frames
//   - pool.go: sync.Pool reuse for the hot real heap allocation
package runtime
