// Package syntax implements the identifier-resolution algorithms that sit
// on top of runtime.SyntacticClosure: deciding what a possibly-wrapped
// identifier actually refers to, and whether two possibly-wrapped
// identifiers denote the same binding. The macro expander (package macro)
// calls into this package rather than touching runtime.SyntacticClosure
// fields directly, so the hygiene algorithm has one home.
//
// Grounded on zatuscheme's identifierp()/s_closure resolution
// (original_source/src/s_closure.hh, eval.cc) and shaped like the
// teacher's small focused-algorithm packages (internal/semantic, before
// pruning) rather than folded into the evaluator.
package syntax
