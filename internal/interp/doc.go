// Package interp ties the standalone pieces of the interpreter together
// into something a host (the REPL, the CLI's run/eval commands) can call
// with a string of source text and get back values or a diagnosable
// error: an Arena and SymbolTable, the native procedures and prelude from
// package builtins bound into a global environment, and an evaluator.VM
// run against the forms package reader parses out of the input.
package interp
