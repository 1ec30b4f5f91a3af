// Package evaluator implements the stack-based VM described by §4.5/§4.9:
// a control stack of continuation frames (Kont) tagged with the opcode
// they represent, a current lexical frame, a dynamic-wind chain, and an
// exception-handler stack. Evaluating a form drives the VM's Eval loop
// until the control stack empties, at which point the accumulated
// return-value vector is handed back to the caller.
//
// Proper tail calls fall out of how Kont frames are pushed: entering a
// procedure in tail position never pushes a frame to restore the caller's
// environment, so a self-recursive loop runs in O(1) control-stack depth
// regardless of iteration count. First-class continuations are possible
// because the control stack is ordinary data (a []Kont, not the Go call
// stack) — capturing one is a slice copy, and invoking it later replaces
// the VM's control stack outright, replaying dynamic-wind thunks across
// the common-prefix boundary between the source and destination winds.
//
// The package is organized as:
//   - vm.go: VM and Kont, GC root enumeration, the periodic collection tick
//   - eval.go: the Eval loop, form dispatch, procedure application
//   - specialforms.go: the six core syntax forms (quote, if, set!, define,
//     lambda, begin) every derived form expands into
//   - derived.go: let/cond/case/when/unless/and/or/do/guard/quasiquote/
//     delay/define-syntax, each desugared into core syntax at expansion
//     time rather than given its own continuation-frame type
//   - special.go: the VM-privileged primitives (call/cc, values,
//     call-with-values, dynamic-wind, with-exception-handler, apply,
//     eval, force)
//   - continuation.go: continuation capture/invocation and the
//     dynamic-wind common-prefix replay
package evaluator
