package runtime

// Continuation is the heap kind behind call-with-current-continuation
// (§4.9). Invoking a continuation restores the control stack, the
// dynamic-wind chain, and the exception-handler stack it was captured
// with, then resumes with the supplied value(s) — a full-state jump, not a
// one-shot escape, so a continuation may be invoked any number of times.
//
// The fields are opaque Values rather than evaluator-package types so this
// package has no import-cycle on the evaluator. The evaluator allocates
// every continuation with all four fields Undefined and keeps the captured
// state in its own side table, keyed by the continuation Value.
type Continuation struct {
	DataStack    Value
	CodeStack    Value
	DynamicWinds Value
	Handlers     Value
}

// Trace visits the four fields. The evaluator leaves them Undefined, so the
// captured state is kept reachable through the evaluator's own GC roots
// rather than through this method.
func (c *Continuation) Trace(fn func(Value)) {
	fn(c.DataStack)
	fn(c.CodeStack)
	fn(c.DynamicWinds)
	fn(c.Handlers)
}

// NewContinuation allocates a captured VM snapshot.
func (a *Arena) NewContinuation(dataStack, codeStack, dynamicWinds, handlers Value) Value {
	return a.alloc(KindContinuation, &Continuation{
		DataStack:    dataStack,
		CodeStack:    codeStack,
		DynamicWinds: dynamicWinds,
		Handlers:     handlers,
	})
}

// Continuation resolves a KindContinuation Value to its payload.
func (a *Arena) Continuation(v Value) *Continuation {
	e := a.lookup(v)
	if e == nil {
		return nil
	}
	c, _ := e.Obj.(*Continuation)
	return c
}
