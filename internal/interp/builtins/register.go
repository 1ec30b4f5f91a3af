package builtins

import "github.com/cwbudde/goscheme/internal/interp/runtime"

// Install builds the full builtin registry and binds it into env; the
// Scheme-source prelude is not evaluated here. This is the single entry point a top-level
// interpreter setup calls once per VM: stdout/stdin are wrapped as ports
// first since display/write/newline/current-output-port/current-input-port
// all close over them, then every installer runs against one Registry, then
// the registry is bound into env, and finally the caller is responsible for
// evaluating Prelude against env (Install can't do that itself without
// importing the evaluator, which would create an import cycle).
func Install(a *runtime.Arena, syms *runtime.SymbolTable, env runtime.Value) *Registry {
	r := NewRegistry()
	output, input := standardPorts(a)

	installNumeric(r)
	installPairs(r)
	installPredicates(r)
	installStrings(r)
	installVectors(r)
	installConversion(r, syms)
	installIO(r, syms, output, input)
	installControl(r, syms)
	installEnvironmentAccessors(r, a, syms)

	r.Install(a, syms, env)
	return r
}
