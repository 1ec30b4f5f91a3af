package builtins

import "github.com/cwbudde/goscheme/internal/interp/runtime"

// installEnvironmentAccessors wires spec.md §6's three starting
// environments, each a zero-argument native returning a fresh top-level
// frame: null-environment binds nothing (the core special forms dispatch by
// keyword in the evaluator, never through an environment lookup, so an
// empty frame is already a complete null environment), scheme-report-
// environment binds every category but CategoryExtension, and
// interaction-environment binds everything this registry knows about.
// Registered last, once every other installer has populated r, so
// AllFunctions sees the complete catalogue.
func installEnvironmentAccessors(r *Registry, a *runtime.Arena, syms *runtime.SymbolTable) {
	zero := runtime.ArityInfo{Required: 0, Max: 0}

	r.Register("null-environment", zero, func(a *runtime.Arena, _ runtime.Value, _ []runtime.Value) ([]runtime.Value, error) {
		return []runtime.Value{a.NewEnv()}, nil
	}, CategoryExtension, "an environment with only the core special forms bound")

	r.Register("scheme-report-environment", zero, func(a *runtime.Arena, _ runtime.Value, _ []runtime.Value) ([]runtime.Value, error) {
		return []runtime.Value{buildEnvironment(r, a, syms, func(c Category) bool { return c != CategoryExtension })}, nil
	}, CategoryExtension, "an environment with the standard R5RS procedure set bound")

	r.Register("interaction-environment", zero, func(a *runtime.Arena, _ runtime.Value, _ []runtime.Value) ([]runtime.Value, error) {
		return []runtime.Value{buildEnvironment(r, a, syms, func(Category) bool { return true })}, nil
	}, CategoryExtension, "an environment with every builtin, including extensions, bound")
}

// buildEnvironment binds every registered function whose category passes
// include into a fresh frame, the same bind-as-NativeProcedure step
// Registry.Install performs for the default environment.
func buildEnvironment(r *Registry, a *runtime.Arena, syms *runtime.SymbolTable, include func(Category) bool) runtime.Value {
	env := a.NewEnv()
	for _, info := range r.AllFunctions() {
		if !include(info.Category) {
			continue
		}
		proc := a.NewNativeProcedure(info.Name, info.Arity, info.Function)
		a.LocalSet(env, syms.Intern(info.Name), proc)
	}
	return env
}
