// Package builtins implements the procedures R5RS requires an
// implementation to provide: the numeric tower, pairs and lists,
// predicates, strings, characters, vectors, and input/output. Each
// installer registers its procedures, tagged with a Category, into one
// Registry; §6's null-environment, scheme-report-environment, and
// permissive interaction-environment are then built from that registry by
// filtering on category (see environments.go).
package builtins

import (
	"sort"
	"sync"

	"github.com/cwbudde/goscheme/internal/interp/runtime"
)

// Category groups builtins for introspection (e.g. a REPL's `,builtins`
// command or a documentation generator), mirroring the teacher's registry
// shape but organized around R5RS's own chapter breakdown rather than
// DWScript's runtime library categories.
type Category string

const (
	CategoryNumeric    Category = "numeric"
	CategoryPairs      Category = "pairs-and-lists"
	CategoryPredicates Category = "predicates"
	CategoryStrings    Category = "strings"
	CategoryChars      Category = "characters"
	CategoryVectors    Category = "vectors"
	CategoryIO         Category = "io"
	CategoryControl    Category = "control"
	CategoryConversion Category = "conversion"
	// CategoryExtension groups the bindings §6's scheme-report-environment
	// leaves out: gensym, identifier?, exit, environment-bindings, the three
	// environment accessors (null-environment, scheme-report-environment,
	// interaction-environment), and the
	// condition-system primitives (with-exception-handler, raise,
	// raise-continuable). Only interaction-environment includes them.
	CategoryExtension Category = "extension"
)

// FunctionInfo holds metadata about a registered builtin.
type FunctionInfo struct {
	Name        string
	Arity       runtime.ArityInfo
	Function    runtime.NativeFunc
	Category    Category
	Description string
}

// Registry tracks every builtin procedure known to this implementation.
// Scheme identifiers are case-sensitive (unlike the teacher's DWScript,
// which folds names to lowercase), so lookups key on the name verbatim.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]*FunctionInfo
	byCategory map[Category][]string
}

// NewRegistry creates an empty builtin registry.
func NewRegistry() *Registry {
	return &Registry{
		functions:  make(map[string]*FunctionInfo),
		byCategory: make(map[Category][]string),
	}
}

// Register adds or replaces a builtin under name.
func (r *Registry) Register(name string, arity runtime.ArityInfo, fn runtime.NativeFunc, category Category, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.functions[name]; !exists {
		r.byCategory[category] = append(r.byCategory[category], name)
	}
	r.functions[name] = &FunctionInfo{
		Name:        name,
		Arity:       arity,
		Function:    fn,
		Category:    category,
		Description: description,
	}
}

// Lookup finds a builtin by its exact (case-sensitive) name.
func (r *Registry) Lookup(name string) (*FunctionInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.functions[name]
	return info, ok
}

// GetByCategory returns every builtin in category, sorted by name.
func (r *Registry) GetByCategory(category Category) []*FunctionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := r.byCategory[category]
	out := make([]*FunctionInfo, 0, len(names))
	for _, n := range names {
		out = append(out, r.functions[n])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AllFunctions returns every registered builtin, sorted by name.
func (r *Registry) AllFunctions() []*FunctionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*FunctionInfo, 0, len(r.functions))
	for _, info := range r.functions {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of registered builtins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.functions)
}

// Install binds every builtin in the registry into env as a
// NativeProcedure, the step that turns a Registry (a catalogue) into an
// actual environment a program can run against.
func (r *Registry) Install(a *runtime.Arena, syms *runtime.SymbolTable, env runtime.Value) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, info := range r.functions {
		proc := a.NewNativeProcedure(name, info.Arity, info.Function)
		a.LocalSet(env, syms.Intern(name), proc)
	}
}
