package interp

// Options configures a fresh Interpreter. The reference interpreter defined
// this as an interface so internal/interp could accept configuration
// without importing the package that built it, avoiding an import cycle
// with the command-line entry point one layer up. No such cycle exists
// here — internal/config depends on nothing in this module — so a plain
// struct serves the same purpose without the indirection.
type Options struct {
	// GCInterval is the number of primitive VM steps between garbage
	// collections. Zero means use the VM's built-in default.
	GCInterval int
	// LoadPath lists directories searched for a library name passed to
	// `load` without an absolute or relative path of its own.
	LoadPath []string
}
