// Package runner is the thin construction layer cmd/goscheme calls into: it
// turns a loaded internal/config.Config into interp.Options and builds the
// Interpreter, keeping the CLI package itself free of evaluator/runtime
// imports the way the reference CLI's cmd package stayed free of them by
// going through this same kind of indirection.
package runner

import (
	"github.com/cwbudde/goscheme/internal/config"
	"github.com/cwbudde/goscheme/internal/interp"
)

// New builds an Interpreter from a loaded configuration.
func New(cfg *config.Config) (*interp.Interpreter, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	return interp.New(interp.Options{
		GCInterval: cfg.GCInterval,
		LoadPath:   cfg.LoadPath,
	})
}
