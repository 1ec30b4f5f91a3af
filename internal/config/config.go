// Package config loads goscheme's optional configuration file. The
// reference interpreter's CLI has no config-file layer of its own (its
// cobra commands take everything as flags), so this is grounded on
// goccy/go-yaml directly rather than on any one teacher file — the
// smallest idiomatic shape for a YAML-backed CLI config in this corpus.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds the settings a `~/.goscheme.yaml` (or --config) file can
// override: REPL cosmetics, the default library search path, and GC
// tuning. Every field has a usable zero value, so a missing config file is
// equivalent to an empty one.
type Config struct {
	// Prompt is the REPL's input prompt. Defaults to "> " if empty.
	Prompt string `yaml:"prompt"`
	// LoadPath lists directories searched, in order, for a library a
	// program `(load "name")`s without an absolute or relative path.
	LoadPath []string `yaml:"load_path"`
	// GCInterval is the number of primitive VM steps between garbage
	// collections (see evaluator.VM's tickGC). Zero means use the VM's
	// built-in default.
	GCInterval int `yaml:"gc_interval"`
}

// Default returns the configuration an empty or absent file implies.
func Default() *Config {
	return &Config{Prompt: "> "}
}

// Load reads and parses path. A missing file is not an error: it is
// treated the same as an empty one, since a config file is always
// optional.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns ~/.goscheme.yaml, the file Load falls back to when
// the CLI's --config flag is not given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".goscheme.yaml"
	}
	return filepath.Join(home, ".goscheme.yaml")
}
